package main

import (
	"context"
	"testing"

	"github.com/bashhack/autopush/internal/config"
	"github.com/bashhack/autopush/internal/git"
)

// callRecorder tracks the order of interesting calls across mocks.
type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) {
	r.calls = append(r.calls, name)
}

// mockLogger implements common.Logger and discards everything.
type mockLogger struct{}

func (mockLogger) Info(string, ...interface{})          {}
func (mockLogger) Warning(string, ...interface{})       {}
func (mockLogger) Error(string, ...interface{})         {}
func (mockLogger) InfoToUser(string, ...interface{})    {}
func (mockLogger) WarningToUser(string, ...interface{}) {}
func (mockLogger) Success(string, ...interface{})       {}
func (mockLogger) StatusMessage(string, ...interface{}) {}

// mockLocker implements Locker.
type mockLocker struct {
	recorder    *callRecorder
	acquireErr  error
	releaseErr  error
	acquireOk   int
	releaseDone int
}

func (m *mockLocker) Acquire() error {
	if m.recorder != nil {
		m.recorder.record("acquire")
	}
	if m.acquireErr != nil {
		return m.acquireErr
	}
	m.acquireOk++
	return nil
}

func (m *mockLocker) Release() error {
	m.releaseDone++
	return m.releaseErr
}

// mockSyncer implements Syncer.
type mockSyncer struct {
	recorder *callRecorder
	syncFn   func(ctx context.Context) (git.SyncResult, error)
	syncs    int
}

func (m *mockSyncer) Sync(ctx context.Context) (git.SyncResult, error) {
	if m.recorder != nil {
		m.recorder.record("sync")
	}
	m.syncs++
	if m.syncFn != nil {
		return m.syncFn(ctx)
	}
	return git.SyncResult{Staged: true, Committed: true, Pushed: true}, nil
}

func (m *mockSyncer) PrintSummary() {}

// mockNotifier implements notify.Notifier.
type mockNotifier struct {
	recorder *callRecorder
	err      error
	notifies int
	titles   []string
	bodies   []string
}

func (m *mockNotifier) Notify(_ context.Context, title, body string) error {
	if m.recorder != nil {
		m.recorder.record("notify")
	}
	m.notifies++
	m.titles = append(m.titles, title)
	m.bodies = append(m.bodies, body)
	return m.err
}

// testAppFixture bundles an App wired to mocks.
type testAppFixture struct {
	app      *App
	locker   *mockLocker
	syncer   *mockSyncer
	notifier *mockNotifier
	recorder *callRecorder
}

// newTestApp builds an App whose external effects are all mocked out.
func newTestApp(t *testing.T) *testAppFixture {
	t.Helper()

	recorder := &callRecorder{}
	locker := &mockLocker{recorder: recorder}
	syncer := &mockSyncer{recorder: recorder}
	notifier := &mockNotifier{recorder: recorder}

	cfg := config.New()
	cfg.RepoPath = t.TempDir()

	app := NewApp(AppOptions{
		Config:   cfg,
		Logger:   mockLogger{},
		Locker:   locker,
		Syncer:   syncer,
		Notifier: notifier,
		Exit:     func(int) {},
		ExecLookPath: func(string) (string, error) {
			return "/usr/bin/git", nil
		},
		IsRepository: func(string) (bool, error) {
			return true, nil
		},
	})

	return &testAppFixture{
		app:      app,
		locker:   locker,
		syncer:   syncer,
		notifier: notifier,
		recorder: recorder,
	}
}
