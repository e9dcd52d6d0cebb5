package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNtfyNotifierPublishes(t *testing.T) {
	t.Parallel()

	var gotMethod, gotTitle, gotTags, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNtfyNotifier(server.URL, time.Second)
	err := n.Notify(context.Background(), "autopush", "Automated backup: 2024-03-15 09:30:00")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "autopush", gotTitle)
	assert.Equal(t, "autopush,backup", gotTags)
	assert.Equal(t, "Automated backup: 2024-03-15 09:30:00", gotBody)
}

func TestNtfyNotifierServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	n := NewNtfyNotifier(server.URL, time.Second)
	err := n.Notify(context.Background(), "autopush", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "topic quota exceeded")
}

func TestNtfyNotifierUnreachableServer(t *testing.T) {
	t.Parallel()

	// Reserve then immediately close a listener so nothing is serving.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	n := NewNtfyNotifier(url, 500*time.Millisecond)
	err := n.Notify(context.Background(), "autopush", "body")
	assert.Error(t, err)
}
