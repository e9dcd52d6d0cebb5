package git

import (
	"time"

	gogit "github.com/go-git/go-git/v5"

	"github.com/bashhack/autopush/internal/errors"
)

// CommitInfo describes the commit a repository's HEAD points at.
type CommitInfo struct {
	Hash    string
	Branch  string
	Message string
	Author  string
	When    time.Time
}

// ShortHash returns the abbreviated commit hash.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) < 8 {
		return c.Hash
	}
	return c.Hash[:8]
}

// IsRepository checks if the given path is a git repository. A path that
// exists but holds no repository is not an error.
func IsRepository(path string) (bool, error) {
	_, err := gogit.PlainOpen(path)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to open repository")
	}
	return true, nil
}

// HeadInfo reads the repository's HEAD commit. It is read-only and used for
// the session summary; the mutating operations all go through system git so
// hooks and credential helpers keep working.
func HeadInfo(path string) (CommitInfo, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return CommitInfo{}, errors.Wrap(err, "failed to open repository")
	}

	head, err := repo.Head()
	if err != nil {
		return CommitInfo{}, errors.Wrap(err, "failed to resolve HEAD")
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return CommitInfo{}, errors.Wrap(err, "failed to read HEAD commit")
	}

	return CommitInfo{
		Hash:    commit.Hash.String(),
		Branch:  head.Name().Short(),
		Message: commit.Message,
		Author:  commit.Author.Name,
		When:    commit.Author.When,
	}, nil
}
