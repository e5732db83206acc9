// Package gitops commits refreshed data artifacts to the site repository.
package gitops

import (
	"fmt"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	commitAuthorName  = "indexfonder-bot"
	commitAuthorEmail = "bot@indexfonder.se"
)

// CommitDataset stages the dataset file and commits it. It returns the
// commit hash, or an empty string when the file had no changes to commit.
func CommitDataset(repoDir, datasetPath, message string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), absOrSelf(datasetPath))
	if err != nil {
		return "", fmt.Errorf("resolve dataset path: %w", err)
	}

	if _, err := worktree.Add(rel); err != nil {
		return "", fmt.Errorf("stage %s: %w", rel, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return "", fmt.Errorf("read worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  commitAuthorName,
			Email: commitAuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit dataset: %w", err)
	}
	return hash.String(), nil
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
