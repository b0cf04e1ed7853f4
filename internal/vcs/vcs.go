// Package vcs annotates project paths with git state.
package vcs

import (
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Branch returns the checked out branch of the repository containing path,
// or a short commit hash for a detached HEAD. ok is false when path is not
// inside a git repository or HEAD cannot be read.
func Branch(path string) (name string, ok bool) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repository: HEAD points at a branch with no commits yet.
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			if ref, err := repo.Storer.Reference(plumbing.HEAD); err == nil && ref.Type() == plumbing.SymbolicReference {
				return ref.Target().Short(), true
			}
		}
		return "", false
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), true
	}
	return head.Hash().String()[:7], true
}
