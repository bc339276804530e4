package services

import (
	"errors"

	"github.com/go-git/go-git/v5"
)

// GitService annotates run records with the branch and commit of the scanned
// folder when it happens to be a git repository.
type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// Open an existing repo
func (g *GitService) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)

	if err != nil {
		return nil, err
	}

	return repo, nil
}

// Metadata returns the HEAD branch and commit hash of the repository at
// path. A folder that is not a repository yields empty values, not an error.
func (g *GitService) Metadata(path string) (branch, commit string, err error) {
	repo, err := g.Open(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", "", nil
		}
		return "", "", err
	}

	ref, err := repo.Head()
	if err != nil {
		// repository without commits yet
		return "", "", nil
	}

	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	return branch, ref.Hash().String(), nil
}
