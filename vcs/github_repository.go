package vcs

import (
	"github.com/google/go-github/v50/github"

	"sln-manifest/vcs/repository"
)

func fromGitHubRepository(repo *github.Repository) repository.Repository {
	return repository.Repository{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.Description,
		BranchesUrl: repo.GetBranchesURL(),
		GitUrl:      repo.GetGitURL(),
		CloneUrl:    repo.GetCloneURL(),
		Branches:    []repository.Branch{},
	}
}

func fromGitHubBranch(branch *github.Branch) repository.Branch {
	return repository.Branch{
		Name: branch.GetName(),
		Commit: repository.Commit{
			Sha: branch.GetCommit().GetSHA(),
		},
	}
}

func fromGitHubTree(tree *github.Tree) *repository.Tree {
	entries := make([]repository.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, repository.TreeEntry{
			Path: entry.GetPath(),
			Sha:  entry.GetSHA(),
			Type: entry.GetType(),
		})
	}

	return &repository.Tree{
		Sha:       tree.GetSHA(),
		Entries:   entries,
		Truncated: tree.GetTruncated(),
	}
}
