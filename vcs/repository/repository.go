package repository

import (
	"strings"
)

type Commit struct {
	Sha string `json:"sha" diff:"sha"`
}

type Branch struct {
	Name     string  `json:"name" diff:"name, identifier"`
	Commit   Commit  `json:"commit" diff:"commit"`
	// Path of the solution file at Commit, nil until resolved.
	Solution *string `json:"sln" diff:"sln"`
}

func (branch Branch) SolutionPath() string {
	if branch.Solution == nil {
		return ""
	}
	return *branch.Solution
}

type Repository struct {
	ID          int64    `json:"id" diff:"id"`
	Name        string   `json:"name" diff:"name, identifier"`
	FullName    string   `json:"full_name" diff:"full_name"`
	Description *string  `json:"description" diff:"description"`
	BranchesUrl string   `json:"branches_url" diff:"-"`
	GitUrl      string   `json:"git_url" diff:"-"`
	CloneUrl    string   `json:"clone_url" diff:"-"`
	Branches    []Branch `json:"Branches" diff:"branches"`
}

// BranchesPath strips the URI template suffix ("{/branch}") from BranchesUrl.
func (repo Repository) BranchesPath() string {
	path, _, _ := strings.Cut(repo.BranchesUrl, "{")
	return path
}

type TreeEntry struct {
	Path string
	Sha  string
	Type string
}

type Tree struct {
	Sha       string
	Entries   []TreeEntry
	// Set when the host capped the recursive listing.
	Truncated bool
}

type FileContent struct {
	Path    string
	Sha     string
	Content string
}
