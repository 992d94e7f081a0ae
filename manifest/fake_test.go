package manifest

import (
	"context"
	"fmt"
	"sync"

	"sln-manifest/vcs/repository"
)

type update struct {
	owner, name, path, branch, message, content, sha string
}

// fakeHost serves canned pages, branches, trees and one manifest file.
type fakeHost struct {
	mtx sync.Mutex

	pages    [][]repository.Repository
	branches map[string][]repository.Branch
	trees    map[string]*repository.Tree
	file     *repository.FileContent

	pageErr   map[int]error
	branchErr map[string]error

	requestedPages []int
	treeRequests   []string
	updates        []update
}

func (host *fakeHost) ListRepositories(ctx context.Context, owner string, page int) ([]repository.Repository, error) {
	host.mtx.Lock()
	defer host.mtx.Unlock()

	host.requestedPages = append(host.requestedPages, page)
	if err := host.pageErr[page]; err != nil {
		return nil, err
	}

	if page < 1 || page > len(host.pages) {
		return []repository.Repository{}, nil
	}
	return host.pages[page-1], nil
}

func (host *fakeHost) ListBranches(ctx context.Context, owner string, repo repository.Repository) ([]repository.Branch, error) {
	host.mtx.Lock()
	defer host.mtx.Unlock()

	if err := host.branchErr[repo.Name]; err != nil {
		return nil, err
	}

	return append([]repository.Branch{}, host.branches[repo.Name]...), nil
}

func (host *fakeHost) GetTree(ctx context.Context, owner, name, sha string) (*repository.Tree, error) {
	host.mtx.Lock()
	defer host.mtx.Unlock()

	host.treeRequests = append(host.treeRequests, fmt.Sprintf("%s/%s@%s", owner, name, sha))
	tree, ok := host.trees[sha]
	if !ok {
		return nil, fmt.Errorf("no tree %s", sha)
	}
	return tree, nil
}

func (host *fakeHost) GetFile(ctx context.Context, owner, name, path, branch string) (*repository.FileContent, error) {
	if host.file == nil {
		return nil, fmt.Errorf("404 Not Found")
	}
	return host.file, nil
}

func (host *fakeHost) UpdateFile(ctx context.Context, owner, name, path, branch, message, content, sha string) error {
	host.updates = append(host.updates, update{owner, name, path, branch, message, content, sha})
	return nil
}

func repos(names ...string) []repository.Repository {
	result := []repository.Repository{}
	for i, name := range names {
		result = append(result, repository.Repository{ID: int64(i + 1), Name: name, FullName: "owner/" + name})
	}
	return result
}

func branch(name, sha string) repository.Branch {
	return repository.Branch{Name: name, Commit: repository.Commit{Sha: sha}}
}

func tree(paths ...string) *repository.Tree {
	entries := []repository.TreeEntry{}
	for _, path := range paths {
		entries = append(entries, repository.TreeEntry{Path: path, Type: "blob"})
	}
	return &repository.Tree{Entries: entries}
}

func names(repos []repository.Repository) []string {
	result := []string{}
	for _, repo := range repos {
		result = append(result, repo.Name)
	}
	return result
}
