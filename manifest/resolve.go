package manifest

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"sln-manifest/vcs"
	"sln-manifest/vcs/repository"
)

var ErrSolutionNotFound = errors.New("no solution file found")

// FindSolution returns the first entry path matching pattern, in the order the host listed them.
func FindSolution(entries []repository.TreeEntry, pattern *regexp.Regexp) (string, error) {
	for _, entry := range entries {
		if pattern.MatchString(entry.Path) {
			return entry.Path, nil
		}
	}

	return "", ErrSolutionNotFound
}

// Resolve lists the branches of repo and records the solution path of each of them. Branches
// are processed one at a time.
func Resolve(ctx context.Context, source TreeSource, owner string, repo *repository.Repository, pattern *regexp.Regexp) error {
	logger := vcs.GetLogger(*repo)

	branches, err := source.ListBranches(ctx, owner, *repo)
	if err != nil {
		return fmt.Errorf("listing branches of %s: %w", repo.Name, err)
	}

	repo.Branches = branches

	for i := range repo.Branches {
		branch := &repo.Branches[i]
		branchLogger := logger.With().Str("branch", branch.Name).Logger()

		tree, err := source.GetTree(ctx, owner, repo.Name, branch.Commit.Sha)
		if err != nil {
			return fmt.Errorf("fetching tree of %s@%s: %w", repo.Name, branch.Name, err)
		}

		if tree.Truncated {
			branchLogger.Warn().Msg("Tree listing was truncated")
		}

		path, err := FindSolution(tree.Entries, pattern)
		if err != nil {
			return fmt.Errorf("%s@%s: %w", repo.Name, branch.Name, err)
		}

		branchLogger.Debug().Str("sln", path).Msg("Resolved solution")
		branch.Solution = &path
	}

	return nil
}

// ResolveAll resolves repos in place with at most concurrency repositories in flight. The first
// failure cancels the remaining work and is returned.
func ResolveAll(ctx context.Context, source TreeSource, owner string, repos []repository.Repository, pattern *regexp.Regexp, concurrency int) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(concurrency, 1))

	for i := range repos {
		repo := &repos[i]

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return Resolve(ctx, source, owner, repo, pattern)
		})
	}

	return group.Wait()
}
