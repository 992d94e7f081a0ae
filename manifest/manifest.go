// Package manifest discovers example repositories, resolves the solution file of each of their
// branches and publishes the result as a JSON manifest.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"sln-manifest/config"
	"sln-manifest/vcs/repository"
)

type RepositoryLister interface {
	ListRepositories(ctx context.Context, owner string, page int) ([]repository.Repository, error)
}

type TreeSource interface {
	ListBranches(ctx context.Context, owner string, repo repository.Repository) ([]repository.Branch, error)
	GetTree(ctx context.Context, owner, name, sha string) (*repository.Tree, error)
}

type ContentStore interface {
	GetFile(ctx context.Context, owner, name, path, branch string) (*repository.FileContent, error)
	UpdateFile(ctx context.Context, owner, name, path, branch, message, content, sha string) error
}

// Client is everything a run needs from the host.
type Client interface {
	RepositoryLister
	TreeSource
	ContentStore
}

// Encode renders repositories as an indented JSON array, without a trailing newline.
func Encode(repos []repository.Repository) ([]byte, error) {
	if repos == nil {
		repos = []repository.Repository{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(repos)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func Decode(raw []byte) ([]repository.Repository, error) {
	var repos []repository.Repository
	err := json.Unmarshal(raw, &repos)
	if err != nil {
		return nil, err
	}

	return repos, nil
}

// Run executes discovery, resolution and publication in order. Nothing is written to the
// remote manifest unless every branch of every discovered repository resolved.
func Run(ctx context.Context, client Client, config *config.Config) error {
	pattern, err := config.SolutionPattern()
	if err != nil {
		return err
	}

	owner := config.Source.Owner
	filter := Filter{
		Name:    config.Source.Filter,
		Exclude: config.Source.Exclude,
	}

	repos, err := Discover(ctx, client, owner, filter)
	if err != nil {
		return err
	}

	log.Info().Str("owner", owner).Msgf("%d repositories discovered", len(repos))

	err = ResolveAll(ctx, client, owner, repos, pattern, config.Concurrency)
	if err != nil {
		return err
	}

	content, err := Encode(repos)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if config.Output != "" {
		err = os.WriteFile(config.Output, content, 0o644)
		if err != nil {
			return err
		}
		log.Info().Str("path", config.Output).Msg("Wrote local manifest")
	}

	_, err = Publish(ctx, client, config.Manifest, content)
	return err
}
