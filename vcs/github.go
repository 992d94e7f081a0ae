package vcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v50/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"sln-manifest/config"
	"sln-manifest/vcs/repository"
)

const perPage = 100

type GitHub struct {
	config *config.Config
	client *github.Client
}

func NewGitHubClient(ctx context.Context, config *config.Config) (*GitHub, error) {
	logger := log.With().Str("api", config.ApiUrl).Logger()

	logger.Info().Msg("Initializing client")

	baseUrl, err := url.Parse(config.ApiUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}

	// The "token" type makes the transport send "Authorization: token <credential>".
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token, TokenType: "token"})
	client := github.NewClient(oauth2.NewClient(ctx, source))
	client.BaseURL = baseUrl
	client.UserAgent = config.UserAgent

	return &GitHub{config: config, client: client}, nil
}

func (this *GitHub) GetConfig() *config.Config {
	return this.config
}

// ListRepositories fetches a single page of the owner's repositories.
func (this *GitHub) ListRepositories(ctx context.Context, owner string, page int) ([]repository.Repository, error) {
	options := &github.RepositoryListOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	repos, _, err := this.client.Repositories.List(ctx, owner, options)
	if err != nil {
		return nil, err
	}

	result := make([]repository.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, fromGitHubRepository(repo))
	}

	return result, nil
}

// ListBranches issues one request against the repository's branches_url.
func (this *GitHub) ListBranches(ctx context.Context, owner string, repo repository.Repository) ([]repository.Branch, error) {
	path := repo.BranchesPath()
	if path == "" {
		path = fmt.Sprintf("repos/%s/%s/branches", owner, repo.Name)
	}

	branchesUrl, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid branches url %q: %w", path, err)
	}

	query := branchesUrl.Query()
	query.Set("per_page", fmt.Sprint(perPage))
	branchesUrl.RawQuery = query.Encode()

	req, err := this.client.NewRequest(http.MethodGet, branchesUrl.String(), nil)
	if err != nil {
		return nil, err
	}

	var branches []*github.Branch
	_, err = this.client.Do(ctx, req, &branches)
	if err != nil {
		return nil, err
	}

	result := make([]repository.Branch, 0, len(branches))
	for _, branch := range branches {
		result = append(result, fromGitHubBranch(branch))
	}

	return result, nil
}

// GetTree returns the flattened recursive tree at sha.
func (this *GitHub) GetTree(ctx context.Context, owner, name, sha string) (*repository.Tree, error) {
	tree, _, err := this.client.Git.GetTree(ctx, owner, name, sha, true)
	if err != nil {
		return nil, err
	}

	return fromGitHubTree(tree), nil
}

func (this *GitHub) GetFile(ctx context.Context, owner, name, path, branch string) (*repository.FileContent, error) {
	var options *github.RepositoryContentGetOptions
	if branch != "" {
		options = &github.RepositoryContentGetOptions{Ref: branch}
	}

	file, _, _, err := this.client.Repositories.GetContents(ctx, owner, name, path, options)
	if err != nil {
		return nil, err
	}

	if file == nil {
		return nil, errors.New(fmt.Sprintf("%s is a directory, not a file", path))
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &repository.FileContent{
		Path:    file.GetPath(),
		Sha:     file.GetSHA(),
		Content: content,
	}, nil
}

// UpdateFile commits content to path, replacing the blob identified by sha.
func (this *GitHub) UpdateFile(ctx context.Context, owner, name, path, branch, message, content, sha string) error {
	logger := log.With().Str("repository", fmt.Sprintf("%s/%s", owner, name)).Str("path", path).Logger()

	options := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
	}

	if sha != "" {
		options.SHA = github.String(sha)
	}

	if branch != "" {
		options.Branch = github.String(branch)
	}

	response, _, err := this.client.Repositories.UpdateFile(ctx, owner, name, path, options)
	if err != nil {
		return err
	}

	logger.Info().Str("commit", response.Commit.GetSHA()).Msg("Committed file")

	return nil
}
