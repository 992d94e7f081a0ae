package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"sln-manifest/vcs/repository"
)

// Filter selects repositories by name. Name is matched case-insensitively, Exclude tokens are
// matched as-is.
type Filter struct {
	Name    string
	Exclude []string
}

func (filter Filter) Match(name string) bool {
	if !strings.Contains(strings.ToLower(name), strings.ToLower(filter.Name)) {
		return false
	}

	for _, token := range filter.Exclude {
		if strings.Contains(name, token) {
			return false
		}
	}

	return true
}

// Discover pages through the owner's repositories starting at page 1 and stops at the first
// empty page. Matching repositories are returned in listing order.
func Discover(ctx context.Context, lister RepositoryLister, owner string, filter Filter) ([]repository.Repository, error) {
	logger := log.With().Str("owner", owner).Logger()

	result := []repository.Repository{}

	for page := 1; ; page++ {
		repos, err := lister.ListRepositories(ctx, owner, page)
		if err != nil {
			return nil, fmt.Errorf("listing repositories of %s (page %d): %w", owner, page, err)
		}

		if len(repos) == 0 {
			logger.Debug().Int("page", page).Msg("Reached end of listing")
			break
		}

		for _, repo := range repos {
			if !filter.Match(repo.Name) {
				logger.Debug().Msgf("Skipping %s", repo.Name)
				continue
			}

			logger.Info().Msgf("Found %s", repo.Name)
			result = append(result, repo)
		}
	}

	return result, nil
}
