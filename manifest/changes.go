package manifest

import (
	"maps"
	"slices"

	"github.com/r3labs/diff/v3"
	"github.com/rs/zerolog"

	"sln-manifest/vcs/repository"
)

// ChangeSet lists repository names, sorted, that differ between two manifests.
type ChangeSet struct {
	Added   []string
	Removed []string
	Updated []string
}

func repomapFromList(repos []repository.Repository) map[string]repository.Repository {
	result := map[string]repository.Repository{}
	for _, val := range repos {
		result[val.Name] = val
	}
	return result
}

func Compare(previous, current []repository.Repository) ChangeSet {
	// Create lookup tables for the repositories
	prepos := repomapFromList(previous)
	crepos := repomapFromList(current)

	added := map[string]struct{}{}
	removed := map[string]struct{}{}
	updated := map[string]struct{}{}

	for name := range prepos {
		if _, ok := crepos[name]; !ok {
			removed[name] = struct{}{}
		}
	}

	for name, crepo := range crepos {
		prepo, ok := prepos[name]
		if !ok {
			added[name] = struct{}{}
		} else if diff.Changed(prepo, crepo) {
			updated[name] = struct{}{}
		}
	}

	return ChangeSet{
		Added:   slices.Sorted(maps.Keys(added)),
		Removed: slices.Sorted(maps.Keys(removed)),
		Updated: slices.Sorted(maps.Keys(updated)),
	}
}

func (changes ChangeSet) Len() int {
	return len(changes.Added) + len(changes.Removed) + len(changes.Updated)
}

func logChanges(logger zerolog.Logger, previous, content []byte) {
	previousRepos, err := Decode(previous)
	if err != nil {
		logger.Warn().Err(err).Msg("Current manifest is not a repository list")
	}

	currentRepos, err := Decode(content)
	if err != nil {
		logger.Warn().Err(err).Send()
		return
	}

	changes := Compare(previousRepos, currentRepos)
	logger.Info().
		Strs("added", changes.Added).
		Strs("removed", changes.Removed).
		Strs("updated", changes.Updated).
		Msg("Differences found")

	changelog, err := diff.Diff(previousRepos, currentRepos, diff.DisableStructValues())
	if err != nil {
		logger.Debug().Err(err).Msg("Comparison error")
		return
	}

	logger.Debug().Any("changelog", changelog).Send()
}
