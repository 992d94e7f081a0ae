package manifest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sln-manifest/config"
	"sln-manifest/constants"
)

// Publish commits content to the target manifest file. It returns false without writing when
// the remote content is already identical or when dry-run mode is enabled.
func Publish(ctx context.Context, store ContentStore, target config.Manifest, content []byte) (bool, error) {
	logger := log.With().
		Str("manifest", fmt.Sprintf("%s/%s", target.Owner, target.Repository)).
		Str("path", target.Path).
		Logger()

	current, err := store.GetFile(ctx, target.Owner, target.Repository, target.Path, target.Branch)
	if err != nil {
		return false, fmt.Errorf("fetching current manifest: %w", err)
	}

	if current.Content == string(content) {
		logger.Info().Msg("Nothing new")
		return false, nil
	}

	logChanges(logger, []byte(current.Content), content)

	dryRun, _ := ctx.Value(constants.DRY_RUN).(bool)
	if dryRun {
		logger.Info().Msg("Would update the manifest, but dry-run mode is enabled")
		return false, nil
	}

	logger.Info().Msg("Adding new examples")

	err = store.UpdateFile(ctx, target.Owner, target.Repository, target.Path, target.Branch, target.Message, string(content), current.Sha)
	if err != nil {
		return false, fmt.Errorf("updating manifest: %w", err)
	}

	return true, nil
}
