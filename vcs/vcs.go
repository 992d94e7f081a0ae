package vcs

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sln-manifest/vcs/repository"
)

func GetLogger(repo repository.Repository) zerolog.Logger {
	return log.With().Str("repository", repo.Name).Logger()
}
