/*
Copyright © 2023 Alixinne <alixinne@pm.me>
*/
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sln-manifest/config"
	"sln-manifest/constants"
	"sln-manifest/manifest"
	"sln-manifest/vcs"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sln-manifest [token]",
	Short: "Publish the solution manifest of example repositories",
	Args:  cobra.MaximumNArgs(1),
	Run:   run,
}

var configPath string
var token string
var output string
var concurrency int
var dryRun bool
var debugMode bool

func loadConfig(args []string) (*config.Config, error) {
	config, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if token != "" {
		config.Token = token
	}

	if len(args) > 0 {
		config.Token = args[0]
	}

	if output != "" {
		config.Output = output
	}

	if concurrency > 0 {
		config.Concurrency = concurrency
	}

	return config, config.Validate()
}

// newContext carries the dry-run flag and bounds the whole run by the configured timeout.
func newContext(config *config.Config) (context.Context, context.CancelFunc) {
	ctx := context.WithValue(context.Background(), constants.DRY_RUN, dryRun)
	if config.Timeout > 0 {
		return context.WithTimeout(ctx, config.Timeout)
	}

	return context.WithCancel(ctx)
}

func run(cmd *cobra.Command, args []string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if !debugMode {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	config, err := loadConfig(args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	ctx, cancel := newContext(config)
	defer cancel()

	client, err := vcs.NewGitHubClient(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	err = manifest.Run(ctx, client, config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Also write the manifest to this local file")
	rootCmd.PersistentFlags().IntVarP(&concurrency, "concurrency", "j", 0, "Repositories resolved in parallel")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Dry-run mode")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "D", false, "Debug mode")
}
