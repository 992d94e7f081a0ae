package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"sln-manifest/constants"
)

type Config struct {
	Token       string        `yaml:"token"`
	ApiUrl      string        `yaml:"api_url"`
	UserAgent   string        `yaml:"user_agent"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	Output      string        `yaml:"output"`
	Source      Source        `yaml:"source"`
	Manifest    Manifest      `yaml:"manifest"`
}

// Source describes where repositories are discovered and how their solution files are found.
type Source struct {
	Owner           string   `yaml:"owner"`
	Filter          string   `yaml:"filter"`
	Exclude         []string `yaml:"exclude"`
	SolutionPattern string   `yaml:"solution_pattern"`
}

// Manifest is the remote file the aggregated repository list is written to.
type Manifest struct {
	Owner      string `yaml:"owner"`
	Repository string `yaml:"repository"`
	Path       string `yaml:"path"`
	Branch     string `yaml:"branch"`
	Message    string `yaml:"message"`
}

func Default() *Config {
	return &Config{
		ApiUrl:      constants.DEFAULT_API_URL,
		UserAgent:   constants.DEFAULT_USER_AGENT,
		Concurrency: 1,
		Timeout:     10 * time.Minute,
		Source: Source{
			Owner:           constants.DEFAULT_SOURCE_OWNER,
			Filter:          constants.DEFAULT_NAME_FILTER,
			Exclude:         slices.Clone(constants.DEFAULT_EXCLUDED),
			SolutionPattern: constants.DEFAULT_SOLUTION_PATTERN,
		},
		Manifest: Manifest{
			Owner:      constants.DEFAULT_MANIFEST_OWNER,
			Repository: constants.DEFAULT_MANIFEST_REPOSITORY,
			Path:       constants.DEFAULT_MANIFEST_PATH,
			Message:    constants.DEFAULT_COMMIT_MESSAGE,
		},
	}
}

func readEnvVar(logger zerolog.Logger, val *string) error {
	if strings.HasPrefix(*val, "$") {
		name := strings.TrimPrefix(*val, "$")
		value, exists := os.LookupEnv(name)
		if exists {
			logger.Debug().Msgf("Looked up value from %s", *val)
			*val = value
		} else {
			return fmt.Errorf("missing environment variable %s", *val)
		}
	}

	return nil
}

func (config *Config) massageConfig() error {
	logger := log.With().Str("component", "config").Logger()

	if config.Token == "" {
		if value, exists := os.LookupEnv(constants.TOKEN_ENV); exists {
			logger.Debug().Msgf("Defaulted token to $%s", constants.TOKEN_ENV)
			config.Token = value
		}
	}

	for _, val := range []*string{&config.Token, &config.ApiUrl, &config.UserAgent} {
		err := readEnvVar(logger, val)
		if err != nil {
			return err
		}
	}

	if config.ApiUrl == "" {
		config.ApiUrl = constants.DEFAULT_API_URL
	}

	if !strings.HasSuffix(config.ApiUrl, "/") {
		config.ApiUrl += "/"
	}

	if config.UserAgent == "" {
		config.UserAgent = constants.DEFAULT_USER_AGENT
	}

	if config.Manifest.Message == "" {
		config.Manifest.Message = constants.DEFAULT_COMMIT_MESSAGE
	}

	return nil
}

// Validate reports the first setting that would make a run impossible.
func (config *Config) Validate() error {
	if config.Token == "" {
		return errors.New("missing token for authentication")
	}

	if config.Source.Owner == "" {
		return errors.New("missing source owner")
	}

	if slices.Contains(config.Source.Exclude, "") {
		return errors.New("empty exclusion token would exclude every repository")
	}

	if _, err := config.SolutionPattern(); err != nil {
		return err
	}

	if config.Manifest.Owner == "" || config.Manifest.Repository == "" || config.Manifest.Path == "" {
		return errors.New("manifest owner, repository and path are required")
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", config.Concurrency)
	}

	return nil
}

func (config *Config) SolutionPattern() (*regexp.Regexp, error) {
	pattern, err := regexp.Compile(config.Source.SolutionPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid solution pattern %q: %w", config.Source.SolutionPattern, err)
	}

	return pattern, nil
}

// LoadConfig reads a YAML file over the defaults. An empty path yields the defaults alone.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		err = yaml.Unmarshal(raw, config)
		if err != nil {
			return nil, err
		}
	}

	err := config.massageConfig()
	if err != nil {
		return nil, err
	}

	return config, nil
}
