package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/CIDgravity/snakelet"
	"github.com/Scalingo/sclng-profile-readme/model"
	"github.com/joho/godotenv"
)

// config structure
type Config struct {
	Github  GithubConfig  `mapstructure:"GITHUB"`
	Profile ProfileConfig `mapstructure:"PROFILE"`
	API     APIConfig     `mapstructure:"API"`
	Tasks   TasksConfig   `mapstructure:"TASKS"`
	Logs    LogsConfig    `mapstructure:"LOGS"`
}

type GithubConfig struct {
	Token             string  `mapstructure:"Token"`
	Repository        string  `mapstructure:"Repository"` // owner/name, the owner is the account
	Actor             string  `mapstructure:"Actor"`
	APIBaseURL        string  `mapstructure:"APIBaseURL"`        // empty for github.com
	RequestsPerSecond float64 `mapstructure:"RequestsPerSecond"` // 0 means no pacing
}

type ProfileConfig struct {
	TopLanguages int    `mapstructure:"TopLanguages"`
	OutputPath   string `mapstructure:"OutputPath"`
	IconBaseURL  string `mapstructure:"IconBaseURL"`
	StatsBaseURL string `mapstructure:"StatsBaseURL"`
	Theme        string `mapstructure:"Theme"`
}

type APIConfig struct {
	ListenPort string `mapstructure:"ListenPort"`
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJSON"`
}

// Load reads defaults, then the config file when one exists, then the environment.
// An empty configFilePath looks for config/config.toml next to the binary and in the working directory.
func Load(configFilePath string) (*Config, error) {
	// .env is optional, already exported variables win
	_ = godotenv.Load()

	cfg := GetDefault()

	if configFilePath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		configFilePath = path
	}

	if configFilePath != "" {
		if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// findConfigFile returns an empty path when no config file exists, defaults are enough to run
func findConfigFile() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	candidates := []string{
		filepath.Join(dir, "config", "config.toml"),
		filepath.Join("config", "config.toml"),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}

// ApplyEnv overrides github settings with the variables set by the actions runner
func (c *Config) ApplyEnv(getenv func(string) string) {
	if token := getenv("GITHUB_TOKEN"); token != "" {
		c.Github.Token = token
	}

	if repository := getenv("GITHUB_REPOSITORY"); repository != "" {
		c.Github.Repository = repository
	}

	if actor := getenv("GITHUB_ACTOR"); actor != "" {
		c.Github.Actor = actor
	}
}

// Validate must pass before any github client is built
func (c Config) Validate() error {
	if strings.TrimSpace(c.Github.Token) == "" {
		return model.ErrMissingToken
	}
	return nil
}

// Account is the owner part of the repository, or the actor when there is no repository
func (c Config) Account() (string, error) {
	owner, _, _ := strings.Cut(c.Github.Repository, "/")
	owner = strings.TrimSpace(owner)

	if owner == "" {
		owner = strings.TrimSpace(c.Github.Actor)
	}

	if owner == "" {
		return "", model.ErrUnresolvableAccount
	}

	return owner, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		Profile: ProfileConfig{
			TopLanguages: 20,
			OutputPath:   "README.md",
			IconBaseURL:  "https://cdn.simpleicons.org",
			StatsBaseURL: "https://github-readme-stats.vercel.app",
			Theme:        "dark",
		},
		API: APIConfig{
			ListenPort: "5000",
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 1,
		},
		Logs: LogsConfig{
			Level:            "info",
			OutputLogsAsJSON: false,
		},
	}
}
