package service

import (
	"context"
	"strings"

	"github.com/Scalingo/sclng-profile-readme/config"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// GithubClientFactory builds the github client once the configuration has been validated
type GithubClientFactory func(ctx context.Context, cfg config.GithubConfig) (*github.Client, error)

// NewGithubClient authenticates every request with the configured token
func NewGithubClient(ctx context.Context, cfg config.GithubConfig) (*github.Client, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	client := github.NewClient(oauth2.NewClient(ctx, tokenSource))

	if cfg.APIBaseURL == "" {
		return client, nil
	}

	log.WithField("baseURL", cfg.APIBaseURL).Debug("will setup github client for an enterprise server")

	baseURL := strings.TrimSuffix(cfg.APIBaseURL, "/") + "/"
	return client.WithEnterpriseURLs(baseURL, baseURL)
}

// NewRateLimiter paces requests when RequestsPerSecond is set, the client defaults apply otherwise
func NewRateLimiter(cfg config.GithubConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
}
