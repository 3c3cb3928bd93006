package generator

import (
	"context"
	"fmt"
	"io"

	"github.com/Scalingo/sclng-profile-readme/config"
	"github.com/Scalingo/sclng-profile-readme/render"
	"github.com/Scalingo/sclng-profile-readme/service"
	log "github.com/sirupsen/logrus"
)

// Run generates the profile document of the configured account and writes it to Profile.OutputPath.
// The token and the account are checked before the github client is built.
func Run(ctx context.Context, cfg config.Config, newClient service.GithubClientFactory, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("GITHUB_TOKEN is required in env: %w", err)
	}

	account, err := cfg.Account()
	if err != nil {
		return fmt.Errorf("could not determine GitHub username, set GITHUB_REPOSITORY or GITHUB_ACTOR in env: %w", err)
	}

	githubClient, err := newClient(ctx, cfg.Github)
	if err != nil {
		return err
	}

	githubService := service.NewGithubService(githubClient, service.NewRateLimiter(cfg.Github))
	aggregator := service.NewAggregator(githubService, cfg.Tasks.MaxParallelTasksAllowed)
	profileService := service.NewProfileService(githubService, aggregator, cfg.Profile.TopLanguages)

	log.WithField("account", account).Info("generating profile document")

	profile, err := profileService.BuildProfile(ctx, account)
	if err != nil {
		return err
	}

	document, err := render.Readme(profile, render.NewOptions(cfg.Profile))
	if err != nil {
		return err
	}

	if err := render.WriteFile(cfg.Profile.OutputPath, document); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"languages": len(profile.Languages),
		"topics":    len(profile.Topics),
		"skipped":   len(profile.Skipped),
		"output":    cfg.Profile.OutputPath,
	}).Debug("profile document written")

	_, err = fmt.Fprintf(stdout, "%s generated.\n", cfg.Profile.OutputPath)
	return err
}
