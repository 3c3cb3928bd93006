package service

import (
	"context"

	"github.com/Scalingo/sclng-profile-readme/model"
	log "github.com/sirupsen/logrus"
)

type ProfileService interface {
	BuildProfile(ctx context.Context, account string) (model.Profile, error)
}

type profileService struct {
	githubService GithubService
	aggregator    Aggregator
	topLanguages  int
}

func NewProfileService(githubService GithubService, aggregator Aggregator, topLanguages int) ProfileService {
	return profileService{
		githubService: githubService,
		aggregator:    aggregator,
		topLanguages:  topLanguages,
	}
}

// BuildProfile resolves the account then aggregates its owned repositories.
// Only identity resolution and repository listing can fail, per repository errors are skipped.
func (s profileService) BuildProfile(ctx context.Context, account string) (model.Profile, error) {
	login, err := s.githubService.GetAccount(ctx, account)
	if err != nil {
		return model.Profile{}, err
	}

	repos, err := s.githubService.ListOwnedRepositories(ctx, login)
	if err != nil {
		log.WithError(err).WithField("account", login).Error("unable to list repositories")
		return model.Profile{}, err
	}

	aggregate := s.aggregator.Aggregate(ctx, repos)
	return aggregate.Profile(account, s.topLanguages), nil
}
