package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Scalingo/sclng-profile-readme/model"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type GithubService interface {
	GetAccount(ctx context.Context, login string) (string, error)
	ListOwnedRepositories(ctx context.Context, login string) ([]model.GithubRepository, error)
	FetchRepositoryStats(ctx context.Context, r model.GithubRepository) model.RepositoryResult

	HandleRequestErrors(err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
}

// NewGithubService wraps the github client.
// The limiter only paces requests, pass nil to rely on the client defaults.
func NewGithubService(githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	if rateLimiter == nil {
		rateLimiter = rate.NewLimiter(rate.Inf, 1)
	}

	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
	}
}

// GetAccount resolves the login of the account, any failure makes the account unresolvable
func (s githubService) GetAccount(ctx context.Context, login string) (string, error) {
	if err := s.githubRateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	user, _, err := s.githubClient.Users.Get(ctx, login)
	if err != nil {
		log.WithError(err).WithField("account", login).Error("unable to resolve github account")
		return "", fmt.Errorf("%w: %s", model.ErrUnresolvableAccount, login)
	}

	if user.GetLogin() == "" {
		return "", fmt.Errorf("%w: %s", model.ErrUnresolvableAccount, login)
	}

	return user.GetLogin(), nil
}

// ListOwnedRepositories walks every page of repositories owned by the account
func (s githubService) ListOwnedRepositories(ctx context.Context, login string) ([]model.GithubRepository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type: "owner",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	repositories := make([]model.GithubRepository, 0)

	for {
		if err := s.githubRateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"account": login,
			"page":    opts.Page,
		}).Debug("fetch repositories page from github")

		repos, resp, err := s.githubClient.Repositories.ListByUser(ctx, login, opts)
		if err != nil {
			return nil, s.HandleRequestErrors(err)
		}

		for _, r := range repos {
			if r == nil {
				continue
			}

			repositories = append(repositories, model.GithubRepository{
				ID:         r.GetID(),
				FullName:   r.GetFullName(),
				Owner:      r.GetOwner().GetLogin(),
				Repository: r.GetName(),
				Archived:   r.GetArchived(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.WithFields(log.Fields{
		"account":              login,
		"numberOfRepositories": len(repositories),
	}).Info("repositories listed")

	return repositories, nil
}

// FetchRepositoryStats loads languages then topics of a single repository.
// It never returns an error: failures end up in the result so that one repository can't abort the run.
func (s githubService) FetchRepositoryStats(ctx context.Context, r model.GithubRepository) model.RepositoryResult {
	result := model.RepositoryResult{Repository: r}

	if r.Archived {
		result.Status = model.RepositorySkipped
		result.Reason = model.SkipReasonArchived
		return result
	}

	// the owner is missing for malformed payloads, nothing can be fetched for them
	if r.Owner == "" || r.Repository == "" {
		result.Status = model.RepositorySkipped
		result.Reason = model.SkipReasonInvalidData
		return result
	}

	if err := s.githubRateLimiter.Wait(ctx); err != nil {
		result.Status = model.RepositorySkipped
		result.Reason = model.SkipReasonLanguages
		result.Err = err
		return result
	}

	languages, _, err := s.githubClient.Repositories.ListLanguages(ctx, r.Owner, r.Repository)
	if err != nil {
		result.Status = model.RepositorySkipped
		result.Reason = model.SkipReasonLanguages
		result.Err = s.HandleRequestErrors(err)
		return result
	}

	result.Status = model.RepositoryFetched
	result.Languages = languages

	if err := s.githubRateLimiter.Wait(ctx); err != nil {
		result.TopicsErr = err
		return result
	}

	topics, _, err := s.githubClient.Repositories.ListAllTopics(ctx, r.Owner, r.Repository)
	if err != nil {
		result.TopicsErr = s.HandleRequestErrors(err)
		return result
	}

	result.Topics = topics
	return result
}

// HandleRequestErrors classifies errors returned by the github client
func (s githubService) HandleRequestErrors(err error) error {
	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError

	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return fmt.Errorf("%w: %v", model.ErrRateLimitReached, err)
	}

	log.WithError(err).Debug("error catched when fetching data from github")
	return fmt.Errorf("%w: %v", model.ErrFetch, err)
}
