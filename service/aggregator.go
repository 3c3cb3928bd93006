package service

import (
	"context"

	"github.com/Scalingo/sclng-profile-readme/model"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

type Aggregator interface {
	Aggregate(ctx context.Context, repos []model.GithubRepository) *model.Aggregate
}

type aggregator struct {
	githubService GithubService
	maxParallel   int
}

// NewAggregator builds an aggregator fetching at most maxParallel repositories at once.
// 1 keeps the fetching strictly sequential.
func NewAggregator(githubService GithubService, maxParallel int) Aggregator {
	if maxParallel < 1 {
		maxParallel = 1
	}

	return aggregator{
		githubService: githubService,
		maxParallel:   maxParallel,
	}
}

// Aggregate fetches the stats of every repository and merges them.
// The tally and the topic set only live in the returned aggregate.
func (a aggregator) Aggregate(ctx context.Context, repos []model.GithubRepository) *model.Aggregate {
	swg := sizedwaitgroup.New(a.maxParallel)

	// buffered to hold every result, workers never block on send
	results := make(chan model.RepositoryResult, len(repos))

	for _, r := range repos {
		swg.Add()
		go func(r model.GithubRepository) {
			defer swg.Done()
			results <- a.githubService.FetchRepositoryStats(ctx, r)
		}(r)
	}

	log.Debug("waiting for all repositories stats to be fetched")
	swg.Wait()
	close(results)

	aggregate := model.NewAggregate()

	for result := range results {
		logResult(result)
		aggregate.Add(result)
	}

	log.WithFields(log.Fields{
		"fetched":   aggregate.Fetched,
		"skipped":   len(aggregate.Skipped),
		"languages": len(aggregate.Languages),
		"topics":    len(aggregate.Topics),
	}).Info("repositories aggregated")

	return aggregate
}

func logResult(result model.RepositoryResult) {
	fields := log.Fields{"repository": result.Repository.FullName}

	switch {
	case result.Skipped() && result.Err != nil:
		log.WithFields(fields).WithError(result.Err).WithField("reason", result.Reason).Warn("repository skipped")
	case result.Skipped():
		log.WithFields(fields).WithField("reason", result.Reason).Debug("repository skipped")
	case result.TopicsErr != nil:
		log.WithFields(fields).WithError(result.TopicsErr).Warn("topics unavailable for repository")
	default:
		log.WithFields(fields).Debug("repository stats fetched")
	}
}
