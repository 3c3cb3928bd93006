package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Scalingo/sclng-profile-readme/model"
	"github.com/stretchr/testify/assert"
)

// fakeGithubService answers FetchRepositoryStats from fixed results keyed by repository name
type fakeGithubService struct {
	mu      sync.Mutex
	results map[string]model.RepositoryResult
	calls   []string
}

func (f *fakeGithubService) GetAccount(_ context.Context, login string) (string, error) {
	return login, nil
}

func (f *fakeGithubService) ListOwnedRepositories(_ context.Context, _ string) ([]model.GithubRepository, error) {
	return nil, nil
}

func (f *fakeGithubService) FetchRepositoryStats(_ context.Context, r model.GithubRepository) model.RepositoryResult {
	f.mu.Lock()
	f.calls = append(f.calls, r.Repository)
	f.mu.Unlock()

	result := f.results[r.Repository]
	result.Repository = r
	return result
}

func (f *fakeGithubService) HandleRequestErrors(err error) error {
	return err
}

func fetched(languages map[string]int, topics ...string) model.RepositoryResult {
	return model.RepositoryResult{Status: model.RepositoryFetched, Languages: languages, Topics: topics}
}

func repositories(names ...string) []model.GithubRepository {
	repos := make([]model.GithubRepository, 0, len(names))
	for i, name := range names {
		repos = append(repos, model.GithubRepository{ID: int64(i + 1), FullName: "alice/" + name, Owner: "alice", Repository: name})
	}
	return repos
}

func TestAggregate(t *testing.T) {
	fake := &fakeGithubService{
		results: map[string]model.RepositoryResult{
			"api":     fetched(map[string]int{"Go": 3000, "Shell": 100}, "docker", "grpc"),
			"web":     fetched(map[string]int{"TypeScript": 2000, "CSS": 100}, "docker", "react"),
			"scripts": fetched(map[string]int{"Shell": 250}),
			"blocked": {Status: model.RepositorySkipped, Reason: model.SkipReasonLanguages, Err: errors.New("forbidden")},
			"old":     {Status: model.RepositorySkipped, Reason: model.SkipReasonArchived},
		},
	}

	aggregate := NewAggregator(fake, 1).Aggregate(context.Background(), repositories("api", "web", "scripts", "blocked", "old"))

	assert.Equal(t, map[string]int64{"Go": 3000, "TypeScript": 2000, "Shell": 350, "CSS": 100}, aggregate.Languages)
	assert.Equal(t, []string{"docker", "grpc", "react"}, aggregate.SortedTopics())
	assert.Equal(t, 3, aggregate.Fetched)
	assert.Equal(t, []model.SkippedRepository{
		{FullName: "alice/blocked", Reason: model.SkipReasonLanguages},
		{FullName: "alice/old", Reason: model.SkipReasonArchived},
	}, aggregate.SortedSkipped())
}

func TestAggregateSequentialOrder(t *testing.T) {
	fake := &fakeGithubService{results: map[string]model.RepositoryResult{}}

	NewAggregator(fake, 1).Aggregate(context.Background(), repositories("a", "b", "c", "d"))

	assert.Equal(t, []string{"a", "b", "c", "d"}, fake.calls)
}

func TestAggregateOrderIndependent(t *testing.T) {
	results := map[string]model.RepositoryResult{
		"one":   fetched(map[string]int{"Go": 500, "Rust": 500}, "cli"),
		"two":   fetched(map[string]int{"Python": 500, "C": 100}, "cli", "ml"),
		"three": fetched(map[string]int{"Zig": 500, "Go": 100}),
	}

	orders := [][]string{
		{"one", "two", "three"},
		{"three", "two", "one"},
		{"two", "three", "one"},
	}

	for _, parallel := range []int{1, 4} {
		for _, order := range orders {
			fake := &fakeGithubService{results: results}
			aggregate := NewAggregator(fake, parallel).Aggregate(context.Background(), repositories(order...))

			assert.Equal(t, []model.LanguageUsage{
				{Name: "Go", Bytes: 600},
				{Name: "Python", Bytes: 500},
				{Name: "Rust", Bytes: 500},
			}, aggregate.TopLanguages(3), "order %v parallel %d", order, parallel)
			assert.Equal(t, []string{"cli", "ml"}, aggregate.SortedTopics())
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	aggregate := NewAggregator(&fakeGithubService{}, 0).Aggregate(context.Background(), nil)

	assert.Empty(t, aggregate.Languages)
	assert.Empty(t, aggregate.Topics)
	assert.Zero(t, aggregate.Fetched)
}
