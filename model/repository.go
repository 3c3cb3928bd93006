package model

type GithubRepository struct {
	ID         int64  `json:"-"` // ignored from json only used to match fetch results
	FullName   string `json:"fullName"`
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
	Archived   bool   `json:"archived"`
}

type RepositoryStatus string

const (
	RepositoryFetched RepositoryStatus = "fetched"
	RepositorySkipped RepositoryStatus = "skipped"
)

// skip reasons
const (
	SkipReasonArchived    = "archived"
	SkipReasonLanguages   = "languages unavailable"
	SkipReasonInvalidData = "invalid repository data"
)

// RepositoryResult is the outcome of fetching the stats of a single repository.
// A skipped repository contributes nothing to the aggregate, Err holds the cause when there is one.
// TopicsErr is set when languages were fetched but topics were not: the repository still counts.
type RepositoryResult struct {
	Repository GithubRepository
	Status     RepositoryStatus
	Reason     string
	Err        error
	Languages  map[string]int
	Topics     []string
	TopicsErr  error
}

func (r RepositoryResult) Skipped() bool {
	return r.Status == RepositorySkipped
}

type SkippedRepository struct {
	FullName string `json:"fullName"`
	Reason   string `json:"reason"`
}
