package model

import "sort"

type LanguageUsage struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// Aggregate holds the language tally and the topic set built from the repositories of one account
type Aggregate struct {
	Languages map[string]int64
	Topics    map[string]struct{}
	Fetched   int
	Skipped   []SkippedRepository
}

func NewAggregate() *Aggregate {
	return &Aggregate{
		Languages: make(map[string]int64),
		Topics:    make(map[string]struct{}),
		Skipped:   make([]SkippedRepository, 0),
	}
}

// Add merges a single repository result into the aggregate
func (a *Aggregate) Add(result RepositoryResult) {
	if result.Skipped() {
		a.Skipped = append(a.Skipped, SkippedRepository{
			FullName: result.Repository.FullName,
			Reason:   result.Reason,
		})
		return
	}

	a.Fetched++

	for language, bytes := range result.Languages {
		a.Languages[language] += int64(bytes)
	}

	for _, topic := range result.Topics {
		a.Topics[topic] = struct{}{}
	}
}

// TopLanguages returns the n languages with the most bytes, ties are ordered by name.
// A negative or zero n returns every language.
func (a *Aggregate) TopLanguages(n int) []LanguageUsage {
	languages := make([]LanguageUsage, 0, len(a.Languages))
	for name, bytes := range a.Languages {
		languages = append(languages, LanguageUsage{Name: name, Bytes: bytes})
	}

	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Bytes != languages[j].Bytes {
			return languages[i].Bytes > languages[j].Bytes
		}
		return languages[i].Name < languages[j].Name
	})

	if n > 0 && len(languages) > n {
		languages = languages[:n]
	}

	return languages
}

func (a *Aggregate) SortedTopics() []string {
	topics := make([]string, 0, len(a.Topics))
	for topic := range a.Topics {
		topics = append(topics, topic)
	}

	sort.Strings(topics)
	return topics
}

// SortedSkipped returns skipped repositories by name, results arrive in completion order
func (a *Aggregate) SortedSkipped() []SkippedRepository {
	skipped := make([]SkippedRepository, len(a.Skipped))
	copy(skipped, a.Skipped)

	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].FullName < skipped[j].FullName
	})

	return skipped
}

// Profile is what gets rendered in the document
type Profile struct {
	Account   string              `json:"account"`
	Languages []LanguageUsage     `json:"languages"`
	Topics    []string            `json:"topics"`
	Skipped   []SkippedRepository `json:"skipped"`
}

func (a *Aggregate) Profile(account string, topLanguages int) Profile {
	return Profile{
		Account:   account,
		Languages: a.TopLanguages(topLanguages),
		Topics:    a.SortedTopics(),
		Skipped:   a.SortedSkipped(),
	}
}
