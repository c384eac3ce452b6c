package search

import (
	"sort"
	"strings"
	"time"

	"nextstep/internal/domain/job"
)

// Ranker produces a total order over candidate jobs. The feed treats it as
// an opaque capability; this keyword implementation can be swapped for an
// embedding-similarity backend without touching the feed.
type Ranker interface {
	Rank(jobs []job.Job, variants []string) []job.Job
}

type JobScore struct {
	Relevance  float64
	Freshness  float64
	FinalScore float64
}

type KeywordRanker struct{}

func NewKeywordRanker() *KeywordRanker {
	return &KeywordRanker{}
}

// ProfileVariants turns profile features into ranking terms. Skills carry
// the match signal; location is one more term so nearby postings surface.
func ProfileVariants(skills []string, location string, queryText string) []string {
	out := make([]string, 0, len(skills)+2)
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if l := strings.TrimSpace(location); l != "" {
		out = append(out, l)
	}
	if q := strings.TrimSpace(queryText); q != "" {
		out = append(out, strings.Fields(q)...)
	}
	return out
}

func (kr *KeywordRanker) Rank(jobs []job.Job, variants []string) []job.Job {
	type scored struct {
		idx   int
		score JobScore
	}

	scoredJobs := make([]scored, len(jobs))
	for i, j := range jobs {
		s := Score(j, variants)
		scoredJobs[i] = scored{idx: i, score: s}
	}

	sort.SliceStable(scoredJobs, func(a, b int) bool {
		return scoredJobs[a].score.FinalScore > scoredJobs[b].score.FinalScore
	})

	out := make([]job.Job, len(jobs))
	for i, s := range scoredJobs {
		out[i] = jobs[s.idx]
	}
	return out
}

func Score(j job.Job, variants []string) JobScore {
	rel := ComputeRelevance(j, variants)
	fresh := ComputeFreshness(j)
	return JobScore{
		Relevance:  rel,
		Freshness:  fresh,
		FinalScore: rel*2 + fresh,
	}
}

func ComputeRelevance(j job.Job, variants []string) float64 {
	if len(variants) == 0 {
		return 0
	}

	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)
	skills := strings.ToLower(strings.Join(j.Skills, " "))
	locations := strings.ToLower(strings.Join(j.Locations, " "))

	score := 0.0
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if skills != "" && strings.Contains(skills, v) {
			score += 3
		}
		if title != "" && strings.Contains(title, v) {
			score += 2
		}
		if locations != "" && strings.Contains(locations, v) {
			score += 2
		}
		if desc != "" && strings.Contains(desc, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

func ComputeFreshness(j job.Job) float64 {
	if j.CreatedAt.IsZero() {
		return 0
	}

	age := time.Now().UTC().Sub(j.CreatedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}
