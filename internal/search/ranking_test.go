package search

import (
	"testing"
	"time"

	"nextstep/internal/domain/job"

	"github.com/google/uuid"
)

func TestProfileVariants(t *testing.T) {
	variants := ProfileVariants([]string{" Go ", "", "Postgres"}, "Berlin", "senior backend")

	want := []string{"Go", "Postgres", "Berlin", "senior", "backend"}
	if len(variants) != len(want) {
		t.Fatalf("expected %d variants, got %v", len(want), variants)
	}
	for i := range want {
		if variants[i] != want[i] {
			t.Fatalf("variant %d: want %q, got %q", i, want[i], variants[i])
		}
	}
}

func TestComputeRelevance_SkillOutweighsDescription(t *testing.T) {
	skillMatch := job.Job{Title: "Engineer", Skills: []string{"go", "kubernetes"}}
	descMatch := job.Job{Title: "Engineer", Description: "some go experience useful"}

	variants := []string{"go"}
	if ComputeRelevance(skillMatch, variants) <= ComputeRelevance(descMatch, variants) {
		t.Fatalf("skill hit must score above description hit")
	}
}

func TestComputeRelevance_CapsAtTen(t *testing.T) {
	j := job.Job{
		Title:       "Go Go Go",
		Description: "go go go",
		Skills:      []string{"go"},
		Locations:   []string{"go town"},
	}
	variants := []string{"go", "go", "go", "go", "go"}
	if got := ComputeRelevance(j, variants); got != 10 {
		t.Fatalf("expected cap at 10, got %v", got)
	}
}

func TestComputeRelevance_NoVariants(t *testing.T) {
	if got := ComputeRelevance(job.Job{Title: "Anything"}, nil); got != 0 {
		t.Fatalf("expected 0 without variants, got %v", got)
	}
}

func TestComputeFreshness_Buckets(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		age  time.Duration
		want float64
	}{
		{2 * time.Hour, 5},
		{2 * 24 * time.Hour, 4},
		{5 * 24 * time.Hour, 3},
		{10 * 24 * time.Hour, 2},
		{20 * 24 * time.Hour, 1},
		{60 * 24 * time.Hour, 0},
	}
	for _, c := range cases {
		j := job.Job{CreatedAt: now.Add(-c.age)}
		if got := ComputeFreshness(j); got != c.want {
			t.Fatalf("age %v: want %v, got %v", c.age, c.want, got)
		}
	}
}

func TestComputeFreshness_ZeroTime(t *testing.T) {
	if got := ComputeFreshness(job.Job{}); got != 0 {
		t.Fatalf("missing timestamp must score 0, got %v", got)
	}
}

func TestKeywordRanker_OrdersByScore(t *testing.T) {
	now := time.Now().UTC()
	strong := job.Job{ID: uuid.New(), Title: "Go Engineer", Skills: []string{"go"}, CreatedAt: now}
	weak := job.Job{ID: uuid.New(), Title: "Accountant", CreatedAt: now}
	stale := job.Job{ID: uuid.New(), Title: "Go Engineer", Skills: []string{"go"}, CreatedAt: now.Add(-90 * 24 * time.Hour)}

	ranked := NewKeywordRanker().Rank([]job.Job{weak, stale, strong}, []string{"go"})

	if ranked[0].ID != strong.ID {
		t.Fatalf("fresh skill match must rank first")
	}
	if ranked[2].ID != weak.ID {
		t.Fatalf("no-signal job must rank last")
	}
	if len(ranked) != 3 {
		t.Fatalf("ranking must preserve the set")
	}
}

func TestKeywordRanker_StableForTies(t *testing.T) {
	now := time.Now().UTC()
	first := job.Job{ID: uuid.New(), Title: "Chef", CreatedAt: now}
	second := job.Job{ID: uuid.New(), Title: "Baker", CreatedAt: now}

	ranked := NewKeywordRanker().Rank([]job.Job{first, second}, []string{"go"})
	if ranked[0].ID != first.ID || ranked[1].ID != second.ID {
		t.Fatalf("equal scores must keep input order")
	}
}
