package achievements

import (
	"testing"
	"time"
)

func TestFirstEvaluationEarnsFirstCheckIn(t *testing.T) {
	set := Set{}
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	earned := Evaluate(set, 1, 1, now)
	if len(earned) != 1 || earned[0].ID != FirstCheckIn {
		t.Fatalf("expected only firstCheckIn, got %v", ids(earned))
	}
	st := set[FirstCheckIn]
	if !st.Earned || st.Date == nil || !st.Date.Equal(now) {
		t.Errorf("firstCheckIn state not stamped: %+v", st)
	}
}

func TestThresholdsFireInCatalogueOrder(t *testing.T) {
	set := Set{}
	now := time.Now().UTC()

	earned := Evaluate(set, 12, 3, now)
	want := []ID{FirstCheckIn, StreakThree, KnowledgeSeeker}
	got := ids(earned)
	if len(got) != len(want) {
		t.Fatalf("earned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("earned %v, want %v", got, want)
		}
	}
}

func TestEachRuleFiresAtMostOnce(t *testing.T) {
	set := Set{}
	now := time.Now().UTC()

	Evaluate(set, 10.2, 2, now)
	again := Evaluate(set, 11, 3, now.Add(time.Hour))

	if len(again) != 1 || again[0].ID != StreakThree {
		t.Fatalf("second evaluation should only earn streakThree, got %v", ids(again))
	}
}

func TestMonotonicUnderDecreasingInputs(t *testing.T) {
	set := Set{}
	now := time.Now().UTC()
	firstDate := now

	Evaluate(set, 55, 30, firstDate)
	for _, def := range Catalogue {
		if !set.Earned(def.ID) {
			t.Fatalf("%s should be earned", def.ID)
		}
	}

	// hypothetical regression of the inputs must not revert anything
	earned := Evaluate(set, 0, 0, now.Add(time.Hour))
	if len(earned) != 0 {
		t.Errorf("nothing new should be earned, got %v", ids(earned))
	}
	for _, def := range Catalogue {
		st := set[def.ID]
		if !st.Earned {
			t.Errorf("%s reverted to unearned", def.ID)
		}
		if st.Date == nil || !st.Date.Equal(firstDate) {
			t.Errorf("%s earned date changed: %v", def.ID, st.Date)
		}
	}
}

func TestCatalogueIdsAreUnique(t *testing.T) {
	seen := map[ID]bool{}
	for _, def := range Catalogue {
		if seen[def.ID] {
			t.Errorf("duplicate catalogue id %s", def.ID)
		}
		seen[def.ID] = true
	}
	if len(Catalogue) != 6 {
		t.Errorf("catalogue has %d entries, want 6", len(Catalogue))
	}
}

func ids(defs []Definition) []ID {
	out := make([]ID, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}
