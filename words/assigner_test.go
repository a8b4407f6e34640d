package words

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/adilhasan/mufradat/glossary"
	"github.com/adilhasan/mufradat/internal/testutil"
	"github.com/adilhasan/mufradat/models"
	"github.com/adilhasan/mufradat/period"
)

func newGlossary(t *testing.T, content string) *glossary.Provider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write glossary: %v", err)
	}
	p, err := glossary.Load(path)
	if err != nil {
		t.Fatalf("failed to load glossary: %v", err)
	}
	return p
}

func afternoonOccurrence() period.Occurrence {
	clock := period.NewClock(-5)
	// 16:00 local = 21:00 UTC
	return clock.At(time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC))
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	g := newGlossary(t, `{"Sabr": "patience", "Shukr": "gratitude"}`)
	a := NewAssigner(db, g, 10)
	occ := afternoonOccurrence()

	first, err := a.GetOrCreate(context.Background(), occ)
	if err != nil {
		t.Fatalf("first GetOrCreate failed: %v", err)
	}
	if first.Word != "Sabr" && first.Word != "Shukr" {
		t.Fatalf("word %q is not in the glossary", first.Word)
	}
	if !first.Persisted() {
		t.Fatal("first word should be persisted")
	}

	second, err := a.GetOrCreate(context.Background(), occ)
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if second.Word != first.Word || second.ID != first.ID {
		t.Errorf("second call returned %+v, want %+v", second, first)
	}
}

func TestConcurrentCallsConverge(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	g := newGlossary(t, `{"Sabr": "a", "Shukr": "b", "Tawakkul": "c", "Taqwa": "d", "Ihsan": "e"}`)
	a := NewAssigner(db, g, 10)
	occ := afternoonOccurrence()

	const callers = 8
	results := make([]models.PeriodWord, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := a.GetOrCreate(context.Background(), occ)
			if err != nil {
				t.Errorf("caller %d failed: %v", i, err)
				return
			}
			results[i] = w
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if results[i].Word != results[0].Word {
			t.Fatalf("caller %d got %q, caller 0 got %q", i, results[i].Word, results[0].Word)
		}
	}

	var count int64
	if err := db.Model(&models.PeriodWord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one persisted word, found %d", count)
	}
}

func TestLookbackAvoidsRecentWords(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	g := newGlossary(t, `{"Sabr": "a", "Shukr": "b", "Tawakkul": "c", "Taqwa": "d"}`)
	a := NewAssigner(db, g, 10) // clamped to len/2 = 2

	clock := period.NewClock(-5)
	occ := clock.At(time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC))
	prev := clock.Previous(occ)
	prev2 := clock.Previous(prev)

	seed := []models.PeriodWord{
		{Period: string(prev2.ID), PeriodStart: prev2.Start, Word: "Sabr"},
		{Period: string(prev.ID), PeriodStart: prev.Start, Word: "Shukr"},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	w, err := a.GetOrCreate(context.Background(), occ)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if w.Word == "Sabr" || w.Word == "Shukr" {
		t.Errorf("word %q repeats one of the two most recent assignments", w.Word)
	}
}

func TestGlossaryUnavailable(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	p, _ := glossary.Load(filepath.Join(t.TempDir(), "missing.json"))
	a := NewAssigner(db, p, 10)

	if _, err := a.GetOrCreate(context.Background(), afternoonOccurrence()); err == nil {
		t.Fatal("expected an error when the glossary has no content")
	}
}

func TestTransientWordWhenStoreDown(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	g := newGlossary(t, `{"Sabr": "patience", "Shukr": "gratitude"}`)
	a := NewAssigner(db, g, 10)

	if err := db.Migrator().DropTable(&models.PeriodWord{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	w, err := a.GetOrCreate(context.Background(), afternoonOccurrence())
	if err != nil {
		t.Fatalf("degraded mode should still produce a word, got error: %v", err)
	}
	if w.Persisted() {
		t.Error("word should be transient when the store is unavailable")
	}
	if w.Word != "Sabr" && w.Word != "Shukr" {
		t.Errorf("transient word %q is not in the glossary", w.Word)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	db := testutil.OpenDB(t, &models.PeriodWord{})
	g := newGlossary(t, `{"Sabr": {"definition": "patience", "arabic": "صبر"}, "Shukr": "gratitude"}`)
	a := NewAssigner(db, g, 10)

	clock := period.NewClock(-5)
	occ := clock.At(time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC))
	prev := clock.Previous(occ)

	seed := []models.PeriodWord{
		{Period: string(prev.ID), PeriodStart: prev.Start, Word: "Sabr"},
		{Period: string(occ.ID), PeriodStart: occ.Start, Word: "Shukr"},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	entries, err := a.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Word != "Shukr" || entries[1].Word != "Sabr" {
		t.Errorf("history not newest-first: %+v", entries)
	}
	if entries[1].Meaning != "patience" || entries[1].Arabic != "صبر" {
		t.Errorf("glossary content missing from history entry: %+v", entries[1])
	}
}
