package words

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/glossary"
	"github.com/adilhasan/mufradat/models"
	"github.com/adilhasan/mufradat/period"
	"github.com/adilhasan/mufradat/utils"
)

// ErrGlossaryUnavailable is returned when no word can be produced because the
// glossary has no content and a reload attempt did not recover it.
var ErrGlossaryUnavailable = errors.New("glossary unavailable, no word can be selected")

const defaultLookback = 10

// Assigner guarantees a single shared word per period occurrence. Selection is
// random but skips the most recently assigned words to avoid short-term
// repetition; convergence across concurrent callers relies on the store's
// unique index, not an application lock.
type Assigner struct {
	db       *gorm.DB
	glossary *glossary.Provider
	lookback int
}

// NewAssigner creates an Assigner. lookback <= 0 selects the default.
func NewAssigner(db *gorm.DB, g *glossary.Provider, lookback int) *Assigner {
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &Assigner{db: db, glossary: g, lookback: lookback}
}

// GetOrCreate returns the word for the given period occurrence, creating it
// on first demand. A duplicate-key conflict on insert means another request
// won the race; the winner's row is re-read and returned. If the store itself
// is unavailable, a transient non-persisted word is returned so the request
// can still complete; such a word is only valid for the current request.
func (a *Assigner) GetOrCreate(ctx context.Context, occ period.Occurrence) (models.PeriodWord, error) {
	existing, err := a.find(ctx, occ)
	if err == nil {
		return existing, nil
	}
	storeDown := !errors.Is(err, gorm.ErrRecordNotFound)

	word, selErr := a.pick(ctx)
	if selErr != nil {
		return models.PeriodWord{}, selErr
	}

	record := models.PeriodWord{
		Period:      string(occ.ID),
		PeriodStart: occ.Start,
		Word:        word,
	}

	if storeDown {
		utils.Sugar.Warnf("word store lookup failed, serving transient word %q for period %s: %v", word, occ.ID, err)
		record.ID = 0
		return record, nil
	}

	if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isDuplicateKey(err) {
			// benign race: another request inserted the word first
			if winner, findErr := a.find(ctx, occ); findErr == nil {
				return winner, nil
			}
		}
		utils.Sugar.Warnf("failed to persist word %q for period %s, serving transient: %v", word, occ.ID, err)
		record.ID = 0
		return record, nil
	}

	return record, nil
}

// find looks up the earliest persisted word whose key falls in [start, end).
func (a *Assigner) find(ctx context.Context, occ period.Occurrence) (models.PeriodWord, error) {
	var w models.PeriodWord
	err := a.db.WithContext(ctx).
		Where("period = ? AND period_start >= ? AND period_start < ?", string(occ.ID), occ.Start, occ.End).
		Order("period_start ASC").
		First(&w).Error
	return w, err
}

// pick selects a candidate word: the full glossary minus the most recently
// assigned words, falling back to the full set when the subtraction leaves
// nothing. The glossary gets one reload attempt before being reported
// unavailable.
func (a *Assigner) pick(ctx context.Context) (string, error) {
	if !a.glossary.Available() {
		if err := a.glossary.Reload(); err != nil {
			return "", ErrGlossaryUnavailable
		}
	}

	all := a.glossary.Words()
	if len(all) == 0 {
		return "", ErrGlossaryUnavailable
	}

	lookback := a.lookback
	if half := len(all) / 2; half < lookback {
		lookback = half
	}

	recent := a.recentWords(ctx, lookback)
	candidates := all[:0:0]
	for _, w := range all {
		if _, seen := recent[w]; !seen {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = all
	}

	return candidates[rand.Intn(len(candidates))], nil
}

// recentWords returns the last n assigned words. Failures degrade to an empty
// set; anti-repetition is best-effort.
func (a *Assigner) recentWords(ctx context.Context, n int) map[string]struct{} {
	out := map[string]struct{}{}
	if n <= 0 {
		return out
	}
	var rows []models.PeriodWord
	if err := a.db.WithContext(ctx).
		Order("period_start DESC").
		Limit(n).
		Find(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.Word] = struct{}{}
	}
	return out
}

// HistoryEntry is one recently assigned word with its glossary content.
type HistoryEntry struct {
	Word    string    `json:"word"`
	Meaning string    `json:"meaning"`
	Arabic  string    `json:"arabic,omitempty"`
	Period  string    `json:"interval"`
	Date    time.Time `json:"date"`
}

// History lists the most recently assigned words, newest first.
func (a *Assigner) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.PeriodWord
	if err := a.db.WithContext(ctx).
		Order("period_start DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		e := HistoryEntry{Word: r.Word, Period: r.Period, Date: r.PeriodStart, Meaning: "Definition not available"}
		if entry, ok := a.glossary.Lookup(r.Word); ok {
			e.Meaning = entry.Definition
			e.Arabic = entry.Arabic
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
