package models

import "time"

// PeriodWord is the single glossary word shared by all users for one period
// occurrence. The compound unique index on (period, period_start) is what
// resolves concurrent create races: losers get a duplicate-key error and
// re-read the winner's row.
type PeriodWord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Period      string    `gorm:"size:16;not null;uniqueIndex:idx_period_occurrence" json:"period"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_period_occurrence" json:"period_start"`
	Word        string    `gorm:"size:128;not null" json:"word"`
	CreatedAt   time.Time `json:"created_at"`
}

// Persisted reports whether the record was stored, as opposed to a transient
// fallback word produced while the store was unreachable.
func (w PeriodWord) Persisted() bool {
	return w.ID != 0
}
