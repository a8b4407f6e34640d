package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/achievements"
)

// User is a glossary check-in account. Passwords are stored as bcrypt hashes
// only. Points and multiplier are kept rounded to 3 decimal places; the
// achievements column is a JSON map keyed by achievement id so new catalogue
// entries need no schema change.
type User struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Username        string           `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash    string           `gorm:"size:255;not null" json:"-"`
	KnowledgePoints float64          `gorm:"default:0" json:"knowledge_points"`
	Streak          int              `gorm:"default:0" json:"streak"`
	Multiplier      float64          `gorm:"default:1" json:"multiplier"`
	LastCheckIn     *time.Time       `json:"last_check_in"`
	Achievements    achievements.Set `gorm:"serializer:json" json:"achievements"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps and the achievements map are set even
// when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Achievements == nil {
		u.Achievements = achievements.Set{}
	}
	if u.Multiplier == 0 {
		u.Multiplier = 1
	}
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
