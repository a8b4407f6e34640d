package checkin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/achievements"
	"github.com/adilhasan/mufradat/models"
	"github.com/adilhasan/mufradat/period"
	"github.com/adilhasan/mufradat/streak"
	"github.com/adilhasan/mufradat/words"
)

var (
	// ErrUserNotFound means the account behind a valid token no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyCheckedIn is the expected outcome of a duplicate check-in
	// within one period. No state changes when it is returned.
	ErrAlreadyCheckedIn = errors.New("already checked in for this period")
	// ErrWordUnavailable means no word could be produced by any path.
	ErrWordUnavailable = errors.New("no word available for current period")
)

// Result is the outcome of a successful check-in.
type Result struct {
	Points          float64
	Streak          int
	Multiplier      float64
	PointsEarned    float64
	NewAchievements []achievements.Definition
	Word            models.PeriodWord
}

// Status describes a user's eligibility to check in right now.
type Status struct {
	Eligible      bool
	WordAvailable bool
	Points        float64
	Streak        int
	Multiplier    float64
}

// Service orchestrates the check-in transaction: period resolution, word
// assignment, streak advancement, point accrual, achievement evaluation, and
// a single atomic user update.
type Service struct {
	db       *gorm.DB
	clock    period.Clock
	assigner *words.Assigner
}

// NewService wires the orchestrator.
func NewService(db *gorm.DB, clock period.Clock, assigner *words.Assigner) *Service {
	return &Service{db: db, clock: clock, assigner: assigner}
}

// Clock exposes the period clock shared by all check-in code paths.
func (s *Service) Clock() period.Clock {
	return s.clock
}

// CheckIn performs one scoring check-in for username at instant now.
//
// At-most-one success per user per period is guaranteed by a conditional
// update: the final write only applies while last_check_in still lies before
// the current period, so two concurrent duplicates cannot both commit even
// across multiple server instances. Nothing is persisted until every
// in-memory computation has finished; a failure at any earlier step leaves no
// side effect beyond the shared period word.
func (s *Service) CheckIn(ctx context.Context, username string, now time.Time) (*Result, error) {
	occ := s.clock.At(now)

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.LastCheckIn != nil && occ.Contains(*user.LastCheckIn) {
		return nil, ErrAlreadyCheckedIn
	}

	word, err := s.assigner.GetOrCreate(ctx, occ)
	if err != nil {
		return nil, ErrWordUnavailable
	}

	adv := streak.Advance(user.LastCheckIn, user.Streak, user.Multiplier, s.clock.Previous(occ))
	earned := streak.Round3(adv.Multiplier)

	user.KnowledgePoints = streak.Round3(user.KnowledgePoints + earned)
	user.Streak = adv.Streak
	user.Multiplier = adv.Multiplier
	checkInAt := now
	user.LastCheckIn = &checkInAt
	if user.Achievements == nil {
		user.Achievements = achievements.Set{}
	}
	newly := achievements.Evaluate(user.Achievements, user.KnowledgePoints, user.Streak, now)

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND (last_check_in IS NULL OR last_check_in < ?)", user.ID, occ.Start).
		Select("knowledge_points", "streak", "multiplier", "last_check_in", "achievements", "updated_at").
		Updates(&user)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race against a concurrent duplicate request
		return nil, ErrAlreadyCheckedIn
	}

	return &Result{
		Points:          user.KnowledgePoints,
		Streak:          user.Streak,
		Multiplier:      user.Multiplier,
		PointsEarned:    earned,
		NewAchievements: newly,
		Word:            word,
	}, nil
}

// Eligibility reports whether the user may check in during the period
// containing now, without changing any state. Already-checked-in is a state
// here, not an error.
func (s *Service) Eligibility(ctx context.Context, username string, now time.Time) (*Status, error) {
	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	occ := s.clock.At(now)
	st := &Status{
		Points:     user.KnowledgePoints,
		Streak:     user.Streak,
		Multiplier: user.Multiplier,
	}
	if user.LastCheckIn != nil && occ.Contains(*user.LastCheckIn) {
		return st, nil
	}

	st.Eligible = true
	if _, err := s.assigner.GetOrCreate(ctx, occ); err == nil {
		st.WordAvailable = true
	}
	return st, nil
}

// Stats returns the user's current cumulative state.
func (s *Service) Stats(ctx context.Context, username string) (*models.User, error) {
	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) loadUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, err
}
