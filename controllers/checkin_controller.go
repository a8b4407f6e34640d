package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adilhasan/mufradat/achievements"
	"github.com/adilhasan/mufradat/checkin"
	"github.com/adilhasan/mufradat/middleware"
	"github.com/adilhasan/mufradat/utils"
)

// CheckInController exposes the check-in orchestration over HTTP.
type CheckInController struct {
	svc *checkin.Service
}

// NewCheckInController creates a controller instance.
func NewCheckInController(svc *checkin.Service) *CheckInController {
	return &CheckInController{svc: svc}
}

// CheckIn performs the scoring check-in for the authenticated user.
// A duplicate check-in within the current period gets its own code so
// clients can disable the action instead of retrying.
func (c *CheckInController) CheckIn(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextUsernameKey)
	if username == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res, err := c.svc.CheckIn(ctx.Request.Context(), username, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, checkin.ErrAlreadyCheckedIn):
			utils.Error(ctx, http.StatusBadRequest, 40030, "already checked in for this period")
		case errors.Is(err, checkin.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		case errors.Is(err, checkin.ErrWordUnavailable):
			utils.Error(ctx, http.StatusServiceUnavailable, 50330, "no word available for current period")
		default:
			utils.Sugar.Errorf("check-in failed for %q: %v", username, err)
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record check-in")
		}
		return
	}

	names := make([]string, 0, len(res.NewAchievements))
	for _, def := range res.NewAchievements {
		names = append(names, def.Name)
	}

	// leaderboard standings changed
	utils.InvalidateByPrefix("cache:leaderboard")

	utils.Success(ctx, gin.H{
		"points":           res.Points,
		"streak":           res.Streak,
		"multiplier":       res.Multiplier,
		"points_earned":    res.PointsEarned,
		"new_achievements": names,
		"word":             res.Word.Word,
	})
}

// Status reports whether the authenticated user can check in right now,
// alongside their current stats. Already-checked-in is a state, not an error.
func (c *CheckInController) Status(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextUsernameKey)
	if username == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	st, err := c.svc.Eligibility(ctx.Request.Context(), username, time.Now())
	if err != nil {
		if errors.Is(err, checkin.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Sugar.Errorf("eligibility check failed for %q: %v", username, err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to check eligibility")
		return
	}

	utils.Success(ctx, gin.H{
		"eligible":       st.Eligible,
		"word_available": st.WordAvailable,
		"points":         st.Points,
		"streak":         st.Streak,
		"multiplier":     st.Multiplier,
	})
}

// Stats returns the authenticated user's cumulative state.
func (c *CheckInController) Stats(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextUsernameKey)
	if username == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := c.svc.Stats(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, checkin.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Sugar.Errorf("stats load failed for %q: %v", username, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"points":        user.KnowledgePoints,
		"streak":        user.Streak,
		"multiplier":    user.Multiplier,
		"last_check_in": user.LastCheckIn,
	})
}

// Achievements returns the full catalogue with the user's earned state per
// entry, in catalogue order.
func (c *CheckInController) Achievements(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextUsernameKey)
	if username == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := c.svc.Stats(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, checkin.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Sugar.Errorf("achievements load failed for %q: %v", username, err)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load achievements")
		return
	}

	type entry struct {
		ID          achievements.ID `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Icon        string          `json:"icon"`
		Earned      bool            `json:"earned"`
		Date        *time.Time      `json:"date,omitempty"`
	}

	out := make([]entry, 0, len(achievements.Catalogue))
	for _, def := range achievements.Catalogue {
		st := user.Achievements[def.ID]
		out = append(out, entry{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Earned:      st.Earned,
			Date:        st.Date,
		})
	}

	utils.Success(ctx, gin.H{"achievements": out})
}
