package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/config"
	"github.com/adilhasan/mufradat/models"
	"github.com/adilhasan/mufradat/utils"
)

const leaderboardCacheKey = "cache:leaderboard:top"

// LeaderboardController serves the public points ranking.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a controller instance.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

type leaderboardEntry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Points   float64 `json:"points"`
	Streak   int     `json:"streak"`
}

// Top returns the highest-scoring users, points descending, ties broken by
// account creation order. Served from Redis when fresh; the cache is
// invalidated on every successful check-in.
func (l *LeaderboardController) Top(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(leaderboardCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	limit := config.Get().LeaderboardSize
	if limit <= 0 {
		limit = 10
	}

	var users []models.User
	if err := l.db.
		Order("knowledge_points DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		utils.Sugar.Errorf("leaderboard query failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to fetch leaderboard")
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardEntry{
			Rank:     i + 1,
			Username: u.Username,
			Points:   u.KnowledgePoints,
			Streak:   u.Streak,
		})
	}

	payload := gin.H{"users": entries}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(leaderboardCacheKey, wrapper, time.Minute)
	utils.Success(ctx, payload)
}
