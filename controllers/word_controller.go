package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adilhasan/mufradat/glossary"
	"github.com/adilhasan/mufradat/period"
	"github.com/adilhasan/mufradat/utils"
	"github.com/adilhasan/mufradat/words"
)

// WordController serves the shared word of the current period and the recent
// word history.
type WordController struct {
	assigner *words.Assigner
	glossary *glossary.Provider
	clock    period.Clock
}

// NewWordController creates a controller instance.
func NewWordController(assigner *words.Assigner, g *glossary.Provider, clock period.Clock) *WordController {
	return &WordController{assigner: assigner, glossary: g, clock: clock}
}

// Current returns the word assigned to the period containing now, creating it
// on first demand. The endpoint is public: the word is shared global state
// and carries nothing user-specific.
func (w *WordController) Current(ctx *gin.Context) {
	occ := w.clock.At(time.Now())

	cacheKey := fmt.Sprintf("cache:word:%s:%d", occ.ID, occ.Start.Unix())
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	record, err := w.assigner.GetOrCreate(ctx.Request.Context(), occ)
	if err != nil {
		utils.Error(ctx, http.StatusServiceUnavailable, 50340, "glossary data is not available")
		return
	}

	meaning := "Definition not found"
	arabic := ""
	if entry, ok := w.glossary.Lookup(record.Word); ok {
		meaning = entry.Definition
		arabic = entry.Arabic
	}

	payload := gin.H{
		"word":        record.Word,
		"meaning":     meaning,
		"arabic":      arabic,
		"period":      occ.ID,
		"next_update": occ.End,
	}
	// a transient word is not the period's settled assignment; don't pin it
	if record.Persisted() {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Until(occ.End))
	}
	utils.Success(ctx, payload)
}

// History lists the most recently assigned words with their definitions.
func (w *WordController) History(ctx *gin.Context) {
	entries, err := w.assigner.History(ctx.Request.Context(), 10)
	if err != nil {
		utils.Sugar.Errorf("word history query failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to fetch word history")
		return
	}
	utils.Success(ctx, gin.H{"history": entries})
}
