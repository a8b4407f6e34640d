package main

import (
	"time"

	"github.com/adilhasan/mufradat/checkin"
	"github.com/adilhasan/mufradat/config"
	"github.com/adilhasan/mufradat/glossary"
	"github.com/adilhasan/mufradat/models"
	"github.com/adilhasan/mufradat/period"
	"github.com/adilhasan/mufradat/routes"
	"github.com/adilhasan/mufradat/utils"
	"github.com/adilhasan/mufradat/words"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.PeriodWord{})

	g, err := glossary.Load(cfg.GlossaryPath)
	if err != nil {
		// degraded start: word endpoints will attempt a reload before failing
		utils.Sugar.Errorf("glossary load failed from %s: %v", cfg.GlossaryPath, err)
	} else {
		utils.Sugar.Infof("glossary loaded from %s with %d words", cfg.GlossaryPath, g.Len())
	}

	clock := period.NewClock(cfg.PeriodUTCOffsetHours)
	assigner := words.NewAssigner(db, g, cfg.WordLookback)
	svc := checkin.NewService(db, clock, assigner)

	r := routes.SetupRouter(db, g, assigner, svc)

	// Best-effort retention for old period words
	utils.StartWordPruner(db, time.Hour)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
