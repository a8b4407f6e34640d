package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/config"
	"github.com/adilhasan/mufradat/models"
)

// StartWordPruner launches a background goroutine that periodically deletes
// period word rows older than the configured retention window. It is
// best-effort and logs failures; the check-in core never depends on pruning.
func StartWordPruner(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// sleep first to avoid racing the migration at startup
			time.Sleep(interval)
			days := config.Get().WordRetentionDays
			if days <= 0 {
				continue
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			res := db.Where("period_start < ?", cutoff).Delete(&models.PeriodWord{})
			if res.Error != nil {
				Sugar.Warnf("word pruner delete failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				Sugar.Infof("word pruner removed %d rows older than %s", res.RowsAffected, cutoff.Format("2006-01-02"))
			}
		}
	}()
}
