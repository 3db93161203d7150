package logging

import (
	"log/slog"
	"time"

	"github.com/bondsio/admin-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup sweeps system_logs once a day, deleting rows older than the
// retention window. Close done to stop the sweep.
func StartCleanup(db *gorm.DB, retention time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweep(db, retention)
			case <-done:
				return
			}
		}
	}()
}

func sweep(db *gorm.DB, retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected, "cutoff", cutoff)
	}
}
