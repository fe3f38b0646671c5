package app

import (
	"context"
	"fmt"
	"time"

	"github.com/linkdeck/core/internal/models"
	pkgcron "github.com/linkdeck/core/internal/pkg/cron"
	"github.com/linkdeck/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const clickEventRetention = 180 * 24 * time.Hour

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_click_events",
		Description: "delete click events older than the retention window",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().Add(-clickEventRetention)
			result := db.Unscoped().
				Where("created_at < ?", cutoff).
				Delete(&models.ClickEventModel{})
			if result.Error != nil {
				cronLogger.Warn("click event cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			cronLogger.Info(fmt.Sprintf("click event cleanup done, %d rows removed", result.RowsAffected))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "purge_sessions",
		Description: "remove expired and revoked sessions",
		Interval:    6 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PurgeDead(db, 7*24*time.Hour)
			if err != nil {
				cronLogger.Warn("session purge failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info(fmt.Sprintf("session purge done, %d rows removed", n))
			}
			return nil
		},
	})
}
