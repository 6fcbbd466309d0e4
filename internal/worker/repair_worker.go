// Package worker runs background maintenance next to the API server.
package worker

import (
	"context"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/maintenance"

	"go.mongodb.org/mongo-driver/mongo"
)

const minRepairInterval = time.Minute

// RepairWorker periodically removes documents orphaned by best-effort cascades.
type RepairWorker struct {
	repairer *maintenance.Repairer
	interval time.Duration
}

// NewRepairWorker clamps interval to at least a minute.
func NewRepairWorker(db *mongo.Database, interval time.Duration) *RepairWorker {
	if interval < minRepairInterval {
		interval = minRepairInterval
	}
	return &RepairWorker{repairer: maintenance.NewRepairer(db, false), interval: interval}
}

func (w *RepairWorker) Interval() time.Duration {
	return w.interval
}

// Start blocks until ctx is done.
func (w *RepairWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("Starting repair worker")
	for {
		select {
		case <-ctx.Done():
			log.Info("Repair worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *RepairWorker) runOnce(ctx context.Context) {
	log := logger.GetAppLogger()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Repair run panicked, retrying next tick")
		}
	}()

	report, err := w.repairer.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.GetErrorLogger().WithError(err).Error("Repair run failed")
		}
		return
	}
	if report.Total() > 0 {
		log.WithFields(map[string]interface{}{
			"deleted": report.Deleted,
			"pulled":  report.Pulled,
			"passes":  report.Passes,
		}).Info("Repair removed orphans")
	}
}
