package main

import (
	"context"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	"github.com/Kapilrajreddy/youtube-api/internal/bootstrap"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/messaging"
	"github.com/Kapilrajreddy/youtube-api/internal/worker"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitGlobal loads configuration, connects MongoDB, applies the schema and
// fills the collection registry. Startup failures are fatal.
func InitGlobal() *mongo.Database {
	log := logger.GetAppLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	_, db, err := bootstrap.Init(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize globals: %v", err)
	}
	log.Info("Initialized config, database, indexes and collection registry")
	return db
}

// initMediaStore selects the upload backend. The server still starts without
// one; uploads then fail with a storage error.
func initMediaStore() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	store, err := bootstrap.NewMediaStore(context.Background(), cfg)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.Media_Backend).Error("Failed to initialize media store")
		return
	}
	global.MediaStore = store
	log.WithField("backend", cfg.Media_Backend).Info("Initialized media store")
}

// initEvents registers the data change subscribers. The returned publisher is
// nil when AMQP is not configured or unreachable.
func initEvents() *messaging.Publisher {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	events.OnDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		logger.WithCollection(e.CollectionName).WithFields(map[string]interface{}{
			"operation":  e.Operation,
			"documentId": e.DocumentID.Hex(),
		}).Debug("data changed")
	})

	if cfg.AMQP_URL == "" {
		log.Info("AMQP not configured, data change events stay in process")
		return nil
	}
	pub, err := messaging.NewPublisher(cfg.AMQP_URL, cfg.AMQP_Exchange)
	if err != nil {
		log.WithError(err).Error("Failed to connect AMQP publisher, continuing without it")
		return nil
	}
	events.OnDataChanged(pub.Handler())
	log.WithField("exchange", cfg.AMQP_Exchange).Info("Publishing data change events")
	return pub
}

// initRepairWorker starts the orphan sweep when REPAIR_INTERVAL is set.
// Transactional cascades leave nothing behind, so the worker is skipped for them.
func initRepairWorker(ctx context.Context, db *mongo.Database) {
	cfg := global.MongoDB_ServerConfig
	if cfg.RepairInterval <= 0 || cfg.MongoDB_UseTransactions {
		return
	}
	w := worker.NewRepairWorker(db, cfg.RepairInterval)
	go w.Start(ctx)
}
