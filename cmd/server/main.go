package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	"github.com/Kapilrajreddy/youtube-api/internal/database"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/messaging"

	"github.com/gofiber/fiber/v3"
)

func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath makes relative certificate paths relative to the directory holding config/env.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

func listen(app *fiber.App) error {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()
	listenConfig := fiber.ListenConfig{DisableStartupMessage: true}

	if !cfg.EnableTLS || cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		log.WithFields(map[string]interface{}{"address": cfg.Address, "protocol": "HTTP"}).Info("Starting server")
		return app.Listen(cfg.Address, listenConfig)
	}

	certPath, keyPath := resolvePath(cfg.TLSCertFile), resolvePath(cfg.TLSKeyFile)
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return fmt.Errorf("load TLS certificate %s: %w", certPath, err)
	}
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Address, err)
	}
	tlsListener := tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	log.WithFields(map[string]interface{}{"address": cfg.Address, "cert": certPath}).Info("Starting server with HTTPS/TLS")
	return app.Listener(tlsListener, listenConfig)
}

// shutdown drains requests, waits for in-flight event handlers and releases connections.
func shutdown(app *fiber.App, pub *messaging.Publisher) {
	log := logger.GetAppLogger()
	if err := app.ShutdownWithTimeout(20 * time.Second); err != nil {
		log.WithError(err).Error("Fiber shutdown")
	}
	events.Wait()
	if pub != nil {
		if err := pub.Close(); err != nil {
			log.WithError(err).Warn("AMQP publisher close")
		}
	}
	if global.MongoDB_Session != nil {
		_ = database.CloseInstance(global.MongoDB_Session)
	}
	log.Info("Server stopped")
	logger.Close()
}

func main() {
	initLogger()
	db := InitGlobal()
	initMediaStore()
	pub := initEvents()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	initRepairWorker(workerCtx, db)

	log := logger.GetAppLogger()
	auth, err := newAuthManager()
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	app, err := InitFiberApp(auth)
	if err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(app)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped unexpectedly")
		}
	}
	stopWorkers()
	shutdown(app, pub)
}
