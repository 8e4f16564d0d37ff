// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"chatapp-backend/internal/app"
	"chatapp-backend/internal/config"
	"chatapp-backend/internal/logger"
	"chatapp-backend/pkg/db"
)

func main() {
	// .env is optional; real deployments use the process environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("configuration validation failed")
	}

	log := logger.Base(logger.New(cfg), cfg)
	if envErr != nil {
		log.Debug("no .env file found, using process environment")
	}
	cfg.Warn(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := app.Deps{Log: log}
	if cfg.DBDSN != "" {
		conn, err := db.NewMySQL(cfg.DBDSN, db.DefaultOptions())
		if err != nil {
			log.WithError(err).Fatal("open mysql")
		}
		defer conn.Close()
		deps.DB = conn

		go func() {
			if err := db.WaitReady(ctx, conn, 20, 3*time.Second, log); err != nil {
				log.WithError(err).Error("mysql not ready; /readyz will report unavailable")
			}
		}()
	} else {
		log.Warn("DB_DSN empty; readiness probe skips the database")
	}

	a := app.New(cfg, deps)
	log.WithFields(logrus.Fields{
		"port":    cfg.AppPort,
		"origins": cfg.CORS.AllowedOrigins,
		"methods": cfg.CORS.AllowedMethods,
	}).Info("starting chatapp backend")

	if err := a.Run(ctx); err != nil {
		log.WithError(err).Error("server error")
		stop()
		os.Exit(1)
	}
	log.Info("server stopped")
}
