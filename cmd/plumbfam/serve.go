package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plumbfam/internal/catalog"
	"plumbfam/internal/db"
	"plumbfam/internal/policy"
	"plumbfam/internal/server"
	"plumbfam/internal/storage"
	"plumbfam/internal/store"
	"plumbfam/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	blobs, err := newObjectStore(ctx, config)
	if err != nil {
		return err
	}

	familyRepo := store.NewFamilyRepository(pool)
	listener := store.NewListener(config.DatabaseURL, logger)

	accessPolicy := policy.NewFixedCredentialPolicy(config.UploadCredential, config.DeleteCredential)

	controller := catalog.NewController(
		familyRepo,
		blobs,
		accessPolicy,
		logger,
		config.ImageBucket,
		config.RvtBucket,
	)

	go listener.Run(ctx)
	go controller.Run(ctx, listener)

	srv, err := server.New(config, logger, controller, listener)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newObjectStore(ctx context.Context, config *types.Config) (storage.ObjectStore, error) {
	switch config.StorageBackend {
	case "s3":
		return storage.NewS3Storage(ctx, config)
	default:
		return storage.NewSupabaseStorage(config.SupabaseProjectRef, config.SupabaseServiceKey), nil
	}
}
