package main

import (
	"context"
	"fmt"

	"plumbfam/internal/db"
	"plumbfam/internal/seed"
	"plumbfam/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample families",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		familyRepo := store.NewFamilyRepository(pool)

		logrus.Info("Seeding families...")
		if err := seed.SeedFamilies(ctx, familyRepo); err != nil {
			return fmt.Errorf("failed to seed families: %w", err)
		}

		logrus.Info("Families seeded successfully")

		return nil
	},
}
