package main

import (
	"fmt"

	"plumbfam/pkg/types"

	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	switch c.StorageBackend {
	case "supabase":
		if c.SupabaseProjectRef == "" || c.SupabaseServiceKey == "" {
			return nil, fmt.Errorf("set SUPABASE_PROJECT_REF and SUPABASE_SERVICE_KEY")
		}
	case "s3":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	return c, nil
}
