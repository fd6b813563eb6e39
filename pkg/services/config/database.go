package config

import (
	"context"
	"fmt"

	"github.com/de-tools/reportato/pkg/store/orm"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Open connects to the database named by the configured profile.
func (c DatabaseConfig) Open(ctx context.Context, logger zerolog.Logger) (*gorm.DB, error) {
	profiles, err := NewRegistry(c.ProfilesPath)
	if err != nil {
		return nil, err
	}

	settings, err := profiles.GetConfig(ctx, c.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database profile: %w", err)
	}

	db, err := orm.NewDB(*settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to profile %s: %w", c.Profile, err)
	}
	return db, nil
}
