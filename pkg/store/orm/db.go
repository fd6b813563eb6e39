package orm

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Settings struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Dialector picks the gorm dialector for the configured driver.
func Dialector(settings Settings) (gorm.Dialector, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("database dsn cannot be empty")
	}

	switch settings.Driver {
	case "mysql":
		return mysql.Open(settings.DSN), nil
	case "postgres", "postgresql":
		return postgres.Open(settings.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", settings.Driver)
	}
}

func NewDB(settings Settings, logger zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(settings)
	if err != nil {
		return nil, err
	}
	return Open(dialector, settings, logger)
}

// Open connects through an explicit dialector and applies the pool settings.
func Open(dialector gorm.Dialector, settings Settings, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
