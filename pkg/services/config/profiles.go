package config

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/reportato/pkg/store/orm"
	"gopkg.in/ini.v1"
)

// Registry resolves named database profiles.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*orm.Settings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads database profiles from an ini file, one section per
// profile:
//
//	[default]
//	driver = mysql
//	dsn    = user:pass@tcp(localhost:3306)/app?parseTime=true
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*orm.Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	settings := &orm.Settings{
		Driver:          section.Key("driver").MustString("mysql"),
		DSN:             section.Key("dsn").String(),
		MaxOpenConns:    section.Key("max_open_conns").MustInt(0),
		MaxIdleConns:    section.Key("max_idle_conns").MustInt(0),
		ConnMaxLifetime: section.Key("conn_max_lifetime").MustDuration(time.Duration(0)),
	}
	if settings.DSN == "" {
		return nil, fmt.Errorf("profile %s has no dsn", profile)
	}
	return settings, nil
}
