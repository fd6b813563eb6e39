package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/reportato/pkg/export"
	"github.com/spf13/viper"
)

const envPrefix = "REPORTATO"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Profile      string `mapstructure:"profile"`
	ProfilesPath string `mapstructure:"profiles_path"`
}

type ExportConfig struct {
	Encoding string `mapstructure:"encoding"`
	BOM      bool   `mapstructure:"bom"`
	Comma    string `mapstructure:"comma"`
	CRLF     bool   `mapstructure:"crlf"`
}

// Options converts the export section to writer options.
func (c ExportConfig) Options() export.Options {
	opts := export.Options{
		Encoding: c.Encoding,
		BOM:      c.BOM,
		UseCRLF:  c.CRLF,
	}
	if r := []rune(c.Comma); len(r) > 0 {
		opts.Comma = r[0]
	}
	return opts
}

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database DatabaseConfig  `mapstructure:"database"`
	Export   ExportConfig    `mapstructure:"export"`
	S3       export.S3Config `mapstructure:"s3"`
}

func defaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reportatocfg"
	}
	return filepath.Join(home, ".reportatocfg")
}

// LoadConfig reads the application config. An empty path only applies
// defaults and REPORTATO_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.profile", "default")
	v.SetDefault("database.profiles_path", defaultProfilesPath())
	v.SetDefault("export.encoding", export.DefaultEncoding)
	v.SetDefault("export.bom", false)
	v.SetDefault("export.comma", "")
	v.SetDefault("export.crlf", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
