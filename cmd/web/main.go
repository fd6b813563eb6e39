package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/reportato/pkg/export"
	"github.com/de-tools/reportato/pkg/reports"
	"github.com/de-tools/reportato/pkg/server"
	"github.com/de-tools/reportato/pkg/services/config"
	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/de-tools/reportato/pkg/store/orm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the reports over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the config file")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Database profile (overrides database.profile)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if profile != "" {
		cfg.Database.Profile = profile
	}

	db, err := cfg.Database.Open(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := orm.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()
	logger.Info().Msgf("Connected using profile `%s` from `%s`.", cfg.Database.Profile, cfg.Database.ProfilesPath)

	factory, err := export.NewWriterFactory(cfg.Export.Options())
	if err != nil {
		return fmt.Errorf("failed to configure csv writer: %w", err)
	}

	reportRegistry := registry.New()
	if err := reports.Register(reportRegistry, db, factory); err != nil {
		return err
	}
	for _, name := range reportRegistry.List() {
		logger.Info().Msgf("Serving report `%s`", name)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	return server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: reportRegistry,
			Logger:  logger,
		},
	}).Start()
}
