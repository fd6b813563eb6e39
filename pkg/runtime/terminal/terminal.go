package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	csvexport "github.com/de-tools/reportato/pkg/export"
	"github.com/de-tools/reportato/pkg/runtime/terminal/commands"
	"github.com/de-tools/reportato/pkg/runtime/terminal/export"
	"github.com/de-tools/reportato/pkg/services/config"
	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/de-tools/reportato/pkg/store/orm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RegisterFunc adds the available reports to a registry.
type RegisterFunc func(r registry.Registry, db *gorm.DB, factory csvexport.WriterFactory) error

// CLI represents the command-line interface
type CLI struct {
	opts       Options
	configPath string
	profile    string
	cfg        *config.Config
	db         *gorm.DB
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Register RegisterFunc
	Output   io.Writer
	Logger   zerolog.Logger
	// Connect opens the report database. Defaults to the configured profile.
	Connect func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error)
	// Uploader builds the S3 uploader. Defaults to the AWS credential chain.
	Uploader func(ctx context.Context, cfg csvexport.S3Config) (commands.Uploader, error)
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Connect == nil {
		opts.Connect = func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
			return cfg.Database.Open(ctx, logger)
		}
	}
	if opts.Uploader == nil {
		opts.Uploader = func(ctx context.Context, cfg csvexport.S3Config) (commands.Uploader, error) {
			uploader, err := csvexport.NewS3UploaderFromEnv(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return uploader, nil
		}
	}

	cli := &CLI{opts: opts}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "reportato",
		Short:             "Declarative CSV reports over database models",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.loadConfig,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the config file")
	cmd.PersistentFlags().StringVar(&cli.profile, "profile", "", "Database profile (overrides database.profile)")

	cmd.AddCommand(commands.NewListCmd(cli, NewReporter(cli.opts.Output), export.NewReporter(cli.opts.Output)))
	cmd.AddCommand(commands.NewExportCmd(cli))

	return cmd
}

func (cli *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	if cli.profile != "" {
		cfg.Database.Profile = cli.profile
	}
	cli.cfg = cfg

	cmd.SetContext(cli.opts.Logger.WithContext(cmd.Context()))
	return nil
}

func (cli *CLI) Reports(ctx context.Context, connect bool) (registry.Registry, error) {
	if cli.opts.Register == nil {
		return nil, fmt.Errorf("no reports configured")
	}

	factory, err := csvexport.NewWriterFactory(cli.cfg.Export.Options())
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	if connect {
		db, err = cli.opts.Connect(ctx, cli.cfg, cli.opts.Logger)
		if err != nil {
			return nil, err
		}
		cli.db = db
	}

	reports := registry.New()
	if err := cli.opts.Register(reports, db, factory); err != nil {
		return nil, err
	}
	return reports, nil
}

func (cli *CLI) Uploader(ctx context.Context) (commands.Uploader, error) {
	return cli.opts.Uploader(ctx, cli.cfg.S3)
}

func (cli *CLI) close() {
	if cli.db == nil {
		return
	}
	if err := orm.Close(cli.db); err != nil {
		cli.opts.Logger.Error().Err(err).Msg("failed to close database")
	}
	cli.db = nil
}
