package commands

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	env      Environment
	outPath  string
	toS3     bool
	noHeader bool
}

func NewExportCmd(env Environment) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export <report>",
		Short: "Render a report to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}

	cmd.Flags().StringVarP(&ec.outPath, "out", "o", "", "Write the CSV to a file instead of stdout")
	cmd.Flags().BoolVar(&ec.toS3, "s3", false, "Upload the CSV to the configured S3 bucket")
	cmd.Flags().BoolVar(&ec.noHeader, "no-header", false, "Omit the header row")
	cmd.MarkFlagsMutuallyExclusive("out", "s3")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	logger := zerolog.Ctx(ctx)

	reports, err := ec.env.Reports(ctx, true)
	if err != nil {
		return err
	}

	view, ok := reports.Get(name)
	if !ok {
		return fmt.Errorf("unknown report %q", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/api/v1/reports/"+name, nil)
	if err != nil {
		return err
	}

	v := *view
	if ec.noHeader {
		v.WriteHeader = false
	}

	var buf bytes.Buffer
	contentType, err := v.Render(&buf, req)
	if err != nil {
		return fmt.Errorf("failed to render report %s: %w", name, err)
	}
	fileName := v.FileName(req)

	switch {
	case ec.toS3:
		uploader, err := ec.env.Uploader(ctx)
		if err != nil {
			return err
		}
		location, err := uploader.Upload(ctx, fileName, contentType, buf.Bytes())
		if err != nil {
			return err
		}
		logger.Info().Str("report", name).Str("location", location).Msg("report uploaded")
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s to %s\n", name, location)
	case ec.outPath != "":
		if err := os.WriteFile(ec.outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", ec.outPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", buf.Len(), ec.outPath)
	default:
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	return nil
}
