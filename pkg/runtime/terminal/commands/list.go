package commands

import (
	"fmt"
	"net/http"

	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	env     Environment
	plain   Printer
	table   Printer
	asTable bool
}

func NewListCmd(env Environment, plain, table Printer) *cobra.Command {
	lc := &ListCmd{env: env, plain: plain, table: table}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered reports with their columns",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}

	cmd.Flags().BoolVar(&lc.asTable, "table", false, "Print the reports as a table")

	return cmd
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reports, err := lc.env.Reports(ctx, false)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/api/v1/reports", nil)
	if err != nil {
		return err
	}

	summaries, err := registry.Describe(reports, req)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports registered")
		return nil
	}

	if lc.asTable {
		return lc.table.Handle(summaries)
	}
	return lc.plain.Handle(summaries)
}
