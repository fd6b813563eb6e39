package main

import (
	"fmt"
	"os"

	"github.com/de-tools/reportato/pkg/reports"
	"github.com/de-tools/reportato/pkg/runtime/terminal"
	"github.com/rs/zerolog"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Register: reports.Register,
		Output:   os.Stdout,
		Logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.WarnLevel).
			With().Timestamp().Logger(),
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
