package commands

import (
	"context"

	"github.com/de-tools/reportato/pkg/models/api"
	"github.com/de-tools/reportato/pkg/services/registry"
)

// Environment resolves what a command needs once the flags are parsed.
type Environment interface {
	// Reports builds the report registry. Without connect the reports are
	// registered against no database and can only be described.
	Reports(ctx context.Context, connect bool) (registry.Registry, error)
	Uploader(ctx context.Context) (Uploader, error)
}

type Uploader interface {
	Upload(ctx context.Context, fileName, contentType string, body []byte) (string, error)
}

type Printer interface {
	Handle(reports []api.Report) error
}
