package csvview

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/de-tools/reportato/pkg/export"
	"github.com/de-tools/reportato/pkg/reporter"
	"github.com/rs/zerolog"
)

// View serves one report as a CSV download. Every step can be replaced
// through the corresponding field or option.
type View struct {
	// Definition selects the reporter for the request.
	Definition func(r *http.Request) (*reporter.Definition, error)
	// Items supplies the item source. When nil the view reports every
	// instance of the model, fetched through the querier.
	Items func(r *http.Request, def *reporter.Definition) (iter.Seq2[any, error], error)
	// Writer builds the CSV writer.
	Writer export.WriterFactory
	// WriteHeader controls the leading header row.
	WriteHeader bool
	// FileName names the download.
	FileName func(r *http.Request) string

	querier reporter.Querier
}

type Option func(*View)

func WithItems(fn func(r *http.Request, def *reporter.Definition) (iter.Seq2[any, error], error)) Option {
	return func(v *View) {
		v.Items = fn
	}
}

func WithDefinition(fn func(r *http.Request) (*reporter.Definition, error)) Option {
	return func(v *View) {
		v.Definition = fn
	}
}

func WithWriter(factory export.WriterFactory) Option {
	return func(v *View) {
		v.Writer = factory
	}
}

func WithoutHeader() Option {
	return func(v *View) {
		v.WriteHeader = false
	}
}

func WithFileName(name string) Option {
	return func(v *View) {
		v.FileName = func(*http.Request) string { return name }
	}
}

// NewView returns a view over def. querier is only used when no Items hook
// is configured.
func NewView(def *reporter.Definition, querier reporter.Querier, opts ...Option) *View {
	v := &View{
		Definition: func(*http.Request) (*reporter.Definition, error) {
			return def, nil
		},
		Writer:      export.NewUnicodeWriter,
		WriteHeader: true,
		FileName: func(*http.Request) string {
			return export.DefaultFileName
		},
		querier: querier,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Reporter builds the reporter for the request.
func (v *View) Reporter(r *http.Request) (*reporter.Reporter, error) {
	def, err := v.Definition(r)
	if err != nil {
		return nil, fmt.Errorf("failed to select reporter: %w", err)
	}

	if v.Items != nil {
		items, err := v.Items(r, def)
		if err != nil {
			return nil, fmt.Errorf("failed to select items: %w", err)
		}
		return reporter.New(def, items), nil
	}

	if v.querier == nil {
		return nil, fmt.Errorf("no item source configured for %s", def.Model().Name())
	}
	return reporter.FromQuery(r.Context(), def, v.querier)
}

// WriteCSV writes the optional header row and every rendered row to w.
func (v *View) WriteCSV(w io.Writer, r *http.Request) error {
	_, err := v.Render(w, r)
	return err
}

// Render is WriteCSV that also returns the content type of the written
// bytes, as labelled by the writer.
func (v *View) Render(w io.Writer, r *http.Request) (string, error) {
	rep, err := v.Reporter(r)
	if err != nil {
		return "", err
	}

	writer := v.Writer(w)
	if v.WriteHeader {
		if err := writer.WriteRow(rep.RenderedHeaders()); err != nil {
			return "", err
		}
	}
	if err := writer.WriteRows(rep.RenderedRows()); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return writer.ContentType(), nil
}

// ServeHTTP renders the whole report before answering, so a failure never
// produces a truncated download.
func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var buf bytes.Buffer
	contentType, err := v.Render(&buf, r)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to render report")
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	fileName := v.FileName(r)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", export.Disposition(fileName))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().
			Err(err).
			Str("file", fileName).
			Msg("failed to send report")
	}
}
