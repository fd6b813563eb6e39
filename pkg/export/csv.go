package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const DefaultEncoding = "utf-8"

// Writer writes rendered report rows.
type Writer interface {
	WriteRow(row []string) error
	WriteRows(rows iter.Seq2[[]string, error]) error
	// Close flushes buffered output. The writer is unusable afterwards.
	Close() error
	// ContentType is the media type of the written bytes, charset included.
	ContentType() string
}

// WriterFactory builds a Writer on top of an output stream.
type WriterFactory func(w io.Writer) Writer

// Options tune the CSV output.
type Options struct {
	// Encoding is a WHATWG encoding label, utf-8 when empty. Characters the
	// target encoding cannot represent are replaced rather than failing.
	Encoding string
	// BOM prefixes UTF-8 output with a byte order mark.
	BOM bool
	// Comma is the field delimiter, ',' when zero.
	Comma   rune
	UseCRLF bool
}

// CSVWriter is a Unicode-safe CSV writer.
type CSVWriter struct {
	csv         *csv.Writer
	enc         *transform.Writer
	contentType string
}

// NewUnicodeWriter returns a UTF-8 CSV writer with default options.
func NewUnicodeWriter(w io.Writer) Writer {
	return newCSVWriter(w, unicode.UTF8, Options{})
}

// NewWriterFactory validates opts once and returns a factory for writers
// using them.
func NewWriterFactory(opts Options) (WriterFactory, error) {
	enc, err := lookupEncoding(opts)
	if err != nil {
		return nil, err
	}
	return func(w io.Writer) Writer {
		return newCSVWriter(w, enc, opts)
	}, nil
}

func lookupEncoding(opts Options) (encoding.Encoding, error) {
	name := strings.TrimSpace(opts.Encoding)
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == unicode.UTF8 && opts.BOM {
		enc = unicode.UTF8BOM
	}
	return enc, nil
}

func newCSVWriter(w io.Writer, enc encoding.Encoding, opts Options) *CSVWriter {
	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
	cw := csv.NewWriter(tw)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	cw.UseCRLF = opts.UseCRLF

	return &CSVWriter{csv: cw, enc: tw, contentType: ContentTypeFor(enc)}
}

func (w *CSVWriter) WriteRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// WriteRows writes every row of the sequence, stopping at the first error.
func (w *CSVWriter) WriteRows(rows iter.Seq2[[]string, error]) error {
	for row, err := range rows {
		if err != nil {
			return err
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVWriter) ContentType() string {
	return w.contentType
}

func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("failed to flush encoder: %w", err)
	}
	return nil
}
