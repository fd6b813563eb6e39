package reporter

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/de-tools/reportato/pkg/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RenderFunc renders one field of an item. Its result is used verbatim.
type RenderFunc func(item any) (string, error)

// Options declares a reporter over a model.
type Options struct {
	// Fields selects and orders the reported fields. Empty means every
	// field of the model's catalog, in catalog order.
	Fields []string
	// CustomHeaders overrides the display header of a field. Keys are
	// checked against the whole catalog, so a header may be set for a field
	// that is not selected; such an override is accepted and never shown.
	CustomHeaders map[string]string
	// Renderers replaces the default renderer for the named fields.
	Renderers map[string]RenderFunc
}

// Definition is a resolved reporter declaration. It is immutable once
// returned by Define and may be shared between goroutines.
type Definition struct {
	model     *schema.Model
	fields    []string
	headers   *orderedmap.OrderedMap[string, string]
	renderers map[string]RenderFunc
}

// Define resolves the fields and headers of a reporter over model.
func Define(model *schema.Model, opts Options) (*Definition, error) {
	fields, err := resolveFields(model, opts.Fields)
	if err != nil {
		return nil, err
	}

	headers := orderedmap.New[string, string]()
	for _, name := range fields {
		headers.Set(name, defaultHeader(model, name))
	}

	if opts.CustomHeaders != nil {
		if missing := missingKeys(model, opts.CustomHeaders); len(missing) > 0 {
			return nil, &FieldError{Kind: KindHeader, Model: model.Name(), Names: missing}
		}
		for name, header := range opts.CustomHeaders {
			if _, ok := headers.Get(name); ok {
				headers.Set(name, header)
			}
		}
	}

	renderers := make(map[string]RenderFunc, len(opts.Renderers))
	if missing := missingKeys(model, opts.Renderers); len(missing) > 0 {
		return nil, &FieldError{Kind: KindRenderer, Model: model.Name(), Names: missing}
	}
	for name, fn := range opts.Renderers {
		if fn != nil {
			renderers[name] = fn
		}
	}

	return &Definition{
		model:     model,
		fields:    fields,
		headers:   headers,
		renderers: renderers,
	}, nil
}

// MustDefine is like Define but panics on error. It is meant for package
// level reporter declarations.
func MustDefine(model *schema.Model, opts Options) *Definition {
	def, err := Define(model, opts)
	if err != nil {
		panic(err)
	}
	return def
}

func resolveFields(model *schema.Model, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return model.FieldNames(), nil
	}

	var missing []string
	seen := make(map[string]struct{}, len(requested))
	fields := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if !model.Has(name) {
			missing = append(missing, name)
			continue
		}
		fields = append(fields, name)
	}

	if len(missing) > 0 {
		return nil, &FieldError{Kind: KindField, Model: model.Name(), Names: missing}
	}
	return fields, nil
}

// missingKeys returns the keys of m absent from the model catalog, sorted.
func missingKeys[V any](model *schema.Model, m map[string]V) []string {
	var missing []string
	for name := range m {
		if !model.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func defaultHeader(model *schema.Model, name string) string {
	f, _ := model.Field(name)
	if f.Label != "" {
		return capitalize(f.Label)
	}
	return capitalize(strings.ReplaceAll(name, "_", " "))
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func (d *Definition) Model() *schema.Model {
	return d.model
}

// Fields returns the reported field names in order.
func (d *Definition) Fields() []string {
	return append([]string(nil), d.fields...)
}

// Header returns the display header of a reported field.
func (d *Definition) Header(name string) (string, bool) {
	return d.headers.Get(name)
}

// Headers returns a copy of the field -> header mapping, in field order.
func (d *Definition) Headers() *orderedmap.OrderedMap[string, string] {
	headers := orderedmap.New[string, string]()
	for pair := d.headers.Oldest(); pair != nil; pair = pair.Next() {
		headers.Set(pair.Key, pair.Value)
	}
	return headers
}

// Renderer returns the override registered for name, if any.
func (d *Definition) Renderer(name string) (RenderFunc, bool) {
	fn, ok := d.renderers[name]
	return fn, ok
}
