package reporter

import (
	"context"
	"fmt"
	"iter"

	"github.com/de-tools/reportato/pkg/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Querier fetches every stored instance of a model.
type Querier interface {
	All(ctx context.Context, model *schema.Model) (iter.Seq2[any, error], error)
}

// Reporter renders the items of one report request against a Definition.
// It holds no state besides the item source.
type Reporter struct {
	def   *Definition
	items iter.Seq2[any, error]
}

// New returns a reporter over items. Items of the wrong type are reported
// when they are rendered.
func New(def *Definition, items iter.Seq2[any, error]) *Reporter {
	if items == nil {
		items = func(func(any, error) bool) {}
	}
	return &Reporter{def: def, items: items}
}

// FromSlice returns a reporter over a materialized collection. Every element
// must be an instance of the definition's model.
func FromSlice[T any](def *Definition, items []T) (*Reporter, error) {
	for i, item := range items {
		if !def.model.Owns(item) {
			return nil, fmt.Errorf("%w: item %d: the given object is not an instance of %s",
				schema.ErrInstanceMismatch, i, def.model.Name())
		}
	}
	return New(def, Slice(items)), nil
}

// FromQuery returns a reporter over all instances of the model, fetched
// once through q.
func FromQuery(ctx context.Context, def *Definition, q Querier) (*Reporter, error) {
	items, err := q.All(ctx, def.model)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", def.model.Name(), err)
	}
	return New(def, items), nil
}

// Slice adapts a slice to an item source. The source is restartable.
func Slice[T any](items []T) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func (r *Reporter) Definition() *Definition {
	return r.def
}

func (r *Reporter) Fields() []string {
	return r.def.Fields()
}

func (r *Reporter) Items() iter.Seq2[any, error] {
	return r.items
}

// RenderedHeaders returns the headers in field order.
func (r *Reporter) RenderedHeaders() []string {
	headers := make([]string, len(r.def.fields))
	for i, name := range r.def.fields {
		headers[i], _ = r.def.headers.Get(name)
	}
	return headers
}

// RenderedFields renders every reported field of item, in field order.
func (r *Reporter) RenderedFields(item any) (*orderedmap.OrderedMap[string, string], error) {
	values, err := r.renderRow(item)
	if err != nil {
		return nil, err
	}

	rendered := orderedmap.New[string, string]()
	for i, name := range r.def.fields {
		rendered.Set(name, values[i])
	}
	return rendered, nil
}

// RenderedRows yields one row of rendered values per item. The sequence is
// lazy and can be replayed whenever the item source can.
func (r *Reporter) RenderedRows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for item, err := range r.items {
			if err != nil {
				yield(nil, err)
				return
			}
			row, err := r.renderRow(item)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// RenderField renders a single field of item through its override, or the
// default renderer when there is none.
func (r *Reporter) RenderField(item any, name string) (string, error) {
	if fn, ok := r.def.renderers[name]; ok {
		return fn(item)
	}

	value, err := r.def.model.Value(item, name)
	if err != nil {
		return "", err
	}
	f, _ := r.def.model.Field(name)
	return renderValue(f.Kind, value), nil
}

func (r *Reporter) renderRow(item any) ([]string, error) {
	if !r.def.model.Owns(item) {
		return nil, fmt.Errorf("%w: the given object is not an instance of %s",
			schema.ErrInstanceMismatch, r.def.model.Name())
	}

	row := make([]string, len(r.def.fields))
	for i, name := range r.def.fields {
		value, err := r.RenderField(item, name)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s.%s: %w", r.def.model.Name(), name, err)
		}
		row[i] = value
	}
	return row, nil
}
