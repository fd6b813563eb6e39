package schema

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	gormschema "gorm.io/gorm/schema"
)

var (
	ErrInstanceMismatch = errors.New("instance mismatch")
	ErrUnknownField     = errors.New("unknown field")
)

// Kind tells the renderer how a field value has to be turned into text.
type Kind int

const (
	Scalar Kind = iota
	ToOne
	ToMany
)

func (k Kind) String() string {
	switch k {
	case ToOne:
		return "to-one"
	case ToMany:
		return "to-many"
	default:
		return "scalar"
	}
}

// Field describes one entry of a model's field catalog.
type Field struct {
	Name  string
	Label string
	Kind  Kind

	valueOf func(context.Context, reflect.Value) (interface{}, bool)
}

// Model is the field catalog of a gorm model struct.
type Model struct {
	name   string
	typ    reflect.Type
	table  string
	fields []Field
	index  map[string]int
}

var (
	cacheStore = &sync.Map{}
	namer      = gormschema.NamingStrategy{}
)

// Parse builds the catalog of the given gorm model. Column fields are named
// after their column, relation fields after the snake_case of the Go field.
func Parse(model any) (*Model, error) {
	s, err := gormschema.Parse(model, cacheStore, namer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
	}

	foreignKeys := make(map[string]struct{})
	for _, rel := range s.Relationships.Relations {
		if rel.Type != gormschema.BelongsTo {
			continue
		}
		for _, ref := range rel.References {
			if ref.ForeignKey != nil {
				foreignKeys[ref.ForeignKey.Name] = struct{}{}
			}
		}
	}

	m := &Model{
		name:  s.Name,
		typ:   s.ModelType,
		table: s.Table,
		index: make(map[string]int, len(s.Fields)),
	}

	for _, f := range s.Fields {
		if !f.Readable || f.ValueOf == nil {
			continue
		}
		if _, ok := foreignKeys[f.Name]; ok {
			continue
		}

		field := Field{
			Name:    f.DBName,
			Label:   f.Tag.Get("label"),
			Kind:    Scalar,
			valueOf: f.ValueOf,
		}
		if field.Label == "" {
			field.Label = f.Comment
		}

		if rel, ok := s.Relationships.Relations[f.Name]; ok {
			field.Name = namer.ColumnName("", f.Name)
			switch rel.Type {
			case gormschema.HasMany, gormschema.Many2Many:
				field.Kind = ToMany
			default:
				field.Kind = ToOne
			}
		}
		if field.Name == "" {
			continue
		}
		if _, dup := m.index[field.Name]; dup {
			continue
		}

		m.index[field.Name] = len(m.fields)
		m.fields = append(m.fields, field)
	}

	return m, nil
}

// MustParse is like Parse but panics on error.
func MustParse(model any) *Model {
	m, err := Parse(model)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Name() string {
	return m.name
}

// Table is the table gorm maps the model to.
func (m *Model) Table() string {
	return m.table
}

func (m *Model) Type() reflect.Type {
	return m.typ
}

// FieldNames returns the catalog names in declaration order.
func (m *Model) FieldNames() []string {
	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.Name
	}
	return names
}

func (m *Model) Fields() []Field {
	return append([]Field(nil), m.fields...)
}

func (m *Model) Field(name string) (Field, bool) {
	i, ok := m.index[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[i], true
}

func (m *Model) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Owns reports whether item is an instance of the model, either the struct
// itself or a non-nil pointer to it.
func (m *Model) Owns(item any) bool {
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return false
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Type() == m.typ
}

// Value reads the named field from item.
func (m *Model) Value(item any, name string) (any, error) {
	if !m.Owns(item) {
		return nil, fmt.Errorf("%w: the given object is not an instance of %s", ErrInstanceMismatch, m.name)
	}
	f, ok := m.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, m.name, name)
	}

	v, _ := f.valueOf(context.Background(), reflect.ValueOf(item))
	return v, nil
}

// NewSlice returns a pointer to an empty slice of the model, suitable as a
// gorm Find destination.
func (m *Model) NewSlice() any {
	return reflect.New(reflect.SliceOf(m.typ)).Interface()
}
