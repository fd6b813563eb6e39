package reporter

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"

	"github.com/de-tools/reportato/pkg/schema"
	"github.com/spf13/cast"
)

// Render adapts a typed renderer to a RenderFunc. A renderer declared over
// *M also accepts M values and the other way round. Items of another type
// yield schema.ErrInstanceMismatch.
func Render[T any](fn func(T) string) RenderFunc {
	return func(item any) (string, error) {
		if v, ok := item.(T); ok {
			return fn(v), nil
		}
		if v, ok := convertItem[T](item); ok {
			return fn(v), nil
		}
		return "", fmt.Errorf("%w: renderer expects %s, got %T",
			schema.ErrInstanceMismatch, reflect.TypeFor[T](), item)
	}
}

// convertItem takes the address of a value item or dereferences a non-nil
// pointer item to reach T.
func convertItem[T any](item any) (T, bool) {
	var zero T
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return zero, false
	}

	target := reflect.TypeFor[T]()
	switch {
	case target.Kind() == reflect.Ptr && v.Type() == target.Elem():
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p.Interface().(T), true
	case v.Kind() == reflect.Ptr && !v.IsNil() && v.Type().Elem() == target:
		return v.Elem().Interface().(T), true
	}
	return zero, false
}

// renderValue is the default renderer policy:
//   - nil, nil pointers, empty strings and empty collections render as "";
//   - to-many values render as the comma-joined string forms of their elements;
//   - anything else renders as its string form.
//
// Zero numbers and false are not treated as empty.
func renderValue(kind schema.Kind, value any) string {
	v, ok := indirect(value)
	if !ok {
		return ""
	}

	switch v.Kind() {
	case reflect.String, reflect.Map:
		if v.Len() == 0 {
			return ""
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return ""
		}
		if kind == schema.ToMany {
			parts := make([]string, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				parts = append(parts, stringify(v.Index(i)))
			}
			return strings.Join(parts, ", ")
		}
	}

	return stringify(v)
}

func indirect(value any) (reflect.Value, bool) {
	v := reflect.ValueOf(value)
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return reflect.Value{}, false
	}

	if valuer, ok := value.(driver.Valuer); ok {
		if _, stringer := value.(fmt.Stringer); !stringer {
			dv, err := valuer.Value()
			if err == nil {
				if dv == nil {
					return reflect.Value{}, false
				}
				v = reflect.ValueOf(dv)
			}
		}
	}

	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		if _, ok := v.Interface().(fmt.Stringer); ok {
			return v, true
		}
		v = v.Elem()
	}
	return v, true
}

func stringify(v reflect.Value) string {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return ""
	}
	if v.CanInterface() {
		i := v.Interface()
		if s, ok := i.(fmt.Stringer); ok {
			return s.String()
		}
		if v.CanAddr() {
			if s, ok := v.Addr().Interface().(fmt.Stringer); ok {
				return s.String()
			}
		}
		if s, err := cast.ToStringE(i); err == nil {
			return s
		}
		if v.Kind() == reflect.Ptr {
			return stringify(v.Elem())
		}
		return fmt.Sprint(i)
	}
	return fmt.Sprint(v)
}
