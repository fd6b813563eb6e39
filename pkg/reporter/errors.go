package reporter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownName matches every *FieldError via errors.Is.
var ErrUnknownName = errors.New("unknown name")

// NameKind is the declarative option a FieldError was raised for.
type NameKind string

const (
	KindField    NameKind = "field(s)"
	KindHeader   NameKind = "header(s)"
	KindRenderer NameKind = "renderer(s)"
)

// FieldError is returned by Define when the options name fields the model
// does not have. Names lists every offending name.
type FieldError struct {
	Kind  NameKind
	Model string
	Names []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Unknown %s (%s) specified for %s", e.Kind, strings.Join(e.Names, ", "), e.Model)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrUnknownName
}
