package orm

import (
	"context"
	"fmt"
	"iter"
	"reflect"

	"github.com/de-tools/reportato/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows or decorates the query of a report.
type Scope func(*gorm.DB) *gorm.DB

// Querier loads report items with gorm. Direct associations of the model are
// preloaded so relation fields render without extra queries.
type Querier struct {
	db     *gorm.DB
	scopes []Scope
}

func NewQuerier(db *gorm.DB, scopes ...Scope) *Querier {
	return &Querier{db: db, scopes: scopes}
}

// With returns a querier applying extra scopes after the existing ones.
func (q *Querier) With(scopes ...Scope) *Querier {
	all := append(append([]Scope(nil), q.scopes...), scopes...)
	return &Querier{db: q.db, scopes: all}
}

// All runs the query once and yields pointers to the loaded instances.
func (q *Querier) All(ctx context.Context, model *schema.Model) (iter.Seq2[any, error], error) {
	dest := model.NewSlice()

	tx := q.db.WithContext(ctx).Preload(clause.Associations)
	for _, scope := range q.scopes {
		tx = tx.Scopes(scope)
	}
	if err := tx.Find(dest).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", model.Table(), err)
	}

	items := reflect.ValueOf(dest).Elem()
	return func(yield func(any, error) bool) {
		for i := 0; i < items.Len(); i++ {
			if !yield(items.Index(i).Addr().Interface(), nil) {
				return
			}
		}
	}, nil
}

// OrderBy sorts the items by a column.
func OrderBy(column string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column)
	}
}

// Preload loads a nested association, e.g. "Permissions.ContentType".
func Preload(association string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association)
	}
}

// Where filters the items.
func Where(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Limit caps the number of items.
func Limit(n int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(n)
	}
}
