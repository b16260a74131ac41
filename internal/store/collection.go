package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection is a typed view over one named collection. Each call runs in its
// own transaction; the store exposes no cross-call composition except
// Store.Transaction.
type Collection[T any] struct {
	s  *Store
	pk string
}

// NewCollection binds a record type to the store. pk is the primary key
// column name ("id" for auto-increment records, "key" for settings).
func NewCollection[T any](s *Store, pk string) Collection[T] {
	return Collection[T]{s: s, pk: pk}
}

// Add inserts a new record and fills its assigned identity key. A unique
// index breach surfaces as ErrConstraintViolation.
func (c Collection[T]) Add(ctx context.Context, rec *T) error {
	return classify(c.s.db.WithContext(ctx).Create(rec).Error)
}

// Get returns the record for key, with a found flag instead of an error for
// absence.
func (c Collection[T]) Get(ctx context.Context, key any) (*T, bool, error) {
	var out T
	err := c.s.db.WithContext(ctx).First(&out, c.pk+" = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return &out, true, nil
}

// GetAll returns every record in storage insertion order (primary key order;
// not guaranteed sorted by any domain field).
func (c Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.s.db.WithContext(ctx).Order(c.pk).Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Put upserts by primary key: inserts when absent, fully replaces when
// present. Partial-merge semantics belong to the repositories, which
// read-modify-write on top of this.
func (c Collection[T]) Put(ctx context.Context, rec *T) error {
	err := c.s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	return classify(err)
}

// Delete removes the record for key; deleting an absent key is a no-op.
func (c Collection[T]) Delete(ctx context.Context, key any) error {
	var zero T
	err := c.s.db.WithContext(ctx).Delete(&zero, c.pk+" = ?", key).Error
	return classify(err)
}

// FindBy returns all records whose indexed column equals value, in insertion
// order.
func (c Collection[T]) FindBy(ctx context.Context, column string, value any) ([]T, error) {
	var out []T
	err := c.s.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", column), value).
		Order(c.pk).
		Find(&out).Error
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}
