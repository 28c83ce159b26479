// Package inventory holds the operations on companies, departments,
// locations, employees, assets and their custody history. Every operation
// validates its input, checks foreign keys and runs in one transaction.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// timestamp normalizes a custody timestamp to the precision the database
// keeps, defaulting to the current time.
func (s *Service) timestamp(t time.Time) time.Time {
	if t.IsZero() {
		t = s.now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

// DB exposes the handle the service was built with, scoped to ctx.
func (s *Service) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// first loads a row by primary key, mapping a miss to ErrNotFound.
func first(tx *gorm.DB, dest any, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// firstForUpdate is first with a row lock on dialects that have one.
func firstForUpdate(tx *gorm.DB, dest any, id uint) error {
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return first(tx, dest, id)
}

// requireRef checks that the row a foreign key points at exists.
func requireRef(tx *gorm.DB, model any, field, entity string, id uint) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if n == 0 {
		return &ReferenceError{Field: field, Entity: entity, ID: id}
	}
	return nil
}

// restrict fails with a ConflictError while dependent rows exist.
func restrict(tx *gorm.DB, entity string, model any, column string, id uint, dependents string) error {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("count %s: %w", dependents, err)
	}
	if n > 0 {
		return &ConflictError{
			Field:  entity,
			Value:  fmt.Sprint(id),
			Reason: fmt.Sprintf("still referenced by %d %s", n, dependents),
		}
	}
	return nil
}
