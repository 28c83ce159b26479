package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the record addressed by an operation does not
// exist. A dangling foreign key inside the payload is a ReferenceError instead.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing, malformed or out-of-enum field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FieldErrors collects every ValidationError found in one payload.
type FieldErrors []*ValidationError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(fe))
	for _, e := range fe {
		errs = append(errs, e)
	}
	return errs
}

// Map keys the messages by field name, for re-rendering forms.
func (fe FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Reason
		}
	}
	return m
}

// orNil keeps a nil interface when nothing was collected.
func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ReferenceError reports a foreign key pointing at a row that does not exist.
type ReferenceError struct {
	Field  string
	Entity string
	ID     uint
}

func (e *ReferenceError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s references a missing %s", e.Field, e.Entity)
	}
	return fmt.Sprintf("%s references missing %s %d", e.Field, e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation or a state that blocks the
// operation, such as deleting a row that is still referenced.
type ConflictError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("conflict on %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("conflict on %s %q: %s", e.Field, e.Value, e.Reason)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateDBError turns driver-level constraint failures into the typed
// errors above. Anything else is returned unchanged.
func translateDBError(err error, field string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Field: field, Reason: "already exists"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ReferenceError{Field: field, Entity: "record"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Field: field, Reason: "already exists"}
		case pgForeignKeyViolation:
			return &ReferenceError{Field: pgErr.ConstraintName, Entity: pgErr.TableName}
		case pgCheckViolation:
			return &ValidationError{Field: pgErr.ConstraintName, Reason: "violates " + pgErr.ConstraintName}
		}
	}

	return err
}
