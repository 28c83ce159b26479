package inventory

import (
	"errors"
	"fmt"
	"testing"

	"asset-tracker/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestTranslateDBError(t *testing.T) {
	var ce *ConflictError
	assert.ErrorAs(t, translateDBError(gorm.ErrDuplicatedKey, "email"), &ce)
	assert.Equal(t, "email", ce.Field)

	err := translateDBError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), "email")
	assert.ErrorAs(t, err, &ce)

	var re *ReferenceError
	err = translateDBError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_assets_location", TableName: "assets"}, "asset")
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "fk_assets_location", re.Field)

	var ve *ValidationError
	err = translateDBError(&pgconn.PgError{Code: "23514", ConstraintName: "chk_assets_status"}, "asset")
	assert.ErrorAs(t, err, &ve)

	assert.ErrorIs(t, translateDBError(gorm.ErrRecordNotFound, "x"), ErrNotFound)
	assert.NoError(t, translateDBError(nil, "x"))

	other := errors.New("boom")
	assert.Equal(t, other, translateDBError(other, "x"))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{
		{Field: "name", Reason: "is required"},
		{Field: "status", Reason: "must be one of: good, bad"},
		{Field: "name", Reason: "second message is dropped"},
	}

	assert.Equal(t, "invalid name: is required; invalid status: must be one of: good, bad; invalid name: second message is dropped", fe.Error())
	assert.Equal(t, map[string]string{
		"name":   "is required",
		"status": "must be one of: good, bad",
	}, fe.Map())

	var ve *ValidationError
	wrapped := fmt.Errorf("create asset: %w", fe)
	assert.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "name", ve.Field)

	assert.Nil(t, FieldErrors(nil).orNil())
}

func TestUniqueViolationFromDatabaseIsConflict(t *testing.T) {
	f := newFixture(t)

	// written past ensureEmailFree, as a concurrent insert would be
	dup := models.Employee{Name: "Ada Again", Email: f.emp.Email, DepartmentID: f.dept.ID}
	err := f.svc.DB(f.ctx).Omit(clause.Associations).Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var ce *ConflictError
	require.ErrorAs(t, translateDBError(err, "email"), &ce)
	assert.Equal(t, "email", ce.Field)
}
