package inventory

import (
	"testing"
	"time"

	"asset-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestAssignAndReturn(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	row, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 10))
	require.NoError(t, err)
	assert.True(t, row.Open())

	stored, err := f.svc.GetAsset(f.ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, f.emp.ID, *stored.OwnerID)

	// only one open custody period per asset
	_, err = f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 11))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)

	row, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 20), models.ReturnRepair)
	require.NoError(t, err)
	require.NotNil(t, row.ReturnedDate)
	require.NotNil(t, row.ReturnReason)
	assert.Equal(t, models.ReturnRepair, *row.ReturnReason)

	stored, err = f.svc.GetAsset(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.OwnerID)

	_, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 21), models.ReturnExit)
	require.ErrorAs(t, err, &ce)

	history, err := f.svc.AssignmentHistory(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Ada", history[0].Employee.Name)

	// custody history pins the asset
	require.ErrorAs(t, f.svc.DeleteAsset(f.ctx, a.ID), &ce)
}

func TestReturnBeforeAssignmentIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	_, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 10))
	require.NoError(t, err)

	_, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 9), models.ReturnExit)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "returned_date", ve.Field)

	_, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 12), "lost")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "return_reason", ve.Field)
}

func TestAssignDefaultsToNowAndChecksReferences(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	var re *ReferenceError
	_, err := f.svc.AssignAsset(f.ctx, a.ID, 404, day(2024, 1, 1))
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "employee_id", re.Field)

	_, err = f.svc.AssignAsset(f.ctx, 404, f.emp.ID, day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrNotFound)

	row, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, time.Time{})
	require.NoError(t, err)
	assert.True(t, row.AssignedDate.Equal(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)))
}

func TestNewAssignmentCannotPrecedePreviousReturn(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	_, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 10))
	require.NoError(t, err)
	_, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 20), models.ReturnExit)
	require.NoError(t, err)

	_, err = f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 15))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "assigned_date", ve.Field)

	_, err = f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 1, 20))
	require.NoError(t, err)
}

func TestRecordAssignment(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	// returned before assigned
	_, err := f.svc.RecordAssignment(f.ctx, AssignmentInput{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 6, 1),
		ReturnedDate: ptr(day(2023, 5, 1)),
		ReturnReason: ptr(models.ReturnExit),
	})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Map(), "returned_date")

	// a return needs a reason, and a reason needs a return
	_, err = f.svc.RecordAssignment(f.ctx, AssignmentInput{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 6, 1),
		ReturnedDate: ptr(day(2023, 7, 1)),
	})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Map(), "return_reason")

	_, err = f.svc.RecordAssignment(f.ctx, AssignmentInput{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 6, 1),
		ReturnReason: ptr(models.ReturnRepair),
	})
	require.ErrorAs(t, err, &fe)

	_, err = f.svc.RecordAssignment(f.ctx, AssignmentInput{AssetID: 404, EmployeeID: f.emp.ID, AssignedDate: day(2023, 6, 1)})
	var re *ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "asset_id", re.Field)

	closed, err := f.svc.RecordAssignment(f.ctx, AssignmentInput{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 6, 1),
		ReturnedDate: ptr(day(2023, 7, 1)),
		ReturnReason: ptr(models.ReturnExit),
	})
	require.NoError(t, err)
	assert.False(t, closed.Open())

	stored, err := f.svc.GetAsset(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.OwnerID)

	opened, err := f.svc.RecordAssignment(f.ctx, AssignmentInput{AssetID: a.ID, EmployeeID: f.emp.ID, AssignedDate: day(2023, 8, 1)})
	require.NoError(t, err)
	assert.True(t, opened.Open())

	stored, err = f.svc.GetAsset(f.ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, f.emp.ID, *stored.OwnerID)
}

func TestSameDayReturnAndReassignment(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	// assigned at the fixture's "now", 2024-02-01 09:00
	row, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, time.Time{})
	require.NoError(t, err)

	returned, err := f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 2, 1), models.ReturnRepair)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedDate)
	assert.True(t, returned.ReturnedDate.Equal(row.AssignedDate))

	again, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2024, 2, 1))
	require.NoError(t, err)
	assert.True(t, again.AssignedDate.Equal(*returned.ReturnedDate))

	// the day before is still rejected
	_, err = f.svc.ReturnAsset(f.ctx, a.ID, day(2024, 1, 31), models.ReturnExit)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "returned_date", ve.Field)

	// an explicit earlier time of day is not moved
	_, err = f.svc.ReturnAsset(f.ctx, a.ID, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), models.ReturnExit)
	require.ErrorAs(t, err, &ve)
}

func TestRecordAssignmentRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)

	record := func(from, to time.Time) error {
		_, err := f.svc.RecordAssignment(f.ctx, AssignmentInput{
			AssetID:      a.ID,
			EmployeeID:   f.emp.ID,
			AssignedDate: from,
			ReturnedDate: ptr(to),
			ReturnReason: ptr(models.ReturnExit),
		})
		return err
	}

	require.NoError(t, record(day(2023, 6, 1), day(2023, 7, 1)))
	_, err := f.svc.AssignAsset(f.ctx, a.ID, f.emp.ID, day(2023, 9, 1))
	require.NoError(t, err)

	var ce *ConflictError
	require.ErrorAs(t, record(day(2023, 6, 15), day(2023, 6, 20)), &ce)
	assert.Equal(t, "assigned_date", ce.Field)
	require.ErrorAs(t, record(day(2023, 5, 1), day(2023, 6, 2)), &ce)
	// the open period runs from 2023-09-01 onwards
	require.ErrorAs(t, record(day(2023, 10, 1), day(2023, 10, 5)), &ce)
	require.ErrorAs(t, record(day(2023, 8, 1), day(2023, 9, 2)), &ce)

	// periods may touch
	require.NoError(t, record(day(2023, 7, 1), day(2023, 8, 1)))
	require.NoError(t, record(day(2023, 8, 1), day(2023, 9, 1)))

	history, err := f.svc.AssignmentHistory(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestReturnReasonPairsWithReturnedDateInSchema(t *testing.T) {
	f := newFixture(t)
	a := f.newAsset(t)
	db := f.svc.DB(f.ctx).Omit(clause.Associations)

	returnedNoReason := models.AssignmentHistory{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 1, 1),
		ReturnedDate: ptr(day(2023, 2, 1)),
	}
	assert.Error(t, db.Create(&returnedNoReason).Error)

	reasonNoReturn := models.AssignmentHistory{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 1, 1),
		ReturnReason: ptr(models.ReturnExit),
	}
	assert.Error(t, db.Create(&reasonNoReturn).Error)

	unknownReason := models.AssignmentHistory{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 1, 1),
		ReturnedDate: ptr(day(2023, 2, 1)),
		ReturnReason: ptr(models.ReturnReason("lost")),
	}
	assert.Error(t, db.Create(&unknownReason).Error)

	ok := models.AssignmentHistory{
		AssetID:      a.ID,
		EmployeeID:   f.emp.ID,
		AssignedDate: day(2023, 1, 1),
		ReturnedDate: ptr(day(2023, 2, 1)),
		ReturnReason: ptr(models.ReturnRepair),
	}
	assert.NoError(t, db.Create(&ok).Error)
}
