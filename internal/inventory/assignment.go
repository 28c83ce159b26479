package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

// AssignmentInput records a custody period directly, for example when
// back-filling history. ReturnedDate and ReturnReason go together.
type AssignmentInput struct {
	AssetID      uint                 `json:"asset_id" validate:"required"`
	EmployeeID   uint                 `json:"employee_id" validate:"required"`
	AssignedDate time.Time            `json:"assigned_date"`
	ReturnedDate *time.Time           `json:"returned_date"`
	ReturnReason *models.ReturnReason `json:"return_reason"`
}

func checkReturn(assigned time.Time, returned *time.Time, reason *models.ReturnReason) FieldErrors {
	var errs FieldErrors
	if returned != nil && returned.Before(assigned) {
		errs = append(errs, &ValidationError{Field: "returned_date", Reason: "must not be earlier than the assigned date"})
	}
	switch {
	case returned != nil && reason == nil:
		errs = append(errs, &ValidationError{Field: "return_reason", Reason: "is required when a return is recorded"})
	case returned == nil && reason != nil:
		errs = append(errs, &ValidationError{Field: "return_reason", Reason: "requires a returned date"})
	case reason != nil && !reason.Valid():
		errs = append(errs, &ValidationError{Field: "return_reason", Reason: "must be one of: exit, repair"})
	}
	return errs
}

// notBefore resolves a calendar date (midnight UTC, as the forms submit it)
// that falls on the same day as floor to floor itself, so a same-day return
// or reassignment is not earlier than the event it follows.
func notBefore(t, floor time.Time) time.Time {
	t, floor = t.UTC(), floor.UTC()
	if !t.Before(floor) || t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return t
	}
	fy, fm, fd := floor.Date()
	if y, m, d := t.Date(); y == fy && m == fm && d == fd {
		return floor
	}
	return t
}

// checkOverlap fails when the closed period [from, to] intersects another
// custody period of the asset. Periods may touch at their ends.
func checkOverlap(tx *gorm.DB, assetID uint, from, to time.Time) error {
	var n int64
	err := tx.Model(&models.AssignmentHistory{}).
		Where("asset_id = ? AND assigned_date < ?", assetID, to).
		Where("returned_date IS NULL OR returned_date > ?", from).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if n > 0 {
		return &ConflictError{
			Field:  "assigned_date",
			Value:  from.Format(time.RFC3339),
			Reason: fmt.Sprintf("overlaps %d existing custody period(s) of asset %d", n, assetID),
		}
	}
	return nil
}

// openAssignment returns the asset's unreturned row, or nil.
func openAssignment(tx *gorm.DB, assetID uint) (*models.AssignmentHistory, error) {
	var row models.AssignmentHistory
	err := tx.Where("asset_id = ? AND returned_date IS NULL", assetID).
		Order("assigned_date desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// lastReturn is the latest returned_date recorded for the asset, or nil.
func lastReturn(tx *gorm.DB, assetID uint) (*time.Time, error) {
	var row models.AssignmentHistory
	err := tx.Where("asset_id = ? AND returned_date IS NOT NULL", assetID).
		Order("returned_date desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ReturnedDate, nil
}

// open writes an open custody row and makes the employee the owner.
func open(tx *gorm.DB, asset *models.Asset, row *models.AssignmentHistory) error {
	current, err := openAssignment(tx, asset.ID)
	if err != nil {
		return err
	}
	if current != nil {
		return &ConflictError{
			Field:  "asset",
			Value:  fmt.Sprint(asset.ID),
			Reason: fmt.Sprintf("is already assigned to employee %d", current.EmployeeID),
		}
	}

	prev, err := lastReturn(tx, asset.ID)
	if err != nil {
		return err
	}
	if prev != nil {
		row.AssignedDate = notBefore(row.AssignedDate, *prev)
	}
	if prev != nil && row.AssignedDate.Before(*prev) {
		return &ValidationError{Field: "assigned_date", Reason: "precedes the previous return of this asset"}
	}

	if err := tx.Omit("Asset", "Employee").Create(row).Error; err != nil {
		return translateDBError(err, "assignment")
	}
	asset.OwnerID = &row.EmployeeID
	return tx.Model(asset).Update("owner_id", row.EmployeeID).Error
}

// AssignAsset hands the asset to an employee at the given time (now when
// zero). The asset must not have an open assignment.
func (s *Service) AssignAsset(ctx context.Context, assetID, employeeID uint, at time.Time) (*models.AssignmentHistory, error) {
	row := models.AssignmentHistory{
		AssetID:      assetID,
		EmployeeID:   employeeID,
		AssignedDate: s.timestamp(at),
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := firstForUpdate(tx, &asset, assetID); err != nil {
			return err
		}
		if err := requireRef(tx, &models.Employee{}, "employee_id", "employee", employeeID); err != nil {
			return err
		}
		return open(tx, &asset, &row)
	})
	if err != nil {
		return nil, fmt.Errorf("assign asset %d: %w", assetID, err)
	}
	return &row, nil
}

// ReturnAsset closes the open assignment of an asset and clears its owner.
func (s *Service) ReturnAsset(ctx context.Context, assetID uint, at time.Time, reason models.ReturnReason) (*models.AssignmentHistory, error) {
	returned := s.timestamp(at)

	var row *models.AssignmentHistory
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := firstForUpdate(tx, &asset, assetID); err != nil {
			return err
		}

		var err error
		row, err = openAssignment(tx, assetID)
		if err != nil {
			return err
		}
		if row == nil {
			return &ConflictError{Field: "asset", Value: fmt.Sprint(assetID), Reason: "has no open assignment"}
		}
		returned = notBefore(returned, row.AssignedDate)
		if errs := checkReturn(row.AssignedDate, &returned, &reason); len(errs) > 0 {
			return errs
		}

		row.ReturnedDate = &returned
		row.ReturnReason = &reason
		if err := tx.Omit("Asset", "Employee").Save(row).Error; err != nil {
			return translateDBError(err, "assignment")
		}
		asset.OwnerID = nil
		return tx.Model(&asset).Update("owner_id", nil).Error
	})
	if err != nil {
		return nil, fmt.Errorf("return asset %d: %w", assetID, err)
	}
	return row, nil
}

// RecordAssignment appends a custody row as given. An open row also makes the
// employee the asset's owner, exactly like AssignAsset.
func (s *Service) RecordAssignment(ctx context.Context, in AssignmentInput) (*models.AssignmentHistory, error) {
	in.AssignedDate = s.timestamp(in.AssignedDate)
	if in.ReturnedDate != nil {
		t := notBefore(s.timestamp(*in.ReturnedDate), in.AssignedDate)
		in.ReturnedDate = &t
	}

	var errs FieldErrors
	if err := checkStruct(&in); err != nil && !errors.As(err, &errs) {
		return nil, err
	}
	errs = append(errs, checkReturn(in.AssignedDate, in.ReturnedDate, in.ReturnReason)...)
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	row := models.AssignmentHistory{
		AssetID:      in.AssetID,
		EmployeeID:   in.EmployeeID,
		AssignedDate: in.AssignedDate,
		ReturnedDate: in.ReturnedDate,
		ReturnReason: in.ReturnReason,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := firstForUpdate(tx, &asset, in.AssetID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return &ReferenceError{Field: "asset_id", Entity: "asset", ID: in.AssetID}
			}
			return err
		}
		if err := requireRef(tx, &models.Employee{}, "employee_id", "employee", in.EmployeeID); err != nil {
			return err
		}
		if row.Open() {
			return open(tx, &asset, &row)
		}
		if err := checkOverlap(tx, in.AssetID, row.AssignedDate, *row.ReturnedDate); err != nil {
			return err
		}
		return translateDBError(tx.Omit("Asset", "Employee").Create(&row).Error, "assignment")
	})
	if err != nil {
		return nil, fmt.Errorf("record assignment: %w", err)
	}
	return &row, nil
}

// AssignmentHistory lists the custody rows of an asset, oldest first.
func (s *Service) AssignmentHistory(ctx context.Context, assetID uint) ([]models.AssignmentHistory, error) {
	var out []models.AssignmentHistory
	err := s.DB(ctx).
		Preload("Employee").
		Where("asset_id = ?", assetID).
		Order("assigned_date asc, id asc").
		Find(&out).Error
	return out, err
}
