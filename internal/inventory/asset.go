package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetInput is used for both create and update: the asset form always
// submits the full record.
type AssetInput struct {
	Name           string             `json:"name" validate:"required,max=200"`
	Type           string             `json:"type" validate:"required,max=200"`
	Description    *string            `json:"description"`
	SerialNumber   *string            `json:"serial_number" validate:"omitempty,max=50"`
	PurchaseDate   *time.Time         `json:"purchase_date"`
	WarrantyExpiry *time.Time         `json:"warranty_expiry"`
	Status         models.AssetStatus `json:"status" validate:"required,oneof=good bad"`
	LocationID     uint               `json:"location_id" validate:"required"`
	DepartmentID   uint               `json:"department_id" validate:"required"`
	OwnerID        *uint              `json:"owner_id"`
}

func (in *AssetInput) check() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = trimPtr(in.Description)
	in.SerialNumber = trimPtr(in.SerialNumber)
	if in.OwnerID != nil && *in.OwnerID == 0 {
		in.OwnerID = nil
	}
	in.PurchaseDate = dateOnly(in.PurchaseDate)
	in.WarrantyExpiry = dateOnly(in.WarrantyExpiry)
	return checkStruct(in)
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func (in AssetInput) checkRefs(tx *gorm.DB) error {
	if err := requireRef(tx, &models.Location{}, "location_id", "location", in.LocationID); err != nil {
		return err
	}
	if err := requireRef(tx, &models.Department{}, "department_id", "department", in.DepartmentID); err != nil {
		return err
	}
	if in.OwnerID != nil {
		if err := requireRef(tx, &models.Employee{}, "owner_id", "employee", *in.OwnerID); err != nil {
			return err
		}
	}
	return nil
}

func (in AssetInput) apply(a *models.Asset) {
	a.Name = in.Name
	a.Type = in.Type
	a.Description = in.Description
	a.SerialNumber = in.SerialNumber
	a.PurchaseDate = in.PurchaseDate
	a.WarrantyExpiry = in.WarrantyExpiry
	a.Status = in.Status
	a.LocationID = in.LocationID
	a.DepartmentID = in.DepartmentID
	a.OwnerID = in.OwnerID
}

func sameOwner(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AssetFrom turns a stored asset back into an input, for pre-filling forms.
func AssetFrom(a models.Asset) AssetInput {
	return AssetInput{
		Name:           a.Name,
		Type:           a.Type,
		Description:    a.Description,
		SerialNumber:   a.SerialNumber,
		PurchaseDate:   a.PurchaseDate,
		WarrantyExpiry: a.WarrantyExpiry,
		Status:         a.Status,
		LocationID:     a.LocationID,
		DepartmentID:   a.DepartmentID,
		OwnerID:        a.OwnerID,
	}
}

func (s *Service) CreateAsset(ctx context.Context, in AssetInput) (*models.Asset, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	var asset models.Asset
	in.apply(&asset)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := in.checkRefs(tx); err != nil {
			return err
		}
		return translateDBError(tx.Omit(clause.Associations).Create(&asset).Error, "asset")
	})
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return &asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id uint, in AssetInput) (*models.Asset, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	var asset models.Asset
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := firstForUpdate(tx, &asset, id); err != nil {
			return err
		}
		if err := in.checkRefs(tx); err != nil {
			return err
		}
		if !sameOwner(asset.OwnerID, in.OwnerID) {
			current, err := openAssignment(tx, asset.ID)
			if err != nil {
				return err
			}
			if current != nil {
				return &ConflictError{
					Field:  "owner_id",
					Value:  fmt.Sprint(current.EmployeeID),
					Reason: "is held under an open assignment; return the asset before changing its owner",
				}
			}
		}
		in.apply(&asset)
		return translateDBError(tx.Omit(clause.Associations).Save(&asset).Error, "asset")
	})
	if err != nil {
		return nil, fmt.Errorf("update asset %d: %w", id, err)
	}
	return &asset, nil
}

func (s *Service) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	q := s.DB(ctx).Preload("Location").Preload("Department").Preload("Owner")
	if err := first(q, &asset, id); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Service) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	err := s.DB(ctx).
		Preload("Location").
		Preload("Department").
		Preload("Owner").
		Order("name asc, id asc").
		Find(&out).Error
	return out, err
}

// DeleteAsset refuses once the asset has custody history; the history is an
// append-only log and is never removed with its asset.
func (s *Service) DeleteAsset(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := first(tx, &asset, id); err != nil {
			return err
		}
		if err := restrict(tx, "asset", &models.AssignmentHistory{}, "asset_id", id, "assignment records"); err != nil {
			return err
		}
		return translateDBError(tx.Delete(&asset).Error, "asset")
	})
}
