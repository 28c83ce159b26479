package inventory

import (
	"context"
	"fmt"
	"strings"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

type LocationInput struct {
	Site      string `json:"site" validate:"required,max=100"`
	CompanyID uint   `json:"company_id" validate:"required"`
}

type LocationPatch struct {
	Site      *string
	CompanyID *uint
}

func (in *LocationInput) check() error {
	in.Site = strings.TrimSpace(in.Site)
	return checkStruct(in)
}

func (s *Service) CreateLocation(ctx context.Context, in LocationInput) (*models.Location, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	loc := models.Location{Site: in.Site, CompanyID: in.CompanyID}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.Company{}, "company_id", "company", in.CompanyID); err != nil {
			return err
		}
		return translateDBError(tx.Create(&loc).Error, "site")
	})
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return &loc, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id uint, patch LocationPatch) (*models.Location, error) {
	var loc models.Location
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := first(tx, &loc, id); err != nil {
			return err
		}

		in := LocationInput{Site: loc.Site, CompanyID: loc.CompanyID}
		if patch.Site != nil {
			in.Site = *patch.Site
		}
		if patch.CompanyID != nil {
			in.CompanyID = *patch.CompanyID
		}
		if err := in.check(); err != nil {
			return err
		}
		if in.CompanyID != loc.CompanyID {
			if err := requireRef(tx, &models.Company{}, "company_id", "company", in.CompanyID); err != nil {
				return err
			}
		}

		loc.Site = in.Site
		loc.CompanyID = in.CompanyID
		return translateDBError(tx.Save(&loc).Error, "site")
	})
	if err != nil {
		return nil, fmt.Errorf("update location %d: %w", id, err)
	}
	return &loc, nil
}

func (s *Service) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := first(s.DB(ctx).Preload("Company"), &loc, id); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *Service) ListLocations(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	err := s.DB(ctx).Preload("Company").Order("site asc").Find(&out).Error
	return out, err
}

func (s *Service) DeleteLocation(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var loc models.Location
		if err := first(tx, &loc, id); err != nil {
			return err
		}
		if err := restrict(tx, "location", &models.Asset{}, "location_id", id, "assets"); err != nil {
			return err
		}
		return translateDBError(tx.Delete(&loc).Error, "location")
	})
}

// AssetsAt lists the assets hosted at a location.
func (s *Service) AssetsAt(ctx context.Context, locationID uint) ([]models.Asset, error) {
	var out []models.Asset
	err := s.DB(ctx).Where("location_id = ?", locationID).Order("name asc").Find(&out).Error
	return out, err
}
