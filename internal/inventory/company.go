package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

type CompanyInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (in *CompanyInput) check() error {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkStruct(in); err != nil {
		return err
	}
	if acr := models.DeriveAcronym(in.Name); utf8.RuneCountInString(acr) > models.AcronymMaxLen {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("yields acronym %q longer than %d characters", acr, models.AcronymMaxLen),
		}
	}
	return nil
}

// acronymError maps the save hook's rejection to a ValidationError.
func acronymError(err error) error {
	if errors.Is(err, models.ErrAcronymTooLong) {
		return &ValidationError{Field: "name", Reason: err.Error()}
	}
	return err
}

func (s *Service) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	company := models.NewCompany(in.Name)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(company).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create company: %w", translateDBError(acronymError(err), "name"))
	}
	return company, nil
}

// RenameCompany is the update path for companies; the acronym is re-derived
// as part of the write.
func (s *Service) RenameCompany(ctx context.Context, id uint, name string) (*models.Company, error) {
	in := CompanyInput{Name: name}
	if err := in.check(); err != nil {
		return nil, err
	}

	var company models.Company
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := first(tx, &company, id); err != nil {
			return err
		}
		company.SetName(in.Name)
		return tx.Save(&company).Error
	})
	if err != nil {
		return nil, fmt.Errorf("rename company %d: %w", id, translateDBError(acronymError(err), "name"))
	}
	return &company, nil
}

func (s *Service) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := first(s.DB(ctx), &company, id); err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *Service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := s.DB(ctx).Order("name asc").Find(&companies).Error
	return companies, err
}

// DeleteCompany refuses while departments or locations still belong to it.
func (s *Service) DeleteCompany(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var company models.Company
		if err := first(tx, &company, id); err != nil {
			return err
		}
		if err := restrict(tx, "company", &models.Department{}, "company_id", id, "departments"); err != nil {
			return err
		}
		if err := restrict(tx, "company", &models.Location{}, "company_id", id, "locations"); err != nil {
			return err
		}
		return translateDBError(tx.Delete(&company).Error, "company")
	})
}

// Departments lists the departments of a company.
func (s *Service) Departments(ctx context.Context, companyID uint) ([]models.Department, error) {
	var out []models.Department
	err := s.DB(ctx).Where("company_id = ?", companyID).Order("department asc").Find(&out).Error
	return out, err
}

// Locations lists the sites of a company.
func (s *Service) Locations(ctx context.Context, companyID uint) ([]models.Location, error) {
	var out []models.Location
	err := s.DB(ctx).Where("company_id = ?", companyID).Order("site asc").Find(&out).Error
	return out, err
}
