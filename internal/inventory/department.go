package inventory

import (
	"context"
	"fmt"
	"strings"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

type DepartmentInput struct {
	Name      string `json:"department" validate:"required,max=250"`
	CompanyID uint   `json:"company_id" validate:"required"`
}

// DepartmentPatch updates only the non-nil fields.
type DepartmentPatch struct {
	Name      *string
	CompanyID *uint
}

func (in *DepartmentInput) check() error {
	in.Name = strings.TrimSpace(in.Name)
	return checkStruct(in)
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	dept := models.Department{Name: in.Name, CompanyID: in.CompanyID}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.Company{}, "company_id", "company", in.CompanyID); err != nil {
			return err
		}
		return translateDBError(tx.Create(&dept).Error, "department")
	})
	if err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return &dept, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id uint, patch DepartmentPatch) (*models.Department, error) {
	var dept models.Department
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := first(tx, &dept, id); err != nil {
			return err
		}

		in := DepartmentInput{Name: dept.Name, CompanyID: dept.CompanyID}
		if patch.Name != nil {
			in.Name = *patch.Name
		}
		if patch.CompanyID != nil {
			in.CompanyID = *patch.CompanyID
		}
		if err := in.check(); err != nil {
			return err
		}
		if in.CompanyID != dept.CompanyID {
			if err := requireRef(tx, &models.Company{}, "company_id", "company", in.CompanyID); err != nil {
				return err
			}
		}

		dept.Name = in.Name
		dept.CompanyID = in.CompanyID
		return translateDBError(tx.Save(&dept).Error, "department")
	})
	if err != nil {
		return nil, fmt.Errorf("update department %d: %w", id, err)
	}
	return &dept, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := first(s.DB(ctx).Preload("Company"), &dept, id); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	err := s.DB(ctx).Preload("Company").Order("department asc").Find(&out).Error
	return out, err
}

// DeleteDepartment refuses while employees or assets still point at it.
func (s *Service) DeleteDepartment(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var dept models.Department
		if err := first(tx, &dept, id); err != nil {
			return err
		}
		if err := restrict(tx, "department", &models.Employee{}, "department_id", id, "employees"); err != nil {
			return err
		}
		if err := restrict(tx, "department", &models.Asset{}, "department_id", id, "assets"); err != nil {
			return err
		}
		return translateDBError(tx.Delete(&dept).Error, "department")
	})
}

// Employees lists the members of a department.
func (s *Service) Employees(ctx context.Context, departmentID uint) ([]models.Employee, error) {
	var out []models.Employee
	err := s.DB(ctx).Where("department_id = ?", departmentID).Order("name asc").Find(&out).Error
	return out, err
}
