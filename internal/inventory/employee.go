package inventory

import (
	"context"
	"fmt"
	"strings"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

type EmployeeInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=120"`
	DepartmentID uint   `json:"department_id" validate:"required"`
}

type EmployeePatch struct {
	Name         *string
	Email        *string
	DepartmentID *uint
}

func (in *EmployeeInput) check() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return checkStruct(in)
}

// ensureEmailFree is the pre-check; the unique index still backs it up under
// concurrent writers.
func ensureEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	var n int64
	q := tx.Model(&models.Employee{}).Where("LOWER(email) = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if n > 0 {
		return &ConflictError{Field: "email", Value: email, Reason: "already used by another employee"}
	}
	return nil
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	emp := models.Employee{Name: in.Name, Email: in.Email, DepartmentID: in.DepartmentID}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.Department{}, "department_id", "department", in.DepartmentID); err != nil {
			return err
		}
		if err := ensureEmailFree(tx, in.Email, 0); err != nil {
			return err
		}
		return translateDBError(tx.Create(&emp).Error, "email")
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &emp, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id uint, patch EmployeePatch) (*models.Employee, error) {
	var emp models.Employee
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := first(tx, &emp, id); err != nil {
			return err
		}

		in := EmployeeInput{Name: emp.Name, Email: emp.Email, DepartmentID: emp.DepartmentID}
		if patch.Name != nil {
			in.Name = *patch.Name
		}
		if patch.Email != nil {
			in.Email = *patch.Email
		}
		if patch.DepartmentID != nil {
			in.DepartmentID = *patch.DepartmentID
		}
		if err := in.check(); err != nil {
			return err
		}
		if in.DepartmentID != emp.DepartmentID {
			if err := requireRef(tx, &models.Department{}, "department_id", "department", in.DepartmentID); err != nil {
				return err
			}
		}
		if in.Email != emp.Email {
			if err := ensureEmailFree(tx, in.Email, emp.ID); err != nil {
				return err
			}
		}

		emp.Name = in.Name
		emp.Email = in.Email
		emp.DepartmentID = in.DepartmentID
		return translateDBError(tx.Save(&emp).Error, "email")
	})
	if err != nil {
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	return &emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	var emp models.Employee
	if err := first(s.DB(ctx).Preload("Department"), &emp, id); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := s.DB(ctx).Preload("Department").Order("name asc").Find(&out).Error
	return out, err
}

// DeleteEmployee refuses while the employee owns assets or appears in the
// custody history.
func (s *Service) DeleteEmployee(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var emp models.Employee
		if err := first(tx, &emp, id); err != nil {
			return err
		}
		if err := restrict(tx, "employee", &models.Asset{}, "owner_id", id, "owned assets"); err != nil {
			return err
		}
		if err := restrict(tx, "employee", &models.AssignmentHistory{}, "employee_id", id, "assignment records"); err != nil {
			return err
		}
		return translateDBError(tx.Delete(&emp).Error, "employee")
	})
}

// AssetsOwnedBy lists the assets currently owned by an employee.
func (s *Service) AssetsOwnedBy(ctx context.Context, employeeID uint) ([]models.Asset, error) {
	var out []models.Asset
	err := s.DB(ctx).Where("owner_id = ?", employeeID).Order("name asc").Find(&out).Error
	return out, err
}
