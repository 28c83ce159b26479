package main

import (
	"asset-tracker/internal/database"
	"asset-tracker/internal/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func userCmd() *cobra.Command {
	var (
		email, password string
		admin           bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a login account.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := database.CreateUser(e.db.WithContext(cmd.Context()), email, password, admin)
			if err != nil {
				return err
			}
			e.log.Info("user created", zap.Uint("id", user.ID), zap.String("email", user.Email), zap.Bool("admin", user.IsAdmin))
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "login e-mail")
	create.Flags().StringVar(&password, "password", "", "password, at least 6 characters")
	create.Flags().BoolVar(&admin, "admin", false, "grant access to the audit trail")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	user := &cobra.Command{Use: "user", Short: "Manage login accounts."}
	user.AddCommand(create)
	return user
}

// withService runs fn against a connected inventory service.
func withService(fn func(svc *inventory.Service, log *zap.Logger) error) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()
	return fn(inventory.NewService(e.db), e.log)
}

func entityCmds() []*cobra.Command {
	var name string
	companyCreate := &cobra.Command{
		Use:   "create",
		Short: "Add a company; its acronym is derived from the name.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *inventory.Service, log *zap.Logger) error {
				co, err := svc.CreateCompany(cmd.Context(), inventory.CompanyInput{Name: name})
				if err != nil {
					return err
				}
				log.Info("company created", zap.Uint("id", co.ID), zap.String("acronym", co.Acronym))
				return nil
			})
		},
	}
	companyCreate.Flags().StringVar(&name, "name", "", "company name")
	_ = companyCreate.MarkFlagRequired("name")

	var (
		deptName  string
		companyID uint
	)
	departmentCreate := &cobra.Command{
		Use:   "create",
		Short: "Add a department to a company.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *inventory.Service, log *zap.Logger) error {
				d, err := svc.CreateDepartment(cmd.Context(), inventory.DepartmentInput{Name: deptName, CompanyID: companyID})
				if err != nil {
					return err
				}
				log.Info("department created", zap.Uint("id", d.ID))
				return nil
			})
		},
	}
	departmentCreate.Flags().StringVar(&deptName, "name", "", "department name")
	departmentCreate.Flags().UintVar(&companyID, "company", 0, "company id")
	_ = departmentCreate.MarkFlagRequired("name")
	_ = departmentCreate.MarkFlagRequired("company")

	var (
		site         string
		locCompanyID uint
	)
	locationCreate := &cobra.Command{
		Use:   "create",
		Short: "Add a site to a company.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *inventory.Service, log *zap.Logger) error {
				l, err := svc.CreateLocation(cmd.Context(), inventory.LocationInput{Site: site, CompanyID: locCompanyID})
				if err != nil {
					return err
				}
				log.Info("location created", zap.Uint("id", l.ID))
				return nil
			})
		},
	}
	locationCreate.Flags().StringVar(&site, "site", "", "site name")
	locationCreate.Flags().UintVar(&locCompanyID, "company", 0, "company id")
	_ = locationCreate.MarkFlagRequired("site")
	_ = locationCreate.MarkFlagRequired("company")

	var (
		empName, empEmail string
		departmentID      uint
	)
	employeeCreate := &cobra.Command{
		Use:   "create",
		Short: "Add an employee to a department.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *inventory.Service, log *zap.Logger) error {
				emp, err := svc.CreateEmployee(cmd.Context(), inventory.EmployeeInput{
					Name:         empName,
					Email:        empEmail,
					DepartmentID: departmentID,
				})
				if err != nil {
					return err
				}
				log.Info("employee created", zap.Uint("id", emp.ID), zap.String("email", emp.Email))
				return nil
			})
		},
	}
	employeeCreate.Flags().StringVar(&empName, "name", "", "full name")
	employeeCreate.Flags().StringVar(&empEmail, "email", "", "e-mail, unique")
	employeeCreate.Flags().UintVar(&departmentID, "department", 0, "department id")
	_ = employeeCreate.MarkFlagRequired("name")
	_ = employeeCreate.MarkFlagRequired("email")
	_ = employeeCreate.MarkFlagRequired("department")

	return []*cobra.Command{
		group("company", "Manage companies.", companyCreate),
		group("department", "Manage departments.", departmentCreate),
		group("location", "Manage locations.", locationCreate),
		group("employee", "Manage employees.", employeeCreate),
	}
}

func group(use, short string, sub ...*cobra.Command) *cobra.Command {
	c := &cobra.Command{Use: use, Short: short}
	c.AddCommand(sub...)
	return c
}
