package inventory

import (
	"context"
	"testing"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc  *Service
	ctx  context.Context
	co   *models.Company
	dept *models.Department
	loc  *models.Location
	emp  *models.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	svc := NewService(testutil.NewDB(t))
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	co, err := svc.CreateCompany(ctx, CompanyInput{Name: "Acme Global Corp"})
	require.NoError(t, err)
	dept, err := svc.CreateDepartment(ctx, DepartmentInput{Name: "IT", CompanyID: co.ID})
	require.NoError(t, err)
	loc, err := svc.CreateLocation(ctx, LocationInput{Site: "HQ", CompanyID: co.ID})
	require.NoError(t, err)
	emp, err := svc.CreateEmployee(ctx, EmployeeInput{Name: "Ada", Email: "ada@acme.test", DepartmentID: dept.ID})
	require.NoError(t, err)

	return &fixture{svc: svc, ctx: ctx, co: co, dept: dept, loc: loc, emp: emp}
}

func (f *fixture) assetInput() AssetInput {
	return AssetInput{
		Name:         "ThinkPad X1",
		Type:         "laptop",
		Status:       models.AssetGood,
		LocationID:   f.loc.ID,
		DepartmentID: f.dept.ID,
	}
}

func (f *fixture) newAsset(t *testing.T) *models.Asset {
	t.Helper()
	a, err := f.svc.CreateAsset(f.ctx, f.assetInput())
	require.NoError(t, err)
	return a
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
