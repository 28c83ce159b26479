package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentAndLocationReferences(t *testing.T) {
	f := newFixture(t)

	var re *ReferenceError
	_, err := f.svc.CreateDepartment(f.ctx, DepartmentInput{Name: "Ops", CompanyID: 404})
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "company_id", re.Field)
	assert.EqualValues(t, 404, re.ID)

	_, err = f.svc.CreateLocation(f.ctx, LocationInput{Site: "Annex", CompanyID: 404})
	require.ErrorAs(t, err, &re)

	var ve *ValidationError
	_, err = f.svc.CreateDepartment(f.ctx, DepartmentInput{Name: "", CompanyID: f.co.ID})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "department", ve.Field)

	_, err = f.svc.CreateLocation(f.ctx, LocationInput{Site: "HQ 2"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "company_id", ve.Field)
}

func TestPatchUpdates(t *testing.T) {
	f := newFixture(t)

	dept, err := f.svc.UpdateDepartment(f.ctx, f.dept.ID, DepartmentPatch{Name: ptr("Information Technology")})
	require.NoError(t, err)
	assert.Equal(t, "Information Technology", dept.Name)
	assert.Equal(t, f.co.ID, dept.CompanyID)

	var re *ReferenceError
	_, err = f.svc.UpdateDepartment(f.ctx, f.dept.ID, DepartmentPatch{CompanyID: ptr(uint(77))})
	require.ErrorAs(t, err, &re)

	loc, err := f.svc.UpdateLocation(f.ctx, f.loc.ID, LocationPatch{Site: ptr("Head Office")})
	require.NoError(t, err)
	assert.Equal(t, "Head Office", loc.Site)

	var ve *ValidationError
	_, err = f.svc.UpdateLocation(f.ctx, f.loc.ID, LocationPatch{Site: ptr(" ")})
	require.ErrorAs(t, err, &ve)

	_, err = f.svc.UpdateLocation(f.ctx, 999, LocationPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeEmailIsUnique(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateEmployee(f.ctx, EmployeeInput{Name: "Imposter", Email: "ADA@acme.test", DepartmentID: f.dept.ID})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "email", ce.Field)

	bob, err := f.svc.CreateEmployee(f.ctx, EmployeeInput{Name: "Bob", Email: "bob@acme.test", DepartmentID: f.dept.ID})
	require.NoError(t, err)

	_, err = f.svc.UpdateEmployee(f.ctx, bob.ID, EmployeePatch{Email: ptr("ada@acme.test")})
	require.ErrorAs(t, err, &ce)

	// keeping your own address is not a conflict
	bob, err = f.svc.UpdateEmployee(f.ctx, bob.ID, EmployeePatch{Name: ptr("Robert"), Email: ptr("bob@acme.test")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", bob.Name)
}

func TestEmployeeValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateEmployee(f.ctx, EmployeeInput{Name: "", Email: "not-an-email", DepartmentID: f.dept.ID})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	msgs := fe.Map()
	assert.Contains(t, msgs, "name")
	assert.Contains(t, msgs, "email")

	var re *ReferenceError
	_, err = f.svc.CreateEmployee(f.ctx, EmployeeInput{Name: "Eve", Email: "eve@acme.test", DepartmentID: 31})
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "department_id", re.Field)
}

func TestEmployeeAccessorsAndDelete(t *testing.T) {
	f := newFixture(t)

	emps, err := f.svc.Employees(f.ctx, f.dept.ID)
	require.NoError(t, err)
	require.Len(t, emps, 1)
	assert.Equal(t, "ada@acme.test", emps[0].Email)

	in := f.assetInput()
	in.OwnerID = &f.emp.ID
	_, err = f.svc.CreateAsset(f.ctx, in)
	require.NoError(t, err)

	owned, err := f.svc.AssetsOwnedBy(f.ctx, f.emp.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	var ce *ConflictError
	require.ErrorAs(t, f.svc.DeleteEmployee(f.ctx, f.emp.ID), &ce)
	require.ErrorAs(t, f.svc.DeleteDepartment(f.ctx, f.dept.ID), &ce)
	require.ErrorAs(t, f.svc.DeleteLocation(f.ctx, f.loc.ID), &ce)

	lone, err := f.svc.CreateEmployee(f.ctx, EmployeeInput{Name: "Temp", Email: "temp@acme.test", DepartmentID: f.dept.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteEmployee(f.ctx, lone.ID))
	assert.ErrorIs(t, f.svc.DeleteEmployee(f.ctx, lone.ID), ErrNotFound)
}
