// Package forms binds and validates raw request input before it reaches the
// inventory service.
package forms

import (
	"fmt"
	"strings"
	"time"

	"asset-tracker/internal/inventory"
	"asset-tracker/internal/models"
)

const DateLayout = "2006-01-02"

type AssetForm struct {
	Name           string `form:"name"`
	Type           string `form:"type"`
	Description    string `form:"description"`
	SerialNumber   string `form:"serial_number"`
	PurchaseDate   string `form:"purchase_date"`
	WarrantyExpiry string `form:"warranty_expiry"`
	Status         string `form:"status"`
	Location       string `form:"location"`
	Department     string `form:"department"`
	Owner          string `form:"owner"`
}

// AssetFormFrom pre-fills the form with a stored asset.
func AssetFormFrom(a models.Asset) AssetForm {
	f := AssetForm{
		Name:           a.Name,
		Type:           a.Type,
		Description:    deref(a.Description),
		SerialNumber:   deref(a.SerialNumber),
		PurchaseDate:   formatDate(a.PurchaseDate),
		WarrantyExpiry: formatDate(a.WarrantyExpiry),
		Status:         string(a.Status),
		Location:       fmt.Sprint(a.LocationID),
		Department:     fmt.Sprint(a.DepartmentID),
	}
	if a.OwnerID != nil {
		f.Owner = fmt.Sprint(*a.OwnerID)
	}
	return f
}

// Validate checks the submission against the offered choices and returns the
// typed input for the inventory service. Every failing field is reported.
func (f *AssetForm) Validate(choices AssetChoices) (inventory.AssetInput, error) {
	var (
		in   inventory.AssetInput
		errs inventory.FieldErrors
	)
	fail := func(field, reason string) {
		errs = append(errs, &inventory.ValidationError{Field: field, Reason: reason})
	}

	in.Name = strings.TrimSpace(f.Name)
	if in.Name == "" {
		fail("name", "This field is required.")
	}
	in.Type = strings.TrimSpace(f.Type)
	if in.Type == "" {
		fail("type", "This field is required.")
	}
	in.Description = optional(f.Description)
	in.SerialNumber = optional(f.SerialNumber)

	var err error
	if in.PurchaseDate, err = parseDate(f.PurchaseDate); err != nil {
		fail("purchase_date", "Not a valid date value (YYYY-MM-DD).")
	}
	if in.WarrantyExpiry, err = parseDate(f.WarrantyExpiry); err != nil {
		fail("warranty_expiry", "Not a valid date value (YYYY-MM-DD).")
	}

	in.Status = models.AssetStatus(strings.TrimSpace(f.Status))
	switch {
	case in.Status == "":
		fail("status", "This field is required.")
	case !in.Status.Valid():
		fail("status", "Not a valid choice.")
	}

	var ok bool
	if strings.TrimSpace(f.Location) == "" {
		fail("location", "This field is required.")
	} else if in.LocationID, ok = pick(f.Location, choices.Locations); !ok {
		fail("location", "Not a valid choice.")
	}
	if strings.TrimSpace(f.Department) == "" {
		fail("department", "This field is required.")
	} else if in.DepartmentID, ok = pick(f.Department, choices.Departments); !ok {
		fail("department", "Not a valid choice.")
	}

	// owner may be left blank
	if strings.TrimSpace(f.Owner) != "" {
		id, ok := pick(f.Owner, choices.Owners)
		if !ok {
			fail("owner", "Not a valid choice.")
		} else {
			in.OwnerID = &id
		}
	}

	if len(errs) > 0 {
		return inventory.AssetInput{}, errs
	}
	return in, nil
}

// FormField maps a service-level field name onto the form field that
// carries it.
func FormField(name string) string {
	switch name {
	case "location_id":
		return "location"
	case "department_id":
		return "department"
	case "owner_id", "employee_id":
		return "owner"
	}
	return name
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
