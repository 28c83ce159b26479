package forms

import (
	"strings"
	"time"

	"asset-tracker/internal/inventory"
	"asset-tracker/internal/models"
)

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// AssignForm hands an asset to an employee. A blank date means now.
type AssignForm struct {
	Employee string `form:"employee"`
	Date     string `form:"date"`
}

func (f *AssignForm) Validate(owners []Choice) (uint, time.Time, error) {
	var errs inventory.FieldErrors

	id, ok := pick(f.Employee, owners)
	if !ok {
		errs = append(errs, &inventory.ValidationError{Field: "employee", Reason: "Not a valid choice."})
	}
	at, err := parseDate(f.Date)
	if err != nil {
		errs = append(errs, &inventory.ValidationError{Field: "date", Reason: "Not a valid date value (YYYY-MM-DD)."})
	}

	if len(errs) > 0 {
		return 0, time.Time{}, errs
	}
	if at == nil {
		return id, time.Time{}, nil
	}
	return id, *at, nil
}

// ReturnForm closes the open assignment of an asset.
type ReturnForm struct {
	Date   string `form:"date"`
	Reason string `form:"reason"`
}

func (f *ReturnForm) Validate() (time.Time, models.ReturnReason, error) {
	var errs inventory.FieldErrors

	at, err := parseDate(f.Date)
	if err != nil {
		errs = append(errs, &inventory.ValidationError{Field: "date", Reason: "Not a valid date value (YYYY-MM-DD)."})
	}
	reason := models.ReturnReason(strings.TrimSpace(f.Reason))
	if !reason.Valid() {
		errs = append(errs, &inventory.ValidationError{Field: "reason", Reason: "Not a valid choice."})
	}

	if len(errs) > 0 {
		return time.Time{}, "", errs
	}
	if at == nil {
		return time.Time{}, reason, nil
	}
	return *at, reason, nil
}
