package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"asset-tracker/internal/models"
)

// Choice is one option of a select field backed by a table.
type Choice struct {
	Value uint
	Label string
}

// ChoiceSource is what the forms need to build their select options.
type ChoiceSource interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

// AssetChoices holds the options offered by the asset form. A submitted
// reference is only accepted when it is one of them.
type AssetChoices struct {
	Locations   []Choice
	Departments []Choice
	Owners      []Choice
}

type StatusChoice struct {
	Value models.AssetStatus
	Label string
}

var StatusChoices = []StatusChoice{
	{Value: models.AssetGood, Label: "Good"},
	{Value: models.AssetBad, Label: "Bad"},
}

type ReasonChoice struct {
	Value models.ReturnReason
	Label string
}

var ReasonChoices = []ReasonChoice{
	{Value: models.ReturnExit, Label: "Exit"},
	{Value: models.ReturnRepair, Label: "Repair"},
}

func LoadAssetChoices(ctx context.Context, src ChoiceSource) (AssetChoices, error) {
	var out AssetChoices

	locs, err := src.ListLocations(ctx)
	if err != nil {
		return out, fmt.Errorf("load locations: %w", err)
	}
	for _, l := range locs {
		out.Locations = append(out.Locations, Choice{Value: l.ID, Label: withCompany(l.Site, l.Company)})
	}

	depts, err := src.ListDepartments(ctx)
	if err != nil {
		return out, fmt.Errorf("load departments: %w", err)
	}
	for _, d := range depts {
		out.Departments = append(out.Departments, Choice{Value: d.ID, Label: withCompany(d.Name, d.Company)})
	}

	emps, err := src.ListEmployees(ctx)
	if err != nil {
		return out, fmt.Errorf("load employees: %w", err)
	}
	for _, e := range emps {
		out.Owners = append(out.Owners, Choice{Value: e.ID, Label: e.Name})
	}

	return out, nil
}

func withCompany(label string, c models.Company) string {
	if c.Acronym == "" {
		return label
	}
	return label + " (" + c.Acronym + ")"
}

// pick resolves a submitted option value against the offered choices.
func pick(raw string, choices []Choice) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	for _, c := range choices {
		if uint64(c.Value) == id {
			return c.Value, true
		}
	}
	return 0, false
}
