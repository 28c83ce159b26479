package forms

import (
	"testing"
	"time"

	"asset-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignForm(t *testing.T) {
	f := AssignForm{Employee: "3", Date: "2024-01-10"}
	id, at, err := f.Validate(choices.Owners)
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), at)

	f = AssignForm{Employee: "3"}
	_, at, err = f.Validate(choices.Owners)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	f = AssignForm{Employee: "", Date: "tomorrow"}
	_, _, err = f.Validate(choices.Owners)
	msgs := fieldErrors(t, err)
	assert.Contains(t, msgs, "employee")
	assert.Contains(t, msgs, "date")
}

func TestReturnForm(t *testing.T) {
	f := ReturnForm{Date: "2024-01-20", Reason: "repair"}
	at, reason, err := f.Validate()
	require.NoError(t, err)
	assert.Equal(t, models.ReturnRepair, reason)
	assert.Equal(t, 20, at.Day())

	f = ReturnForm{Reason: "lost"}
	_, _, err = f.Validate()
	assert.Contains(t, fieldErrors(t, err), "reason")
}
