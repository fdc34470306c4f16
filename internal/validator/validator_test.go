package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string  `json:"email" validate:"required,email"`
	Sex      string  `json:"sex" validate:"omitempty,is-sex"`
	Division *string `json:"permanentDivision" validate:"omitempty,is-division"`
	Status   string  `json:"status" validate:"required,is-access-status"`
	Age      int     `json:"age" validate:"omitempty,gte=18,lte=100"`
}

func TestValidator_CustomRules(t *testing.T) {
	v := New()

	ok := "Dhaka"
	require.NoError(t, v.Validate(&sample{Email: "a@x.com", Sex: "Female", Division: &ok, Status: "approved", Age: 25}))

	bad := "Atlantis"
	err := v.Validate(&sample{Email: "nope", Sex: "female", Division: &bad, Status: "maybe", Age: 12})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "sex")
	assert.Contains(t, verr.Errors, "permanentDivision")
	assert.Contains(t, verr.Errors, "status")
	assert.Equal(t, "Must be greater than or equal to 18", verr.Errors["age"])
}

func TestValidator_EmptyEnumIsLeftToRequired(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "a@x.com"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"status": "This field is required"}, verr.Errors)
}
