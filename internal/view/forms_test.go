package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLoginForm(t *testing.T) {
	assert.Empty(t, ValidateForm(LoginForm{Username: "alice", Password: "secret"}))

	errs := ValidateForm(LoginForm{Username: "alice"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Password", errs[0].Field)
	assert.Equal(t, "This field is required", errs[0].Message)

	assert.Len(t, ValidateForm(LoginForm{}), 2)
}

func TestValidateProductForm(t *testing.T) {
	valid := ProductForm{Name: "Lamp", Price: 500, CategoryID: "1"}
	assert.Empty(t, ValidateForm(valid))

	// The image URL is optional
	valid.ImageURL = ""
	assert.Empty(t, ValidateForm(valid))

	zeroPrice := ProductForm{Name: "Lamp", Price: 0, CategoryID: "1"}
	errs := ValidateForm(zeroPrice)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Price", errs[0].Field)

	negative := ProductForm{Name: "Lamp", Price: -1, CategoryID: "1"}
	errs = ValidateForm(negative)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Value must be greater than 0", errs[0].Message)
}
