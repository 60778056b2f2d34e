package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidationErrorPrintable(t *testing.T) {
	rec := ValidationError{
		Location:  "services -> api",
		Message:   "missing properties: 'config.yaml'",
		Validator: strPtr("required"),
		Expected:  strPtr(`["config.yaml"]`),
	}

	assert.Equal(t, "Location: services -> api\n"+
		"Message: missing properties: 'config.yaml'\n"+
		"Validator: required\n"+
		`Expected: ["config.yaml"]`, rec.Printable())

	bare := ValidationError{Location: "root", Message: "false schema"}
	assert.Equal(t, "Location: root\nMessage: false schema", bare.Printable())
}

func TestValidationErrorsError(t *testing.T) {
	one := ValidationErrors{{Location: "root", Message: "boom", Validator: strPtr("type"), Expected: strPtr("object")}}
	assert.Equal(t, "validation error at root: boom (validator: type, expected: object)", one.Error())

	two := ValidationErrors{
		{Location: "a", Message: "first"},
		{Location: "b", Message: "second"},
	}
	assert.Equal(t, "found 2 validation errors:\n"+
		"  1. validation error at a: first\n"+
		"  2. validation error at b: second\n", two.Error())
}
