package validator

import "testing"

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Age    int    `json:"age" validate:"gt=0"`
	Gender string `json:"gender" validate:"oneof=male female other"`
	Note   string `json:"note" validate:"max=5"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "nope", Age: 0, Gender: "x", Note: "toolong"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := v.FormatValidationErrors(err)
	want := map[string]string{
		"email":  "email must be a valid email address",
		"age":    "age must be greater than 0",
		"gender": "gender must be one of: male, female, other",
		"note":   "note must be at most 5 characters",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, errs[field])
		}
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&sample{Email: "a@x.com", Age: 30, Gender: "female"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
