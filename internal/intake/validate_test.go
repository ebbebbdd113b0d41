package intake

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{Name: "Jane Doe", Email: "jane@x.com", Service: "lawn-mowing"}
}

func reason(t *testing.T, err error) string {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.ErrorIs(t, err, ErrInvalidInput)
	return vErr.Reason
}

func TestValidateAcceptsValidInput(t *testing.T) {
	assert.NoError(t, Validate(validInput()))

	in := validInput()
	in.Phone = "not checked"
	in.Message = ""
	assert.NoError(t, Validate(in))
}

func TestValidateRuleOrder(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"empty name wins over everything", Input{Email: "bad", Service: ""}, "name required"},
		{"whitespace name", Input{Name: "  \t", Email: "jane@x.com", Service: "gardening"}, "name required"},
		{"empty email", Input{Name: "Jane", Email: " ", Service: "gardening"}, "email required"},
		{"missing service before email format", Input{Name: "Jane", Email: "not-an-email"}, "service required"},
		{"bad email", Input{Name: "Jane", Email: "not-an-email", Service: "gardening"}, "invalid email format"},
		{"unknown service", Input{Name: "Jane", Email: "jane@x.com", Service: "window-tinting"}, "unknown service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reason(t, Validate(tt.in)))
		})
	}
}

func TestValidateEmptyNameAlwaysNameRequired(t *testing.T) {
	for _, in := range []Input{
		{},
		{Email: "jane@x.com", Service: "lawn-mowing"},
		{Email: "x", Service: "nope", Phone: "1", Message: "hi"},
		{Name: "", Email: "", Service: "multiple"},
	} {
		assert.Equal(t, "name required", reason(t, Validate(in)))
	}
}

func TestValidateEmailPattern(t *testing.T) {
	for email, ok := range map[string]bool{
		"jane@x.com":          true,
		"a.b+c@sub.domain.au": true,
		"not-an-email":        false,
		"jane@x":              false,
		"jane@@x.com":         false,
		"ja ne@x.com":         false,
		"@x.com":              false,
		"jane@x.com ":         false,
	} {
		in := validInput()
		in.Email = email
		err := Validate(in)
		if ok {
			assert.NoError(t, err, email)
		} else {
			assert.Equal(t, "invalid email format", reason(t, err), email)
		}
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	for _, in := range []Input{validInput(), {Name: "Jane", Email: "nope", Service: "gardening"}} {
		before := in.clone()
		first := Validate(in)
		second := Validate(in)
		assert.Equal(t, first, second)
		assert.Equal(t, before, in)
	}
}

func TestEveryServiceIDIsAccepted(t *testing.T) {
	for _, id := range ServiceIDs {
		in := validInput()
		in.Service = id
		assert.NoError(t, Validate(in), id)
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("email")
	require.NoError(t, err)
	assert.Equal(t, FieldEmail, f)

	_, err = ParseField("attachments")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCustomTagsRegistered(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })
	assert.NoError(t, v.Var("jane@x.com", "lead_email"))
	assert.Error(t, v.Var("jane@x", "lead_email"))
	assert.NoError(t, v.Var("gardening", "service_id"))
	assert.Error(t, v.Var("window-cleaning", "service_id"))
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	assert.Panics(t, func() {
		mustRegister(newValidator(), "", func(validator.FieldLevel) bool { return true })
	})
}
