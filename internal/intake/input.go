// Package intake implements the lead-capture forms: field validation and the per-form
// submission state machine that drives a backend intake call.
package intake

import (
	"errors"
	"slices"
)

// Kind selects the form variant.
type Kind string

const (
	KindContact Kind = "contact"
	KindQuote   Kind = "quote"
)

// Valid reports whether k is a known form variant.
func (k Kind) Valid() bool {
	return k == KindContact || k == KindQuote
}

// Field names one editable text input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldService Field = "service"
	FieldMessage Field = "message"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldService, FieldMessage}

// ErrUnknownField is returned for a field name outside Fields.
var ErrUnknownField = errors.New("unknown form field")

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !slices.Contains(Fields, f) {
		return "", ErrUnknownField
	}
	return f, nil
}

// ServiceIDs are the selectable services. "multiple" covers combined jobs.
var ServiceIDs = []string{
	"pressure-washing",
	"gardening",
	"rubbish-removal",
	"gutter-cleaning",
	"lawn-mowing",
	"multiple",
}

// Attachment is a file picked for a quote request.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Input is the editable content of one form. An empty Service means none selected.
type Input struct {
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	Attachments []Attachment
}

func (in *Input) set(field Field, value string) {
	switch field {
	case FieldName:
		in.Name = value
	case FieldEmail:
		in.Email = value
	case FieldPhone:
		in.Phone = value
	case FieldService:
		in.Service = value
	case FieldMessage:
		in.Message = value
	}
}

func (in Input) clone() Input {
	in.Attachments = slices.Clone(in.Attachments)
	return in
}
