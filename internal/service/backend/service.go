package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Service errors
var (
	ErrNetwork  = errors.New("backend unreachable")
	ErrServer   = errors.New("backend rejected request")
	ErrNotFound = errors.New("backend resource not found")
)

// ErrorKind classifies backend failures.
type ErrorKind string

const (
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindServer  ErrorKind = "server"
)

// APIError is returned by every Client call that fails. Network errors carry no Status.
// Detail holds the server-supplied explanation and is empty when the response had none.
type APIError struct {
	Kind   ErrorKind
	Status int
	Detail string
	cause  error
}

func (e *APIError) Error() string {
	if e == nil {
		return "backend error"
	}
	if e.Kind == ErrorKindNetwork {
		return fmt.Sprintf("backend network error: %v", e.cause)
	}
	return fmt.Sprintf("backend server error (status=%d): %s", e.Status, e.Message())
}

// Message is the server detail, or the HTTP status text when the server sent none.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

// Unwrap exposes the kind sentinel, ErrNotFound for 404s, and the transport cause.
func (e *APIError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 3)
	switch e.Kind {
	case ErrorKindNetwork:
		errs = append(errs, ErrNetwork)
	case ErrorKindServer:
		errs = append(errs, ErrServer)
	}
	if e.Status == http.StatusNotFound {
		errs = append(errs, ErrNotFound)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Target is the intake endpoint a submission is posted to, relative to the API root.
type Target string

const (
	TargetContact      Target = "/contact"
	TargetQuoteRequest Target = "/quote-request"
)

// Attachment is a user-selected file sent as a "photos" part.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Intake is one lead submission.
type Intake struct {
	Target      Target
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	Attachments []Attachment
}

// Ack is the backend's acknowledgement of an intake. Quote is set for quote requests.
type Ack struct {
	Message string
	Quote   *QuoteRequest
}

// QuoteRequest is the record the backend creates for a quote request.
type QuoteRequest struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Service        string
	Message        string
	Status         string
	EstimatedPrice *int
	CreatedAt      time.Time
}

// Pricing is the "from" price of a service.
type Pricing struct {
	Starting int
	Unit     string
}

// Offering is one service the business sells.
type Offering struct {
	ID           string
	Name         string
	Description  string
	Icon         string
	Features     []string
	Pricing      Pricing
	Duration     string
	Availability string
	Active       bool
}

// Testimonial is a customer review.
type Testimonial struct {
	ID       string
	Name     string
	Service  string
	Rating   int
	Text     string
	Location string
	Date     time.Time
	Verified bool
}

// BusinessHours are display strings such as "Mon-Sat: 7AM-7PM".
type BusinessHours struct {
	Weekdays string
	Saturday string
	Sunday   string
}

// Stats are marketing figures shown on the about section.
type Stats struct {
	Customers    string
	Experience   string
	Satisfaction string
	Support      string
}

// SocialMedia holds profile links.
type SocialMedia struct {
	Facebook  string
	Twitter   string
	Instagram string
}

// CompanyInfo is the business profile. Every field may be empty.
type CompanyInfo struct {
	Name          string
	Tagline       string
	Phone         string
	Email         string
	Address       string
	ServiceRadius string
	BusinessHours BusinessHours
	Features      []string
	Stats         Stats
	SocialMedia   SocialMedia
}

// Health is the backend's liveness answer.
type Health struct {
	Status  string
	Message string
}

// Service defines the backend intake API.
type Service interface {
	SubmitIntake(ctx context.Context, in Intake, withAttachments bool) (*Ack, error)
	ListServices(ctx context.Context) ([]Offering, error)
	GetService(ctx context.Context, id string) (*Offering, error)
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	GetCompanyInfo(ctx context.Context) (*CompanyInfo, error)
	Health(ctx context.Context) (*Health, error)
}
