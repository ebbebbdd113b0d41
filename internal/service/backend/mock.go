package backend

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"
)

const (
	contactAck = "Thank you for contacting us! We'll respond within 2 hours."
	quoteAck   = "Quote request submitted successfully! We'll contact you within 24 hours."
)

// Submission is an intake recorded by Mock.
type Submission struct {
	Intake          Intake
	WithAttachments bool
}

// Mock implements Service for unit tests with a small pre-populated catalog.
// SubmitFunc and CompanyErr override the default behavior when set.
type Mock struct {
	SubmitFunc func(ctx context.Context, in Intake, withAttachments bool) (*Ack, error)
	CompanyErr error

	mu           sync.Mutex
	submissions  []Submission
	offerings    []Offering
	testimonials []Testimonial
	company      CompanyInfo
}

// NewMock creates a mock with the demo services and testimonials.
func NewMock() *Mock {
	return &Mock{
		offerings: []Offering{
			{
				ID:           "pressure-washing",
				Name:         "Pressure Washing",
				Description:  "Driveways, decks and building exteriors.",
				Icon:         "droplets",
				Features:     []string{"Driveways & Sidewalks", "Decks & Patios"},
				Pricing:      Pricing{Starting: 150, Unit: "per service"},
				Duration:     "2-4 hours",
				Availability: "Available daily",
				Active:       true,
			},
			{
				ID:           "lawn-mowing",
				Name:         "Lawn Mowing",
				Description:  "Regular mowing and edge trimming.",
				Icon:         "scissors",
				Features:     []string{"Weekly Mowing", "Edge Trimming"},
				Pricing:      Pricing{Starting: 50, Unit: "per visit"},
				Duration:     "1-2 hours",
				Availability: "Mon-Sat",
				Active:       true,
			},
		},
		testimonials: []Testimonial{
			{ID: "t1", Name: "Sarah Johnson", Service: "Pressure Washing", Rating: 5, Text: "Driveway looks new.", Location: "Belconnen", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Verified: true},
			{ID: "t2", Name: "Mike Chen", Service: "Gutter Cleaning", Rating: 5, Text: "Thorough and on time.", Location: "Gungahlin", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Verified: true},
			{ID: "t3", Name: "Emily Rodriguez", Service: "Rubbish Removal", Rating: 4, Text: "Fast pickup.", Location: "Woden", Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Verified: true},
		},
		company: CompanyInfo{
			Name:          "Aurex Exteriors",
			Phone:         "0424 910 154",
			Email:         "AurexExteriors@gmail.com",
			ServiceRadius: "2600-2617 postcode areas",
			Stats:         Stats{Customers: "500+", Support: "24/7"},
		},
	}
}

func (m *Mock) SubmitIntake(ctx context.Context, in Intake, withAttachments bool) (*Ack, error) {
	m.mu.Lock()
	in.Attachments = slices.Clone(in.Attachments)
	m.submissions = append(m.submissions, Submission{Intake: in, WithAttachments: withAttachments})
	n := len(m.submissions)
	submit := m.SubmitFunc
	m.mu.Unlock()

	if submit != nil {
		return submit(ctx, in, withAttachments)
	}
	if in.Target == TargetQuoteRequest {
		return &Ack{
			Message: quoteAck,
			Quote: &QuoteRequest{
				ID:      fmt.Sprintf("quote-%d", n),
				Name:    in.Name,
				Email:   in.Email,
				Phone:   in.Phone,
				Service: in.Service,
				Message: in.Message,
				Status:  "pending",
			},
		}, nil
	}
	return &Ack{Message: contactAck}, nil
}

// Submissions returns a copy of every intake received so far.
func (m *Mock) Submissions() []Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.submissions)
}

func (m *Mock) ListServices(context.Context) ([]Offering, error) {
	return slices.Clone(m.offerings), nil
}

func (m *Mock) GetService(_ context.Context, id string) (*Offering, error) {
	for _, o := range m.offerings {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, &APIError{Kind: ErrorKindServer, Status: http.StatusNotFound, Detail: "Service not found"}
}

func (m *Mock) ListTestimonials(context.Context) ([]Testimonial, error) {
	return slices.Clone(m.testimonials), nil
}

func (m *Mock) GetCompanyInfo(context.Context) (*CompanyInfo, error) {
	if m.CompanyErr != nil {
		return nil, m.CompanyErr
	}
	c := m.company
	return &c, nil
}

func (m *Mock) Health(context.Context) (*Health, error) {
	return &Health{Status: "healthy", Message: "mock backend"}, nil
}

var _ Service = (*Mock)(nil)
