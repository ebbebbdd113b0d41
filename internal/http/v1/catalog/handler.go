package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/content"
	"github.com/aurex-exteriors/site/internal/platform/logging"
	"github.com/aurex-exteriors/site/internal/platform/pagination"
	"github.com/aurex-exteriors/site/internal/platform/timeutil"
	"github.com/aurex-exteriors/site/internal/service/backend"
)

const testimonialCursorKind = "testimonial"

// Register wires the catalog routes. companyFallback is served whenever the backend
// cannot supply the company profile.
func Register(api huma.API, svc backend.Service, companyFallback content.Company, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-services",
		Method:      http.MethodGet,
		Path:        "/services",
		Summary:     "List services",
		Description: "Returns every service offered, as reported by the intake backend.",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, _ *struct{}) (*ServiceListOutput, error) {
		offerings, err := svc.ListServices(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		services := make([]Service, len(offerings))
		for i := range offerings {
			services[i] = toHTTPService(&offerings[i])
		}
		return &ServiceListOutput{Body: ServiceListData{Services: services, Count: len(services)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-service",
		Method:      http.MethodGet,
		Path:        "/services/{id}",
		Summary:     "Get a service",
		Description: "Returns one service by identifier.",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *ServiceGetInput) (*ServiceGetOutput, error) {
		offering, err := svc.GetService(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ServiceGetOutput{Body: toHTTPService(offering)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-testimonials",
		Method:      http.MethodGet,
		Path:        "/testimonials",
		Summary:     "List testimonials",
		Description: "Returns customer testimonials with cursor-based pagination.",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *TestimonialListInput) (*TestimonialListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor, testimonialCursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}
		all, err := svc.ListTestimonials(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		page := pagination.Paginate(all, cursor, input.PageSize(), func(t backend.Testimonial) string { return t.ID })

		items := make([]Testimonial, len(page.Items))
		for i := range page.Items {
			items[i] = toHTTPTestimonial(&page.Items[i])
		}
		return &TestimonialListOutput{
			Link: page.Link(prefix+"/testimonials", url.Values{}),
			Body: TestimonialListData{Testimonials: items, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-company-info",
		Method:      http.MethodGet,
		Path:        "/company-info",
		Summary:     "Get company info",
		Description: "Returns the business profile. Fields the backend does not supply, or all of them when it is unavailable, come from the configured defaults.",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, _ *struct{}) (*CompanyGetOutput, error) {
		info, err := svc.GetCompanyInfo(ctx)
		if err != nil {
			logging.LogWarn(ctx, "company info unavailable, serving defaults", zap.Error(err))
			info = nil
		}
		return &CompanyGetOutput{Body: toHTTPCompany(content.Resolve(companyFallback, info))}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return huma.Error404NotFound("resource not found")
	case errors.Is(err, backend.ErrNetwork):
		return huma.Error503ServiceUnavailable("backend unavailable")
	default:
		return huma.Error502BadGateway("upstream error")
	}
}

func toHTTPService(o *backend.Offering) Service {
	features := o.Features
	if features == nil {
		features = []string{}
	}
	return Service{
		ID:           o.ID,
		Name:         o.Name,
		Description:  o.Description,
		Icon:         o.Icon,
		Features:     features,
		Pricing:      Pricing(o.Pricing),
		Duration:     o.Duration,
		Availability: o.Availability,
		Active:       o.Active,
	}
}

func toHTTPTestimonial(t *backend.Testimonial) Testimonial {
	return Testimonial{
		ID:       t.ID,
		Name:     t.Name,
		Service:  t.Service,
		Rating:   t.Rating,
		Text:     t.Text,
		Location: t.Location,
		Date:     timeutil.NewTime(t.Date),
		Verified: t.Verified,
	}
}

func toHTTPCompany(c content.Company) Company {
	features := c.Features
	if features == nil {
		features = []string{}
	}
	return Company{
		Name:          c.Name,
		Tagline:       c.Tagline,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		ServiceRadius: c.ServiceRadius,
		BusinessHours: BusinessHours(c.BusinessHours),
		Features:      features,
		Stats:         Stats(c.Stats),
		SocialMedia:   SocialMedia(c.SocialMedia),
	}
}
