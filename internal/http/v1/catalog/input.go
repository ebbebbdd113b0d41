package catalog

import "github.com/aurex-exteriors/site/internal/platform/pagination"

// ServiceGetInput identifies a service by path.
type ServiceGetInput struct {
	ID string `path:"id" doc:"Service identifier" example:"pressure-washing" pattern:"^[a-z0-9][a-z0-9\\-]{0,63}$"`
}

// TestimonialListInput pages through testimonials.
type TestimonialListInput struct {
	pagination.Params
}
