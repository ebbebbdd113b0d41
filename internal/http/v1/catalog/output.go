package catalog

// ServiceListData is the response body for listing services.
type ServiceListData struct {
	Services []Service `json:"services" doc:"Services offered"`
	Count    int       `json:"count"    doc:"Number of services returned" example:"5"`
}

// ServiceListOutput is the response wrapper for GET /services.
type ServiceListOutput struct {
	Body ServiceListData
}

// ServiceGetOutput is the response wrapper for GET /services/{id}.
type ServiceGetOutput struct {
	Body Service
}

// TestimonialListData is the response body for a page of testimonials.
type TestimonialListData struct {
	Testimonials []Testimonial `json:"testimonials" doc:"Testimonials on this page"`
	Total        int           `json:"total"        doc:"Number of testimonials overall" example:"3"`
}

// TestimonialListOutput is the response wrapper for GET /testimonials.
type TestimonialListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body TestimonialListData
}

// CompanyGetOutput is the response wrapper for GET /company-info.
type CompanyGetOutput struct {
	Body Company
}
