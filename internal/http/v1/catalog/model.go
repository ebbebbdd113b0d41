package catalog

import "github.com/aurex-exteriors/site/internal/platform/timeutil"

// Pricing is the "from" price of a service.
type Pricing struct {
	Starting int    `json:"starting" doc:"Lowest price in AUD" example:"150"`
	Unit     string `json:"unit"     doc:"Pricing unit"        example:"per service"`
}

// Service is one offering of the business.
type Service struct {
	ID           string   `json:"id"           doc:"Service identifier"      example:"pressure-washing"`
	Name         string   `json:"name"         doc:"Display name"            example:"Pressure Washing"`
	Description  string   `json:"description"  doc:"Short description"`
	Icon         string   `json:"icon"         doc:"Icon name"               example:"droplets"`
	Features     []string `json:"features"     doc:"Included work"`
	Pricing      Pricing  `json:"pricing"      doc:"Starting price"`
	Duration     string   `json:"duration"     doc:"Typical job length"      example:"2-4 hours"`
	Availability string   `json:"availability" doc:"When the service is run" example:"Available daily"`
	Active       bool     `json:"active"       doc:"Whether bookable"        example:"true"`
}

// Testimonial is a customer review.
type Testimonial struct {
	ID       string        `json:"id"       doc:"Testimonial identifier" example:"t1"`
	Name     string        `json:"name"     doc:"Customer name"          example:"Sarah Johnson"`
	Service  string        `json:"service"  doc:"Service reviewed"       example:"Pressure Washing"`
	Rating   int           `json:"rating"   doc:"Stars out of five"      example:"5" minimum:"1" maximum:"5"`
	Text     string        `json:"text"     doc:"Review text"`
	Location string        `json:"location" doc:"Suburb"                 example:"Belconnen"`
	Date     timeutil.Time `json:"date"     doc:"Review date"            example:"2024-01-15T00:00:00.000Z"`
	Verified bool          `json:"verified" doc:"Whether the customer was verified"`
}

// BusinessHours are display strings per day group.
type BusinessHours struct {
	Weekdays string `json:"weekdays" example:"Mon-Sat: 7AM-7PM"`
	Saturday string `json:"saturday,omitempty"`
	Sunday   string `json:"sunday"   example:"Sunday: 9AM-5PM"`
}

// Stats are marketing figures for the about section.
type Stats struct {
	Customers    string `json:"customers"    example:"500+"`
	Experience   string `json:"experience"   example:"5+ years"`
	Satisfaction string `json:"satisfaction" example:"100%"`
	Support      string `json:"support"      example:"24/7"`
}

// SocialMedia holds profile links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Company is the business profile shown in the footer and contact sections.
type Company struct {
	Name          string        `json:"name"          example:"Aurex Exteriors"`
	Tagline       string        `json:"tagline"`
	Phone         string        `json:"phone"         example:"0424 910 154"`
	Email         string        `json:"email"         example:"AurexExteriors@gmail.com"`
	Address       string        `json:"address"       example:"Canberra, Australian Capital Territory (ACT)"`
	ServiceRadius string        `json:"serviceRadius" example:"2600-2617 postcode areas"`
	BusinessHours BusinessHours `json:"businessHours"`
	Features      []string      `json:"features"`
	Stats         Stats         `json:"stats"`
	SocialMedia   SocialMedia   `json:"socialMedia"`
}
