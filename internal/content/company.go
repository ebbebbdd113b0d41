// Package content holds the display data served when the backend cannot: the company
// profile shown in the footer and contact sections.
package content

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aurex-exteriors/site/internal/service/backend"
)

// Hours are display strings, one per day group.
type Hours struct {
	Weekdays string `yaml:"weekdays"`
	Saturday string `yaml:"saturday"`
	Sunday   string `yaml:"sunday"`
}

// Stats are the marketing figures shown on the about section.
type Stats struct {
	Customers    string `yaml:"customers"`
	Experience   string `yaml:"experience"`
	Satisfaction string `yaml:"satisfaction"`
	Support      string `yaml:"support"`
}

// Social holds profile links.
type Social struct {
	Facebook  string `yaml:"facebook"`
	Twitter   string `yaml:"twitter"`
	Instagram string `yaml:"instagram"`
}

// Company is the profile rendered on every page.
type Company struct {
	Name          string   `yaml:"name"`
	Tagline       string   `yaml:"tagline"`
	Phone         string   `yaml:"phone"`
	Email         string   `yaml:"email"          validate:"omitempty,email"`
	Address       string   `yaml:"address"`
	ServiceRadius string   `yaml:"service_radius"`
	BusinessHours Hours    `yaml:"business_hours"`
	Features      []string `yaml:"features"`
	Stats         Stats    `yaml:"stats"`
	SocialMedia   Social   `yaml:"social_media"`
}

var validate = validator.New()

// Defaults returns the built-in company profile.
func Defaults() Company {
	return Company{
		Name:          "Aurex Exteriors",
		Tagline:       "Your trusted partner for comprehensive exterior maintenance services. Professional, reliable, and guaranteed satisfaction.",
		Phone:         "Mo: 0424 910 154, Tom: 0450 515 119",
		Email:         "AurexExteriors@gmail.com",
		Address:       "Canberra, Australian Capital Territory (ACT)",
		ServiceRadius: "2600-2617 postcode areas",
		BusinessHours: Hours{
			Weekdays: "Mon-Sat: 7AM-7PM",
			Sunday:   "Sunday: 9AM-5PM",
		},
		Stats: Stats{
			Customers:    "50+",
			Experience:   "2+",
			Satisfaction: "100%",
			Support:      "24/7",
		},
	}
}

// LoadDefaults returns Defaults overlaid with the non-empty values of the YAML file at path.
// An empty path yields Defaults unchanged.
func LoadDefaults(path string) (Company, error) {
	base := Defaults()
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Company{}, fmt.Errorf("reading company defaults: %w", err)
	}
	var override Company
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Company{}, fmt.Errorf("parsing company defaults %s: %w", path, err)
	}
	if err := validate.Struct(override); err != nil {
		return Company{}, fmt.Errorf("company defaults %s: %w", path, err)
	}
	return overlay(base, override), nil
}

// Resolve fills every field the backend left empty from fallback. A nil info yields fallback.
func Resolve(fallback Company, info *backend.CompanyInfo) Company {
	if info == nil {
		return fallback
	}
	return overlay(fallback, Company{
		Name:          info.Name,
		Tagline:       info.Tagline,
		Phone:         info.Phone,
		Email:         info.Email,
		Address:       info.Address,
		ServiceRadius: info.ServiceRadius,
		BusinessHours: Hours(info.BusinessHours),
		Features:      info.Features,
		Stats:         Stats(info.Stats),
		SocialMedia:   Social(info.SocialMedia),
	})
}

func overlay(base, top Company) Company {
	pick := func(b, t string) string {
		if t != "" {
			return t
		}
		return b
	}
	out := Company{
		Name:          pick(base.Name, top.Name),
		Tagline:       pick(base.Tagline, top.Tagline),
		Phone:         pick(base.Phone, top.Phone),
		Email:         pick(base.Email, top.Email),
		Address:       pick(base.Address, top.Address),
		ServiceRadius: pick(base.ServiceRadius, top.ServiceRadius),
		BusinessHours: Hours{
			Weekdays: pick(base.BusinessHours.Weekdays, top.BusinessHours.Weekdays),
			Saturday: pick(base.BusinessHours.Saturday, top.BusinessHours.Saturday),
			Sunday:   pick(base.BusinessHours.Sunday, top.BusinessHours.Sunday),
		},
		Features: base.Features,
		Stats: Stats{
			Customers:    pick(base.Stats.Customers, top.Stats.Customers),
			Experience:   pick(base.Stats.Experience, top.Stats.Experience),
			Satisfaction: pick(base.Stats.Satisfaction, top.Stats.Satisfaction),
			Support:      pick(base.Stats.Support, top.Stats.Support),
		},
		SocialMedia: Social{
			Facebook:  pick(base.SocialMedia.Facebook, top.SocialMedia.Facebook),
			Twitter:   pick(base.SocialMedia.Twitter, top.SocialMedia.Twitter),
			Instagram: pick(base.SocialMedia.Instagram, top.SocialMedia.Instagram),
		},
	}
	if len(top.Features) > 0 {
		out.Features = top.Features
	}
	return out
}
