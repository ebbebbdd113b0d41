package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurex-exteriors/site/internal/service/backend"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := LoadDefaults("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, "AurexExteriors@gmail.com", c.Email)
	assert.Equal(t, "Mon-Sat: 7AM-7PM", c.BusinessHours.Weekdays)
	assert.Equal(t, "Sunday: 9AM-5PM", c.BusinessHours.Sunday)
}

func TestLoadDefaultsOverlaysFile(t *testing.T) {
	path := writeYAML(t, `
phone: "02 6100 0000"
business_hours:
  saturday: "Sat: 8AM-4PM"
features:
  - Fully insured
social_media:
  instagram: https://instagram.com/aurex
`)
	c, err := LoadDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, "02 6100 0000", c.Phone)
	assert.Equal(t, "Sat: 8AM-4PM", c.BusinessHours.Saturday)
	assert.Equal(t, "Mon-Sat: 7AM-7PM", c.BusinessHours.Weekdays, "unset keys keep the built-in value")
	assert.Equal(t, []string{"Fully insured"}, c.Features)
	assert.Equal(t, Defaults().Email, c.Email)
}

func TestLoadDefaultsErrors(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadDefaults(writeYAML(t, "phone: [unterminated"))
	assert.Error(t, err)

	_, err = LoadDefaults(writeYAML(t, "email: not-an-address"))
	assert.Error(t, err)
}

func TestResolveFillsGaps(t *testing.T) {
	fallback := Defaults()
	c := Resolve(fallback, &backend.CompanyInfo{
		Phone:         "0400 111 222",
		BusinessHours: backend.BusinessHours{Sunday: "Closed"},
		Stats:         backend.Stats{Customers: "500+"},
	})

	assert.Equal(t, "0400 111 222", c.Phone)
	assert.Equal(t, "Closed", c.BusinessHours.Sunday)
	assert.Equal(t, fallback.Tagline, c.Tagline)
	assert.Equal(t, fallback.Address, c.Address)
	assert.Equal(t, fallback.BusinessHours.Weekdays, c.BusinessHours.Weekdays)
	assert.Equal(t, "500+", c.Stats.Customers)
	assert.Equal(t, fallback.Stats.Support, c.Stats.Support)
}

func TestLoadDefaultsStats(t *testing.T) {
	c, err := LoadDefaults(writeYAML(t, `
stats:
  experience: "10+ years"
`))
	require.NoError(t, err)
	assert.Equal(t, "10+ years", c.Stats.Experience)
	assert.Equal(t, "50+", c.Stats.Customers)
}

func TestResolveNil(t *testing.T) {
	assert.Equal(t, Defaults(), Resolve(Defaults(), nil))
}
