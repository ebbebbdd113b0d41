package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/aurex-exteriors/site/internal/content"
	"github.com/aurex-exteriors/site/internal/http/v1/catalog"
	formshandler "github.com/aurex-exteriors/site/internal/http/v1/forms"
	"github.com/aurex-exteriors/site/internal/service/backend"
	formsvc "github.com/aurex-exteriors/site/internal/service/forms"
)

// Prefix is the path every v1 operation is served under.
const Prefix = "/v1"

// Register wires all v1 routes into api under Prefix.
func Register(
	api huma.API,
	formsService formsvc.Service,
	backendService backend.Service,
	companyFallback content.Company,
	maxUploadBytes int64,
) {
	v1 := huma.NewGroup(api, Prefix)

	formshandler.Register(v1, formsService, Prefix, maxUploadBytes)
	catalog.Register(v1, backendService, companyFallback, Prefix)
}
