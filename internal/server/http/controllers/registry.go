package controllers

import (
	"net/http"

	"github.com/max-niederman/beryl/internal/runtime"
	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type ControllerRegistry struct {
	general     *GeneralController
	crystals    *CrystalsController
	diagnostics *DiagnosticsController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, mintSvc *mintsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general:     NewGeneralController(rt, mintSvc),
		crystals:    NewCrystalsController(mintSvc),
		diagnostics: NewDiagnosticsController(mintSvc),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.crystals.RegisterRoutes(mux)
	r.diagnostics.RegisterRoutes(mux)
}
