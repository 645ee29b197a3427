package controllers

import (
	"net/http"

	"github.com/max-niederman/beryl/internal/runtime"
	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
)

// GeneralController handles health and configuration endpoints.
type GeneralController struct {
	rt  *runtime.Runtime
	svc *mintsvc.Service
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime, svc *mintsvc.Service) *GeneralController {
	return &GeneralController{rt: rt, svc: svc}
}

// RegisterRoutes registers general routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Health checks (/v1/healthz)
// - Minting configuration and bit layout (/v1/info)
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/info", c.handleInfo)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} if healthy, 503 Service Unavailable
// otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleInfo reports the epoch, generator id, and the bit layout so clients
// can validate and format crystals on their side.
func (c *GeneralController) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.svc.Info())
}
