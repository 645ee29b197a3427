package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
	"github.com/max-niederman/beryl/pkg/generator"
)

// CrystalsController handles minting, decoding, and generator state
// endpoints.
type CrystalsController struct {
	svc *mintsvc.Service
}

// NewCrystalsController creates a new crystals controller.
func NewCrystalsController(svc *mintsvc.Service) *CrystalsController {
	return &CrystalsController{svc: svc}
}

// RegisterRoutes registers crystal routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Batch minting (/v1/crystals/mint)
// - Batch decoding with optional CEL filter (/v1/crystals/decode)
// - Single-value decode convenience (/v1/crystals?id=...)
// - Generator state snapshot (/v1/state)
// - Running counters (/v1/stats)
func (c *CrystalsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/crystals/mint", c.handleMint)
	mux.HandleFunc("/v1/crystals/decode", c.handleDecode)
	mux.HandleFunc("/v1/crystals", c.handleGetOne)
	mux.HandleFunc("/v1/state", c.handleState)
	mux.HandleFunc("/v1/stats", c.handleStats)
}

// handleMint mints a batch of crystals.
//
// Expects a JSON body with a "count" field; count defaults to 1. Returns 503
// when the timestamp space is exhausted, the one terminal generator error.
func (c *CrystalsController) handleMint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req mintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	crystals, err := c.svc.Mint(r.Context(), req.Count)
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrTimestampExhausted):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, mintsvc.ErrBatchTooLarge):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, mintResp{Crystals: crystals})
}

// handleDecode decodes a batch of values with an optional CEL filter.
//
// Decoding is permissive: any 64-bit value yields a field tuple, and inputs
// that fail to parse get a per-item error instead of failing the request.
// Only an invalid filter expression is a request-level error.
func (c *CrystalsController) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req decodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	results, err := c.svc.DecodeAll(req.Crystals, req.Filter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, decodeResp{Results: results})
}

// handleGetOne decodes a single crystal passed as the id query parameter.
func (c *CrystalsController) handleGetOne(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing id query parameter")
		return
	}
	results, err := c.svc.DecodeAll([]string{id}, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if results[0].Error != "" {
		writeError(w, http.StatusBadRequest, results[0].Error)
		return
	}
	writeJSON(w, results[0])
}

// handleState returns the generator's current state snapshot so external
// tooling can persist it out of band.
func (c *CrystalsController) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.svc.State())
}

// handleStats returns running mint/wait/regression counters.
func (c *CrystalsController) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.svc.Stats())
}
