package controllers

import (
	"net/http"

	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
	"github.com/max-niederman/beryl/pkg/generator"
)

// DiagnosticsController streams the generator's diagnostic signals over SSE
// so operators can watch for clock regressions and overflow waits live.
type DiagnosticsController struct {
	svc *mintsvc.Service
}

// NewDiagnosticsController creates a new diagnostics controller.
func NewDiagnosticsController(svc *mintsvc.Service) *DiagnosticsController {
	return &DiagnosticsController{svc: svc}
}

// RegisterRoutes registers diagnostics routes with the given mux.
func (c *DiagnosticsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/diagnostics/watch", c.handleWatch)
}

// handleWatch subscribes to the generator's signal stream and forwards each
// signal as an SSE event until the client disconnects. A slow client skips
// to the latest signal rather than backpressuring the generator.
func (c *DiagnosticsController) handleWatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sink := sseSink{w: w}
	sink.Flush()

	stream := c.svc.Observe()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-stream.Changes():
		}
		sig, ok := stream.Next().(*generator.Signal)
		if !ok || sig == nil {
			continue
		}
		if err := sink.Send(sig); err != nil {
			return
		}
		sink.Flush()
	}
}
