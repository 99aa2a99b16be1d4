package controllers

import (
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	view    models.StateStoreInterface
	flow    services.VoteFlowInterface
	cache   providers.CacheProviderInterface
	started time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	HasVoted        bool    `json:"has_voted"`
	Candidates      int     `json:"candidates"`
	FlowState       string  `json:"flow_state"`
	CachedFragments int64   `json:"cached_fragments"`
}

// Health reports the local view only; it never calls the backend.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	up := time.Since(hc.started)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Uptime:          up.Round(time.Second).String(),
		UptimeSeconds:   up.Seconds(),
		HasVoted:        hc.view.HasVoted(),
		Candidates:      hc.view.CandidateCount(),
		FlowState:       hc.flow.State().String(),
		CachedFragments: hc.cache.EntryCount(),
	})
}

func NewHealthController(view models.StateStoreInterface, flow services.VoteFlowInterface, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		view:    view,
		flow:    flow,
		cache:   cache,
		started: time.Now(),
	}
}
