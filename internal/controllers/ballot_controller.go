package controllers

import (
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/render"
	"livevote/internal/services"
	"net/http"
)

type BallotController struct {
	fragmentCache
	flow   services.VoteFlowInterface
	logger providers.Logger
}

func NewBallotController(
	flow services.VoteFlowInterface,
	view models.StateStoreInterface,
	cache providers.CacheProviderInterface,
	logger providers.Logger,
) *BallotController {
	return &BallotController{
		fragmentCache: fragmentCache{cache: cache, view: view},
		flow:          flow,
		logger:        logger,
	}
}

func (bc *BallotController) Ballot(w http.ResponseWriter, _ *http.Request) {
	bc.serveFromCacheOrCompute(w, "ballot", func(state models.ViewState) string {
		return string(render.Notice(state.Notice).HTML) + string(render.Ballot(state).HTML)
	})
}

func (bc *BallotController) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	candidate, err := bc.flow.Select(id)
	if err != nil {
		bc.logger.Debugf(providers.TypePost, "Select %d refused: %v", id, err)
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, []byte(render.Confirmation(candidate).HTML))
}

func (bc *BallotController) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := bc.flow.Confirm(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	bc.Ballot(w, r)
}

func (bc *BallotController) Cancel(w http.ResponseWriter, r *http.Request) {
	bc.flow.Cancel()
	bc.Ballot(w, r)
}
