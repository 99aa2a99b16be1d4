package controllers

import (
	json "github.com/goccy/go-json"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/render"
	"livevote/internal/services"
	"mime"
	"net/http"
)

type AdminController struct {
	fragmentCache
	admin  services.AdminServiceInterface
	sync   services.SyncServiceInterface
	logger providers.Logger
}

func NewAdminController(
	admin services.AdminServiceInterface,
	sync services.SyncServiceInterface,
	view models.StateStoreInterface,
	cache providers.CacheProviderInterface,
	logger providers.Logger,
) *AdminController {
	return &AdminController{
		fragmentCache: fragmentCache{cache: cache, view: view},
		admin:         admin,
		sync:          sync,
		logger:        logger,
	}
}

type exportResponse struct {
	Path string `json:"path"`
}

// Candidates activates admin mode on first access.
func (ac *AdminController) Candidates(w http.ResponseWriter, r *http.Request) {
	if !ac.view.Snapshot().AdminActive {
		if err := ac.sync.ActivateAdmin(r.Context()); err != nil {
			ac.logger.Warnf(providers.TypeGet, "Admin activation incomplete: %v", err)
		}
	}
	ac.serveFromCacheOrCompute(w, "admin-candidates", func(state models.ViewState) string {
		return string(render.Notice(state.Notice).HTML) + string(render.AdminCandidates(state).HTML)
	})
}

func (ac *AdminController) Candidate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	c, err := ac.admin.FindCandidate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (ac *AdminController) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.admin.SaveCandidate(r.Context(), 0, in); err != nil {
		writeError(w, err)
		return
	}
	ac.renderCandidates(w, http.StatusCreated)
}

func (ac *AdminController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in, err := decodeInput(w, r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.admin.SaveCandidate(r.Context(), id, in); err != nil {
		writeError(w, err)
		return
	}
	ac.renderCandidates(w, http.StatusOK)
}

func (ac *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.admin.DeleteCandidate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	ac.renderCandidates(w, http.StatusOK)
}

// Results refreshes the tally and the vote log, like opening the results tab.
func (ac *AdminController) Results(w http.ResponseWriter, r *http.Request) {
	if err := ac.sync.LoadResults(r.Context()); err != nil {
		ac.logger.Warnf(providers.TypeGet, "Showing cached results: %v", err)
	}
	if err := ac.sync.LoadVoteLog(r.Context()); err != nil {
		ac.logger.Warnf(providers.TypeGet, "Showing cached vote log: %v", err)
	}
	ac.serveFromCacheOrCompute(w, "results", func(state models.ViewState) string {
		return string(render.Results(state).HTML)
	})
}

func (ac *AdminController) Votes(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "vote-log", func(state models.ViewState) string {
		return string(render.VoteLog(state).HTML)
	})
}

func (ac *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	path, err := ac.admin.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: path})
}

func (ac *AdminController) renderCandidates(w http.ResponseWriter, status int) {
	state := ac.view.Snapshot()
	writeHTML(w, status, []byte(render.AdminCandidates(state).HTML))
}

// decodeInput accepts either a JSON body or a classic form post.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.CandidateInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var in models.CandidateInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&in)
		return in, err
	}

	if err := r.ParseForm(); err != nil {
		return in, err
	}
	in.Name = r.PostFormValue("name")
	in.Description = r.PostFormValue("description")
	in.ImageURL = r.PostFormValue("image_url")
	return in, nil
}
