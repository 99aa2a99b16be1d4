package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/render"
	"livevote/internal/services"
	"net/http"
	"strconv"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// fragmentCache serves rendered views keyed by view name and snapshot
// version. A new snapshot version is a new key, so nothing is invalidated.
type fragmentCache struct {
	cache providers.CacheProviderInterface
	view  models.StateStoreInterface
}

func (fc *fragmentCache) serveFromCacheOrCompute(w http.ResponseWriter, name string, compute func(state models.ViewState) string) {
	state := fc.view.Snapshot()
	cacheKey := name + ":" + strconv.FormatUint(state.Version, 10)

	if data, ok := fc.cache.Get(cacheKey); ok {
		writeHTML(w, http.StatusOK, data)
		return
	}

	data := []byte(compute(state))
	fc.cache.Set(cacheKey, data)
	writeHTML(w, http.StatusOK, data)
}

func writeHTML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError answers with the notice fragment for err.
func writeError(w http.ResponseWriter, err error) {
	writeHTML(w, statusFor(err), []byte(render.Notice(services.NoticeFor(err)).HTML))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, remote.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, remote.ErrNotFound), errors.Is(err, services.ErrUnknownCandidate):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, remote.ErrDuplicateVote),
		errors.Is(err, services.ErrSubmissionInFlight),
		errors.Is(err, services.ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, remote.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
