package remote

import (
	"context"
	"errors"
	"io"
	"livevote/internal/models"
	"livevote/internal/structures"
	"livevote/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *testutil.MockMetrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		Backend: structures.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second},
		Client:  structures.ClientConfig{DeviceID: "device-1"},
	}
	metrics := testutil.NewMockMetrics()
	return NewClient(conf, &testutil.MockLogger{}, metrics).(*Client), metrics
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetchCandidates_DecodesList(t *testing.T) {
	c, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/candidates", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"name":"Alice","description":"Blue","image_url":"🗳","vote_count":3},{"id":2,"name":"Bob"}]`)
	})

	got, err := c.FetchCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Candidate{ID: 1, Name: "Alice", Description: "Blue", ImageURL: "🗳", VoteCount: 3}, got[0])
	assert.Equal(t, int64(0), got[1].VoteCount)
	assert.Equal(t, 1, metrics.Remote)
}

func TestFetchCandidates_EmptyIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	got, err := c.FetchCandidates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchResultsAndVoteLog(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/results":
			_, _ = io.WriteString(w, `[{"name":"A","vote_count":3},{"name":"B","vote_count":1}]`)
		case "/api/votes/details":
			_, _ = io.WriteString(w, `[{"ip_address":"10.0.0.1","candidate_name":"A","timestamp":"2026-01-02T03:04:05Z"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	results, err := c.FetchResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Result{{Name: "A", VoteCount: 3}, {Name: "B", VoteCount: 1}}, results)

	log, err := c.FetchVoteLog(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "10.0.0.1", log[0].IPAddress)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), log[0].Timestamp.UTC())
}

func TestSubmitVote_SendsCandidateAndDevice(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vote", r.URL.Path)
		assert.Equal(t, "device-1", r.Header.Get(DeviceHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body["candidateId"])
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	assert.NoError(t, c.SubmitVote(context.Background(), 7))
}

func TestSubmitVote_DuplicateByCode(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nope", "code": "ALREADY_VOTED"})
	})

	err := c.SubmitVote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, CodeAlreadyVoted, apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestSubmitVote_DuplicateByLegacyMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "You have already voted from this IP"})
	})

	err := c.SubmitVote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDuplicateVote)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestSubmitVote_ValidationFailureIsNotDuplicate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid candidate"})
	})

	err := c.SubmitVote(context.Background(), 99)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrDuplicateVote)
}

func TestSubmitVote_ServerErrorIsNetwork(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	assert.ErrorIs(t, c.SubmitVote(context.Background(), 1), ErrNetwork)
}

func TestTransportFailureIsNetwork(t *testing.T) {
	conf := &structures.Config{
		Backend: structures.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
	}
	c := NewClient(conf, &testutil.MockLogger{}, testutil.NewMockMetrics())

	_, err := c.FetchCandidates(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestMalformedBodyIsNetwork(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"oops"`)
	})

	_, err := c.FetchResults(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCreateCandidate_TrimsAndPosts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var in models.CandidateInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Alice", in.Name)
		assert.Equal(t, "Blue party", in.Description)
		writeJSON(w, http.StatusCreated, models.Candidate{ID: 5, Name: in.Name, Description: in.Description})
	})

	got, err := c.CreateCandidate(context.Background(), models.CandidateInput{Name: "  Alice ", Description: " Blue party "})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestCreateCandidate_BlankNameNeverHitsNetwork(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CreateCandidate(context.Background(), models.CandidateInput{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)

	err = c.UpdateCandidate(context.Background(), 3, models.CandidateInput{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestUpdateAndDeleteCandidate_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/candidates/42", r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Candidate not found"})
	})

	err := c.UpdateCandidate(context.Background(), 42, models.CandidateInput{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.DeleteCandidate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportSnapshot_ReturnsBlob(t *testing.T) {
	blob := []byte("PK\x03\x04fake-xlsx")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export/excel", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write(blob)
	})

	got, err := c.ExportSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestCreateCandidate_ConflictIsValidation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "candidate name already exists"})
	})

	_, err := c.CreateCandidate(context.Background(), models.CandidateInput{Name: "Alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, errors.Is(err, ErrDuplicateVote))
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "candidate name already exists", rerr.UserMessage())
}

func TestExportSnapshot_OversizedBlobIsRejected(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 17))
	})
	c.maxBody = 16

	got, err := c.ExportSnapshot(context.Background())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestExportSnapshot_BlobAtLimitIsKept(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 16))
	})
	c.maxBody = 16

	got, err := c.ExportSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 16)
}
