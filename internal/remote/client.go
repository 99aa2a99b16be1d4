package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/structures"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const (
	DeviceHeader = "X-Device-UUID"
	VotePath     = "/api/vote"

	maxResponseBodySize int64 = 32 << 20 // 32 MB, exports included
)

var ErrBodyTooLarge = errors.New("response body too large")

type StoreInterface interface {
	FetchCandidates(ctx context.Context) ([]models.Candidate, error)
	FetchResults(ctx context.Context) ([]models.Result, error)
	FetchVoteLog(ctx context.Context) ([]models.VoteRecord, error)
	SubmitVote(ctx context.Context, candidateID int64) error
	CreateCandidate(ctx context.Context, in models.CandidateInput) (models.Candidate, error)
	UpdateCandidate(ctx context.Context, id int64, in models.CandidateInput) error
	DeleteCandidate(ctx context.Context, id int64) error
	ExportSnapshot(ctx context.Context) ([]byte, error)
}

type Client struct {
	baseURL  string
	deviceID string
	http     *http.Client
	maxBody  int64
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) StoreInterface {
	return &Client{
		baseURL:  conf.Backend.BaseURL,
		deviceID: conf.Client.DeviceID,
		http:     &http.Client{Timeout: conf.Backend.Timeout},
		maxBody:  maxResponseBodySize,
		logger:   logger,
		metrics:  metrics,
	}
}

type voteRequest struct {
	CandidateID int64 `json:"candidateId"`
}

func (c *Client) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	var out []models.Candidate
	if err := c.doJSON(ctx, http.MethodGet, "/api/candidates", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) FetchResults(ctx context.Context) ([]models.Result, error) {
	var out []models.Result
	if err := c.doJSON(ctx, http.MethodGet, "/api/results", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) FetchVoteLog(ctx context.Context) ([]models.VoteRecord, error) {
	var out []models.VoteRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/votes/details", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) SubmitVote(ctx context.Context, candidateID int64) error {
	return c.doJSON(ctx, http.MethodPost, VotePath, voteRequest{CandidateID: candidateID}, nil)
}

func (c *Client) CreateCandidate(ctx context.Context, in models.CandidateInput) (models.Candidate, error) {
	in, err := validateInput("/api/candidates", in)
	if err != nil {
		return models.Candidate{}, err
	}
	var out models.Candidate
	if err := c.doJSON(ctx, http.MethodPost, "/api/candidates", in, &out); err != nil {
		return models.Candidate{}, err
	}
	return out, nil
}

func (c *Client) UpdateCandidate(ctx context.Context, id int64, in models.CandidateInput) error {
	path := candidatePath(id)
	in, err := validateInput(path, in)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, path, in, nil)
}

func (c *Client) DeleteCandidate(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, candidatePath(id), nil, nil)
}

func (c *Client) ExportSnapshot(ctx context.Context) ([]byte, error) {
	const path = "/api/export/excel"
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Endpoint: path, Status: resp.StatusCode, Err: err}
	}
	if int64(len(data)) > c.maxBody {
		return nil, &Error{Kind: KindNetwork, Endpoint: path, Status: resp.StatusCode, Message: "export exceeds size limit", Err: ErrBodyTooLarge}
	}
	return data, nil
}

func candidatePath(id int64) string {
	return "/api/candidates/" + strconv.FormatInt(id, 10)
}

func validateInput(endpoint string, in models.CandidateInput) (models.CandidateInput, error) {
	in = in.Normalize()
	v := validate.Struct(&in)
	if !v.Validate() {
		return in, &Error{Kind: KindValidation, Endpoint: endpoint, Message: "Candidate name is required"}
	}
	return in, nil
}

// doJSON sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.do(ctx, method, path, reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Endpoint: path, Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	return nil
}

// do performs the request and turns every non-2xx answer into an *Error.
// On success the caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.deviceID != "" {
		req.Header.Set(DeviceHeader, c.deviceID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveRemoteDuration(path, time.Since(start))
	if err != nil {
		c.metrics.IncRemoteRequests(path, 0)
		c.logger.Warnf(providers.TypeSync, "%s %s failed: %s", method, path, err)
		return nil, &Error{Kind: KindNetwork, Endpoint: path, Err: err}
	}
	c.metrics.IncRemoteRequests(path, resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &eb)

	apiErr := &Error{
		Kind:     classify(path, resp.StatusCode, eb),
		Endpoint: path,
		Status:   resp.StatusCode,
		Code:     eb.Code,
		Message:  eb.text(),
	}
	c.logger.Debugf(providers.TypeSync, "%s %s rejected: %s", method, path, apiErr)
	return nil, apiErr
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
