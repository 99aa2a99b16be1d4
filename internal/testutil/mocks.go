package testutil

import (
	"context"
	"livevote/internal/models"
	"livevote/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu        sync.Mutex
	Resyncs   map[string]int
	Failed    map[string]int
	Coalesced map[string]int
	Votes     map[string]int
	Remote    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Resyncs:   make(map[string]int),
		Failed:    make(map[string]int),
		Coalesced: make(map[string]int),
		Votes:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObserveRemoteDuration(_ string, _ time.Duration)  {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncRemoteRequests(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Remote++
}

func (m *MockMetrics) IncResync(kind string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.Resyncs[kind]++
	} else {
		m.Failed[kind]++
	}
}

func (m *MockMetrics) IncCoalescedEvents(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Coalesced[kind]++
}

func (m *MockMetrics) IncVoteOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Votes[outcome]++
}

func (m *MockMetrics) ResyncCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Resyncs[kind]
}

// MockStore implements remote.StoreInterface with injectable data and errors.
// Fetch hooks run before the data is read, so tests can block or mutate there.
type MockStore struct {
	mu sync.Mutex

	Candidates []models.Candidate
	Results    []models.Result
	VoteLog    []models.VoteRecord
	Export     []byte

	FetchCandidatesErr error
	FetchResultsErr    error
	FetchVoteLogErr    error
	SubmitErr          error
	CreateErr          error
	UpdateErr          error
	DeleteErr          error
	ExportErr          error

	OnFetchCandidates func()
	OnFetchResults    func()
	OnSubmit          func()

	Calls       []string
	FetchCtx    context.Context
	SubmittedID []int64
	Created     []models.CandidateInput
	Updated     map[int64]models.CandidateInput
	Deleted     []int64
	nextID      int64
}

func NewMockStore() *MockStore {
	return &MockStore{Updated: make(map[int64]models.CandidateInput), nextID: 100}
}

func (m *MockStore) call(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

// CallCount returns how many times the named operation ran.
func (m *MockStore) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockStore) SetResults(results []models.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = results
}

func (m *MockStore) SetCandidates(candidates []models.Candidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Candidates = candidates
}

func (m *MockStore) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	m.call("FetchCandidates")
	if m.OnFetchCandidates != nil {
		m.OnFetchCandidates()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCtx = ctx
	if m.FetchCandidatesErr != nil {
		return nil, m.FetchCandidatesErr
	}
	return append([]models.Candidate{}, m.Candidates...), nil
}

func (m *MockStore) FetchResults(_ context.Context) ([]models.Result, error) {
	m.call("FetchResults")
	if m.OnFetchResults != nil {
		m.OnFetchResults()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchResultsErr != nil {
		return nil, m.FetchResultsErr
	}
	return append([]models.Result{}, m.Results...), nil
}

func (m *MockStore) FetchVoteLog(_ context.Context) ([]models.VoteRecord, error) {
	m.call("FetchVoteLog")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchVoteLogErr != nil {
		return nil, m.FetchVoteLogErr
	}
	return append([]models.VoteRecord{}, m.VoteLog...), nil
}

func (m *MockStore) SubmitVote(_ context.Context, candidateID int64) error {
	m.call("SubmitVote")
	if m.OnSubmit != nil {
		m.OnSubmit()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmittedID = append(m.SubmittedID, candidateID)
	return m.SubmitErr
}

func (m *MockStore) CreateCandidate(_ context.Context, in models.CandidateInput) (models.Candidate, error) {
	m.call("CreateCandidate")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return models.Candidate{}, m.CreateErr
	}
	m.Created = append(m.Created, in)
	m.nextID++
	c := models.Candidate{ID: m.nextID, Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
	m.Candidates = append(m.Candidates, c)
	return c, nil
}

func (m *MockStore) UpdateCandidate(_ context.Context, id int64, in models.CandidateInput) error {
	m.call("UpdateCandidate")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updated[id] = in
	return nil
}

func (m *MockStore) DeleteCandidate(_ context.Context, id int64) error {
	m.call("DeleteCandidate")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	kept := m.Candidates[:0]
	for _, c := range m.Candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.Candidates = kept
	return nil
}

func (m *MockStore) ExportSnapshot(_ context.Context) ([]byte, error) {
	m.call("ExportSnapshot")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	return append([]byte(nil), m.Export...), nil
}

// MockVoteStatusStore implements storage.VoteStatusStoreInterface in memory.
type MockVoteStatusStore struct {
	mu       sync.Mutex
	Voted    bool
	LoadErr  error
	MarkErr  error
	Marks    int
	IsClosed bool
}

func (m *MockVoteStatusStore) Load() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Voted, m.LoadErr
}

func (m *MockVoteStatusStore) MarkVoted() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Marks++
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Voted = true
	return nil
}

func (m *MockVoteStatusStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IsClosed = true
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) EntryCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}

// MockCompressor implements storage compressors with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
