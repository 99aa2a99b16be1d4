package models

import "sync"

type Resource int

const (
	ResourceCandidates Resource = iota
	ResourceResults
	ResourceVoteLog
	resourceCount
)

// Ticket orders fetches of one resource. A response is applied only when
// its ticket is newer than the last applied one, so a slow early fetch
// can never overwrite a later one.
type Ticket uint64

type StateStoreInterface interface {
	Snapshot() ViewState
	BeginFetch(r Resource) Ticket
	ApplyCandidates(t Ticket, candidates []Candidate) bool
	ApplyResults(t Ticket, results []Result) bool
	ApplyVoteLog(t Ticket, records []VoteRecord) bool
	RestoreVoted()
	MarkVoted(candidateID int64)
	SetSubmitting(submitting bool)
	SetAdminActive(active bool)
	SetNotice(n Notice)
	ClearNotice()
	SetLoadFailure(r Resource, n Notice)
	ResolveLoadFailure(r Resource)
	CandidateCount() int
	HasVoted() bool
}

type StateStore struct {
	mu      sync.RWMutex
	state   ViewState
	issued  [resourceCount]Ticket
	applied [resourceCount]Ticket
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) Snapshot() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Candidates = append([]Candidate(nil), s.state.Candidates...)
	snap.Results = append([]Result(nil), s.state.Results...)
	snap.VoteLog = append([]VoteRecord(nil), s.state.VoteLog...)
	return snap
}

func (s *StateStore) BeginFetch(r Resource) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[r]++
	return s.issued[r]
}

func (s *StateStore) accept(r Resource, t Ticket) bool {
	if t <= s.applied[r] {
		return false
	}
	s.applied[r] = t
	return true
}

func (s *StateStore) ApplyCandidates(t Ticket, candidates []Candidate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accept(ResourceCandidates, t) {
		return false
	}
	s.state.Candidates = append([]Candidate(nil), candidates...)
	s.bump()
	return true
}

func (s *StateStore) ApplyResults(t Ticket, results []Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accept(ResourceResults, t) {
		return false
	}
	s.state.Results = append([]Result(nil), results...)
	s.bump()
	return true
}

func (s *StateStore) ApplyVoteLog(t Ticket, records []VoteRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accept(ResourceVoteLog, t) {
		return false
	}
	s.state.VoteLog = append([]VoteRecord(nil), records...)
	s.bump()
	return true
}

// RestoreVoted loads a persisted vote status. The voted row is unknown.
func (s *StateStore) RestoreVoted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HasVoted {
		return
	}
	s.state.HasVoted = true
	s.bump()
}

// MarkVoted locks the ballot. HasVoted never goes back to false; a zero
// candidateID keeps any previously confirmed row.
func (s *StateStore) MarkVoted(candidateID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasVoted = true
	s.state.Submitting = false
	if candidateID != 0 {
		s.state.VotedFor = candidateID
	}
	s.bump()
}

func (s *StateStore) SetSubmitting(submitting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Submitting == submitting {
		return
	}
	s.state.Submitting = submitting
	s.bump()
}

func (s *StateStore) SetAdminActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.AdminActive == active {
		return
	}
	s.state.AdminActive = active
	s.bump()
}

func (s *StateStore) SetNotice(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notice = n
	s.bump()
}

func (s *StateStore) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Notice.Level == NoticeNone {
		return
	}
	s.state.Notice = Notice{}
	s.bump()
}

// SetLoadFailure raises n as the notice for a failed load of r.
func (s *StateStore) SetLoadFailure(r Resource, n Notice) {
	n.Failed = &r
	s.SetNotice(n)
}

// ResolveLoadFailure withdraws the notice if it was raised by a failed load
// of r. Notices from user actions stay until replaced or cleared.
func (s *StateStore) ResolveLoadFailure(r Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.state.Notice.Failed; f == nil || *f != r {
		return
	}
	s.state.Notice = Notice{}
	s.bump()
}

func (s *StateStore) CandidateCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Candidates)
}

func (s *StateStore) HasVoted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasVoted
}

func (s *StateStore) bump() {
	s.state.Version++
}
