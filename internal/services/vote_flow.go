package services

import (
	"context"
	"errors"
	"fmt"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/storage/interfaces"
	"sync"
)

type FlowState int

const (
	FlowIdle FlowState = iota
	FlowPendingConfirmation
	FlowSubmitting
	FlowLocked
	FlowRejected
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowPendingConfirmation:
		return "pending_confirmation"
	case FlowSubmitting:
		return "submitting"
	case FlowLocked:
		return "locked"
	case FlowRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Vote outcomes as reported to metrics.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeBlocked   = "blocked"
)

type VoteFlowInterface interface {
	Select(candidateID int64) (models.Candidate, error)
	Cancel()
	Confirm(ctx context.Context) error
	State() FlowState
	Selected() (models.Candidate, bool)
}

type VoteFlow struct {
	mu       sync.Mutex
	state    FlowState
	selected models.Candidate

	store   remote.StoreInterface
	view    models.StateStoreInterface
	status  interfaces.VoteStatusStoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewVoteFlow(
	store remote.StoreInterface,
	view models.StateStoreInterface,
	status interfaces.VoteStatusStoreInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) VoteFlowInterface {
	f := &VoteFlow{store: store, view: view, status: status, logger: logger, metrics: metrics}
	if view.HasVoted() {
		f.state = FlowLocked
	}
	return f
}

func (f *VoteFlow) Select(candidateID int64) (models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return models.Candidate{}, err
	}
	c, ok := f.view.Snapshot().Candidate(candidateID)
	if !ok {
		return models.Candidate{}, fmt.Errorf("%w: %d", ErrUnknownCandidate, candidateID)
	}
	f.selected = c
	f.state = FlowPendingConfirmation
	return c, nil
}

func (f *VoteFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FlowPendingConfirmation {
		f.state = FlowIdle
		f.selected = models.Candidate{}
	}
}

// Confirm submits the pending selection. The mutex is released during the
// network call; the Submitting state keeps a second Confirm out.
func (f *VoteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if err := f.checkOpen(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.state != FlowPendingConfirmation {
		f.mu.Unlock()
		return ErrNotPending
	}
	candidate := f.selected
	f.state = FlowSubmitting
	f.view.SetSubmitting(true)
	f.mu.Unlock()

	f.logger.Infof(providers.TypeVote, "Submitting vote for candidate %d", candidate.ID)
	err := f.store.SubmitVote(ctx, candidate.ID)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case err == nil:
		f.lock(candidate.ID)
		f.metrics.IncVoteOutcome(OutcomeAccepted)
		f.view.SetNotice(models.Notice{Level: models.NoticeInfo, Message: "Your vote has been recorded. Thank you for voting!"})
		f.logger.Infof(providers.TypeVote, "Vote for candidate %d accepted", candidate.ID)
		return nil
	case errors.Is(err, remote.ErrDuplicateVote):
		f.lock(0)
		f.metrics.IncVoteOutcome(OutcomeDuplicate)
		f.view.SetNotice(NoticeFor(err))
		f.logger.Warnf(providers.TypeVote, "Server reports this device already voted: %v", err)
		return err
	default:
		f.state = FlowRejected
		f.metrics.IncVoteOutcome(OutcomeRejected)
		f.logger.Errorf(providers.TypeVote, "Vote for candidate %d failed: %v", candidate.ID, err)
		f.view.SetSubmitting(false)
		f.view.SetNotice(models.Notice{Level: models.NoticeError, Message: "Failed to submit vote. Please try again."})
		f.state = FlowIdle
		f.selected = models.Candidate{}
		return fmt.Errorf("submit vote: %w", err)
	}
}

// State also reports Locked once a vote status was restored elsewhere.
func (f *VoteFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowSubmitting && f.view.HasVoted() {
		f.state = FlowLocked
	}
	return f.state
}

func (f *VoteFlow) Selected() (models.Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected, f.state == FlowPendingConfirmation
}

// checkOpen must be called with f.mu held.
func (f *VoteFlow) checkOpen() error {
	if f.state == FlowLocked || f.view.HasVoted() {
		f.state = FlowLocked
		f.metrics.IncVoteOutcome(OutcomeBlocked)
		return ErrAlreadyVoted
	}
	if f.state == FlowSubmitting {
		return ErrSubmissionInFlight
	}
	return nil
}

// lock must be called with f.mu held. The in-memory lock holds even when
// the status cannot be persisted.
func (f *VoteFlow) lock(votedFor int64) {
	f.state = FlowLocked
	f.selected = models.Candidate{}
	f.view.MarkVoted(votedFor)
	if err := f.status.MarkVoted(); err != nil {
		f.logger.Errorf(providers.TypeVote, "Failed to persist vote status: %v", err)
	}
}
