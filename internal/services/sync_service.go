package services

import (
	"context"
	"fmt"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/storage/interfaces"
)

// Resync kinds as reported to metrics.
const (
	ResyncCandidates = "candidates"
	ResyncVotes      = "votes"
)

type SyncServiceInterface interface {
	LoadCandidates(ctx context.Context) error
	LoadResults(ctx context.Context) error
	LoadVoteLog(ctx context.Context) error
	ResyncCandidates(ctx context.Context) error
	ResyncVotes(ctx context.Context) error
	ActivateAdmin(ctx context.Context) error
	Bootstrap(ctx context.Context) error
}

// SyncService pulls fresh snapshots from the backend into the state store.
// A failed load leaves the previous snapshot in place and raises a notice.
type SyncService struct {
	store   remote.StoreInterface
	view    models.StateStoreInterface
	status  interfaces.VoteStatusStoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSyncService(
	store remote.StoreInterface,
	view models.StateStoreInterface,
	status interfaces.VoteStatusStoreInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) SyncServiceInterface {
	return &SyncService{store: store, view: view, status: status, logger: logger, metrics: metrics}
}

func (s *SyncService) LoadCandidates(ctx context.Context) error {
	ticket := s.view.BeginFetch(models.ResourceCandidates)
	candidates, err := s.store.FetchCandidates(ctx)
	if err != nil {
		return s.fail(models.ResourceCandidates, "candidates", err)
	}
	s.view.ResolveLoadFailure(models.ResourceCandidates)
	if !s.view.ApplyCandidates(ticket, candidates) {
		s.logger.Debugf(providers.TypeSync, "Dropped stale candidates response (ticket %d)", ticket)
	}
	return nil
}

func (s *SyncService) LoadResults(ctx context.Context) error {
	ticket := s.view.BeginFetch(models.ResourceResults)
	results, err := s.store.FetchResults(ctx)
	if err != nil {
		return s.fail(models.ResourceResults, "results", err)
	}
	s.view.ResolveLoadFailure(models.ResourceResults)
	if !s.view.ApplyResults(ticket, results) {
		s.logger.Debugf(providers.TypeSync, "Dropped stale results response (ticket %d)", ticket)
	}
	return nil
}

func (s *SyncService) LoadVoteLog(ctx context.Context) error {
	ticket := s.view.BeginFetch(models.ResourceVoteLog)
	records, err := s.store.FetchVoteLog(ctx)
	if err != nil {
		return s.fail(models.ResourceVoteLog, "vote log", err)
	}
	s.view.ResolveLoadFailure(models.ResourceVoteLog)
	if !s.view.ApplyVoteLog(ticket, records) {
		s.logger.Debugf(providers.TypeSync, "Dropped stale vote log response (ticket %d)", ticket)
	}
	return nil
}

// ResyncCandidates handles a candidates-updated push. Results are refreshed
// too while the admin panel is showing them.
func (s *SyncService) ResyncCandidates(ctx context.Context) error {
	err := s.LoadCandidates(ctx)
	if err == nil && s.view.Snapshot().AdminActive {
		err = s.LoadResults(ctx)
	}
	s.metrics.IncResync(ResyncCandidates, err == nil)
	return err
}

// ResyncVotes handles a vote-submitted push: results, the vote log and the
// per-candidate counts all move together.
func (s *SyncService) ResyncVotes(ctx context.Context) error {
	var firstErr error
	for _, load := range []func(context.Context) error{s.LoadResults, s.LoadVoteLog, s.LoadCandidates} {
		if err := load(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.metrics.IncResync(ResyncVotes, firstErr == nil)
	return firstErr
}

func (s *SyncService) ActivateAdmin(ctx context.Context) error {
	s.view.SetAdminActive(true)
	s.logger.Infof(providers.TypeApp, "Admin panel activated")

	var firstErr error
	for _, load := range []func(context.Context) error{s.LoadCandidates, s.LoadResults, s.LoadVoteLog} {
		if err := load(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Bootstrap restores the persisted vote status before the first render.
func (s *SyncService) Bootstrap(ctx context.Context) error {
	voted, err := s.status.Load()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to load vote status: %v", err)
	} else if voted {
		s.view.RestoreVoted()
		s.logger.Infof(providers.TypeApp, "This device has already voted")
	}
	return s.LoadCandidates(ctx)
}

func (s *SyncService) fail(r models.Resource, what string, err error) error {
	s.logger.Errorf(providers.TypeSync, "Error loading %s: %v", what, err)
	s.view.SetLoadFailure(r, NoticeFor(err))
	return fmt.Errorf("load %s: %w", what, err)
}
