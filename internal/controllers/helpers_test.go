package controllers

import (
	"livevote/internal/models"
	"livevote/internal/services"
	"livevote/internal/structures"
	"livevote/internal/testutil"
	"testing"
)

type env struct {
	store  *testutil.MockStore
	view   *models.StateStore
	status *testutil.MockVoteStatusStore
	cache  *testutil.MockCache
	logger *testutil.MockLogger
	flow   services.VoteFlowInterface
	sync   services.SyncServiceInterface
	admin  services.AdminServiceInterface
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		store:  testutil.NewMockStore(),
		view:   models.NewStateStore(),
		status: &testutil.MockVoteStatusStore{},
		cache:  testutil.NewMockCache(),
		logger: &testutil.MockLogger{},
	}
	e.store.Candidates = []models.Candidate{
		{ID: 1, Name: "Alice", ImageURL: "🗳", VoteCount: 3},
		{ID: 2, Name: "Bob", ImageURL: "https://x/y.png", VoteCount: 1},
	}
	e.view.ApplyCandidates(e.view.BeginFetch(models.ResourceCandidates), e.store.Candidates)

	metrics := testutil.NewMockMetrics()
	conf := &structures.Config{Export: structures.ExportConfig{Dir: t.TempDir()}}
	e.flow = services.NewVoteFlow(e.store, e.view, e.status, e.logger, metrics)
	e.sync = services.NewSyncService(e.store, e.view, e.status, e.logger, metrics)
	e.admin = services.NewAdminService(conf, e.store, e.view, e.sync, e.logger)
	return e
}

func (e *env) ballot() *BallotController {
	return NewBallotController(e.flow, e.view, e.cache, e.logger)
}

func (e *env) adminController() *AdminController {
	return NewAdminController(e.admin, e.sync, e.view, e.cache, e.logger)
}
