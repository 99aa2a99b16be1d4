package services

import (
	"livevote/internal/models"
	"livevote/internal/structures"
	"livevote/internal/testutil"
)

type fixture struct {
	store   *testutil.MockStore
	view    *models.StateStore
	status  *testutil.MockVoteStatusStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newFixture() *fixture {
	f := &fixture{
		store:   testutil.NewMockStore(),
		view:    models.NewStateStore(),
		status:  &testutil.MockVoteStatusStore{},
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
	}
	f.store.Candidates = []models.Candidate{
		{ID: 1, Name: "Alice", VoteCount: 3},
		{ID: 2, Name: "Bob", VoteCount: 1},
	}
	f.view.ApplyCandidates(f.view.BeginFetch(models.ResourceCandidates), f.store.Candidates)
	return f
}

func (f *fixture) flow() *VoteFlow {
	return NewVoteFlow(f.store, f.view, f.status, f.logger, f.metrics).(*VoteFlow)
}

func (f *fixture) sync() *SyncService {
	return NewSyncService(f.store, f.view, f.status, f.logger, f.metrics).(*SyncService)
}

func (f *fixture) admin(dir string) *AdminService {
	conf := &structures.Config{Export: structures.ExportConfig{Dir: dir}}
	return NewAdminService(conf, f.store, f.view, f.sync(), f.logger).(*AdminService)
}
