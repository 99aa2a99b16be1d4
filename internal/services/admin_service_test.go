package services

import (
	"context"
	"livevote/internal/models"
	"livevote/internal/remote"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCandidate_CreateReloadsList(t *testing.T) {
	f := newFixture()
	a := f.admin(t.TempDir())

	err := a.SaveCandidate(context.Background(), 0, models.CandidateInput{Name: "Carol", ImageURL: "🌹"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.CallCount("CreateCandidate"))
	assert.Equal(t, 1, f.store.CallCount("FetchCandidates"))
	assert.Len(t, f.view.Snapshot().Candidates, 3)
}

func TestSaveCandidate_Update(t *testing.T) {
	f := newFixture()
	a := f.admin(t.TempDir())

	err := a.SaveCandidate(context.Background(), 2, models.CandidateInput{Name: "Robert"})
	require.NoError(t, err)

	assert.Equal(t, "Robert", f.store.Updated[2].Name)
	assert.Equal(t, 0, f.store.CallCount("CreateCandidate"))
	assert.Equal(t, 1, f.store.CallCount("FetchCandidates"))
}

func TestSaveCandidate_ValidationKeepsList(t *testing.T) {
	f := newFixture()
	f.store.CreateErr = &remote.Error{Kind: remote.KindValidation, Message: "Candidate name is required"}
	a := f.admin(t.TempDir())

	err := a.SaveCandidate(context.Background(), 0, models.CandidateInput{})

	assert.ErrorIs(t, err, remote.ErrValidation)
	assert.Equal(t, 0, f.store.CallCount("FetchCandidates"))
	assert.Equal(t, "Candidate name is required", f.view.Snapshot().Notice.Message)
}

func TestDeleteCandidate_NotFoundRefreshesList(t *testing.T) {
	f := newFixture()
	f.store.DeleteErr = &remote.Error{Kind: remote.KindNotFound, Status: 404}
	a := f.admin(t.TempDir())

	err := a.DeleteCandidate(context.Background(), 9)

	assert.ErrorIs(t, err, remote.ErrNotFound)
	assert.Equal(t, 1, f.store.CallCount("FetchCandidates"))
	assert.Equal(t, models.NoticeError, f.view.Snapshot().Notice.Level)
}

func TestDeleteCandidate_Success(t *testing.T) {
	f := newFixture()
	a := f.admin(t.TempDir())

	require.NoError(t, a.DeleteCandidate(context.Background(), 1))

	assert.Equal(t, []int64{1}, f.store.Deleted)
	snap := f.view.Snapshot()
	require.Len(t, snap.Candidates, 1)
	assert.Equal(t, int64(2), snap.Candidates[0].ID)
}

func TestFindCandidate(t *testing.T) {
	a := newFixture().admin(t.TempDir())

	c, err := a.FindCandidate(1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Name)

	_, err = a.FindCandidate(99)
	assert.ErrorIs(t, err, ErrUnknownCandidate)
}

func TestExport_WritesTimestampedFile(t *testing.T) {
	f := newFixture()
	f.store.Export = []byte("PK\x03\x04workbook")
	dir := filepath.Join(t.TempDir(), "exports")
	a := f.admin(dir)
	a.now = func() time.Time { return time.UnixMilli(1700000000123) }

	path, err := a.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "voting_results_1700000000123.xlsx"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.store.Export, data)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestExport_FailureWritesNothing(t *testing.T) {
	f := newFixture()
	f.store.ExportErr = &remote.Error{Kind: remote.KindNetwork}
	dir := t.TempDir()
	a := f.admin(dir)

	_, err := a.Export(context.Background())
	assert.ErrorIs(t, err, remote.ErrNetwork)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type requestKey struct{}

func TestDeleteCandidate_ReloadUsesCallerContext(t *testing.T) {
	f := newFixture()
	a := f.admin(t.TempDir())
	ctx := context.WithValue(context.Background(), requestKey{}, "delete-2")

	require.NoError(t, a.DeleteCandidate(ctx, 2))

	require.NotNil(t, f.store.FetchCtx)
	assert.Equal(t, "delete-2", f.store.FetchCtx.Value(requestKey{}))
}

func TestSaveCandidate_NotFoundReloadUsesCallerContext(t *testing.T) {
	f := newFixture()
	f.store.UpdateErr = &remote.Error{Kind: remote.KindNotFound, Status: 404}
	a := f.admin(t.TempDir())
	ctx := context.WithValue(context.Background(), requestKey{}, "update-9")

	err := a.SaveCandidate(ctx, 9, models.CandidateInput{Name: "Ghost"})

	assert.ErrorIs(t, err, remote.ErrNotFound)
	require.NotNil(t, f.store.FetchCtx)
	assert.Equal(t, "update-9", f.store.FetchCtx.Value(requestKey{}))
}
