package services

import (
	"context"
	"errors"
	"fmt"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/storage"
	"livevote/internal/structures"
	"os"
	"path/filepath"
	"time"
)

const exportFilePattern = "voting_results_%d.xlsx"

type AdminServiceInterface interface {
	SaveCandidate(ctx context.Context, id int64, in models.CandidateInput) error
	DeleteCandidate(ctx context.Context, id int64) error
	FindCandidate(id int64) (models.Candidate, error)
	Export(ctx context.Context) (string, error)
}

type AdminService struct {
	store  remote.StoreInterface
	view   models.StateStoreInterface
	sync   SyncServiceInterface
	logger providers.Logger
	dir    string
	now    func() time.Time
}

func NewAdminService(
	conf *structures.Config,
	store remote.StoreInterface,
	view models.StateStoreInterface,
	sync SyncServiceInterface,
	logger providers.Logger,
) AdminServiceInterface {
	return &AdminService{
		store:  store,
		view:   view,
		sync:   sync,
		logger: logger,
		dir:    conf.Export.Dir,
		now:    time.Now,
	}
}

// SaveCandidate creates when id is zero and updates otherwise.
func (a *AdminService) SaveCandidate(ctx context.Context, id int64, in models.CandidateInput) error {
	var err error
	if id == 0 {
		var created models.Candidate
		created, err = a.store.CreateCandidate(ctx, in)
		if err == nil {
			a.logger.Infof(providers.TypePost, "Created candidate %d (%s)", created.ID, created.Name)
		}
	} else {
		err = a.store.UpdateCandidate(ctx, id, in)
		if err == nil {
			a.logger.Infof(providers.TypePost, "Updated candidate %d", id)
		}
	}
	return a.afterMutation(ctx, "save candidate", err)
}

func (a *AdminService) DeleteCandidate(ctx context.Context, id int64) error {
	err := a.store.DeleteCandidate(ctx, id)
	if err == nil {
		a.logger.Infof(providers.TypePost, "Deleted candidate %d", id)
	}
	return a.afterMutation(ctx, "delete candidate", err)
}

func (a *AdminService) FindCandidate(id int64) (models.Candidate, error) {
	c, ok := a.view.Snapshot().Candidate(id)
	if !ok {
		return models.Candidate{}, fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
	}
	return c, nil
}

// Export downloads the results workbook and writes it into the export
// directory. The returned path is the final file name.
func (a *AdminService) Export(ctx context.Context) (string, error) {
	blob, err := a.store.ExportSnapshot(ctx)
	if err != nil {
		a.logger.Errorf(providers.TypeGet, "Export failed: %v", err)
		a.view.SetNotice(NoticeFor(err))
		return "", fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(a.dir, fmt.Sprintf(exportFilePattern, a.now().UnixMilli()))
	if err := storage.WriteFileAtomic(path, blob); err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to write export %s: %v", path, err)
		return "", fmt.Errorf("write export: %w", err)
	}

	a.logger.Infof(providers.TypeApp, "Exported results to %s (%d bytes)", path, len(blob))
	return path, nil
}

// afterMutation refreshes the candidate list on success and when the target
// turned out to be gone; other failures keep the current list.
func (a *AdminService) afterMutation(ctx context.Context, op string, err error) error {
	if err == nil {
		a.view.ClearNotice()
		if loadErr := a.sync.LoadCandidates(ctx); loadErr != nil {
			a.logger.Warnf(providers.TypeSync, "Reload after %s failed: %v", op, loadErr)
		}
		return nil
	}

	a.logger.Errorf(providers.TypePost, "Failed to %s: %v", op, err)
	a.view.SetNotice(NoticeFor(err))
	if errors.Is(err, remote.ErrNotFound) {
		if loadErr := a.sync.LoadCandidates(ctx); loadErr != nil {
			a.logger.Warnf(providers.TypeSync, "Reload after %s failed: %v", op, loadErr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
