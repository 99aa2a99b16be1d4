package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"livevote/internal/providers"
	"livevote/internal/storage/interfaces"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// voteStatusDocument is the on-disk format of one device's vote status.
type voteStatusDocument struct {
	DeviceID string    `json:"device_id"`
	HasVoted bool      `json:"has_voted"`
	VotedAt  time.Time `json:"voted_at"`
}

// FileVoteStatusStore keeps one compressed document per device id.
type FileVoteStatusStore struct {
	mu         sync.Mutex
	path       string
	deviceID   string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileVoteStatusStore(dir, deviceID string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileVoteStatusStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create storage dir: %w", err)
	}
	return &FileVoteStatusStore{
		path:       filepath.Join(dir, "vote-status-"+deviceID+".zst"),
		deviceID:   deviceID,
		compressor: compressor,
		logger:     logger,
	}, nil
}

func (f *FileVoteStatusStore) Load() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return false, fmt.Errorf("corrupted vote status file %s: %w", f.path, err)
	}

	var doc voteStatusDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("corrupted vote status file %s: %w", f.path, err)
	}
	if doc.DeviceID != f.deviceID {
		f.logger.Warnf(providers.TypeVote, "Vote status file %s belongs to device %s, ignoring", f.path, doc.DeviceID)
		return false, nil
	}
	return doc.HasVoted, nil
}

func (f *FileVoteStatusStore) MarkVoted() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	jsonData, err := json.Marshal(voteStatusDocument{
		DeviceID: f.deviceID,
		HasVoted: true,
		VotedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return WriteFileAtomic(f.path, data)
}

func (f *FileVoteStatusStore) Close() error {
	f.compressor.Close()
	return nil
}

// WriteFileAtomic writes through a synced temp file and renames it into
// place, so a crash never leaves a half-written file behind.
func WriteFileAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
