package storage

import (
	"database/sql"
	"fmt"
	"livevote/internal/providers"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const voteStatusSchema = `
CREATE TABLE IF NOT EXISTS vote_status (
    device_id TEXT PRIMARY KEY,
    has_voted INTEGER NOT NULL DEFAULT 0,
    voted_at TIMESTAMP
);
`

// SQLiteVoteStatusStore keeps one row per device id.
type SQLiteVoteStatusStore struct {
	db       *sql.DB
	deviceID string
	logger   providers.Logger
}

func NewSQLiteVoteStatusStore(dir, deviceID string, logger providers.Logger) (*SQLiteVoteStatusStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "livevote.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open vote status database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(voteStatusSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteVoteStatusStore{db: db, deviceID: deviceID, logger: logger}, nil
}

func (s *SQLiteVoteStatusStore) Load() (bool, error) {
	var voted bool
	err := s.db.QueryRow(`SELECT has_voted FROM vote_status WHERE device_id = ?`, s.deviceID).Scan(&voted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query vote status: %w", err)
	}
	return voted, nil
}

// MarkVoted upserts the row. has_voted only ever moves to 1.
func (s *SQLiteVoteStatusStore) MarkVoted() error {
	_, err := s.db.Exec(`
		INSERT INTO vote_status (device_id, has_voted, voted_at)
		VALUES (?, 1, ?)
		ON CONFLICT(device_id) DO UPDATE SET has_voted = 1
	`, s.deviceID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to persist vote status: %w", err)
	}
	s.logger.Debugf(providers.TypeVote, "Vote status persisted for device %s", s.deviceID)
	return nil
}

func (s *SQLiteVoteStatusStore) Close() error {
	return s.db.Close()
}
