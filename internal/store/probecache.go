package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetProbe returns the cached probe payload for (fileID, fileSize). A hit is
// valid only when both key parts match the current file exactly.
func (s *Store) GetProbe(ctx context.Context, fileID string, fileSize int64) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM probe_cache WHERE file_id = ? AND file_size = ?`,
		fileID, fileSize,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("probe cache get: %w", err)
	}
	return payload, true, nil
}

// PutProbe stores a probe payload, replacing any stale entry for the file.
func (s *Store) PutProbe(ctx context.Context, fileID string, fileSize int64, payload []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM probe_cache WHERE file_id = ? AND file_size != ?`, fileID, fileSize); err != nil {
		return fmt.Errorf("probe cache evict: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO probe_cache (file_id, file_size, payload, created_at) VALUES (?, ?, ?, ?)`,
		fileID, fileSize, payload, now); err != nil {
		return fmt.Errorf("probe cache put: %w", err)
	}
	return nil
}

// ClearProbeCache drops every cached probe payload. Used when on-disk cache
// corruption is detected.
func (s *Store) ClearProbeCache(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM probe_cache`); err != nil {
		return fmt.Errorf("probe cache clear: %w", err)
	}
	return nil
}
