package workflow

import (
	"context"
	"log/slog"

	"subplot/internal/logging"
	"subplot/internal/media/ffprobe"
	"subplot/internal/store"
)

// cachingProber wraps ffprobe with the store-backed probe cache. A cache
// hit is valid only when the stored (file_id, file_size) key matches the
// current file exactly; a payload that no longer parses is treated as a
// stale cache and refreshed.
type cachingProber struct {
	store  *store.Store
	binary string
	logger *slog.Logger
}

func newCachingProber(st *store.Store, binary string, logger *slog.Logger) *cachingProber {
	return &cachingProber{
		store:  st,
		binary: binary,
		logger: logging.NewComponentLogger(logger, "prober"),
	}
}

func (p *cachingProber) Probe(ctx context.Context, fileID string, fileSize int64, useCache bool) (ffprobe.Result, error) {
	if useCache {
		payload, hit, err := p.store.GetProbe(ctx, fileID, fileSize)
		if err != nil {
			p.logger.Warn("probe cache read", logging.Error(err))
		} else if hit {
			result, parseErr := ffprobe.Parse(payload)
			if parseErr == nil {
				return result, nil
			}
			p.logger.Warn("discarding unreadable probe cache entry",
				logging.String(logging.FieldPath, fileID), logging.Error(parseErr))
		}
	}

	result, err := ffprobe.Inspect(ctx, p.binary, fileID)
	if err != nil {
		return ffprobe.Result{}, err
	}
	if err := p.store.PutProbe(ctx, fileID, fileSize, result.RawJSON()); err != nil {
		p.logger.Warn("probe cache write", logging.Error(err))
	}
	return result, nil
}
