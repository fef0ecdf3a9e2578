package workflow

import (
	"context"
	"sync"

	"subplot/internal/logging"
	"subplot/internal/notifications"
	"subplot/internal/store"
)

// Progress reports sweep advancement. Implementations must be fast; they
// are called from worker goroutines.
type Progress func(done, total int, path string)

// SweepStats summarizes a full-library sweep.
type SweepStats struct {
	Videos int
	Failed int
}

// SweepLibrary re-indexes every video in the store. Videos sharing a file
// are handled by one worker so no path ever has two concurrent writers;
// distinct paths run in parallel. A failure on one video is logged and
// counted, never fatal to the sweep.
func (r *Runner) SweepLibrary(ctx context.Context, useCache bool, progress Progress) (SweepStats, error) {
	videos, err := r.store.ListVideos(ctx)
	if err != nil {
		return SweepStats{}, err
	}

	// Group rows by path; IndexVideo fans updates out to sibling rows.
	order := make([]string, 0, len(videos))
	byPath := make(map[string]*store.Video, len(videos))
	for _, video := range videos {
		if _, ok := byPath[video.Path]; ok {
			continue
		}
		byPath[video.Path] = video
		order = append(order, video.Path)
	}

	workers := r.cfg.Workflow.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		done   int
		failed int
	)
	paths := make(chan string)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				video := byPath[path]
				if err := r.indexVideo(ctx, video.ID, useCache, true); err != nil {
					r.logger.Error("sweep: index video failed",
						logging.Int64(logging.FieldVideoID, video.ID),
						logging.String(logging.FieldPath, path),
						logging.Error(err))
					mu.Lock()
					failed++
					mu.Unlock()
				}
				mu.Lock()
				done++
				current := done
				mu.Unlock()
				if progress != nil {
					progress(current, len(order), path)
				}
			}
		}()
	}

	for _, path := range order {
		select {
		case <-ctx.Done():
			close(paths)
			wg.Wait()
			return SweepStats{Videos: done, Failed: failed}, ctx.Err()
		case paths <- path:
		}
	}
	close(paths)
	wg.Wait()

	r.publishBadges(ctx)
	r.bus.Publish(ctx, notifications.Event{
		Type: notifications.EventSweepCompleted,
		Payload: map[string]any{
			"videos": len(order),
			"failed": failed,
		},
	})

	return SweepStats{Videos: len(order), Failed: failed}, nil
}
