package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subplot/internal/subtitles"
)

// ErrNotFound is returned when a video row does not exist.
var ErrNotFound = errors.New("store: video not found")

// Kind distinguishes the two indexing pipelines.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindEpisode Kind = "episode"
)

// Video is one library entry. Multiple rows may share a path (the same file
// can back more than one catalog entry); callers that update by path must
// fan out to all of them.
type Video struct {
	ID             int64
	Kind           Kind
	Path           string
	Title          string
	Year           int
	Series         string
	Season         int
	Episode        int
	OriginalSeries bool
	Source         string
	VideoCodec     string
	AudioCodec     string
	ReleaseGroup   string
	Resolution     string
	FrameRate      float64
	AudioLanguages []string
	ProfileID      int64 // 0 means no profile assigned
	Subtitles      []subtitles.Record
	Missing        []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const videoColumns = `id, kind, path, title, year, series, season, episode,
    original_series, source, video_codec, audio_codec, release_group,
    resolution, frame_rate, audio_languages, profile_id, subtitles,
    missing_subtitles, created_at, updated_at`

// InsertVideo adds a new video row and returns it with its id assigned.
func (s *Store) InsertVideo(ctx context.Context, video *Video) (*Video, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	audioJSON, err := json.Marshal(emptySlice(video.AudioLanguages))
	if err != nil {
		return nil, fmt.Errorf("marshal audio languages: %w", err)
	}
	subtitleText, err := EncodeRecords(video.Subtitles)
	if err != nil {
		return nil, err
	}
	missingText, err := EncodeMissing(video.Missing)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO videos (
            kind, path, title, year, series, season, episode, original_series,
            source, video_codec, audio_codec, release_group, resolution,
            frame_rate, audio_languages, profile_id, subtitles,
            missing_subtitles, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(video.Kind),
		video.Path,
		video.Title,
		video.Year,
		video.Series,
		video.Season,
		video.Episode,
		boolToInt(video.OriginalSeries),
		video.Source,
		video.VideoCodec,
		video.AudioCodec,
		video.ReleaseGroup,
		video.Resolution,
		video.FrameRate,
		string(audioJSON),
		nullableID(video.ProfileID),
		subtitleText,
		missingText,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetVideo(ctx, id)
}

// GetVideo returns the video with the given id.
func (s *Store) GetVideo(ctx context.Context, id int64) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	return scanVideo(row)
}

// VideosByPath returns every video row sharing the given path.
func (s *Store) VideosByPath(ctx context.Context, path string) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE path = ? ORDER BY id`, path)
	if err != nil {
		return nil, fmt.Errorf("query videos by path: %w", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// ListVideos returns all video rows ordered by id.
func (s *Store) ListVideos(ctx context.Context) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// SetSubtitles replaces the stored subtitle list for one video.
func (s *Store) SetSubtitles(ctx context.Context, id int64, records []subtitles.Record) error {
	encoded, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	return s.updateColumn(ctx, id, "subtitles", encoded)
}

// SetMissing replaces the stored missing-subtitles list for one video.
func (s *Store) SetMissing(ctx context.Context, id int64, tags []string) error {
	encoded, err := EncodeMissing(tags)
	if err != nil {
		return err
	}
	return s.updateColumn(ctx, id, "missing_subtitles", encoded)
}

// WantedCounts returns how many movies and episodes currently have missing
// subtitles, for badge events.
func (s *Store) WantedCounts(ctx context.Context) (movies, episodes int, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM videos WHERE missing_subtitles != '[]' GROUP BY kind`)
	if err != nil {
		return 0, 0, fmt.Errorf("count wanted: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return 0, 0, fmt.Errorf("scan wanted count: %w", err)
		}
		switch Kind(kind) {
		case KindMovie:
			movies = count
		case KindEpisode:
			episodes = count
		}
	}
	return movies, episodes, rows.Err()
}

func (s *Store) updateColumn(ctx context.Context, id int64, column, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET `+column+` = ?, updated_at = ? WHERE id = ?`, value, now, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*Video, error) {
	var (
		video          Video
		kind           string
		originalSeries int
		audioJSON      string
		profileID      sql.NullInt64
		subtitleText   string
		missingText    string
		createdAt      string
		updatedAt      string
	)
	err := row.Scan(
		&video.ID, &kind, &video.Path, &video.Title, &video.Year,
		&video.Series, &video.Season, &video.Episode, &originalSeries,
		&video.Source, &video.VideoCodec, &video.AudioCodec,
		&video.ReleaseGroup, &video.Resolution, &video.FrameRate,
		&audioJSON, &profileID, &subtitleText, &missingText,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan video: %w", err)
	}

	video.Kind = Kind(kind)
	video.OriginalSeries = originalSeries != 0
	if err := json.Unmarshal([]byte(audioJSON), &video.AudioLanguages); err != nil {
		return nil, fmt.Errorf("decode audio languages: %w", err)
	}
	if profileID.Valid {
		video.ProfileID = profileID.Int64
	}
	video.Subtitles, err = DecodeRecords(subtitleText)
	if err != nil {
		return nil, err
	}
	video.Missing, err = DecodeMissing(missingText)
	if err != nil {
		return nil, err
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		video.CreatedAt = ts
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		video.UpdatedAt = ts
	}
	return &video, nil
}

func scanVideos(rows *sql.Rows) ([]*Video, error) {
	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func emptySlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
