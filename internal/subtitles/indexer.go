package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subplot/internal/config"
	"subplot/internal/language"
	"subplot/internal/logging"
	"subplot/internal/media/ffprobe"
)

// Prober supplies container metadata for a video file. Implementations are
// expected to cache by (fileID, fileSize); useCache false forces a fresh
// probe.
type Prober interface {
	Probe(ctx context.Context, fileID string, fileSize int64, useCache bool) (ffprobe.Result, error)
}

// TrackError records one per-track indexing failure. Failures never abort
// the pass; they are collected so callers can audit what was skipped.
type TrackError struct {
	Track string
	Err   error
}

func (e TrackError) Error() string {
	return fmt.Sprintf("track %s: %v", e.Track, e.Err)
}

// Codec names ffprobe reports for the user-ignorable embedded formats.
var (
	pgsCodecs    = map[string]struct{}{"hdmv_pgs_subtitle": {}, "pgssub": {}}
	vobsubCodecs = map[string]struct{}{"dvd_subtitle": {}, "dvdsub": {}}
	assCodecs    = map[string]struct{}{"ass": {}, "ssa": {}}
)

// Indexer produces the full, current subtitle record list for one video.
type Indexer struct {
	cfg       config.Subtitles
	languages []string
	prober    Prober
	overrides *language.OverrideTable
	logger    *slog.Logger
}

// NewIndexer builds an indexer from configuration. The language list scopes
// the external search; overrides may be nil.
func NewIndexer(cfg *config.Config, prober Prober, overrides *language.OverrideTable, logger *slog.Logger) *Indexer {
	languages := make(map[string]struct{})
	var ordered []string
	for _, p := range cfg.Languages.Profiles {
		for _, item := range p.Items {
			if _, ok := languages[item.Language]; ok {
				continue
			}
			languages[item.Language] = struct{}{}
			ordered = append(ordered, item.Language)
		}
	}
	return &Indexer{
		cfg:       cfg.Subtitles,
		languages: ordered,
		prober:    prober,
		overrides: overrides,
		logger:    logging.NewComponentLogger(logger, "indexer"),
	}
}

// Index inspects one video and returns its complete subtitle record list:
// embedded streams first, then external files, with unchanged external
// records from the previous pass carried forward. It never returns an
// error; sub-failures are logged, collected, and skipped.
func (ix *Indexer) Index(ctx context.Context, originalPath, resolvedPath string, previous []Record, useCache bool) ([]Record, []TrackError) {
	info, err := os.Stat(resolvedPath)
	if err != nil {
		ix.logger.Warn("video file missing, skipping index",
			logging.String(logging.FieldPath, resolvedPath), logging.Error(err))
		return nil, nil
	}

	var records []Record
	var trackErrs []TrackError

	if ix.cfg.EmbeddedEnabled {
		embedded, errs := ix.indexEmbedded(ctx, resolvedPath, info.Size(), useCache)
		records = append(records, embedded...)
		trackErrs = append(trackErrs, errs...)
	}

	// Embedded failures never block the external scan.
	external, errs := ix.indexExternal(resolvedPath, previous)
	records = append(records, external...)
	trackErrs = append(trackErrs, errs...)

	for _, trackErr := range trackErrs {
		ix.logger.Warn("subtitle track skipped",
			logging.String(logging.FieldPath, originalPath),
			logging.String("track", trackErr.Track),
			logging.Error(trackErr.Err))
	}

	return records, trackErrs
}

func (ix *Indexer) indexEmbedded(ctx context.Context, path string, size int64, useCache bool) ([]Record, []TrackError) {
	result, err := ix.prober.Probe(ctx, path, size, useCache)
	if err != nil {
		return nil, []TrackError{{Track: "container", Err: err}}
	}

	var records []Record
	var trackErrs []TrackError
	for _, stream := range result.SubtitleStreams() {
		record, ok, err := ix.embeddedRecord(stream)
		if err != nil {
			trackErrs = append(trackErrs, TrackError{Track: fmt.Sprintf("stream %d", stream.Index), Err: err})
			continue
		}
		if ok {
			records = append(records, record)
		}
	}
	return records, trackErrs
}

// embeddedRecord translates one subtitle stream into a record. The second
// return is false when the track is deliberately skipped.
func (ix *Indexer) embeddedRecord(stream ffprobe.Stream) (Record, bool, error) {
	if strings.Contains(strings.ToLower(stream.Title()), "commentary") {
		return Record{}, false, nil
	}
	if ix.ignoredCodec(stream.CodecName) {
		return Record{}, false, nil
	}

	raw := language.ExtractFromTags(stream.Tags)
	code := language.ToISO2(raw)
	if code == "" {
		if ix.cfg.UndefinedEmbeddedLanguage == "" {
			return Record{}, false, nil
		}
		code = ix.cfg.UndefinedEmbeddedLanguage
	}

	forced := stream.Disposition.Forced != 0
	hi := stream.Disposition.HearingImpaired != 0
	if forced {
		// A track carries one variant marker at most; forced wins.
		hi = false
	}

	return Record{Selector: language.Selector{Code: code, Forced: forced, HearingImpaired: hi}}, true, nil
}

func (ix *Indexer) ignoredCodec(codec string) bool {
	codec = strings.ToLower(strings.TrimSpace(codec))
	if _, ok := pgsCodecs[codec]; ok && ix.cfg.IgnorePGS {
		return true
	}
	if _, ok := vobsubCodecs[codec]; ok && ix.cfg.IgnoreVobsub {
		return true
	}
	if _, ok := assCodecs[codec]; ok && ix.cfg.IgnoreASS {
		return true
	}
	return false
}

func (ix *Indexer) indexExternal(resolvedPath string, previous []Record) ([]Record, []TrackError) {
	root := ix.searchRoot(resolvedPath)

	// External records from the previous pass whose file is unchanged
	// (same size, still present) are carried forward untouched.
	unchanged := make([]Record, 0, len(previous))
	exclude := make(map[string]struct{})
	covered := make([]string, 0, len(previous))
	for _, record := range previous {
		if record.Embedded() {
			continue
		}
		info, err := os.Stat(record.Path)
		if err != nil || info.Size() != record.Size {
			continue
		}
		unchanged = append(unchanged, record)
		exclude[record.Path] = struct{}{}
		covered = append(covered, record.Selector.Code)
	}

	found, err := Search(root, resolvedPath, SearchOptions{
		Languages: ix.languages,
		OnlyOne:   ix.cfg.OnlyOnePerLanguage,
		Covered:   covered,
		Exclude:   exclude,
	})
	if err != nil {
		return unchanged, []TrackError{{Track: "external", Err: err}}
	}

	// Stable order keeps repeated passes bit-identical.
	paths := make([]string, 0, len(found))
	for path := range found {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	records := unchanged
	var trackErrs []TrackError
	for _, path := range paths {
		selector := found[path]
		if ix.overrides != nil {
			if custom, ok := ix.overrides.Lookup(filepath.Base(path), path); ok {
				selector = custom
			}
		}
		if selector.Code == language.Undefined {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			trackErrs = append(trackErrs, TrackError{Track: path, Err: err})
			continue
		}
		records = append(records, Record{Selector: selector, Path: path, Size: info.Size()})
	}
	return records, trackErrs
}

// searchRoot applies the subfolder policy to scope the external search.
func (ix *Indexer) searchRoot(resolvedPath string) string {
	dir := filepath.Dir(resolvedPath)
	switch ix.cfg.SubfolderPolicy {
	case "relative":
		return filepath.Join(dir, ix.cfg.Subfolder)
	case "absolute":
		return ix.cfg.Subfolder
	default:
		return dir
	}
}
