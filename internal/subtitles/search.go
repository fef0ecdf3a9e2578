package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subplot/internal/language"
)

var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".ass": {},
	".ssa": {},
	".sub": {},
	".vtt": {},
}

// SearchOptions scopes an external subtitle search.
type SearchOptions struct {
	// Languages restricts results to these 2-letter codes; empty means all.
	Languages []string
	// OnlyOne keeps the first subtitle found per language.
	OnlyOne bool
	// Covered lists languages already satisfied elsewhere (carried-forward
	// records); with OnlyOne set, further files for them are skipped.
	Covered []string
	// Exclude lists paths to skip, typically unchanged files from the
	// previous indexing pass.
	Exclude map[string]struct{}
}

// Search finds external subtitle files for the video at videoPath inside
// root. Files must share the video's base name; language, forced, and hi
// markers are guessed from the filename tokens between base and extension.
func Search(root, videoPath string, opts SearchOptions) (map[string]language.Selector, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read subtitle directory %s: %w", root, err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	allowed := make(map[string]struct{}, len(opts.Languages))
	for _, code := range opts.Languages {
		allowed[code] = struct{}{}
	}

	found := make(map[string]language.Selector)
	seenLanguage := make(map[string]struct{}, len(opts.Covered))
	for _, code := range opts.Covered {
		seenLanguage[code] = struct{}{}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := subtitleExtensions[ext]; !ok {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !strings.HasPrefix(stem, base) {
			continue
		}

		path := filepath.Join(root, name)
		if _, skip := opts.Exclude[path]; skip {
			continue
		}

		selector := guessFromSuffix(strings.TrimPrefix(stem, base))
		if len(allowed) > 0 && selector.Code != language.Undefined {
			if _, ok := allowed[selector.Code]; !ok {
				continue
			}
		}
		if opts.OnlyOne {
			if _, ok := seenLanguage[selector.Code]; ok {
				continue
			}
			seenLanguage[selector.Code] = struct{}{}
		}
		found[path] = selector
	}
	return found, nil
}

// guessFromSuffix decodes the filename tokens after the video base name,
// e.g. ".en.forced" or ".eng.hi". An unrecognized or absent language token
// yields the undefined sentinel.
func guessFromSuffix(suffix string) language.Selector {
	selector := language.Selector{Code: language.Undefined}
	tokens := strings.FieldsFunc(strings.ToLower(suffix), func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' '
	})
	for _, token := range tokens {
		switch token {
		case "forced":
			selector.Forced = true
		case "hi":
			// Also Hindi's ISO code. Before a language token it names the
			// language; after one it marks hearing impaired.
			if selector.Code == language.Undefined {
				selector.Code = "hi"
			} else {
				selector.HearingImpaired = true
			}
		case "sdh", "cc":
			selector.HearingImpaired = true
		default:
			if code := language.ToISO2(token); code != "" && selector.Code == language.Undefined {
				selector.Code = code
			}
		}
	}
	// The tag grammar allows one variant marker; forced wins.
	if selector.Forced {
		selector.HearingImpaired = false
	}
	return selector
}
