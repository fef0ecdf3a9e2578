package providers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"subplot/internal/config"
	"subplot/internal/logging"
)

const (
	ledgerVersion = 1

	// Countable error kinds tolerate a few occurrences before a throttle
	// commits: up to retryBudget within retryWindow, sleeping retryBackoff
	// between attempts.
	retryBudget  = 5
	retryWindow  = 2 * time.Minute
	retryBackoff = 5 * time.Second
)

// Entry records one active provider suspension.
type Entry struct {
	Provider string
	Kind     Kind
	Reason   string
	Until    time.Time
}

// Remaining returns a human-readable duration until the suspension lifts.
func (e Entry) Remaining(now time.Time) string {
	if !e.Until.After(now) {
		return "expired"
	}
	return strings.TrimSpace(humanize.RelTime(now, e.Until, "", ""))
}

type ledgerLine struct {
	Version  int    `json:"v"`
	Provider string `json:"provider"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
	Until    string `json:"until"`
}

type overrideKey struct {
	provider string
	kind     Kind
}

// Ledger is the process-wide throttle state shared by all dispatches. All
// access is serialized by an internal mutex; the backing file is guarded by
// a file lock for cross-process safety.
type Ledger struct {
	mu         sync.Mutex
	path       string
	fileLock   *flock.Flock
	configured []string
	entries    map[string]Entry
	retries    map[string][]time.Time
	overrides  map[overrideKey]time.Duration
	logger     *slog.Logger

	// Seams for tests.
	now        func() time.Time
	sleep      func(time.Duration)
	clearCache func() error
}

// LedgerOption customizes ledger construction.
type LedgerOption func(*Ledger)

// WithClock overrides the ledger's time source.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithSleep overrides the retry backoff sleep.
func WithSleep(sleep func(time.Duration)) LedgerOption {
	return func(l *Ledger) { l.sleep = sleep }
}

// WithCacheCleaner sets the action taken when a stale on-disk cache is
// detected instead of throttling.
func WithCacheCleaner(clear func() error) LedgerOption {
	return func(l *Ledger) { l.clearCache = clear }
}

// OpenLedger loads the persisted ledger, resetting to empty (and discarding
// the file) if it cannot be parsed.
func OpenLedger(cfg *config.Config, logger *slog.Logger, opts ...LedgerOption) *Ledger {
	ledger := &Ledger{
		path:       cfg.ThrottleLedgerPath(),
		fileLock:   flock.New(cfg.ThrottleLedgerPath() + ".lock"),
		configured: append([]string(nil), cfg.Providers.Enabled...),
		entries:    make(map[string]Entry),
		retries:    make(map[string][]time.Time),
		overrides:  make(map[overrideKey]time.Duration),
		logger:     logging.NewComponentLogger(logger, "throttle"),
		now:        time.Now,
		sleep:      time.Sleep,
	}
	for _, override := range cfg.Providers.ThrottleOverrides {
		if override.Minutes <= 0 {
			continue
		}
		key := overrideKey{provider: strings.ToLower(override.Provider), kind: Kind(override.Kind)}
		ledger.overrides[key] = time.Duration(override.Minutes) * time.Minute
	}
	for _, opt := range opts {
		opt(ledger)
	}
	ledger.load()
	return ledger
}

// Enabled returns the configured providers minus those currently throttled.
// Entries whose window has elapsed are removed and the file rewritten.
func (l *Ledger) Enabled() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked()

	enabled := make([]string, 0, len(l.configured))
	for _, name := range l.configured {
		if _, throttled := l.entries[name]; throttled {
			continue
		}
		enabled = append(enabled, name)
	}
	return enabled
}

// Throttled returns the active suspensions, for reporting.
func (l *Ledger) Throttled() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked()

	out := make([]Entry, 0, len(l.entries))
	for _, name := range l.configured {
		if entry, ok := l.entries[name]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Throttle records a provider error. Countable kinds are tolerated up to
// retryBudget occurrences inside retryWindow (with a short backoff sleep)
// before a throttle entry commits. A stale-cache signal deletes the cache
// backing store instead of penalizing the provider.
func (l *Ledger) Throttle(provider string, err error) {
	kind := Classify(err)

	if kind == KindStaleCache {
		l.logger.Warn("stale provider cache detected, clearing",
			logging.String(logging.FieldProvider, provider), logging.Error(err))
		if l.clearCache != nil {
			if clearErr := l.clearCache(); clearErr != nil {
				l.logger.Error("clear provider cache", logging.Error(clearErr))
			}
		}
		return
	}

	l.mu.Lock()
	if kind.Countable() && l.tolerateLocked(provider) {
		l.mu.Unlock()
		l.logger.Debug("tolerating provider error",
			logging.String(logging.FieldProvider, provider),
			logging.String("kind", string(kind)))
		l.sleep(retryBackoff)
		return
	}

	duration := l.penaltyLocked(provider, kind)
	entry := Entry{
		Provider: provider,
		Kind:     kind,
		Reason:   err.Error(),
		Until:    l.now().Add(duration),
	}
	l.entries[provider] = entry
	delete(l.retries, provider)
	l.persistLocked()
	l.mu.Unlock()

	l.logger.Warn("provider throttled",
		logging.String(logging.FieldProvider, provider),
		logging.String("kind", string(kind)),
		logging.Duration("for", duration))
}

// Reset clears the ledger entirely and persists the empty state.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]Entry)
	l.retries = make(map[string][]time.Time)
	l.persistLocked()
}

// tolerateLocked records one countable occurrence and reports whether it is
// still inside the retry budget.
func (l *Ledger) tolerateLocked(provider string) bool {
	now := l.now()
	recent := l.retries[provider][:0]
	for _, ts := range l.retries[provider] {
		if now.Sub(ts) < retryWindow {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	l.retries[provider] = recent
	return len(recent) <= retryBudget
}

func (l *Ledger) penaltyLocked(provider string, kind Kind) time.Duration {
	if duration, ok := l.overrides[overrideKey{provider: provider, kind: kind}]; ok {
		return duration
	}
	if duration, ok := defaultPenalties[kind]; ok {
		return duration
	}
	return defaultPenalty
}

func (l *Ledger) sweepLocked() {
	now := l.now()
	expired := false
	for name, entry := range l.entries {
		if !entry.Until.After(now) {
			delete(l.entries, name)
			expired = true
		}
	}
	if expired {
		l.persistLocked()
	}
}

// load reads the JSON-lines ledger file. Any schema mismatch fails closed:
// the in-memory ledger starts empty and the corrupt file is discarded.
func (l *Ledger) load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if err != nil {
		return
	}
	defer file.Close()

	_ = l.fileLock.RLock()
	defer func() { _ = l.fileLock.Unlock() }()

	entries := make(map[string]Entry)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var line ledgerLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			l.discardCorrupt(fmt.Errorf("parse ledger line: %w", err))
			return
		}
		if line.Version != ledgerVersion || line.Provider == "" {
			l.discardCorrupt(fmt.Errorf("ledger schema mismatch (version %d)", line.Version))
			return
		}
		until, err := time.Parse(time.RFC3339, line.Until)
		if err != nil {
			l.discardCorrupt(fmt.Errorf("parse ledger timestamp: %w", err))
			return
		}
		entries[line.Provider] = Entry{
			Provider: line.Provider,
			Kind:     Kind(line.Kind),
			Reason:   line.Reason,
			Until:    until,
		}
	}
	if err := scanner.Err(); err != nil {
		l.discardCorrupt(fmt.Errorf("read ledger: %w", err))
		return
	}
	l.entries = entries
}

func (l *Ledger) discardCorrupt(err error) {
	l.logger.Warn("throttle ledger corrupt, resetting", logging.Error(err))
	l.entries = make(map[string]Entry)
	_ = os.Remove(l.path)
}

// persistLocked rewrites the ledger file. A persist failure is logged and
// does not undo the in-memory state.
func (l *Ledger) persistLocked() {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.logger.Error("ensure ledger directory", logging.Error(err))
		return
	}

	_ = l.fileLock.Lock()
	defer func() { _ = l.fileLock.Unlock() }()

	var builder strings.Builder
	for _, name := range l.configured {
		entry, ok := l.entries[name]
		if !ok {
			continue
		}
		line := ledgerLine{
			Version:  ledgerVersion,
			Provider: entry.Provider,
			Kind:     string(entry.Kind),
			Reason:   entry.Reason,
			Until:    entry.Until.UTC().Format(time.RFC3339),
		}
		data, err := json.Marshal(line)
		if err != nil {
			l.logger.Error("encode ledger line", logging.Error(err))
			return
		}
		builder.Write(data)
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(l.path, []byte(builder.String()), 0o644); err != nil {
		l.logger.Error("persist throttle ledger", logging.Error(err))
	}
}
