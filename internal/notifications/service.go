package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"subplot/internal/config"
	"subplot/internal/logging"
)

const userAgent = "Subplot/0.1.0"

// EventType names the change categories consumers can react to.
type EventType string

const (
	// EventVideoUpdated signals that one video's subtitle or missing list changed.
	EventVideoUpdated EventType = "video_updated"
	// EventBadgesUpdated signals that the aggregate wanted counts changed.
	EventBadgesUpdated EventType = "badges_updated"
	// EventSweepCompleted signals the end of a full-library sweep.
	EventSweepCompleted EventType = "sweep_completed"
)

// Event is one change notification.
type Event struct {
	Type    EventType
	Action  string
	Payload map[string]any
}

// Publisher is the surface components publish through.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Bus fans events out to in-process subscribers and, when configured,
// forwards them to an ntfy topic. Publish never returns an error.
type Bus struct {
	mu          sync.RWMutex
	subscribers []func(Event)
	endpoint    string
	client      *http.Client
	logger      *slog.Logger
}

// NewBus builds the bus. With no ntfy topic configured, events only reach
// in-process subscribers.
func NewBus(cfg *config.Config, logger *slog.Logger) *Bus {
	bus := &Bus{logger: logging.NewComponentLogger(logger, "notify")}
	if cfg != nil {
		if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
			timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			bus.endpoint = topic
			bus.client = &http.Client{Timeout: timeout}
		}
	}
	return bus
}

// Subscribe registers an in-process listener. Listeners must not block.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish delivers the event to every subscriber and the webhook.
// Failures are logged and swallowed.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subscribers := append([]func(Event){}, b.subscribers...)
	b.mu.RUnlock()

	for _, fn := range subscribers {
		func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					b.logger.Error("notification subscriber panicked",
						logging.Any("panic", recovered),
						logging.String("event", string(event.Type)))
				}
			}()
			fn(event)
		}()
	}

	if b.client == nil {
		return
	}
	if err := b.forward(ctx, event); err != nil {
		b.logger.Warn("forward notification", logging.Error(err),
			logging.String("event", string(event.Type)))
	}
}

func (b *Bus) forward(ctx context.Context, event Event) error {
	message := string(event.Type)
	if event.Action != "" {
		message = fmt.Sprintf("%s (%s)", message, event.Action)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", "Subplot")
	req.Header.Set("Tags", "subplot,"+string(event.Type))

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
