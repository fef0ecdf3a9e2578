// Package notifications is the fire-and-forget change bus. Indexing and
// missing-subtitle recomputation publish events here; delivery failures are
// logged and never propagate to the caller.
package notifications
