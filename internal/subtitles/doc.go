// Package subtitles indexes the subtitles that already exist for a video:
// streams embedded in the container and external sibling files on disk.
// Every pass rebuilds the full record list; per-track failures are
// collected and logged without aborting the pass.
package subtitles
