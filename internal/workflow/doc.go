// Package workflow drives the per-video indexing pipeline: probe the
// container, index existing subtitles, recompute what is missing, persist,
// and notify. Distinct videos may run concurrently; one video is always
// processed by a single writer at a time.
package workflow
