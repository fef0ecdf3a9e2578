// Package ffprobe shells out to ffprobe and decodes the container metadata
// the indexer needs: subtitle and audio streams, dispositions, language
// tags, and frame rate.
package ffprobe
