// Package store persists video rows, their subtitle and missing lists, and
// the media probe cache in SQLite. The colon-tag string grammar used on
// disk is encoded and decoded here, at the persistence boundary only.
package store
