// Package scoring compares a video's known attributes against a candidate
// subtitle's guessed release attributes, producing a deterministic match
// set and a numeric score used to rank candidates.
package scoring
