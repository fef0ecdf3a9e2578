package store

import (
	"encoding/json"
	"fmt"

	"subplot/internal/language"
	"subplot/internal/subtitles"
)

// On-disk grammar: the subtitle list is a JSON array of 3-element records
// [language_tag, path_or_null, size_or_null]; the missing list is a JSON
// array of tag strings. Kept for compatibility with existing rows.

// EncodeRecords serializes subtitle records to the on-disk list form.
func EncodeRecords(records []subtitles.Record) (string, error) {
	out := make([][3]any, 0, len(records))
	for _, record := range records {
		entry := [3]any{record.Selector.Tag(), nil, nil}
		if record.Path != "" {
			entry[1] = record.Path
			entry[2] = record.Size
		}
		out = append(out, entry)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode subtitle records: %w", err)
	}
	return string(data), nil
}

// DecodeRecords parses the on-disk list form back into subtitle records.
// Malformed entries fail the whole decode; rows are written atomically so a
// partial list indicates corruption, not a schema change.
func DecodeRecords(text string) ([]subtitles.Record, error) {
	if text == "" {
		return nil, nil
	}
	var raw [][]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode subtitle records: %w", err)
	}
	records := make([]subtitles.Record, 0, len(raw))
	for _, entry := range raw {
		if len(entry) != 3 {
			return nil, fmt.Errorf("decode subtitle records: entry has %d elements", len(entry))
		}
		var tag string
		if err := json.Unmarshal(entry[0], &tag); err != nil {
			return nil, fmt.Errorf("decode subtitle tag: %w", err)
		}
		selector, err := language.ParseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("decode subtitle records: %w", err)
		}
		record := subtitles.Record{Selector: selector}
		var path *string
		if err := json.Unmarshal(entry[1], &path); err != nil {
			return nil, fmt.Errorf("decode subtitle path: %w", err)
		}
		if path != nil {
			record.Path = *path
			var size *int64
			if err := json.Unmarshal(entry[2], &size); err != nil {
				return nil, fmt.Errorf("decode subtitle size: %w", err)
			}
			if size != nil {
				record.Size = *size
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// EncodeMissing serializes missing-subtitle tags to the on-disk form.
func EncodeMissing(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode missing subtitles: %w", err)
	}
	return string(data), nil
}

// DecodeMissing parses the on-disk missing-subtitle list.
func DecodeMissing(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(text), &tags); err != nil {
		return nil, fmt.Errorf("decode missing subtitles: %w", err)
	}
	return tags, nil
}
