package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable draws a rounded table for CLI listings. Columns whose every
// cell parses as an integer (the ID columns) are right-aligned; headers
// stay left-aligned.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	numeric := make([]bool, len(headers))
	for i := range numeric {
		numeric[i] = len(rows) > 0
	}
	for _, row := range rows {
		cells := make(table.Row, len(headers))
		for i := range headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = cell
			if _, err := strconv.Atoi(cell); err != nil {
				numeric[i] = false
			}
		}
		tw.AppendRow(cells)
	}

	var configs []table.ColumnConfig
	for i, isNumeric := range numeric {
		if !isNumeric {
			continue
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	if len(configs) > 0 {
		tw.SetColumnConfigs(configs)
	}

	return tw.Render()
}
