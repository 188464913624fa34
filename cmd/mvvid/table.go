package main

import (
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mvvid/internal/relocate"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderPlanTable(entries []relocate.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Name, entryKind(entry), entrySize(entry)})
	}
	return renderTable([]string{"Entry", "Type", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func renderSummaryTable(summary relocate.Summary) string {
	rows := make([][]string, 0, len(summary.Records))
	for _, rec := range summary.Records {
		dest := rec.Destination
		if dest == "" {
			dest = filepath.Join(summary.Destination, rec.Entry.Name)
		}
		rows = append(rows, []string{rec.Entry.Name, string(rec.Outcome), humanize.Bytes(uint64(rec.Bytes)), dest})
	}
	return renderTable(
		[]string{"Entry", "Result", "Copied", "Destination"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func entrySize(entry relocate.Entry) string {
	if entry.Size < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(entry.Size))
}

func entryKind(entry relocate.Entry) string {
	if entry.IsDir {
		return "dir"
	}
	return "file"
}
