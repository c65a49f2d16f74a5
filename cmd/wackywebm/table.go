package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns are right aligned,
// header and footer included. A non-zero wrap soft-wraps longer cells.
type column struct {
	title   string
	numeric bool
	wrap    int
}

func textColumn(title string) column { return column{title: title} }

func numberColumn(title string) column { return column{title: title, numeric: true} }

func renderTable(columns []column, rows [][]string, footer ...string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(tableRow(len(columns), columnTitles(columns)))
	for _, row := range rows {
		tw.AppendRow(tableRow(len(columns), row))
	}
	if len(footer) > 0 {
		tw.AppendFooter(tableRow(len(columns), footer))
	}

	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: align,
			AlignFooter: align,
			WidthMax:    col.wrap,
		}
		if col.wrap > 0 {
			configs[i].WidthMaxEnforcer = text.WrapSoft
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func columnTitles(columns []column) []string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	return titles
}

// tableRow pads or truncates cells to width.
func tableRow(width int, cells []string) table.Row {
	row := make(table.Row, width)
	for i := range row {
		row[i] = ""
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	return row
}
