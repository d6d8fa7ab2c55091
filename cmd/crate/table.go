package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"crate/internal/catalog"
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
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
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

var itemHeaders = []string{"ID", "Artist", "Title", "Media", "Year", "Genre", "Label"}

var itemAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}

func itemRow(item catalog.Item) []string {
	return []string{
		shortID(item.ID),
		displayArtist(item),
		item.DisplayTitle(),
		item.MediaType.Label(),
		yearString(item.Year),
		item.Genre,
		item.RecordLabel,
	}
}

func renderItems(items []catalog.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow(item))
	}
	return renderTable(itemHeaders, rows, itemAligns)
}

func renderAlbums(albums []catalog.DiscographyAlbum) string {
	rows := make([][]string, 0, len(albums))
	for _, album := range albums {
		rows = append(rows, []string{album.Title, yearString(album.Year)})
	}
	return renderTable([]string{"Title", "Year"}, rows, []columnAlignment{alignLeft, alignRight})
}

func yearString(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

// shortID trims a UUID to its first block for table display. Commands accept
// either form.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
