package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sanremolab/sanremo-pulse-go/internal/dataset"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

// renderMetricsTable pretty-prints the collected rows. Reddit columns only
// appear when the run actually collected Reddit data.
func renderMetricsTable(rows []domain.MetricsRow, variant dataset.Variant) string {
	withReddit := variant == dataset.VariantReddit || variant == dataset.VariantFull

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"Artista", "Brano", "Spotify", "YouTube"}
	if withReddit {
		header = append(header, "Menzioni", "Punteggio", "Sentiment")
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		popularity := "-"
		if row.SpotifyPopularity != nil {
			popularity = strconv.Itoa(*row.SpotifyPopularity)
		}
		views := "-"
		if row.YouTube != nil {
			views = strconv.FormatUint(row.YouTube.Views, 10)
		}

		r := table.Row{row.Artist, row.Song, popularity, views}
		if withReddit {
			r = append(r,
				strconv.Itoa(row.Mentions),
				strconv.Itoa(row.Score),
				strconv.FormatFloat(row.SentimentScore, 'f', 3, 64)+" "+row.SentimentLabel,
			)
		}
		tw.AppendRow(r)
	}

	numeric := []int{3, 4, 5, 6}
	configs := make([]table.ColumnConfig, 0, len(numeric))
	for _, n := range numeric {
		configs = append(configs, table.ColumnConfig{
			Number:      n,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
