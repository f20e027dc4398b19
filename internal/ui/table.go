package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"hlsx/internal/hls"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("10"))
)

var qualityHeaders = []string{"#", "QUALITY", "BANDWIDTH", "RESOLUTION", "CODECS", "URL"}

func qualityRows(qualities []hls.StreamQuality) [][]string {
	rows := make([][]string, 0, len(qualities))
	for i, q := range qualities {
		bandwidth := "-"
		if q.Bandwidth > 0 {
			bandwidth = fmt.Sprintf("%d", q.Bandwidth)
		}
		resolution := q.Resolution
		if resolution == "" {
			resolution = "-"
		}
		codecs := q.Codecs
		if codecs == "" {
			codecs = "-"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), q.Title, bandwidth, resolution, codecs, q.URL})
	}
	return rows
}

// RenderQualities formats a quality list for display. Styled output draws a
// bordered table; plain output is tab-separated for pipes.
func RenderQualities(qualities []hls.StreamQuality, styled bool) string {
	rows := qualityRows(qualities)

	if !styled {
		var b strings.Builder
		b.WriteString(strings.Join(qualityHeaders, "\t") + "\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t") + "\n")
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(qualityHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(qualities) && strings.HasSuffix(qualities[row].Title, hls.BestMarker):
				return bestStyle
			default:
				return cellStyle
			}
		})

	return t.String() + "\n"
}
