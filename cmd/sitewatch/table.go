package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sitewatch/internal/compare"
	"sitewatch/internal/models"
	"sitewatch/internal/storage"
)

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func renderSummary(mode models.Mode, s models.Summary) string {
	rows := [][]string{
		{"Segments", fmt.Sprintf("%d", s.TotalSegments)},
		{"Productive", fmt.Sprintf("%.1f%%", s.Productivity.ProductivePct)},
		{"Transitional", fmt.Sprintf("%.1f%%", s.Productivity.TransitionalPct)},
		{"Idle", fmt.Sprintf("%.1f%%", s.Productivity.IdlePct)},
		{"Unique hazards", fmt.Sprintf("%d", len(s.UniqueHazards))},
		{"Risk levels", strings.Join(s.RiskLevelsSeen, ", ")},
		{"Idle stretches", fmt.Sprintf("%d", len(s.IdleStretches))},
	}

	activities := make([]string, 0, len(s.ActivityDistribution))
	for act := range s.ActivityDistribution {
		activities = append(activities, act)
	}
	sort.Strings(activities)
	for _, act := range activities {
		rows = append(rows, []string{"Activity: " + act, fmt.Sprintf("%d", s.ActivityDistribution[act])})
	}

	return renderTable([]string{string(mode), "Value"}, rows)
}

func renderComparison(report compare.Report) string {
	var b strings.Builder
	for _, mode := range models.Modes() {
		s, ok := report.Modes[mode]
		if !ok {
			continue
		}
		b.WriteString(renderSummary(mode, s))
		b.WriteString("\n")
	}

	rows := make([][]string, 0, len(report.SideBySide))
	for _, entry := range report.SideBySide {
		row := []string{fmt.Sprintf("%d", entry.Chunk)}
		for _, mode := range models.Modes() {
			cell := entry.Modes[mode]
			if mode == models.ModeNaive {
				row = append(row, truncateCell(cell.RawExcerpt, 40))
				continue
			}
			row = append(row, fmt.Sprintf("%s [%s] %s", cell.Activity, cell.Productivity, cell.RiskLevel))
		}
		rows = append(rows, row)
	}
	b.WriteString(renderTable([]string{"Chunk", "naive", "structured", "memory"}, rows))
	return b.String()
}

func renderMatches(matches []storage.SegmentMatch) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		content := truncateCell(m.Content, 60)
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ChunkIndex),
			m.TimestampRange,
			m.Activity,
			fmt.Sprintf("%.3f", m.Similarity),
			content,
		})
	}
	return renderTable([]string{"Chunk", "Timestamp", "Activity", "Similarity", "Content"}, rows)
}

// truncateCell shortens a cell to at most n runes, marking the cut with an
// ellipsis. Counting runes keeps multibyte characters intact.
func truncateCell(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
