package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ntbtools/glbcheck/internal/domain"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(accent).
	Padding(0, 4).
	Align(lipgloss.Center).
	Width(40)

// RenderSummary renders the aggregate counts of a multi-file run followed
// by a table of the models that need fixing.
func RenderSummary(s domain.Summary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(boxStyle.Render(titleStyle.Render("VALIDATION SUMMARY")))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Total models: %d\n", s.Total)
	fmt.Fprintf(&b, "  %s\n", passStyle.Render(fmt.Sprintf("✓ Healthy: %d", s.Healthy)))
	fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf("⚠ Warnings only: %d", s.WarningsOnly)))
	fmt.Fprintf(&b, "  %s\n", failStyle.Render(fmt.Sprintf("✗ Errors: %d", s.Errors)))

	if len(s.Failing) > 0 {
		fmt.Fprintf(&b, "\n%s\n", errorTagStyle.Render("Models requiring fixes:"))
		b.WriteString(failingTable(s.Failing))
	}

	return b.String()
}

func failingTable(failing []domain.FailingFile) string {
	var out strings.Builder
	table := tablewriter.NewWriter(&out)
	table.Header([]string{"Model", "Errors", "Path"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, f := range failing {
		data = append(data, []string{
			f.FileName,
			strconv.Itoa(f.ErrorCount) + " " + plural(f.ErrorCount, "error"),
			f.FilePath,
		})
	}

	// A failed render only loses the table; the counts above still stand.
	if err := table.Bulk(data); err != nil {
		return fallbackList(failing)
	}
	if err := table.Render(); err != nil {
		return fallbackList(failing)
	}
	return out.String()
}

func fallbackList(failing []domain.FailingFile) string {
	var b strings.Builder
	for _, f := range failing {
		fmt.Fprintf(&b, "  • %s (%d %s)\n", f.FileName, f.ErrorCount, plural(f.ErrorCount, "error"))
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// RenderHistory formats recorded validation runs for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		if e.Dirty {
			hash += "*"
		}

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		counts := fmt.Sprintf("%s %s %s",
			passStyle.Render(fmt.Sprintf("%d ok", e.Healthy)),
			warnStyle.Render(fmt.Sprintf("%d warn", e.WarningsOnly)),
			failStyle.Render(fmt.Sprintf("%d err", e.Errors)),
		)
		line := fmt.Sprintf("  %s  %s  %d models  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			e.Total,
			counts,
		)

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
