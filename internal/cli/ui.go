package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/store"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints a run summary on a single line.
func printStats(rawBytes, bytes, budget int, cached bool) {
	var parts []string
	if rawBytes > 0 && rawBytes != bytes {
		parts = append(parts, fmt.Sprintf("%s → %s", formatBytes(rawBytes), formatBytes(bytes)))
	} else {
		parts = append(parts, formatBytes(bytes))
	}
	if budget > 0 {
		parts = append(parts, fmt.Sprintf("budget %s", formatBytes(budget)))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// formatBytes renders a byte count with one decimal kilobyte place above 1 KB.
func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// =============================================================================
// Tables
// =============================================================================

var styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// newTable returns a rounded table in the CLI palette. Rows for which
// dimRow returns true render dimmed.
func newTable(headers []string, rows [][]string, dimRow func(row int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if dimRow != nil && dimRow(row) {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})
}

// stageRows renders an optimization trace.
func stageRows(trace []compliance.StageTrace) [][]string {
	rows := make([][]string, 0, len(trace))
	for _, st := range trace {
		saved := fmt.Sprintf("%d", st.Saved())
		if st.Skipped {
			saved = "skipped"
		}
		rows = append(rows, []string{st.Level, st.Stage, fmt.Sprintf("%d", st.BytesIn), fmt.Sprintf("%d", st.BytesOut), saved})
	}
	return rows
}

// printStageTable prints one row per stage application.
func printStageTable(trace []compliance.StageTrace) {
	if len(trace) == 0 {
		return
	}
	t := newTable([]string{"Level", "Stage", "In", "Out", "Saved"}, stageRows(trace), func(row int) bool {
		return trace[row].Skipped || trace[row].Saved() == 0
	})
	fmt.Println(t.Render())
}

// historyRows renders stored reports.
func historyRows(reports []store.Report) [][]string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		cached := ""
		if r.CacheHit {
			cached = iconCached
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.CreatedAt.Local().Format("Jan 2 15:04"),
			r.Kind,
			r.Source,
			r.Profile,
			formatBytes(r.Bytes),
			r.Status,
			cached,
		})
	}
	return rows
}

// printHistoryTable prints stored reports, cache hits dimmed.
func printHistoryTable(reports []store.Report) {
	t := newTable([]string{"ID", "When", "Kind", "Source", "Profile", "Size", "Status", ""}, historyRows(reports), func(row int) bool {
		return reports[row].CacheHit
	})
	fmt.Println(t.Render())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
