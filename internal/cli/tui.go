package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/svgbudget/pkg/compliance"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StageBrowserModel - Interactive stage-by-stage inspection
// =============================================================================

// StageBrowserModel is the bubbletea model for browsing the stages of one
// optimization run. The list shows every stage; enter opens the diff of
// the selected stage.
type StageBrowserModel struct {
	Result  *compliance.Result
	Changes []stageChange
	Cursor  int
	Height  int
	Offset  int

	// Diff mode
	Viewing bool
	Lines   []string
	Scroll  int
}

// NewStageBrowserModel creates a browser over a snapshot trace of res.
func NewStageBrowserModel(input string, res *compliance.Result) StageBrowserModel {
	return StageBrowserModel{
		Result:  res,
		Changes: stageChanges(input, res.Trace),
		Height:  15,
	}
}

func (m StageBrowserModel) Init() tea.Cmd {
	return nil
}

func (m StageBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Viewing {
			return m.updateDiff(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Changes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Changes) == 0 {
				return m, nil
			}
			m.Viewing = true
			m.Scroll = 0
			m.Lines = diffLines(m.Changes[m.Cursor])
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StageBrowserModel) updateDiff(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "enter", "backspace":
		m.Viewing = false
		m.Lines = nil
	case "up", "k":
		if m.Scroll > 0 {
			m.Scroll--
		}
	case "down", "j":
		if m.Scroll < len(m.Lines)-1 {
			m.Scroll++
		}
	case "pgdown", " ":
		m.Scroll = min(m.Scroll+m.Height, max(len(m.Lines)-1, 0))
	case "pgup":
		m.Scroll = max(m.Scroll-m.Height, 0)
	}
	return m, nil
}

func (m StageBrowserModel) View() string {
	if m.Viewing {
		return m.diffView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Optimization Stages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show diff  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Changes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		st := m.Changes[i].Trace
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		saved := fmt.Sprintf("%d", st.Saved())
		if st.Skipped {
			saved = "skipped"
		}
		rows = append(rows, []string{cursor, st.Level, st.Stage, fmt.Sprintf("%d", st.BytesIn), fmt.Sprintf("%d", st.BytesOut), saved})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Level", "Stage", "In", "Out", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Changes) {
				return lipgloss.NewStyle()
			}
			st := m.Changes[idx].Trace
			unchanged := st.Skipped || st.Saved() == 0
			if idx == m.Cursor {
				if unchanged {
					return listDimStyle.Bold(true)
				}
				return listSelectedStyle
			}
			if unchanged {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Changes))))

	return b.String()
}

func (m StageBrowserModel) summary() string {
	r := m.Result
	status := StyleSuccess.Render(string(r.Status))
	if !r.Compliant() {
		status = StyleWarning.Render(string(r.Status))
	}
	return fmt.Sprintf("  %s %s %s  %s",
		StyleValue.Render(formatBytes(r.RawBytes)),
		StyleDim.Render(iconArrow),
		StyleValue.Render(formatBytes(r.Bytes)),
		status)
}

func (m StageBrowserModel) diffView() string {
	var b strings.Builder
	ch := m.Changes[m.Cursor]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s / %s", ch.Trace.Level, ch.Trace.Stage)))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d → %d bytes", ch.Trace.BytesIn, ch.Trace.BytesOut)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  space page  ⏎ back"))
	b.WriteString("\n\n")

	end := min(m.Scroll+m.Height, len(m.Lines))
	for _, line := range m.Lines[m.Scroll:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// diffLines renders a stage diff split into display lines.
func diffLines(ch stageChange) []string {
	if ch.Before == ch.After {
		msg := "no change"
		if ch.Trace.Skipped {
			msg = "stage skipped: input is not well-formed"
		}
		return []string{listDimStyle.Render(msg)}
	}
	return strings.Split(renderDiff(diffText(ch.Before, ch.After)), "\n")
}
