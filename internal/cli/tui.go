package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/eventline/pkg/io"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// editorColumn indexes the editable fields in display order.
const (
	editorColName = iota
	editorColDate
	editorColPosition
	editorColCount
)

// =============================================================================
// EditorModel - Interactive events table editor
// =============================================================================

// EditorModel is the bubbletea model for the events CSV editor.
// Navigation moves a cell cursor over the records; enter switches into a
// line-edit mode for the current cell. Records are held in memory until
// saved with "s".
type EditorModel struct {
	Path    string
	Records []timeline.Record
	Cursor  int
	Col     int
	Height  int
	Offset  int

	// Saved reports whether the last save succeeded; Dirty reports
	// unsaved edits at quit time.
	Saved bool
	Dirty bool

	editing bool
	input   string
	status  string
}

// NewEditorModel creates an editor model over the given records.
func NewEditorModel(path string, records []timeline.Record) EditorModel {
	return EditorModel{
		Path:    path,
		Records: records,
		Cursor:  0,
		Col:     editorColName,
		Height:  15,
		Offset:  0,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNavigation(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// updateNavigation handles keys in navigation mode.
func (m EditorModel) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		if m.Cursor < len(m.Records)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "left", "h":
		if m.Col > 0 {
			m.Col--
		}
	case "right", "l":
		if m.Col < editorColCount-1 {
			m.Col++
		}
	case "enter", "e":
		if len(m.Records) == 0 {
			break
		}
		m.editing = true
		m.input = m.cell(m.Cursor, m.Col)
		m.status = ""
	case "a":
		m.Records = append(m.Records, timeline.Record{})
		m.Cursor = len(m.Records) - 1
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
		m.Col = editorColName
		m.Dirty = true
		m.editing = true
		m.input = ""
		m.status = ""
	case "d":
		if len(m.Records) == 0 {
			break
		}
		m.Records = append(m.Records[:m.Cursor], m.Records[m.Cursor+1:]...)
		if m.Cursor >= len(m.Records) && m.Cursor > 0 {
			m.Cursor--
		}
		if m.Offset > 0 && m.Offset > len(m.Records)-1 {
			m.Offset--
		}
		m.Dirty = true
		m.status = ""
	case "p", " ":
		if len(m.Records) == 0 {
			break
		}
		m.Records[m.Cursor].Position = cyclePosition(m.Records[m.Cursor].Position)
		m.Dirty = true
		m.status = ""
	case "s":
		if err := io.ExportCSV(m.Records, m.Path); err != nil {
			m.status = "save failed: " + err.Error()
			break
		}
		m.Saved = true
		m.Dirty = false
		m.status = fmt.Sprintf("saved %d events to %s", len(m.Records), m.Path)
	}
	return m, nil
}

// updateEditing handles keys while a cell is being edited.
func (m EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyEnter:
		if m.Col == editorColPosition {
			pos := strings.ToLower(strings.TrimSpace(m.input))
			if pos != "" && pos != timeline.PositionAbove && pos != timeline.PositionBelow {
				m.status = "position must be empty, above, or below"
				return m, nil
			}
			m.input = pos
		}
		m.setCell(m.Cursor, m.Col, m.input)
		m.editing = false
		m.input = ""
		m.Dirty = true
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// cell returns the value of one record field by column index.
func (m EditorModel) cell(row, col int) string {
	r := m.Records[row]
	switch col {
	case editorColDate:
		return r.Date
	case editorColPosition:
		return r.Position
	default:
		return r.Name
	}
}

// setCell writes a value into one record field by column index.
func (m *EditorModel) setCell(row, col int, value string) {
	switch col {
	case editorColDate:
		m.Records[row].Date = value
	case editorColPosition:
		m.Records[row].Position = value
	default:
		m.Records[row].Name = value
	}
}

// cyclePosition steps a placement through auto, above, below.
func cyclePosition(pos string) string {
	switch pos {
	case "":
		return timeline.PositionAbove
	case timeline.PositionAbove:
		return timeline.PositionBelow
	default:
		return ""
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit Events"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Path))
	b.WriteString("\n")
	if m.editing {
		b.WriteString(listDimStyle.Render("type to edit  ⏎ confirm  esc cancel"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓/←/→ navigate  ⏎ edit  a add  d delete  p placement  s save  q quit"))
	}
	b.WriteString("\n\n")

	if len(m.Records) == 0 {
		b.WriteString(listDimStyle.Render("  no events yet, press a to add one"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))
	if m.Dirty {
		b.WriteString(StyleWarning.Render("  ● unsaved"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + m.status))
	}

	return b.String()
}

// renderTable draws the visible window of records as a table.
func (m EditorModel) renderTable() string {
	end := m.Offset + m.Height
	if end > len(m.Records) {
		end = len(m.Records)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name, date, pos := r.Name, r.Date, r.Position
		if m.editing && i == m.Cursor {
			caret := m.input + "▌"
			switch m.Col {
			case editorColDate:
				date = caret
			case editorColPosition:
				pos = caret
			default:
				name = caret
			}
		}
		if pos == "" {
			pos = "auto"
		}

		rows = append(rows, []string{cursor, name, date, pos})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Name", "Date", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Records) {
				return lipgloss.NewStyle()
			}
			isCurrentRow := actualIdx == m.Cursor
			isCurrentCell := isCurrentRow && col == m.Col+1

			if isCurrentCell {
				return listSelectedStyle
			}
			if isCurrentRow {
				return listNormalStyle
			}
			return listDimStyle
		})

	return t.Render()
}
