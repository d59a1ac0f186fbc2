package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"classdraw/pkg/layout"
	"classdraw/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command: an interactive class browser
// over a parsed document.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file.uml>",
		Short: "Browse the classes of a diagram interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			if len(d.Classes) == 0 {
				printInfo("No classes in %s", args[0])
				return nil
			}
			_, err = tea.NewProgram(NewClassListModel(d)).Run()
			return err
		},
	}
}

// =============================================================================
// ClassListModel - Interactive class browser
// =============================================================================

// ClassListModel is the bubbletea model for browsing diagram classes.
// The list view shows per-class counts; enter opens a detail view with
// the class body, esc returns to the list.
type ClassListModel struct {
	Diagram model.Diagram
	Cursor  int
	Detail  bool
	Height  int
	Offset  int
}

// NewClassListModel creates a new class browser model.
func NewClassListModel(d model.Diagram) ClassListModel {
	return ClassListModel{Diagram: d, Height: 15}
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Diagram.Classes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = true
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ClassListModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m ClassListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Classes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Diagram.Classes) {
		end = len(m.Diagram.Classes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Diagram.Classes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			c.Name,
			fmt.Sprintf("%d", len(c.Attributes)),
			fmt.Sprintf("%d", len(c.Operations)),
			fmt.Sprintf("%d", len(c.Notes)),
			connectionSummary(c),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Attrs", "Ops", "Notes", "Connections").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Diagram.Classes))))

	return b.String()
}

func (m ClassListModel) detailView() string {
	c := m.Diagram.Classes[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, line := range layout.BodyLines(c) {
		if line == "--" {
			b.WriteString(listDimStyle.Render("  " + strings.Repeat("─", 24)))
		} else {
			b.WriteString("  " + StyleValue.Render(line))
		}
		b.WriteString("\n")
	}
	for _, conn := range c.Connections {
		if conn.Target == "" {
			continue
		}
		b.WriteString("  " + StyleDim.Render(iconArrow) + " " +
			StyleValue.Render(fmt.Sprintf("%s (%s)", conn.Target, conn.Relation)))
		b.WriteString("\n")
	}

	return b.String()
}

func connectionSummary(c model.ClassBox) string {
	if len(c.Connections) == 0 {
		return "—"
	}
	targets := make([]string, 0, len(c.Connections))
	for _, conn := range c.Connections {
		if conn.Target != "" {
			targets = append(targets, conn.Target)
		}
	}
	if len(targets) == 0 {
		return "—"
	}
	return strings.Join(targets, ", ")
}
