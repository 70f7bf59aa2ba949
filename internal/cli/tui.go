package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/pipeline"
	"github.com/matzehuels/combview/pkg/render/frame"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CategoryPickerModel - Interactive layer selection
// =============================================================================

// pickerItem is one row of the picker: a category, or one of the two
// overlay switches.
type pickerItem struct {
	label    string
	category frame.Category
	count    int
	on       bool
}

const (
	itemNames = "display names"
	itemCells = "cell grid"
)

// CategoryPickerModel is the bubbletea model that toggles the layers drawn
// by the render command.
type CategoryPickerModel struct {
	Items     []pickerItem
	Cursor    int
	Confirmed bool
}

// NewCategoryPickerModel creates a picker seeded from opts. counts gives
// the number of entities per layout section and may be nil.
func NewCategoryPickerModel(opts pipeline.Options, counts map[string]int) CategoryPickerModel {
	var items []pickerItem
	for _, s := range frame.Table {
		items = append(items, pickerItem{
			label:    string(s.Category),
			category: s.Category,
			count:    counts[s.Section],
			on:       opts.Visible(s.Category),
		})
	}
	items = append(items,
		pickerItem{label: itemNames, count: -1, on: opts.Labels()},
		pickerItem{label: itemCells, count: -1, on: opts.Cells()},
	)
	return CategoryPickerModel{Items: items}
}

func (m CategoryPickerModel) Init() tea.Cmd {
	return nil
}

func (m CategoryPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case " ", "x":
			items := append([]pickerItem(nil), m.Items...)
			items[m.Cursor].on = !items[m.Cursor].on
			m.Items = items
		case "a":
			items := append([]pickerItem(nil), m.Items...)
			for i := range items {
				if items[i].category != "" {
					items[i].on = true
				}
			}
			m.Items = items
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m CategoryPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ render  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Items))
	for i, it := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if it.on {
			mark = "[x]"
		}
		count := ""
		if it.count >= 0 {
			count = fmt.Sprint(it.count)
		}
		rows[i] = []string{cursor, mark, it.label, count}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Layer", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			switch {
			case row == m.Cursor:
				return listSelectedStyle
			case !m.Items[row].on:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// Apply writes the picked toggles into opts.
func (m CategoryPickerModel) Apply(opts *pipeline.Options) {
	for _, it := range m.Items {
		switch {
		case it.category != "":
			opts.SetVisible(it.category, it.on)
		case it.label == itemNames:
			opts.DisplayNames = pipeline.Bool(it.on)
		case it.label == itemCells:
			opts.ShowCells = pipeline.Bool(it.on)
		}
	}
}

// pickCategories runs the picker and applies the result to opts. It
// reports false when the user quit without confirming.
func pickCategories(opts *pipeline.Options, doc *layout.Document) (bool, error) {
	var counts map[string]int
	if doc != nil {
		counts = doc.Counts()
	}
	final, err := tea.NewProgram(NewCategoryPickerModel(*opts, counts)).Run()
	if err != nil {
		return false, err
	}
	m := final.(CategoryPickerModel)
	if !m.Confirmed {
		return false, nil
	}
	m.Apply(opts)
	return true, nil
}
