package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/pipeline"
	"github.com/matzehuels/combview/pkg/render/frame"
)

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestCategoryPickerToggle(t *testing.T) {
	doc, err := layout.Default()
	if err != nil {
		t.Fatal(err)
	}
	var opts pipeline.Options
	m := NewCategoryPickerModel(opts, doc.Counts())
	if len(m.Items) != len(frame.Table)+2 {
		t.Fatalf("items = %d", len(m.Items))
	}

	// Row 0 is the first category in drawing order; the last two rows are
	// the label and cell switches.
	final := press(m, "x", "down", "down", "up", "j", " ", "enter").(CategoryPickerModel)
	if !final.Confirmed {
		t.Fatal("enter did not confirm")
	}
	final.Apply(&opts)

	first := frame.Table[0].Category
	second := frame.Table[1].Category
	third := frame.Table[2].Category
	if opts.Visible(first) {
		t.Errorf("%s still visible", first)
	}
	if opts.Visible(third) {
		t.Errorf("%s still visible", third)
	}
	if !opts.Visible(second) {
		t.Errorf("%s hidden", second)
	}
}

func TestCategoryPickerSwitches(t *testing.T) {
	var opts pipeline.Options
	m := NewCategoryPickerModel(opts, nil)
	keys := make([]string, 0, len(m.Items)+2)
	for range len(m.Items) - 2 {
		keys = append(keys, "down")
	}
	keys = append(keys, "x", "down", "x", "enter")
	final := press(m, keys...).(CategoryPickerModel)
	final.Apply(&opts)

	if opts.Labels() {
		t.Error("labels still on")
	}
	if !opts.Cells() {
		t.Error("cells still off")
	}
}

func TestCategoryPickerQuit(t *testing.T) {
	m := NewCategoryPickerModel(pipeline.Options{}, nil)
	final := press(m, "x", "esc").(CategoryPickerModel)
	if final.Confirmed {
		t.Error("esc confirmed the selection")
	}
}

func TestCategoryPickerView(t *testing.T) {
	doc, err := layout.Default()
	if err != nil {
		t.Fatal(err)
	}
	view := NewCategoryPickerModel(pipeline.Options{}, doc.Counts()).View()
	for _, want := range []string{"Select Layers", string(frame.Accelerometers), itemCells} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
