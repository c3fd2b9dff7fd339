package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Picker chooses a list with a full-screen bubbletea menu. Confirmations
// stay on the line prompter.
type Picker struct {
	Line *Line
	In   io.Reader
	Out  io.Writer

	run func(tea.Model) (tea.Model, error)
}

func NewPicker(in io.Reader, out io.Writer) *Picker {
	line := NewLine(in, out)
	p := &Picker{Line: line, In: in, Out: out}
	p.run = func(m tea.Model) (tea.Model, error) {
		return tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out), tea.WithAltScreen()).Run()
	}
	return p
}

func (p *Picker) ChooseList(lists []string) (string, bool, error) {
	final, err := p.run(newPickerModel(lists))
	if err != nil {
		return "", false, fmt.Errorf("list picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || !m.chosen {
		return "", false, nil
	}
	return m.choice, true, nil
}

func (p *Picker) Confirm(question string) (bool, error) {
	return p.Line.Confirm(question)
}

type pickItem string

func (i pickItem) Title() string       { return string(i) }
func (i pickItem) Description() string { return "" }
func (i pickItem) FilterValue() string { return strings.ToLower(string(i)) }

type pickerModel struct {
	list   list.Model
	choice string
	chosen bool
}

func newPickerModel(lists []string) pickerModel {
	items := make([]list.Item, 0, len(lists))
	for _, name := range lists {
		items = append(items, pickItem(name))
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	h := len(lists) + 6
	if h > 20 {
		h = 20
	}
	l := list.New(items, d, 40, h)
	l.Title = "Add to which list?"
	l.SetShowStatusBar(false)
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height, m.list.Height()))
		return m, nil
	case tea.KeyMsg:
		// While typing a filter, keys belong to the list.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(pickItem); ok {
				m.choice = string(it)
				m.chosen = true
			}
			return m, tea.Quit
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}
