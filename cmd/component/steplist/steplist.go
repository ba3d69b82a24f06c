// Package steplist is a filterable list of guide steps to jump between.
package steplist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/slice"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type Item struct {
	Index           int
	TitleText       string
	DescriptionText string
}

var _ list.DefaultItem = Item{}

func (i Item) Title() string       { return fmt.Sprintf("%d. %s", i.Index+1, i.TitleText) }
func (i Item) Description() string { return i.DescriptionText }
func (i Item) FilterValue() string {
	return strings.Join([]string{i.TitleText, i.DescriptionText}, " ")
}

// SelectedMsg is sent when a step is picked.
type SelectedMsg struct {
	Index int
}

// ClosedMsg is sent when the list is dismissed without a pick.
type ClosedMsg struct{}

var closeBinding = key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc/s", "back"))

type Model struct {
	list list.Model
}

func toItem(i int, s guide.Step) Item {
	desc := s.Explanation
	if s.IsOSSpecific() {
		desc = "(depends on your OS) " + desc
	}
	return Item{Index: i, TitleText: s.Title, DescriptionText: desc}
}

func New(steps []guide.Step, current int) Model {
	indexed := make([]int, len(steps))
	for i := range indexed {
		indexed[i] = i
	}
	items := slice.Map(indexed, func(i int) list.Item {
		return toItem(i, steps[i])
	})

	m := Model{
		list: list.New(items, list.NewDefaultDelegate(), 0, 0),
	}
	m.list.Title = "Steps"
	m.list.Select(current)
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{closeBinding}
	}
	m.list.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{closeBinding}
	}
	return m
}

func (m *Model) SetSize(width, height int) {
	// pagination changes with the size, keep the selection
	idx := m.list.Index()
	h, v := docStyle.GetFrameSize()
	m.list.SetSize(width-h, height-v)
	m.list.Select(idx)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case msg.String() == "enter":
			item, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectedMsg{Index: item.Index} }
		case key.Matches(msg, closeBinding) && m.list.FilterState() == list.Unfiltered:
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return docStyle.Render(m.list.View())
}
