// Package stepview renders one guide page for the terminal.
package stepview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/webtoapk/details"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/param"
	"github.com/getsavvyinc/webtoapk/theme"
)

const CopiedCommand = "command"

// ActionKey identifies action i of a page in State.Copied.
func ActionKey(i int) string {
	return fmt.Sprintf("action:%d", i)
}

// State is the interactive part of a page.
type State struct {
	Index int
	Total int
	// Focus is the index of the focused action in Groups.Flatten order, or -1.
	Focus  int
	Copied string
}

var (
	counterStyle  = lipgloss.NewStyle().Foreground(theme.Muted)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	osStyle       = lipgloss.NewStyle().Foreground(theme.Subtle).Italic(true)
	noticeStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Accent).Padding(0, 1)
	commandStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(theme.Muted).Padding(0, 1)
	hintStyle     = lipgloss.NewStyle().Foreground(theme.Muted)
	copiedStyle   = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	stageStyle    = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).MarginTop(1)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Muted)
	focusedStyle  = buttonStyle.Copy().BorderForeground(theme.Accent).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(theme.Subtle).PaddingLeft(2)
	shellStyle    = lipgloss.NewStyle().Italic(true).Foreground(theme.Subtle)
	paragraphWrap = lipgloss.NewStyle()
)

type Renderer struct {
	width int
	md    *glamour.TermRenderer
	cache map[string]string
}

func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	r := &Renderer{width: width, cache: map[string]string{}}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		r.md = md
	}
	return r
}

func (r *Renderer) Width() int { return r.width }

// Markdown renders text with glamour, falling back to the raw text.
func (r *Renderer) Markdown(text string) string {
	if text == "" {
		return ""
	}
	if out, ok := r.cache[text]; ok {
		return out
	}
	out := text
	if r.md != nil {
		if rendered, err := r.md.Render(text); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	r.cache[text] = out
	return out
}

func (r *Renderer) Render(p guide.Page, st State) string {
	var sections []string

	header := titleStyle.Render(p.Title)
	if st.Total > 0 {
		header = counterStyle.Render(fmt.Sprintf("Step %d of %d", st.Index+1, st.Total)) + "\n" + header
	}
	sections = append(sections, header)

	if p.OSSpecific && !p.NeedsOS {
		sections = append(sections, osStyle.Render("Instructions for "+p.OS.Label()+" (o to switch)"))
	}

	if p.NeedsOS {
		sections = append(sections, r.Markdown(p.Explanation))
		sections = append(sections, noticeStyle.Render(
			"These instructions depend on your operating system.\nPress o to pick macOS / Linux or Windows."))
		return strings.Join(nonEmpty(sections), "\n\n")
	}

	sections = append(sections, r.Markdown(p.Explanation))

	if p.Command != "" {
		hint := hintStyle.Render("c copy")
		if st.Copied == CopiedCommand {
			hint = copiedStyle.Render("✓ Copied!")
		}
		if ph := placeholderHint(p.Command); ph != "" {
			hint += "  " + ph
		}
		sections = append(sections, commandStyle.Render(p.Command)+"\n"+hint)
	}

	if len(p.Details) > 0 {
		sections = append(sections, r.details(p.Details))
	}

	if len(p.Groups) > 0 {
		sections = append(sections, r.actions(p.Groups, st))
	}

	return strings.Join(nonEmpty(sections), "\n\n")
}

func (r *Renderer) details(blocks []details.Block) string {
	wrap := paragraphWrap.Copy().Width(r.width)
	var lines []string
	for _, b := range blocks {
		switch b.Kind {
		case details.Header:
			lines = append(lines, "", headerStyle.Render(b.Text))
		case details.NumberedItem:
			lines = append(lines, wrap.Render(b.Marker+". "+b.Text))
		case details.LetteredItem:
			lines = append(lines, wrap.Copy().PaddingLeft(4).Render(b.Marker+". "+b.Text))
		default:
			lines = append(lines, wrap.Render(b.Text))
		}
	}
	return sectionStyle.Render("Details") + "\n" + strings.TrimLeft(strings.Join(lines, "\n"), "\n")
}

func (r *Renderer) actions(groups guide.Groups, st State) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Actions"))

	staged := groups.Staged()
	seen := map[guide.Stage]bool{}
	i := 0
	for _, g := range groups {
		if staged && g.Stage != guide.StageDefault && !seen[g.Stage] {
			seen[g.Stage] = true
			b.WriteString("\n" + stageStyle.Render(g.Stage.Title()))
			if d := g.Stage.Description(); d != "" {
				b.WriteString("\n" + hintStyle.Render(d))
			}
		}
		if g.Shell != guide.ShellAny {
			b.WriteString("\n" + shellStyle.Render(g.Shell.Label()))
		}
		for _, a := range g.Actions {
			b.WriteString("\n" + r.button(a, i, st))
			i++
		}
	}
	b.WriteString("\n" + hintStyle.Render("tab select • enter run"))
	return b.String()
}

func (r *Renderer) button(a guide.Action, i int, st State) string {
	style := buttonStyle
	if st.Focus == i {
		style = focusedStyle
	}

	label := a.Label
	if a.Kind == guide.ActionLink {
		label += " ↗"
	}
	btn := style.Render(label)

	if st.Copied == ActionKey(i) {
		btn = lipgloss.JoinHorizontal(lipgloss.Center, btn, " ", copiedStyle.Render("✓ Copied!"))
	}

	value := a.Value
	if a.Kind == guide.ActionCommand {
		value = strings.TrimSpace(value)
	}
	out := btn + "\n" + valueStyle.Render(value)
	if a.Kind == guide.ActionCommand {
		if ph := placeholderHint(value); ph != "" {
			out += "\n" + hintStyle.Render(ph)
		}
	}
	return out
}

func placeholderHint(command string) string {
	params := param.Extract(command)
	if len(params) == 0 {
		return ""
	}
	return "replace " + strings.Join(params, ", ") + " with your own value"
}

func nonEmpty(ss []string) []string {
	var res []string
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			res = append(res, s)
		}
	}
	return res
}
