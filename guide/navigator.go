package guide

import (
	"strings"

	"github.com/getsavvyinc/webtoapk/details"
)

// Page is a step resolved for display on a given OS.
type Page struct {
	Title       string
	Explanation string
	Command     string
	Details     []details.Block
	Groups      Groups

	OS OS
	// OSSpecific is set for OSBranching steps.
	OSSpecific bool
	// NeedsOS is set when the step is OS specific and no OS is chosen yet.
	NeedsOS bool
}

// Page resolves s for os.
func (s Step) Page(os OS) Page {
	p := Page{
		Title:       s.Title,
		Explanation: s.Explanation,
		OS:          os,
	}

	if b, ok := s.Branching(); ok {
		p.OSSpecific = true
		c, ok := b.For(os)
		if !ok {
			p.NeedsOS = true
			return p
		}
		p.Explanation = joinParagraphs(s.Explanation, c.Explanation)
		p.Details = details.Parse(c.Details)
		p.Groups = GroupActions(c.Actions)
		return p
	}

	f, _ := s.Flat()
	p.Command = strings.TrimSpace(f.Command)
	p.Details = details.Parse(f.Details)
	p.Groups = GroupActions(f.Actions)
	return p
}

func joinParagraphs(ps ...string) string {
	var nonEmpty []string
	for _, p := range ps {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// Navigator pages through a guide. The zero value is an empty guide.
type Navigator struct {
	steps []Step
	index int
	os    OS
}

func NewNavigator(steps []Step, os OS) *Navigator {
	return &Navigator{steps: steps, os: os}
}

func (n *Navigator) Len() int   { return len(n.steps) }
func (n *Navigator) Index() int { return n.index }
func (n *Navigator) OS() OS     { return n.os }

func (n *Navigator) Steps() []Step {
	return n.steps
}

func (n *Navigator) Current() (Step, bool) {
	if n.index < 0 || n.index >= len(n.steps) {
		return Step{}, false
	}
	return n.steps[n.index], true
}

func (n *Navigator) IsFirst() bool { return n.index == 0 }
func (n *Navigator) IsLast() bool  { return n.index >= len(n.steps)-1 }

// Next moves forward and reports whether it moved.
func (n *Navigator) Next() bool {
	if n.IsLast() {
		return false
	}
	n.index++
	return true
}

// Prev moves back and reports whether it moved.
func (n *Navigator) Prev() bool {
	if n.IsFirst() {
		return false
	}
	n.index--
	return true
}

// Jump moves to step i. Out of range indexes are ignored.
func (n *Navigator) Jump(i int) bool {
	if i < 0 || i >= len(n.steps) {
		return false
	}
	n.index = i
	return true
}

func (n *Navigator) SetOS(os OS) {
	n.os = os
}

func (n *Navigator) ToggleOS() OS {
	n.os = n.os.Other()
	return n.os
}

// Page resolves the current step. ok is false for an empty guide.
func (n *Navigator) Page() (Page, bool) {
	s, ok := n.Current()
	if !ok {
		return Page{}, false
	}
	return s.Page(n.os), true
}
