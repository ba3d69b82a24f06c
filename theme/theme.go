package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	light = catppuccin.Latte
	dark  = catppuccin.Mocha

	Accent  = lipgloss.AdaptiveColor{Light: light.Teal().Hex, Dark: dark.Teal().Hex}
	Success = lipgloss.AdaptiveColor{Light: "#02CF92", Dark: "#02A877"}
	Muted   = lipgloss.AdaptiveColor{Light: light.Overlay1().Hex, Dark: dark.Overlay1().Hex}
	Subtle  = lipgloss.AdaptiveColor{Light: light.Subtext0().Hex, Dark: dark.Subtext0().Hex}
	Error   = lipgloss.AdaptiveColor{Light: light.Red().Hex, Dark: dark.Red().Hex}
)

// New is the huh theme used by every form.
func New() *huh.Theme {
	t := huh.ThemeDracula()

	f := &t.Focused
	f.SelectedPrefix = lipgloss.NewStyle().Foreground(Success).SetString("✓ ")
	f.UnselectedPrefix = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "243"}).SetString("• ")
	f.Title = f.Title.Foreground(Accent)

	t.Help.Ellipsis.Foreground(Subtle)
	t.Help.ShortKey.Foreground(Subtle)
	t.Help.ShortDesc.Foreground(Muted)
	t.Help.ShortSeparator.Foreground(Subtle)
	t.Help.FullKey.Foreground(Subtle)
	t.Help.FullDesc.Foreground(Muted)
	t.Help.FullSeparator.Foreground(Subtle)

	return t
}
