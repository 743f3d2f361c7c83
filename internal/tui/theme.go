// Package tui provides terminal styling and the interactive init wizard.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TermTheme holds all color values for a terminal theme.
type TermTheme struct {
	Name string

	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
}

// DarkTheme is the default dark terminal theme.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       lipgloss.Color("#38bdf8"),
	AccentDim:    lipgloss.Color("#0369a1"),
	Success:      lipgloss.Color("#22c55e"),
	Warning:      lipgloss.Color("#eab308"),
	Error:        lipgloss.Color("#ef4444"),
	Primary:      lipgloss.Color("#e0e0e8"),
	Secondary:    lipgloss.Color("#888888"),
	Dim:          lipgloss.Color("#5a5a70"),
	Border:       lipgloss.Color("#2a2a3a"),
	ActiveBorder: lipgloss.Color("#38bdf8"),
}

// LightTheme is the light terminal theme.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       lipgloss.Color("#0369a1"),
	AccentDim:    lipgloss.Color("#075985"),
	Success:      lipgloss.Color("#15803d"),
	Warning:      lipgloss.Color("#a16207"),
	Error:        lipgloss.Color("#b91c1c"),
	Primary:      lipgloss.Color("#0f172a"),
	Secondary:    lipgloss.Color("#374151"),
	Dim:          lipgloss.Color("#4b5563"),
	Border:       lipgloss.Color("#d1d5db"),
	ActiveBorder: lipgloss.Color("#0369a1"),
}

// DetectTheme returns the appropriate theme based on flag, env, or detection.
func DetectTheme(flagVal string) TermTheme {
	switch strings.ToLower(flagVal) {
	case "dark":
		return DarkTheme
	case "light":
		return LightTheme
	}

	if env := os.Getenv("CONVOY_THEME"); env != "" {
		switch strings.ToLower(env) {
		case "dark":
			return DarkTheme
		case "light":
			return LightTheme
		}
	}

	// COLORFGBG heuristic (format: "fg;bg"); bg 7/15 is a light background
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "15" || bg == "7" {
				return LightTheme
			}
		}
	}

	return DarkTheme
}

// IsTTY reports whether stdout is attached to a terminal. Styled output and
// the wizard are disabled when it is not.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StyleSet contains pre-computed lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyleSet builds the style set for a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	return &StyleSet{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Label:   lipgloss.NewStyle().Foreground(theme.Secondary),
		Value:   lipgloss.NewStyle().Foreground(theme.Primary),
		Dim:     lipgloss.NewStyle().Foreground(theme.Dim),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Accent:  lipgloss.NewStyle().Foreground(theme.Accent),
	}
}
