// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette entries adapt to the terminal background.
var (
	colorTitle   = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorPath    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
)

var (
	// TitleStyle renders section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	// SubtitleStyle renders hints and placeholders such as "(not set)".
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle renders completed actions and configured values.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	// ErrorStyle renders the "Error:" prefix.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	// WarningStyle renders notices that need no action.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	// CmdStyle renders paths, keys and commands.
	CmdStyle = lipgloss.NewStyle().Foreground(colorPath)
)
