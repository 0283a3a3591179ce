package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the schedule viewer. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Talk level badges.
	LevelBeginner     lipgloss.Color
	LevelIntermediate lipgloss.Color
	LevelAdvanced     lipgloss.Color

	// Day tabs and filter chips.
	TabActiveForeground lipgloss.Color
	ChipForeground      lipgloss.Color
	ChipBackground      lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color

	// Loading spinner and the failed-to-load banner.
	SpinnerColor lipgloss.Color
	ErrorColor   lipgloss.Color
}

// LevelColor returns the badge color for a talk level string.
// Unknown levels render with FaintText.
func (theme Theme) LevelColor(level string) lipgloss.Color {
	switch level {
	case "beginner":
		return theme.LevelBeginner
	case "intermediate":
		return theme.LevelIntermediate
	case "advanced":
		return theme.LevelAdvanced
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	LevelBeginner:     lipgloss.Color("114"), // green
	LevelIntermediate: lipgloss.Color("220"), // amber
	LevelAdvanced:     lipgloss.Color("196"), // red

	TabActiveForeground: lipgloss.Color("255"),
	ChipForeground:      lipgloss.Color("252"),
	ChipBackground:      lipgloss.Color("237"),

	HeaderForeground: lipgloss.Color("255"),
	HelpText:         lipgloss.Color("241"),

	SpinnerColor: lipgloss.Color("75"),
	ErrorColor:   lipgloss.Color("196"),
}
