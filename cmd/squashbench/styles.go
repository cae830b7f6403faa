package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"squashbench/internal/benchmark"
)

var (
	regressionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	improvementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	unchangedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func configureColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func renderStatus(s benchmark.Status) string {
	switch s {
	case benchmark.StatusRegression:
		return regressionStyle.Render("SLOWER")
	case benchmark.StatusImprovement:
		return improvementStyle.Render("FASTER")
	default:
		return unchangedStyle.Render("SAME")
	}
}
