package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// separator matches the fixed-width banner the tool responses are framed
// with.
func separator() string {
	return strings.Repeat("=", 50)
}
