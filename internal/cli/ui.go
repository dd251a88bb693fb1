package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette shared by the status output and the edit TUI.
var (
	colorAccent  = lipgloss.Color("36")
	colorSuccess = lipgloss.Color("35")
	colorWarning = lipgloss.Color("220")
	colorError   = lipgloss.Color("167")
	colorLink    = lipgloss.Color("75")
	colorBright  = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

// Styles shared with the edit TUI.
var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarning)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)
)

var (
	styleValue       = lipgloss.NewStyle().Foreground(colorBright)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached      = lipgloss.NewStyle().Foreground(colorSuccess)
	styleComputed    = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusLine prints msg behind an icon rendered in the given color.
func statusLine(icon string, color lipgloss.Color, msg string) {
	fmt.Println(lipgloss.NewStyle().Foreground(color).Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	statusLine("✓", colorSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	statusLine("✗", colorError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusLine("!", colorWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusLine("›", colorMuted, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value with the label padded to a
// fixed column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints one summary line for a pipeline run: the counts
// that are known plus whether the result came from cache.
func printStats(eventCount, primitiveCount int, cached bool) {
	var parts []string
	if eventCount > 0 {
		parts = append(parts, fmt.Sprintf("%d events", eventCount))
	}
	if primitiveCount > 0 {
		parts = append(parts, fmt.Sprintf("%d primitives", primitiveCount))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printNextStep suggests the command that usually follows.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printInline prints dim text without a trailing newline.
func printInline(format string, args ...any) {
	fmt.Print(StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printNewline() {
	fmt.Println()
}
