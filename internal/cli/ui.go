package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pawfetch/pkg/card"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorPink   = lipgloss.Color("205") // Pink - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, download
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorPink)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Card Palettes
// =============================================================================

// palette is one of the two card color schemes.
type palette struct {
	border lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	faint  lipgloss.Color
	accent lipgloss.Color
	action lipgloss.Color

	// fade runs from barely visible to fully visible; the image panel
	// steps through it after every image change.
	fade []lipgloss.Color
}

var (
	lightPalette = palette{
		border: lipgloss.Color("183"),
		text:   lipgloss.Color("234"),
		muted:  lipgloss.Color("238"),
		faint:  lipgloss.Color("243"),
		accent: lipgloss.Color("163"),
		action: lipgloss.Color("28"),
		fade:   []lipgloss.Color{"254", "250", "246", "242", "238", "234"},
	}
	darkPalette = palette{
		border: lipgloss.Color("60"),
		text:   lipgloss.Color("255"),
		muted:  lipgloss.Color("252"),
		faint:  lipgloss.Color("246"),
		accent: lipgloss.Color("205"),
		action: lipgloss.Color("42"),
		fade:   []lipgloss.Color{"234", "238", "242", "246", "250", "255"},
	}
)

// paletteFor returns the palette selected by theme.
func paletteFor(t card.Theme) palette {
	if t.IsDark() {
		return darkPalette
	}
	return lightPalette
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}
