package ui

import "os"

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// styled is false when NO_COLOR is set (https://no-color.org)
var styled = os.Getenv("NO_COLOR") == ""

func paint(style, s string) string {
	if !styled {
		return s
	}
	return style + s + ColorReset
}

// Bold renders s in bold
func Bold(s string) string {
	return paint(ColorBold, s)
}

// Success renders s in green
func Success(s string) string {
	return paint(ColorGreen, s)
}

// Info renders s as dimmed secondary text
func Info(s string) string {
	return paint(ColorDim+ColorYellow, s)
}

// Warn renders s in yellow
func Warn(s string) string {
	return paint(ColorYellow, s)
}

func Error(s string) string {
	return paint(ColorRed, s)
}
