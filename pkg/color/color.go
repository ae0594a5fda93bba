package color

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

var (
	colorEnabled = true
	profile      = termenv.ANSI256
)

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

func IsColorEnabled() bool {
	return colorEnabled
}

// SetProfile selects the termenv color profile used for styling
func SetProfile(p termenv.Profile) {
	profile = p
}

func Colorize(c termenv.Color, text string) string {
	if !colorEnabled || profile == termenv.Ascii {
		return text
	}
	return profile.String(text).Foreground(profile.Convert(c)).String()
}

func RedText(text string) string {
	return Colorize(termenv.ANSIRed, text)
}

func BrightRedText(text string) string {
	return Colorize(termenv.ANSIBrightRed, text)
}

func GreenText(text string) string {
	return Colorize(termenv.ANSIGreen, text)
}

func YellowText(text string) string {
	return Colorize(termenv.ANSIYellow, text)
}

func BlueText(text string) string {
	return Colorize(termenv.ANSIBlue, text)
}

func CyanText(text string) string {
	return Colorize(termenv.ANSICyan, text)
}

func GrayText(text string) string {
	return Colorize(termenv.ANSIBrightBlack, text)
}

func BoldText(text string) string {
	if !colorEnabled || profile == termenv.Ascii {
		return text
	}
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	if !colorEnabled {
		return "Error: " + message
	}
	return BrightRedText(BoldText("Error: ")) + message
}

func Line(line int) string {
	pos := fmt.Sprintf("line %d", line)
	if !colorEnabled {
		return pos
	}
	return YellowText(pos)
}
