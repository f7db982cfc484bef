package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// output is where command results are printed
var output io.Writer = os.Stdout

func printTagged(color, glyph, format string, a ...interface{}) {
	fmt.Fprintf(output, "%s%s %s%s\n", color, glyph, fmt.Sprintf(format, a...), colorReset)
}

func PrintInfo(format string, a ...interface{})    { printTagged(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { printTagged(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { printTagged(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { printTagged(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Fprintf(output, "\n%s=== %s ===%s\n", colorYellow, title, colorReset)
}
