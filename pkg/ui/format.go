// Package ui renders linker results for people and programs.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output
	FormatAuto Format = iota
	// FormatTerminal renders colored output
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat resolves FormatAuto for the given output
func DetectFormat(output io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	f, ok := output.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
