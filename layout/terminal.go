package layout

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// fallbackWidth is assumed when no terminal geometry can be detected,
// e.g. when stdout is a pipe and COLUMNS is unset.
const fallbackWidth = 120

// TerminalInfo reports terminal geometry. The production implementation
// probes stdout; tests substitute a fixed value.
type TerminalInfo interface {
	// Width returns the terminal column count, ok=false when it cannot
	// be determined.
	Width() (int, bool)
}

// StdoutTerminal probes the real terminal attached to stdout, falling
// back to the COLUMNS environment variable.
type StdoutTerminal struct{}

func (StdoutTerminal) Width() (int, bool) {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w, true
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			return w, true
		}
	}
	return 0, false
}

// FixedTerminal is a TerminalInfo with a constant width.
type FixedTerminal int

func (f FixedTerminal) Width() (int, bool) { return int(f), true }

// DetectWidth resolves the terminal width through info, defaulting to
// fallbackWidth when detection fails.
func DetectWidth(info TerminalInfo) int {
	if info != nil {
		if w, ok := info.Width(); ok {
			return w
		}
	}
	return fallbackWidth
}

// Budget converts a raw terminal width into the layout width budget.
// "full" uses the whole width, "compact" is a fixed 60 columns, and
// "full-minus-40" (also the fallback for unknown modes) reserves room
// for the prompt sharing the line.
func Budget(flexMode string, width int) int {
	switch flexMode {
	case "full":
		return width
	case "compact":
		return 60
	default:
		if width < 40 {
			return 0
		}
		return width - 40
	}
}
