package widgets

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// commandTimeout bounds custom-command execution so a hung script cannot
// stall the status line.
const commandTimeout = 2 * time.Second

// CustomTextWidget shows a fixed string from the "text" metadata key.
type CustomTextWidget struct{}

func (CustomTextWidget) Name() string { return "custom-text" }

func (CustomTextWidget) Render(_ *SessionData, cfg Config) Output {
	text := cfg.Meta("text", "")
	if text == "" {
		return hidden(50)
	}
	return textOutput(text, 50)
}

// CustomCommandWidget runs a shell command from the "command" metadata
// key and shows the first line of its output. Failures and empty output
// hide the widget.
type CustomCommandWidget struct{}

func (CustomCommandWidget) Name() string { return "custom-command" }

func (CustomCommandWidget) Render(_ *SessionData, cfg Config) Output {
	command := cfg.Meta("command", "")
	if command == "" {
		return hidden(50)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
	if err != nil {
		return hidden(50)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return hidden(50)
	}
	return textOutput(line, 50)
}

// SeparatorWidget is an explicit separator slot, for layouts that want a
// divider different from the line's default.
type SeparatorWidget struct{}

func (SeparatorWidget) Name() string { return "separator" }

func (SeparatorWidget) Render(_ *SessionData, cfg Config) Output {
	return textOutput(cfg.Meta("char", "|"), 50)
}

// FlexSeparatorWidget marks an elastic gap. It reports width 0; the
// layout engine expands it with the fill character to absorb the
// remaining terminal width.
type FlexSeparatorWidget struct{}

func (FlexSeparatorWidget) Name() string { return "flex-separator" }

func (FlexSeparatorWidget) Render(_ *SessionData, cfg Config) Output {
	return Output{
		Text:     cfg.Meta("char", " "),
		Width:    0,
		Priority: 100,
		Visible:  true,
	}
}

// TerminalWidthWidget shows the detected terminal column count. Mostly a
// layout debugging aid.
type TerminalWidthWidget struct{}

func (TerminalWidthWidget) Name() string { return "terminal-width" }

func (TerminalWidthWidget) Render(_ *SessionData, cfg Config) Output {
	width, ok := probeColumns()
	if !ok {
		return hidden(50)
	}
	text := strconv.Itoa(width)
	if !cfg.Raw {
		text = "W:" + text
	}
	return textOutput(text, 50)
}

// probeColumns queries stdout for its width, falling back to COLUMNS.
func probeColumns() (int, bool) {
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
