// Package render emits ANSI escape sequences for a detected or overridden
// terminal color depth.
//
// The renderer is the only place in claude-line that writes raw escape
// bytes. Every other package describes colors symbolically (a name, a
// 256-palette index, or an #RRGGBB literal) and asks the renderer for the
// concrete sequence. At Level None every call returns the empty string, so
// NO_COLOR output is byte-identical to plain text.
package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Level is the terminal's supported color richness tier.
type Level int

const (
	None Level = iota
	Basic16
	Color256
	TrueColor
)

// String returns the override token that selects this level.
func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Basic16:
		return "16"
	case Color256:
		return "256"
	case TrueColor:
		return "truecolor"
	}
	return "unknown"
}

// colorKind discriminates the Color union.
type colorKind int

const (
	kindNamed colorKind = iota
	kindAnsi256
	kindRGB
)

// Color is a parsed color specification: a named 4-bit color, an 8-bit
// palette index, or a 24-bit RGB triple.
type Color struct {
	kind  colorKind
	name  string
	index uint8
	r     uint8
	g     uint8
	b     uint8
}

// Named returns a named 4-bit color.
func Named(name string) Color {
	return Color{kind: kindNamed, name: name}
}

// Ansi256 returns an 8-bit palette color.
func Ansi256(index uint8) Color {
	return Color{kind: kindAnsi256, index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{kind: kindRGB, r: r, g: g, b: b}
}

// namedColors is the set of recognized 4-bit color names. snake_case
// aliases for the bright variants are accepted in config files.
var namedColors = map[string]string{
	"black":          "black",
	"red":            "red",
	"green":          "green",
	"yellow":         "yellow",
	"blue":           "blue",
	"magenta":        "magenta",
	"cyan":           "cyan",
	"white":          "white",
	"brightBlack":    "brightBlack",
	"bright_black":   "brightBlack",
	"brightRed":      "brightRed",
	"bright_red":     "brightRed",
	"brightGreen":    "brightGreen",
	"bright_green":   "brightGreen",
	"brightYellow":   "brightYellow",
	"bright_yellow":  "brightYellow",
	"brightBlue":     "brightBlue",
	"bright_blue":    "brightBlue",
	"brightMagenta":  "brightMagenta",
	"bright_magenta": "brightMagenta",
	"brightCyan":     "brightCyan",
	"bright_cyan":    "brightCyan",
	"brightWhite":    "brightWhite",
	"bright_white":   "brightWhite",
}

// ParseColor resolves a color string to exactly one Color variant.
// Recognized forms: a named color, "#RRGGBB", or a bare 0-255 palette
// index. Anything else falls back to named white; parsing never fails.
func ParseColor(s string) Color {
	if canonical, ok := namedColors[s]; ok {
		return Named(canonical)
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r := parseHexByte(s[1:3])
		g := parseHexByte(s[3:5])
		b := parseHexByte(s[5:7])
		return RGB(r, g, b)
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return Ansi256(uint8(n))
	}
	return Named("white")
}

func parseHexByte(s string) uint8 {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(n)
}

// Renderer produces escape sequences appropriate for one color level.
type Renderer struct {
	Level Level
}

// Detect builds a Renderer from an explicit override token or, when the
// override is unrecognized (typically "auto"), from the environment:
// NO_COLOR presence wins, then COLORTERM truecolor/24bit, then a 256color
// TERM, else basic 16-color support.
func Detect(override string) *Renderer {
	switch override {
	case "none":
		return &Renderer{Level: None}
	case "16":
		return &Renderer{Level: Basic16}
	case "256":
		return &Renderer{Level: Color256}
	case "truecolor":
		return &Renderer{Level: TrueColor}
	}
	return &Renderer{Level: detectLevel()}
}

func detectLevel() Level {
	// NO_COLOR spec: presence disables color, regardless of value.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return None
	}
	ct := os.Getenv("COLORTERM")
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") {
		return TrueColor
	}
	if strings.Contains(os.Getenv("TERM"), "256color") {
		return Color256
	}
	return Basic16
}

// Fg returns the foreground escape sequence for c at the renderer's level.
func (r *Renderer) Fg(c Color) string {
	switch r.Level {
	case None:
		return ""
	case Basic16:
		return namedFg(c)
	case Color256:
		return ansi256Fg(c)
	default:
		return trueColorFg(c)
	}
}

// Bg returns the background escape sequence for c at the renderer's level.
func (r *Renderer) Bg(c Color) string {
	switch r.Level {
	case None:
		return ""
	case Basic16:
		return namedBg(c)
	case Color256:
		return ansi256Bg(c)
	default:
		return trueColorBg(c)
	}
}

// Bold returns the SGR bold sequence, or "" at level None.
func (r *Renderer) Bold() string {
	if r.Level == None {
		return ""
	}
	return "\x1b[1m"
}

// Reset returns the full SGR reset, or "" at level None.
func (r *Renderer) Reset() string {
	if r.Level == None {
		return ""
	}
	return "\x1b[0m"
}

// Hyperlink wraps text in an OSC 8 hyperlink. Terminals without OSC 8
// support display the text unchanged. At level None the bare text is
// returned so piped output stays escape-free.
func (r *Renderer) Hyperlink(url, text string) string {
	if r.Level == None || url == "" {
		return text
	}
	return fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", url, text)
}

var namedFgCodes = map[string]string{
	"black":         "30",
	"red":           "31",
	"green":         "32",
	"yellow":        "33",
	"blue":          "34",
	"magenta":       "35",
	"cyan":          "36",
	"white":         "37",
	"brightBlack":   "90",
	"brightRed":     "91",
	"brightGreen":   "92",
	"brightYellow":  "93",
	"brightBlue":    "94",
	"brightMagenta": "95",
	"brightCyan":    "96",
	"brightWhite":   "97",
}

var namedBgCodes = map[string]string{
	"black":         "40",
	"red":           "41",
	"green":         "42",
	"yellow":        "43",
	"blue":          "44",
	"magenta":       "45",
	"cyan":          "46",
	"white":         "47",
	"brightBlack":   "100",
	"brightRed":     "101",
	"brightGreen":   "102",
	"brightYellow":  "103",
	"brightBlue":    "104",
	"brightMagenta": "105",
	"brightCyan":    "106",
	"brightWhite":   "107",
}

func namedFg(c Color) string {
	switch c.kind {
	case kindAnsi256:
		return fmt.Sprintf("\x1b[38;5;%dm", c.index)
	case kindRGB:
		return fmt.Sprintf("\x1b[38;5;%dm", rgbTo256(c.r, c.g, c.b))
	}
	code, ok := namedFgCodes[c.name]
	if !ok {
		code = "37"
	}
	return "\x1b[" + code + "m"
}

func namedBg(c Color) string {
	switch c.kind {
	case kindAnsi256:
		return fmt.Sprintf("\x1b[48;5;%dm", c.index)
	case kindRGB:
		return fmt.Sprintf("\x1b[48;5;%dm", rgbTo256(c.r, c.g, c.b))
	}
	code, ok := namedBgCodes[c.name]
	if !ok {
		code = "40"
	}
	return "\x1b[" + code + "m"
}

func ansi256Fg(c Color) string {
	switch c.kind {
	case kindAnsi256:
		return fmt.Sprintf("\x1b[38;5;%dm", c.index)
	case kindRGB:
		return fmt.Sprintf("\x1b[38;5;%dm", rgbTo256(c.r, c.g, c.b))
	}
	return namedFg(c)
}

func ansi256Bg(c Color) string {
	switch c.kind {
	case kindAnsi256:
		return fmt.Sprintf("\x1b[48;5;%dm", c.index)
	case kindRGB:
		return fmt.Sprintf("\x1b[48;5;%dm", rgbTo256(c.r, c.g, c.b))
	}
	return namedBg(c)
}

func trueColorFg(c Color) string {
	if c.kind == kindRGB {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.r, c.g, c.b)
	}
	return ansi256Fg(c)
}

func trueColorBg(c Color) string {
	if c.kind == kindRGB {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.r, c.g, c.b)
	}
	return ansi256Bg(c)
}

// rgbTo256 quantizes an RGB triple into the xterm 256-color palette:
// near-gray values map into the 24-step grayscale ramp (232-255), the rest
// into the 6x6x6 color cube (16-231).
func rgbTo256(r, g, b uint8) uint8 {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return uint8((uint16(r)-8)*24/247 + 232)
	}
	ri := uint16(r) * 5 / 255
	gi := uint16(g) * 5 / 255
	bi := uint16(b) * 5 / 255
	return uint8(16 + 36*ri + 6*gi + bi)
}
