// Package layout assembles widget outputs into finished status lines.
//
// The engine walks each configured line, renders its widgets, and joins
// the visible ones with separators under a width budget. Widgets that
// would overflow the budget are dropped whole, never clipped mid-text.
// A flex-separator splits a line into left and right groups with an
// elastic gap between them.
package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"gitlab.com/tinyland/lab/claude-line/config"
	"gitlab.com/tinyland/lab/claude-line/render"
	"gitlab.com/tinyland/lab/claude-line/themes"
	"gitlab.com/tinyland/lab/claude-line/widgets"
)

// powerlineReverse points the transition glyph leftward for the right
// half of a flex powerline layout.
const powerlineReverse = ""

// defaultChipBg is the powerline chip background when a slot sets none.
const defaultChipBg = "black"

// slotOutput pairs a widget's output with the slot that produced it.
type slotOutput struct {
	out  widgets.Output
	slot config.WidgetSlot
}

// Engine assembles status lines for one configuration and color level.
type Engine struct {
	cfg      *config.Config
	renderer *render.Renderer
	theme    themes.Theme

	// Term supplies terminal geometry. Replaceable for tests.
	Term TerminalInfo
}

// New builds an engine. The theme is resolved once; unknown names fall
// back to the default theme.
func New(cfg *config.Config, renderer *render.Renderer) *Engine {
	return &Engine{
		cfg:      cfg,
		renderer: renderer,
		theme:    themes.Get(cfg.Theme),
		Term:     StdoutTerminal{},
	}
}

// Render produces one string per configured line. Lines whose widgets
// are all invisible produce no output at all.
func (e *Engine) Render(data *widgets.SessionData, registry *widgets.Registry) []string {
	maxWidth := Budget(e.cfg.FlexMode, DetectWidth(e.Term))

	var lines []string
	for _, lc := range e.cfg.Lines {
		if len(lc.Widgets) == 0 {
			continue
		}

		var outs []slotOutput
		for _, slot := range lc.Widgets {
			w, ok := registry.Lookup(slot.Type)
			if !ok {
				continue
			}
			out := w.Render(data, slotConfig(slot))
			if out.Visible {
				outs = append(outs, slotOutput{out: out, slot: slot})
			}
		}
		if len(outs) == 0 {
			continue
		}

		if e.cfg.Powerline.Enabled {
			lines = append(lines, e.assemblePowerlineLine(outs, maxWidth))
		} else {
			lines = append(lines, e.assembleLine(outs, maxWidth))
		}
	}

	if e.cfg.Powerline.Enabled && e.cfg.Powerline.AutoAlign && len(lines) > 1 {
		alignLines(lines)
	}
	return lines
}

// alignLines right-pads shorter lines with spaces so the block has an
// even right edge. Widths are measured with ANSI sequences stripped.
func alignLines(lines []string) {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < maxWidth {
			lines[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}
}

// resolveFg picks the widget's foreground color. Priority: explicit slot
// color, then the widget's dynamic hint, then the theme role.
func (e *Engine) resolveFg(slot config.WidgetSlot, out widgets.Output) (string, bool) {
	if slot.Color != "" {
		return slot.Color, true
	}
	if out.ColorHint != "" {
		return out.ColorHint, true
	}
	if color, ok := e.theme.RoleForWidget(slot.Type); ok {
		return color, true
	}
	return "", false
}

// assembleLine joins widgets with separators, first-fit until the width
// budget would overflow. Lines containing a flex-separator take the
// two-pass path instead.
func (e *Engine) assembleLine(outs []slotOutput, maxWidth int) string {
	for _, so := range outs {
		if so.slot.Type == "flex-separator" {
			return e.assembleFlexLine(outs, maxWidth)
		}
	}

	separator := e.cfg.DefaultSeparator
	sepWidth := runewidth.StringWidth(separator)

	var b strings.Builder
	total := 0
	for i, so := range outs {
		needSep := i > 0 && !outs[i-1].slot.MergeNext
		if needSep {
			if total+sepWidth+so.out.Width > maxWidth {
				break
			}
			b.WriteString(separator)
			total += sepWidth
		}

		if total+so.out.Width > maxWidth {
			break
		}

		padding := e.paddingFor(so.slot)
		b.WriteString(padding)
		b.WriteString(e.applyStyle(so.out.Text, so.slot, so.out))
		b.WriteString(padding)
		total += so.out.Width + runewidth.StringWidth(padding)*2
	}

	b.WriteString(e.renderer.Reset())
	return b.String()
}

// assembleFlexLine sizes the elastic gap so fixed content plus fill
// equals the width budget exactly. Flex lines are never truncated; the
// gap absorbs the slack instead.
func (e *Engine) assembleFlexLine(outs []slotOutput, maxWidth int) string {
	separator := e.cfg.DefaultSeparator
	sepWidth := runewidth.StringWidth(separator)

	fixed := 0
	for i, so := range outs {
		if so.slot.Type == "flex-separator" {
			continue
		}
		if i > 0 && !outs[i-1].slot.MergeNext && outs[i-1].slot.Type != "flex-separator" {
			fixed += sepWidth
		}
		fixed += so.out.Width + runewidth.StringWidth(e.paddingFor(so.slot))*2
	}

	flexWidth := maxWidth - fixed
	if flexWidth < 0 {
		flexWidth = 0
	}

	var b strings.Builder
	for i, so := range outs {
		if so.slot.Type == "flex-separator" {
			fill := strings.Repeat(so.out.Text, flexWidth)
			b.WriteString(e.applyStyle(fill, so.slot, so.out))
			continue
		}

		if i > 0 && !outs[i-1].slot.MergeNext && outs[i-1].slot.Type != "flex-separator" {
			b.WriteString(separator)
		}

		padding := e.paddingFor(so.slot)
		b.WriteString(padding)
		b.WriteString(e.applyStyle(so.out.Text, so.slot, so.out))
		b.WriteString(padding)
	}

	b.WriteString(e.renderer.Reset())
	return b.String()
}

// assemblePowerlineLine renders widgets as colored chips joined by
// transition glyphs whose foreground is the previous chip's background
// and whose background is the next chip's. Caps are fixed decorations
// and render regardless of the budget.
func (e *Engine) assemblePowerlineLine(outs []slotOutput, maxWidth int) string {
	plSep := e.cfg.Powerline.Separator

	flexIdx := -1
	var nonFlex []slotOutput
	for i, so := range outs {
		if so.slot.Type == "flex-separator" {
			if flexIdx < 0 {
				flexIdx = i
			}
			continue
		}
		nonFlex = append(nonFlex, so)
	}

	var b strings.Builder
	total := 0

	if glyph := e.cfg.Powerline.StartCap; glyph != "" {
		firstBg := defaultChipBg
		if len(nonFlex) > 0 && nonFlex[0].slot.Background != "" {
			firstBg = nonFlex[0].slot.Background
		}
		b.WriteString(e.renderer.Fg(render.ParseColor(firstBg)))
		b.WriteString(glyph)
		b.WriteString(e.renderer.Reset())
		total += runewidth.StringWidth(glyph)
	}

	if flexIdx >= 0 {
		var left, right []slotOutput
		for i, so := range outs {
			if so.slot.Type == "flex-separator" {
				continue
			}
			if i < flexIdx {
				left = append(left, so)
			} else {
				right = append(right, so)
			}
		}

		e.renderPowerlineSegment(left, &b, &total, maxWidth)

		// Close the left side with a transition into the bare terminal.
		if len(left) > 0 {
			lastBg := chipBg(left[len(left)-1].slot)
			b.WriteString(e.renderer.Fg(render.ParseColor(lastBg)))
			b.WriteString(plSep)
			b.WriteString(e.renderer.Reset())
			total += runewidth.StringWidth(plSep)
		}

		rightWidth := 0
		for i, so := range right {
			if i > 0 {
				rightWidth += runewidth.StringWidth(plSep)
			}
			rightWidth += so.out.Width + runewidth.StringWidth(e.paddingFor(so.slot))*2
		}
		if len(right) > 0 {
			rightWidth += runewidth.StringWidth(plSep)
		}

		if fill := maxWidth - total - rightWidth; fill > 0 {
			b.WriteString(strings.Repeat(" ", fill))
			total += fill
		}

		if len(right) > 0 {
			firstBg := chipBg(right[0].slot)
			b.WriteString(e.renderer.Fg(render.ParseColor(firstBg)))
			b.WriteString(powerlineReverse)
			b.WriteString(e.renderer.Reset())
			total++

			e.renderPowerlineSegment(right, &b, &total, maxWidth)
		}
	} else {
		e.renderPowerlineSegment(nonFlex, &b, &total, maxWidth)
	}

	if glyph := e.cfg.Powerline.EndCap; glyph != "" {
		lastBg := defaultChipBg
		if len(nonFlex) > 0 {
			lastBg = chipBg(nonFlex[len(nonFlex)-1].slot)
		}
		b.WriteString(e.renderer.Fg(render.ParseColor(lastBg)))
		b.WriteString(glyph)
		b.WriteString(e.renderer.Reset())
	}

	b.WriteString(e.renderer.Reset())
	return b.String()
}

// renderPowerlineSegment renders a run of chips, first-fit against the
// shared width budget.
func (e *Engine) renderPowerlineSegment(outs []slotOutput, b *strings.Builder, total *int, maxWidth int) {
	plSep := e.cfg.Powerline.Separator
	sepWidth := runewidth.StringWidth(plSep)

	for i, so := range outs {
		thisBg := render.ParseColor(chipBg(so.slot))

		if i > 0 && !outs[i-1].slot.MergeNext {
			prevBg := render.ParseColor(chipBg(outs[i-1].slot))

			if *total+sepWidth+so.out.Width > maxWidth {
				break
			}
			b.WriteString(e.renderer.Fg(prevBg))
			b.WriteString(e.renderer.Bg(thisBg))
			b.WriteString(plSep)
			b.WriteString(e.renderer.Reset())
			*total += sepWidth
		}

		if *total+so.out.Width > maxWidth {
			break
		}

		b.WriteString(e.applyPowerlineStyle(so.out.Text, so.slot, thisBg, so.out))
		*total += so.out.Width + runewidth.StringWidth(e.paddingFor(so.slot))*2
	}
}

// applyStyle wraps text in its SGR sequences for standard mode.
func (e *Engine) applyStyle(text string, slot config.WidgetSlot, out widgets.Output) string {
	var b strings.Builder
	if slot.Background != "" {
		b.WriteString(e.renderer.Bg(render.ParseColor(slot.Background)))
	}
	if fg, ok := e.resolveFg(slot, out); ok {
		b.WriteString(e.renderer.Fg(render.ParseColor(fg)))
	}
	if e.boldFor(slot) {
		b.WriteString(e.renderer.Bold())
	}
	b.WriteString(text)
	b.WriteString(e.renderer.Reset())
	return b.String()
}

// applyPowerlineStyle styles one chip. Unlike standard mode the padding
// sits inside the styled region so the chip background covers it.
func (e *Engine) applyPowerlineStyle(text string, slot config.WidgetSlot, bg render.Color, out widgets.Output) string {
	padding := e.paddingFor(slot)

	var b strings.Builder
	b.WriteString(e.renderer.Bg(bg))
	if fg, ok := e.resolveFg(slot, out); ok {
		b.WriteString(e.renderer.Fg(render.ParseColor(fg)))
	}
	if e.boldFor(slot) {
		b.WriteString(e.renderer.Bold())
	}
	b.WriteString(padding)
	b.WriteString(text)
	b.WriteString(padding)
	b.WriteString(e.renderer.Reset())
	return b.String()
}

func (e *Engine) paddingFor(slot config.WidgetSlot) string {
	if slot.Padding != nil {
		return *slot.Padding
	}
	return e.cfg.DefaultPadding
}

func (e *Engine) boldFor(slot config.WidgetSlot) bool {
	if slot.Bold != nil {
		return *slot.Bold
	}
	return e.cfg.GlobalBold
}

func chipBg(slot config.WidgetSlot) string {
	if slot.Background != "" {
		return slot.Background
	}
	return defaultChipBg
}

// slotConfig converts a config slot into the widget-facing Config.
func slotConfig(slot config.WidgetSlot) widgets.Config {
	return widgets.Config{
		Type:       slot.Type,
		Color:      slot.Color,
		Background: slot.Background,
		Bold:       slot.Bold,
		Raw:        slot.Raw,
		Padding:    slot.Padding,
		MergeNext:  slot.MergeNext,
		Metadata:   slot.Metadata,
	}
}
