package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

// Attr is a bitset of text attributes, mirroring the teacher's renderer/core
// Attribute type but trimmed to what Quill's renderers actually emit.
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << (iota - 1)
	AttrItalic
	AttrUnderline
	AttrReverse
)

func (a Attr) Has(b Attr) bool { return a&b != 0 }

// Color is a 24-bit terminal color, or the terminal's default when Default
// is set. Blending (diagnostic tints, selection overlay) goes through
// go-colorful's Lab-space interpolation rather than naive RGB averaging, so
// a blended color keeps perceptual brightness close to its inputs.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault is the terminal's own foreground/background color.
var ColorDefault = Color{Default: true}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Blend mixes c with other by t (0 = c, 1 = other) in Lab space. Blending
// with or into a Default color just returns the non-default side, since
// there is no RGB triple to mix against the terminal's own palette entry.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default {
		return other
	}
	if other.Default {
		return c
	}
	return fromColorful(c.toColorful().BlendLab(other.toColorful(), t))
}

// Style is one cell's paint: foreground, background, and attributes.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultStyle is the theme's base style before any token, diagnostic, or
// selection overlay is applied.
var DefaultStyle = Style{Fg: ColorDefault, Bg: ColorDefault}

// OverlayOn returns base with the non-default fields of over applied atop
// it, the same "replace only what the overlay sets" rule the teacher's
// style.MergeOverlay mode uses.
func (base Style) OverlayOn(over Style) Style {
	result := base
	if !over.Fg.Default {
		result.Fg = over.Fg
	}
	if !over.Bg.Default {
		result.Bg = over.Bg
	}
	result.Attrs |= over.Attrs
	return result
}

// Theme maps the small, fixed categories a line's styling can fall into —
// token style ids, diagnostic severities, selection, and the cursor line —
// onto concrete Styles. A theme is just data; callers construct one from a
// loaded color scheme (theme loading itself is out of core scope, per
// SPEC_FULL.md §1's non-goals).
type Theme struct {
	Tokens      [11]Style // indexed by token.StyleID
	Diagnostic  [5]Style  // indexed by line.Severity
	Selection   Style
	CursorLine  Style
	GutterText  Style
	GutterLine  Style // the line number under the cursor
	WrapMarker  Style
}

// TokenStyle returns the style registered for a token.StyleID, or the
// theme's plain-text style if id is out of range.
func (t Theme) TokenStyle(id token.StyleID) Style {
	if int(id) < len(t.Tokens) {
		return t.Tokens[id]
	}
	return DefaultStyle
}

// DiagnosticTint overlays base with the tint registered for sev, blending
// the diagnostic's foreground 55% over the syntax color so the underlying
// token color still shows through (spec.md §4.5: "diagnostic color
// overrides the syntax color" — overrides, not replaces, hence a blend
// rather than OverlayOn's flat replace).
func (t Theme) DiagnosticTint(base Style, sev line.Severity) Style {
	if sev == line.SeverityUnknown || int(sev) >= len(t.Diagnostic) {
		return base
	}
	tint := t.Diagnostic[sev]
	out := base
	if !tint.Fg.Default {
		out.Fg = base.Fg.Blend(tint.Fg, 0.55)
	}
	if !tint.Bg.Default {
		out.Bg = base.Bg.Blend(tint.Bg, 0.35)
	}
	out.Attrs |= tint.Attrs
	return out
}

// SelectionTint overlays base with the selection background, blended rather
// than replaced so syntax-colored text stays legible while selected.
func (t Theme) SelectionTint(base Style) Style {
	out := base
	if !t.Selection.Bg.Default {
		out.Bg = base.Bg.Blend(t.Selection.Bg, 0.7)
	}
	out.Attrs |= t.Selection.Attrs
	return out
}

// DefaultTheme returns a minimal built-in theme, used when no external
// theme has been loaded yet.
func DefaultTheme() Theme {
	var t Theme
	t.Tokens[token.StyleComment] = Style{Fg: RGB(110, 120, 130), Attrs: AttrItalic}
	t.Tokens[token.StyleString] = Style{Fg: RGB(150, 190, 110)}
	t.Tokens[token.StyleNumber] = Style{Fg: RGB(190, 150, 220)}
	t.Tokens[token.StyleKeyword] = Style{Fg: RGB(220, 120, 140), Attrs: AttrBold}
	t.Tokens[token.StyleOperator] = Style{Fg: RGB(200, 200, 200)}
	t.Tokens[token.StylePunctuation] = Style{Fg: RGB(170, 170, 170)}
	t.Tokens[token.StyleFunction] = Style{Fg: RGB(130, 170, 220)}
	t.Tokens[token.StyleType] = Style{Fg: RGB(220, 180, 100)}
	t.Tokens[token.StyleConstant] = Style{Fg: RGB(190, 150, 220)}

	t.Diagnostic[line.SeverityError] = Style{Fg: RGB(230, 60, 60), Bg: RGB(60, 20, 20)}
	t.Diagnostic[line.SeverityWarning] = Style{Fg: RGB(230, 180, 60), Bg: RGB(60, 50, 20)}
	t.Diagnostic[line.SeverityInformation] = Style{Fg: RGB(90, 170, 230)}
	t.Diagnostic[line.SeverityHint] = Style{Fg: RGB(140, 140, 140), Attrs: AttrItalic}

	t.Selection = Style{Bg: RGB(60, 90, 130)}
	t.CursorLine = Style{Bg: RGB(40, 42, 48)}
	t.GutterText = Style{Fg: RGB(100, 105, 115)}
	t.GutterLine = Style{Fg: RGB(210, 210, 210), Attrs: AttrBold}
	t.WrapMarker = Style{Fg: RGB(90, 95, 105)}
	return t
}
