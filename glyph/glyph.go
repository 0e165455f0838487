// Package glyph defines the single-cell drawable unit shared by the
// renderer and pane compositor: a code point plus a packed style word.
package glyph

// Color is one of the 9 indexed palette entries (8 ANSI colors plus the
// terminal's own default), matching the foreground/background fields of
// a packed Style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Flags are the style-flag bits packed into the upper half of a Style
// word: bold, dim, italic, underline, blink, reverse, hidden and
// strikethrough, one bit each.
type Flags uint16

const (
	FlagBold Flags = 1 << iota
	FlagDim
	FlagItalic
	FlagUnderline
	FlagBlink
	FlagReverse
	FlagHidden
	FlagStrike
)

// Style packs a foreground color (bits 0-7), a background color (bits
// 8-15) and style flags (bits 16-31) into one comparable word, so two
// styles can be compared for equality with a single bitwise op instead
// of a field-by-field struct comparison.
type Style uint32

// DefaultStyle is the zero value: default foreground, default
// background, no flags set.
const DefaultStyle Style = 0

// NewStyle packs a foreground color, background color and flag set into
// a single Style word.
func NewStyle(fg, bg Color, flags Flags) Style {
	return Style(uint32(fg) | uint32(bg)<<8 | uint32(flags)<<16)
}

// Foreground returns the packed foreground color.
func (s Style) Foreground() Color { return Color(s & 0xFF) }

// Background returns the packed background color.
func (s Style) Background() Color { return Color((s >> 8) & 0xFF) }

// Flags returns the packed style-flag bits.
func (s Style) Flags() Flags { return Flags((s >> 16) & 0xFFFF) }

// WithForeground returns a copy of s with the foreground color replaced.
func (s Style) WithForeground(c Color) Style {
	return Style(uint32(s)&^0xFF | uint32(c))
}

// WithBackground returns a copy of s with the background color replaced.
func (s Style) WithBackground(c Color) Style {
	return Style(uint32(s)&^0xFF00 | uint32(c)<<8)
}

// WithFlags returns a copy of s with the flag bits replaced wholesale.
func (s Style) WithFlags(f Flags) Style {
	return Style(uint32(s)&^0xFFFF0000 | uint32(f)<<16)
}

// FGCode returns the SGR parameter that selects c as a foreground color.
func (c Color) FGCode() int {
	if c == ColorDefault {
		return 39
	}
	return 29 + int(c)
}

// BGCode returns the SGR parameter that selects c as a background color.
func (c Color) BGCode() int {
	if c == ColorDefault {
		return 49
	}
	return 39 + int(c)
}

// FlagCode is the on/off SGR parameter pair for a single style flag.
type FlagCode struct {
	Flag    Flags
	On, Off int
}

// FlagCodes returns the on/off SGR parameter for every style flag.
// Exported so the renderer can compute minimal style-diff escapes
// without duplicating this table.
func FlagCodes() [8]FlagCode {
	return [8]FlagCode{
		{FlagBold, 1, 22},
		{FlagDim, 2, 22},
		{FlagItalic, 3, 23},
		{FlagUnderline, 4, 24},
		{FlagBlink, 5, 25},
		{FlagReverse, 7, 27},
		{FlagHidden, 8, 28},
		{FlagStrike, 9, 29},
	}
}

// Glyph is a single cell: one code point plus a packed style. Equality
// of two Glyphs is equality of both fields via the built-in ==, which is
// the property the renderer's diff walk relies on.
type Glyph struct {
	Ch    rune
	Style Style
}

// Blank is the default cell value every pane resets to: a space in the
// default style.
var Blank = Glyph{Ch: ' ', Style: DefaultStyle}
