// Package highlight maps chroma lexer output onto glyph styles, for
// applications that want a syntax-highlighted pane.
package highlight

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"github.com/ohkthx/rycetui/glyph"
)

// Span is a run of text sharing one style, the unit Highlight returns.
type Span struct {
	Text  string
	Style glyph.Style
}

// chromaStyleName picks the base chroma style the token-category
// mapping below is tuned against; swapping it changes emphasis
// (bold/underline) choices but not the category-to-color table.
const chromaStyleName = "monokai"

// Highlight tokenizes code with the lexer registered for lang (falling
// back to chroma's generic fallback lexer when lang is empty or
// unrecognized) and maps each token's category onto the fixed 8-color
// ANSI palette (plus the terminal default). Token RGB values from the chroma style aren't used
// directly; terminal-safe categories are a better fit for a 9-entry
// glyph.Color palette than an arbitrary truecolor swatch.
func Highlight(code, lang string) []Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(chromaStyleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Style: glyph.NewStyle(glyph.ColorDefault, glyph.ColorDefault, glyph.FlagDim)}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)

		var flags glyph.Flags
		if entry.Bold == chroma.Yes {
			flags |= glyph.FlagBold
		}
		if entry.Underline == chroma.Yes {
			flags |= glyph.FlagUnderline
		}
		if entry.Italic == chroma.Yes {
			flags |= glyph.FlagItalic
		}

		category := token.Type.Category()
		fg := categoryColor(category)
		if category == chroma.Comment {
			flags |= glyph.FlagDim
		}

		spans = append(spans, Span{
			Text:  token.Value,
			Style: glyph.NewStyle(fg, glyph.ColorDefault, flags),
		})
	}

	return spans
}

// categoryColor maps a chroma token category to the fixed ANSI palette
// glyph.Color exposes.
func categoryColor(category chroma.TokenType) glyph.Color {
	switch category {
	case chroma.Keyword:
		return glyph.ColorMagenta
	case chroma.Name:
		return glyph.ColorWhite
	case chroma.LiteralString:
		return glyph.ColorGreen
	case chroma.LiteralNumber:
		return glyph.ColorCyan
	case chroma.Comment:
		return glyph.ColorBlack
	case chroma.Operator, chroma.Punctuation:
		return glyph.ColorWhite
	default:
		return glyph.ColorDefault
	}
}
