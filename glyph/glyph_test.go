package glyph

import "testing"

func TestStylePacking(t *testing.T) {
	s := NewStyle(ColorRed, ColorBlue, FlagBold|FlagUnderline)
	if s.Foreground() != ColorRed {
		t.Fatalf("foreground = %v, want ColorRed", s.Foreground())
	}
	if s.Background() != ColorBlue {
		t.Fatalf("background = %v, want ColorBlue", s.Background())
	}
	if s.Flags() != FlagBold|FlagUnderline {
		t.Fatalf("flags = %v, want Bold|Underline", s.Flags())
	}
}

func TestStyleEqualityIsBitwise(t *testing.T) {
	a := NewStyle(ColorGreen, ColorDefault, FlagDim)
	b := NewStyle(ColorGreen, ColorDefault, FlagDim)
	if a != b {
		t.Fatalf("expected equal styles built from equal fields")
	}
	c := a.WithFlags(FlagBold)
	if a == c {
		t.Fatalf("expected styles to differ after WithFlags")
	}
}

func TestGlyphEquality(t *testing.T) {
	a := Glyph{Ch: 'x', Style: NewStyle(ColorRed, ColorDefault, 0)}
	b := Glyph{Ch: 'x', Style: NewStyle(ColorRed, ColorDefault, 0)}
	c := Glyph{Ch: 'y', Style: a.Style}
	if a != b {
		t.Fatalf("expected equal glyphs")
	}
	if a == c {
		t.Fatalf("expected glyphs with different runes to differ")
	}
}

func TestColorCodes(t *testing.T) {
	if ColorDefault.FGCode() != 39 {
		t.Errorf("default fg code = %d, want 39", ColorDefault.FGCode())
	}
	if ColorDefault.BGCode() != 49 {
		t.Errorf("default bg code = %d, want 49", ColorDefault.BGCode())
	}
	if ColorRed.FGCode() != 31 {
		t.Errorf("red fg code = %d, want 31", ColorRed.FGCode())
	}
	if ColorRed.BGCode() != 41 {
		t.Errorf("red bg code = %d, want 41", ColorRed.BGCode())
	}
	if ColorWhite.FGCode() != 37 {
		t.Errorf("white fg code = %d, want 37", ColorWhite.FGCode())
	}
}
