package screen

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/ohkthx/rycetui/glyph"
)

func TestRenderSingleDirtyCell(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(80, 24, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, err := RegisterPane(ctx, 0, 0, 80, 24)
	if err != nil {
		t.Fatalf("RegisterPane: %v", err)
	}

	if err := pane.Set(10, 5, glyph.Glyph{Ch: 'X', Style: glyph.DefaultStyle}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := ctx.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "\x1b[6;11HX\x1b[24;80H"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if ctx.cache[5*80+10] != (glyph.Glyph{Ch: 'X', Style: glyph.DefaultStyle}) {
		t.Fatalf("cache not updated at dirty cell")
	}
}

func TestRenderReprintBeatsMove(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(80, 24, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 80, 24)

	letters := "ABCDEFG"
	for i, r := range letters {
		g := glyph.Glyph{Ch: r, Style: glyph.DefaultStyle}
		ctx.cache[i] = g
		ctx.update[i] = g
	}
	// cell (6,0) changes from 'G' to 'Z'
	ctx.update[6] = glyph.Glyph{Ch: 'Z', Style: glyph.DefaultStyle}
	ctx.cursorX, ctx.cursorY = 80, 24

	if err := ctx.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "\x1b[1;1HABCDEFZ\x1b[24;80H"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	_ = pane
}

func TestRenderStyleTransition(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(80, 24, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 80, 24)

	red := glyph.NewStyle(glyph.ColorRed, glyph.ColorDefault, 0)
	redBold := glyph.NewStyle(glyph.ColorRed, glyph.ColorDefault, glyph.FlagBold)

	if err := pane.Set(0, 0, glyph.Glyph{Ch: 'A', Style: red}); err != nil {
		t.Fatalf("Set A: %v", err)
	}
	if err := pane.Set(1, 0, glyph.Glyph{Ch: 'B', Style: redBold}); err != nil {
		t.Fatalf("Set B: %v", err)
	}

	if err := ctx.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "\x1b[1;1H\x1b[31mA\x1b[1mB\x1b[24;80H"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// A styled run followed by untouched default-style cells must not cause
// those trailing cells to be re-emitted on the next render just because
// the active SGR left behind differs from their (unchanged) style: skip
// is decided on content+style equality against the cache, never against
// the renderer's currently active SGR.
func TestRenderUnchangedCellNotRedirtiedByActiveStyle(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(80, 24, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 80, 24)

	redBold := glyph.NewStyle(glyph.ColorRed, glyph.ColorDefault, glyph.FlagBold)
	if err := pane.Set(1, 0, glyph.Glyph{Ch: 'B', Style: redBold}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := ctx.Render(); err != nil {
		t.Fatalf("first Render: %v", err)
	}

	out.Reset()
	if err := ctx.Render(); err != nil {
		t.Fatalf("second Render: %v", err)
	}

	want := "\x1b[24;80H" // tidy move only; nothing else is dirty
	if got := out.String(); got != want {
		t.Fatalf("second render output = %q, want %q", got, want)
	}
}

// Render, then render again with no writes, emits zero printable
// characters (only the tidy cursor move).
func TestRenderIdempotent(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(10, 4, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 10, 4)
	pane.SetString(0, 0, glyph.DefaultStyle, "hello")

	if err := ctx.Render(); err != nil {
		t.Fatalf("first Render: %v", err)
	}
	for i := range ctx.cache {
		if ctx.cache[i] != ctx.update[i] {
			t.Fatalf("cache != update after first render at %d", i)
		}
	}

	out.Reset()
	if err := ctx.Render(); err != nil {
		t.Fatalf("second Render: %v", err)
	}

	want := "\x1b[4;10H" // tidy move only
	if got := out.String(); got != want {
		t.Fatalf("second render output = %q, want %q (no printable chars)", got, want)
	}
}

// Clearing a pane resets its cells, and a following render only emits
// the diff from the pre-clear state.
func TestClearThenRenderEmitsOnlyDiff(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(10, 4, WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 10, 4)
	pane.SetString(0, 0, glyph.DefaultStyle, "hi")
	if err := ctx.Render(); err != nil {
		t.Fatalf("first render: %v", err)
	}

	pane.Clear()
	out.Reset()
	if err := ctx.Render(); err != nil {
		t.Fatalf("second render: %v", err)
	}
	for i := 0; i < 2; i++ {
		if ctx.cache[i].Ch != ' ' {
			t.Fatalf("cell %d not cleared: %q", i, ctx.cache[i].Ch)
		}
	}

	want := "\x1b[1;1H  \x1b[4;10H" // only the two formerly written cells
	if got := out.String(); got != want {
		t.Fatalf("second render output = %q, want %q", got, want)
	}
}

// The skip-vs-reprint decision compares a skip run's length against the
// move-escape cost to the next dirty cell: one below the threshold and
// a tie (which breaks toward reprint) must reprint the run in place;
// one above must move past it instead. This exercises all three and
// asserts which branch actually ran, not just that some output happened.
func TestRenderSkipCostBoundary(t *testing.T) {
	move := func(row, col int) string { return fmt.Sprintf("\x1b[%d;%dH", row, col) }

	const width, height = 20, 1

	cases := []struct {
		name        string
		windowLen   int // length of the unchanged run between the anchor and the dirty cell
		wantReprint bool
	}{
		{"oneBelowThreshold", 5, true},
		{"atThreshold", 6, true},
		{"oneAboveThreshold", 7, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Cell 0 is a dirty "anchor" so the run under test starts
			// exactly at index 1, independent of its own length. The
			// dirty cell that follows the run sits at dirtyIdx.
			dirtyIdx := tc.windowLen + 1

			cache := make([]glyph.Glyph, width*height)
			update := make([]glyph.Glyph, width*height)
			for i := range cache {
				cache[i] = glyph.Glyph{Ch: 'a', Style: glyph.DefaultStyle}
				update[i] = cache[i]
			}
			update[0] = glyph.Glyph{Ch: 'Y', Style: glyph.DefaultStyle}
			update[dirtyIdx] = glyph.Glyph{Ch: 'Z', Style: glyph.DefaultStyle}

			var out bytes.Buffer
			ctx, err := New(width, height, WithOutput(&out))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			copy(ctx.cache, cache)
			copy(ctx.update, update)
			ctx.cursorX, ctx.cursorY = width, height

			if err := ctx.Render(); err != nil {
				t.Fatalf("Render: %v", err)
			}

			if moveCost := digits(1) + digits(dirtyIdx+1) + moveOverhead; moveCost != 6 {
				t.Fatalf("test setup assumption broken: moveCost = %d, want 6", moveCost)
			}

			var want string
			if tc.wantReprint {
				want = move(1, 1) + "Y" + strings.Repeat("a", tc.windowLen) + "Z" + move(height, width)
			} else {
				want = move(1, 1) + "Y" + move(1, dirtyIdx+1) + "Z" + move(height, width)
			}

			if got := out.String(); got != want {
				t.Fatalf("output = %q, want %q", got, want)
			}
		})
	}
}

// WithWideChars makes the tracked cursor advance two columns for a
// double-width glyph, so a following cell one column to its right is
// addressed directly rather than landing mid-glyph.
func TestRenderWideCharAdvancesTwoColumns(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(10, 1, WithOutput(&out), WithWideChars(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, _ := RegisterPane(ctx, 0, 0, 10, 1)

	if err := pane.Set(0, 0, glyph.Glyph{Ch: '世', Style: glyph.DefaultStyle}); err != nil {
		t.Fatalf("Set wide glyph: %v", err)
	}
	if err := pane.Set(2, 0, glyph.Glyph{Ch: 'x', Style: glyph.DefaultStyle}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := ctx.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "\x1b[1;1H世x\x1b[1;10H"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRegisterPaneClipsOffscreen(t *testing.T) {
	ctx, err := New(10, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, err := RegisterPane(ctx, 5, 5, 10, 10)
	if err != nil {
		t.Fatalf("RegisterPane: %v", err)
	}
	// In-bounds corner of the clipped region.
	if err := pane.Set(4, 4, glyph.Glyph{Ch: 'a'}); err != nil {
		t.Fatalf("Set in-bounds: %v", err)
	}
	// Off-screen local coordinate (pane thinks it's 10x10, but only the
	// top-left 5x5 is actually on the grid).
	if err := pane.Set(9, 9, glyph.Glyph{Ch: 'b'}); err != ErrInvalidPane {
		t.Fatalf("Set off-screen = %v, want ErrInvalidPane", err)
	}
}

func TestRegisterPaneFullScreen(t *testing.T) {
	ctx, err := New(10, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pane, err := RegisterPane(ctx, 0, 0, 10, 5)
	if err != nil {
		t.Fatalf("RegisterPane: %v", err)
	}
	for i, id := range ctx.mask {
		if id != pane.ID() {
			t.Fatalf("cell %d mask = %v, want %v", i, id, pane.ID())
		}
	}
}

func TestOverlappingPanesLastWriterWins(t *testing.T) {
	ctx, err := New(10, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, _ := RegisterPane(ctx, 0, 0, 5, 5)
	second, _ := RegisterPane(ctx, 2, 2, 5, 5)

	if err := first.Set(2, 2, glyph.Glyph{Ch: 'a'}); err != ErrInvalidPane {
		t.Fatalf("first.Set on overlapped cell = %v, want ErrInvalidPane", err)
	}
	if err := second.Set(0, 0, glyph.Glyph{Ch: 'b'}); err != nil {
		t.Fatalf("second.Set on its own cell: %v", err)
	}
}

func TestInvalidDimensions(t *testing.T) {
	if _, err := New(0, 10); err != ErrInvalidDimensions {
		t.Fatalf("New(0,10) = %v, want ErrInvalidDimensions", err)
	}
	ctx, _ := New(10, 10)
	if _, err := RegisterPane(ctx, 0, 0, 0, 5); err != ErrInvalidDimensions {
		t.Fatalf("RegisterPane width 0 = %v, want ErrInvalidDimensions", err)
	}
}

func TestSetStringDropsTrailing(t *testing.T) {
	ctx, _ := New(5, 1)
	pane, _ := RegisterPane(ctx, 0, 0, 5, 1)
	pane.SetString(0, 0, glyph.DefaultStyle, "abcdefgh")
	for x := 0; x < 5; x++ {
		g := pane.ctx.update[x]
		if g.Ch != rune("abcde"[x]) {
			t.Fatalf("cell %d = %q, want %q", x, g.Ch, "abcde"[x])
		}
	}
}
