package screen

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ohkthx/rycetui/glyph"
)

// PaneID identifies the owner of a render-mask cell. Zero means the
// cell is unowned and no pane may write to it.
type PaneID uint32

// Context is the root screen state: the update (next-frame) and cache
// (last-emitted-frame) buffers, the render mask that arbitrates pane
// writes, and the renderer's persisted cursor/style bookkeeping.
//
// A Context is touched only by the goroutine that owns rendering and
// pane writes; unlike input.Pipeline's event buffer it needs no mutex.
type Context struct {
	width, height int

	update []glyph.Glyph
	cache  []glyph.Glyph
	mask   []PaneID

	nextPaneID uint32

	// Persisted across Render calls.
	cursorX, cursorY int
	style            glyph.Style

	writeBuf []byte

	out  io.Writer
	wide bool
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithOutput overrides the writer frames are flushed to. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Context) { c.out = w }
}

// WithWideChars enables the renderer's double-width cursor-advance
// heuristic: a glyph whose rune measures two display columns (CJK
// ideographs, fullwidth forms) advances the tracked cursor two columns
// instead of one, keeping the internal skip/move accounting in sync
// with what the terminal itself does. Single code-point glyphs only;
// full grapheme clustering is out of scope.
func WithWideChars(enabled bool) Option {
	return func(c *Context) { c.wide = enabled }
}

// WithHideCursorOnInit hides the terminal cursor as soon as the Context
// is constructed.
func WithHideCursorOnInit(enabled bool) Option {
	return func(c *Context) {
		if enabled {
			io.WriteString(c.out, "\x1b[?25l")
		}
	}
}

// WithWriteBufferCapacity overrides the per-frame scratch buffer
// capacity. Defaults to max(width*height*3, 1024), a floor large
// enough to hold a handful of escapes even on a tiny grid.
func WithWriteBufferCapacity(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.writeBuf = make([]byte, 0, n)
		}
	}
}

// New constructs a Context with a fixed (width, height). Panes are
// registered against it afterward; cells default to (space,
// default-style). Width and height cannot change after construction.
func New(width, height int, opts ...Option) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	ctx := &Context{
		width:  width,
		height: height,
		out:    os.Stdout,
	}
	n := width * height
	ctx.update = make([]glyph.Glyph, n)
	ctx.cache = make([]glyph.Glyph, n)
	ctx.mask = make([]PaneID, n)
	for i := range ctx.update {
		ctx.update[i] = glyph.Blank
		ctx.cache[i] = glyph.Blank
	}

	defaultCap := n * 3
	if defaultCap < 1024 {
		defaultCap = 1024
	}
	ctx.writeBuf = make([]byte, 0, defaultCap)

	// Cursor starts off-grid at (width, height) so the first Render
	// always emits an initial move rather than assuming (0,0).
	ctx.cursorX, ctx.cursorY = width, height
	ctx.style = glyph.DefaultStyle

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx, nil
}

// Size returns the context's fixed width and height.
func (ctx *Context) Size() (width, height int) { return ctx.width, ctx.height }

// CurrentSize probes the controlling terminal's size via
// golang.org/x/term, falling back to (80, 24) on failure. It's a
// best-effort helper for callers sizing their initial Context; it is
// not used internally and never reflects a live resize: Context's
// dimensions are fixed for its lifetime.
func CurrentSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}
