package screen

import "github.com/ohkthx/rycetui/glyph"

// Pane is a registered rectangle within a Context's grid. It is a view
// onto the Context's shared storage, not an independent buffer: all
// writes resolve through the Context's render mask, which is what gives
// two panes exclusive, non-overlapping write access to their own cells.
type Pane struct {
	id   PaneID
	x, y int
	w, h int
	ctx  *Context
}

// ID returns the pane's identifier, unique within its Context.
func (p *Pane) ID() PaneID { return p.id }

// Bounds returns the pane's rectangle in its Context's coordinate space,
// as registered (not clipped).
func (p *Pane) Bounds() (x, y, w, h int) { return p.x, p.y, p.w, p.h }

// RegisterPane allocates a new pane at (x, y, w, h) within ctx. Every
// in-bounds cell of the rectangle is stamped with the new pane's id in
// the render mask and reset to the default glyph; cells outside the
// context's grid are silently skipped (the pane is clipped to the
// screen). A later RegisterPane call's mask writes overwrite earlier
// ones for any cell claimed by both: overlap is not detected, it is
// simply last-writer-wins on the mask.
func RegisterPane(ctx *Context, x, y, w, h int) (*Pane, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	ctx.nextPaneID++
	id := PaneID(ctx.nextPaneID)

	x0, y0 := x, y
	x1, y1 := x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > ctx.width {
		x1 = ctx.width
	}
	if y1 > ctx.height {
		y1 = ctx.height
	}

	for yy := y0; yy < y1; yy++ {
		rowOff := yy * ctx.width
		for xx := x0; xx < x1; xx++ {
			idx := rowOff + xx
			ctx.mask[idx] = id
			ctx.update[idx] = glyph.Blank
		}
	}

	return &Pane{id: id, x: x, y: y, w: w, h: h, ctx: ctx}, nil
}

// Set writes a glyph at the pane-local coordinate (px, py). It fails
// with ErrInvalidCoordinates if the coordinate is outside the pane's own
// rectangle, or ErrInvalidPane if the resolved global cell's render-mask
// entry doesn't match this pane's id (another pane claimed it, or it
// was clipped off-screen at registration).
func (p *Pane) Set(px, py int, g glyph.Glyph) error {
	if px < 0 || px >= p.w || py < 0 || py >= p.h {
		return ErrInvalidCoordinates
	}

	gx, gy := p.x+px, p.y+py
	if gx < 0 || gx >= p.ctx.width || gy < 0 || gy >= p.ctx.height {
		return ErrInvalidPane
	}

	idx := gy*p.ctx.width + gx
	if p.ctx.mask[idx] != p.id {
		return ErrInvalidPane
	}

	p.ctx.update[idx] = g
	return nil
}

// SetString writes style-uniform runes left-to-right starting at
// (px, py), stopping at the pane's right edge; trailing characters are
// silently dropped. Any per-cell error (a cell outside the pane's
// clipped region, or claimed by another pane) is likewise silently
// skipped; writing continues with the next character.
func (p *Pane) SetString(px, py int, style glyph.Style, s string) {
	x := px
	for _, r := range s {
		if x >= p.w {
			return
		}
		_ = p.Set(x, py, glyph.Glyph{Ch: r, Style: style})
		x++
	}
}

// Clear resets every cell this pane owns (per the render mask) back to
// the default glyph. Mask-id-gated: it never touches a cell it doesn't
// own, even if that cell falls within the pane's nominal rectangle
// (e.g. an overlapping pane claimed it later).
func (p *Pane) Clear() {
	for idx, id := range p.ctx.mask {
		if id == p.id {
			p.ctx.update[idx] = glyph.Blank
		}
	}
}
