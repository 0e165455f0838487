package screen

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/ohkthx/rycetui/glyph"
)

// moveBufCap bounds a single cursor-move escape's assembled size
// before it's appended to the frame; overflowing it is an error rather
// than a panic.
const moveBufCap = 32

// moveOverhead is the literal byte cost of a move escape beyond its two
// decimal fields: "\x1b[" + ";" + "H" = 4 bytes. Using the true fixed
// overhead here, rather than a rounder approximation, keeps the
// skip-vs-move cost comparison honest.
const moveOverhead = 4

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

// appendMove appends a 1-based cursor-position escape targeting
// (row, col) to buf, returning ErrEscapeBufferOverflow if the assembled
// sequence would not fit in the fixed move-escape scratch size.
func appendMove(buf []byte, row, col int) ([]byte, error) {
	start := len(buf)
	buf = append(buf, '\x1b', '[')
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'H')
	if len(buf)-start > moveBufCap {
		return buf[:start], ErrEscapeBufferOverflow
	}
	return buf, nil
}

// appendStyleDiff appends the minimal SGR escape transitioning from
// "from" to "to", or nothing at all if no parameter changed.
func appendStyleDiff(buf []byte, from, to glyph.Style) []byte {
	var codes [10]int
	n := 0

	if from.Foreground() != to.Foreground() {
		codes[n] = to.Foreground().FGCode()
		n++
	}
	if from.Background() != to.Background() {
		codes[n] = to.Background().BGCode()
		n++
	}
	fromFlags, toFlags := from.Flags(), to.Flags()
	for _, fc := range glyph.FlagCodes() {
		was := fromFlags&fc.Flag != 0
		is := toFlags&fc.Flag != 0
		if was == is {
			continue
		}
		if is {
			codes[n] = fc.On
		} else {
			codes[n] = fc.Off
		}
		n++
	}

	if n == 0 {
		return buf
	}

	buf = append(buf, '\x1b', '[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = strconv.AppendInt(buf, int64(codes[i]), 10)
	}
	buf = append(buf, 'm')
	return buf
}

// Render walks every cell once in row-major order, emitting exactly the
// escape sequences and characters needed to bring the terminal from the
// cached frame to the update frame. On success, cache equals update
// cell-for-cell and the terminal's visible state matches it. On failure
// the cache, cursor and style are left exactly as they were before the
// call, so the caller can retry the same diff.
func (ctx *Context) Render() error {
	w, h := ctx.width, ctx.height
	total := w * h

	buf := ctx.writeBuf[:0]
	limit := cap(ctx.writeBuf)

	cursorX, cursorY := ctx.cursorX, ctx.cursorY
	style := ctx.style

	skipOpen := false
	var skipStart, skipEnd int

	fits := func(n int) bool { return len(buf)+n <= limit }

	// emit prints the glyph at cell i (grid coordinate x, y), moving the
	// cursor and diffing the active SGR state first if needed. Used both
	// for genuinely dirty cells and for a reprinted skip run, since a
	// reprinted cell's style may still differ from the currently active
	// SGR even though its content already matches the cache. It returns
	// the number of columns the glyph occupies (1, or 2 under
	// WithWideChars for a double-width rune), which the caller uses to
	// step past the glyph's shadow column instead of examining it as a
	// cell of its own.
	emit := func(i, x, y int) (int, error) {
		g := ctx.update[i]

		if cursorX != x || cursorY != y {
			if !fits(moveBufCap) {
				return 0, ErrWriteBufferOverflow
			}
			var err error
			buf, err = appendMove(buf, y+1, x+1)
			if err != nil {
				return 0, err
			}
		}

		if g.Style != style {
			before := len(buf)
			buf = appendStyleDiff(buf, style, g.Style)
			if len(buf) > limit {
				buf = buf[:before]
				return 0, ErrWriteBufferOverflow
			}
			style = g.Style
		}

		if !fits(utf8.RuneLen(g.Ch)) {
			return 0, ErrWriteBufferOverflow
		}
		buf = utf8.AppendRune(buf, g.Ch)

		adv := 1
		if ctx.wide {
			if rw := runewidth.RuneWidth(g.Ch); rw > adv {
				adv = rw
			}
		}
		cursorX, cursorY = x+adv, y
		if cursorX >= w {
			cursorX, cursorY = cursorX-w, y+1
		}
		return adv, nil
	}

	for i := 0; i < total; i++ {
		x := i % w
		y := i / w

		// Skip on content+style equality alone (glyph.Glyph's ==), not
		// on equality against the currently active SGR: a run of
		// unchanged cells can still carry styles that differ from each
		// other and from the active SGR, so a reprint decision below
		// must diff style per cell rather than assuming the whole run
		// shares one style.
		if ctx.update[i] == ctx.cache[i] {
			if !skipOpen {
				skipOpen = true
				skipStart = i
			}
			skipEnd = i + 1
			continue
		}

		if skipOpen {
			skipped := skipEnd - skipStart
			moveCost := digits(y+1) + digits(x+1) + moveOverhead

			if skipped > 0 && skipped <= moveCost {
				// Cheaper (or a tie, which breaks toward reprint) to
				// walk forward through the unchanged run, re-emitting
				// it, than to move past it.
				for k := skipStart; k < i; {
					adv, err := emit(k, k%w, k/w)
					if err != nil {
						return err
					}
					k += adv
				}
			}
			// Otherwise the move past the skip run is cheaper; emit
			// below positions the cursor directly at (x, y).
			skipOpen = false
		}

		adv, err := emit(i, x, y)
		if err != nil {
			return err
		}
		// A double-width glyph's shadow column is never examined on its
		// own: the terminal already occupies it when it renders this
		// glyph, so treating it as a separate dirty/clean cell would
		// re-diff a column nothing actually wrote to independently.
		i += adv - 1
	}

	// The tidy final move isn't counted against the per-frame budget;
	// it's appended after the budget check, as a fixed-size suffix.
	tidy, err := appendMove(nil, h, w)
	if err != nil {
		return err
	}
	out := append(buf, tidy...)

	if len(out) > 0 {
		if _, err := ctx.out.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrFlushFailed, err)
		}
	}

	copy(ctx.cache, ctx.update)
	ctx.cursorX, ctx.cursorY = w, h
	ctx.style = style
	ctx.writeBuf = buf[:0]

	return nil
}
