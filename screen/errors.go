package screen

import "errors"

// Error taxonomy for the pane compositor and differential renderer.
// None of these are ever panics: every failure is returned to the
// caller, and a failed Render leaves the cache untouched so the caller
// can safely retry.
var (
	// ErrInvalidDimensions is returned by New and RegisterPane when
	// width or height is zero.
	ErrInvalidDimensions = errors.New("screen: invalid dimensions")

	// ErrInvalidCoordinates is returned by Pane.Set when the pane-local
	// coordinate falls outside the pane's own rectangle.
	ErrInvalidCoordinates = errors.New("screen: coordinates outside pane")

	// ErrInvalidPane is returned by Pane.Set when the target cell's
	// render-mask entry doesn't match the pane's id (another pane, or
	// no pane, owns that cell).
	ErrInvalidPane = errors.New("screen: cell not owned by pane")

	// ErrEscapeBufferOverflow is returned by Render when a single
	// cursor-move escape would not fit in its fixed-size scratch
	// buffer. The frame is aborted and the cache is left unchanged.
	ErrEscapeBufferOverflow = errors.New("screen: escape buffer overflow")

	// ErrWriteBufferOverflow is returned by Render when the assembled
	// frame would exceed the per-frame byte budget. The frame is
	// aborted and the cache is left unchanged.
	ErrWriteBufferOverflow = errors.New("screen: write buffer overflow")

	// ErrFlushFailed wraps an underlying write error from the output
	// writer. The cache is left unchanged.
	ErrFlushFailed = errors.New("screen: flush failed")
)
