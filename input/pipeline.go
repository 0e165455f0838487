package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const initialEventCapacity = 16

// Pipeline reads raw stdin bytes on a dedicated goroutine, parses them
// into key and mouse events, and exposes them to a consumer through a
// mutex-guarded, swap-on-drain event buffer. The reader goroutine is
// the only thing that ever blocks on stdin; the consumer just polls
// Drain.
type Pipeline struct {
	in  io.Reader
	out io.Writer
	tty *os.File
	mw  MouseMode

	mu     sync.Mutex
	events []Event

	oldState *term.State

	done    chan struct{}
	readErr error

	listening bool
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithMouseMode selects the mouse-tracking escape enabled at
// listen-start. Defaults to MouseModeSGR.
func WithMouseMode(m MouseMode) Option {
	return func(p *Pipeline) { p.mw = m }
}

// WithReader overrides the byte source read on the reader goroutine.
// Defaults to os.Stdin. Supplying a reader that is not an *os.File (as
// tests do) also disables the raw-mode enable/restore dance, since there
// is no file descriptor to put into raw mode.
func WithReader(r io.Reader) Option {
	return func(p *Pipeline) { p.in = r }
}

// WithOutput overrides the writer the mouse-mode-enable escape is sent
// to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// New constructs a Pipeline. Listen must be called to start the reader.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		in:     os.Stdin,
		out:    os.Stdout,
		mw:     MouseModeSGR,
		events: make([]Event, 0, initialEventCapacity),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if f, ok := p.in.(*os.File); ok {
		p.tty = f
	}
	return p
}

// Listen captures the current terminal attributes, enters raw mode,
// enables the configured mouse-tracking mode, and starts the reader
// goroutine. It returns once setup completes; the reader continues in
// the background until ctx is canceled or Stop is called.
func (p *Pipeline) Listen(ctx context.Context) error {
	p.mu.Lock()
	if p.listening {
		p.mu.Unlock()
		return ErrAlreadyListening
	}
	p.listening = true
	p.mu.Unlock()

	if p.tty != nil {
		oldState, err := term.MakeRaw(int(p.tty.Fd()))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTermAttrSet, err)
		}
		p.oldState = oldState
	}

	if _, err := io.WriteString(p.out, p.mw.escape()); err != nil {
		p.restoreLocked()
		return err
	}

	go p.readLoop(ctx)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop signals the reader goroutine to exit at its next between-read
// check. It neither restores the captured terminal attributes nor
// waits for the reader; Join restores the attributes.
func (p *Pipeline) Stop() {
	select {
	case <-p.done:
		return
	default:
		close(p.done)
	}
}

// ReadErr returns the error that caused the reader goroutine to stop on
// its own (an unexpected end of input, typically), or nil if it hasn't
// stopped or was stopped via Stop/ctx cancellation instead.
func (p *Pipeline) ReadErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readErr
}

// Join blocks until the pipeline has been stopped (Stop was called, ctx
// was canceled, or the reader hit a read error), then restores the
// captured terminal attributes and returns any error from that restore;
// the reader's own error is available from ReadErr. It does not wait
// for a reader goroutine still blocked in a read to return. Returns
// ErrNotListening if Listen was never called.
func (p *Pipeline) Join() error {
	p.mu.Lock()
	listening := p.listening
	p.mu.Unlock()
	if !listening {
		return ErrNotListening
	}

	<-p.done
	return p.restoreLocked()
}

func (p *Pipeline) restoreLocked() error {
	if p.oldState == nil || p.tty == nil {
		return nil
	}
	if err := term.Restore(int(p.tty.Fd()), p.oldState); err != nil {
		return fmt.Errorf("%w: %v", ErrTermAttrSet, err)
	}
	return nil
}

// Drain atomically swaps the shared event buffer for a fresh empty one
// and returns ownership of the filled buffer to the caller. This lets
// the consumer iterate events without holding the lock while the
// reader goroutine keeps enqueuing into the new buffer. An empty
// buffer costs no allocation.
func (p *Pipeline) Drain() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == 0 {
		return nil
	}
	full := p.events
	p.events = make([]Event, 0, cap(full))
	return full
}

func (p *Pipeline) enqueue(events ...Event) {
	if len(events) == 0 {
		return
	}
	p.mu.Lock()
	p.events = append(p.events, events...)
	p.mu.Unlock()
}

// readLoop is the reader goroutine. It reads one byte at a time,
// checking the stop signal between reads, dispatching ESC-prefixed
// sequences to parseEscape and everything else as a plain key event.
func (p *Pipeline) readLoop(ctx context.Context) {
	br := bufio.NewReader(p.in)

	for {
		select {
		case <-p.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		b, err := br.ReadByte()
		if err != nil {
			p.mu.Lock()
			p.readErr = err
			p.mu.Unlock()
			p.Stop()
			return
		}

		if b == 0x1b {
			p.enqueue(parseEscape(br)...)
		} else {
			p.enqueue(Event{Type: EventKey, Key: b})
		}
	}
}
