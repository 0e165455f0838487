// Command rycedemo drives screen, input, and tick against a live
// terminal: a syntax-highlighted code pane and a status line that
// describes the most recent mouse/keyboard event together with the
// measured ticks-per-second.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ohkthx/rycetui/glyph"
	"github.com/ohkthx/rycetui/highlight"
	"github.com/ohkthx/rycetui/input"
	"github.com/ohkthx/rycetui/screen"
	"github.com/ohkthx/rycetui/signals"
	"github.com/ohkthx/rycetui/tick"
)

const sampleCode = `package main

func main() {
	// rycetui demo pane
	println("hello")
}
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		width, height int
		targetTPS     int
		mouseMode     string
	)

	cmd := &cobra.Command{
		Use:   "rycedemo",
		Short: "Interactive demo of the rycetui rendering and input pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMouseMode(mouseMode)
			if err != nil {
				return err
			}
			return run(cmd.Context(), width, height, targetTPS, mode)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&width, "width", 80, "screen width in columns")
	flags.IntVar(&height, "height", 24, "screen height in rows")
	flags.IntVar(&targetTPS, "tps", 30, "main loop ticks per second")
	flags.StringVar(&mouseMode, "mouse-mode", "sgr", "mouse tracking mode: basic, button, any, sgr")

	return cmd
}

func parseMouseMode(s string) (input.MouseMode, error) {
	switch strings.ToLower(s) {
	case "basic":
		return input.MouseModeBasic, nil
	case "button":
		return input.MouseModeButton, nil
	case "any":
		return input.MouseModeAny, nil
	case "sgr":
		return input.MouseModeSGR, nil
	default:
		return 0, fmt.Errorf("unknown mouse mode %q", s)
	}
}

func run(parent context.Context, width, height, targetTPS int, mouseMode input.MouseMode) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scr, err := screen.New(width, height, screen.WithHideCursorOnInit(true))
	if err != nil {
		return err
	}

	headerPane, err := screen.RegisterPane(scr, 0, 0, width, 1)
	if err != nil {
		return err
	}
	codePane, err := screen.RegisterPane(scr, 0, 1, width, height-2)
	if err != nil {
		return err
	}
	statusPane, err := screen.RegisterPane(scr, 0, height-1, width, 1)
	if err != nil {
		return err
	}

	headerPane.SetString(0, 0, glyph.NewStyle(glyph.ColorCyan, glyph.ColorDefault, glyph.FlagBold), "rycetui demo (q to quit)")

	col, row := 0, 0
	for _, span := range highlight.Highlight(sampleCode, "go") {
		for _, r := range span.Text {
			if r == '\n' {
				col, row = 0, row+1
				continue
			}
			_ = codePane.Set(col, row, glyph.Glyph{Ch: r, Style: span.Style})
			col++
		}
	}

	pipeline := input.New(input.WithMouseMode(mouseMode))
	if err := pipeline.Listen(ctx); err != nil {
		return err
	}
	defer func() {
		cancel()
		pipeline.Join()
	}()

	loop, err := tick.New(targetTPS)
	if err != nil {
		return err
	}

	status := signals.New("waiting for input...")
	signals.CreateEffect(func() {
		statusPane.SetString(0, 0, glyph.DefaultStyle, padRight(status.Get(), width))
	})

	for {
		if _, err := loop.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		for _, ev := range pipeline.Drain() {
			if quit(ev) {
				return nil
			}
			status.Set(describeEvent(ev, loop.TPS().Peek()))
		}

		if err := scr.Render(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func quit(ev input.Event) bool {
	return ev.Type == input.EventKey && (ev.Key == 'q' || ev.Key == 0x03)
}

func describeEvent(ev input.Event, tps float64) string {
	if ev.Type == input.EventMouse {
		action := "press"
		if ev.Released {
			action = "release"
		}
		return fmt.Sprintf("mouse %s button=%d (%d,%d) tps=%.1f", action, ev.Button, ev.X, ev.Y, tps)
	}
	return fmt.Sprintf("key=%q tps=%.1f", ev.Key, tps)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
