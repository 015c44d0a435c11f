package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/turntable"
)

const (
	previewFPS   = 30
	spinImpulse  = 3.0
	spinKick     = 15.0
	previewStart = render.ShadeNormalBarycentric
)

func newPreviewCmd(g *globals) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Show a scene in the terminal",
		Long: "preview draws the scene with half-block cells and orbits the camera with\n" +
			"the arrow keys.\n\n" +
			"Controls:\n" +
			"  a/d, left/right  spin the camera\n" +
			"  space            kick the spin\n" +
			"  1-8              choose a shading mode\n" +
			"  w                toggle the wireframe overlay\n" +
			"  r                reset the view\n" +
			"  q, esc, ctrl+c   quit",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				flags.Scene = args[0]
			}
			if flags.Shading == "" {
				flags.Shading = previewStart.String()
			}
			cfg, err := g.settings(flags)
			if err != nil {
				return err
			}
			s, err := loadScene(cfg)
			if err != nil {
				return err
			}
			return runPreview(cmd.Context(), s, cfg)
		},
	}

	addSceneFlags(cmd, &flags)
	cmd.Flags().StringVarP(&flags.Shading, "shading", "s", "", "initial shading mode")
	return cmd
}

// previewState is everything the key handler can change.
type previewState struct {
	mode      render.Shading
	wireframe bool
	spin      turntable.Spin
	dirty     bool
	quit      bool
}

func (p *previewState) handleKey(ev uv.KeyPressEvent) {
	modes := render.Modes()
	switch {
	case ev.MatchString("q", "escape", "ctrl+c"):
		p.quit = true
	case ev.MatchString("a", "left"):
		p.spin.Impulse(-spinImpulse)
	case ev.MatchString("d", "right"):
		p.spin.Impulse(spinImpulse)
	case ev.MatchString("space"):
		p.spin.Impulse(spinKick)
	case ev.MatchString("w"):
		p.wireframe = !p.wireframe
	case ev.MatchString("r"):
		p.spin = turntable.NewSpin(previewFPS)
	default:
		for i, m := range modes {
			if ev.MatchString(fmt.Sprint(i + 1)) {
				p.mode = m
			}
		}
	}
	p.dirty = true
}

func runPreview(ctx context.Context, s *scene, cfg config.Config) error {
	mode, err := cfg.ShadingMode()
	if err != nil {
		return err
	}
	r, err := rasterizer(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			slog.Debug("terminal shutdown", "error", err)
		}
	}()

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}

	tr := render.NewTerminalRenderer(term, width, height)
	state := &previewState{mode: mode, wireframe: cfg.Wireframe, spin: turntable.NewSpin(previewFPS), dirty: true}

	ticker := time.NewTicker(time.Second / previewFPS)
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				if err := term.Resize(width, height); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
				tr = render.NewTerminalRenderer(term, width, height)
				state.dirty = true
			case uv.KeyPressEvent:
				state.handleKey(ev)
				if state.quit {
					return nil
				}
			}

		case <-ticker.C:
			if !state.spin.Resting() {
				state.spin.Update()
				state.dirty = true
			}
			if !state.dirty {
				continue
			}
			state.dirty = false

			fbW, fbH := tr.FramebufferSize()
			if fbW <= 0 || fbH <= 0 {
				continue
			}
			cam := turntable.Cameras(aspectCamera(s.camera, fbW, fbH), []float64{state.spin.Angle})[0]

			frame := cfg
			frame.Width, frame.Height = fbW, fbH
			frame.Wireframe = state.wireframe
			fb, err := s.draw(r, cam, frame, state.mode)
			if err != nil {
				return err
			}
			tr.Render(fb)
			if err := tr.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}
}

// aspectCamera widens or narrows the horizontal frustum so square pixels
// stay square in a width × height framebuffer.
func aspectCamera(c render.Camera, width, height int) render.Camera {
	aspect := float64(width) / float64(height)
	half := (c.Top - c.Bottom) / 2 * aspect
	mid := (c.Left + c.Right) / 2
	c.Left, c.Right = mid-half, mid+half
	c.Update()
	return c
}
