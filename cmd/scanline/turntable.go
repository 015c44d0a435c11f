package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/imageio"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/turntable"
)

func newTurntableCmd(g *globals) *cobra.Command {
	var (
		flags   config.Flags
		degrees float64
		ease    float64
		format  string
	)

	cmd := &cobra.Command{
		Use:   "turntable [scene]",
		Short: "Render frames from a camera orbiting the scene",
		Long: "turntable rotates the camera eye around its centre about the up vector and\n" +
			"writes one numbered image per frame into the output directory. Frames are\n" +
			"rendered in parallel. Combine with --fit to orbit the mesh itself.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				flags.Scene = args[0]
			}
			cfg, err := g.settings(flags)
			if err != nil {
				return err
			}
			if cfg.Output == "" {
				cfg.Output = "frames"
			}

			ext := "." + strings.TrimPrefix(strings.ToLower(format), ".")
			if _, err := imageio.FormatFromPath(ext); err != nil {
				return err
			}

			s, err := loadScene(cfg)
			if err != nil {
				return err
			}
			mode, err := cfg.ShadingMode()
			if err != nil {
				return err
			}
			bg, err := cfg.BackgroundColor()
			if err != nil {
				return err
			}

			orbit := turntable.DefaultOrbit(cfg.Frames)
			orbit.Degrees = degrees
			if ease > 0 {
				orbit.Frequency, orbit.Damping = ease, 1
			}
			cams := turntable.Cameras(s.camera, orbit.Angles())

			frames, err := turntable.Render(cmd.Context(), s.faces, cams, turntable.Options{
				Width:      cfg.Width,
				Height:     cfg.Height,
				Mode:       mode,
				Background: bg,
				Workers:    cfg.Workers,
				Seed:       cfg.Seed,
			})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", cfg.Output, err)
			}
			for i, fb := range frames {
				if cfg.Wireframe {
					render.DrawWireframe(fb, s.faces, cams[i], render.ColorGreen)
				}
				path := filepath.Join(cfg.Output, fmt.Sprintf("frame_%03d%s", i, ext))
				if err := imageio.WriteFile(path, fb.ToImage()); err != nil {
					return err
				}
			}

			slog.Info("turntable written", "dir", cfg.Output, "frames", len(frames), "workers", cfg.Workers)
			return nil
		},
	}

	addSceneFlags(cmd, &flags)
	cmd.Flags().StringVarP(&flags.Shading, "shading", "s", "", "shading mode")
	cmd.Flags().IntVarP(&flags.Frames, "frames", "n", 0, "number of frames (default 36)")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "j", 0, "frames rendered at once (default: CPU count)")
	cmd.Flags().Float64Var(&degrees, "degrees", 360, "total orbit angle")
	cmd.Flags().Float64Var(&ease, "ease", 0, "spring frequency for an eased orbit; 0 spaces frames evenly")
	cmd.Flags().StringVar(&format, "format", "png", "frame format: png, webp, tga or ppm")
	return cmd
}
