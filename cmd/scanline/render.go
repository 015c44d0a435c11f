package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/imageio"
)

func newRenderCmd(g *globals) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene to an image file",
		Example: "  scanline render teapot.obj -o teapot.png --shading barycentric-z\n" +
			"  scanline render duck.glb -c camera.txt -o duck.webp --wireframe",
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
				cfg.Output = "out.png"
			}

			s, err := loadScene(cfg)
			if err != nil {
				return err
			}
			mode, err := cfg.ShadingMode()
			if err != nil {
				return err
			}
			r, err := rasterizer(cfg)
			if err != nil {
				return err
			}

			fb, err := s.draw(r, s.camera, cfg, mode)
			if err != nil {
				return err
			}
			if err := imageio.WriteFile(cfg.Output, fb.ToImage()); err != nil {
				return err
			}

			slog.Info("rendered", "output", cfg.Output, "shading", mode,
				"faces", r.Stats.Faces, "rejected", r.Stats.Rejected,
				"fragments", r.Stats.Fragments, "took", r.Stats.Duration)
			return nil
		},
	}

	addSceneFlags(cmd, &flags)
	cmd.Flags().StringVarP(&flags.Shading, "shading", "s", "", "shading mode: none, white, random, flat, gouraud, barycentric, gouraud-z, barycentric-z")
	return cmd
}
