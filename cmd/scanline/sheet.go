package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/imageio"
	"github.com/taigrr/scanline/pkg/render"
)

func newSheetCmd(g *globals) *cobra.Command {
	var (
		flags config.Flags
		cols  int
		tile  int
	)

	cmd := &cobra.Command{
		Use:   "sheet [scene]",
		Short: "Render every shading mode into one labelled contact sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				flags.Scene = args[0]
			}
			cfg, err := g.settings(flags)
			if err != nil {
				return err
			}
			if cfg.Output == "" {
				cfg.Output = "sheet.png"
			}

			s, err := loadScene(cfg)
			if err != nil {
				return err
			}

			var tiles []imageio.Tile
			for _, mode := range render.Modes() {
				if err := cmd.Context().Err(); err != nil {
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
				slog.Debug("sheet tile", "shading", mode, "fragments", r.Stats.Fragments)
				tiles = append(tiles, imageio.Tile{Label: mode.String(), Image: fb.ToImage()})
			}

			size := tile
			if size <= 0 {
				size = max(cfg.Width, cfg.Height)
			}
			if err := imageio.WriteFile(cfg.Output, imageio.ContactSheet(tiles, cols, size)); err != nil {
				return err
			}
			slog.Info("contact sheet written", "output", cfg.Output, "tiles", len(tiles))
			return nil
		},
	}

	addSceneFlags(cmd, &flags)
	cmd.Flags().IntVar(&cols, "cols", 4, "tiles per row")
	cmd.Flags().IntVar(&tile, "tile", 0, "tile size in pixels (default: the render size)")
	return cmd
}
