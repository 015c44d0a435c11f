// scanline renders OBJ and glTF scenes with a CPU scanline rasterizer.
//
// Usage:
//
//	scanline render scene.obj -o out.png --shading gouraud-z
//	scanline sheet scene.obj -o modes.png
//	scanline turntable scene.glb -o frames/ --frames 36
//	scanline preview scene.obj
//	scanline camera init camera.txt
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
)

var version = "dev"

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "scanline",
		Short: "Render triangle meshes with a CPU scanline rasterizer",
		Long: "scanline projects OBJ and glTF meshes through a perspective camera and\n" +
			"fills them one scanline at a time with a depth buffer and eight shading modes.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			render.SetLogger(logger)
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "JSON settings file")
	root.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "log debug output")

	root.AddCommand(
		newRenderCmd(g),
		newSheetCmd(g),
		newTurntableCmd(g),
		newPreviewCmd(g),
		newCameraCmd(),
	)
	return root
}

// settings loads the config file, if any, and applies flags and defaults.
func (g *globals) settings(flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// addSceneFlags registers the flags every rendering command shares.
func addSceneFlags(cmd *cobra.Command, f *config.Flags) {
	fl := cmd.Flags()
	fl.StringVarP(&f.Camera, "camera", "c", "", "camera file (15 numbers); default looks down +z from the origin")
	fl.StringVarP(&f.Output, "output", "o", "", "output path")
	fl.IntVarP(&f.Width, "width", "W", 0, "image width in pixels (default 512)")
	fl.IntVarP(&f.Height, "height", "H", 0, "image height in pixels (default 512)")
	fl.StringVar(&f.Background, "background", "", "background colour as r,g,b (default 0,0,0)")
	fl.Uint64Var(&f.Seed, "seed", 0, "seed for random shading; 0 is unseeded")
	fl.BoolVar(&f.Wireframe, "wireframe", false, "overlay triangle edges")
	fl.BoolVar(&f.Fit, "fit", false, "centre and scale the mesh in front of the camera")
}
