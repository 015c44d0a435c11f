package turntable

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/scanline/pkg/render"
)

// Options configure a turntable render.
type Options struct {
	Width, Height int
	Mode          render.Shading
	Background    render.Color
	// Workers bounds the frames rendered at once; zero uses every CPU.
	Workers int
	// Seed seeds frame i's random colours with Seed+i.
	Seed uint64
}

// Render rasterizes faces once per camera, in parallel. Frames are returned in
// camera order. The first failure cancels frames that have not started.
func Render(ctx context.Context, faces []render.Face, cams []render.Camera, opts Options) ([]*render.Framebuffer, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	frames := make([]*render.Framebuffer, len(cams))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cam := range cams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := render.NewRasterizer()
			r.Background = opts.Background
			r.Seed(opts.Seed + uint64(i))

			fb, err := r.Rasterize(faces, cam, opts.Width, opts.Height, opts.Mode)
			if err != nil {
				return err
			}
			frames[i] = fb
			render.Logger().Debug("turntable frame", "frame", i, "fragments", r.Stats.Fragments)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}
