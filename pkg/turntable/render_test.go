package turntable

import (
	"context"
	"errors"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func screenFace() render.Face {
	n := math3d.V4(0, 0, -1, 0)
	return render.Face{
		Verts: [3]math3d.Vec4{
			math3d.V4(-4, -4, 5, 1),
			math3d.V4(4, -4, 5, 1),
			math3d.V4(0, 4, 5, 1),
		},
		Normals: [3]math3d.Vec4{n, n, n},
		Color:   render.ColorWhite,
	}
}

func TestRender(t *testing.T) {
	cams := Cameras(render.DefaultCamera(), []float64{0, 0, 0, 0})
	frames, err := Render(context.Background(), []render.Face{screenFace()}, cams, Options{
		Width: 16, Height: 16, Mode: render.ShadeRandom, Workers: 2, Seed: 7,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("len = %d, want 4", len(frames))
	}

	for i, fb := range frames {
		if fb == nil || fb.Width != 16 || fb.Height != 16 {
			t.Fatalf("frame %d = %+v", i, fb)
		}
	}

	// Seeds differ per frame, so random colours do too.
	if frames[0].GetPixel(8, 8) == frames[1].GetPixel(8, 8) {
		t.Error("frames 0 and 1 share a random colour")
	}
}

func TestRenderErrors(t *testing.T) {
	cams := Cameras(render.DefaultCamera(), []float64{0, 10})
	faces := []render.Face{screenFace()}

	tests := []struct {
		name string
		ctx  func() context.Context
		opts Options
		want error
	}{
		{
			name: "texture",
			ctx:  context.Background,
			opts: Options{Width: 8, Height: 8, Mode: render.ShadeTexture},
			want: render.ErrUnsupportedShading,
		},
		{
			name: "size",
			ctx:  context.Background,
			opts: Options{Width: 0, Height: 8, Mode: render.ShadeWhite},
			want: render.ErrInvalidSize,
		},
		{
			name: "cancelled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			opts: Options{Width: 8, Height: 8, Mode: render.ShadeWhite},
			want: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Render(tt.ctx(), faces, cams, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if frames != nil {
				t.Error("frames returned alongside an error")
			}
		})
	}
}
