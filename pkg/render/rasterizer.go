// Package render implements a scanline perspective triangle rasterizer with
// a z-buffer and a choice of shading modes.
package render

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// depthClear is the initial depth buffer value. Any accepted fragment has a
// depth in [0, 1], so it always passes against an untouched pixel.
const depthClear = 2.0

// Rasterizer renders faces into a new framebuffer.
//
// A Rasterizer is not safe for concurrent use: it owns the random source
// used by ShadeRandom and records statistics for the last call. Use one per
// goroutine.
type Rasterizer struct {
	Background Color      // fill colour for uncovered pixels; alpha is ignored
	Rand       *rand.Rand // ShadeRandom colour source; nil uses the global source
	Stats      Stats      // counters for the last Rasterize call
}

// Stats counts what happened during one render.
type Stats struct {
	Faces     int // faces submitted
	Rejected  int // faces dropped during setup
	Fragments int // pixels written
	Occluded  int // fragments that failed the depth test
	Duration  time.Duration
}

// NewRasterizer creates a rasterizer with a black background.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Background: ColorBlack}
}

// Seed makes ShadeRandom colours reproducible.
func (r *Rasterizer) Seed(seed uint64) {
	r.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Rasterize renders faces as seen by cam into a width × height framebuffer.
//
// Faces entirely in front of the near plane or behind the far plane are
// dropped whole; faces straddling either plane are drawn from their
// extrapolated coordinates and rely on the per-pixel depth range test.
// The mode is checked before any work is done, so an unsupported mode
// returns a nil framebuffer.
func (r *Rasterizer) Rasterize(faces []Face, cam Camera, width, height int, mode Shading) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(faces) == 0 {
		return nil, ErrEmptyScene
	}
	shade, err := mode.shader()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	r.Stats = Stats{Faces: len(faces)}

	rnd := rand.Float64
	if r.Rand != nil {
		rnd = r.Rand.Float64
	}

	mvp := cam.ViewProjection()
	tris := make([]triangle, 0, len(faces))
	for i := range faces {
		t := setupTriangle(&faces[i], mvp, cam.View, width, height, mode, rnd)
		if !t.renderable {
			r.Stats.Rejected++
			continue
		}
		tris = append(tris, t)
	}

	fb := NewFramebuffer(width, height)
	fb.Clear(RGB(r.Background.R, r.Background.G, r.Background.B))
	depth := newDepthBuffer(width * height)

	for row := range height {
		for i := range tris {
			r.scanRow(fb, depth, &tris[i], row, shade)
		}
	}

	r.Stats.Duration = time.Since(start)
	Logger().Debug("rasterized",
		"mode", mode,
		"size", fmt.Sprintf("%dx%d", width, height),
		"faces", r.Stats.Faces,
		"rejected", r.Stats.Rejected,
		"fragments", r.Stats.Fragments,
		"occluded", r.Stats.Occluded,
		"duration", r.Stats.Duration,
	)
	return fb, nil
}

// scanRow draws the part of t that covers pixel row row.
func (r *Rasterizer) scanRow(fb *Framebuffer, depth []float64, t *triangle, row int, shade shader) {
	y := float64(row) + 0.5
	if !(t.bbMin.Y < y && y < t.bbMax.Y) {
		return
	}
	span, edges, ok := t.intercepts(y)
	if !ok || span[0] >= float64(fb.Width) {
		return
	}

	f := fragment{tri: t, y: y, span: span, edges: edges}
	base := row * fb.Width
	for i := int(max(span[0], 0)); float64(i) < span[1] && i < fb.Width; i++ {
		f.x = float64(i)
		f.l = barycentric(&t.pixel, f.x, y)
		f.depth = 1 / (f.l[0]/t.ndc[0].Z + f.l[1]/t.ndc[1].Z + f.l[2]/t.ndc[2].Z)

		idx := base + i
		if !(f.depth < depth[idx] && f.depth >= 0 && f.depth <= 1) {
			r.Stats.Occluded++
			continue
		}
		fb.Pixels[idx] = shade(&f)
		depth[idx] = f.depth
		r.Stats.Fragments++
	}
}

// Rasterize renders with a fresh default Rasterizer.
func Rasterize(faces []Face, cam Camera, width, height int, mode Shading) (*Framebuffer, error) {
	return NewRasterizer().Rasterize(faces, cam, width, height, mode)
}

// newDepthBuffer returns n depth values set to depthClear.
func newDepthBuffer(n int) []float64 {
	buf := make([]float64, n)
	if n == 0 {
		return buf
	}
	// copy-doubling fill
	buf[0] = depthClear
	for i := 1; i < n; i *= 2 {
		copy(buf[i:], buf[:i])
	}
	return buf
}
