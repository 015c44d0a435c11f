package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

var errNoScene = errors.New("no scene: pass a model path or set \"scene\" in the config file")

// fitDistance is how far in front of the eye, in near-plane units, a fitted
// mesh is centred. The fitted size is the same number of units.
const fitDistance = 3

// scene is a loaded mesh ready to rasterize.
type scene struct {
	faces  []render.Face
	camera render.Camera
}

func loadScene(cfg config.Config) (*scene, error) {
	if cfg.Scene == "" {
		return nil, errNoScene
	}

	cam := render.DefaultCamera()
	if cfg.Camera != "" {
		var err error
		if cam, err = render.LoadCamera(cfg.Camera); err != nil {
			return nil, err
		}
	}

	mesh, err := models.Load(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Scene, err)
	}
	slog.Debug("scene loaded", "path", cfg.Scene,
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(),
		"materials", len(mesh.Materials))

	if cfg.Fit {
		target := cam.Eye.Add(cam.Forward.Scale(fitDistance * cam.Near))
		mesh.Fit(target, fitDistance*cam.Near)
		cam.Center = target
		cam.Update()
	}

	if !cam.Frustum().IntersectsBox(mesh.BoundsMin, mesh.BoundsMax) {
		slog.Warn("scene lies outside the camera's view; try --fit",
			"min", fmtVec(mesh.BoundsMin), "max", fmtVec(mesh.BoundsMax))
	}

	return &scene{faces: mesh.RenderFaces(), camera: cam}, nil
}

// rasterizer builds a rasterizer with the configured background and seed.
func rasterizer(cfg config.Config) (*render.Rasterizer, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	r := render.NewRasterizer()
	r.Background = bg
	if cfg.Seed != 0 {
		r.Seed(cfg.Seed)
	}
	return r, nil
}

// draw renders one frame of s, with the wireframe overlay if requested.
func (s *scene) draw(r *render.Rasterizer, cam render.Camera, cfg config.Config, mode render.Shading) (*render.Framebuffer, error) {
	fb, err := r.Rasterize(s.faces, cam, cfg.Width, cfg.Height, mode)
	if err != nil {
		return nil, err
	}
	if cfg.Wireframe {
		render.DrawWireframe(fb, s.faces, cam, render.ColorGreen)
	}
	return fb, nil
}
