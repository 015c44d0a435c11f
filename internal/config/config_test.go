package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/taigrr/scanline/pkg/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanline.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"scene": "cube.obj", "width": 320, "shading": "flat", "wireframe": true}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scene != "cube.obj" || cfg.Width != 320 || cfg.Shading != "flat" || !cfg.Wireframe {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Height != 0 {
		t.Errorf("Height = %d, want unset", cfg.Height)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
	if _, err := Load(writeConfig(t, `{"width": "wide"}`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Width != DefaultSize || cfg.Height != DefaultSize {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Shading != DefaultShading || cfg.Background != DefaultBackground {
		t.Errorf("shading = %q, background = %q", cfg.Shading, cfg.Background)
	}
	if cfg.Workers != runtime.NumCPU() || cfg.Frames != DefaultFrames {
		t.Errorf("workers = %d, frames = %d", cfg.Workers, cfg.Frames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{Scene: "a.obj", Width: 100, Height: 50, Shading: "white", Seed: 3, Fit: true}
	cfg.Resolve(Flags{Scene: "b.glb", Height: 80, Shading: "gouraud", Wireframe: true})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"scene", cfg.Scene, "b.glb"},
		{"width kept", cfg.Width, 100},
		{"height", cfg.Height, 80},
		{"shading", cfg.Shading, "gouraud"},
		{"seed kept", cfg.Seed, uint64(3)},
		{"wireframe", cfg.Wireframe, true},
		{"fit kept", cfg.Fit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Width: 8, Height: 8, Shading: "flat", Background: "1,2,3", Frames: 1}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"texture passes", func(c *Config) { c.Shading = "texture" }, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidSize},
		{"frames", func(c *Config) { c.Frames = 0 }, ErrInvalidFrameCount},
		{"shading", func(c *Config) { c.Shading = "phong" }, render.ErrUnsupportedShading},
		{"background", func(c *Config) { c.Background = "red" }, ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want render.Color
		err  bool
	}{
		{"0,0,0", render.ColorBlack, false},
		{" 255, 128 ,7", render.RGB(255, 128, 7), false},
		{"256,0,0", render.Color{}, true},
		{"-1,0,0", render.Color{}, true},
		{"1,2", render.Color{}, true},
		{"", render.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.err {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("err = %v, want ErrInvalidColor", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
