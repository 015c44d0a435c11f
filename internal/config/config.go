// Package config loads render settings from a JSON file and merges them with
// command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/render"
)

// Config holds the scene, camera, output and render settings.
type Config struct {
	// Paths
	Scene  string `json:"scene"`
	Camera string `json:"camera"`
	Output string `json:"output"`

	// Render settings
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Shading    string `json:"shading"`
	Background string `json:"background"`
	Seed       uint64 `json:"seed"`
	Workers    int    `json:"workers"`
	Frames     int    `json:"frames"`
	Wireframe  bool   `json:"wireframe"`
	Fit        bool   `json:"fit"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone.
type Flags struct {
	Scene      string
	Camera     string
	Output     string
	Width      int
	Height     int
	Shading    string
	Background string
	Seed       uint64
	Workers    int
	Frames     int
	Wireframe  bool
	Fit        bool
}

// Defaults applied by Resolve.
const (
	DefaultSize       = 512
	DefaultShading    = "barycentric"
	DefaultBackground = "0,0,0"
	DefaultFrames     = 36
)

var (
	ErrInvalidSize       = errors.New("config: width and height must be positive")
	ErrInvalidColor      = errors.New("config: colour must be r,g,b with values 0-255")
	ErrInvalidFrameCount = errors.New("config: frames must be positive")
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides, then fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Camera != "" {
		c.Camera = flags.Camera
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Shading != "" {
		c.Shading = flags.Shading
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	c.Wireframe = c.Wireframe || flags.Wireframe
	c.Fit = c.Fit || flags.Fit

	if c.Width <= 0 {
		c.Width = DefaultSize
	}
	if c.Height <= 0 {
		c.Height = DefaultSize
	}
	if c.Shading == "" {
		c.Shading = DefaultShading
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
}

// Validate reports the first setting the renderer cannot use. Supported
// and unsupported shading names both pass; only unknown names fail.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrameCount, c.Frames)
	}
	if _, err := c.ShadingMode(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// ShadingMode parses the shading name.
func (c Config) ShadingMode() (render.Shading, error) {
	return render.ParseShading(c.Shading)
}

// BackgroundColor parses the background colour.
func (c Config) BackgroundColor() (render.Color, error) {
	return ParseColor(c.Background)
}

// ParseColor parses "r,g,b" with each channel in 0-255. Alpha is opaque.
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = uint8(v)
	}
	return render.RGB(ch[0], ch[1], ch[2]), nil
}
