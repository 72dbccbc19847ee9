package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/irfansharif/svgturtle/internal/palette"
	"github.com/irfansharif/svgturtle/internal/svg"
)

const (
	modeTurtle    = "turtle"
	modeCrossings = "crossings"
	modeShapes    = "shapes"
)

// Scene is what the command draws, as read from an optional YAML file.
type Scene struct {
	Image      svg.Config  `yaml:"image"`
	Mode       string      `yaml:"mode"`
	Complexity *int        `yaml:"complexity"` // crossings only; nil randomizes
	Turtle     TurtleScene `yaml:"turtle"`
}

// TurtleScene drives the turtle through Steps repetitions of "forward Length,
// turn right Turn degrees", cycling through Colors.
type TurtleScene struct {
	Steps  int      `yaml:"steps"`
	Length float64  `yaml:"length"`
	Turn   float64  `yaml:"turn"`
	Colors []string `yaml:"colors"` // empty picks a random palette
}

func defaultScene() Scene {
	return Scene{
		Image: svg.DefaultConfig(),
		Mode:  modeTurtle,
		Turtle: TurtleScene{
			Steps:  36,
			Length: 400,
			Turn:   170,
		},
	}
}

// loadScene reads a YAML scene file on top of the defaults. Unknown keys are
// rejected.
func loadScene(path string) (Scene, error) {
	scene := defaultScene()
	data, err := os.ReadFile(path)
	if err != nil {
		return scene, fmt.Errorf("cannot read scene: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &scene); err != nil {
		return scene, fmt.Errorf("cannot parse scene %s: %w", path, err)
	}
	return scene, nil
}

// overrides holds command-line values; zero values leave the scene as is.
type overrides struct {
	out, background, mode string
	width, height         float64
}

func (s *Scene) apply(o overrides) {
	if o.out != "" {
		s.Image.Name = o.out
	}
	if o.background != "" {
		s.Image.Background = o.background
	}
	if o.mode != "" {
		s.Mode = o.mode
	}
	if o.width > 0 {
		s.Image.Width = o.width
	}
	if o.height > 0 {
		s.Image.Height = o.height
	}
}

func (s *Scene) validate() error {
	switch s.Mode {
	case modeTurtle, modeCrossings, modeShapes:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", s.Mode, modeTurtle, modeCrossings, modeShapes)
	}
	if s.Image.Background != "" && !palette.Valid(s.Image.Background) {
		return fmt.Errorf("invalid background color %q", s.Image.Background)
	}
	for _, c := range s.Turtle.Colors {
		if !palette.Valid(c) {
			return fmt.Errorf("invalid turtle color %q", c)
		}
	}
	if s.Complexity != nil && *s.Complexity <= 0 {
		return fmt.Errorf("complexity must be positive, got %d", *s.Complexity)
	}
	if s.Turtle.Steps < 0 {
		return fmt.Errorf("turtle steps must not be negative, got %d", s.Turtle.Steps)
	}
	return nil
}
