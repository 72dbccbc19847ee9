package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/irfansharif/svgturtle/internal/gen"
	"github.com/irfansharif/svgturtle/internal/geom"
	"github.com/irfansharif/svgturtle/internal/palette"
	"github.com/irfansharif/svgturtle/internal/svg"
	"github.com/irfansharif/svgturtle/internal/turtle"
)

const (
	canvasMargin   = 0.05 // fraction of the canvas left empty on each side
	crossingRadius = 4.0  // pixels
	crossingColor  = "red"
)

func draw(scene Scene, seed int64) error {
	switch scene.Mode {
	case modeTurtle:
		return drawTurtle(scene, rand.New(rand.NewSource(seed)))
	case modeCrossings:
		return drawCrossings(scene, seed)
	case modeShapes:
		return drawShapes(scene)
	}
	return fmt.Errorf("unknown mode %q", scene.Mode)
}

// closeInto closes c, keeping the first error seen.
func closeInto(c interface{ Close() error }, err *error) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

// drawTurtle repeats "forward, turn right" with the pen down, which traces
// a star when the turn is close to 180 degrees. Each lap through the colors
// after the first gets a brightness jitter.
func drawTurtle(scene Scene, rng *rand.Rand) (err error) {
	t, err := turtle.Create(scene.Image)
	if err != nil {
		return err
	}
	defer closeInto(t, &err)

	colors := scene.Turtle.Colors
	if len(colors) == 0 {
		colors = palette.Random(rng, 5)
	}

	// Start half a stroke back so the figure stays centered.
	t.PenUp()
	t.Back(scene.Turtle.Length / 2)
	t.PenDown()
	for i := 0; i < scene.Turtle.Steps; i++ {
		if i > 0 && i%len(colors) == 0 {
			colors = palette.Shimmered(colors, rng)
		}
		t.SetColor(colors[i%len(colors)])
		t.Forward(scene.Turtle.Length)
		t.Right(scene.Turtle.Turn, turtle.Degrees)
	}
	debugLogger.Printf("turtle: %d steps, ended at %v heading %.1f°", scene.Turtle.Steps, t.Position(), t.Heading())
	return nil
}

// drawCrossings renders a generated lattice composition with every crossing
// marked by a dot.
func drawCrossings(scene Scene, seed int64) (err error) {
	comp := gen.NewGenerator().Generate(seed, scene.Complexity)

	img, err := svg.Create(scene.Image)
	if err != nil {
		return err
	}
	defer closeInto(img, &err)

	w, h := img.Width(), img.Height()
	canvas := geom.MakeBox(w*canvasMargin, h*canvasMargin, w*(1-2*canvasMargin), h*(1-2*canvasMargin))
	toCanvas, err := geom.FillBox(comp.Bounds, canvas)
	if err != nil {
		return fmt.Errorf("cannot fit composition: %w", err)
	}

	b := comp.Bounds
	frame := []geom.Point{
		{X: b.X, Y: b.Y}, {X: b.X + b.W, Y: b.Y}, {X: b.X + b.W, Y: b.Y + b.H}, {X: b.X, Y: b.Y + b.H},
	}
	for i := range frame {
		frame[i] = toCanvas.MulPoint(frame[i])
	}
	img.AddPolygon(frame, palette.Default, false, false)

	colors := palette.Random(rand.New(rand.NewSource(seed)), len(comp.Segments))
	for i, s := range comp.Segments {
		img.AddLine(toCanvas.MulPoint(s.P1), toCanvas.MulPoint(s.P2), colors[i], false)
	}
	for _, c := range comp.Crossings {
		img.AddCircle(toCanvas.MulPoint(c.Point), crossingRadius, true, crossingColor, false)
	}
	debugLogger.Printf("crossings: %d segments, %d crossings on a %dx%d lattice",
		len(comp.Segments), len(comp.Crossings), comp.GridSide, comp.GridSide)
	return nil
}

// drawShapes exercises every shape in normalized coordinates, so the
// result looks the same at any canvas size (circle radii aside).
func drawShapes(scene Scene) (err error) {
	img, err := svg.Create(scene.Image)
	if err != nil {
		return err
	}
	defer closeInto(img, &err)

	img.AddRect(geom.MakePoint(0, 0), 1, 1, "aquamarine", true)
	img.AddCircle(geom.MakePoint(0, 0), math.Min(img.Width(), img.Height())/4, false, "royalblue", true)

	star := make([]geom.Point, 10)
	for i := range star {
		r := 0.5
		if i%2 == 1 {
			r = 0.2
		}
		star[i] = geom.Rotation(math.Pi / 5 * float64(i)).MulPoint(geom.MakePoint(0, -r))
	}
	img.AddPolygon(star, "mediumpurple", false, true)
	img.AddMesh(star, "hotpink", true)

	a := geom.MakeSegment(geom.MakePoint(-0.9, -0.8), geom.MakePoint(0.9, 0.7))
	b := geom.MakeSegment(geom.MakePoint(-0.9, 0.8), geom.MakePoint(0.8, -0.9))
	img.AddLine(a.P1, a.P2, palette.Default, true)
	img.AddLine(b.P1, b.P2, palette.Default, true)
	if p, ok := a.Intersect(b); ok {
		img.AddCircle(p, crossingRadius*2, true, crossingColor, true)
	}
	return nil
}
