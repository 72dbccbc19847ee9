// Package turtle implements a pen-based drawing cursor on top of an SVG
// image. A Turtle keeps a position, a heading in degrees and a pen flag, and
// turns movement commands into line segments on the canvas it owns.
//
// The turtle works in pixel coordinates with Y growing downwards, so a
// heading of 90 degrees points up the screen. It has no memory of what it has
// drawn.
package turtle

import (
	"fmt"
	"math"

	"github.com/irfansharif/svgturtle/internal/geom"
	"github.com/irfansharif/svgturtle/internal/palette"
	"github.com/irfansharif/svgturtle/internal/svg"
)

// Unit selects how Left and Right interpret their angle argument.
type Unit int

const (
	Degrees Unit = iota
	Radians
)

// Canvas is the drawing surface a Turtle owns. *svg.Image satisfies it.
type Canvas interface {
	AddLine(a, b geom.Point, color string, upscale bool)
	Close() error
}

// noCopy lets `go vet` flag copies of a Turtle, which would share its canvas.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Turtle is a dead-reckoning drawing cursor. It must not be copied after
// first use, since two copies would write to and close the same canvas.
type Turtle struct {
	_ noCopy

	canvas  Canvas
	pos     geom.Point
	heading float64 // degrees, unbounded
	penDown bool
	color   string
}

// New returns a turtle at the center of a width x height canvas, heading 0
// (towards +X) with the pen down. The turtle takes ownership of c.
func New(c Canvas, width, height float64) *Turtle {
	return &Turtle{
		canvas:  c,
		pos:     geom.MakePoint(width/2, height/2),
		penDown: true,
		color:   palette.Default,
	}
}

// Create opens a new image described by cfg and returns a turtle owning it.
func Create(cfg svg.Config) (*Turtle, error) {
	img, err := svg.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("turtle: %w", err)
	}
	return New(img, img.Width(), img.Height()), nil
}

func (t *Turtle) Position() geom.Point { return t.pos }
func (t *Turtle) Heading() float64     { return t.heading }
func (t *Turtle) IsDown() bool         { return t.penDown }
func (t *Turtle) Color() string        { return t.color }

func (t *Turtle) PenUp()                { t.penDown = false }
func (t *Turtle) PenDown()              { t.penDown = true }
func (t *Turtle) SetColor(color string) { t.color = color }

// Forward moves distance pixels along the current heading, drawing a line if
// the pen is down.
func (t *Turtle) Forward(distance float64) {
	sin, cos := math.Sincos(toRad(t.heading))
	next := t.pos.Add(geom.MakeVector(cos, -sin).Scale(distance))
	if t.penDown {
		t.canvas.AddLine(t.pos, next, t.color, false)
	}
	t.pos = next
}

// Back moves against the current heading.
func (t *Turtle) Back(distance float64) { t.Forward(-distance) }

// Left turns counter-clockwise on screen.
func (t *Turtle) Left(angle float64, unit Unit) {
	if unit == Radians {
		angle = toDeg(angle)
	}
	t.heading += angle
}

// Right turns clockwise on screen.
func (t *Turtle) Right(angle float64, unit Unit) { t.Left(-angle, unit) }

// Close finalizes the owned canvas.
func (t *Turtle) Close() error { return t.canvas.Close() }

func toRad(degrees float64) float64 { return math.Pi / 180 * degrees }
func toDeg(radians float64) float64 { return 180 / math.Pi * radians }
