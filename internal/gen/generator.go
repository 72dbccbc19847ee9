// Package gen builds random line compositions for drawing.
//
// The algorithm works in two stages:
//   - Create a random set of lines in 4 orientations (horizontal, vertical,
//     ±45°) on an integer lattice, each clipped to the lattice bounds.
//   - Find every point where two of the resulting segments cross.
//
// Compositions are in lattice coordinates; callers map them onto a canvas.
package gen

import (
	"math/rand"

	"github.com/irfansharif/svgturtle/internal/geom"
)

// Features represents the configuration for the generator.
type Features struct {
	LineDensity int
	NumLines    int
	GridSide    int
}

// Crossing is an interior intersection between two segments of a
// composition.
type Crossing struct {
	Point geom.Point
	A, B  int // indices into Composition.Segments, A < B
}

// Composition carries the generated segments and the crossings between them.
type Composition struct {
	Segments  []geom.Segment
	Crossings []Crossing
	Bounds    geom.Box // lattice extent, [0, GridSide-1] on both axes
	GridSide  int
}

// Generator implements the composition algorithm.
type Generator struct {
	Features Features
}

func NewGenerator() *Generator {
	return &Generator{}
}

// initFeatures initializes the features of the generator.
func (g *Generator) initFeatures(rng *rand.Rand) {
	v := rng.Float64()
	if v < 0.7 {
		g.Features.LineDensity = 10
		g.Features.NumLines = 25
	} else if v < 0.9 {
		g.Features.LineDensity = 6
		g.Features.NumLines = 9
	} else {
		g.Features.LineDensity = 20
		g.Features.NumLines = 40
	}

	g.Features.GridSide = 2*g.Features.LineDensity + 1
}

// SetFeaturesForComplexity sets features based on the given complexity level.
// If complexity is nil, uses default randomization.
func (g *Generator) SetFeaturesForComplexity(rng *rand.Rand, complexity *int) {
	if complexity == nil {
		g.initFeatures(rng)
		return
	}

	g.Features.NumLines = *complexity
	if *complexity <= 10 {
		g.Features.LineDensity = 6
	} else if *complexity <= 30 {
		g.Features.LineDensity = 12
	} else {
		g.Features.LineDensity = 20
	}

	g.Features.GridSide = 2*g.Features.LineDensity + 1
}

// Generate creates a new composition. The same seed and complexity always
// produce the same composition.
func (g *Generator) Generate(seed int64, complexity *int) Composition {
	rng := rand.New(rand.NewSource(seed))
	g.SetFeaturesForComplexity(rng, complexity)

	var segs []geom.Segment
	for _, l := range g.createLines(g.Features.NumLines, rng) {
		if s, ok := g.clip(l); ok {
			segs = append(segs, s)
		}
	}

	side := float64(g.Features.GridSide - 1)
	return Composition{
		Segments:  segs,
		Crossings: crossings(segs),
		Bounds:    geom.MakeBox(0, 0, side, side),
		GridSide:  g.Features.GridSide,
	}
}

// crossings tests every pair of segments. Lattice lines only meet at lattice
// points, so touching at an endpoint is common and is not a crossing.
func crossings(segs []geom.Segment) []Crossing {
	var out []Crossing
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if p, ok := segs[i].Intersect(segs[j]); ok {
				out = append(out, Crossing{Point: p, A: i, B: j})
			}
		}
	}
	return out
}

type line struct {
	pos geom.Point
	dir geom.Vector
}

func (g *Generator) in(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && int(p.X) < g.Features.GridSide && int(p.Y) < g.Features.GridSide
}

// clip walks the line in both directions until it leaves the lattice. Lines
// that only touch a corner are dropped.
func (g *Generator) clip(l line) (geom.Segment, bool) {
	start, end := l.pos, l.pos
	for g.in(end.Add(l.dir)) {
		end = end.Add(l.dir)
	}
	for g.in(start.Add(l.dir.Neg())) {
		start = start.Add(l.dir.Neg())
	}
	if start == end {
		return geom.Segment{}, false
	}
	return geom.MakeSegment(start, end), true
}

// createLines picks num distinct lattice lines at random.
func (g *Generator) createLines(num int, rng *rand.Rand) []line {
	allLines := []line{}
	keepLines := []line{}

	makeLine := func(x, y, dx, dy float64) line {
		return line{pos: geom.MakePoint(x, y), dir: geom.MakeVector(dx, dy)}
	}

	n := g.Features.LineDensity

	// Horizontal lines, emanating from left edge
	for i := 0; i < n+1; i++ {
		allLines = append(allLines, makeLine(0, float64(2*i), 1, 0))
	}

	// Vertical lines, emanating from top edge
	for i := 0; i < n+1; i++ {
		allLines = append(allLines, makeLine(float64(2*i), 0, 0, 1))
	}

	// Slope -1 lines.  n+1 pointing NW, n pointing SE
	for i := 0; i < n+1; i++ {
		allLines = append(allLines, makeLine(float64(2*n), float64(2*i), -1, -1))
	}
	for i := 0; i < n; i++ {
		allLines = append(allLines, makeLine(0, float64(2*i+2), 1, 1))
	}

	// Slope 1 lines.  n+1 pointing NE, n pointing SW
	for i := 0; i < n+1; i++ {
		allLines = append(allLines, makeLine(0, float64(2*i), 1, -1))
	}
	for i := 0; i < n; i++ {
		allLines = append(allLines, makeLine(float64(2*i+2), float64(2*n), 1, -1))
	}

	for len(allLines) > 0 && num > 0 {
		ri := int(rng.Float64() * float64(len(allLines)))
		keepLines = append(keepLines, allLines[ri])
		allLines = append(allLines[:ri], allLines[ri+1:]...)
		num--
	}

	return keepLines
}
