// Package svg writes scalable vector images incrementally.
//
// An Image emits its document header when constructed, appends one element
// per shape call, and writes the closing markers exactly once on Close. Every
// shape call takes an upscale flag: when false coordinates are pixels, when
// true they are normalized to [-1, 1] on both axes and mapped onto the
// canvas, so callers can describe shapes independent of resolution.
package svg

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/irfansharif/svgturtle/internal/geom"
)

const (
	DefaultName       = "output_image.svg"
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultBackground = "white"
)

// ErrClosed is returned by Close when the image has already been finalized.
var ErrClosed = errors.New("svg: image already closed")

// Config describes the document to create. Zero fields take the package
// defaults.
type Config struct {
	Name       string  `yaml:"name"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
}

// DefaultConfig returns a 1920x1080 white canvas written to DefaultName.
func DefaultConfig() Config {
	return Config{
		Name:       DefaultName,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Background == "" {
		c.Background = d.Background
	}
	return c
}

// Image is an SVG document open for appending shapes. It is not safe for
// concurrent use.
type Image struct {
	w      io.Writer
	width  float64
	height float64

	view   geom.Affine // normalized [-1, 1] coordinates to pixels
	err    error       // first write error, reported by Close
	closed bool
}

// Create opens cfg.Name for writing and emits the document header. Failing
// to open the destination is the only construction error.
func Create(cfg Config) (*Image, error) {
	cfg = cfg.withDefaults()
	f, err := os.Create(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("cannot create image %q: %w", cfg.Name, err)
	}
	img := New(f, cfg)
	if img.err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cannot write header to %q: %w", cfg.Name, img.err)
	}
	return img, nil
}

// New writes the document header to w and returns an image appending to it.
// The image takes ownership of w: Close closes it if it is an io.Closer.
// cfg.Name is unused.
func New(w io.Writer, cfg Config) *Image {
	cfg = cfg.withDefaults()
	img := &Image{
		w:      w,
		width:  cfg.Width,
		height: cfg.Height,
		view: geom.MakeAffine(
			cfg.Width/2, 0, cfg.Width/2,
			0, cfg.Height/2, cfg.Height/2,
		),
	}
	img.printf("<html>\n<body>\n\n")
	img.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" viewBox=\"0 0 %s %s\">\n",
		num(cfg.Width), num(cfg.Height))
	img.printf("<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", html.EscapeString(cfg.Background))
	return img
}

func (img *Image) Width() float64  { return img.width }
func (img *Image) Height() float64 { return img.height }

// Err returns the first error encountered writing to the sink, if any.
func (img *Image) Err() error { return img.err }

// ToPixel maps a point from normalized [-1, 1] coordinates to pixels.
func (img *Image) ToPixel(p geom.Point) geom.Point { return img.view.MulPoint(p) }

// AddLine appends a line from a to b. Colors here and in the other shape
// calls are written as attribute values, HTML-escaped, and not otherwise
// checked; see palette.Valid.
func (img *Image) AddLine(a, b geom.Point, color string, upscale bool) {
	if !img.open("line") {
		return
	}
	color = html.EscapeString(color)
	if upscale {
		a, b = img.ToPixel(a), img.ToPixel(b)
	}
	img.printf("   <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke=\"%s\" />\n",
		num(a.X), num(a.Y), num(b.X), num(b.Y), color)
}

// AddCircle appends a circle centered on c. Only the center is upscaled; the
// radius is always taken to be in pixels.
func (img *Image) AddCircle(c geom.Point, radius float64, filled bool, color string, upscale bool) {
	if !img.open("circle") {
		return
	}
	color = html.EscapeString(color)
	if upscale {
		c = img.ToPixel(c)
	}
	img.printf("   <circle cx=\"%s\" cy=\"%s\" r=\"%s\" stroke=\"%s\" fill=\"%s\" />\n",
		num(c.X), num(c.Y), num(radius), color, fill(filled, color))
}

// AddRect appends a filled rectangle centered on c. When upscaling, width
// and height are in [0, 2] and scale with the canvas.
func (img *Image) AddRect(c geom.Point, width, height float64, color string, upscale bool) {
	if !img.open("rect") {
		return
	}
	color = html.EscapeString(color)
	if upscale {
		c = img.ToPixel(c)
		width *= img.width / 2
		height *= img.height / 2
	}
	b := geom.BoxAround(c, width, height)
	img.printf("   <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\" />\n",
		num(b.X), num(b.Y), num(b.W), num(b.H), color)
}

// AddPolygon appends a closed polygon through pts.
func (img *Image) AddPolygon(pts []geom.Point, color string, filled, upscale bool) {
	if !img.open("polygon") {
		return
	}
	color = html.EscapeString(color)
	coords := make([]string, len(pts))
	for i, p := range pts {
		if upscale {
			p = img.ToPixel(p)
		}
		coords[i] = num(p.X) + "," + num(p.Y)
	}
	img.printf("   <polygon points=\"%s\" stroke=\"%s\" fill=\"%s\" />\n",
		strings.Join(coords, " "), color, fill(filled, color))
}

// AddMesh triangulates the simple polygon pts and draws every triangle edge
// as a line. Shared edges are drawn once per adjacent triangle.
func (img *Image) AddMesh(pts []geom.Point, color string, upscale bool) {
	if !img.open("mesh") {
		return
	}
	triangles, err := earClip(pts)
	if err != nil {
		log.Printf("WARNING: skipping mesh: %v", err)
		return
	}
	for _, tri := range triangles {
		for i := range tri {
			img.AddLine(tri[i], tri[(i+1)%3], color, upscale)
		}
	}
}

// Close writes the closing markers and releases the sink. It returns the
// first write error seen over the image's lifetime, or ErrClosed if the image
// was already closed.
func (img *Image) Close() error {
	if img.closed {
		return ErrClosed
	}
	img.printf("</svg>\n\n</body>\n</html>")
	img.closed = true
	if c, ok := img.w.(io.Closer); ok {
		if err := c.Close(); err != nil && img.err == nil {
			img.err = err
		}
	}
	return img.err
}

func (img *Image) open(kind string) bool {
	if img.closed {
		log.Printf("WARNING: dropping %s: %v", kind, ErrClosed)
		return false
	}
	return true
}

func (img *Image) printf(format string, args ...interface{}) {
	if img.err != nil {
		return
	}
	if _, err := fmt.Fprintf(img.w, format, args...); err != nil {
		img.err = err
	}
}

func fill(filled bool, color string) string {
	if filled {
		return color
	}
	return "none"
}

// num formats v in its shortest exact decimal form. Adding zero turns -0
// into 0.
func num(v float64) string { return strconv.FormatFloat(v+0, 'f', -1, 64) }
