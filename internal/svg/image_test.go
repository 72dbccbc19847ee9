package svg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/svgturtle/internal/geom"
)

const testHeader = "<html>\n<body>\n\n" +
	"<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" viewBox=\"0 0 200 100\">\n" +
	"<rect width=\"100%\" height=\"100%\" fill=\"white\"/>\n"

const testFooter = "</svg>\n\n</body>\n</html>"

func newTestImage() (*Image, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, Config{Width: 200, Height: 100}), &buf
}

// body returns what the image wrote between header and footer.
func body(t *testing.T, buf *bytes.Buffer) string {
	t.Helper()
	s := buf.String()
	require.True(t, strings.HasPrefix(s, testHeader), s)
	require.True(t, strings.HasSuffix(s, testFooter), s)
	return strings.TrimSuffix(strings.TrimPrefix(s, testHeader), testFooter)
}

func TestEmptyDocument(t *testing.T) {
	img, buf := newTestImage()
	require.NoError(t, img.Close())
	require.Equal(t, testHeader+testFooter, buf.String())
}

func TestDefaults(t *testing.T) {
	var buf bytes.Buffer
	img := New(&buf, Config{Background: "black"})
	require.Equal(t, 1920.0, img.Width())
	require.Equal(t, 1080.0, img.Height())
	require.Contains(t, buf.String(), `viewBox="0 0 1920 1080"`)
	require.Contains(t, buf.String(), `<rect width="100%" height="100%" fill="black"/>`)
	require.Equal(t, Config{Name: DefaultName, Width: 1920, Height: 1080, Background: "white"}, DefaultConfig())
}

func TestAddLine(t *testing.T) {
	img, buf := newTestImage()
	img.AddLine(geom.MakePoint(1.5, 2), geom.MakePoint(30, 40.25), "red", false)
	img.AddLine(geom.MakePoint(-1, -1), geom.MakePoint(1, 1), "black", true)
	img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(0.5, -0.5), "blue", true)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <line x1=\"1.5\" y1=\"2\" x2=\"30\" y2=\"40.25\" stroke=\"red\" />\n"+
			"   <line x1=\"0\" y1=\"0\" x2=\"200\" y2=\"100\" stroke=\"black\" />\n"+
			"   <line x1=\"100\" y1=\"50\" x2=\"150\" y2=\"25\" stroke=\"blue\" />\n",
		body(t, buf))
}

func TestColorsAreEscaped(t *testing.T) {
	img, buf := newTestImage()
	img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(1, 1), `red" onload="x`, false)
	img.AddCircle(geom.MakePoint(0, 0), 2, true, "<b>", false)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <line x1=\"0\" y1=\"0\" x2=\"1\" y2=\"1\" stroke=\"red&#34; onload=&#34;x\" />\n"+
			"   <circle cx=\"0\" cy=\"0\" r=\"2\" stroke=\"&lt;b&gt;\" fill=\"&lt;b&gt;\" />\n",
		body(t, buf))

	var bg bytes.Buffer
	New(&bg, Config{Background: `"`})
	require.Contains(t, bg.String(), `fill="&#34;"/>`)
}

func TestToPixelCorners(t *testing.T) {
	img, _ := newTestImage()
	require.Equal(t, geom.MakePoint(0, 0), img.ToPixel(geom.MakePoint(-1, -1)))
	require.Equal(t, geom.MakePoint(200, 100), img.ToPixel(geom.MakePoint(1, 1)))
	require.Equal(t, geom.MakePoint(100, 50), img.ToPixel(geom.MakePoint(0, 0)))
}

func TestAddCircle(t *testing.T) {
	img, buf := newTestImage()
	img.AddCircle(geom.MakePoint(10, 20), 5, true, "red", false)
	img.AddCircle(geom.MakePoint(10, 20), 5, false, "red", false)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <circle cx=\"10\" cy=\"20\" r=\"5\" stroke=\"red\" fill=\"red\" />\n"+
			"   <circle cx=\"10\" cy=\"20\" r=\"5\" stroke=\"red\" fill=\"none\" />\n",
		body(t, buf))
}

// The circle radius is never upscaled, unlike rectangle width and height.
// Callers pass the radius in pixels even when the center is normalized.
func TestAddCircleUpscaleKeepsRadius(t *testing.T) {
	img, buf := newTestImage()
	img.AddCircle(geom.MakePoint(0.5, -0.5), 0.25, true, "green", true)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <circle cx=\"150\" cy=\"25\" r=\"0.25\" stroke=\"green\" fill=\"green\" />\n",
		body(t, buf))
}

func TestAddRect(t *testing.T) {
	img, buf := newTestImage()
	img.AddRect(geom.MakePoint(10, 10), 4, 6, "cyan", false)
	img.AddRect(geom.MakePoint(0, 0), 1, 1, "pink", true)
	img.AddRect(geom.MakePoint(0, 0), 2, 2, "tomato", true)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <rect x=\"8\" y=\"7\" width=\"4\" height=\"6\" fill=\"cyan\" />\n"+
			"   <rect x=\"50\" y=\"25\" width=\"100\" height=\"50\" fill=\"pink\" />\n"+
			"   <rect x=\"0\" y=\"0\" width=\"200\" height=\"100\" fill=\"tomato\" />\n",
		body(t, buf))
}

func TestAddPolygon(t *testing.T) {
	img, buf := newTestImage()
	tri := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	img.AddPolygon(tri, "purple", true, false)
	img.AddPolygon(tri, "purple", false, true)
	require.NoError(t, img.Close())

	require.Equal(t,
		"   <polygon points=\"0,0 1,0 0,1\" stroke=\"purple\" fill=\"purple\" />\n"+
			"   <polygon points=\"100,50 200,50 100,100\" stroke=\"purple\" fill=\"none\" />\n",
		body(t, buf))
}

func TestAddMesh(t *testing.T) {
	img, buf := newTestImage()
	square := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	img.AddMesh(square, "black", false)
	require.NoError(t, img.Close())

	// Two triangles, three edges each.
	require.Equal(t, 6, strings.Count(body(t, buf), "<line "))
}

func TestAddMeshDegenerate(t *testing.T) {
	img, buf := newTestImage()
	img.AddMesh([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, "black", false)
	require.NoError(t, img.Close())
	require.Empty(t, body(t, buf))
}

func TestEarClipConvex(t *testing.T) {
	hexagon := []geom.Point{{X: 2, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 2}}
	tris, err := earClip(hexagon)
	require.NoError(t, err)
	require.Len(t, tris, len(hexagon)-2)

	_, err = earClip(nil)
	require.Error(t, err)
}

func TestCloseFinalizesOnce(t *testing.T) {
	img, buf := newTestImage()
	for i := 0; i < 50; i++ {
		img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(float64(i), 1), "black", false)
	}
	require.NoError(t, img.Close())
	require.ErrorIs(t, img.Close(), ErrClosed)

	// Shapes after Close never reach the sink.
	before := buf.String()
	img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(1, 1), "black", false)
	img.AddCircle(geom.MakePoint(0, 0), 1, true, "black", false)
	img.AddRect(geom.MakePoint(0, 0), 1, 1, "black", false)
	img.AddPolygon([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, "black", true, false)
	require.Equal(t, before, buf.String())

	require.Equal(t, 1, strings.Count(before, "</svg>"))
	require.Equal(t, 50, strings.Count(body(t, buf), "<line "))
}

type closeRecorder struct {
	bytes.Buffer
	closes int
}

func (c *closeRecorder) Close() error {
	c.closes++
	return nil
}

func TestCloseReleasesSink(t *testing.T) {
	var sink closeRecorder
	img := New(&sink, Config{})
	require.NoError(t, img.Close())
	require.ErrorIs(t, img.Close(), ErrClosed)
	require.Equal(t, 1, sink.closes)
}

type failingWriter struct{ after int }

var errSinkFull = errors.New("sink full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errSinkFull
	}
	w.after--
	return len(p), nil
}

func TestWriteErrorIsSticky(t *testing.T) {
	w := &failingWriter{after: 3}
	img := New(w, Config{})
	require.NoError(t, img.Err())

	img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(1, 1), "black", false)
	require.ErrorIs(t, img.Err(), errSinkFull)
	img.AddLine(geom.MakePoint(0, 0), geom.MakePoint(1, 1), "black", false)
	require.ErrorIs(t, img.Close(), errSinkFull)
}

func TestCreate(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.svg")
	img, err := Create(Config{Name: name, Width: 200, Height: 100})
	require.NoError(t, err)
	img.AddLine(geom.MakePoint(-1, -1), geom.MakePoint(1, 1), "black", true)
	require.NoError(t, img.Close())

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t,
		testHeader+"   <line x1=\"0\" y1=\"0\" x2=\"200\" y2=\"100\" stroke=\"black\" />\n"+testFooter,
		string(data))
}

func TestCreateUnavailableSink(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "out.svg")
	img, err := Create(Config{Name: name})
	require.Error(t, err)
	require.Nil(t, img)
	require.ErrorIs(t, err, os.ErrNotExist)
}
