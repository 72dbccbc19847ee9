package svg

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/svgturtle/internal/geom"
)

// earClip triangulates a polygon using the earcut algorithm. It takes in a list
// of polygon vertices in boundary order and returns a slice of triangles, each
// represented as a [3]geom.Point.
func earClip(polygonPoints []geom.Point) ([][3]geom.Point, error) {
	if len(polygonPoints) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygonPoints))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(polygonPoints)*2)
	for i, point := range polygonPoints {
		vertexCoords[i*2] = point.X
		vertexCoords[i*2+1] = point.Y
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %w", len(polygonPoints), err)
	}
	if len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}

	triangles := make([][3]geom.Point, len(triangleIndices)/3)
	for i := range triangles {
		for j := 0; j < 3; j++ {
			triangles[i][j] = polygonPoints[triangleIndices[i*3+j]]
		}
	}
	return triangles, nil
}
