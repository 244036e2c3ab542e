// Package routecodec converts route geometry between the GeoJSON-style
// [lng,lat] coordinate sequence used in the API and the compact polyline
// string persisted with a post.
package routecodec

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// Precision is the coordinate tolerance the encoding preserves.
const Precision = 1e-5

type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return "routecodec: " + e.Message
}

// Encode produces the polyline form of a [lng,lat] line string.
// Encoding is deterministic: equal geometries yield equal strings.
func Encode(geometry [][2]float64) string {
	if len(geometry) == 0 {
		return ""
	}
	coords := make([][]float64, len(geometry))
	for i, pt := range geometry {
		// polyline wire order is lat,lng
		coords[i] = []float64{pt[1], pt[0]}
	}
	return string(polyline.EncodeCoords(coords))
}

// Decode reverses Encode. Malformed or trailing input yields a *CodecError.
func Decode(encoded string) ([][2]float64, error) {
	if encoded == "" {
		return nil, nil
	}
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, &CodecError{Message: err.Error()}
	}
	if len(rest) > 0 {
		return nil, &CodecError{Message: fmt.Sprintf("trailing input after %d coordinates", len(coords))}
	}

	geometry := make([][2]float64, len(coords))
	for i, c := range coords {
		geometry[i] = [2]float64{c[1], c[0]}
	}
	return geometry, nil
}
