package ingest

import (
	"strconv"
	"strings"
)

const coordinateScale = 100000.0

// ParseCoordinate decodes a coordinate string from the source format, a
// signed fixed-point number scaled by 100000 with an optional leading '+'
// (e.g. "+01871379" is 18.71379 degrees). The second return value is false
// when the string does not decode to a coordinate; such rows are excluded
// from the spatial load.
func ParseCoordinate(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	s = strings.TrimPrefix(s, "+")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v / coordinateScale, true
}
