package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCodes parses a comma-separated list of numeric type codes. Malformed
// codes are a client error and must be rejected here, before the query
// layer.
func parseCodes(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	codes := make([]int, 0, len(parts))
	for _, p := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid type code %q", strings.TrimSpace(p))
		}
		codes = append(codes, code)
	}

	return codes, nil
}
