package handler

import (
	"errors"
	"strconv"
)

// parseUintParam converts a path or query parameter into an ID,
// rejecting zero since no row has ID 0.
func parseUintParam(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return n, nil
}
