// Package pkg
package pkg

import (
	"math"
	"strings"
)

func ContainsAny(s string, xs []string) bool {
	s = strings.ToLower(s)

	for _, x := range xs {
		if strings.Contains(s, strings.ToLower(x)) {
			return true
		}
	}

	return false
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
