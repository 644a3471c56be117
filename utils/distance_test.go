package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(12.9716, 77.5946, 12.9716, 77.5946))

	// One degree of latitude is roughly 111km.
	d := Haversine(12.0, 77.0, 13.0, 77.0)
	assert.InDelta(t, 111000, d, 500)

	// Bangalore city center to the airport is about 28km.
	d = Haversine(12.9716, 77.5946, 13.1986, 77.7066)
	assert.InDelta(t, 28000, d, 1500)
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(12.9716, 77.5946, 13.0827, 80.2707)
	b := Haversine(13.0827, 80.2707, 12.9716, 77.5946)
	assert.Equal(t, a, b)
}
