package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	t.Parallel()
	p := Point{Latitude: -6.2, Longitude: 106.8}
	assert.Equal(t, 0.0, DistanceMeters(p, p))
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	t.Parallel()
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 1, Longitude: 0}

	// One degree of latitude on a 6371 km sphere is ~111.19 km.
	assert.InDelta(t, 111195, DistanceMeters(a, b), 10)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	t.Parallel()
	a := Point{Latitude: -6.2, Longitude: 106.8}
	b := Point{Latitude: -6.19, Longitude: 106.81}

	assert.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-9)
}

func TestDistanceMeters_ShortDistance(t *testing.T) {
	t.Parallel()
	a := Point{Latitude: -6.2, Longitude: 106.8}
	b := Point{Latitude: -6.2009, Longitude: 106.8}

	// ~0.0009 degrees of latitude is about 100 m.
	assert.InDelta(t, 100, DistanceMeters(a, b), 2)
}

func TestWithinRadius(t *testing.T) {
	t.Parallel()
	center := Point{Latitude: -6.2, Longitude: 106.8}
	// ~56 m and ~1.1 km from the center.
	near := Point{Latitude: -6.2005, Longitude: 106.8}
	far := Point{Latitude: -6.21, Longitude: 106.8}

	assert.True(t, WithinRadius(near, center, 100))
	assert.False(t, WithinRadius(far, center, 100))
	assert.True(t, WithinRadius(center, center, 0))
}
