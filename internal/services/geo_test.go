package services

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expected   float64
		tolerance  float64
	}{
		{
			name: "identical points",
			lat1: 32.0853, lon1: 34.7818,
			lat2: 32.0853, lon2: 34.7818,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "about 111km per degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			expected:  111195,
			tolerance: 100,
		},
		{
			name: "short urban hop",
			lat1: 32.08530, lon1: 34.78180,
			lat2: 32.08575, lon2: 34.78180,
			expected:  50,
			tolerance: 1,
		},
		{
			name: "crossing the antimeridian",
			lat1: 0, lon1: 179.9995,
			lat2: 0, lon2: -179.9995,
			expected:  111.2,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("DistanceMeters = %.3f, expected %.3f (±%.3f)", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	a := DistanceMeters(32.0853, 34.7818, 31.7683, 35.2137)
	b := DistanceMeters(31.7683, 35.2137, 32.0853, 34.7818)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance is not symmetric: %.9f vs %.9f", a, b)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{0, "0m"},
		{42.4, "42m"},
		{999.4, "999m"},
		{1000, "1.0km"},
		{1250, "1.2km"},
		{15449, "15.4km"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDistance(tt.meters); got != tt.expected {
				t.Errorf("FormatDistance(%.1f) = %q, expected %q", tt.meters, got, tt.expected)
			}
		})
	}
}
