package projection

import (
	"errors"
	"testing"
)

func TestMinComponentsKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		nSamples float64
		eps      float64
		expected int
	}{
		{"one million samples, eps 0.5", 1e6, 0.5, 663},
		{"one million samples, eps 0.1", 1e6, 0.1, 11841},
		{"one million samples, eps 0.01", 1e6, 0.01, 1112658},
		{"single sample", 1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinComponents(tt.nSamples, tt.eps)
			if err != nil {
				t.Fatalf("MinComponents(%g, %g) returned error: %v", tt.nSamples, tt.eps, err)
			}
			if got != tt.expected {
				t.Errorf("MinComponents(%g, %g) = %d, want %d", tt.nSamples, tt.eps, got, tt.expected)
			}
		})
	}
}

func TestMinComponentsInvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		nSamples float64
		eps      float64
	}{
		{"eps zero", 1000, 0},
		{"eps negative", 1000, -0.1},
		{"eps one", 1000, 1},
		{"eps above one", 1000, 1.5},
		{"zero samples", 0, 0.1},
		{"negative samples", -5, 0.1},
		{"fractional samples below one", 0.5, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MinComponents(tt.nSamples, tt.eps)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("MinComponents(%g, %g) error = %v, want ErrInvalidArgument", tt.nSamples, tt.eps, err)
			}
		})
	}
}

func TestMinComponentsMonotonicInEps(t *testing.T) {
	epsGrid := []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9, 0.99}

	prev := int(^uint(0) >> 1)
	for _, eps := range epsGrid {
		got, err := MinComponents(1e6, eps)
		if err != nil {
			t.Fatalf("MinComponents(1e6, %g) returned error: %v", eps, err)
		}
		if got > prev {
			t.Errorf("bound increased from %d to %d as eps grew to %g", prev, got, eps)
		}
		prev = got
	}
}

func TestMinComponentsMonotonicInSamples(t *testing.T) {
	sampleGrid := []float64{1, 10, 100, 1e3, 1e4, 1e6, 1e9}

	prev := -1
	for _, n := range sampleGrid {
		got, err := MinComponents(n, 0.1)
		if err != nil {
			t.Fatalf("MinComponents(%g, 0.1) returned error: %v", n, err)
		}
		if got < prev {
			t.Errorf("bound decreased from %d to %d as samples grew to %g", prev, got, n)
		}
		prev = got
	}
}
