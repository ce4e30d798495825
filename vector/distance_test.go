package vector

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	c := []float32{2, 0}

	sim, err := CosineSimilarity(a, b)
	gt.NoError(t, err)
	gt.True(t, math.Abs(sim) < 1e-6)

	// magnitude does not matter, only direction
	sim, err = CosineSimilarity(a, c)
	gt.NoError(t, err)
	gt.True(t, math.Abs(sim-1) < 1e-6)
}

func TestCosineDistance_Errors(t *testing.T) {
	_, err := CosineDistance([]float32{1, 0}, []float32{1, 0, 0})
	gt.Error(t, err)

	_, err = CosineDistance(nil, nil)
	gt.Error(t, err)

	_, err = CosineDistance([]float32{0, 0}, []float32{1, 0})
	gt.Error(t, err)
}

func TestL2Distance(t *testing.T) {
	d, err := L2Distance([]float32{0, 0}, []float32{3, 4})
	gt.NoError(t, err)
	gt.True(t, math.Abs(d-5) < 1e-6)

	_, err = L2Distance([]float32{0}, []float32{3, 4})
	gt.Error(t, err)
}

func TestCosineDistance(t *testing.T) {
	testCases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"same direction", []float32{1, 2, 3}, []float32{2, 4, 6}, 0},
		{"orthogonal", []float32{1, 0}, []float32{0, 5}, 1},
		{"opposite", []float32{1, 0}, []float32{-3, 0}, 2},
		{"sixty degrees", []float32{1, 0}, []float32{0.5, float32(math.Sqrt(3) / 2)}, 0.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := CosineDistance(tc.a, tc.b)
			gt.NoError(t, err)
			gt.True(t, math.Abs(d-tc.want) < 1e-5)
		})
	}
}
