package vector

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or if either vector
// has zero magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	d, err := CosineDistance(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - d, nil
}

// CosineDistance computes 1 - cosine similarity, so 0 means identical
// direction and 1 means orthogonal.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine distance on empty vectors")
	}
	va := search.Float32s(a)
	ma, mb := va.Magnitude(), search.Float32s(b).Magnitude()
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("vector: cosine distance with zero-magnitude vector")
	}
	d := float64(va.CosineDistance(b))
	if math.IsNaN(d) {
		return 0, fmt.Errorf("vector: cosine distance is NaN")
	}
	return d, nil
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}
