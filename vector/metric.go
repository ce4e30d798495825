package vector

import (
	"fmt"
	"math"
	"strings"
)

// SQL scalar function names registered by the engine package.
const (
	FuncCosine         = "vec_cosine"
	FuncCosineDistance = "vec_cosine_distance"
	FuncL2             = "vec_l2"
)

// Metric ties a SQL distance function to the mapping between a caller's
// similarity threshold in [0,1] and the distance values that function
// returns. Lower distance always means more similar.
type Metric struct {
	// Name is the user-facing metric name.
	Name string

	// Function is the SQL scalar used in queries. It is interpolated into
	// statements and must be one of the registered function names.
	Function string

	// MaxDistance converts a minimum similarity into the exclusive upper
	// bound on distance.
	MaxDistance func(minSimilarity float64) float64

	// Similarity converts a distance back into a similarity score.
	Similarity func(distance float64) float64
}

// Cosine uses distance = 1 - cosine similarity.
var Cosine = Metric{
	Name:        "cosine",
	Function:    FuncCosineDistance,
	MaxDistance: func(s float64) float64 { return 1 - s },
	Similarity:  func(d float64) float64 { return 1 - d },
}

// Euclidean uses L2 distance. For unit-length embeddings
// L2 = sqrt(2 * (1 - cosine similarity)), which is the mapping applied here;
// with unnormalized embeddings the thresholds are only approximate.
var Euclidean = Metric{
	Name:        "l2",
	Function:    FuncL2,
	MaxDistance: func(s float64) float64 { return math.Sqrt(2 * math.Max(0, 1-s)) },
	Similarity:  func(d float64) float64 { return 1 - d*d/2 },
}

// MetricByName resolves a metric by name. Empty selects Cosine.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cos", "cosine":
		return Cosine, nil
	case "l2", "euclidean":
		return Euclidean, nil
	default:
		return Metric{}, fmt.Errorf("vector: unknown metric %q", name)
	}
}

// Validate checks that m is usable in a query.
func (m Metric) Validate() error {
	switch m.Function {
	case FuncCosineDistance, FuncL2:
	default:
		return fmt.Errorf("vector: metric %q uses unsupported distance function %q", m.Name, m.Function)
	}
	if m.MaxDistance == nil || m.Similarity == nil {
		return fmt.Errorf("vector: metric %q is missing a similarity mapping", m.Name)
	}
	return nil
}
