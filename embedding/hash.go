package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultHashDimensions matches the output size of all-MiniLM-L6-v2.
const DefaultHashDimensions = 384

// Hash generates deterministic unit-length embeddings from an FNV hash of the
// text. Identical texts map to identical vectors; unrelated texts land close
// to orthogonal. It needs no network and is meant for offline use and tests.
type Hash struct {
	dimensions int
}

// NewHash creates a Hash provider. Non-positive dimensions select
// DefaultHashDimensions.
func NewHash(dimensions int) *Hash {
	if dimensions <= 0 {
		dimensions = DefaultHashDimensions
	}
	return &Hash{dimensions: dimensions}
}

// Dimensions returns the embedding size.
func (h *Hash) Dimensions() int { return h.dimensions }

// Generate derives the embedding for text.
func (h *Hash) Generate(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "hash embedding cancelled")
	}

	f := fnv.New64a()
	_, _ = f.Write([]byte(text))
	seed := f.Sum64()

	vec := make([]float32, h.dimensions)
	var norm float64
	for i := range vec {
		// LCG step, mapped to [-1, 1]
		seed = seed*6364136223846793005 + 1442695040888963407
		v := float64(int64(seed)) / float64(math.MaxInt64)
		vec[i] = float32(v)
		norm += v * v
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}
