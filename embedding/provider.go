// Package embedding defines the text embedding provider consumed by the
// memory store, along with adapters for the providers vecmem can use.
//
// Providers are treated as stateless and safe for concurrent use.
package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Provider converts free-form text into an embedding. All embeddings from one
// provider share the same dimension.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// Func adapts a plain function to Provider.
//
// Implementations can call any embedding backend as long as they return a
// slice of float32 values.
type Func func(ctx context.Context, text string) ([]float32, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// ErrEmptyEmbedding is returned when a backend answers without a vector.
var ErrEmptyEmbedding = goerr.New("embedding response has no vector")
