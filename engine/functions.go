package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/vecmem/vector"
	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterVectorFunctions registers vec_cosine, vec_cosine_distance and vec_l2
// with the driver so they are available on connections opened after this
// call. It is safe to call repeatedly.
func RegisterVectorFunctions() error {
	registerOnce.Do(func() {
		fns := []struct {
			name string
			impl func(a, b []float32) (float64, error)
		}{
			{vector.FuncCosine, vector.CosineSimilarity},
			{vector.FuncCosineDistance, vector.CosineDistance},
			{vector.FuncL2, vector.L2Distance},
		}
		for _, fn := range fns {
			if err := sqlite.RegisterDeterministicScalarFunction(fn.name, 2, binary(fn.name, fn.impl)); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", fn.name, err)
				return
			}
		}
	})
	return registerErr
}

// binary adapts a vector function to a two-argument SQL scalar. NULL or empty
// arguments and zero-magnitude vectors yield NULL, which no comparison
// predicate accepts; a dimension mismatch is a statement error.
func binary(name string, impl func(a, b []float32) (float64, error)) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		a, err := asEmbedding(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asEmbedding(name, args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("%s: dimension mismatch %d vs %d", name, len(a), len(b))
		}
		v, err := impl(a, b)
		if err != nil {
			return nil, nil
		}
		return v, nil
	}
}

func asEmbedding(name string, arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.Decode(v)
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T for embedding; want BLOB", name, arg)
	}
}
