package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BytesPerDim is the encoded size of one embedding component.
const BytesPerDim = 4

// Encode converts an embedding into its BLOB form: a little-endian sequence
// of IEEE 754 float32 values with no length prefix. NaN and infinite
// components are rejected since no distance can be computed over them.
func Encode(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("vector: cannot encode empty embedding")
	}
	b := make([]byte, len(vec)*BytesPerDim)
	for i, v := range vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("vector: embedding component %d is not finite", i)
		}
		binary.LittleEndian.PutUint32(b[i*BytesPerDim:], math.Float32bits(v))
	}
	return b, nil
}

// Decode converts a BLOB produced by Encode back into an embedding. A nil or
// empty BLOB decodes to a nil slice.
func Decode(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%BytesPerDim != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of %d)", len(b), BytesPerDim)
	}
	vec := make([]float32, len(b)/BytesPerDim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*BytesPerDim:]))
	}
	return vec, nil
}
