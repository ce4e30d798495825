package engine

import (
	"database/sql"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/viant/vecmem/vector"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	gt.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func blob(t *testing.T, v ...float32) []byte {
	t.Helper()
	b, err := vector.Encode(v)
	gt.NoError(t, err)
	return b
}

func TestRegisterVectorFunctions_Idempotent(t *testing.T) {
	gt.NoError(t, RegisterVectorFunctions())
	gt.NoError(t, RegisterVectorFunctions())
}

func TestVectorFunctions(t *testing.T) {
	db := openTestDB(t)

	testCases := []struct {
		name string
		fn   string
		a, b []float32
		want float64
	}{
		{name: "cosine orthogonal", fn: vector.FuncCosine, a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "cosine identical", fn: vector.FuncCosine, a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "cosine distance orthogonal", fn: vector.FuncCosineDistance, a: []float32{1, 0}, b: []float32{0, 1}, want: 1},
		{name: "cosine distance scaled", fn: vector.FuncCosineDistance, a: []float32{1, 0}, b: []float32{4, 0}, want: 0},
		{name: "l2", fn: vector.FuncL2, a: []float32{0, 0}, b: []float32{3, 4}, want: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got float64
			gt.NoError(t, db.QueryRow("SELECT "+tc.fn+"(?, ?)", blob(t, tc.a...), blob(t, tc.b...)).Scan(&got))
			gt.True(t, math.Abs(got-tc.want) < 1e-6)
		})
	}
}

func TestVectorFunctions_Null(t *testing.T) {
	db := openTestDB(t)

	var got sql.NullFloat64
	gt.NoError(t, db.QueryRow("SELECT vec_cosine_distance(NULL, ?)", blob(t, 1, 0)).Scan(&got))
	gt.False(t, got.Valid)

	gt.NoError(t, db.QueryRow("SELECT vec_cosine_distance(?, ?)", blob(t, 0, 0), blob(t, 1, 0)).Scan(&got))
	gt.False(t, got.Valid)
}

func TestVectorFunctions_DimensionMismatch(t *testing.T) {
	db := openTestDB(t)

	var got float64
	err := db.QueryRow("SELECT vec_l2(?, ?)", blob(t, 1, 0), blob(t, 1, 0, 0)).Scan(&got)
	gt.Error(t, err)

	err = db.QueryRow("SELECT vec_l2(?, 'text')", blob(t, 1, 0)).Scan(&got)
	gt.Error(t, err)
}
