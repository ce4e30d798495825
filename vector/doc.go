// Package vector holds the embedding representation shared by the engine and
// memory packages:
//   - BLOB encoding of float32 embeddings
//   - Go-side distance helpers backed by github.com/viant/vec
//   - Metric, the explicit mapping between similarity thresholds and the
//     distance values returned by the SQL functions
package vector
