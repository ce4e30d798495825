// Package engine provides helpers for working with the modernc.org/sqlite
// driver: opening connections and registering the vector distance scalar
// functions that queries rely on. It keeps a thin surface so other packages
// share the same driver instance.
package engine
