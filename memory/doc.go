// Package memory persists semi-structured memory records in SQLite next to an
// embedding of their text, and retrieves them by vector similarity.
//
// A Store owns no state beyond its database handle and embedding provider.
// Each operation is one statement (plus one provider call for StoreMemory and
// Search), so operations may run concurrently without coordination:
//
//	db, _ := engine.Open("memories.sqlite")
//	_ = memory.EnsureSchema(ctx, db, memory.DefaultTable, 384)
//	store, _ := memory.New(db, embedding.NewHash(384))
//	m, _ := store.StoreMemory(ctx, memory.NewMemory{
//		Type:    "note",
//		Content: json.RawMessage(`{"fact":"The sky is blue"}`),
//	})
//	matches, _ := store.Search(ctx, "what colour is the sky", memory.WithMinSimilarity(0.5))
package memory
