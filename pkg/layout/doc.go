// Package layout computes geometry for a three-column square grid in which
// some items are expanded to span a 2×2 block, and answers viewport queries
// against the result.
//
// # Chunks and Patterns
//
// Items are grouped in chunks of [ChunkSize] consecutive positions. Each
// chunk occupies one row and is placed according to its [Pattern], decided by
// which member (if any) is expanded:
//
//	start        middle       end          none
//	┌────┬──┐    ┌──┬────┐    ┌──┬────┐    ┌──┬──┬──┐
//	│ 0  │1 │    │0 │ 1  │    │0 │ 2  │    │0 │1 │2 │
//	│    ├──┤    ├──┤    │    ├──┤    │    └──┴──┴──┘
//	│    │2 │    │2 │    │    │1 │    │
//	└────┴──┘    └──┴────┘    └──┴────┘
//
// Only the first expanded member of a chunk is honoured; later ones are laid
// out as regular cells. Chunks with fewer than three members never expand.
//
// # Building
//
// [Build] samples the expansion callback once per item and returns a
// [Result] whose items are ordered by position and, chunk by chunk, by
// vertical offset:
//
//	res := layout.Build(layout.Config{Count: 6, Width: 100, Spacing: 1},
//	    func(i int) bool { return i == 1 })
//
// # Querying
//
// [Visible] returns the items intersecting a viewport using a binary search
// followed by chunk-wise expansion. [Scan] is the linear equivalent.
package layout
