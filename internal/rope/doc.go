// Package rope provides the immutable rope that backs unitext.Text.
//
// A rope is a B+ tree whose leaves hold UTF-8 chunks and whose internal
// nodes store aggregated metrics: byte count, codepoint count and UTF-16
// unit count. Chunks are only ever cut on codepoint boundaries, so every
// codepoint lives entirely inside one chunk.
//
// Key features:
//   - O(log n) insertion, deletion and access by codepoint index
//   - O(1) codepoint and UTF-16 unit counts
//   - Immutable operations return new ropes; originals are never modified
//   - Copy-on-write semantics make clones free
//
// Basic usage:
//
//	r := rope.FromString("héllo")
//	r = r.Insert(r.RuneOffset(1), "_") // "h_éllo"
//	ch, _ := r.RuneAt(2)               // 'é'
//	n := r.RuneCount()                 // 6
//
// The rope does not validate its input. Callers must hand it well-formed
// UTF-8 and must split it only at offsets returned by RuneOffset.
package rope
