package rope

import (
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for codepoint-indexed text.
// Operations return new Rope values; the original is never modified.
// This makes clones free and allows concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a well-formed UTF-8 string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}

	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	// Build tree bottom-up
	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// RuneCount returns the number of codepoints.
func (r Rope) RuneCount() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.RuneCount()
}

// UTF16Len returns the number of UTF-16 code units needed to encode the text.
func (r Rope) UTF16Len() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.summary.UTF16Units
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// locateRune descends to the chunk holding the codepoint at idx.
// Returns the chunk, the byte offset of the codepoint inside it and the
// absolute byte offset of the chunk start.
func (r Rope) locateRune(idx uint64) (Chunk, int, ByteOffset, bool) {
	if r.root == nil || idx >= r.RuneCount() {
		return Chunk{}, 0, 0, false
	}

	node := r.root
	var base ByteOffset
	for !node.IsLeaf() {
		i, childIdx, childBase := node.findChildByRune(idx)
		node = node.children[i]
		idx = childIdx
		base += childBase
	}

	for _, chunk := range node.chunks {
		if idx < chunk.RuneCount() {
			return chunk, chunk.runeOffset(idx), base, true
		}
		idx -= chunk.RuneCount()
		base += ByteOffset(chunk.Len())
	}

	return Chunk{}, 0, 0, false
}

// RuneOffset returns the byte offset at which the codepoint with index idx
// starts. Indexes at or past RuneCount map to Len.
func (r Rope) RuneOffset(idx uint64) ByteOffset {
	if idx >= r.RuneCount() {
		return r.Len()
	}

	_, off, base, ok := r.locateRune(idx)
	if !ok {
		return r.Len()
	}
	return base + ByteOffset(off)
}

// RuneAt returns the codepoint with the given index.
// Returns utf8.RuneError and false if idx is out of range.
func (r Rope) RuneAt(idx uint64) (rune, bool) {
	chunk, off, _, ok := r.locateRune(idx)
	if !ok {
		return utf8.RuneError, false
	}

	ch, _ := utf8.DecodeRuneInString(chunk.String()[off:])
	return ch, true
}

// LastRune returns the final codepoint and its UTF-8 size.
// Returns utf8.RuneError and 0 for an empty rope.
func (r Rope) LastRune() (rune, int) {
	if r.IsEmpty() {
		return utf8.RuneError, 0
	}

	node := r.root
	for !node.IsLeaf() {
		node = node.children[len(node.children)-1]
	}
	for i := len(node.chunks) - 1; i >= 0; i-- {
		if !node.chunks[i].IsEmpty() {
			return utf8.DecodeLastRuneInString(node.chunks[i].String())
		}
	}
	return utf8.RuneError, 0
}

// Insert inserts text at the given byte offset.
// Returns a new rope; original is unchanged.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}

	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}

	if offset == 0 {
		return FromString(text).Concat(r)
	}

	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the byte range [start, end).
// Returns a new rope; original is unchanged.
func (r Rope) Delete(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start >= ropeLen {
		return r
	}
	end = min(end, ropeLen)

	if start == 0 && end >= ropeLen {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= ropeLen {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)

	return left.Concat(right)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}

	return Rope{root: concat(r.root, other.root)}
}

// summary returns the aggregated metrics for the entire rope.
func (r Rope) summary() TextSummary {
	if r.root == nil {
		return TextSummary{}.Zero()
	}
	return r.root.summary
}

// height returns the height of the rope tree.
func (r Rope) height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// chunkCount returns the total number of chunks in the rope.
func (r Rope) chunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes hold the same codepoint sequence.
// Chunk boundaries may differ between ropes, so this walks codepoints
// rather than comparing chunks.
func (r Rope) Equals(other Rope) bool {
	if r.RuneCount() != other.RuneCount() || r.Len() != other.Len() {
		return false
	}

	it1 := r.Runes()
	it2 := other.Runes()
	for it1.Next() {
		if !it2.Next() || it1.Rune() != it2.Rune() {
			return false
		}
	}
	return !it2.Next()
}
