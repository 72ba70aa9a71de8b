package rope

import "unicode/utf8"

// chunkIterFrame represents a position in the tree traversal for chunk iteration.
type chunkIterFrame struct {
	node     *Node
	childIdx int        // Next child index to visit (for internal nodes)
	chunkIdx int        // Next chunk index to visit (for leaf nodes)
	offset   ByteOffset // Absolute byte offset at start of this node
}

// ChunkIterator iterates over chunks in a rope.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart ByteOffset
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			it.chunkStart += ByteOffset(it.chunk.Len())
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

// findNextChunk finds the next available chunk.
func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				if frame.chunkIdx == 0 {
					it.chunkStart = frame.offset
				}
				it.chunk = node.chunks[frame.chunkIdx]
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(node.children) {
			childOffset := frame.offset
			for i := 0; i < frame.childIdx; i++ {
				childOffset += node.childSummaries[i].Bytes
			}

			it.stack = append(it.stack, chunkIterFrame{
				node:   node.children[frame.childIdx],
				offset: childOffset,
			})
			continue
		}

		it.pop()
	}

	return false
}

// pop leaves the current node and moves its parent to the next child.
func (it *ChunkIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		it.stack[len(it.stack)-1].childIdx++
	}
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.chunkStart
}

// RuneIterator iterates over codepoints in a rope.
type RuneIterator struct {
	chunks  *ChunkIterator
	data    string
	pos     int
	current rune
	size    int
	index   uint64
	started bool
}

// Runes returns an iterator over all codepoints in the rope.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{chunks: r.Chunks()}
}

// Next advances to the next codepoint.
// Returns true if there is a codepoint, false if iteration is complete.
func (it *RuneIterator) Next() bool {
	if it.started {
		it.pos += it.size
		it.index++
	}
	it.started = true

	for it.pos >= len(it.data) {
		if !it.chunks.Next() {
			it.size = 0
			return false
		}
		it.data = it.chunks.Chunk().String()
		it.pos = 0
	}

	it.current, it.size = utf8.DecodeRuneInString(it.data[it.pos:])
	return true
}

// Rune returns the current codepoint.
func (it *RuneIterator) Rune() rune {
	return it.current
}

// Size returns the UTF-8 byte size of the current codepoint.
func (it *RuneIterator) Size() int {
	return it.size
}

// Index returns the codepoint index of the current codepoint.
func (it *RuneIterator) Index() uint64 {
	return it.index
}
