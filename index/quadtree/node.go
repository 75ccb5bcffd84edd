package quadtree

import (
	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/index"
)

// node is a single quadtree cell. A node is either a leaf holding entries
// directly or an internal node with exactly four children whose boxes
// partition the node's box at its center. Children are exclusively owned;
// there are no parent pointers and no sharing.
type node struct {
	box      geo.Box
	depth    int
	size     int // entries in this subtree
	entries  []index.Entry
	children [4]*node
}

func (n *node) leaf() bool {
	return n.children[geo.NW] == nil
}

// insert routes an entry into the subtree. A full leaf subdivides unless
// it sits at the depth cap, in which case it grows past nominal capacity.
// The depth cap is what guarantees termination for coincident points and
// degenerate boxes, where subdivision can never separate the entries.
func (n *node) insert(e index.Entry, capacity, maxDepth int) {
	n.size++

	if n.leaf() {
		if len(n.entries) < capacity || n.depth >= maxDepth {
			n.entries = append(n.entries, e)
			return
		}
		n.subdivide()
	}

	n.children[n.box.QuadrantFor(e.Point)].insert(e, capacity, maxDepth)
}

// subdivide converts a full leaf into an internal node, redistributing
// its entries into the four quadrant children. Redistribution preserves
// the relative insertion order of entries that land in the same child.
func (n *node) subdivide() {
	for q := geo.NW; q <= geo.SE; q++ {
		n.children[q] = &node{box: n.box.Quadrant(q), depth: n.depth + 1}
	}

	held := n.entries
	n.entries = nil

	for _, e := range held {
		c := n.children[n.box.QuadrantFor(e.Point)]
		c.entries = append(c.entries, e)
		c.size++
	}
}

// emitAll yields every entry in the subtree in traversal order,
// applying the candidate filter but no geometric test.
func (n *node) emitAll(filter func(id uint32) bool, yield func(index.Entry) bool) bool {
	if n.leaf() {
		for _, e := range n.entries {
			if filter != nil && !filter(e.ID) {
				continue
			}
			if !yield(e) {
				return false
			}
		}
		return true
	}

	for _, c := range n.children {
		if !c.emitAll(filter, yield) {
			return false
		}
	}
	return true
}
