package quadtree

import "github.com/hupe1980/geoquad/geo"

// Stats describes the shape of a built quadtree.
type Stats struct {
	Points          int     // total indexed entries
	Nodes           int     // total nodes, internal and leaf
	Leaves          int     // leaf nodes
	MaxDepth        int     // deepest node observed
	MaxLeafSize     int     // largest leaf
	OversizedLeaves int     // leaves past capacity (depth-cap overflow)
	Capacity        int     // configured leaf capacity
	DepthLimit      int     // configured depth cap
	Bounds          geo.Box // root bounding box
}

// Stats walks the tree and returns its statistics.
func (t *Quadtree) Stats() Stats {
	s := Stats{
		Points:     t.root.size,
		Capacity:   t.opts.Capacity,
		DepthLimit: t.opts.MaxDepth,
		Bounds:     t.bounds,
	}
	collectStats(t.root, &s)
	return s
}

func collectStats(n *node, s *Stats) {
	s.Nodes++
	if n.depth > s.MaxDepth {
		s.MaxDepth = n.depth
	}

	if n.leaf() {
		s.Leaves++
		if len(n.entries) > s.MaxLeafSize {
			s.MaxLeafSize = len(n.entries)
		}
		if len(n.entries) > s.Capacity {
			s.OversizedLeaves++
		}
		return
	}

	for _, c := range n.children {
		collectStats(c, s)
	}
}
