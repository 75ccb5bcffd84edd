package quadtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
	"github.com/hupe1980/geoquad/index/linear"
)

func entriesOf(points ...geo.Point) []index.Entry {
	entries := make([]index.Entry, len(points))
	for i, p := range points {
		entries[i] = index.Entry{ID: uint32(i), Point: p}
	}
	return entries
}

func collectIDs(seq func(yield func(index.Entry) bool)) []uint32 {
	var ids []uint32
	seq(func(e index.Entry) bool {
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

func TestNew(t *testing.T) {
	t.Run("bounds are the minimal box", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(0.5, 0.5), geo.Pt(0.75, 0.25), geo.Pt(1, 1)))
		require.NoError(t, err)
		assert.Equal(t, geo.NewBox(0, 0, 1, 1), tr.Bounds())
		assert.Equal(t, 4, tr.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, index.ErrEmptyInput)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		_, err := New(entriesOf(geo.Pt(0, 0)), func(o *Options) { o.Capacity = 0 })
		assert.Error(t, err)
	})

	t.Run("invalid max depth", func(t *testing.T) {
		_, err := New(entriesOf(geo.Pt(0, 0)), func(o *Options) { o.MaxDepth = 0 })
		assert.Error(t, err)
	})

	t.Run("single point", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(2, 3)))
		require.NoError(t, err)
		assert.Equal(t, geo.NewBox(2, 3, 2, 3), tr.Bounds())
		assert.True(t, tr.Bounds().IsDegenerate())
		assert.Equal(t, []uint32{0}, collectIDs(tr.Walk()))
	})
}

func TestContains(t *testing.T) {
	tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(0, 1), geo.Pt(5, 1)))
	require.NoError(t, err)

	assert.True(t, tr.Contains(geo.Pt(0, 0)))
	assert.True(t, tr.Contains(geo.Pt(0.1, 0.1)))
	assert.True(t, tr.Contains(geo.Pt(5, 1)), "far corner")
	assert.False(t, tr.Contains(geo.Pt(-0.1, 0.1)))
	assert.False(t, tr.Contains(geo.Pt(5.1, 1)))
}

func TestWalk(t *testing.T) {
	t.Run("single leaf preserves insertion order", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(0.5, 0.5), geo.Pt(0.75, 0.25)))
		require.NoError(t, err)
		assert.Equal(t, []uint32{0, 1, 2}, collectIDs(tr.Walk()))
	})

	t.Run("every entry exactly once", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		entries := make([]index.Entry, 1000)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64()*100, rng.Float64()*100)}
		}

		tr, err := New(entries)
		require.NoError(t, err)

		seen := make(map[uint32]int)
		for e := range tr.Walk() {
			seen[e.ID]++
		}
		require.Len(t, seen, 1000)
		for id, n := range seen {
			assert.Equal(t, 1, n, "entry %d yielded %d times", id, n)
		}
	})

	t.Run("restartable and deterministic", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		entries := make([]index.Entry, 200)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64(), rng.Float64())}
		}

		tr, err := New(entries)
		require.NoError(t, err)
		assert.Equal(t, collectIDs(tr.Walk()), collectIDs(tr.Walk()))
	})

	t.Run("early termination", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(0, 1)))
		require.NoError(t, err)

		count := 0
		for range tr.Walk() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}

func TestSubdivision(t *testing.T) {
	t.Run("leaf splits past capacity", func(t *testing.T) {
		tr, err := New(
			entriesOf(geo.Pt(0.25, 0.25), geo.Pt(0.75, 0.25), geo.Pt(0.25, 0.75), geo.Pt(0.75, 0.75), geo.Pt(0.1, 0.1)),
			func(o *Options) { o.Capacity = 4 },
		)
		require.NoError(t, err)

		stats := tr.Stats()
		assert.Equal(t, 5, stats.Points)
		assert.Equal(t, 4, stats.Leaves)
		assert.Equal(t, 5, stats.Nodes)
		assert.Equal(t, 1, stats.MaxDepth)
	})

	t.Run("leaf sizes bounded by capacity", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		entries := make([]index.Entry, 1000)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64()*1000, rng.Float64()*1000)}
		}

		tr, err := New(entries, func(o *Options) { o.Capacity = 4 })
		require.NoError(t, err)

		stats := tr.Stats()
		assert.Equal(t, 1000, stats.Points)
		assert.LessOrEqual(t, stats.MaxLeafSize, 4)
		assert.Zero(t, stats.OversizedLeaves)
		assert.LessOrEqual(t, stats.MaxDepth, stats.DepthLimit)
		assert.Len(t, collectIDs(tr.Walk()), 1000)
	})

	t.Run("coincident points terminate at the depth cap", func(t *testing.T) {
		entries := make([]index.Entry, 100)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(0.25, 0.25)}
		}

		tr, err := New(entries, func(o *Options) {
			o.Capacity = 1
			o.MaxDepth = 8
		})
		require.NoError(t, err)

		stats := tr.Stats()
		assert.Equal(t, 100, stats.Points)
		assert.Equal(t, 8, stats.MaxDepth)
		assert.Equal(t, 1, stats.OversizedLeaves, "overflow leaf at the cap")
		assert.Len(t, collectIDs(tr.Walk()), 100)
	})

	t.Run("collinear points terminate", func(t *testing.T) {
		entries := make([]index.Entry, 64)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(2, float64(i%4))}
		}

		tr, err := New(entries, func(o *Options) {
			o.Capacity = 2
			o.MaxDepth = 10
		})
		require.NoError(t, err)
		assert.True(t, tr.Bounds().IsDegenerate())
		assert.Len(t, collectIDs(tr.Walk()), 64)
	})
}

func TestQuery(t *testing.T) {
	square := func(minX, minY, maxX, maxY float64) geometry.Shape {
		shape, err := geometry.NewBoxShape(geo.NewBox(minX, minY, maxX, maxY))
		require.NoError(t, err)
		return shape
	}

	t.Run("matches brute force", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		entries := make([]index.Entry, 500)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64()*10, rng.Float64()*10)}
		}

		tr, err := New(entries, func(o *Options) { o.Capacity = 4 })
		require.NoError(t, err)

		engine := geometry.Default
		shapes := []geometry.Shape{
			square(2, 2, 7, 7),
			square(-1, -1, 11, 11), // covers everything
			square(20, 20, 30, 30), // disjoint
			square(0, 0, 0.5, 10),  // thin slice
		}

		for _, shape := range shapes {
			var want []uint32
			for _, e := range entries {
				if engine.ShapeContainsPoint(shape, e.Point) {
					want = append(want, e.ID)
				}
			}

			got := collectIDs(tr.Query(shape, nil))
			assert.ElementsMatch(t, want, got)
			assert.Equal(t, len(want), tr.Count(shape, nil))
		}
	})

	t.Run("agrees with the linear index", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		entries := make([]index.Entry, 300)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64()*10, rng.Float64()*10)}
		}

		tr, err := New(entries, func(o *Options) { o.Capacity = 2 })
		require.NoError(t, err)
		li, err := linear.New(entries)
		require.NoError(t, err)

		shapes := []geometry.Shape{
			square(1, 1, 4, 9),
			square(3, 3, 6, 6),
			square(-1, -1, 11, 11),
		}
		for _, shape := range shapes {
			assert.ElementsMatch(t, collectIDs(li.Query(shape, nil)), collectIDs(tr.Query(shape, nil)))
			assert.Equal(t, li.Count(shape, nil), tr.Count(shape, nil))
		}
	})

	t.Run("result order follows walk order", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		entries := make([]index.Entry, 200)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64()*10, rng.Float64()*10)}
		}

		tr, err := New(entries, func(o *Options) { o.Capacity = 4 })
		require.NoError(t, err)

		shape := square(-1, -1, 11, 11)
		assert.Equal(t, collectIDs(tr.Walk()), collectIDs(tr.Query(shape, nil)))
	})

	t.Run("filter restricts candidates", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(1, 1), geo.Pt(2, 2), geo.Pt(3, 3)))
		require.NoError(t, err)

		shape := square(0, 0, 4, 4)
		opts := &index.QueryOptions{Filter: func(id uint32) bool { return id != 1 }}

		assert.Equal(t, []uint32{0, 2}, collectIDs(tr.Query(shape, opts)))
		assert.Equal(t, 2, tr.Count(shape, opts))
	})

	t.Run("filter applies on the contains-box fast path", func(t *testing.T) {
		rng := rand.New(rand.NewSource(6))
		entries := make([]index.Entry, 100)
		for i := range entries {
			entries[i] = index.Entry{ID: uint32(i), Point: geo.Pt(rng.Float64(), rng.Float64())}
		}

		tr, err := New(entries, func(o *Options) { o.Capacity = 4 })
		require.NoError(t, err)

		// Shape strictly covers the whole tree, so subtree fast paths fire.
		shape := square(-5, -5, 5, 5)
		opts := &index.QueryOptions{Filter: func(id uint32) bool { return id%2 == 0 }}

		got := collectIDs(tr.Query(shape, opts))
		assert.Len(t, got, 50)
		for _, id := range got {
			assert.Zero(t, id%2)
		}
		assert.Equal(t, 50, tr.Count(shape, opts))
	})

	t.Run("empty result for disjoint shape", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(1, 1)))
		require.NoError(t, err)

		assert.Empty(t, collectIDs(tr.Query(square(5, 5, 6, 6), nil)))
		assert.Zero(t, tr.Count(square(5, 5, 6, 6), nil))
	})

	t.Run("early termination", func(t *testing.T) {
		tr, err := New(entriesOf(geo.Pt(1, 1), geo.Pt(2, 2), geo.Pt(3, 3)))
		require.NoError(t, err)

		count := 0
		for range tr.Query(square(0, 0, 4, 4), nil) {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestStats(t *testing.T) {
	tr, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(1, 1)), func(o *Options) {
		o.Capacity = 8
		o.MaxDepth = 16
	})
	require.NoError(t, err)

	stats := tr.Stats()
	assert.Equal(t, 2, stats.Points)
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 1, stats.Leaves)
	assert.Equal(t, 2, stats.MaxLeafSize)
	assert.Equal(t, 8, stats.Capacity)
	assert.Equal(t, 16, stats.DepthLimit)
	assert.Equal(t, geo.NewBox(0, 0, 1, 1), stats.Bounds)
}
