package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
)

func entriesOf(points ...geo.Point) []index.Entry {
	entries := make([]index.Entry, len(points))
	for i, p := range points {
		entries[i] = index.Entry{ID: uint32(i), Point: p}
	}
	return entries
}

func TestLinear(t *testing.T) {
	li, err := New(entriesOf(geo.Pt(0, 0), geo.Pt(0, 1), geo.Pt(5, 1)))
	require.NoError(t, err)

	t.Run("bounds and membership", func(t *testing.T) {
		assert.Equal(t, geo.NewBox(0, 0, 5, 1), li.Bounds())
		assert.Equal(t, 3, li.Len())
		assert.True(t, li.Contains(geo.Pt(0.1, 0.1)))
		assert.False(t, li.Contains(geo.Pt(-0.1, 0.1)))
	})

	t.Run("walk in input order", func(t *testing.T) {
		var ids []uint32
		for e := range li.Walk() {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []uint32{0, 1, 2}, ids)
	})

	t.Run("query", func(t *testing.T) {
		shape, err := geometry.NewBoxShape(geo.NewBox(-1, -1, 1, 2))
		require.NoError(t, err)

		var ids []uint32
		for e := range li.Query(shape, nil) {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []uint32{0, 1}, ids)
		assert.Equal(t, 2, li.Count(shape, nil))
	})

	t.Run("query with filter", func(t *testing.T) {
		shape, err := geometry.NewBoxShape(geo.NewBox(-1, -1, 6, 2))
		require.NoError(t, err)

		opts := &index.QueryOptions{Filter: func(id uint32) bool { return id == 2 }}

		var ids []uint32
		for e := range li.Query(shape, opts) {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []uint32{2}, ids)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, index.ErrEmptyInput)
	})
}
