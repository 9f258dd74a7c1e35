package tilemat

import (
	"math/rand"
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

func TestStampWritesCenteredSelection(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 5, Cols: 5})
	cache := NewOldStateCache()
	selection := [][]ident.TileID{
		{1, 2},
		{3, 4},
	}

	written := Stamp(m, cache, selection, geom.Point{X: 2, Y: 2})

	if len(written) != 4 {
		t.Fatalf("Stamp: wrote %d cells, want 4", len(written))
	}
	// 2x2 selection has center (1,1); cursor (2,2) so selection[0][0]=1
	// lands at (1,1) and selection[1][1]=4 lands back on the cursor itself.
	if got := m.At(geom.Point{X: 1, Y: 1}); got != 1 {
		t.Fatalf("At(1,1) = %d, want 1", got)
	}
	if got := m.At(geom.Point{X: 2, Y: 2}); got != 4 {
		t.Fatalf("At(2,2) = %d, want 4", got)
	}
}

func TestStampSkipsEmptySourceCells(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 3, Cols: 3})
	cache := NewOldStateCache()
	selection := [][]ident.TileID{{ident.Empty}}

	written := Stamp(m, cache, selection, geom.Point{X: 1, Y: 1})

	if len(written) != 0 {
		t.Fatalf("Stamp: expected no writes for an all-empty selection, wrote %d", len(written))
	}
}

func TestStampSkipsOutOfBoundsTargets(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	cache := NewOldStateCache()
	selection := [][]ident.TileID{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}

	written := Stamp(m, cache, selection, geom.Point{X: 0, Y: 0})

	for _, p := range written {
		if !m.InBounds(p) {
			t.Fatalf("Stamp: wrote out-of-bounds position %v", p)
		}
	}
}

func TestOldStateCacheTouchFirstWriteOnly(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 0, Y: 0}, 5)

	cache := NewOldStateCache()
	p := geom.Point{X: 0, Y: 0}

	cache.Touch(m, p)
	m.Set(p, 9)
	cache.Touch(m, p)

	if cache.Len() != 1 {
		t.Fatalf("Touch: Len() = %d, want 1 (second Touch on same cell is a no-op)", cache.Len())
	}

	cache.Apply(m)
	if got := m.At(p); got != 5 {
		t.Fatalf("Apply: At = %d, want 5 (the value recorded on first touch)", got)
	}
}

func TestEraseWritesEmptyAndUndoes(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 0, Y: 0}, 7)
	cache := NewOldStateCache()

	written := Erase(m, cache, []geom.Point{{X: 0, Y: 0}, {X: 9, Y: 9}})

	if len(written) != 1 {
		t.Fatalf("Erase: wrote %d cells, want 1 (out-of-bounds position skipped)", len(written))
	}
	if got := m.At(geom.Point{X: 0, Y: 0}); got != ident.Empty {
		t.Fatalf("Erase: At = %d, want Empty", got)
	}

	cache.Apply(m)
	if got := m.At(geom.Point{X: 0, Y: 0}); got != 7 {
		t.Fatalf("undo via Apply: At = %d, want 7", got)
	}
}

func TestRandomStampOnlyUsesNonEmptyPool(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 3, Cols: 3})
	cache := NewOldStateCache()
	selection := [][]ident.TileID{{ident.Empty, 42}}
	positions := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	rng := rand.New(rand.NewSource(1))

	written := RandomStamp(m, cache, selection, positions, rng)

	if len(written) != len(positions) {
		t.Fatalf("RandomStamp: wrote %d, want %d", len(written), len(positions))
	}
	for _, p := range written {
		if got := m.At(p); got != 42 {
			t.Fatalf("At(%v) = %d, want 42 (only non-empty pool member)", p, got)
		}
	}
}

func TestRandomStampEmptyPoolIsNoOp(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	cache := NewOldStateCache()
	selection := [][]ident.TileID{{ident.Empty}}
	rng := rand.New(rand.NewSource(1))

	written := RandomStamp(m, cache, selection, []geom.Point{{X: 0, Y: 0}}, rng)

	if written != nil {
		t.Fatalf("RandomStamp: expected nil for an all-empty selection, got %v", written)
	}
}
