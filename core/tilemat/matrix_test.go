package tilemat

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

func TestMatrixSetAt(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 3, Cols: 4})
	p := geom.Point{X: 2, Y: 1}

	m.Set(p, ident.TileID(7))

	if got := m.At(p); got != 7 {
		t.Fatalf("At(%v) = %d, want 7", p, got)
	}
	if got := m.At(geom.Point{X: 0, Y: 0}); got != ident.Empty {
		t.Fatalf("At(origin) = %d, want Empty", got)
	}
}

func TestMatrixTryAtOutOfBounds(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	if _, ok := m.TryAt(geom.Point{X: 5, Y: 5}); ok {
		t.Fatalf("TryAt: expected out-of-bounds position to report false")
	}
}

func TestMatrixSetPanicsOutOfBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Set: expected panic for out-of-bounds position")
		}
	}()
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 9, Y: 9}, 1)
}

func TestMatrixCloneIsIndependent(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 0, Y: 0}, 5)

	dup := m.Clone()
	dup.Set(geom.Point{X: 0, Y: 0}, 9)

	if got := m.At(geom.Point{X: 0, Y: 0}); got != 5 {
		t.Fatalf("mutating clone affected original: got %d, want 5", got)
	}
	if !m.Equal(m.Clone()) {
		t.Fatalf("Equal: a matrix should equal its own clone")
	}
	if m.Equal(dup) {
		t.Fatalf("Equal: matrices with diverging contents reported equal")
	}
}

func TestMatrixAppendRemoveRow(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 0, Y: 1}, 3)
	m.Set(geom.Point{X: 1, Y: 1}, 4)

	m.AppendRow()
	if m.Extent().Rows != 3 {
		t.Fatalf("AppendRow: Rows = %d, want 3", m.Extent().Rows)
	}
	if got := m.At(geom.Point{X: 0, Y: 2}); got != ident.Empty {
		t.Fatalf("AppendRow: new row not empty, got %d", got)
	}

	removed := m.RemoveRow()
	if m.Extent().Rows != 2 {
		t.Fatalf("RemoveRow: Rows = %d, want 2", m.Extent().Rows)
	}
	if len(removed) != 2 || removed[0] != ident.Empty {
		t.Fatalf("RemoveRow: removed = %v, want the appended empty row", removed)
	}

	removed = m.RemoveRow()
	if len(removed) != 2 || removed[0] != 3 || removed[1] != 4 {
		t.Fatalf("RemoveRow: removed = %v, want [3 4]", removed)
	}
}

func TestMatrixAppendRemoveColumn(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	m.Set(geom.Point{X: 1, Y: 0}, 1)
	m.Set(geom.Point{X: 1, Y: 1}, 2)

	m.AppendColumn()
	if m.Extent().Cols != 3 {
		t.Fatalf("AppendColumn: Cols = %d, want 3", m.Extent().Cols)
	}

	removed := m.RemoveColumn()
	if m.Extent().Cols != 2 {
		t.Fatalf("RemoveColumn: Cols = %d, want 2", m.Extent().Cols)
	}
	if len(removed) != 2 || removed[0] != ident.Empty {
		t.Fatalf("RemoveColumn: removed = %v, want the appended empty column", removed)
	}

	removed = m.RemoveColumn()
	if len(removed) != 2 || removed[0] != 1 || removed[1] != 2 {
		t.Fatalf("RemoveColumn: removed = %v, want [1 2]", removed)
	}
}
