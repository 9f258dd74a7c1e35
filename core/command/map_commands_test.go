package command

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

func newTestMap() *model.Map {
	return model.New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 4, Cols: 4})
}

func TestAddRowCommandPushAndUndo(t *testing.T) {
	m := newTestMap()
	s := NewStack(10)

	s.Push(NewAddRowCommand(m))

	if m.Extent.Rows != 5 {
		t.Fatalf("Rows after push = %d, want 5", m.Extent.Rows)
	}

	s.Undo()
	if m.Extent.Rows != 4 {
		t.Fatalf("Rows after undo = %d, want 4", m.Extent.Rows)
	}
}

func TestAddColumnCommandsMerge(t *testing.T) {
	m := newTestMap()
	s := NewStack(10)

	s.Push(NewAddColumnCommand(m))
	s.Push(NewAddColumnCommand(m))
	s.Push(NewAddColumnCommand(m))

	if m.Extent.Cols != 7 {
		t.Fatalf("Cols after three pushes = %d, want 7", m.Extent.Cols)
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (all three merged into one history entry)", s.Size())
	}

	s.Undo()
	if m.Extent.Cols != 4 {
		t.Fatalf("Cols after undoing the merged entry = %d, want 4 (single undo reverts all three)", m.Extent.Cols)
	}
}

func TestRemoveRowCommandRestoresDiscardedTiles(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Tile.Matrix.Set(geom.Point{X: 0, Y: 3}, ident.TileID(42))

	s := NewStack(10)
	s.Push(NewRemoveRowCommand(m))

	if m.Extent.Rows != 3 {
		t.Fatalf("Rows after remove = %d, want 3", m.Extent.Rows)
	}

	s.Undo()
	if m.Extent.Rows != 4 {
		t.Fatalf("Rows after undo = %d, want 4", m.Extent.Rows)
	}
	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 3}); got != 42 {
		t.Fatalf("discarded row contents not restored: got %d, want 42", got)
	}
}

func TestRemoveRowCommandsMergeRestoresFullSpan(t *testing.T) {
	m := model.New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 5, Cols: 2})
	layer := m.AddTileLayer(nil)
	layer.Tile.Matrix.Set(geom.Point{X: 0, Y: 3}, ident.TileID(7))
	layer.Tile.Matrix.Set(geom.Point{X: 0, Y: 4}, ident.TileID(8))

	s := NewStack(10)
	s.Push(NewRemoveRowCommand(m))
	s.Push(NewRemoveRowCommand(m))

	if m.Extent.Rows != 3 {
		t.Fatalf("Rows after two merged removes = %d, want 3", m.Extent.Rows)
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (merged)", s.Size())
	}

	s.Undo()
	if m.Extent.Rows != 5 {
		t.Fatalf("Rows after undoing the merged entry = %d, want 5", m.Extent.Rows)
	}
	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 3}); got != 7 {
		t.Fatalf("row 3 not restored: got %d, want 7", got)
	}
	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 4}); got != 8 {
		t.Fatalf("row 4 not restored: got %d, want 8", got)
	}
}

func TestFixInvalidTilesCommandRoundTrip(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Tile.Matrix.Set(geom.Point{X: 0, Y: 0}, ident.TileID(99)) // not backed by any tileset

	s := NewStack(10)
	s.Push(NewFixInvalidTilesCommand(m))

	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 0}); got != ident.Empty {
		t.Fatalf("invalid tile not cleared: got %d", got)
	}

	s.Undo()
	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 0}); got != 99 {
		t.Fatalf("invalid tile not restored on undo: got %d, want 99", got)
	}
}
