package command

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

func TestStampFromSelectionPushAndUndo(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	selection := [][]ident.TileID{{1, 2}, {3, 4}}

	s := NewStack(10)
	s.Store(NewStampFromSelection(layer, selection, geom.Point{X: 1, Y: 1}))

	if got := layer.Tile.Matrix.At(geom.Point{X: 1, Y: 1}); got != 4 {
		t.Fatalf("At(1,1) = %d, want 4 (bottom-right of a 2x2 selection centered at (0,0) relative offset)", got)
	}

	s.Undo()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := layer.Tile.Matrix.At(geom.Point{X: x, Y: y}); got != ident.Empty {
				t.Fatalf("At(%d,%d) after undo = %d, want Empty", x, y, got)
			}
		}
	}
}

func TestBucketFillCommandPushAndUndo(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)

	s := NewStack(10)
	s.Push(NewBucketFillCommand(layer, geom.Point{X: 0, Y: 0}, ident.TileID(9)))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := layer.Tile.Matrix.At(geom.Point{X: x, Y: y}); got != 9 {
				t.Fatalf("At(%d,%d) = %d, want 9 (whole layer flooded)", x, y, got)
			}
		}
	}

	s.Undo()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := layer.Tile.Matrix.At(geom.Point{X: x, Y: y}); got != ident.Empty {
				t.Fatalf("At(%d,%d) after undo = %d, want Empty", x, y, got)
			}
		}
	}
}

func TestEraserFromPositionsPushAndUndo(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Tile.Matrix.Set(geom.Point{X: 0, Y: 0}, ident.TileID(5))

	s := NewStack(10)
	s.Store(NewEraserFromPositions(layer, []geom.Point{{X: 0, Y: 0}}))

	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 0}); got != ident.Empty {
		t.Fatalf("At(0,0) = %d, want Empty", got)
	}

	s.Undo()
	if got := layer.Tile.Matrix.At(geom.Point{X: 0, Y: 0}); got != 5 {
		t.Fatalf("At(0,0) after undo = %d, want 5", got)
	}
}
