package tilemat

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// buildMatrix fills a 5x5 matrix with 0 everywhere except a horizontal
// wall of tile id 9 along row 2, splitting it into two disconnected regions.
func buildMatrix() *Matrix {
	m := NewMatrix(geom.Extent{Rows: 5, Cols: 5})
	for x := 0; x < 5; x++ {
		m.Set(geom.Point{X: x, Y: 2}, 9)
	}
	return m
}

func TestFloodFillsConnectedRegion(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 3, Cols: 3})

	affected := m.Flood(geom.Point{X: 1, Y: 1}, 5, nil)

	if len(affected) != 9 {
		t.Fatalf("Flood: affected %d cells, want 9 (whole uniform matrix)", len(affected))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := m.At(geom.Point{X: x, Y: y}); got != 5 {
				t.Fatalf("At(%d,%d) = %d, want 5", x, y, got)
			}
		}
	}
}

func TestFloodRespectsBarriers(t *testing.T) {
	m := buildMatrix()

	affected := m.Flood(geom.Point{X: 0, Y: 0}, 7, nil)

	// Only the 10 cells above the wall (rows 0-1, 5 cols each) should flip.
	if len(affected) != 10 {
		t.Fatalf("Flood: affected %d cells, want 10", len(affected))
	}
	if got := m.At(geom.Point{X: 4, Y: 4}); got != ident.Empty {
		t.Fatalf("Flood leaked across the wall: At(4,4) = %d, want Empty", got)
	}
	if got := m.At(geom.Point{X: 2, Y: 2}); got != 9 {
		t.Fatalf("Flood overwrote the wall itself: At(2,2) = %d, want 9", got)
	}
}

func TestFloodNoOpWhenAlreadyReplacement(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})

	affected := m.Flood(geom.Point{X: 0, Y: 0}, ident.Empty, nil)

	if len(affected) != 0 {
		t.Fatalf("Flood: expected no-op when target already equals replacement, got %d affected", len(affected))
	}
}

func TestFloodNoOpOutOfBounds(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})

	affected := m.Flood(geom.Point{X: 9, Y: 9}, 3, nil)

	if len(affected) != 0 {
		t.Fatalf("Flood: expected no-op for out-of-bounds origin, got %d affected", len(affected))
	}
}

func TestFloodAppendsToExistingSlice(t *testing.T) {
	m := NewMatrix(geom.Extent{Rows: 2, Cols: 2})
	seed := []geom.Point{{X: 9, Y: 9}}

	affected := m.Flood(geom.Point{X: 0, Y: 0}, 1, seed)

	if len(affected) != 1+4 {
		t.Fatalf("Flood: affected = %d, want 5 (1 seed + 4 cells)", len(affected))
	}
	if affected[0] != (geom.Point{X: 9, Y: 9}) {
		t.Fatalf("Flood: did not preserve caller-supplied prefix")
	}
}
