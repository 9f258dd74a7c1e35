package model

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
)

func newTestTileset(rows, cols int) *Tileset {
	return NewTileset(TextureRef{Path: "tiles.png", Size: geom.Size{Width: rows * 16, Height: cols * 16}}, geom.Size{Width: 16, Height: 16}, rows, cols)
}

func TestAttachTilesetNeverReusesDetachedRange(t *testing.T) {
	m := New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 4, Cols: 4})

	a := newTestTileset(2, 2) // 4 tiles: ids 1-4
	b := newTestTileset(2, 3) // 6 tiles: ids 5-10

	atA := m.AttachTileset(a, false)
	atB := m.AttachTileset(b, false)
	if atA.FirstTileID != 1 || atA.LastTileID != 4 {
		t.Fatalf("a's range = [%d,%d], want [1,4]", atA.FirstTileID, atA.LastTileID)
	}
	if atB.FirstTileID != 5 || atB.LastTileID != 10 {
		t.Fatalf("b's range = [%d,%d], want [5,10]", atB.FirstTileID, atB.LastTileID)
	}

	// Detach b, the highest-range tileset, then attach a new one: the
	// vacated [5,10] range must not be reissued.
	m.DetachTileset(b.UUID)
	c := newTestTileset(1, 2) // 2 tiles
	atC := m.AttachTileset(c, false)
	if atC.FirstTileID != 11 {
		t.Fatalf("c's FirstTileID = %d, want 11 (continuing past b's vacated range)", atC.FirstTileID)
	}
}

func TestAttachTilesetAdvancesAcrossDetachReattach(t *testing.T) {
	m := New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 4, Cols: 4})
	a := newTestTileset(1, 1)
	atA := m.AttachTileset(a, false)

	ts, at, order := m.DetachTileset(a.UUID)
	m.RestoreTileset(ts, at, order)

	b := newTestTileset(1, 1)
	atB := m.AttachTileset(b, false)
	if atB.FirstTileID <= atA.LastTileID {
		t.Fatalf("b's FirstTileID = %d, want > %d (restore must not roll the counter back)", atB.FirstTileID, atA.LastTileID)
	}
}
