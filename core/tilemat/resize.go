package tilemat

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// Resize changes the matrix's extent in place. When shrinking on either
// axis, the discarded region (tail rows union tail columns, at the
// pre-resize extent) is captured and returned so the caller can snapshot
// it for an undoable lossy resize (spec.md §4.3 "Resize map"). Growing
// never loses data and returns a nil snapshot.
func (m *Matrix) Resize(newExtent geom.Extent) map[geom.Point]ident.TileID {
	old := m.extent
	var snapshot map[geom.Point]ident.TileID

	if newExtent.Rows < old.Rows || newExtent.Cols < old.Cols {
		snapshot = make(map[geom.Point]ident.TileID)
		if newExtent.Rows < old.Rows {
			for y := newExtent.Rows; y < old.Rows; y++ {
				for x := 0; x < old.Cols; x++ {
					p := geom.Point{X: x, Y: y}
					snapshot[p] = m.At(p)
				}
			}
		}
		if newExtent.Cols < old.Cols {
			for x := newExtent.Cols; x < old.Cols; x++ {
				for y := 0; y < old.Rows; y++ {
					p := geom.Point{X: x, Y: y}
					snapshot[p] = m.At(p)
				}
			}
		}
	}

	next := make([]ident.TileID, newExtent.Rows*newExtent.Cols)
	copyRows := old.Rows
	if newExtent.Rows < copyRows {
		copyRows = newExtent.Rows
	}
	copyCols := old.Cols
	if newExtent.Cols < copyCols {
		copyCols = newExtent.Cols
	}
	for y := 0; y < copyRows; y++ {
		srcStart := y * old.Cols
		dstStart := y * newExtent.Cols
		copy(next[dstStart:dstStart+copyCols], m.tiles[srcStart:srcStart+copyCols])
	}

	m.tiles = next
	m.extent = newExtent
	return snapshot
}

// RestoreResize is the undo half of Resize: it resizes back to oldExtent
// and reapplies the previously captured snapshot, restoring byte-for-byte
// the pre-resize contents (spec.md §4.3: "Undo restores the previous
// extent and re-applies the snapshot").
func (m *Matrix) RestoreResize(oldExtent geom.Extent, snapshot map[geom.Point]ident.TileID) {
	m.Resize(oldExtent)
	for p, v := range snapshot {
		if m.InBounds(p) {
			m.Set(p, v)
		}
	}
}
