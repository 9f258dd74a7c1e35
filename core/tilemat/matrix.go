// Package tilemat implements the tile matrix and the performance-critical
// bulk-edit algorithms that operate on it: flood fill, resize, and the
// stamp/eraser old-state cache (spec.md §4.3 "Tile-Layer Engine").
package tilemat

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// Matrix is a row-major rows×cols grid of tile ids, backed by a single
// flat buffer (grounded on the teacher's tile_layer.go chunked-grid shape,
// flattened since this core has no infinite-map chunking requirement).
type Matrix struct {
	extent geom.Extent
	tiles  []ident.TileID
}

// NewMatrix allocates a matrix of the given extent, fully empty (tile id 0).
func NewMatrix(extent geom.Extent) *Matrix {
	return &Matrix{extent: extent, tiles: make([]ident.TileID, extent.Rows*extent.Cols)}
}

// NewMatrixFrom wraps an existing row-major buffer without copying. The
// caller must ensure len(tiles) == extent.Rows*extent.Cols.
func NewMatrixFrom(extent geom.Extent, tiles []ident.TileID) *Matrix {
	if len(tiles) != extent.Rows*extent.Cols {
		panic("tilemat: buffer size does not match extent")
	}
	return &Matrix{extent: extent, tiles: tiles}
}

// Extent returns the matrix's row/column dimensions.
func (m *Matrix) Extent() geom.Extent { return m.extent }

func (m *Matrix) index(p geom.Point) int { return p.Y*m.extent.Cols + p.X }

// At returns the tile id at p. Out-of-bounds access is a LogicError.
func (m *Matrix) At(p geom.Point) ident.TileID {
	if !m.extent.Contains(p) {
		panic("tilemat: position out of bounds")
	}
	return m.tiles[m.index(p)]
}

// TryAt returns the tile id at p and whether p is in bounds.
func (m *Matrix) TryAt(p geom.Point) (ident.TileID, bool) {
	if !m.extent.Contains(p) {
		return 0, false
	}
	return m.tiles[m.index(p)], true
}

// Set writes a tile id at p. Out-of-bounds access is a LogicError.
func (m *Matrix) Set(p geom.Point, id ident.TileID) {
	if !m.extent.Contains(p) {
		panic("tilemat: position out of bounds")
	}
	m.tiles[m.index(p)] = id
}

// InBounds reports whether p falls within the matrix's extent.
func (m *Matrix) InBounds(p geom.Point) bool { return m.extent.Contains(p) }

// Raw returns the underlying row-major buffer. Callers that mutate it must
// not change its length.
func (m *Matrix) Raw() []ident.TileID { return m.tiles }

// Clone returns a deep copy, used for full-layer undo snapshots.
func (m *Matrix) Clone() *Matrix {
	dup := &Matrix{extent: m.extent, tiles: make([]ident.TileID, len(m.tiles))}
	copy(dup.tiles, m.tiles)
	return dup
}

// Equal reports byte-for-byte equality of extent and contents (spec.md §4.7
// round-trip guarantee: "equal tile matrices byte-for-byte").
func (m *Matrix) Equal(other *Matrix) bool {
	if m.extent != other.extent || len(m.tiles) != len(other.tiles) {
		return false
	}
	for i := range m.tiles {
		if m.tiles[i] != other.tiles[i] {
			return false
		}
	}
	return true
}

// AppendRow adds an empty row at the bottom in O(cols).
func (m *Matrix) AppendRow() {
	m.tiles = append(m.tiles, make([]ident.TileID, m.extent.Cols)...)
	m.extent.Rows++
}

// RemoveRow deletes the bottom row in O(cols), returning its prior contents
// (left-to-right) so a command can snapshot it before a lossy resize.
func (m *Matrix) RemoveRow() []ident.TileID {
	if m.extent.Rows == 0 {
		panic("tilemat: cannot remove row from empty matrix")
	}
	start := (m.extent.Rows - 1) * m.extent.Cols
	removed := append([]ident.TileID(nil), m.tiles[start:]...)
	m.tiles = m.tiles[:start]
	m.extent.Rows--
	return removed
}

// AppendColumn adds an empty column at the right in O(rows*cols).
func (m *Matrix) AppendColumn() {
	newCols := m.extent.Cols + 1
	next := make([]ident.TileID, m.extent.Rows*newCols)
	for r := 0; r < m.extent.Rows; r++ {
		copy(next[r*newCols:r*newCols+m.extent.Cols], m.tiles[r*m.extent.Cols:(r+1)*m.extent.Cols])
	}
	m.tiles = next
	m.extent.Cols = newCols
}

// RemoveColumn deletes the rightmost column in O(rows*cols), returning its
// prior contents (top-to-bottom).
func (m *Matrix) RemoveColumn() []ident.TileID {
	if m.extent.Cols == 0 {
		panic("tilemat: cannot remove column from empty matrix")
	}
	removed := make([]ident.TileID, m.extent.Rows)
	newCols := m.extent.Cols - 1
	next := make([]ident.TileID, m.extent.Rows*newCols)
	for r := 0; r < m.extent.Rows; r++ {
		removed[r] = m.tiles[r*m.extent.Cols+m.extent.Cols-1]
		copy(next[r*newCols:(r+1)*newCols], m.tiles[r*m.extent.Cols:r*m.extent.Cols+newCols])
	}
	m.tiles = next
	m.extent.Cols = newCols
	return removed
}
