// Package geom defines the small set of geometric value types shared by the
// document model and the tile-layer engine, grounded on the teacher's
// basic.go (Point/Size/Vec2 shapes).
package geom

import "fmt"

// Point describes a location in 2D space, in tile or pixel units depending
// on context.
type Point struct {
	X int
	Y int
}

// String implements the Stringer interface.
func (p Point) String() string {
	return fmt.Sprintf("<%d, %d>", p.X, p.Y)
}

// Size describes dimensions in 2D space.
type Size struct {
	Width  int
	Height int
}

// String implements the Stringer interface.
func (s Size) String() string {
	return fmt.Sprintf("<%d, %d>", s.Width, s.Height)
}

// Extent is the row/column dimensions of a tile layer or map (spec.md §3
// "extent: (rows, cols)").
type Extent struct {
	Rows int
	Cols int
}

// Contains reports whether p falls within the extent when interpreted as
// (col=X, row=Y).
func (e Extent) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < e.Cols && p.Y < e.Rows
}

// Vec2 is a two-component float32 vector, used for sub-pixel positions and
// sizes.
type Vec2 struct {
	X float32
	Y float32
}
