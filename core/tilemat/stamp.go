package tilemat

import (
	"math/rand"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// OldStateCache records the pre-edit value of every position touched during
// a tool sequence (stamp, eraser, bucket), on first touch only. Applying
// the cache back to a matrix is the undo half of the corresponding command
// (spec.md §4.3 "Stamp tool semantics").
type OldStateCache struct {
	values map[geom.Point]ident.TileID
	order  []geom.Point
}

// NewOldStateCache returns an empty cache.
func NewOldStateCache() *OldStateCache {
	return &OldStateCache{values: make(map[geom.Point]ident.TileID)}
}

// Touch records m's current value at p, unless p was already touched
// earlier in this sequence.
func (c *OldStateCache) Touch(m *Matrix, p geom.Point) {
	if _, seen := c.values[p]; seen {
		return
	}
	c.values[p] = m.At(p)
	c.order = append(c.order, p)
}

// Positions returns the touched positions in first-touch order.
func (c *OldStateCache) Positions() []geom.Point {
	out := make([]geom.Point, len(c.order))
	copy(out, c.order)
	return out
}

// Apply writes every recorded old value back into m (the undo operation).
func (c *OldStateCache) Apply(m *Matrix) {
	for _, p := range c.order {
		m.Set(p, c.values[p])
	}
}

// Len returns the number of distinct positions touched.
func (c *OldStateCache) Len() int { return len(c.order) }

// Stamp applies a rectangular tileset selection centered on cursor: for
// each non-empty source cell, the target is cursor + (src - center). Targets
// outside the matrix are skipped. Returns the positions actually written,
// in visit order; the caller's OldStateCache has already captured their
// prior values (spec.md §4.3 "Stamp tool semantics").
func Stamp(target *Matrix, cache *OldStateCache, selection [][]ident.TileID, cursor geom.Point) []geom.Point {
	rows := len(selection)
	if rows == 0 {
		return nil
	}
	cols := len(selection[0])
	centerRow, centerCol := rows/2, cols/2

	var written []geom.Point
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			src := selection[r][c]
			if src == ident.Empty {
				continue
			}
			targetPos := geom.Point{X: cursor.X + (c - centerCol), Y: cursor.Y + (r - centerRow)}
			if !target.InBounds(targetPos) {
				continue
			}
			cache.Touch(target, targetPos)
			target.Set(targetPos, src)
			written = append(written, targetPos)
		}
	}
	return written
}

// RandomStamp writes, at each of the given positions, a single source tile
// drawn uniformly at random from the non-empty cells of selection (spec.md
// §4.3 "A randomized stamp variant picks a single source tile per cell
// uniformly from the selection"). Positions outside the matrix are
// skipped. rng must be non-nil; callers that need determinism (tests)
// supply a seeded *rand.Rand.
func RandomStamp(target *Matrix, cache *OldStateCache, selection [][]ident.TileID, positions []geom.Point, rng *rand.Rand) []geom.Point {
	pool := nonEmptyTiles(selection)
	if len(pool) == 0 {
		return nil
	}

	var written []geom.Point
	for _, p := range positions {
		if !target.InBounds(p) {
			continue
		}
		tile := pool[rng.Intn(len(pool))]
		cache.Touch(target, p)
		target.Set(p, tile)
		written = append(written, p)
	}
	return written
}

func nonEmptyTiles(selection [][]ident.TileID) []ident.TileID {
	var out []ident.TileID
	for _, row := range selection {
		for _, t := range row {
			if t != ident.Empty {
				out = append(out, t)
			}
		}
	}
	return out
}

// Erase writes the empty tile id to every given position in the matrix,
// skipping out-of-bounds positions, with the same first-touch cache
// discipline as Stamp (spec.md §4.3 "Eraser tool semantics").
func Erase(target *Matrix, cache *OldStateCache, positions []geom.Point) []geom.Point {
	var written []geom.Point
	for _, p := range positions {
		if !target.InBounds(p) {
			continue
		}
		cache.Touch(target, p)
		target.Set(p, ident.Empty)
		written = append(written, p)
	}
	return written
}
