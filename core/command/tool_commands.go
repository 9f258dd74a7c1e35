package command

import (
	"math/rand"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
	"github.com/mapeditor/tactile-core/core/tilemat"
)

// StampCommand records one completed stamp-tool stroke: the already
// computed positions and the old-state cache captured while the stroke
// was being applied live (spec.md §4.3 "Stamp tool semantics": "the cache
// plus the final written values constitute the command"). It is pushed
// via Stack.Store, since the stroke's effect is already on the matrix by
// the time the tool releases. Structural; never merges — each stroke is
// a deliberate, independently undoable gesture.
type StampCommand struct {
	Layer *model.Layer
	Cache *tilemat.OldStateCache
	Final map[geom.Point]ident.TileID
}

func NewStampCommand(layer *model.Layer, cache *tilemat.OldStateCache, final map[geom.Point]ident.TileID) *StampCommand {
	return &StampCommand{Layer: layer, Cache: cache, Final: final}
}

func (c *StampCommand) Name() string { return "Stamp Sequence" }

func (c *StampCommand) Do() {
	mat := c.Layer.Tile.Matrix
	for p, v := range c.Final {
		mat.Set(p, v)
	}
}

func (c *StampCommand) Undo() {
	c.Cache.Apply(c.Layer.Tile.Matrix)
}

// NewStampFromSelection drives tilemat.Stamp over the given selection and
// cursor and returns a ready-to-store StampCommand capturing the result
// (the stamp is already applied here; the caller records it with
// Stack.Store once the stroke ends).
func NewStampFromSelection(layer *model.Layer, selection [][]ident.TileID, cursor geom.Point) *StampCommand {
	mat := layer.Tile.Matrix
	cache := tilemat.NewOldStateCache()
	written := tilemat.Stamp(mat, cache, selection, cursor)
	final := make(map[geom.Point]ident.TileID, len(written))
	for _, p := range written {
		final[p] = mat.At(p)
	}
	return NewStampCommand(layer, cache, final)
}

// NewRandomStampFromSelection is the randomized-stamp analogue of
// NewStampFromSelection (spec.md §4.3 "A randomized stamp variant").
func NewRandomStampFromSelection(layer *model.Layer, selection [][]ident.TileID, positions []geom.Point, rng *rand.Rand) *StampCommand {
	mat := layer.Tile.Matrix
	cache := tilemat.NewOldStateCache()
	written := tilemat.RandomStamp(mat, cache, selection, positions, rng)
	final := make(map[geom.Point]ident.TileID, len(written))
	for _, p := range written {
		final[p] = mat.At(p)
	}
	return NewStampCommand(layer, cache, final)
}

// EraserCommand records one completed eraser-tool stroke, writing the
// empty tile to every touched position (spec.md §4.3 "Eraser tool
// semantics"). Stored rather than pushed, for the same reason as
// StampCommand.
type EraserCommand struct {
	Layer *model.Layer
	Cache *tilemat.OldStateCache
}

func NewEraserCommand(layer *model.Layer, cache *tilemat.OldStateCache) *EraserCommand {
	return &EraserCommand{Layer: layer, Cache: cache}
}

func (c *EraserCommand) Name() string { return "Eraser Sequence" }

func (c *EraserCommand) Do() {
	mat := c.Layer.Tile.Matrix
	for _, p := range c.Cache.Positions() {
		mat.Set(p, ident.Empty)
	}
}

func (c *EraserCommand) Undo() {
	c.Cache.Apply(c.Layer.Tile.Matrix)
}

// NewEraserFromPositions drives tilemat.Erase over the given positions
// and returns a ready-to-store EraserCommand.
func NewEraserFromPositions(layer *model.Layer, positions []geom.Point) *EraserCommand {
	mat := layer.Tile.Matrix
	cache := tilemat.NewOldStateCache()
	tilemat.Erase(mat, cache, positions)
	return NewEraserCommand(layer, cache)
}

// BucketFillCommand floods a contiguous region starting at Origin with
// Replacement (spec.md §4.3 "Bucket fill command"). Pushed (not stored):
// unlike the stroke-based tools, a single bucket fill is computed and
// applied atomically by Do. Structural; never merges.
type BucketFillCommand struct {
	Layer       *model.Layer
	Origin      geom.Point
	Replacement ident.TileID

	target    ident.TileID
	positions []geom.Point
}

func NewBucketFillCommand(layer *model.Layer, origin geom.Point, replacement ident.TileID) *BucketFillCommand {
	return &BucketFillCommand{Layer: layer, Origin: origin, Replacement: replacement}
}

func (c *BucketFillCommand) Name() string { return "Bucket Fill" }

func (c *BucketFillCommand) Do() {
	mat := c.Layer.Tile.Matrix
	c.target = mat.At(c.Origin)
	c.positions = mat.Flood(c.Origin, c.Replacement, nil)
}

func (c *BucketFillCommand) Undo() {
	mat := c.Layer.Tile.Matrix
	for _, p := range c.positions {
		mat.Set(p, c.target)
	}
}
