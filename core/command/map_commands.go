package command

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// AddRowCommand grows the map's extent by Amount rows, extending every
// tile layer's matrix. Mergeable with a subsequent AddRowCommand: the
// amounts accumulate into a single history entry (spec.md §8 scenario 3
// describes the equivalent for columns).
type AddRowCommand struct {
	Map    *model.Map
	Amount int
}

func NewAddRowCommand(m *model.Map) *AddRowCommand { return &AddRowCommand{Map: m, Amount: 1} }

func (c *AddRowCommand) Name() string { return "Add Row" }

func (c *AddRowCommand) Do() {
	c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows + c.Amount, Cols: c.Map.Extent.Cols})
}

func (c *AddRowCommand) Undo() {
	c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows - c.Amount, Cols: c.Map.Extent.Cols})
}

func (c *AddRowCommand) MergeWith(other Command) bool {
	o, ok := other.(*AddRowCommand)
	if !ok {
		return false
	}
	c.Amount += o.Amount
	return true
}

// RemoveRowCommand shrinks the map's extent by Amount rows. Lossy: the
// discarded tail rows are snapshot per tile layer so undo restores them
// exactly (spec.md §4.3 "Resize map"). Mergeable with a subsequent
// RemoveRowCommand.
type RemoveRowCommand struct {
	Map    *model.Map
	Amount int

	oldExtent geom.Extent
	snapshots map[ident.UUID]map[geom.Point]ident.TileID
}

func NewRemoveRowCommand(m *model.Map) *RemoveRowCommand {
	return &RemoveRowCommand{Map: m, Amount: 1}
}

func (c *RemoveRowCommand) Name() string { return "Remove Row" }

func (c *RemoveRowCommand) Do() {
	c.oldExtent = c.Map.Extent
	c.snapshots = c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows - c.Amount, Cols: c.Map.Extent.Cols})
}

func (c *RemoveRowCommand) Undo() {
	c.Map.RestoreResize(c.oldExtent, c.snapshots)
}

func (c *RemoveRowCommand) MergeWith(other Command) bool {
	o, ok := other.(*RemoveRowCommand)
	if !ok {
		return false
	}
	// Re-derive a single snapshot spanning the full discarded region by
	// resizing from this command's pre-state straight to the merged
	// target, rather than stacking two smaller snapshots.
	c.Amount += o.Amount
	c.Map.RestoreResize(o.oldExtent, o.snapshots)
	c.Map.RestoreResize(c.oldExtent, c.snapshots)
	c.snapshots = c.Map.Resize(geom.Extent{Rows: c.oldExtent.Rows - c.Amount, Cols: c.oldExtent.Cols})
	return true
}

// AddColumnCommand is the column analogue of AddRowCommand.
type AddColumnCommand struct {
	Map    *model.Map
	Amount int
}

func NewAddColumnCommand(m *model.Map) *AddColumnCommand {
	return &AddColumnCommand{Map: m, Amount: 1}
}

func (c *AddColumnCommand) Name() string { return "Add Column" }

func (c *AddColumnCommand) Do() {
	c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows, Cols: c.Map.Extent.Cols + c.Amount})
}

func (c *AddColumnCommand) Undo() {
	c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows, Cols: c.Map.Extent.Cols - c.Amount})
}

func (c *AddColumnCommand) MergeWith(other Command) bool {
	o, ok := other.(*AddColumnCommand)
	if !ok {
		return false
	}
	c.Amount += o.Amount
	return true
}

// RemoveColumnCommand is the column analogue of RemoveRowCommand.
type RemoveColumnCommand struct {
	Map    *model.Map
	Amount int

	oldExtent geom.Extent
	snapshots map[ident.UUID]map[geom.Point]ident.TileID
}

func NewRemoveColumnCommand(m *model.Map) *RemoveColumnCommand {
	return &RemoveColumnCommand{Map: m, Amount: 1}
}

func (c *RemoveColumnCommand) Name() string { return "Remove Column" }

func (c *RemoveColumnCommand) Do() {
	c.oldExtent = c.Map.Extent
	c.snapshots = c.Map.Resize(geom.Extent{Rows: c.Map.Extent.Rows, Cols: c.Map.Extent.Cols - c.Amount})
}

func (c *RemoveColumnCommand) Undo() {
	c.Map.RestoreResize(c.oldExtent, c.snapshots)
}

func (c *RemoveColumnCommand) MergeWith(other Command) bool {
	o, ok := other.(*RemoveColumnCommand)
	if !ok {
		return false
	}
	c.Amount += o.Amount
	c.Map.RestoreResize(o.oldExtent, o.snapshots)
	c.Map.RestoreResize(c.oldExtent, c.snapshots)
	c.snapshots = c.Map.Resize(geom.Extent{Rows: c.oldExtent.Rows, Cols: c.oldExtent.Cols - c.Amount})
	return true
}

// ResizeMapCommand sets the map extent to an arbitrary new size in one
// step (spec.md §4.3 "Resize map"). Structural; never merges.
type ResizeMapCommand struct {
	Map       *model.Map
	NewExtent geom.Extent

	oldExtent geom.Extent
	snapshots map[ident.UUID]map[geom.Point]ident.TileID
}

func NewResizeMapCommand(m *model.Map, newExtent geom.Extent) *ResizeMapCommand {
	return &ResizeMapCommand{Map: m, NewExtent: newExtent}
}

func (c *ResizeMapCommand) Name() string { return "Resize Map" }

func (c *ResizeMapCommand) Do() {
	c.oldExtent = c.Map.Extent
	c.snapshots = c.Map.Resize(c.NewExtent)
}

func (c *ResizeMapCommand) Undo() {
	c.Map.RestoreResize(c.oldExtent, c.snapshots)
}

// FixInvalidTilesCommand scans every tile layer and clears tile ids
// outside any attached tileset's range (spec.md §4.3 "Fix invalid
// tiles"). Structural; never merges.
type FixInvalidTilesCommand struct {
	Map *model.Map

	records []model.InvalidTileRecord
}

func NewFixInvalidTilesCommand(m *model.Map) *FixInvalidTilesCommand {
	return &FixInvalidTilesCommand{Map: m}
}

func (c *FixInvalidTilesCommand) Name() string { return "Fix Invalid Tiles" }

func (c *FixInvalidTilesCommand) Do() {
	c.records = c.Map.FixInvalidTiles()
}

func (c *FixInvalidTilesCommand) Undo() {
	_ = c.Map.RestoreInvalidTiles(c.records)
}
