package command

import (
	"time"

	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// AddTilesetCommand attaches a tileset to the map, allocating the next
// contiguous global tile-id range (spec.md §4.5 "Attach"). Structural;
// never merges.
type AddTilesetCommand struct {
	Map      *model.Map
	Tileset  *model.Tileset
	Embedded bool
}

func NewAddTilesetCommand(m *model.Map, ts *model.Tileset, embedded bool) *AddTilesetCommand {
	return &AddTilesetCommand{Map: m, Tileset: ts, Embedded: embedded}
}

func (c *AddTilesetCommand) Name() string { return "Add Tileset" }

func (c *AddTilesetCommand) Do() {
	c.Map.AttachTileset(c.Tileset, c.Embedded)
}

func (c *AddTilesetCommand) Undo() {
	c.Map.DetachTileset(c.Tileset.UUID)
}

// RemoveTilesetCommand detaches a tileset. If the active tileset is
// removed, the active tileset resets to the first remaining one or none
// (spec.md §4.5 "Detach"). Structural; never merges.
type RemoveTilesetCommand struct {
	Map    *model.Map
	Target ident.UUID

	tileset     *model.Tileset
	attachment  *model.AttachedTileset
	order       int
	wasActive   bool
	prevActive  *ident.UUID
}

func NewRemoveTilesetCommand(m *model.Map, target ident.UUID) *RemoveTilesetCommand {
	return &RemoveTilesetCommand{Map: m, Target: target}
}

func (c *RemoveTilesetCommand) Name() string { return "Remove Tileset" }

func (c *RemoveTilesetCommand) Do() {
	c.tileset, c.attachment, c.order = c.Map.DetachTileset(c.Target)
	if c.Map.ActiveTileset != nil && *c.Map.ActiveTileset == c.Target {
		c.wasActive = true
		c.prevActive = c.Map.ActiveTileset
		remaining := c.Map.Tilesets()
		if len(remaining) > 0 {
			first := remaining[0].UUID
			c.Map.ActiveTileset = &first
		} else {
			c.Map.ActiveTileset = nil
		}
	}
}

func (c *RemoveTilesetCommand) Undo() {
	c.Map.RestoreTileset(c.tileset, c.attachment, c.order)
	if c.wasActive {
		c.Map.ActiveTileset = c.prevActive
	}
}

// RenameTilesetCommand renames a tileset's context. Not merge-eligible.
type RenameTilesetCommand struct {
	Map    *model.Map
	Target ident.UUID
	Name_  string

	previous string
}

func NewRenameTilesetCommand(m *model.Map, target ident.UUID, name string) *RenameTilesetCommand {
	return &RenameTilesetCommand{Map: m, Target: target, Name_: name}
}

func (c *RenameTilesetCommand) Name() string { return "Rename Tileset" }

func (c *RenameTilesetCommand) Do() {
	ts := c.tileset()
	c.previous = ts.Ctx.Name
	ts.Ctx.Name = c.Name_
}

func (c *RenameTilesetCommand) Undo() {
	c.tileset().Ctx.Name = c.previous
}

func (c *RenameTilesetCommand) tileset() *model.Tileset {
	for _, ts := range c.Map.Tilesets() {
		if ts.UUID == c.Target {
			return ts
		}
	}
	return nil
}

// AddFrameCommand and RemoveFrameCommand edit a fancy tile's animation
// (spec.md §4.5 "Animation edits"). Structural; never merge, since frame
// indices shift with every edit.
type AddFrameCommand struct {
	Tileset *model.Tileset
	Index   ident.TileIndex
	At      int
	Frame   model.Frame
	Now     time.Time

	hadAnimation bool
}

func NewAddFrameCommand(ts *model.Tileset, index ident.TileIndex, at int, frame model.Frame, now time.Time) *AddFrameCommand {
	return &AddFrameCommand{Tileset: ts, Index: index, At: at, Frame: frame, Now: now}
}

func (c *AddFrameCommand) Name() string { return "Add Animation Frame" }

func (c *AddFrameCommand) Do() {
	tile := c.Tileset.Tile(c.Index)
	c.hadAnimation = tile.Animation != nil
	_ = tile.AddFrame(c.At, c.Frame, c.Now)
}

func (c *AddFrameCommand) Undo() {
	tile, _ := c.Tileset.TryTile(c.Index)
	_ = tile.RemoveFrame(c.At, c.Now)
	if !c.hadAnimation {
		c.Tileset.DropTile(c.Index)
	}
}

// RemoveFrameCommand removes a single animation frame, deleting the
// animation altogether if that empties it.
type RemoveFrameCommand struct {
	Tileset *model.Tileset
	Index   ident.TileIndex
	At      int
	Now     time.Time

	removed model.Frame
}

func NewRemoveFrameCommand(ts *model.Tileset, index ident.TileIndex, at int, now time.Time) *RemoveFrameCommand {
	return &RemoveFrameCommand{Tileset: ts, Index: index, At: at, Now: now}
}

func (c *RemoveFrameCommand) Name() string { return "Remove Animation Frame" }

func (c *RemoveFrameCommand) Do() {
	tile, _ := c.Tileset.TryTile(c.Index)
	c.removed = tile.Animation.Frames[c.At]
	_ = tile.RemoveFrame(c.At, c.Now)
}

func (c *RemoveFrameCommand) Undo() {
	tile := c.Tileset.Tile(c.Index)
	_ = tile.AddFrame(c.At, c.removed, c.Now)
}
