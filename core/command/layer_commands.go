package command

import (
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// AddLayerCommand adds a single empty layer of the given kind under a
// parent (spec.md §4.2 "add layer"). Structural; never merges. Do mints
// the layer's identity only on its first call; a redo after Undo
// re-inserts the same layer at the position Undo captured instead of
// minting another id, mirroring original_source's
// create_component_def_cmd.cpp "mint once, reuse thereafter" pattern.
type AddLayerCommand struct {
	Map    *model.Map
	Parent *model.Layer
	Kind   model.LayerKind

	layer  *model.Layer
	parent *model.Layer
	index  int
}

func NewAddLayerCommand(m *model.Map, parent *model.Layer, kind model.LayerKind) *AddLayerCommand {
	return &AddLayerCommand{Map: m, Parent: parent, Kind: kind}
}

func (c *AddLayerCommand) Name() string { return "Add Layer" }

func (c *AddLayerCommand) Do() {
	if c.layer == nil {
		switch c.Kind {
		case model.LayerKindTile:
			c.layer = c.Map.AddTileLayer(c.Parent)
		case model.LayerKindObject:
			c.layer = c.Map.AddObjectLayer(c.Parent)
		case model.LayerKindGroup:
			c.layer = c.Map.AddGroupLayer(c.Parent)
		}
		return
	}
	c.Map.Tree.Insert(c.parent, c.index, c.layer)
}

func (c *AddLayerCommand) Undo() {
	c.layer, c.parent, c.index = c.Map.Tree.Remove(c.layer.UUID)
}

// RemoveLayerCommand detaches a layer (and its subtree, if a group) from
// the tree (spec.md §4.2 "remove layer"). Structural; never merges.
type RemoveLayerCommand struct {
	Map    *model.Map
	Target ident.UUID

	removed *model.Layer
	parent  *model.Layer
	index   int
}

func NewRemoveLayerCommand(m *model.Map, target ident.UUID) *RemoveLayerCommand {
	return &RemoveLayerCommand{Map: m, Target: target}
}

func (c *RemoveLayerCommand) Name() string { return "Remove Layer" }

func (c *RemoveLayerCommand) Do() {
	c.removed, c.parent, c.index = c.Map.Tree.Remove(c.Target)
	if c.Map.ActiveLayer != nil && isInSubtree(c.removed, *c.Map.ActiveLayer) {
		c.Map.ActiveLayer = nil
	}
}

func (c *RemoveLayerCommand) Undo() {
	c.Map.Tree.Insert(c.parent, c.index, c.removed)
}

func isInSubtree(root *model.Layer, id ident.UUID) bool {
	if root == nil {
		return false
	}
	if root.UUID == id {
		return true
	}
	if root.Kind == model.LayerKindGroup {
		for _, child := range root.Group.Children {
			if isInSubtree(child, id) {
				return true
			}
		}
	}
	return false
}

// RenameLayerCommand changes a layer's context name. Not merge-eligible
// per spec.md §4.2's mergeable-kinds list (rename is not listed).
type RenameLayerCommand struct {
	Map    *model.Map
	Target ident.UUID
	Name_  string

	previous string
}

func NewRenameLayerCommand(m *model.Map, target ident.UUID, name string) *RenameLayerCommand {
	return &RenameLayerCommand{Map: m, Target: target, Name_: name}
}

func (c *RenameLayerCommand) Name() string { return "Rename Layer" }

func (c *RenameLayerCommand) Do() {
	layer := c.Map.Tree.Find(c.Target)
	c.previous = layer.Ctx.Name
	layer.Ctx.Name = c.Name_
}

func (c *RenameLayerCommand) Undo() {
	c.Map.Tree.Find(c.Target).Ctx.Name = c.previous
}

// DuplicateLayerCommand deep-copies a layer subtree with fresh identity
// and inserts it after the source (spec.md §4.4 "Duplicate layer").
// Structural; never merges. The duplicate's identity is minted once, on
// the first Do; a redo re-inserts that same duplicate rather than cloning
// the source again.
type DuplicateLayerCommand struct {
	Map    *model.Map
	Source ident.UUID

	duplicate *model.Layer
	parent    *model.Layer
	index     int
}

func NewDuplicateLayerCommand(m *model.Map, source ident.UUID) *DuplicateLayerCommand {
	return &DuplicateLayerCommand{Map: m, Source: source}
}

func (c *DuplicateLayerCommand) Name() string { return "Duplicate Layer" }

func (c *DuplicateLayerCommand) Do() {
	if c.duplicate == nil {
		c.duplicate = c.Map.Tree.Duplicate(c.Source, c.Map.NextLayerID)
		return
	}
	c.Map.Tree.Insert(c.parent, c.index, c.duplicate)
}

func (c *DuplicateLayerCommand) Undo() {
	c.duplicate, c.parent, c.index = c.Map.Tree.Remove(c.duplicate.UUID)
}

// MoveLayerUpCommand and MoveLayerDownCommand swap a layer with its
// immediate sibling (spec.md §4.4 "Move-up/down"). Not mergeable: each
// step is independently meaningful in the undo history.
type MoveLayerUpCommand struct {
	Map    *model.Map
	Target ident.UUID
}

func NewMoveLayerUpCommand(m *model.Map, target ident.UUID) *MoveLayerUpCommand {
	return &MoveLayerUpCommand{Map: m, Target: target}
}

func (c *MoveLayerUpCommand) Name() string { return "Move Layer Up" }
func (c *MoveLayerUpCommand) Do()          { c.Map.Tree.MoveUp(c.Target) }
func (c *MoveLayerUpCommand) Undo()        { c.Map.Tree.MoveDown(c.Target) }

type MoveLayerDownCommand struct {
	Map    *model.Map
	Target ident.UUID
}

func NewMoveLayerDownCommand(m *model.Map, target ident.UUID) *MoveLayerDownCommand {
	return &MoveLayerDownCommand{Map: m, Target: target}
}

func (c *MoveLayerDownCommand) Name() string { return "Move Layer Down" }
func (c *MoveLayerDownCommand) Do()          { c.Map.Tree.MoveDown(c.Target) }
func (c *MoveLayerDownCommand) Undo()        { c.Map.Tree.MoveUp(c.Target) }

// SetLayerOpacityCommand sets a layer's opacity. Mergeable: two opacity
// changes on the same layer collapse into one history entry that jumps
// straight from the original value to the final one (spec.md §8 scenario
// 5).
type SetLayerOpacityCommand struct {
	Map     *model.Map
	Target  ident.UUID
	Opacity float32

	previous float32
}

func NewSetLayerOpacityCommand(m *model.Map, target ident.UUID, opacity float32) *SetLayerOpacityCommand {
	return &SetLayerOpacityCommand{Map: m, Target: target, Opacity: opacity}
}

func (c *SetLayerOpacityCommand) Name() string { return "Set Layer Opacity" }

func (c *SetLayerOpacityCommand) Do() {
	layer := c.Map.Tree.Find(c.Target)
	c.previous = layer.Opacity
	layer.Opacity = c.Opacity
}

func (c *SetLayerOpacityCommand) Undo() {
	c.Map.Tree.Find(c.Target).Opacity = c.previous
}

func (c *SetLayerOpacityCommand) MergeWith(other Command) bool {
	o, ok := other.(*SetLayerOpacityCommand)
	if !ok || o.Target != c.Target {
		return false
	}
	c.Opacity = o.Opacity
	c.Map.Tree.Find(c.Target).Opacity = o.Opacity
	return true
}

// SetLayerVisibilityCommand toggles a layer's visibility. Mergeable on
// the same target (spec.md §4.2 mergeable-kinds list).
type SetLayerVisibilityCommand struct {
	Map     *model.Map
	Target  ident.UUID
	Visible bool

	previous bool
}

func NewSetLayerVisibilityCommand(m *model.Map, target ident.UUID, visible bool) *SetLayerVisibilityCommand {
	return &SetLayerVisibilityCommand{Map: m, Target: target, Visible: visible}
}

func (c *SetLayerVisibilityCommand) Name() string { return "Set Layer Visibility" }

func (c *SetLayerVisibilityCommand) Do() {
	layer := c.Map.Tree.Find(c.Target)
	c.previous = layer.Visible
	layer.Visible = c.Visible
}

func (c *SetLayerVisibilityCommand) Undo() {
	c.Map.Tree.Find(c.Target).Visible = c.previous
}

func (c *SetLayerVisibilityCommand) MergeWith(other Command) bool {
	o, ok := other.(*SetLayerVisibilityCommand)
	if !ok || o.Target != c.Target {
		return false
	}
	c.Visible = o.Visible
	c.Map.Tree.Find(c.Target).Visible = o.Visible
	return true
}
