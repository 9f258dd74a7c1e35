package command

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// AddObjectCommand appends a new object (rect, ellipse, or point) to an
// object layer (spec.md §4.2 "add rectangle/ellipse/point"). Structural;
// never merges. The object's id is minted once, on the first Do; a redo
// re-inserts that same object at the index Undo captured rather than
// minting another one.
type AddObjectCommand struct {
	Layer    *model.Layer
	Kind     model.ObjectKind
	Position geom.Vec2
	Size     geom.Vec2
	NextID   func() ident.ObjectID

	object *model.Object
	index  int
}

func NewAddObjectCommand(layer *model.Layer, kind model.ObjectKind, position, size geom.Vec2, nextID func() ident.ObjectID) *AddObjectCommand {
	return &AddObjectCommand{Layer: layer, Kind: kind, Position: position, Size: size, NextID: nextID}
}

func (c *AddObjectCommand) Name() string { return "Add Object" }

func (c *AddObjectCommand) Do() {
	if c.object == nil {
		c.object = model.NewObject(c.NextID(), c.Kind, c.Position, c.Size)
		c.index = len(c.Layer.Object.Objects)
		c.Layer.Object.Objects = append(c.Layer.Object.Objects, c.object)
		return
	}
	objs := c.Layer.Object.Objects
	if c.index > len(objs) {
		c.index = len(objs)
	}
	objs = append(objs, nil)
	copy(objs[c.index+1:], objs[c.index:])
	objs[c.index] = c.object
	c.Layer.Object.Objects = objs
}

func (c *AddObjectCommand) Undo() {
	objs := c.Layer.Object.Objects
	for i, o := range objs {
		if o.UUID == c.object.UUID {
			c.index = i
			c.Layer.Object.Objects = append(objs[:i], objs[i+1:]...)
			return
		}
	}
}

// RemoveObjectCommand removes an object from its layer, retaining it (and
// its index) for undo.
type RemoveObjectCommand struct {
	Layer  *model.Layer
	Target ident.UUID

	removed *model.Object
	index   int
}

func NewRemoveObjectCommand(layer *model.Layer, target ident.UUID) *RemoveObjectCommand {
	return &RemoveObjectCommand{Layer: layer, Target: target}
}

func (c *RemoveObjectCommand) Name() string { return "Remove Object" }

func (c *RemoveObjectCommand) Do() {
	objs := c.Layer.Object.Objects
	for i, o := range objs {
		if o.UUID == c.Target {
			c.removed, c.index = o, i
			c.Layer.Object.Objects = append(objs[:i], objs[i+1:]...)
			return
		}
	}
}

func (c *RemoveObjectCommand) Undo() {
	objs := c.Layer.Object.Objects
	if c.index > len(objs) {
		c.index = len(objs)
	}
	objs = append(objs, nil)
	copy(objs[c.index+1:], objs[c.index:])
	objs[c.index] = c.removed
	c.Layer.Object.Objects = objs
}

// MoveObjectCommand repositions an object. Mergeable on the same object
// (spec.md §4.2 mergeable-kinds list: "move-object (same object)").
type MoveObjectCommand struct {
	Object   *model.Object
	Position geom.Vec2

	previous geom.Vec2
}

func NewMoveObjectCommand(obj *model.Object, position geom.Vec2) *MoveObjectCommand {
	return &MoveObjectCommand{Object: obj, Position: position}
}

func (c *MoveObjectCommand) Name() string { return "Move Object" }

func (c *MoveObjectCommand) Do() {
	c.previous = c.Object.Position
	c.Object.Position = c.Position
}

func (c *MoveObjectCommand) Undo() {
	c.Object.Position = c.previous
}

func (c *MoveObjectCommand) MergeWith(other Command) bool {
	o, ok := other.(*MoveObjectCommand)
	if !ok || o.Object != c.Object {
		return false
	}
	c.Position = o.Position
	c.Object.Position = o.Position
	return true
}

// SetObjectNameCommand renames an object's context. Mergeable on the same
// object.
type SetObjectNameCommand struct {
	Object *model.Object
	Name_  string

	previous string
}

func NewSetObjectNameCommand(obj *model.Object, name string) *SetObjectNameCommand {
	return &SetObjectNameCommand{Object: obj, Name_: name}
}

func (c *SetObjectNameCommand) Name() string { return "Rename Object" }

func (c *SetObjectNameCommand) Do() {
	c.previous = c.Object.Ctx.Name
	c.Object.Ctx.Name = c.Name_
}

func (c *SetObjectNameCommand) Undo() {
	c.Object.Ctx.Name = c.previous
}

func (c *SetObjectNameCommand) MergeWith(other Command) bool {
	o, ok := other.(*SetObjectNameCommand)
	if !ok || o.Object != c.Object {
		return false
	}
	c.Name_ = o.Name_
	c.Object.Ctx.Name = o.Name_
	return true
}

// SetObjectTagCommand changes an object's free-text tag. Mergeable on the
// same object.
type SetObjectTagCommand struct {
	Object *model.Object
	Tag    string

	previous string
}

func NewSetObjectTagCommand(obj *model.Object, tag string) *SetObjectTagCommand {
	return &SetObjectTagCommand{Object: obj, Tag: tag}
}

func (c *SetObjectTagCommand) Name() string { return "Set Object Tag" }

func (c *SetObjectTagCommand) Do() {
	c.previous = c.Object.Tag
	c.Object.Tag = c.Tag
}

func (c *SetObjectTagCommand) Undo() {
	c.Object.Tag = c.previous
}

func (c *SetObjectTagCommand) MergeWith(other Command) bool {
	o, ok := other.(*SetObjectTagCommand)
	if !ok || o.Object != c.Object {
		return false
	}
	c.Tag = o.Tag
	c.Object.Tag = o.Tag
	return true
}

// ShowHideObjectCommand toggles an object's visibility. Not in the
// mergeable-kinds list (spec.md §4.2): each toggle is an independently
// meaningful step.
type ShowHideObjectCommand struct {
	Object  *model.Object
	Visible bool

	previous bool
}

func NewShowHideObjectCommand(obj *model.Object, visible bool) *ShowHideObjectCommand {
	return &ShowHideObjectCommand{Object: obj, Visible: visible}
}

func (c *ShowHideObjectCommand) Name() string { return "Show/Hide Object" }

func (c *ShowHideObjectCommand) Do() {
	c.previous = c.Object.Visible
	c.Object.Visible = c.Visible
}

func (c *ShowHideObjectCommand) Undo() {
	c.Object.Visible = c.previous
}
