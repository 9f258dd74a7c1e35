package command

import (
	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/ident"
)

// CreateComponentDefCommand registers a new component definition in the
// document's index. Structural; never merges.
type CreateComponentDefCommand struct {
	Index *component.Index
	Name_ string

	def *component.Definition
}

func NewCreateComponentDefCommand(index *component.Index, name string) *CreateComponentDefCommand {
	return &CreateComponentDefCommand{Index: index, Name_: name}
}

func (c *CreateComponentDefCommand) Name() string { return "Create Component" }

func (c *CreateComponentDefCommand) Do() {
	if c.def == nil {
		c.def = component.NewDefinition(c.Name_)
	}
	c.Index.Add(c.def)
}

func (c *CreateComponentDefCommand) Undo() {
	c.Index.Remove(c.def.UUID)
}

// RenameComponentDefCommand renames a component definition.
type RenameComponentDefCommand struct {
	Index  *component.Index
	Target ident.UUID
	Name_  string

	previous string
}

func NewRenameComponentDefCommand(index *component.Index, target ident.UUID, name string) *RenameComponentDefCommand {
	return &RenameComponentDefCommand{Index: index, Target: target, Name_: name}
}

func (c *RenameComponentDefCommand) Name() string { return "Rename Component" }

func (c *RenameComponentDefCommand) Do() {
	def, _ := c.Index.Get(c.Target)
	c.previous = def.Name
	def.Name = c.Name_
}

func (c *RenameComponentDefCommand) Undo() {
	def, _ := c.Index.Get(c.Target)
	def.Name = c.previous
}

// RemoveComponentDefCommand unregisters a component definition. Attached
// instances elsewhere in the document are not touched here; the
// dispatcher is responsible for detaching them first, per spec.md §7
// ("commands never fail at the core contract; preconditions are the
// caller's responsibility").
type RemoveComponentDefCommand struct {
	Index  *component.Index
	Target ident.UUID

	def *component.Definition
}

func NewRemoveComponentDefCommand(index *component.Index, target ident.UUID) *RemoveComponentDefCommand {
	return &RemoveComponentDefCommand{Index: index, Target: target}
}

func (c *RemoveComponentDefCommand) Name() string { return "Remove Component" }

func (c *RemoveComponentDefCommand) Do() {
	c.def, _ = c.Index.Get(c.Target)
	c.Index.Remove(c.Target)
}

func (c *RemoveComponentDefCommand) Undo() {
	c.Index.Add(c.def)
}

// DuplicateComponentDefCommand deep-copies a definition with a fresh
// UUID, registering the copy.
type DuplicateComponentDefCommand struct {
	Index  *component.Index
	Source ident.UUID

	duplicate *component.Definition
}

func NewDuplicateComponentDefCommand(index *component.Index, source ident.UUID) *DuplicateComponentDefCommand {
	return &DuplicateComponentDefCommand{Index: index, Source: source}
}

func (c *DuplicateComponentDefCommand) Name() string { return "Duplicate Component" }

func (c *DuplicateComponentDefCommand) Do() {
	if c.duplicate == nil {
		src, _ := c.Index.Get(c.Source)
		c.duplicate = src.Clone()
		c.duplicate.UUID = ident.New()
	}
	c.Index.Add(c.duplicate)
}

func (c *DuplicateComponentDefCommand) Undo() {
	c.Index.Remove(c.duplicate.UUID)
}

// CreateComponentAttrCommand adds a new attribute to a definition, at the
// Kind's zero value. Every already-attached instance of this definition
// picks up the new attribute automatically: component.Attached.Values()
// reads unoverridden names live off the definition, so no separate
// propagation step is needed here.
type CreateComponentAttrCommand struct {
	Def   *component.Definition
	Name_ string
	Kind  attribute.Kind
}

func NewCreateComponentAttrCommand(def *component.Definition, name string, kind attribute.Kind) *CreateComponentAttrCommand {
	return &CreateComponentAttrCommand{Def: def, Name_: name, Kind: kind}
}

func (c *CreateComponentAttrCommand) Name() string { return "Create Component Attribute" }
func (c *CreateComponentAttrCommand) Do()          { c.Def.AddAttribute(c.Name_, attribute.Zero(c.Kind)) }
func (c *CreateComponentAttrCommand) Undo()        { c.Def.RemoveAttribute(c.Name_) }

// RemoveComponentAttrCommand removes an attribute from a definition,
// retaining its value for undo. Every attached instance stops reporting
// the attribute the moment it drops out of the definition, whether or not
// that instance had overridden it.
type RemoveComponentAttrCommand struct {
	Def   *component.Definition
	Name_ string

	previous attribute.Attribute
}

func NewRemoveComponentAttrCommand(def *component.Definition, name string) *RemoveComponentAttrCommand {
	return &RemoveComponentAttrCommand{Def: def, Name_: name}
}

func (c *RemoveComponentAttrCommand) Name() string { return "Remove Component Attribute" }

func (c *RemoveComponentAttrCommand) Do() {
	c.previous, _ = c.Def.Attributes().Get(c.Name_)
	c.Def.RemoveAttribute(c.Name_)
}

func (c *RemoveComponentAttrCommand) Undo() {
	c.Def.AddAttribute(c.Name_, c.previous)
}

// RenameComponentAttrCommand renames an attribute within a definition.
type RenameComponentAttrCommand struct {
	Def     *component.Definition
	OldName string
	NewName string
}

func NewRenameComponentAttrCommand(def *component.Definition, oldName, newName string) *RenameComponentAttrCommand {
	return &RenameComponentAttrCommand{Def: def, OldName: oldName, NewName: newName}
}

func (c *RenameComponentAttrCommand) Name() string { return "Rename Component Attribute" }
func (c *RenameComponentAttrCommand) Do()          { c.Def.RenameAttribute(c.OldName, c.NewName) }
func (c *RenameComponentAttrCommand) Undo()        { c.Def.RenameAttribute(c.NewName, c.OldName) }

// RetypeComponentAttrCommand changes an attribute's Kind within a
// definition, resetting it to the new Kind's zero value. Any attached
// instance holding an override of the old Kind stops matching and falls
// back to the new default the next time its Values() is read.
type RetypeComponentAttrCommand struct {
	Def   *component.Definition
	Name_ string
	Kind  attribute.Kind

	previous attribute.Attribute
}

func NewRetypeComponentAttrCommand(def *component.Definition, name string, kind attribute.Kind) *RetypeComponentAttrCommand {
	return &RetypeComponentAttrCommand{Def: def, Name_: name, Kind: kind}
}

func (c *RetypeComponentAttrCommand) Name() string { return "Retype Component Attribute" }

func (c *RetypeComponentAttrCommand) Do() {
	c.previous, _ = c.Def.Attributes().Get(c.Name_)
	c.Def.Attributes().Set(c.Name_, attribute.Zero(c.Kind))
}

func (c *RetypeComponentAttrCommand) Undo() {
	c.Def.Attributes().Set(c.Name_, c.previous)
}

// AttachComponentCommand instantiates def onto a context. Structural;
// never merges.
type AttachComponentCommand struct {
	Ctx *context.Context
	Def *component.Definition
}

func NewAttachComponentCommand(ctx *context.Context, def *component.Definition) *AttachComponentCommand {
	return &AttachComponentCommand{Ctx: ctx, Def: def}
}

func (c *AttachComponentCommand) Name() string { return "Attach Component" }
func (c *AttachComponentCommand) Do()          { c.Ctx.Attach(c.Def) }
func (c *AttachComponentCommand) Undo()        { c.Ctx.Detach(c.Def.UUID) }

// DetachComponentCommand removes an attached component instance from a
// context, retaining it for undo.
type DetachComponentCommand struct {
	Ctx       *context.Context
	DefUUID   ident.UUID

	removed *component.Attached
}

func NewDetachComponentCommand(ctx *context.Context, defUUID ident.UUID) *DetachComponentCommand {
	return &DetachComponentCommand{Ctx: ctx, DefUUID: defUUID}
}

func (c *DetachComponentCommand) Name() string { return "Detach Component" }

func (c *DetachComponentCommand) Do() {
	c.removed, _ = c.Ctx.Detach(c.DefUUID)
}

func (c *DetachComponentCommand) Undo() {
	c.Ctx.Components[c.DefUUID] = c.removed
}

// UpdateAttachedComponentCommand overwrites one value on an attached
// component instance. Mergeable on the same (context, definition,
// attribute name) (spec.md §4.2 mergeable-kinds list).
type UpdateAttachedComponentCommand struct {
	Ctx     *context.Context
	DefUUID ident.UUID
	Attr    string
	Value   attribute.Attribute

	previous attribute.Attribute
}

func NewUpdateAttachedComponentCommand(ctx *context.Context, defUUID ident.UUID, attr string, value attribute.Attribute) *UpdateAttachedComponentCommand {
	return &UpdateAttachedComponentCommand{Ctx: ctx, DefUUID: defUUID, Attr: attr, Value: value}
}

func (c *UpdateAttachedComponentCommand) Name() string { return "Update Component Value" }

func (c *UpdateAttachedComponentCommand) Do() {
	inst := c.Ctx.Components[c.DefUUID]
	c.previous, _ = inst.Values().Get(c.Attr)
	inst.Set(c.Attr, c.Value)
}

func (c *UpdateAttachedComponentCommand) Undo() {
	c.Ctx.Components[c.DefUUID].Set(c.Attr, c.previous)
}

func (c *UpdateAttachedComponentCommand) MergeWith(other Command) bool {
	o, ok := other.(*UpdateAttachedComponentCommand)
	if !ok || o.Ctx != c.Ctx || o.DefUUID != c.DefUUID || o.Attr != c.Attr {
		return false
	}
	c.Value = o.Value
	c.Ctx.Components[c.DefUUID].Set(c.Attr, o.Value)
	return true
}

// ResetAttachedComponentCommand resets every value on an attached
// instance back to its definition's current defaults.
type ResetAttachedComponentCommand struct {
	Ctx     *context.Context
	DefUUID ident.UUID
	Def     *component.Definition

	previous *attribute.OrderedProperties
}

func NewResetAttachedComponentCommand(ctx *context.Context, defUUID ident.UUID, def *component.Definition) *ResetAttachedComponentCommand {
	return &ResetAttachedComponentCommand{Ctx: ctx, DefUUID: defUUID, Def: def}
}

func (c *ResetAttachedComponentCommand) Name() string { return "Reset Component Values" }

func (c *ResetAttachedComponentCommand) Do() {
	inst := c.Ctx.Components[c.DefUUID]
	c.previous = inst.Values().Clone()
	inst.Reset(c.Def)
}

func (c *ResetAttachedComponentCommand) Undo() {
	inst := c.Ctx.Components[c.DefUUID]
	c.previous.Range(func(name string, value attribute.Attribute) bool {
		inst.Set(name, value)
		return true
	})
}
