package command

import (
	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/context"
)

// AddPropertyCommand adds a new property to a context. Structural; never
// merges (spec.md §4.2 kind list: "add property").
type AddPropertyCommand struct {
	Ctx   *context.Context
	Name_ string
	Value attribute.Attribute
}

func NewAddPropertyCommand(ctx *context.Context, name string, value attribute.Attribute) *AddPropertyCommand {
	return &AddPropertyCommand{Ctx: ctx, Name_: name, Value: value}
}

func (c *AddPropertyCommand) Name() string { return "Add Property" }
func (c *AddPropertyCommand) Do()          { c.Ctx.Properties.Set(c.Name_, c.Value) }
func (c *AddPropertyCommand) Undo()        { c.Ctx.Properties.Delete(c.Name_) }

// RemovePropertyCommand deletes a property, retaining its value so undo
// restores it exactly.
type RemovePropertyCommand struct {
	Ctx   *context.Context
	Name_ string

	previous attribute.Attribute
}

func NewRemovePropertyCommand(ctx *context.Context, name string) *RemovePropertyCommand {
	return &RemovePropertyCommand{Ctx: ctx, Name_: name}
}

func (c *RemovePropertyCommand) Name() string { return "Remove Property" }

func (c *RemovePropertyCommand) Do() {
	c.previous, _ = c.Ctx.Properties.Get(c.Name_)
	c.Ctx.Properties.Delete(c.Name_)
}

func (c *RemovePropertyCommand) Undo() {
	c.Ctx.Properties.Set(c.Name_, c.previous)
}

// RenamePropertyCommand renames a property in place, preserving position
// and value.
type RenamePropertyCommand struct {
	Ctx     *context.Context
	OldName string
	NewName string
}

func NewRenamePropertyCommand(ctx *context.Context, oldName, newName string) *RenamePropertyCommand {
	return &RenamePropertyCommand{Ctx: ctx, OldName: oldName, NewName: newName}
}

func (c *RenamePropertyCommand) Name() string { return "Rename Property" }
func (c *RenamePropertyCommand) Do()          { c.Ctx.Properties.Rename(c.OldName, c.NewName) }
func (c *RenamePropertyCommand) Undo()        { c.Ctx.Properties.Rename(c.NewName, c.OldName) }

// UpdatePropertyCommand overwrites a property's value. Mergeable on the
// same (context, name) pair (spec.md §4.2 mergeable-kinds list).
type UpdatePropertyCommand struct {
	Ctx   *context.Context
	Name_ string
	Value attribute.Attribute

	previous attribute.Attribute
}

func NewUpdatePropertyCommand(ctx *context.Context, name string, value attribute.Attribute) *UpdatePropertyCommand {
	return &UpdatePropertyCommand{Ctx: ctx, Name_: name, Value: value}
}

func (c *UpdatePropertyCommand) Name() string { return "Update Property" }

func (c *UpdatePropertyCommand) Do() {
	c.previous, _ = c.Ctx.Properties.Get(c.Name_)
	c.Ctx.Properties.Set(c.Name_, c.Value)
}

func (c *UpdatePropertyCommand) Undo() {
	c.Ctx.Properties.Set(c.Name_, c.previous)
}

func (c *UpdatePropertyCommand) MergeWith(other Command) bool {
	o, ok := other.(*UpdatePropertyCommand)
	if !ok || o.Ctx != c.Ctx || o.Name_ != c.Name_ {
		return false
	}
	c.Value = o.Value
	c.Ctx.Properties.Set(c.Name_, o.Value)
	return true
}

// ChangePropertyTypeCommand replaces a property's value with the zero
// value of a different Kind, discarding the previous value (spec.md §4.2
// "change-type property"). Structural; never merges, since a type change
// is a deliberate, one-shot decision distinct from an ordinary value edit.
type ChangePropertyTypeCommand struct {
	Ctx   *context.Context
	Name_ string
	Kind  attribute.Kind

	previous attribute.Attribute
}

func NewChangePropertyTypeCommand(ctx *context.Context, name string, kind attribute.Kind) *ChangePropertyTypeCommand {
	return &ChangePropertyTypeCommand{Ctx: ctx, Name_: name, Kind: kind}
}

func (c *ChangePropertyTypeCommand) Name() string { return "Change Property Type" }

func (c *ChangePropertyTypeCommand) Do() {
	c.previous, _ = c.Ctx.Properties.Get(c.Name_)
	c.Ctx.Properties.Set(c.Name_, attribute.Zero(c.Kind))
}

func (c *ChangePropertyTypeCommand) Undo() {
	c.Ctx.Properties.Set(c.Name_, c.previous)
}
