// Package context implements the Context bundle carried by every nameable,
// property-bearing entity in the document model: a map, layer, object,
// tileset, or tile (spec.md §3 "Context").
package context

import (
	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/ident"
)

// Context is the name + properties + attached-components bundle shared by
// every nameable entity in the model.
type Context struct {
	Name       string
	Properties *attribute.OrderedProperties
	Components map[ident.UUID]*component.Attached
}

// New returns an empty, ready-to-use Context with the given name.
func New(name string) *Context {
	return &Context{
		Name:       name,
		Properties: attribute.NewOrderedProperties(),
		Components: make(map[ident.UUID]*component.Attached),
	}
}

// Attach adds an attached component instantiated from def. It is a
// LogicError to attach the same definition twice (at most one attached
// instance per definition per context, spec.md §3).
func (c *Context) Attach(def *component.Definition) *component.Attached {
	if _, exists := c.Components[def.UUID]; exists {
		panic("context: component already attached: " + def.Name)
	}
	inst := component.NewAttached(def)
	c.Components[def.UUID] = inst
	return inst
}

// Detach removes an attached component instance, returning it (so a
// command can snapshot it for undo) and whether it was present.
func (c *Context) Detach(defUUID ident.UUID) (*component.Attached, bool) {
	inst, ok := c.Components[defUUID]
	if ok {
		delete(c.Components, defUUID)
	}
	return inst, ok
}

// Clone returns a deep copy suitable for an undo snapshot.
func (c *Context) Clone() *Context {
	dup := &Context{
		Name:       c.Name,
		Properties: c.Properties.Clone(),
		Components: make(map[ident.UUID]*component.Attached, len(c.Components)),
	}
	for k, v := range c.Components {
		dup.Components[k] = v.Clone()
	}
	return dup
}

// Equal reports structural equality: same name, same properties, same
// attached component values (used by the round-trip equivalence of
// spec.md §8). It does not compare component definitions themselves, since
// those live in the document-level Index.
func (c *Context) Equal(other *Context) bool {
	if c.Name != other.Name {
		return false
	}
	if !c.Properties.Equal(other.Properties) {
		return false
	}
	if len(c.Components) != len(other.Components) {
		return false
	}
	for k, v := range c.Components {
		ov, ok := other.Components[k]
		if !ok || !v.Values().Equal(ov.Values()) {
			return false
		}
	}
	return true
}
