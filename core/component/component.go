// Package component implements user-defined component schemas and the
// attached-component instances that overlay them on a Context (spec.md §3
// "Component definition", grounded on original_source's
// source/app/core/cmd/comp/* command set).
package component

import (
	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/ident"
)

// Definition describes a user-defined component schema: a named, ordered
// set of attribute defaults. Two components sharing a UUID are the same
// definition; Name is for display only and may change independently.
type Definition struct {
	UUID  ident.UUID
	Name  string
	attrs *attribute.OrderedProperties // attribute name -> default value
}

// NewDefinition creates an empty definition with a fresh UUID.
func NewDefinition(name string) *Definition {
	return &Definition{
		UUID:  ident.New(),
		Name:  name,
		attrs: attribute.NewOrderedProperties(),
	}
}

// Attributes returns the ordered default attribute set. Callers must not
// retain the returned pointer across a Clone.
func (d *Definition) Attributes() *attribute.OrderedProperties { return d.attrs }

// AddAttribute appends a new attribute with the given default value. It is
// a LogicError (the dispatcher validates availability first) to add a name
// that already exists.
func (d *Definition) AddAttribute(name string, def attribute.Attribute) {
	if _, exists := d.attrs.Get(name); exists {
		panic("component: duplicate attribute name " + name)
	}
	d.attrs.Set(name, def)
}

// RemoveAttribute deletes an attribute from the schema. Already-attached
// instances need no separate update: Attached.Values reads the definition
// live, so the attribute disappears from them too.
func (d *Definition) RemoveAttribute(name string) {
	d.attrs.Delete(name)
}

// RenameAttribute renames an attribute, preserving its default value and
// position.
func (d *Definition) RenameAttribute(oldName, newName string) bool {
	return d.attrs.Rename(oldName, newName)
}

// Clone returns a deep copy of the definition, used for undo snapshots.
func (d *Definition) Clone() *Definition {
	return &Definition{UUID: d.UUID, Name: d.Name, attrs: d.attrs.Clone()}
}

// Attached is an instance of a Definition attached to a particular
// Context: its current values overlaying (and possibly diverging from) the
// definition's defaults. values holds only the attributes an instance has
// explicitly overridden; anything the definition still lists but this
// instance never touched is read live off def, so a later AddAttribute,
// RemoveAttribute, or RetypeAttribute on the definition is immediately
// visible through Values() on every already-attached instance (spec.md
// "core/component": definition mutators "propagate to every attached
// instance", grounded on original_source's
// source/app/core/cmd/comp/add_component_attr.cpp redo()/undo()).
type Attached struct {
	DefinitionUUID ident.UUID
	def            *Definition
	values         *attribute.OrderedProperties
}

// NewAttached instantiates an attached component carrying no overrides of
// its own; every value reads through to def until Set is called.
func NewAttached(def *Definition) *Attached {
	return &Attached{DefinitionUUID: def.UUID, def: def, values: attribute.NewOrderedProperties()}
}

// Values returns the current attribute set: an override where this
// instance has one of the matching kind, the definition's live default
// otherwise. The definition's current attribute order governs the result,
// so added/removed/retyped attributes appear and disappear without any
// action on the instance itself.
func (a *Attached) Values() *attribute.OrderedProperties {
	out := attribute.NewOrderedProperties()
	a.def.attrs.Range(func(name string, def attribute.Attribute) bool {
		if override, ok := a.values.Get(name); ok && override.Kind() == def.Kind() {
			out.Set(name, override)
		} else {
			out.Set(name, def)
		}
		return true
	})
	return out
}

// Set overrides a single attribute value.
func (a *Attached) Set(name string, value attribute.Attribute) {
	a.values.Set(name, value)
}

// Reset discards every override, falling back entirely to the
// definition's current defaults.
func (a *Attached) Reset(def *Definition) {
	a.def = def
	a.values = attribute.NewOrderedProperties()
}

// Clone returns a deep copy of the overrides, used for undo snapshots. The
// definition back-reference is shared, not cloned: both the original and
// the snapshot resolve against the same live schema.
func (a *Attached) Clone() *Attached {
	return &Attached{DefinitionUUID: a.DefinitionUUID, def: a.def, values: a.values.Clone()}
}

// Index is the document-owned registry of component definitions, keyed by
// UUID. It is distinct from any single context's attached components.
type Index struct {
	defs map[ident.UUID]*Definition
	// order records definition UUIDs in registration order.
	order []ident.UUID
}

// NewIndex creates an empty component index.
func NewIndex() *Index {
	return &Index{defs: make(map[ident.UUID]*Definition)}
}

// Add registers a new definition.
func (idx *Index) Add(def *Definition) {
	if _, exists := idx.defs[def.UUID]; exists {
		panic("component: duplicate definition uuid")
	}
	idx.defs[def.UUID] = def
	idx.order = append(idx.order, def.UUID)
}

// Remove deletes a definition from the index. It does not detach it from
// any context; that is the command layer's responsibility.
func (idx *Index) Remove(uuid ident.UUID) {
	if _, ok := idx.defs[uuid]; !ok {
		return
	}
	delete(idx.defs, uuid)
	for i, u := range idx.order {
		if u == uuid {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Get retrieves a definition by UUID.
func (idx *Index) Get(uuid ident.UUID) (*Definition, bool) {
	d, ok := idx.defs[uuid]
	return d, ok
}

// All returns definitions in registration order. The caller must not
// mutate the returned slice.
func (idx *Index) All() []*Definition {
	out := make([]*Definition, len(idx.order))
	for i, u := range idx.order {
		out[i] = idx.defs[u]
	}
	return out
}

// Clone returns a deep copy of the index, used for undo snapshots of
// structural component-definition commands.
func (idx *Index) Clone() *Index {
	dup := &Index{defs: make(map[ident.UUID]*Definition, len(idx.defs)), order: append([]ident.UUID(nil), idx.order...)}
	for k, v := range idx.defs {
		dup.defs[k] = v.Clone()
	}
	return dup
}
