package model

import (
	"fmt"

	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/tilemat"
)

// LayerKind discriminates the three layer variants (spec.md §3 "Layer
// (sum type)"). This module follows design choice (b) from spec.md §9: a
// tagged variant embedded in a common Layer record, rather than an ECS
// registry with per-component storage.
type LayerKind int

const (
	LayerKindTile LayerKind = iota
	LayerKindObject
	LayerKindGroup
)

func (k LayerKind) String() string {
	switch k {
	case LayerKindTile:
		return "tile"
	case LayerKindObject:
		return "object"
	case LayerKindGroup:
		return "group"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

// TileLayerData is the TileLayer variant's payload: a matrix whose extent
// must always equal the owning map's extent (spec.md §3 invariant).
type TileLayerData struct {
	Matrix *tilemat.Matrix
}

// ObjectLayerData is the ObjectLayer variant's payload: an ordered member
// list. Order is insertion order unless explicitly reordered (spec.md §3).
type ObjectLayerData struct {
	Objects []*Object
}

// GroupLayerData is the GroupLayer variant's payload: an ordered list of
// child layers. Parent/child links are owned here (child list only); the
// inverse (parent lookup) is derived by LayerTree rather than stored as a
// back-pointer on the child, per spec.md §9 "Cyclic ownership".
type GroupLayerData struct {
	Children []*Layer
}

// Layer is a single node in the layer tree: common fields plus exactly one
// non-nil variant payload selected by Kind (spec.md §3 "Layer").
type Layer struct {
	UUID    ident.UUID
	ID      ident.LayerID
	Opacity float32
	Visible bool
	Kind    LayerKind
	Ctx     *context.Context

	Tile   *TileLayerData
	Object *ObjectLayerData
	Group  *GroupLayerData
}

// NewTileLayer constructs a tile layer of the given extent, fully empty.
func NewTileLayer(id ident.LayerID, extent geom.Extent) *Layer {
	return &Layer{
		UUID:    ident.New(),
		ID:      id,
		Opacity: 1.0,
		Visible: true,
		Kind:    LayerKindTile,
		Ctx:     context.New(""),
		Tile:    &TileLayerData{Matrix: tilemat.NewMatrix(extent)},
	}
}

// NewObjectLayer constructs an empty object layer.
func NewObjectLayer(id ident.LayerID) *Layer {
	return &Layer{
		UUID:    ident.New(),
		ID:      id,
		Opacity: 1.0,
		Visible: true,
		Kind:    LayerKindObject,
		Ctx:     context.New(""),
		Object:  &ObjectLayerData{},
	}
}

// NewGroupLayer constructs an empty group layer.
func NewGroupLayer(id ident.LayerID) *Layer {
	return &Layer{
		UUID:    ident.New(),
		ID:      id,
		Opacity: 1.0,
		Visible: true,
		Kind:    LayerKindGroup,
		Ctx:     context.New(""),
		Group:   &GroupLayerData{},
	}
}

// Clone returns a deep copy of the layer and, for a group, its entire
// subtree — used for undo snapshots of removal/duplication commands.
func (l *Layer) Clone() *Layer {
	dup := &Layer{UUID: l.UUID, ID: l.ID, Opacity: l.Opacity, Visible: l.Visible, Kind: l.Kind, Ctx: l.Ctx.Clone()}
	switch l.Kind {
	case LayerKindTile:
		dup.Tile = &TileLayerData{Matrix: l.Tile.Matrix.Clone()}
	case LayerKindObject:
		objs := make([]*Object, len(l.Object.Objects))
		for i, o := range l.Object.Objects {
			objs[i] = o.Clone()
		}
		dup.Object = &ObjectLayerData{Objects: objs}
	case LayerKindGroup:
		children := make([]*Layer, len(l.Group.Children))
		for i, c := range l.Group.Children {
			children[i] = c.Clone()
		}
		dup.Group = &GroupLayerData{Children: children}
	}
	return dup
}

// CloneWithFreshIdentity is used by Duplicate: it clones the subtree but
// regenerates UUIDs and draws fresh sequential LayerIds from nextID,
// per spec.md §4.4 "Duplicate layer".
func (l *Layer) CloneWithFreshIdentity(nextID func() ident.LayerID) *Layer {
	dup := l.Clone()
	dup.UUID = ident.New()
	dup.ID = nextID()
	if l.Kind == LayerKindGroup {
		for i, c := range l.Group.Children {
			dup.Group.Children[i] = c.CloneWithFreshIdentity(nextID)
		}
	}
	if l.Kind == LayerKindObject {
		for i := range dup.Object.Objects {
			dup.Object.Objects[i].UUID = ident.New()
		}
	}
	return dup
}

// Equal reports structural equality of a layer (and, for groups, its
// subtree), ignoring UUID per the round-trip equivalence of spec.md §8
// ("equal ordered layer tree modulo UUID regeneration").
func (l *Layer) Equal(other *Layer) bool {
	if l.ID != other.ID || l.Opacity != other.Opacity || l.Visible != other.Visible || l.Kind != other.Kind {
		return false
	}
	if !l.Ctx.Equal(other.Ctx) {
		return false
	}
	switch l.Kind {
	case LayerKindTile:
		return l.Tile.Matrix.Equal(other.Tile.Matrix)
	case LayerKindObject:
		if len(l.Object.Objects) != len(other.Object.Objects) {
			return false
		}
		for i := range l.Object.Objects {
			if !l.Object.Objects[i].Equal(other.Object.Objects[i]) {
				return false
			}
		}
		return true
	case LayerKindGroup:
		if len(l.Group.Children) != len(other.Group.Children) {
			return false
		}
		for i := range l.Group.Children {
			if !l.Group.Children[i].Equal(other.Group.Children[i]) {
				return false
			}
		}
		return true
	}
	return true
}
