package model

import (
	"fmt"

	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// ObjectKind distinguishes the shape an Object represents (spec.md §3
// "Object").
type ObjectKind int

const (
	ObjectRect ObjectKind = iota
	ObjectEllipse
	ObjectPoint
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectRect:
		return "rect"
	case ObjectEllipse:
		return "ellipse"
	case ObjectPoint:
		return "point"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// Object is a freeform entity placed on an ObjectLayer. UUID is its
// session-stable entity identity (used by ObjectLayer's ordered member
// list and by the registry); ID is the smaller numeric identifier
// persisted to save files (spec.md §3 "Identifiers").
type Object struct {
	UUID     ident.UUID
	ID       ident.ObjectID
	Kind     ObjectKind
	Position geom.Vec2
	Size     geom.Vec2 // (0,0) for ObjectPoint
	Tag      string
	Visible  bool
	Ctx      *context.Context
}

// NewObject constructs an object with a blank context and a fresh UUID.
// Size must be (0,0) for ObjectPoint (spec.md §3).
func NewObject(id ident.ObjectID, kind ObjectKind, position geom.Vec2, size geom.Vec2) *Object {
	if kind == ObjectPoint {
		size = geom.Vec2{}
	}
	return &Object{
		UUID:     ident.New(),
		ID:       id,
		Kind:     kind,
		Position: position,
		Size:     size,
		Visible:  true,
		Ctx:      context.New(""),
	}
}

// Clone returns a deep copy for undo snapshots.
func (o *Object) Clone() *Object {
	dup := *o
	dup.Ctx = o.Ctx.Clone()
	return &dup
}

// Equal reports structural equality, used by the round-trip equivalence of
// spec.md §8.
func (o *Object) Equal(other *Object) bool {
	if o.ID != other.ID || o.Kind != other.Kind || o.Position != other.Position ||
		o.Size != other.Size || o.Tag != other.Tag || o.Visible != other.Visible {
		return false
	}
	return o.Ctx.Equal(other.Ctx)
}
