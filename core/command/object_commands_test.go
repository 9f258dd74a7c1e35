package command

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/model"
)

func TestAddObjectCommandPushAndUndo(t *testing.T) {
	m := newTestMap()
	layer := m.AddObjectLayer(nil)

	s := NewStack(10)
	add := NewAddObjectCommand(layer, model.ObjectRect, geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: 3, Y: 4}, m.NextObjectID)
	s.Push(add)

	if len(layer.Object.Objects) != 1 {
		t.Fatalf("object not added to layer")
	}

	s.Undo()
	if len(layer.Object.Objects) != 0 {
		t.Fatalf("add not undone")
	}
}

func TestAddObjectCommandRedoReusesIdentity(t *testing.T) {
	m := newTestMap()
	layer := m.AddObjectLayer(nil)
	existing := model.NewObject(m.NextObjectID(), model.ObjectPoint, geom.Vec2{}, geom.Vec2{})
	layer.Object.Objects = append(layer.Object.Objects, existing)

	s := NewStack(10)
	add := NewAddObjectCommand(layer, model.ObjectRect, geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: 3, Y: 4}, m.NextObjectID)
	s.Push(add)
	first := add.object

	s.Undo()
	s.Redo()

	if add.object != first {
		t.Fatalf("redo minted a new object instead of reusing the one Undo removed")
	}
	if len(layer.Object.Objects) != 2 {
		t.Fatalf("Objects = %d, want 2 after redo", len(layer.Object.Objects))
	}
	if layer.Object.Objects[1] != first {
		t.Fatalf("redo did not reinsert the object at its prior index")
	}
}
