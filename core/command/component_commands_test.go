package command

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
)

func TestCreateComponentDefCommandRedoReusesIdentity(t *testing.T) {
	idx := component.NewIndex()
	s := NewStack(10)

	create := NewCreateComponentDefCommand(idx, "Health")
	s.Push(create)
	first := create.def

	s.Undo()
	s.Redo()

	if create.def != first {
		t.Fatalf("redo minted a new definition instead of reusing the original")
	}
	if _, ok := idx.Get(first.UUID); !ok {
		t.Fatalf("redo did not re-register the original definition")
	}
}

func TestDuplicateComponentDefCommandRedoReusesIdentity(t *testing.T) {
	idx := component.NewIndex()
	src := component.NewDefinition("Health")
	idx.Add(src)

	s := NewStack(10)
	dup := NewDuplicateComponentDefCommand(idx, src.UUID)
	s.Push(dup)
	first := dup.duplicate

	s.Undo()
	s.Redo()

	if dup.duplicate != first {
		t.Fatalf("redo minted a new duplicate instead of reusing the original")
	}
	if _, ok := idx.Get(first.UUID); !ok {
		t.Fatalf("redo did not re-register the original duplicate")
	}
}

func TestComponentAttrCommandsPropagateToAttachedInstance(t *testing.T) {
	idx := component.NewIndex()
	def := component.NewDefinition("Health")
	idx.Add(def)
	inst := component.NewAttached(def)

	s := NewStack(10)
	s.Push(NewCreateComponentAttrCommand(def, "current", attribute.KindInt32))
	if _, ok := inst.Values().Get("current"); !ok {
		t.Fatalf("attached instance did not pick up the new attribute")
	}

	s.Push(NewRetypeComponentAttrCommand(def, "current", attribute.KindFloat32))
	v, _ := inst.Values().Get("current")
	if v.Kind() != attribute.KindFloat32 {
		t.Fatalf("Kind = %v, want float after retype", v.Kind())
	}

	s.Push(NewRemoveComponentAttrCommand(def, "current"))
	if _, ok := inst.Values().Get("current"); ok {
		t.Fatalf("attached instance still reports an attribute removed from the definition")
	}

	s.Undo() // undo remove
	if _, ok := inst.Values().Get("current"); !ok {
		t.Fatalf("undo of remove did not restore the attribute")
	}
}
