package command

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/model"
)

func TestAddRemoveLayerCommand(t *testing.T) {
	m := newTestMap()
	s := NewStack(10)

	add := NewAddLayerCommand(m, nil, model.LayerKindTile)
	s.Push(add)
	added := add.layer

	if len(m.Tree.Root.Group.Children) != 1 {
		t.Fatalf("layer not added to tree")
	}

	s.Push(NewRemoveLayerCommand(m, added.UUID))
	if len(m.Tree.Root.Group.Children) != 0 {
		t.Fatalf("layer not removed from tree")
	}

	s.Undo() // undo remove
	if len(m.Tree.Root.Group.Children) != 1 {
		t.Fatalf("remove not undone")
	}

	s.Undo() // undo add
	if len(m.Tree.Root.Group.Children) != 0 {
		t.Fatalf("add not undone")
	}
}

func TestRenameLayerCommand(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Ctx.Name = "original"

	s := NewStack(10)
	s.Push(NewRenameLayerCommand(m, layer.UUID, "renamed"))

	if layer.Ctx.Name != "renamed" {
		t.Fatalf("Name = %q, want %q", layer.Ctx.Name, "renamed")
	}

	s.Undo()
	if layer.Ctx.Name != "original" {
		t.Fatalf("Name after undo = %q, want %q", layer.Ctx.Name, "original")
	}
}

func TestSetLayerOpacityMerges(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Opacity = 1.0

	s := NewStack(10)
	s.Push(NewSetLayerOpacityCommand(m, layer.UUID, 0.5))
	s.Push(NewSetLayerOpacityCommand(m, layer.UUID, 0.2))

	if layer.Opacity != 0.2 {
		t.Fatalf("Opacity = %v, want 0.2", layer.Opacity)
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (merged)", s.Size())
	}

	s.Undo()
	if layer.Opacity != 1.0 {
		t.Fatalf("Opacity after single undo of merged entry = %v, want 1.0 (original value)", layer.Opacity)
	}
}

func TestSetLayerOpacityDoesNotMergeDifferentTarget(t *testing.T) {
	m := newTestMap()
	a := m.AddTileLayer(nil)
	b := m.AddTileLayer(nil)

	s := NewStack(10)
	s.Push(NewSetLayerOpacityCommand(m, a.UUID, 0.5))
	s.Push(NewSetLayerOpacityCommand(m, b.UUID, 0.5))

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (different targets must not merge)", s.Size())
	}
}

func TestDuplicateLayerCommand(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)
	layer.Ctx.Name = "source"

	s := NewStack(10)
	s.Push(NewDuplicateLayerCommand(m, layer.UUID))

	if len(m.Tree.Root.Group.Children) != 2 {
		t.Fatalf("Children = %d, want 2 after duplicate", len(m.Tree.Root.Group.Children))
	}

	s.Undo()
	if len(m.Tree.Root.Group.Children) != 1 {
		t.Fatalf("Children after undo = %d, want 1", len(m.Tree.Root.Group.Children))
	}
}

func TestAddLayerCommandRedoReusesIdentity(t *testing.T) {
	m := newTestMap()
	s := NewStack(10)

	add := NewAddLayerCommand(m, nil, model.LayerKindTile)
	s.Push(add)
	first := add.layer

	s.Undo()
	s.Redo()

	if add.layer != first {
		t.Fatalf("redo minted a new layer instead of reusing the one Undo detached")
	}
	if add.layer.UUID != first.UUID {
		t.Fatalf("redo's layer UUID changed across undo/redo")
	}
	if len(m.Tree.Root.Group.Children) != 1 || m.Tree.Root.Group.Children[0] != first {
		t.Fatalf("redo did not reinsert the original layer at its prior position")
	}
}

func TestDuplicateLayerCommandRedoReusesIdentity(t *testing.T) {
	m := newTestMap()
	layer := m.AddTileLayer(nil)

	s := NewStack(10)
	dup := NewDuplicateLayerCommand(m, layer.UUID)
	s.Push(dup)
	first := dup.duplicate

	s.Undo()
	s.Redo()

	if dup.duplicate != first {
		t.Fatalf("redo minted a new duplicate instead of reusing the original")
	}
	if len(m.Tree.Root.Group.Children) != 2 {
		t.Fatalf("Children = %d, want 2 after redo", len(m.Tree.Root.Group.Children))
	}
}

func TestMoveLayerUpDownCommand(t *testing.T) {
	m := newTestMap()
	first := m.AddTileLayer(nil)
	second := m.AddTileLayer(nil)
	_ = first

	s := NewStack(10)
	s.Push(NewMoveLayerUpCommand(m, second.UUID))

	if m.Tree.Root.Group.Children[0].UUID != second.UUID {
		t.Fatalf("MoveLayerUp did not bring the second layer to the front")
	}

	s.Undo()
	if m.Tree.Root.Group.Children[0].UUID != first.UUID {
		t.Fatalf("MoveLayerUp not undone")
	}
}
