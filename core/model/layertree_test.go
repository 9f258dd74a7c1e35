package model

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
)

func TestSiblingCountExcludesSelf(t *testing.T) {
	root := NewGroupLayer(0)
	tree := NewLayerTree(root)
	a := NewTileLayer(1, geom.Extent{Rows: 1, Cols: 1})
	b := NewTileLayer(2, geom.Extent{Rows: 1, Cols: 1})
	tree.Add(nil, a)
	tree.Add(nil, b)

	if got := tree.SiblingCount(a.UUID); got != 1 {
		t.Fatalf("SiblingCount(a) = %d, want 1 (b only, not a itself)", got)
	}
}

func TestCanMoveDownLastChild(t *testing.T) {
	root := NewGroupLayer(0)
	tree := NewLayerTree(root)
	a := NewTileLayer(1, geom.Extent{Rows: 1, Cols: 1})
	b := NewTileLayer(2, geom.Extent{Rows: 1, Cols: 1})
	tree.Add(nil, a)
	tree.Add(nil, b)

	if !tree.CanMoveDown(a.UUID) {
		t.Fatalf("CanMoveDown(a) = false, want true (a precedes b)")
	}
	if tree.CanMoveDown(b.UUID) {
		t.Fatalf("CanMoveDown(b) = true, want false (b is the last child)")
	}
	if tree.CanMoveUp(b.UUID) != true {
		t.Fatalf("CanMoveUp(b) = false, want true")
	}
}
