package doc

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/model"
)

func newTestDocument() *Document {
	m := model.New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 4, Cols: 4})
	return NewMapDocument(m)
}

func TestNewMapDocumentStartsClean(t *testing.T) {
	d := newTestDocument()
	if !d.IsClean() {
		t.Fatalf("IsClean: a freshly opened document should start clean")
	}
	if d.Stack.CanUndo() || d.Stack.CanRedo() {
		t.Fatalf("a freshly opened document should have no undo/redo history")
	}
}

func TestManagerOpenMakesActive(t *testing.T) {
	mgr := NewManager()
	d1 := newTestDocument()
	d2 := newTestDocument()

	mgr.Open(d1)
	if mgr.Active() != d1 {
		t.Fatalf("Active() after opening d1 should be d1")
	}

	mgr.Open(d2)
	if mgr.Active() != d2 {
		t.Fatalf("Active() after opening d2 should be d2")
	}
	if len(mgr.OpenDocuments()) != 2 {
		t.Fatalf("OpenDocuments() length = %d, want 2", len(mgr.OpenDocuments()))
	}
}

func TestManagerCloseActiveFallsBackToPrevious(t *testing.T) {
	mgr := NewManager()
	d1 := newTestDocument()
	d2 := newTestDocument()
	d3 := newTestDocument()
	mgr.Open(d1)
	mgr.Open(d2)
	mgr.Open(d3)

	mgr.Close(d3.UUID)

	if mgr.Active() != d2 {
		t.Fatalf("Active() after closing the active (last) document should fall back to the previous one")
	}
	if _, ok := mgr.Get(d3.UUID); ok {
		t.Fatalf("Get: closed document should no longer be retrievable")
	}
}

func TestManagerCloseLastDocumentLeavesNoneActive(t *testing.T) {
	mgr := NewManager()
	d := newTestDocument()
	mgr.Open(d)

	mgr.Close(d.UUID)

	if mgr.Active() != nil {
		t.Fatalf("Active() should be nil once every document is closed")
	}
}

func TestManagerCloseNonActiveDocumentKeepsActive(t *testing.T) {
	mgr := NewManager()
	d1 := newTestDocument()
	d2 := newTestDocument()
	mgr.Open(d1)
	mgr.Open(d2)

	mgr.Close(d1.UUID)

	if mgr.Active() != d2 {
		t.Fatalf("closing a non-active document should not change which document is active")
	}
}

func TestManagerSetActive(t *testing.T) {
	mgr := NewManager()
	d1 := newTestDocument()
	d2 := newTestDocument()
	mgr.Open(d1)
	mgr.Open(d2)

	mgr.SetActive(d1.UUID)

	if mgr.Active() != d1 {
		t.Fatalf("SetActive did not change the active document")
	}
}
