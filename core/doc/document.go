// Package doc implements the document registry: the Document wrapper
// tying a Map (or other persisted payload) to its own undo stack and
// component index, and the Manager tracking every open document and
// which one is active (spec.md §4.1 "Document model").
package doc

import (
	"github.com/mapeditor/tactile-core/core/command"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// Kind discriminates what a Document's Payload holds. The core only ever
// populates Map today; Tileset documents (standalone .tsx-equivalent
// files edited independently of any map) are modeled for forward
// compatibility with the tileset editor view original_source ships.
type Kind int

const (
	KindMap Kind = iota
	KindTileset
)

// DefaultCommandCapacity matches Tactile2's default command stack
// capacity (source/app/core/settings.hpp "command_capacity" default).
const DefaultCommandCapacity = 100

// Document bundles one open map (or tileset) with its own undo history
// and its own component-definition index — component definitions are
// scoped per-document, never shared across documents (spec.md §3
// "Component definition" is document-local).
type Document struct {
	UUID       ident.UUID
	Kind       Kind
	FilePath   *string
	Stack      *command.Stack
	Components *component.Index

	Map *model.Map
}

// NewMapDocument wraps m as a new, unsaved document with an empty undo
// history and component index.
func NewMapDocument(m *model.Map) *Document {
	return &Document{
		UUID:       ident.New(),
		Kind:       KindMap,
		Stack:      command.NewStack(DefaultCommandCapacity),
		Components: component.NewIndex(),
		Map:        m,
	}
}

// IsClean reports whether the document's undo stack is at its
// last-marked-clean state, i.e. whether it has unsaved changes.
func (d *Document) IsClean() bool { return d.Stack.IsClean() }

// Manager tracks every open document and which one the UI is currently
// presenting (spec.md §4.1 "Document manager").
type Manager struct {
	documents map[ident.UUID]*Document
	order     []ident.UUID
	active    *ident.UUID
}

// NewManager returns an empty document manager.
func NewManager() *Manager {
	return &Manager{documents: make(map[ident.UUID]*Document)}
}

// Open registers a new document and makes it active.
func (m *Manager) Open(d *Document) {
	m.documents[d.UUID] = d
	m.order = append(m.order, d.UUID)
	id := d.UUID
	m.active = &id
}

// Close removes a document from the manager. If it was active, the
// active document becomes the one immediately before it in open order, or
// none if it was the only open document (spec.md §4.1 "Close document").
func (m *Manager) Close(id ident.UUID) {
	idx := -1
	for i, u := range m.order {
		if u == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	delete(m.documents, id)
	m.order = append(m.order[:idx], m.order[idx+1:]...)

	if m.active != nil && *m.active == id {
		m.active = nil
		if len(m.order) > 0 {
			pos := idx - 1
			if pos < 0 {
				pos = 0
			}
			if pos >= len(m.order) {
				pos = len(m.order) - 1
			}
			next := m.order[pos]
			m.active = &next
		}
	}
}

// Get retrieves a document by UUID.
func (m *Manager) Get(id ident.UUID) (*Document, bool) {
	d, ok := m.documents[id]
	return d, ok
}

// Active returns the currently active document, or nil if none is open.
func (m *Manager) Active() *Document {
	if m.active == nil {
		return nil
	}
	d, ok := m.documents[*m.active]
	if !ok {
		return nil
	}
	return d
}

// SetActive makes the document with the given id active. No-op if it is
// not open.
func (m *Manager) SetActive(id ident.UUID) {
	if _, ok := m.documents[id]; !ok {
		return
	}
	m.active = &id
}

// OpenDocuments returns every open document's id, in open order.
func (m *Manager) OpenDocuments() []ident.UUID {
	out := make([]ident.UUID, len(m.order))
	copy(out, m.order)
	return out
}
