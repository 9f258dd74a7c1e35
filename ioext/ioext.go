// Package ioext defines the collaborator interfaces the map-editing core
// depends on but never implements itself: texture loading, filesystem
// access, and host event delivery (spec.md §6 "External collaborators").
// A host application supplies concrete implementations; this package exists
// so core code can depend on an interface instead of a concrete GUI/OS
// binding.
package ioext

import (
	"context"
	"io"
	"time"

	"github.com/mapeditor/tactile-core/core/geom"
)

// TextureLoader decodes an image file into pixel dimensions without
// exposing pixel data to the core — the core only ever needs a texture's
// size to compute tileset layout, never its bytes (spec.md §6).
type TextureLoader interface {
	LoadTexture(ctx context.Context, path string) (geom.Size, error)
}

// FileSystem abstracts the filesystem a document's paths are resolved
// against, generalizing the teacher's getStream/FindPath indirection
// (path.go) into an explicit collaborator interface instead of package
// globals.
type FileSystem interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	Stat(path string) (exists bool, err error)
}

// EventKind enumerates the host notifications that can be published
// through an EventSource (spec.md §6).
type EventKind int

const (
	EventDocumentOpened EventKind = iota
	EventDocumentClosed
	EventDocumentModified
	EventCommandExecuted
)

// Event is a single host-facing notification.
type Event struct {
	Kind EventKind
	At   time.Time
}

// EventSource lets core code publish notifications without depending on
// whatever UI/event-loop library the host uses to dispatch them.
type EventSource interface {
	Publish(Event)
}
