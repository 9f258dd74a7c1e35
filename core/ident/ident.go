// Package ident defines the identifier types used throughout the map-editing
// core: opaque UUIDs for session-stable identity, and the small family of
// 32-bit numeric ids that are persisted to save files.
package ident

import "github.com/google/uuid"

// UUID is an opaque 128-bit identifier, stable for the lifetime of a
// session. It is used to reference documents, layers, objects, components,
// and contexts.
type UUID = uuid.UUID

// Nil is the zero-value UUID, used to signal "no reference".
var Nil = uuid.Nil

// New allocates a fresh random UUID.
func New() UUID {
	return uuid.New()
}

// LayerID uniquely identifies a layer within a single map. Persisted.
type LayerID int32

// ObjectID uniquely identifies an object within a single map. Persisted.
type ObjectID int32

// TileID is a globally-unique tile identifier within a map. Zero means
// an empty tile.
type TileID int32

// Empty is the reserved TileID value representing an empty cell.
const Empty TileID = 0

// TilesetID identifies a tileset document.
type TilesetID int32

// ComponentID identifies a component definition.
type ComponentID int32

// ContextID identifies a context singleton slot (unused directly by the
// document model, but reserved for dispatcher-side active-context tracking).
type ContextID int32

// TileIndex is a non-negative position within a tileset, 0-based.
type TileIndex int32

// Valid reports whether the index is non-negative.
func (t TileIndex) Valid() bool {
	return t >= 0
}
