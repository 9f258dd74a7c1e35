package model

import (
	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/tiledata"
	"github.com/pkg/errors"
)

// Map is the top-level document model (spec.md §3 "Map"): a fixed tile
// size, an extent shared by every tile layer, a layer tree, an ordered
// collection of attached tilesets, and the counters that mint fresh
// layer/object ids.
type Map struct {
	TileSize geom.Size
	Extent   geom.Extent
	Ctx      *context.Context

	Tree *LayerTree

	// tilesets holds the full tileset catalogue, keyed by UUID. Order is
	// the attach order, recorded separately in tilesetOrder.
	tilesets     map[ident.UUID]*Tileset
	attachments  map[ident.UUID]*AttachedTileset
	tilesetOrder []ident.UUID

	ActiveLayer   *ident.UUID
	ActiveTileset *ident.UUID

	TileFormat tiledata.Format

	nextLayerID  ident.LayerID
	nextObjectID ident.ObjectID
	nextTileID   ident.TileID
}

// New constructs an empty map of the given tile size and extent, with a
// single empty root group layer and the default tile data format
// (spec.md §3 "Map", §4.7 "Tile data format defaults").
func New(tileSize geom.Size, extent geom.Extent) *Map {
	root := NewGroupLayer(0)
	return &Map{
		TileSize:     tileSize,
		Extent:       extent,
		Ctx:          context.New(""),
		Tree:         NewLayerTree(root),
		tilesets:     make(map[ident.UUID]*Tileset),
		attachments:  make(map[ident.UUID]*AttachedTileset),
		TileFormat:   tiledata.DefaultFormat(),
		nextLayerID:  1,
		nextObjectID: 1,
		nextTileID:   1,
	}
}

// NextLayerID mints and returns a fresh, never-reused layer id.
func (m *Map) NextLayerID() ident.LayerID {
	id := m.nextLayerID
	m.nextLayerID++
	return id
}

// NextObjectID mints and returns a fresh, never-reused object id.
func (m *Map) NextObjectID() ident.ObjectID {
	id := m.nextObjectID
	m.nextObjectID++
	return id
}

// PeekNextLayerID returns the layer id NextLayerID would mint next,
// without consuming it. Used by the serializer to persist the counter.
func (m *Map) PeekNextLayerID() ident.LayerID { return m.nextLayerID }

// PeekNextObjectID returns the object id NextObjectID would mint next,
// without consuming it.
func (m *Map) PeekNextObjectID() ident.ObjectID { return m.nextObjectID }

// SetNextLayerID overwrites the layer-id counter, used when restoring a
// map from its serialized form.
func (m *Map) SetNextLayerID(id ident.LayerID) { m.nextLayerID = id }

// SetNextObjectID overwrites the object-id counter.
func (m *Map) SetNextObjectID(id ident.ObjectID) { m.nextObjectID = id }

// PeekNextTileID returns the global tile id AttachTileset would allocate
// first on its next call, without consuming it. Used by the serializer to
// persist the counter.
func (m *Map) PeekNextTileID() ident.TileID { return m.nextTileID }

// SetNextTileID overwrites the tile-id counter, used when restoring a map
// from its serialized form.
func (m *Map) SetNextTileID(id ident.TileID) { m.nextTileID = id }

// AddTileLayer creates and inserts a new tile layer, sized to the map's
// current extent, under parent (root if nil).
func (m *Map) AddTileLayer(parent *Layer) *Layer {
	layer := NewTileLayer(m.NextLayerID(), m.Extent)
	m.Tree.Add(parent, layer)
	return layer
}

// AddObjectLayer creates and inserts a new object layer under parent.
func (m *Map) AddObjectLayer(parent *Layer) *Layer {
	layer := NewObjectLayer(m.NextLayerID())
	m.Tree.Add(parent, layer)
	return layer
}

// AddGroupLayer creates and inserts a new group layer under parent.
func (m *Map) AddGroupLayer(parent *Layer) *Layer {
	layer := NewGroupLayer(m.NextLayerID())
	m.Tree.Add(parent, layer)
	return layer
}

// Tilesets returns the attached tilesets in attach order.
func (m *Map) Tilesets() []*Tileset {
	out := make([]*Tileset, len(m.tilesetOrder))
	for i, id := range m.tilesetOrder {
		out[i] = m.tilesets[id]
	}
	return out
}

// Attachment returns the AttachedTileset record for a tileset uuid, or nil
// if it is not attached to this map.
func (m *Map) Attachment(tilesetUUID ident.UUID) *AttachedTileset {
	return m.attachments[tilesetUUID]
}

// AttachTileset attaches ts to the map, allocating the next contiguous
// range of global tile ids off the map's persistent nextTileID counter
// (spec.md §4.5 "Attach tileset": "tile-id range is allocated sequentially
// starting at the map's current next_tile_id; after attachment
// next_tile_id = last + 1" — grounded on original_source's
// registry_system.cpp:61 and tileset_system.cpp:144, where the counter is
// only ever advanced, never rederived from what happens to be attached).
// A detach never rolls it back, so a vacated range is never reissued.
func (m *Map) AttachTileset(ts *Tileset, embedded bool) *AttachedTileset {
	first := m.nextTileID
	last := first + ident.TileID(ts.TileCount()) - 1
	at := &AttachedTileset{
		TilesetUUID: ts.UUID,
		FirstTileID: first,
		LastTileID:  last,
		Embedded:    embedded,
	}
	m.tilesets[ts.UUID] = ts
	m.attachments[ts.UUID] = at
	m.tilesetOrder = append(m.tilesetOrder, ts.UUID)
	m.nextTileID = last + 1
	return at
}

// DetachTileset removes a tileset attachment. The global tile id range it
// occupied is never reused by a later AttachTileset; any tiles still
// referencing it become invalid and must be cleaned up by FixInvalidTiles.
// Returns the removed tileset, its attachment, and its position in the
// attach order so a command can restore it verbatim on undo (spec.md §4.5
// "Detach tileset").
func (m *Map) DetachTileset(tilesetUUID ident.UUID) (ts *Tileset, at *AttachedTileset, order int) {
	ts, ok := m.tilesets[tilesetUUID]
	if !ok {
		return nil, nil, -1
	}
	at = m.attachments[tilesetUUID]
	for i, id := range m.tilesetOrder {
		if id == tilesetUUID {
			order = i
			m.tilesetOrder = append(m.tilesetOrder[:i], m.tilesetOrder[i+1:]...)
			break
		}
	}
	delete(m.tilesets, tilesetUUID)
	delete(m.attachments, tilesetUUID)
	return ts, at, order
}

// RestoreTileset re-inserts a previously detached tileset at the given
// attach-order position with its original attachment range (the undo half
// of DetachTileset).
func (m *Map) RestoreTileset(ts *Tileset, at *AttachedTileset, order int) {
	m.tilesets[ts.UUID] = ts
	m.attachments[ts.UUID] = at
	if order < 0 || order > len(m.tilesetOrder) {
		order = len(m.tilesetOrder)
	}
	ids := append(m.tilesetOrder, ident.Nil)
	copy(ids[order+1:], ids[order:])
	ids[order] = ts.UUID
	m.tilesetOrder = ids
}

// tilesetFor returns the AttachedTileset whose range contains the given
// global tile id, or nil if none does.
func (m *Map) tilesetFor(id ident.TileID) *AttachedTileset {
	for _, uuid := range m.tilesetOrder {
		if at := m.attachments[uuid]; at.Contains(id) {
			return at
		}
	}
	return nil
}

// InvalidTileRecord captures the positions and prior values of tiles that
// FixInvalidTiles cleared in a single layer, for undo.
type InvalidTileRecord struct {
	LayerUUID ident.UUID
	Positions []geom.Point
	Values    []ident.TileID
}

// FixInvalidTiles scans every tile layer in the map and replaces any tile
// id that does not fall within any currently attached tileset's range with
// the empty tile, recording the original values per layer so the edit can
// be undone in one step (spec.md §4.3 "Fix invalid tiles" — run after a
// detach, or on demand, to repair dangling references left by
// DetachTileset).
func (m *Map) FixInvalidTiles() []InvalidTileRecord {
	var records []InvalidTileRecord
	m.Tree.Walk(func(l *Layer) {
		if l.Kind != LayerKindTile {
			return
		}
		mat := l.Tile.Matrix
		extent := mat.Extent()
		var positions []geom.Point
		var values []ident.TileID
		for y := 0; y < extent.Rows; y++ {
			for x := 0; x < extent.Cols; x++ {
				p := geom.Point{X: x, Y: y}
				id := mat.At(p)
				if id == ident.Empty {
					continue
				}
				if m.tilesetFor(id) == nil {
					positions = append(positions, p)
					values = append(values, id)
					mat.Set(p, ident.Empty)
				}
			}
		}
		if len(positions) > 0 {
			records = append(records, InvalidTileRecord{LayerUUID: l.UUID, Positions: positions, Values: values})
		}
	})
	return records
}

// RestoreInvalidTiles is the undo half of FixInvalidTiles: it writes each
// record's original values back into the named layer's matrix.
func (m *Map) RestoreInvalidTiles(records []InvalidTileRecord) error {
	for _, rec := range records {
		layer := m.Tree.Find(rec.LayerUUID)
		if layer == nil || layer.Kind != LayerKindTile {
			return errors.Errorf("model: cannot restore invalid tiles, layer %s missing", rec.LayerUUID)
		}
		mat := layer.Tile.Matrix
		for i, p := range rec.Positions {
			mat.Set(p, rec.Values[i])
		}
	}
	return nil
}

// Resize changes the map's extent and every tile layer's matrix extent in
// lockstep, preserving the invariant that every tile layer's matrix extent
// equals the map's extent (spec.md §3 invariant). Returns a snapshot per
// affected layer for undo.
func (m *Map) Resize(newExtent geom.Extent) map[ident.UUID]map[geom.Point]ident.TileID {
	snapshots := make(map[ident.UUID]map[geom.Point]ident.TileID)
	m.Tree.Walk(func(l *Layer) {
		if l.Kind != LayerKindTile {
			return
		}
		if snap := l.Tile.Matrix.Resize(newExtent); snap != nil {
			snapshots[l.UUID] = snap
		}
	})
	m.Extent = newExtent
	return snapshots
}

// RestoreResize is the undo half of Resize.
func (m *Map) RestoreResize(oldExtent geom.Extent, snapshots map[ident.UUID]map[geom.Point]ident.TileID) {
	m.Tree.Walk(func(l *Layer) {
		if l.Kind != LayerKindTile {
			return
		}
		l.Tile.Matrix.RestoreResize(oldExtent, snapshots[l.UUID])
	})
	m.Extent = oldExtent
}
