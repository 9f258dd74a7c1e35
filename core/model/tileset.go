package model

import (
	"time"

	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/pkg/errors"
)

// TextureRef is an opaque reference to a tileset's source image: the path
// (resolved and canonicalized by the serializer, spec.md §4.7) and its
// pixel dimensions. The actual texture handle is owned by the external
// texture loader (spec.md §6); the core never holds one.
type TextureRef struct {
	Path string
	Size geom.Size
}

// Tile is a "fancy tile" overlay: per-tile data for a tile that carries
// animation, nested objects, or a context beyond its bare image. Tiles
// without any of this data have no overlay entry at all (spec.md §3
// "Tileset": "only for tiles that carry animation, nested objects, or
// context data — others are absent and treated as defaults").
type Tile struct {
	Index     ident.TileIndex
	Ctx       *context.Context
	Objects   []*Object
	Animation *Animation
}

func newTile(index ident.TileIndex) *Tile {
	return &Tile{Index: index, Ctx: context.New("")}
}

// AddFrame inserts a frame at position i (i == current length appends). The
// first frame may only be added to a tile that is not yet animated; any
// mutation resets playback to frame 0 (spec.md §4.5 "Animation edits").
func (t *Tile) AddFrame(i int, frame Frame, now time.Time) error {
	if t.Animation == nil {
		if i != 0 {
			return errors.Errorf("tile: cannot add frame at index %d to an unanimated tile", i)
		}
		t.Animation = NewAnimation([]Frame{frame}, now)
		return nil
	}
	if i < 0 || i > len(t.Animation.Frames) {
		return errors.Errorf("tile: frame index %d out of range [0,%d]", i, len(t.Animation.Frames))
	}
	frames := t.Animation.Frames
	frames = append(frames, Frame{})
	copy(frames[i+1:], frames[i:])
	frames[i] = frame
	t.Animation.Frames = frames
	t.Animation.Current = 0
	t.Animation.LastUpdate = now
	return nil
}

// RemoveFrame deletes the frame at index i. If the animation becomes
// empty, it is removed from the tile altogether (spec.md §4.5).
func (t *Tile) RemoveFrame(i int, now time.Time) error {
	if t.Animation == nil {
		return errors.New("tile: not animated")
	}
	frames := t.Animation.Frames
	if i < 0 || i >= len(frames) {
		return errors.Errorf("tile: frame index %d out of range [0,%d)", i, len(frames))
	}
	frames = append(frames[:i], frames[i+1:]...)
	if len(frames) == 0 {
		t.Animation = nil
		return nil
	}
	t.Animation.Frames = frames
	t.Animation.Current = 0
	t.Animation.LastUpdate = now
	return nil
}

// Clone returns a deep copy for undo snapshots.
func (t *Tile) Clone() *Tile {
	dup := &Tile{Index: t.Index, Ctx: t.Ctx.Clone(), Animation: t.Animation.Clone()}
	dup.Objects = make([]*Object, len(t.Objects))
	for i, o := range t.Objects {
		dup.Objects[i] = o.Clone()
	}
	return dup
}

// Tileset is a collection of tiles sharing a single source image (or, for
// an image-collection tileset, per-tile images — out of scope for this
// core, since texture decoding is an external concern).
type Tileset struct {
	UUID        ident.UUID
	Texture     TextureRef
	TileSize    geom.Size
	RowCount    int
	ColumnCount int
	Ctx         *context.Context

	fancy map[ident.TileIndex]*Tile
}

// NewTileset constructs a tileset with the given geometry. TileCount is
// derived as RowCount*ColumnCount per spec.md §3.
func NewTileset(texture TextureRef, tileSize geom.Size, rows, cols int) *Tileset {
	return &Tileset{
		UUID:        ident.New(),
		Texture:     texture,
		TileSize:    tileSize,
		RowCount:    rows,
		ColumnCount: cols,
		Ctx:         context.New(""),
		fancy:       make(map[ident.TileIndex]*Tile),
	}
}

// TileCount returns RowCount * ColumnCount.
func (ts *Tileset) TileCount() int { return ts.RowCount * ts.ColumnCount }

// Tile returns the fancy-tile overlay at index, creating one on first
// access (callers that only want to read should use TryTile).
func (ts *Tileset) Tile(index ident.TileIndex) *Tile {
	if t, ok := ts.fancy[index]; ok {
		return t
	}
	t := newTile(index)
	ts.fancy[index] = t
	return t
}

// TryTile returns the fancy-tile overlay at index without creating one.
func (ts *Tileset) TryTile(index ident.TileIndex) (*Tile, bool) {
	t, ok := ts.fancy[index]
	return t, ok
}

// DropTile removes a fancy-tile overlay if it carries no data worth
// keeping (no animation, no objects, and an empty context).
func (ts *Tileset) DropTile(index ident.TileIndex) {
	if t, ok := ts.fancy[index]; ok {
		if t.Animation == nil && len(t.Objects) == 0 && t.Ctx.Properties.Len() == 0 && len(t.Ctx.Components) == 0 {
			delete(ts.fancy, index)
		}
	}
}

// FancyTiles returns every overlay tile, keyed by index. The caller must
// not mutate the returned map.
func (ts *Tileset) FancyTiles() map[ident.TileIndex]*Tile { return ts.fancy }

// Appearance returns the tile index that should actually be rendered for
// the given index: the current animation frame if animated, or the index
// itself otherwise (spec.md §4.5 "Tile appearance").
func (ts *Tileset) Appearance(index ident.TileIndex) ident.TileIndex {
	if t, ok := ts.fancy[index]; ok && t.Animation != nil {
		return t.Animation.CurrentTileIndex()
	}
	return index
}

// Tick advances every animated tile's playback by at most one frame,
// called once per rendered frame after the event queue has drained
// (spec.md §5 "Ordering").
func (ts *Tileset) Tick(now time.Time) {
	for _, t := range ts.fancy {
		if t.Animation != nil {
			t.Animation.Tick(now)
		}
	}
}

// Clone returns a deep copy for undo snapshots and cache duplication.
func (ts *Tileset) Clone() *Tileset {
	dup := &Tileset{
		UUID:        ts.UUID,
		Texture:     ts.Texture,
		TileSize:    ts.TileSize,
		RowCount:    ts.RowCount,
		ColumnCount: ts.ColumnCount,
		Ctx:         ts.Ctx.Clone(),
		fancy:       make(map[ident.TileIndex]*Tile, len(ts.fancy)),
	}
	for k, v := range ts.fancy {
		dup.fancy[k] = v.Clone()
	}
	return dup
}

// AttachedTileset is the map-local view of a Tileset: the contiguous range
// of global tile ids it occupies within one particular map (spec.md §3
// "AttachedTileset").
type AttachedTileset struct {
	TilesetUUID ident.UUID
	FirstTileID ident.TileID
	LastTileID  ident.TileID // FirstTileID + TileCount - 1
	Embedded    bool

	// SelectionBegin/SelectionEnd define an optional tileset-local selection
	// region used by the stamp tool; nil when no selection is active.
	SelectionBegin *ident.TileIndex
	SelectionEnd   *ident.TileIndex
}

// Contains reports whether a global tile id falls within this attachment's
// range.
func (at *AttachedTileset) Contains(id ident.TileID) bool {
	return id >= at.FirstTileID && id <= at.LastTileID
}

// ToTileIndex converts a global tile id to a tileset-local index. It is a
// LogicError (panics) to call this with an id outside the attachment's
// range (spec.md §4.5).
func (at *AttachedTileset) ToTileIndex(id ident.TileID) ident.TileIndex {
	if !at.Contains(id) {
		panic("model: tile id out of tileset range")
	}
	return ident.TileIndex(id - at.FirstTileID)
}
