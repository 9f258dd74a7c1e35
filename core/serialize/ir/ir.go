package ir

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/tiledata"
)

// PropertyIR is one named, typed value in a ContextIR's property list.
// Value's dynamic type is determined by Type ("string", "int", "float",
// "bool", "color", "file", "object").
type PropertyIR struct {
	Name  string
	Type  string
	Value any
}

// AttributeDefIR is one attribute slot in a component definition's
// schema: a name, a type tag, and that type's default value.
type AttributeDefIR struct {
	Name    string
	Type    string
	Default any
}

// ComponentDefIR is a named, ordered attribute schema (spec.md §3
// "Component definition").
type ComponentDefIR struct {
	Name       string
	Attributes []AttributeDefIR
}

// ComponentInstanceIR is one attached component's current values,
// referencing its defining schema by name (native YAML) — Tiled dialects
// degrade this to properties per spec.md §9.
type ComponentInstanceIR struct {
	Type   string
	Values []PropertyIR
}

// ContextIR is the serialized form of core/context.Context: a name,
// ordered properties, and attached component instances.
type ContextIR struct {
	Name       string
	Properties []PropertyIR
	Components []ComponentInstanceIR
}

// ObjectIR is the serialized form of core/model.Object.
type ObjectIR struct {
	ID       int32
	Kind     string // "rect" | "ellipse" | "point"
	Position geom.Vec2
	Size     geom.Vec2
	Tag      string
	Visible  bool
	Context  ContextIR
}

// FrameIR is one animation frame: a tileset-local tile index and a
// duration in milliseconds (spec.md §5 "Clocks": "durations are persisted
// as integer milliseconds").
type FrameIR struct {
	LocalIndex int
	DurationMS int64
}

// TileIR is the serialized form of a tileset's fancy-tile overlay.
type TileIR struct {
	LocalIndex int
	Frames     []FrameIR
	Objects    []ObjectIR
	Context    ContextIR
}

// TilesetIR is the serialized form of an attached tileset: either an
// inline definition or, for Tiled dialects, a reference to an external
// .tsx file (ExternalPath non-empty, everything else zero).
type TilesetIR struct {
	Name        string
	FirstTileID int32
	TileWidth   int
	TileHeight  int
	TileCount   int
	ColumnCount int
	ImagePath   string
	ImageWidth  int
	ImageHeight int
	FancyTiles  []TileIR
	Context     ContextIR

	ExternalPath string // non-empty for a Tiled external tileset reference
}

// TileLayerIR holds a tile layer's matrix as a row-major tile-id slice,
// already decoded from its on-disk encoding by the caller.
type TileLayerIR struct {
	Tiles []int32 // row-major, length == Rows*Cols of the owning MapIR
}

// ObjectLayerIR holds an object layer's ordered member objects.
type ObjectLayerIR struct {
	Objects []ObjectIR
}

// GroupLayerIR holds a group layer's ordered children.
type GroupLayerIR struct {
	Children []LayerIR
}

// LayerKindIR discriminates which of TileLayerIR/ObjectLayerIR/
// GroupLayerIR a LayerIR's variant fields actually hold.
type LayerKindIR int

const (
	TileLayerKindIR LayerKindIR = iota
	ObjectLayerKindIR
	GroupLayerKindIR
)

// LayerIR is the serialized form of core/model.Layer.
type LayerIR struct {
	ID      int32
	Opacity float32
	Visible bool
	Context ContextIR
	Kind    LayerKindIR

	TileLayer   *TileLayerIR
	ObjectLayer *ObjectLayerIR
	GroupLayer  *GroupLayerIR
}

// MapIR is the root serialized form of core/model.Map (spec.md §4.7 "IR
// key shapes").
type MapIR struct {
	Version int

	TileWidth     int
	TileHeight    int
	RowCount      int
	ColumnCount   int
	NextLayerID   int32
	NextObjectID  int32
	NextTileID    int32
	TileFormat    tiledata.Format
	ComponentDefs []ComponentDefIR
	Tilesets      []TilesetIR
	Layers        []LayerIR
	Context       ContextIR
}

// CurrentVersion is written to every native-format MapIR and checked on
// load (spec.md §7 "unsupported-version").
const CurrentVersion = 1
