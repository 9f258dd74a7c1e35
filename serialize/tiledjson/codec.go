package tiledjson

import (
	"encoding/json"
	"io"

	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
	"github.com/mapeditor/tactile-core/core/tiledata"
)

const (
	formatVersion = "1.10"
	orientation   = "orthogonal"
	renderOrder   = "right-down"
)

type wireObject struct {
	ID         int32          `json:"id"`
	Name       string         `json:"name,omitempty"`
	Point      bool           `json:"point,omitempty"`
	Ellipse    bool           `json:"ellipse,omitempty"`
	X          float32        `json:"x"`
	Y          float32        `json:"y"`
	Width      float32        `json:"width,omitempty"`
	Height     float32        `json:"height,omitempty"`
	Visible    bool           `json:"visible"`
	Properties []wireProperty `json:"properties,omitempty"`
}

type wireFrame struct {
	TileID   int   `json:"tileid"`
	Duration int64 `json:"duration"`
}

type wireObjectGroup struct {
	Objects []wireObject `json:"objects"`
}

type wireTile struct {
	ID          int              `json:"id"`
	Animation   []wireFrame      `json:"animation,omitempty"`
	ObjectGroup *wireObjectGroup `json:"objectgroup,omitempty"`
	Properties  []wireProperty   `json:"properties,omitempty"`
}

type wireTileset struct {
	FirstGID    int32          `json:"firstgid"`
	Source      string         `json:"source,omitempty"`
	Name        string         `json:"name"`
	TileWidth   int            `json:"tilewidth"`
	TileHeight  int            `json:"tileheight"`
	TileCount   int            `json:"tilecount"`
	Columns     int            `json:"columns"`
	Image       string         `json:"image"`
	ImageWidth  int            `json:"imagewidth"`
	ImageHeight int            `json:"imageheight"`
	Tiles       []wireTile     `json:"tiles,omitempty"`
	Properties  []wireProperty `json:"properties,omitempty"`
}

type wireLayer struct {
	ID          int32           `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name,omitempty"`
	Opacity     float32         `json:"opacity"`
	Visible     bool            `json:"visible"`
	Width       int             `json:"width,omitempty"`
	Height      int             `json:"height,omitempty"`
	Encoding    string          `json:"encoding,omitempty"`
	Compression string          `json:"compression,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Objects     []wireObject    `json:"objects,omitempty"`
	Layers      []wireLayer     `json:"layers,omitempty"`
	Properties  []wireProperty  `json:"properties,omitempty"`
}

type wireMap struct {
	Type             string         `json:"type"`
	Version          string         `json:"version"`
	TiledVersion     string         `json:"tiledversion"`
	Orientation      string         `json:"orientation"`
	RenderOrder      string         `json:"renderorder"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	TileWidth        int            `json:"tilewidth"`
	TileHeight       int            `json:"tileheight"`
	Infinite         bool           `json:"infinite"`
	NextLayerID      int32          `json:"nextlayerid"`
	NextObjectID     int32          `json:"nextobjectid"`
	CompressionLevel int            `json:"compressionlevel"`
	Tilesets         []wireTileset  `json:"tilesets"`
	Layers           []wireLayer    `json:"layers"`
	Properties       []wireProperty `json:"properties,omitempty"`
}

// Save writes m to w as a Tiled ".tmj" document. Attached components
// degrade to flat properties (spec.md §9); the component-definition
// registry itself is not representable in this dialect and is not
// written.
func Save(w io.Writer, m *model.Map, components *component.Index) error {
	doc, err := toWire(ir.Lower(m, components))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Load parses a Tiled ".tmj" document into a live Map. The returned
// component.Index is always empty: this dialect has no representation for
// component definitions, so degraded `__component__*` properties load back
// as ordinary properties (spec.md §9).
func Load(r io.Reader) (*model.Map, *component.Index, error) {
	var doc wireMap
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, ir.NewParseError(ir.WrongType, "", "", err.Error())
	}
	in, err := fromWire(doc)
	if err != nil {
		return nil, nil, err
	}
	return ir.Raise(in)
}

func toWire(in ir.MapIR) (wireMap, error) {
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireMap{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "map")
	if err != nil {
		return wireMap{}, err
	}
	out := wireMap{
		Type:             "map",
		Version:          formatVersion,
		TiledVersion:     formatVersion,
		Orientation:      orientation,
		RenderOrder:      renderOrder,
		Width:            in.ColumnCount,
		Height:           in.RowCount,
		TileWidth:        in.TileWidth,
		TileHeight:       in.TileHeight,
		NextLayerID:      in.NextLayerID,
		NextObjectID:     in.NextObjectID,
		CompressionLevel: in.TileFormat.ZlibLevel,
		Properties:       append(props, degraded...),
	}
	// Tiled assigns firstgid by concatenating tileset ranges in document
	// order; that is already the attach order the IR preserves.
	firstGID := int32(1)
	for _, ts := range in.Tilesets {
		wt, err := toWireTileset(ts, firstGID)
		if err != nil {
			return wireMap{}, err
		}
		out.Tilesets = append(out.Tilesets, wt)
		firstGID += int32(ts.TileCount)
	}
	for _, l := range in.Layers {
		wl, err := toWireLayer(l, in.TileFormat)
		if err != nil {
			return wireMap{}, err
		}
		out.Layers = append(out.Layers, wl)
	}
	return out, nil
}

func toWireTileset(in ir.TilesetIR, firstGID int32) (wireTileset, error) {
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireTileset{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "tileset:"+in.Name)
	if err != nil {
		return wireTileset{}, err
	}
	out := wireTileset{
		FirstGID:    firstGID,
		Name:        in.Name,
		TileWidth:   in.TileWidth,
		TileHeight:  in.TileHeight,
		TileCount:   in.TileCount,
		Columns:     in.ColumnCount,
		Image:       in.ImagePath,
		ImageWidth:  in.ImageWidth,
		ImageHeight: in.ImageHeight,
		Properties:  append(props, degraded...),
	}
	for _, t := range in.FancyTiles {
		wt, err := toWireTile(t)
		if err != nil {
			return wireTileset{}, err
		}
		out.Tiles = append(out.Tiles, wt)
	}
	return out, nil
}

func toWireTile(in ir.TileIR) (wireTile, error) {
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireTile{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "tile")
	if err != nil {
		return wireTile{}, err
	}
	out := wireTile{ID: in.LocalIndex, Properties: append(props, degraded...)}
	for _, f := range in.Frames {
		out.Animation = append(out.Animation, wireFrame{TileID: f.LocalIndex, Duration: f.DurationMS})
	}
	if len(in.Objects) > 0 {
		og := &wireObjectGroup{}
		for _, o := range in.Objects {
			wo, err := toWireObject(o)
			if err != nil {
				return wireTile{}, err
			}
			og.Objects = append(og.Objects, wo)
		}
		out.ObjectGroup = og
	}
	return out, nil
}

func toWireObject(in ir.ObjectIR) (wireObject, error) {
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireObject{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "object:"+in.Tag)
	if err != nil {
		return wireObject{}, err
	}
	out := wireObject{
		ID: in.ID, Name: in.Tag,
		X: in.Position.X, Y: in.Position.Y,
		Width: in.Size.X, Height: in.Size.Y,
		Visible:    in.Visible,
		Properties: append(props, degraded...),
	}
	switch in.Kind {
	case "ellipse":
		out.Ellipse = true
	case "point":
		out.Point = true
	}
	return out, nil
}

func toWireLayer(in ir.LayerIR, format tiledata.Format) (wireLayer, error) {
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireLayer{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "layer:"+in.Context.Name)
	if err != nil {
		return wireLayer{}, err
	}
	out := wireLayer{
		ID: in.ID, Name: in.Context.Name, Opacity: in.Opacity, Visible: in.Visible,
		Properties: append(props, degraded...),
	}
	switch in.Kind {
	case ir.TileLayerKindIR:
		out.Type = "tilelayer"
		tiles := make([]ident.TileID, len(in.TileLayer.Tiles))
		for i, v := range in.TileLayer.Tiles {
			tiles[i] = ident.TileID(v)
		}
		payload, err := tiledata.Encode(format, tiles)
		if err != nil {
			return wireLayer{}, err
		}
		out.Encoding = format.Encoding.String()
		if format.Encoding == tiledata.EncodingBase64 {
			out.Compression = format.Compression.String()
			raw, err := json.Marshal(string(payload))
			if err != nil {
				return wireLayer{}, err
			}
			out.Data = raw
		} else {
			out.Encoding = "csv"
			raw, err := json.Marshal(tiles)
			if err != nil {
				return wireLayer{}, err
			}
			out.Data = raw
		}
	case ir.ObjectLayerKindIR:
		out.Type = "objectgroup"
		for _, o := range in.ObjectLayer.Objects {
			wo, err := toWireObject(o)
			if err != nil {
				return wireLayer{}, err
			}
			out.Objects = append(out.Objects, wo)
		}
	case ir.GroupLayerKindIR:
		out.Type = "group"
		for _, c := range in.GroupLayer.Children {
			wc, err := toWireLayer(c, format)
			if err != nil {
				return wireLayer{}, err
			}
			out.Layers = append(out.Layers, wc)
		}
	}
	return out, nil
}

func fromWire(in wireMap) (ir.MapIR, error) {
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.MapIR{}, err
	}
	format := tiledata.Format{Encoding: tiledata.EncodingBase64, Compression: tiledata.CompressionZlib, ZlibLevel: in.CompressionLevel, ZstdLevel: 3}
	out := ir.MapIR{
		Version:      ir.CurrentVersion,
		TileWidth:    in.TileWidth,
		TileHeight:   in.TileHeight,
		RowCount:     in.Height,
		ColumnCount:  in.Width,
		NextLayerID:  in.NextLayerID,
		NextObjectID: in.NextObjectID,
		TileFormat:   format,
		Context:      ir.ContextIR{Properties: props},
	}
	for _, wt := range in.Tilesets {
		ts, err := fromWireTileset(wt)
		if err != nil {
			return ir.MapIR{}, err
		}
		out.Tilesets = append(out.Tilesets, ts)
	}
	count := in.Width * in.Height
	for _, wl := range in.Layers {
		l, err := fromWireLayer(wl, count)
		if err != nil {
			return ir.MapIR{}, err
		}
		out.Layers = append(out.Layers, l)
	}
	return out, nil
}

func fromWireTileset(in wireTileset) (ir.TilesetIR, error) {
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.TilesetIR{}, err
	}
	out := ir.TilesetIR{
		Name:         in.Name,
		FirstTileID:  in.FirstGID,
		TileWidth:    in.TileWidth,
		TileHeight:   in.TileHeight,
		TileCount:    in.TileCount,
		ColumnCount:  in.Columns,
		ImagePath:    in.Image,
		ImageWidth:   in.ImageWidth,
		ImageHeight:  in.ImageHeight,
		ExternalPath: in.Source,
		Context:      ir.ContextIR{Name: in.Name, Properties: props},
	}
	for _, wt := range in.Tiles {
		t, err := fromWireTile(wt)
		if err != nil {
			return ir.TilesetIR{}, err
		}
		out.FancyTiles = append(out.FancyTiles, t)
	}
	return out, nil
}

func fromWireTile(in wireTile) (ir.TileIR, error) {
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.TileIR{}, err
	}
	out := ir.TileIR{LocalIndex: in.ID, Context: ir.ContextIR{Properties: props}}
	for _, f := range in.Animation {
		out.Frames = append(out.Frames, ir.FrameIR{LocalIndex: f.TileID, DurationMS: f.Duration})
	}
	if in.ObjectGroup != nil {
		for _, wo := range in.ObjectGroup.Objects {
			o, err := fromWireObject(wo)
			if err != nil {
				return ir.TileIR{}, err
			}
			out.Objects = append(out.Objects, o)
		}
	}
	return out, nil
}

func fromWireObject(in wireObject) (ir.ObjectIR, error) {
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.ObjectIR{}, err
	}
	kind := "rect"
	switch {
	case in.Point:
		kind = "point"
	case in.Ellipse:
		kind = "ellipse"
	}
	return ir.ObjectIR{
		ID:       in.ID,
		Kind:     kind,
		Position: geom.Vec2{X: in.X, Y: in.Y},
		Size:     geom.Vec2{X: in.Width, Y: in.Height},
		Tag:      in.Name,
		Visible:  in.Visible,
		Context:  ir.ContextIR{Properties: props},
	}, nil
}

func fromWireLayer(in wireLayer, tileCount int) (ir.LayerIR, error) {
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.LayerIR{}, err
	}
	out := ir.LayerIR{ID: in.ID, Opacity: in.Opacity, Visible: in.Visible, Context: ir.ContextIR{Name: in.Name, Properties: props}}
	switch in.Type {
	case "tilelayer":
		out.Kind = ir.TileLayerKindIR
		tiles, err := decodeTileData(in, tileCount)
		if err != nil {
			return ir.LayerIR{}, err
		}
		out.TileLayer = &ir.TileLayerIR{Tiles: tiles}
	case "objectgroup":
		out.Kind = ir.ObjectLayerKindIR
		ol := &ir.ObjectLayerIR{}
		for _, wo := range in.Objects {
			o, err := fromWireObject(wo)
			if err != nil {
				return ir.LayerIR{}, err
			}
			ol.Objects = append(ol.Objects, o)
		}
		out.ObjectLayer = ol
	case "group":
		out.Kind = ir.GroupLayerKindIR
		gl := &ir.GroupLayerIR{}
		for _, wc := range in.Layers {
			c, err := fromWireLayer(wc, tileCount)
			if err != nil {
				return ir.LayerIR{}, err
			}
			gl.Children = append(gl.Children, c)
		}
		out.GroupLayer = gl
	default:
		return ir.LayerIR{}, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown layer type "+in.Type)
	}
	return out, nil
}

func decodeTileData(in wireLayer, count int) ([]int32, error) {
	if in.Encoding == "" || in.Encoding == "csv" {
		var ids []ident.TileID
		if err := json.Unmarshal(in.Data, &ids); err != nil {
			return nil, ir.NewParseError(ir.CorruptTileData, "", "data", err.Error())
		}
		if len(ids) != count {
			return nil, ir.NewParseError(ir.CorruptTileData, "", "data", "tile count mismatch")
		}
		out := make([]int32, len(ids))
		for i, v := range ids {
			out[i] = int32(v)
		}
		return out, nil
	}
	var payload string
	if err := json.Unmarshal(in.Data, &payload); err != nil {
		return nil, ir.NewParseError(ir.CorruptTileData, "", "data", err.Error())
	}
	compression, err := tiledata.ParseCompression(in.Compression)
	if err != nil {
		return nil, ir.NewParseError(ir.UnknownCompression, "", "compression", err.Error())
	}
	format := tiledata.Format{Encoding: tiledata.EncodingBase64, Compression: compression}
	decoded, err := tiledata.Decode(format, []byte(payload), count)
	if err != nil {
		return nil, ir.NewParseError(ir.CorruptTileData, "", "data", err.Error())
	}
	out := make([]int32, len(decoded))
	for i, v := range decoded {
		out[i] = int32(v)
	}
	return out, nil
}
