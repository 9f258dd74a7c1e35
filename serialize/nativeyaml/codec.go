package nativeyaml

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
	"github.com/mapeditor/tactile-core/core/tiledata"
)

func vec2(x, y float32) geom.Vec2 { return geom.Vec2{X: x, Y: y} }

type wireAttributeDef struct {
	Name    string    `yaml:"name"`
	Type    string    `yaml:"type"`
	Default yaml.Node `yaml:"default"`
}

type wireComponentDef struct {
	Name       string             `yaml:"name"`
	Attributes []wireAttributeDef `yaml:"attributes,omitempty"`
}

type wireFrame struct {
	Tile       int   `yaml:"tile"`
	DurationMS int64 `yaml:"duration-ms"`
}

type wireObject struct {
	ID      int32   `yaml:"id"`
	Kind    string  `yaml:"kind"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Width   float32 `yaml:"width,omitempty"`
	Height  float32 `yaml:"height,omitempty"`
	Tag     string  `yaml:"tag,omitempty"`
	Visible bool    `yaml:"visible"`

	wireContext `yaml:",inline"`
}

type wireTile struct {
	Index   int          `yaml:"index"`
	Frames  []wireFrame  `yaml:"frames,omitempty"`
	Objects []wireObject `yaml:"objects,omitempty"`

	wireContext `yaml:",inline"`
}

type wireTileset struct {
	FirstTileID int32      `yaml:"first-tile-id"`
	TileWidth   int        `yaml:"tile-width"`
	TileHeight  int        `yaml:"tile-height"`
	TileCount   int        `yaml:"tile-count"`
	ColumnCount int        `yaml:"column-count"`
	Image       string     `yaml:"image"`
	ImageWidth  int        `yaml:"image-width"`
	ImageHeight int        `yaml:"image-height"`
	FancyTiles  []wireTile `yaml:"tiles,omitempty"`

	wireContext `yaml:",inline"`
}

type wireLayer struct {
	ID      int32       `yaml:"id"`
	Kind    string      `yaml:"kind"`
	Opacity float32     `yaml:"opacity"`
	Visible bool        `yaml:"visible"`
	Tiles   string      `yaml:"tiles,omitempty"`
	Objects []wireObject `yaml:"objects,omitempty"`
	Layers  []wireLayer `yaml:"layers,omitempty"`

	wireContext `yaml:",inline"`
}

type wireTileFormat struct {
	Encoding    string `yaml:"encoding"`
	Compression string `yaml:"compression"`
	ZlibLevel   int    `yaml:"zlib-level"`
	ZstdLevel   int    `yaml:"zstd-level"`
}

type wireMap struct {
	Version       int                `yaml:"version"`
	TileWidth     int                `yaml:"tile-width"`
	TileHeight    int                `yaml:"tile-height"`
	RowCount      int                `yaml:"row-count"`
	ColumnCount   int                `yaml:"column-count"`
	NextLayerID   int32              `yaml:"next-layer-id"`
	NextObjectID  int32              `yaml:"next-object-id"`
	NextTileID    int32              `yaml:"next-tile-id"`
	TileFormat    wireTileFormat     `yaml:"tile-format"`
	ComponentDefs []wireComponentDef `yaml:"component-definitions,omitempty"`
	Tilesets      []wireTileset      `yaml:"tilesets,omitempty"`
	Layers        []wireLayer        `yaml:"layers,omitempty"`

	wireContext `yaml:",inline"`
}

// Save writes m and its component definitions to w in Tactile's native YAML
// dialect (spec.md §4.7 "Save is the inverse: registry → IR → emit").
func Save(w io.Writer, m *model.Map, components *component.Index) error {
	doc, err := toWire(ir.Lower(m, components))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}

// Load parses a native YAML document from r into a live Map and its
// component-definition index.
func Load(r io.Reader) (*model.Map, *component.Index, error) {
	var doc wireMap
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, ir.NewParseError(ir.WrongType, "", "", err.Error())
	}
	in, err := fromWire(doc)
	if err != nil {
		return nil, nil, err
	}
	if in.Version != ir.CurrentVersion {
		return nil, nil, ir.NewParseError(ir.UnsupportedVersion, "", "version", "unsupported native map version")
	}
	return ir.Raise(in)
}

func toWire(in ir.MapIR) (wireMap, error) {
	ctx, err := encodeContext(in.Context)
	if err != nil {
		return wireMap{}, err
	}
	out := wireMap{
		Version:      in.Version,
		TileWidth:    in.TileWidth,
		TileHeight:   in.TileHeight,
		RowCount:     in.RowCount,
		ColumnCount:  in.ColumnCount,
		NextLayerID:  in.NextLayerID,
		NextObjectID: in.NextObjectID,
		NextTileID:   in.NextTileID,
		TileFormat: wireTileFormat{
			Encoding:    in.TileFormat.Encoding.String(),
			Compression: in.TileFormat.Compression.String(),
			ZlibLevel:   in.TileFormat.ZlibLevel,
			ZstdLevel:   in.TileFormat.ZstdLevel,
		},
		wireContext: ctx,
	}
	for _, def := range in.ComponentDefs {
		wd, err := toWireComponentDef(def)
		if err != nil {
			return wireMap{}, err
		}
		out.ComponentDefs = append(out.ComponentDefs, wd)
	}
	for _, ts := range in.Tilesets {
		wt, err := toWireTileset(ts)
		if err != nil {
			return wireMap{}, err
		}
		out.Tilesets = append(out.Tilesets, wt)
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

func toWireComponentDef(def ir.ComponentDefIR) (wireComponentDef, error) {
	out := wireComponentDef{Name: def.Name}
	for _, a := range def.Attributes {
		node, err := encodeValue(a.Type, a.Default)
		if err != nil {
			return wireComponentDef{}, err
		}
		out.Attributes = append(out.Attributes, wireAttributeDef{Name: a.Name, Type: a.Type, Default: node})
	}
	return out, nil
}

func toWireTileset(in ir.TilesetIR) (wireTileset, error) {
	ctx, err := encodeContext(in.Context)
	if err != nil {
		return wireTileset{}, err
	}
	out := wireTileset{
		FirstTileID: in.FirstTileID,
		TileWidth:   in.TileWidth,
		TileHeight:  in.TileHeight,
		TileCount:   in.TileCount,
		ColumnCount: in.ColumnCount,
		Image:       in.ImagePath,
		ImageWidth:  in.ImageWidth,
		ImageHeight: in.ImageHeight,
		wireContext: ctx,
	}
	for _, t := range in.FancyTiles {
		wt, err := toWireTile(t)
		if err != nil {
			return wireTileset{}, err
		}
		out.FancyTiles = append(out.FancyTiles, wt)
	}
	return out, nil
}

func toWireTile(in ir.TileIR) (wireTile, error) {
	ctx, err := encodeContext(in.Context)
	if err != nil {
		return wireTile{}, err
	}
	out := wireTile{Index: in.LocalIndex, wireContext: ctx}
	for _, f := range in.Frames {
		out.Frames = append(out.Frames, wireFrame{Tile: f.LocalIndex, DurationMS: f.DurationMS})
	}
	for _, o := range in.Objects {
		wo, err := toWireObject(o)
		if err != nil {
			return wireTile{}, err
		}
		out.Objects = append(out.Objects, wo)
	}
	return out, nil
}

func toWireObject(in ir.ObjectIR) (wireObject, error) {
	ctx, err := encodeContext(in.Context)
	if err != nil {
		return wireObject{}, err
	}
	return wireObject{
		ID: in.ID, Kind: in.Kind,
		X: in.Position.X, Y: in.Position.Y,
		Width: in.Size.X, Height: in.Size.Y,
		Tag: in.Tag, Visible: in.Visible,
		wireContext: ctx,
	}, nil
}

func toWireLayer(in ir.LayerIR, format tiledata.Format) (wireLayer, error) {
	ctx, err := encodeContext(in.Context)
	if err != nil {
		return wireLayer{}, err
	}
	out := wireLayer{ID: in.ID, Opacity: in.Opacity, Visible: in.Visible, wireContext: ctx}
	switch in.Kind {
	case ir.TileLayerKindIR:
		out.Kind = "tile"
		tiles := make([]ident.TileID, len(in.TileLayer.Tiles))
		for i, v := range in.TileLayer.Tiles {
			tiles[i] = ident.TileID(v)
		}
		payload, err := tiledata.Encode(format, tiles)
		if err != nil {
			return wireLayer{}, err
		}
		out.Tiles = string(payload)
	case ir.ObjectLayerKindIR:
		out.Kind = "object"
		for _, o := range in.ObjectLayer.Objects {
			wo, err := toWireObject(o)
			if err != nil {
				return wireLayer{}, err
			}
			out.Objects = append(out.Objects, wo)
		}
	case ir.GroupLayerKindIR:
		out.Kind = "group"
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
	ctx, err := decodeContext(in.wireContext)
	if err != nil {
		return ir.MapIR{}, err
	}
	encoding, err := tiledata.ParseEncoding(in.TileFormat.Encoding)
	if err != nil {
		return ir.MapIR{}, ir.NewParseError(ir.UnknownEncoding, "", "tile-format.encoding", err.Error())
	}
	compression, err := tiledata.ParseCompression(in.TileFormat.Compression)
	if err != nil {
		return ir.MapIR{}, ir.NewParseError(ir.UnknownCompression, "", "tile-format.compression", err.Error())
	}
	format := tiledata.Format{
		Encoding:    encoding,
		Compression: compression,
		ZlibLevel:   in.TileFormat.ZlibLevel,
		ZstdLevel:   in.TileFormat.ZstdLevel,
	}
	out := ir.MapIR{
		Version:      in.Version,
		TileWidth:    in.TileWidth,
		TileHeight:   in.TileHeight,
		RowCount:     in.RowCount,
		ColumnCount:  in.ColumnCount,
		NextLayerID:  in.NextLayerID,
		NextObjectID: in.NextObjectID,
		NextTileID:   in.NextTileID,
		TileFormat:   format,
		Context:      ctx,
	}
	for _, wd := range in.ComponentDefs {
		def, err := fromWireComponentDef(wd)
		if err != nil {
			return ir.MapIR{}, err
		}
		out.ComponentDefs = append(out.ComponentDefs, def)
	}
	for _, wt := range in.Tilesets {
		ts, err := fromWireTileset(wt)
		if err != nil {
			return ir.MapIR{}, err
		}
		out.Tilesets = append(out.Tilesets, ts)
	}
	count := in.RowCount * in.ColumnCount
	for _, wl := range in.Layers {
		l, err := fromWireLayer(wl, format, count)
		if err != nil {
			return ir.MapIR{}, err
		}
		out.Layers = append(out.Layers, l)
	}
	return out, nil
}

func fromWireComponentDef(in wireComponentDef) (ir.ComponentDefIR, error) {
	out := ir.ComponentDefIR{Name: in.Name}
	for _, a := range in.Attributes {
		value, err := decodeValue(a.Type, &a.Default)
		if err != nil {
			return ir.ComponentDefIR{}, err
		}
		out.Attributes = append(out.Attributes, ir.AttributeDefIR{Name: a.Name, Type: a.Type, Default: value})
	}
	return out, nil
}

func fromWireTileset(in wireTileset) (ir.TilesetIR, error) {
	ctx, err := decodeContext(in.wireContext)
	if err != nil {
		return ir.TilesetIR{}, err
	}
	out := ir.TilesetIR{
		Name:        ctx.Name,
		FirstTileID: in.FirstTileID,
		TileWidth:   in.TileWidth,
		TileHeight:  in.TileHeight,
		TileCount:   in.TileCount,
		ColumnCount: in.ColumnCount,
		ImagePath:   in.Image,
		ImageWidth:  in.ImageWidth,
		ImageHeight: in.ImageHeight,
		Context:     ctx,
	}
	for _, wt := range in.FancyTiles {
		t, err := fromWireTile(wt)
		if err != nil {
			return ir.TilesetIR{}, err
		}
		out.FancyTiles = append(out.FancyTiles, t)
	}
	return out, nil
}

func fromWireTile(in wireTile) (ir.TileIR, error) {
	ctx, err := decodeContext(in.wireContext)
	if err != nil {
		return ir.TileIR{}, err
	}
	out := ir.TileIR{LocalIndex: in.Index, Context: ctx}
	for _, f := range in.Frames {
		out.Frames = append(out.Frames, ir.FrameIR{LocalIndex: f.Tile, DurationMS: f.DurationMS})
	}
	for _, wo := range in.Objects {
		o, err := fromWireObject(wo)
		if err != nil {
			return ir.TileIR{}, err
		}
		out.Objects = append(out.Objects, o)
	}
	return out, nil
}

func fromWireObject(in wireObject) (ir.ObjectIR, error) {
	ctx, err := decodeContext(in.wireContext)
	if err != nil {
		return ir.ObjectIR{}, err
	}
	return ir.ObjectIR{
		ID:       in.ID,
		Kind:     in.Kind,
		Position: vec2(in.X, in.Y),
		Size:     vec2(in.Width, in.Height),
		Tag:      in.Tag,
		Visible:  in.Visible,
		Context:  ctx,
	}, nil
}

func fromWireLayer(in wireLayer, format tiledata.Format, tileCount int) (ir.LayerIR, error) {
	ctx, err := decodeContext(in.wireContext)
	if err != nil {
		return ir.LayerIR{}, err
	}
	out := ir.LayerIR{ID: in.ID, Opacity: in.Opacity, Visible: in.Visible, Context: ctx}
	switch in.Kind {
	case "tile":
		out.Kind = ir.TileLayerKindIR
		decoded, err := tiledata.Decode(format, []byte(in.Tiles), tileCount)
		if err != nil {
			return ir.LayerIR{}, ir.NewParseError(ir.CorruptTileData, "", "tiles", err.Error())
		}
		tiles := make([]int32, len(decoded))
		for i, v := range decoded {
			tiles[i] = int32(v)
		}
		out.TileLayer = &ir.TileLayerIR{Tiles: tiles}
	case "object":
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
			c, err := fromWireLayer(wc, format, tileCount)
			if err != nil {
				return ir.LayerIR{}, err
			}
			gl.Children = append(gl.Children, c)
		}
		out.GroupLayer = gl
	default:
		return ir.LayerIR{}, ir.NewParseError(ir.InvalidEnum, "", "kind", "unknown layer kind "+in.Kind)
	}
	return out, nil
}
