package tiledxml

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/corelog"
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
	ID         int32
	Name       string
	Kind       string // "rect" | "ellipse" | "point"
	X, Y       float32
	Width      float32
	Height     float32
	Visible    bool
	Properties []wireProperty
}

type wireFrame struct {
	TileID   int
	Duration int64
}

type wireTile struct {
	ID         int
	Frames     []wireFrame
	Objects    []wireObject
	Properties []wireProperty
}

type wireTileset struct {
	FirstGID    int32
	Source      string
	Name        string
	TileWidth   int
	TileHeight  int
	TileCount   int
	Columns     int
	Image       string
	ImageWidth  int
	ImageHeight int
	Tiles       []wireTile
	Properties  []wireProperty
}

type wireLayer struct {
	ID          int32
	Type        string // "tilelayer" | "objectgroup" | "group"
	Name        string
	Opacity     float32
	Visible     bool
	Encoding    string
	Compression string
	Data        string
	Objects     []wireObject
	Layers      []wireLayer
	Properties  []wireProperty
}

type wireMap struct {
	Width, Height         int
	TileWidth, TileHeight int
	NextLayerID           int32
	NextObjectID          int32
	CompressionLevel      int
	Tilesets              []wireTileset
	Layers                []wireLayer
	Properties            []wireProperty
}

// Save writes m to w as a Tiled ".tmx" document. Attached components
// degrade to flat properties (spec.md §9); the component-definition
// registry is not written, since this dialect has no place to put it.
func Save(w io.Writer, m *model.Map, components *component.Index) error {
	doc, err := toWire(ir.Lower(m, components))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := doc.marshal(enc); err != nil {
		return err
	}
	return enc.Flush()
}

// Load parses a Tiled ".tmx" document into a live Map. The returned
// component.Index is always empty (spec.md §9).
func Load(r io.Reader) (*model.Map, *component.Index, error) {
	d := xml.NewDecoder(r)
	var doc wireMap
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, ir.NewParseError(ir.WrongType, "", "", err.Error())
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "map" {
			continue
		}
		if err := doc.unmarshal(d, start); err != nil {
			return nil, nil, err
		}
		break
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
		Width: in.ColumnCount, Height: in.RowCount,
		TileWidth: in.TileWidth, TileHeight: in.TileHeight,
		NextLayerID: in.NextLayerID, NextObjectID: in.NextObjectID,
		CompressionLevel: in.TileFormat.ZlibLevel,
		Properties:       append(props, degraded...),
	}
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
		FirstGID: firstGID, Name: in.Name,
		TileWidth: in.TileWidth, TileHeight: in.TileHeight,
		TileCount: in.TileCount, Columns: in.ColumnCount,
		Image: in.ImagePath, ImageWidth: in.ImageWidth, ImageHeight: in.ImageHeight,
		Properties: append(props, degraded...),
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
		out.Frames = append(out.Frames, wireFrame{TileID: f.LocalIndex, Duration: f.DurationMS})
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
	props, err := encodeProperties(in.Context.Properties)
	if err != nil {
		return wireObject{}, err
	}
	degraded, err := degradeComponents(in.Context.Components, "object:"+in.Tag)
	if err != nil {
		return wireObject{}, err
	}
	return wireObject{
		ID: in.ID, Name: in.Tag, Kind: in.Kind,
		X: in.Position.X, Y: in.Position.Y,
		Width: in.Size.X, Height: in.Size.Y,
		Visible:    in.Visible,
		Properties: append(props, degraded...),
	}, nil
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
		} else {
			out.Encoding = "csv"
		}
		out.Data = string(payload)
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

// marshal writes the <map> root element, mirroring the teacher's
// attribute naming in map.go's UnmarshalXML in reverse.
func (w wireMap) marshal(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "map"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "version"}, Value: formatVersion},
		{Name: xml.Name{Local: "tiledversion"}, Value: formatVersion},
		{Name: xml.Name{Local: "orientation"}, Value: orientation},
		{Name: xml.Name{Local: "renderorder"}, Value: renderOrder},
		{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(w.Width)},
		{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(w.Height)},
		{Name: xml.Name{Local: "tilewidth"}, Value: strconv.Itoa(w.TileWidth)},
		{Name: xml.Name{Local: "tileheight"}, Value: strconv.Itoa(w.TileHeight)},
		{Name: xml.Name{Local: "nextlayerid"}, Value: strconv.Itoa(int(w.NextLayerID))},
		{Name: xml.Name{Local: "nextobjectid"}, Value: strconv.Itoa(int(w.NextObjectID))},
		{Name: xml.Name{Local: "compressionlevel"}, Value: strconv.Itoa(w.CompressionLevel)},
	}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := marshalProperties(e, w.Properties); err != nil {
		return err
	}
	for _, ts := range w.Tilesets {
		if err := ts.marshal(e); err != nil {
			return err
		}
	}
	for _, l := range w.Layers {
		if err := l.marshal(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (w wireTileset) marshal(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "tileset"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "firstgid"}, Value: strconv.Itoa(int(w.FirstGID))},
		{Name: xml.Name{Local: "name"}, Value: w.Name},
		{Name: xml.Name{Local: "tilewidth"}, Value: strconv.Itoa(w.TileWidth)},
		{Name: xml.Name{Local: "tileheight"}, Value: strconv.Itoa(w.TileHeight)},
		{Name: xml.Name{Local: "tilecount"}, Value: strconv.Itoa(w.TileCount)},
		{Name: xml.Name{Local: "columns"}, Value: strconv.Itoa(w.Columns)},
	}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	imgStart := xml.StartElement{Name: xml.Name{Local: "image"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "source"}, Value: w.Image},
		{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(w.ImageWidth)},
		{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(w.ImageHeight)},
	}}
	if err := e.EncodeToken(imgStart); err != nil {
		return err
	}
	if err := e.EncodeToken(imgStart.End()); err != nil {
		return err
	}
	if err := marshalProperties(e, w.Properties); err != nil {
		return err
	}
	for _, t := range w.Tiles {
		if err := t.marshal(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (w wireTile) marshal(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "tile"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(w.ID)},
	}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := marshalProperties(e, w.Properties); err != nil {
		return err
	}
	if len(w.Frames) > 0 {
		animStart := xml.StartElement{Name: xml.Name{Local: "animation"}}
		if err := e.EncodeToken(animStart); err != nil {
			return err
		}
		for _, f := range w.Frames {
			frameStart := xml.StartElement{Name: xml.Name{Local: "frame"}, Attr: []xml.Attr{
				{Name: xml.Name{Local: "tileid"}, Value: strconv.Itoa(f.TileID)},
				{Name: xml.Name{Local: "duration"}, Value: strconv.FormatInt(f.Duration, 10)},
			}}
			if err := e.EncodeToken(frameStart); err != nil {
				return err
			}
			if err := e.EncodeToken(frameStart.End()); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(animStart.End()); err != nil {
			return err
		}
	}
	if len(w.Objects) > 0 {
		ogStart := xml.StartElement{Name: xml.Name{Local: "objectgroup"}}
		if err := e.EncodeToken(ogStart); err != nil {
			return err
		}
		for _, o := range w.Objects {
			if err := o.marshal(e); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(ogStart.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (w wireObject) marshal(e *xml.Encoder) error {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(int(w.ID))},
		{Name: xml.Name{Local: "name"}, Value: w.Name},
		{Name: xml.Name{Local: "x"}, Value: strconv.FormatFloat(float64(w.X), 'g', -1, 32)},
		{Name: xml.Name{Local: "y"}, Value: strconv.FormatFloat(float64(w.Y), 'g', -1, 32)},
	}
	if w.Kind == "rect" {
		attrs = append(attrs,
			xml.Attr{Name: xml.Name{Local: "width"}, Value: strconv.FormatFloat(float64(w.Width), 'g', -1, 32)},
			xml.Attr{Name: xml.Name{Local: "height"}, Value: strconv.FormatFloat(float64(w.Height), 'g', -1, 32)})
	}
	if !w.Visible {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "visible"}, Value: "0"})
	}
	start := xml.StartElement{Name: xml.Name{Local: "object"}, Attr: attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	switch w.Kind {
	case "ellipse":
		el := xml.StartElement{Name: xml.Name{Local: "ellipse"}}
		if err := e.EncodeToken(el); err != nil {
			return err
		}
		if err := e.EncodeToken(el.End()); err != nil {
			return err
		}
	case "point":
		el := xml.StartElement{Name: xml.Name{Local: "point"}}
		if err := e.EncodeToken(el); err != nil {
			return err
		}
		if err := e.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	if err := marshalProperties(e, w.Properties); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (w wireLayer) marshal(e *xml.Encoder) error {
	elemName := w.Type
	switch elemName {
	case "tilelayer":
		elemName = "layer"
	case "":
		elemName = "layer"
	}
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(int(w.ID))},
		{Name: xml.Name{Local: "name"}, Value: w.Name},
	}
	if w.Opacity != 1 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "opacity"}, Value: strconv.FormatFloat(float64(w.Opacity), 'g', -1, 32)})
	}
	if !w.Visible {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "visible"}, Value: "0"})
	}
	start := xml.StartElement{Name: xml.Name{Local: elemName}, Attr: attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := marshalProperties(e, w.Properties); err != nil {
		return err
	}
	switch w.Type {
	case "tilelayer":
		dataStart := xml.StartElement{Name: xml.Name{Local: "data"}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "encoding"}, Value: w.Encoding},
		}}
		if w.Compression != "" && w.Compression != "none" {
			dataStart.Attr = append(dataStart.Attr, xml.Attr{Name: xml.Name{Local: "compression"}, Value: w.Compression})
		}
		if err := e.EncodeToken(dataStart); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.CharData(w.Data)); err != nil {
			return err
		}
		if err := e.EncodeToken(dataStart.End()); err != nil {
			return err
		}
	case "objectgroup":
		for _, o := range w.Objects {
			if err := o.marshal(e); err != nil {
				return err
			}
		}
	case "group":
		for _, c := range w.Layers {
			if err := c.marshal(e); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(start.End())
}

// unmarshal reads the <map> element, grounded on Map.UnmarshalXML's
// attr-switch/token-loop structure (map.go).
func (w *wireMap) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	w.CompressionLevel = -1
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "width":
			w.Width, _ = strconv.Atoi(attr.Value)
		case "height":
			w.Height, _ = strconv.Atoi(attr.Value)
		case "tilewidth":
			w.TileWidth, _ = strconv.Atoi(attr.Value)
		case "tileheight":
			w.TileHeight, _ = strconv.Atoi(attr.Value)
		case "nextlayerid":
			v, _ := strconv.Atoi(attr.Value)
			w.NextLayerID = int32(v)
		case "nextobjectid":
			v, _ := strconv.Atoi(attr.Value)
			w.NextObjectID = int32(v)
		case "compressionlevel":
			if v, err := strconv.Atoi(attr.Value); err == nil {
				w.CompressionLevel = v
			}
		case "version", "tiledversion", "orientation", "renderorder", "infinite", "class":
			// recognized but not modeled; not an unknown-field warning
		default:
			corelog.UnknownAttr(attr.Name.Local, "map")
		}
	}
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == "map" {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch child.Name.Local {
		case "properties":
			props, err := unmarshalProperties(d, child)
			if err != nil {
				return err
			}
			w.Properties = props
		case "tileset":
			var ts wireTileset
			if err := ts.unmarshal(d, child); err != nil {
				return err
			}
			w.Tilesets = append(w.Tilesets, ts)
		case "layer", "objectgroup", "group":
			var l wireLayer
			if err := l.unmarshal(d, child); err != nil {
				return err
			}
			w.Layers = append(w.Layers, l)
		default:
			corelog.UnknownElem(child.Name.Local, "map")
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (w *wireTileset) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "firstgid":
			v, _ := strconv.Atoi(attr.Value)
			w.FirstGID = int32(v)
		case "source":
			w.Source = attr.Value
		case "name":
			w.Name = attr.Value
		case "tilewidth":
			w.TileWidth, _ = strconv.Atoi(attr.Value)
		case "tileheight":
			w.TileHeight, _ = strconv.Atoi(attr.Value)
		case "tilecount":
			w.TileCount, _ = strconv.Atoi(attr.Value)
		case "columns":
			w.Columns, _ = strconv.Atoi(attr.Value)
		default:
			corelog.UnknownAttr(attr.Name.Local, "tileset")
		}
	}
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch child.Name.Local {
		case "image":
			for _, attr := range child.Attr {
				switch attr.Name.Local {
				case "source":
					w.Image = attr.Value
				case "width":
					w.ImageWidth, _ = strconv.Atoi(attr.Value)
				case "height":
					w.ImageHeight, _ = strconv.Atoi(attr.Value)
				}
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case "properties":
			props, err := unmarshalProperties(d, child)
			if err != nil {
				return err
			}
			w.Properties = props
		case "tile":
			var t wireTile
			if err := t.unmarshal(d, child); err != nil {
				return err
			}
			w.Tiles = append(w.Tiles, t)
		default:
			corelog.UnknownElem(child.Name.Local, "tileset")
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (w *wireTile) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "id" {
			w.ID, _ = strconv.Atoi(attr.Value)
		} else {
			corelog.UnknownAttr(attr.Name.Local, "tile")
		}
	}
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch child.Name.Local {
		case "properties":
			props, err := unmarshalProperties(d, child)
			if err != nil {
				return err
			}
			w.Properties = props
		case "animation":
			if err := w.unmarshalAnimation(d, child); err != nil {
				return err
			}
		case "objectgroup":
			if err := w.unmarshalObjectGroup(d, child); err != nil {
				return err
			}
		default:
			corelog.UnknownElem(child.Name.Local, "tile")
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (w *wireTile) unmarshalAnimation(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if child.Name.Local != "frame" {
			corelog.UnknownElem(child.Name.Local, "animation")
			if err := d.Skip(); err != nil {
				return err
			}
			continue
		}
		var f wireFrame
		for _, attr := range child.Attr {
			switch attr.Name.Local {
			case "tileid":
				f.TileID, _ = strconv.Atoi(attr.Value)
			case "duration":
				f.Duration, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		}
		if err := d.Skip(); err != nil {
			return err
		}
		w.Frames = append(w.Frames, f)
	}
}

func (w *wireTile) unmarshalObjectGroup(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if child.Name.Local != "object" {
			corelog.UnknownElem(child.Name.Local, "objectgroup")
			if err := d.Skip(); err != nil {
				return err
			}
			continue
		}
		var o wireObject
		if err := o.unmarshal(d, child); err != nil {
			return err
		}
		w.Objects = append(w.Objects, o)
	}
}

func (w *wireObject) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	w.Visible = true
	w.Kind = "rect"
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			v, _ := strconv.Atoi(attr.Value)
			w.ID = int32(v)
		case "name":
			w.Name = attr.Value
		case "x":
			v, _ := strconv.ParseFloat(attr.Value, 32)
			w.X = float32(v)
		case "y":
			v, _ := strconv.ParseFloat(attr.Value, 32)
			w.Y = float32(v)
		case "width":
			v, _ := strconv.ParseFloat(attr.Value, 32)
			w.Width = float32(v)
		case "height":
			v, _ := strconv.ParseFloat(attr.Value, 32)
			w.Height = float32(v)
		case "visible":
			w.Visible = attr.Value != "0"
		default:
			corelog.UnknownAttr(attr.Name.Local, "object")
		}
	}
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch child.Name.Local {
		case "ellipse":
			w.Kind = "ellipse"
			if err := d.Skip(); err != nil {
				return err
			}
		case "point":
			w.Kind = "point"
			if err := d.Skip(); err != nil {
				return err
			}
		case "properties":
			props, err := unmarshalProperties(d, child)
			if err != nil {
				return err
			}
			w.Properties = props
		default:
			corelog.UnknownElem(child.Name.Local, "object")
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (w *wireLayer) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	w.Visible = true
	w.Opacity = 1
	switch start.Name.Local {
	case "layer":
		w.Type = "tilelayer"
	case "objectgroup":
		w.Type = "objectgroup"
	case "group":
		w.Type = "group"
	}
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			v, _ := strconv.Atoi(attr.Value)
			w.ID = int32(v)
		case "name":
			w.Name = attr.Value
		case "opacity":
			v, _ := strconv.ParseFloat(attr.Value, 32)
			w.Opacity = float32(v)
		case "visible":
			w.Visible = attr.Value != "0"
		case "width", "height":
			// derived from the owning map; not modeled per-layer
		default:
			corelog.UnknownAttr(attr.Name.Local, start.Name.Local)
		}
	}
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch child.Name.Local {
		case "properties":
			props, err := unmarshalProperties(d, child)
			if err != nil {
				return err
			}
			w.Properties = props
		case "data":
			for _, attr := range child.Attr {
				switch attr.Name.Local {
				case "encoding":
					w.Encoding = attr.Value
				case "compression":
					w.Compression = attr.Value
				}
			}
			var payload string
			if err := d.DecodeElement(&payload, &child); err != nil {
				return err
			}
			w.Data = payload
		case "object":
			var o wireObject
			if err := o.unmarshal(d, child); err != nil {
				return err
			}
			w.Objects = append(w.Objects, o)
		case "layer", "objectgroup", "group":
			var l wireLayer
			if err := l.unmarshal(d, child); err != nil {
				return err
			}
			w.Layers = append(w.Layers, l)
		default:
			corelog.UnknownElem(child.Name.Local, start.Name.Local)
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
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
	for _, f := range in.Frames {
		out.Frames = append(out.Frames, ir.FrameIR{LocalIndex: f.TileID, DurationMS: f.Duration})
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
	props, err := decodeProperties(in.Properties)
	if err != nil {
		return ir.ObjectIR{}, err
	}
	kind := in.Kind
	if kind == "" {
		kind = "rect"
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
	compression, err := tiledata.ParseCompression(in.Compression)
	if err != nil {
		return nil, ir.NewParseError(ir.UnknownCompression, "", "compression", err.Error())
	}
	encoding, err := tiledata.ParseEncoding(in.Encoding)
	if err != nil {
		return nil, ir.NewParseError(ir.UnknownEncoding, "", "encoding", err.Error())
	}
	format := tiledata.Format{Encoding: encoding, Compression: compression}
	decoded, err := tiledata.Decode(format, []byte(in.Data), count)
	if err != nil {
		return nil, ir.NewParseError(ir.CorruptTileData, "", "data", err.Error())
	}
	out := make([]int32, len(decoded))
	for i, v := range decoded {
		out[i] = int32(v)
	}
	return out, nil
}
