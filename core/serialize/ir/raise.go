package ir

import (
	"time"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// raiser carries a name->definition lookup built while registering
// component definitions, since attached instances reference their schema
// by name in the IR rather than by UUID.
type raiser struct {
	defsByName map[string]*component.Definition
}

// Raise reconstructs a live Map and its component-definition index from a
// validated MapIR (spec.md §4.7 "Pipeline": "parse to IR → validate →
// lower to registry" — Raise is that last step, named to mirror Lower).
func Raise(in MapIR) (*model.Map, *component.Index, error) {
	components := component.NewIndex()
	r := &raiser{defsByName: make(map[string]*component.Definition)}

	for _, defIR := range in.ComponentDefs {
		def := component.NewDefinition(defIR.Name)
		for _, a := range defIR.Attributes {
			attr, err := attributeFromIR(a.Type, a.Default)
			if err != nil {
				return nil, nil, err
			}
			def.AddAttribute(a.Name, attr)
		}
		components.Add(def)
		r.defsByName[defIR.Name] = def
	}

	m := model.New(geom.Size{Width: in.TileWidth, Height: in.TileHeight}, geom.Extent{Rows: in.RowCount, Cols: in.ColumnCount})
	m.SetNextLayerID(ident.LayerID(in.NextLayerID))
	m.SetNextObjectID(ident.ObjectID(in.NextObjectID))
	m.TileFormat = in.TileFormat
	if err := r.applyContext(m.Ctx, in.Context); err != nil {
		return nil, nil, err
	}

	for _, tsIR := range in.Tilesets {
		ts, embedded, err := r.raiseTileset(tsIR)
		if err != nil {
			return nil, nil, err
		}
		at := m.AttachTileset(ts, embedded)
		at.FirstTileID = ident.TileID(tsIR.FirstTileID)
		at.LastTileID = ident.TileID(tsIR.FirstTileID) + ident.TileID(ts.TileCount()) - 1
	}
	// AttachTileset advances nextTileID off each tileset's freshly assigned
	// range above; the persisted counter is authoritative once every
	// tileset from in.Tilesets has been reattached, since the original
	// ranges may not have been contiguous (an earlier detach can leave a
	// gap that the counter must still account for).
	m.SetNextTileID(ident.TileID(in.NextTileID))

	for _, layerIR := range in.Layers {
		layer, err := r.raiseLayer(layerIR, in.RowCount, in.ColumnCount)
		if err != nil {
			return nil, nil, err
		}
		m.Tree.Add(nil, layer)
	}

	return m, components, nil
}

func attributeFromIR(kind string, value any) (attribute.Attribute, error) {
	switch kind {
	case "string":
		v, _ := value.(string)
		return attribute.String(v), nil
	case "int":
		v, _ := value.(int32)
		return attribute.Int32(v), nil
	case "float":
		v, _ := value.(float32)
		return attribute.Float32(v), nil
	case "bool":
		v, _ := value.(bool)
		return attribute.Bool(v), nil
	case "color":
		v, _ := value.(attribute.Color)
		return attribute.ColorAttr(v), nil
	case "file":
		v, _ := value.(string)
		return attribute.FilePath(v), nil
	case "object":
		v, _ := value.(ident.ObjectID)
		return attribute.ObjectRef(v), nil
	default:
		return attribute.Attribute{}, NewParseError(InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

func (r *raiser) applyContext(ctx *context.Context, in ContextIR) error {
	ctx.Name = in.Name
	for _, p := range in.Properties {
		attr, err := attributeFromIR(p.Type, p.Value)
		if err != nil {
			return err
		}
		ctx.Properties.Set(p.Name, attr)
	}
	for _, c := range in.Components {
		def, ok := r.defsByName[c.Type]
		if !ok {
			return NewParseError(MissingField, "", "component", "no definition named "+c.Type)
		}
		inst := ctx.Attach(def)
		for _, v := range c.Values {
			attr, err := attributeFromIR(v.Type, v.Value)
			if err != nil {
				return err
			}
			inst.Set(v.Name, attr)
		}
	}
	return nil
}

func (r *raiser) raiseTileset(in TilesetIR) (*model.Tileset, bool, error) {
	texture := model.TextureRef{Path: in.ImagePath, Size: geom.Size{Width: in.ImageWidth, Height: in.ImageHeight}}
	ts := model.NewTileset(texture, geom.Size{Width: in.TileWidth, Height: in.TileHeight}, in.TileCount/max1(in.ColumnCount), in.ColumnCount)
	if err := r.applyContext(ts.Ctx, in.Context); err != nil {
		return nil, false, err
	}
	for _, tileIR := range in.FancyTiles {
		index := ident.TileIndex(tileIR.LocalIndex)
		tile := ts.Tile(index)
		if err := r.applyContext(tile.Ctx, tileIR.Context); err != nil {
			return nil, false, err
		}
		now := time.Time{}
		for i, f := range tileIR.Frames {
			if err := tile.AddFrame(i, model.Frame{TileIndex: ident.TileIndex(f.LocalIndex), Duration: time.Duration(f.DurationMS) * time.Millisecond}, now); err != nil {
				return nil, false, err
			}
		}
		for _, objIR := range tileIR.Objects {
			obj, err := r.raiseObject(objIR)
			if err != nil {
				return nil, false, err
			}
			tile.Objects = append(tile.Objects, obj)
		}
	}
	return ts, in.ExternalPath == "", nil
}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (r *raiser) raiseObject(in ObjectIR) (*model.Object, error) {
	kind, err := objectKindFromIR(in.Kind)
	if err != nil {
		return nil, err
	}
	obj := model.NewObject(ident.ObjectID(in.ID), kind, in.Position, in.Size)
	obj.Tag = in.Tag
	obj.Visible = in.Visible
	if err := r.applyContext(obj.Ctx, in.Context); err != nil {
		return nil, err
	}
	return obj, nil
}

func objectKindFromIR(kind string) (model.ObjectKind, error) {
	switch kind {
	case "rect":
		return model.ObjectRect, nil
	case "ellipse":
		return model.ObjectEllipse, nil
	case "point":
		return model.ObjectPoint, nil
	default:
		return 0, NewParseError(InvalidEnum, "", "kind", "unknown object kind "+kind)
	}
}

func (r *raiser) raiseLayer(in LayerIR, rows, cols int) (*model.Layer, error) {
	var layer *model.Layer
	switch in.Kind {
	case TileLayerKindIR:
		layer = model.NewTileLayer(ident.LayerID(in.ID), geom.Extent{Rows: rows, Cols: cols})
		if in.TileLayer != nil {
			mat := layer.Tile.Matrix
			i := 0
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x++ {
					if i < len(in.TileLayer.Tiles) {
						mat.Set(geom.Point{X: x, Y: y}, ident.TileID(in.TileLayer.Tiles[i]))
					}
					i++
				}
			}
		}
	case ObjectLayerKindIR:
		layer = model.NewObjectLayer(ident.LayerID(in.ID))
		if in.ObjectLayer != nil {
			for _, objIR := range in.ObjectLayer.Objects {
				obj, err := r.raiseObject(objIR)
				if err != nil {
					return nil, err
				}
				layer.Object.Objects = append(layer.Object.Objects, obj)
			}
		}
	case GroupLayerKindIR:
		layer = model.NewGroupLayer(ident.LayerID(in.ID))
		if in.GroupLayer != nil {
			for _, childIR := range in.GroupLayer.Children {
				child, err := r.raiseLayer(childIR, rows, cols)
				if err != nil {
					return nil, err
				}
				layer.Group.Children = append(layer.Group.Children, child)
			}
		}
	default:
		return nil, NewParseError(InvalidEnum, "", "layer-kind", "unknown layer kind")
	}
	layer.ID = ident.LayerID(in.ID)
	layer.Opacity = in.Opacity
	layer.Visible = in.Visible
	if err := r.applyContext(layer.Ctx, in.Context); err != nil {
		return nil, err
	}
	return layer, nil
}
