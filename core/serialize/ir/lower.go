package ir

import (
	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/context"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// lowerer carries the document's component index so nested lowering
// helpers can resolve an attached instance's definition UUID back to its
// schema name — component instances reference their schema by name in
// the IR, since UUIDs are not stable across a save/load round trip
// (spec.md §8 "equal contexts/properties/components modulo UUID
// regeneration").
type lowerer struct {
	components *component.Index
}

// Lower converts a live Map and its document-local component index into
// MapIR, ready for a format codec to emit (spec.md §4.7 "Save is the
// inverse: registry → IR → emit").
func Lower(m *model.Map, components *component.Index) MapIR {
	lw := &lowerer{components: components}

	out := MapIR{
		Version:      CurrentVersion,
		TileWidth:    m.TileSize.Width,
		TileHeight:   m.TileSize.Height,
		RowCount:     m.Extent.Rows,
		ColumnCount:  m.Extent.Cols,
		NextLayerID:  int32(m.PeekNextLayerID()),
		NextObjectID: int32(m.PeekNextObjectID()),
		NextTileID:   int32(m.PeekNextTileID()),
		TileFormat:   m.TileFormat,
		Context:      lw.context(m.Ctx),
	}

	for _, def := range components.All() {
		out.ComponentDefs = append(out.ComponentDefs, lowerComponentDef(def))
	}
	for _, ts := range m.Tilesets() {
		out.Tilesets = append(out.Tilesets, lw.tileset(m, ts))
	}
	for _, child := range m.Tree.Root.Group.Children {
		out.Layers = append(out.Layers, lw.layer(child))
	}
	return out
}

func (lw *lowerer) context(ctx *context.Context) ContextIR {
	out := ContextIR{Name: ctx.Name}
	ctx.Properties.Range(func(name string, value attribute.Attribute) bool {
		out.Properties = append(out.Properties, lowerProperty(name, value))
		return true
	})
	for defUUID, inst := range ctx.Components {
		name := defUUID.String()
		if def, ok := lw.components.Get(defUUID); ok {
			name = def.Name
		}
		out.Components = append(out.Components, ComponentInstanceIR{
			Type:   name,
			Values: lowerOrderedProperties(inst.Values()),
		})
	}
	return out
}

func lowerOrderedProperties(p *attribute.OrderedProperties) []PropertyIR {
	var out []PropertyIR
	p.Range(func(name string, value attribute.Attribute) bool {
		out = append(out, lowerProperty(name, value))
		return true
	})
	return out
}

func lowerProperty(name string, value attribute.Attribute) PropertyIR {
	return PropertyIR{Name: name, Type: value.Kind().String(), Value: value.Raw()}
}

func lowerComponentDef(def *component.Definition) ComponentDefIR {
	out := ComponentDefIR{Name: def.Name}
	def.Attributes().Range(func(name string, value attribute.Attribute) bool {
		out.Attributes = append(out.Attributes, AttributeDefIR{
			Name:    name,
			Type:    value.Kind().String(),
			Default: value.Raw(),
		})
		return true
	})
	return out
}

func (lw *lowerer) tileset(m *model.Map, ts *model.Tileset) TilesetIR {
	at := m.Attachment(ts.UUID)
	out := TilesetIR{
		Name:        ts.Ctx.Name,
		FirstTileID: int32(at.FirstTileID),
		TileWidth:   ts.TileSize.Width,
		TileHeight:  ts.TileSize.Height,
		TileCount:   ts.TileCount(),
		ColumnCount: ts.ColumnCount,
		ImagePath:   ts.Texture.Path,
		ImageWidth:  ts.Texture.Size.Width,
		ImageHeight: ts.Texture.Size.Height,
		Context:     lw.context(ts.Ctx),
	}
	for index, tile := range ts.FancyTiles() {
		out.FancyTiles = append(out.FancyTiles, lw.tile(index, tile))
	}
	return out
}

func (lw *lowerer) tile(index ident.TileIndex, t *model.Tile) TileIR {
	out := TileIR{LocalIndex: int(index), Context: lw.context(t.Ctx)}
	if t.Animation != nil {
		for _, f := range t.Animation.Frames {
			out.Frames = append(out.Frames, FrameIR{
				LocalIndex: int(f.TileIndex),
				DurationMS: f.Duration.Milliseconds(),
			})
		}
	}
	for _, o := range t.Objects {
		out.Objects = append(out.Objects, lw.object(o))
	}
	return out
}

func (lw *lowerer) object(o *model.Object) ObjectIR {
	return ObjectIR{
		ID:       int32(o.ID),
		Kind:     o.Kind.String(),
		Position: o.Position,
		Size:     o.Size,
		Tag:      o.Tag,
		Visible:  o.Visible,
		Context:  lw.context(o.Ctx),
	}
}

func (lw *lowerer) layer(l *model.Layer) LayerIR {
	out := LayerIR{
		ID:      int32(l.ID),
		Opacity: l.Opacity,
		Visible: l.Visible,
		Context: lw.context(l.Ctx),
	}
	switch l.Kind {
	case model.LayerKindTile:
		out.Kind = TileLayerKindIR
		mat := l.Tile.Matrix
		extent := mat.Extent()
		tiles := make([]int32, 0, extent.Rows*extent.Cols)
		for y := 0; y < extent.Rows; y++ {
			for x := 0; x < extent.Cols; x++ {
				tiles = append(tiles, int32(mat.At(geom.Point{X: x, Y: y})))
			}
		}
		out.TileLayer = &TileLayerIR{Tiles: tiles}
	case model.LayerKindObject:
		ol := &ObjectLayerIR{}
		for _, o := range l.Object.Objects {
			ol.Objects = append(ol.Objects, lw.object(o))
		}
		out.Kind = ObjectLayerKindIR
		out.ObjectLayer = ol
	case model.LayerKindGroup:
		gl := &GroupLayerIR{}
		for _, c := range l.Group.Children {
			gl.Children = append(gl.Children, lw.layer(c))
		}
		out.Kind = GroupLayerKindIR
		out.GroupLayer = gl
	}
	return out
}
