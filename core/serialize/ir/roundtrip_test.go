package ir

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/model"
)

// buildSampleMap constructs a small map exercising every layer kind, a
// tileset with a fancy tile, and an attached component, for the
// Lower/Raise round-trip equivalence in spec.md §8 ("equal contexts/
// properties/components modulo UUID regeneration").
func buildSampleMap(t *testing.T) (*model.Map, *component.Index) {
	t.Helper()

	m := model.New(geom.Size{Width: 16, Height: 16}, geom.Extent{Rows: 2, Cols: 2})
	m.Ctx.Name = "sample"
	m.Ctx.Properties.Set("author", attribute.String("tester"))

	components := component.NewIndex()
	def := component.NewDefinition("Health")
	def.AddAttribute("max", attribute.Int32(100))
	components.Add(def)

	ts := model.NewTileset(model.TextureRef{Path: "tiles.png", Size: geom.Size{Width: 32, Height: 32}}, geom.Size{Width: 16, Height: 16}, 2, 2)
	ts.Ctx.Name = "terrain"
	tile := ts.Tile(0)
	tile.Ctx.Properties.Set("walkable", attribute.Bool(true))
	at := m.AttachTileset(ts, true)
	_ = at

	tileLayer := m.AddTileLayer(nil)
	tileLayer.Ctx.Name = "ground"
	tileLayer.Tile.Matrix.Set(geom.Point{X: 0, Y: 0}, at.FirstTileID)
	inst := tileLayer.Ctx.Attach(def)
	inst.Set("max", attribute.Int32(50))

	objLayer := m.AddObjectLayer(nil)
	objLayer.Ctx.Name = "entities"
	obj := model.NewObject(m.NextObjectID(), model.ObjectRect, geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: 3, Y: 4})
	obj.Tag = "spawn"
	objLayer.Object.Objects = append(objLayer.Object.Objects, obj)

	group := m.AddGroupLayer(nil)
	group.Ctx.Name = "group"
	nested := m.AddTileLayer(group)
	nested.Ctx.Name = "nested"

	return m, components
}

func TestLowerRaiseRoundTrip(t *testing.T) {
	m, components := buildSampleMap(t)

	in := Lower(m, components)
	out, outComponents, err := Raise(in)
	if err != nil {
		t.Fatalf("Raise: %v", err)
	}

	if !out.Ctx.Equal(m.Ctx) {
		t.Fatalf("map context not preserved across round trip")
	}
	if out.Extent != m.Extent || out.TileSize != m.TileSize {
		t.Fatalf("extent/tile size not preserved: got %+v/%+v, want %+v/%+v", out.Extent, out.TileSize, m.Extent, m.TileSize)
	}
	if out.PeekNextObjectID() != m.PeekNextObjectID() {
		t.Fatalf("next object id not preserved: got %d, want %d", out.PeekNextObjectID(), m.PeekNextObjectID())
	}
	if out.PeekNextTileID() != m.PeekNextTileID() {
		t.Fatalf("next tile id not preserved: got %d, want %d", out.PeekNextTileID(), m.PeekNextTileID())
	}

	if len(outComponents.All()) != 1 || outComponents.All()[0].Name != "Health" {
		t.Fatalf("component definitions not preserved: %+v", outComponents.All())
	}

	tilesets := out.Tilesets()
	if len(tilesets) != 1 || tilesets[0].Ctx.Name != "terrain" {
		t.Fatalf("tileset not preserved: %+v", tilesets)
	}
	rtTile, ok := tilesets[0].TryTile(0)
	if !ok {
		t.Fatalf("fancy tile not preserved")
	}
	if v, _ := rtTile.Ctx.Properties.Get("walkable"); !v.ExpectBool() {
		t.Fatalf("fancy tile property not preserved")
	}

	var groundLayer, entitiesLayer, groupLayer *model.Layer
	for _, l := range out.Tree.Root.Group.Children {
		switch l.Ctx.Name {
		case "ground":
			groundLayer = l
		case "entities":
			entitiesLayer = l
		case "group":
			groupLayer = l
		}
	}
	if groundLayer == nil || groundLayer.Kind != model.LayerKindTile {
		t.Fatalf("tile layer not preserved")
	}
	if got := groundLayer.Tile.Matrix.At(geom.Point{X: 0, Y: 0}); got != ident.TileID(1) {
		t.Fatalf("tile layer contents not preserved: got %d, want 1", got)
	}
	if len(groundLayer.Ctx.Components) != 1 {
		t.Fatalf("attached component not preserved on layer context")
	}

	if entitiesLayer == nil || entitiesLayer.Kind != model.LayerKindObject {
		t.Fatalf("object layer not preserved")
	}
	if len(entitiesLayer.Object.Objects) != 1 || entitiesLayer.Object.Objects[0].Tag != "spawn" {
		t.Fatalf("object layer contents not preserved")
	}

	if groupLayer == nil || groupLayer.Kind != model.LayerKindGroup {
		t.Fatalf("group layer not preserved")
	}
	if len(groupLayer.Group.Children) != 1 || groupLayer.Group.Children[0].Ctx.Name != "nested" {
		t.Fatalf("nested group child not preserved")
	}
}

func TestLowerAssignsComponentInstanceByName(t *testing.T) {
	m, components := buildSampleMap(t)

	in := Lower(m, components)

	var groundLayerIR *LayerIR
	for i := range in.Layers {
		if in.Layers[i].Context.Name == "ground" {
			groundLayerIR = &in.Layers[i]
		}
	}
	if groundLayerIR == nil {
		t.Fatalf("ground layer missing from IR")
	}
	if len(groundLayerIR.Context.Components) != 1 || groundLayerIR.Context.Components[0].Type != "Health" {
		t.Fatalf("component instance should reference its definition by name: got %+v", groundLayerIR.Context.Components)
	}
}
