package nativeyaml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/model"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
)

func buildMap(t *testing.T) (*model.Map, *component.Index) {
	t.Helper()

	m := model.New(geom.Size{Width: 8, Height: 8}, geom.Extent{Rows: 2, Cols: 3})
	m.Ctx.Name = "demo"
	m.Ctx.Properties.Set("note", attribute.String("hello"))

	components := component.NewIndex()
	def := component.NewDefinition("Tag")
	def.AddAttribute("label", attribute.String("default"))
	components.Add(def)

	ts := model.NewTileset(model.TextureRef{Path: "tiles.png", Size: geom.Size{Width: 8, Height: 8}}, geom.Size{Width: 8, Height: 8}, 1, 2)
	m.AttachTileset(ts, true)

	layer := m.AddTileLayer(nil)
	layer.Ctx.Name = "base"
	layer.Tile.Matrix.Set(geom.Point{X: 1, Y: 0}, 1)
	layer.Tile.Matrix.Set(geom.Point{X: 2, Y: 1}, 2)
	inst := layer.Ctx.Attach(def)
	inst.Set("label", attribute.String("custom"))

	objLayer := m.AddObjectLayer(nil)
	objLayer.Ctx.Name = "markers"
	obj := model.NewObject(m.NextObjectID(), model.ObjectPoint, geom.Vec2{X: 4, Y: 5}, geom.Vec2{})
	objLayer.Object.Objects = append(objLayer.Object.Objects, obj)

	return m, components
}

func TestSaveLoadRoundTripByteEqualIR(t *testing.T) {
	m, components := buildMap(t)
	want := ir.Lower(m, components)

	var buf bytes.Buffer
	if err := Save(&buf, m, components); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, loadedComponents, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := ir.Lower(loaded, loadedComponents)

	if got.TileWidth != want.TileWidth || got.TileHeight != want.TileHeight {
		t.Fatalf("tile size not preserved: got %dx%d, want %dx%d", got.TileWidth, got.TileHeight, want.TileWidth, want.TileHeight)
	}
	if got.RowCount != want.RowCount || got.ColumnCount != want.ColumnCount {
		t.Fatalf("extent not preserved: got %dx%d, want %dx%d", got.RowCount, got.ColumnCount, want.RowCount, want.ColumnCount)
	}
	if !loaded.Ctx.Equal(m.Ctx) {
		t.Fatalf("map context not preserved across save/load")
	}
	if len(got.Layers) != len(want.Layers) {
		t.Fatalf("layer count not preserved: got %d, want %d", len(got.Layers), len(want.Layers))
	}
	if got.Layers[0].TileLayer == nil || !equalInt32s(got.Layers[0].TileLayer.Tiles, want.Layers[0].TileLayer.Tiles) {
		t.Fatalf("tile layer contents not preserved: got %v, want %v", got.Layers[0].TileLayer, want.Layers[0].TileLayer)
	}
	if got.NextTileID != want.NextTileID {
		t.Fatalf("next tile id not preserved: got %d, want %d", got.NextTileID, want.NextTileID)
	}
	if len(got.Layers[0].Context.Components) != 1 {
		t.Fatalf("attached component not preserved on tile layer")
	}
	if len(got.Layers[1].ObjectLayer.Objects) != 1 {
		t.Fatalf("object layer contents not preserved")
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	malformed := strings.NewReader("version: 999\ntile-width: 8\ntile-height: 8\nrow-count: 1\ncolumn-count: 1\nnext-layer-id: 1\nnext-object-id: 1\ntile-format:\n  encoding: plain\n  compression: none\n")

	_, _, err := Load(malformed)
	if err == nil {
		t.Fatalf("Load: expected an error for an unsupported version")
	}
	pe, ok := err.(*ir.ParseError)
	if !ok {
		t.Fatalf("Load: error type = %T, want *ir.ParseError", err)
	}
	if pe.Kind != ir.UnsupportedVersion {
		t.Fatalf("Load: ParseErrorKind = %v, want UnsupportedVersion", pe.Kind)
	}
}

func equalInt32s(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
