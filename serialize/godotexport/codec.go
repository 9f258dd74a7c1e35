// Package godotexport writes a Tactile map as a Godot 4 ".tscn" scene: a
// TileMapLayer node per tile layer and a Node2D per object or group layer,
// with tile data packed the way Godot's own
// editor exports it and attached-component values carried as node metadata.
// Unlike the Tiled dialects this is export-only — Tactile never reads
// ".tscn" back in (spec.md's Non-goals exclude round-tripping this format).
// Grounded on the original implementation's dedicated godot_tscn plugin
// (original_source/source/plugins/godot_tscn), which likewise only ever
// emits — and on the teacher's formatting Stringer methods (color.go,
// basic.go) for the primitive text rendering this package needs in a
// different dialect.
package godotexport

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/mapeditor/tactile-core/core/component"
	"github.com/mapeditor/tactile-core/core/model"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
)

const sceneTemplate = `[gd_scene load_steps={{.LoadSteps}} format=3]
{{range .ExtResources}}
[ext_resource type="Texture2D" path="{{.Path}}" id="{{.ID}}"]
{{- end}}
{{range .TileSets}}
[sub_resource type="TileSet" id="{{.ID}}"]
{{.Body}}
{{- end}}

[node name="{{.RootName}}" type="Node2D"]
{{range .Layers}}
[node name="{{.Name}}" type="{{.NodeType}}" parent="{{.Parent}}"]
{{.Body -}}
{{end}}
`

type extResource struct {
	Path string
	ID   int
}

type tileSetResource struct {
	ID   int
	Body string
}

type layerNode struct {
	Name     string
	NodeType string
	Parent   string
	Body     string
}

type sceneData struct {
	LoadSteps    int
	RootName     string
	ExtResources []extResource
	TileSets     []tileSetResource
	Layers       []layerNode
}

// Write renders m as a Godot scene to w. Tile layers become TileMapLayer
// nodes with a packed `tile_data` PackedInt32Array, object layers become
// plain Node2D nodes that list each object as a `# object` comment line
// (no child node is written per object), and
// attached component values are flattened into each node's metadata (the
// "__component__<def>.<attr>" convention is reused from the Tiled dialects
// since Godot has no native component concept either).
func Write(w io.Writer, m *model.Map, components *component.Index) error {
	in := ir.Lower(m, components)

	tmpl, err := template.New("scene").Parse(sceneTemplate)
	if err != nil {
		return err
	}

	data := sceneData{RootName: rootName(in.Context.Name)}

	resIDs := make(map[string]int)
	nextRes := 1
	for _, ts := range in.Tilesets {
		if ts.ImagePath == "" {
			continue
		}
		if _, ok := resIDs[ts.ImagePath]; ok {
			continue
		}
		resIDs[ts.ImagePath] = nextRes
		data.ExtResources = append(data.ExtResources, extResource{Path: pathOf(ts.ImagePath), ID: nextRes})
		nextRes++
	}

	tileSetID := nextRes
	nextRes++
	data.TileSets = append(data.TileSets, tileSetResource{ID: tileSetID, Body: buildTileSetBody(in.Tilesets, resIDs)})

	for _, l := range in.Layers {
		nodes := buildLayerNodes(l, ".", tileSetID)
		data.Layers = append(data.Layers, nodes...)
	}

	data.LoadSteps = len(data.ExtResources) + len(data.TileSets) + len(data.Layers) + 1

	return tmpl.Execute(w, data)
}

func rootName(mapName string) string {
	if mapName == "" {
		return "Map"
	}
	return sanitizeNodeName(mapName)
}

func sanitizeNodeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "Map"
	}
	return sb.String()
}

// pathOf returns the tileset's external resource path: the IR's image path,
// unchanged.
func pathOf(imagePath string) string { return imagePath }

func buildTileSetBody(tilesets []ir.TilesetIR, resIDs map[string]int) string {
	var sb strings.Builder
	for i, ts := range tilesets {
		resID, hasTexture := resIDs[ts.ImagePath]
		fmt.Fprintf(&sb, "sources/%d/name = \"%s\"\n", i, ts.Name)
		if hasTexture {
			fmt.Fprintf(&sb, "sources/%d/texture = ExtResource(\"%d\")\n", i, resID)
		}
		fmt.Fprintf(&sb, "sources/%d/texture_region_size = Vector2i(%d, %d)\n", i, ts.TileWidth, ts.TileHeight)
	}
	return sb.String()
}

func buildLayerNodes(l ir.LayerIR, parent string, tileSetID int) []layerNode {
	name := sanitizeNodeName(l.Context.Name)
	if name == "" {
		name = fmt.Sprintf("Layer%d", l.ID)
	}
	switch l.Kind {
	case ir.TileLayerKindIR:
		return []layerNode{buildTileLayerNode(l, name, parent, tileSetID)}
	case ir.ObjectLayerKindIR:
		return []layerNode{buildObjectLayerNode(l, name, parent)}
	case ir.GroupLayerKindIR:
		nodes := []layerNode{{Name: name, NodeType: "Node2D", Parent: parent, Body: metaBody(l.Context)}}
		childParent := name
		if parent != "." {
			childParent = parent + "/" + name
		}
		for _, child := range l.GroupLayer.Children {
			nodes = append(nodes, buildLayerNodes(child, childParent, tileSetID)...)
		}
		return nodes
	default:
		return nil
	}
}

func buildTileLayerNode(l ir.LayerIR, name, parent string, tileSetID int) layerNode {
	var sb strings.Builder
	sb.WriteString(metaBody(l.Context))
	fmt.Fprintf(&sb, "tile_set = SubResource(\"%d\")\n", tileSetID)
	fmt.Fprintf(&sb, "visible = %t\n", l.Visible)
	fmt.Fprintf(&sb, "modulate = Color(1, 1, 1, %g)\n", l.Opacity)
	sb.WriteString("tile_data = PackedInt32Array(")
	for i, t := range l.TileLayer.Tiles {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", t)
	}
	sb.WriteString(")\n")
	return layerNode{Name: name, NodeType: "TileMapLayer", Parent: parent, Body: sb.String()}
}

func buildObjectLayerNode(l ir.LayerIR, name, parent string) layerNode {
	var sb strings.Builder
	sb.WriteString(metaBody(l.Context))
	fmt.Fprintf(&sb, "visible = %t\n", l.Visible)
	for _, obj := range l.ObjectLayer.Objects {
		fmt.Fprintf(&sb, "# object %d (%s) at (%g, %g), tag=%q\n", obj.ID, obj.Kind, obj.Position.X, obj.Position.Y, obj.Tag)
	}
	return layerNode{Name: name, NodeType: "Node2D", Parent: parent, Body: sb.String()}
}

// metaBody renders a context's properties and degraded component values as
// `metadata/<key> = <value>` lines, sorted by key for deterministic output.
func metaBody(ctx ir.ContextIR) string {
	entries := make(map[string]string)
	for _, p := range ctx.Properties {
		entries["metadata/"+p.Name] = godotLiteral(p.Value)
	}
	for _, inst := range ctx.Components {
		for _, v := range inst.Values {
			key := fmt.Sprintf("metadata/__component__%s.%s", inst.Type, v.Name)
			entries[key] = godotLiteral(v.Value)
		}
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s = %s\n", k, entries[k])
	}
	return sb.String()
}

func godotLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case int32:
		return fmt.Sprintf("%d", val)
	case float32:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%q", fmt.Sprint(val))
	}
}
