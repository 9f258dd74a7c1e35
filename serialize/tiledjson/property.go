// Package tiledjson reads and writes Tiled's ".tmj" JSON map format. It
// degrades attached components to flat properties on save (components are
// not part of the Tiled format) and never reconstructs them on load, per
// spec.md §9's documented lossy-dialect convention. Grounded on the
// teacher's map.go/layer.go/tileset.go/object.go/property.go field layout,
// decoded here in one pass into plain wire structs with encoding/json, and
// extended with the emit direction the teacher never implemented (it is
// read-only).
package tiledjson

import (
	"encoding/json"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/corelog"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
)

// wireProperty mirrors Tiled's {"name","type","value"} property object. As
// in the teacher's Property.jsonValue, Value's JSON shape depends on Type.
type wireProperty struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func tiledType(kind string) string {
	switch kind {
	case "int":
		return "int"
	case "float":
		return "float"
	case "bool":
		return "bool"
	case "color":
		return "color"
	case "file":
		return "file"
	case "object":
		return "object"
	default:
		return "string"
	}
}

func encodeProperty(p ir.PropertyIR) (wireProperty, error) {
	raw, err := encodeValue(p.Type, p.Value)
	if err != nil {
		return wireProperty{}, err
	}
	return wireProperty{Name: p.Name, Type: tiledType(p.Type), Value: raw}, nil
}

func decodeProperty(w wireProperty) (ir.PropertyIR, error) {
	value, err := decodeValue(w.Type, w.Value)
	if err != nil {
		return ir.PropertyIR{}, err
	}
	return ir.PropertyIR{Name: w.Name, Type: w.Type, Value: value}, nil
}

func encodeProperties(props []ir.PropertyIR) ([]wireProperty, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make([]wireProperty, len(props))
	for i, p := range props {
		w, err := encodeProperty(p)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func decodeProperties(wires []wireProperty) ([]ir.PropertyIR, error) {
	if len(wires) == 0 {
		return nil, nil
	}
	out := make([]ir.PropertyIR, len(wires))
	for i, w := range wires {
		p, err := decodeProperty(w)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// encodeValue renders a typed payload as the JSON Tiled itself would write
// for that property type (colors as "#AARRGGBB" strings, everything else
// as its natural JSON literal).
func encodeValue(kind string, raw any) (json.RawMessage, error) {
	switch kind {
	case "string", "file":
		s, _ := raw.(string)
		return json.Marshal(s)
	case "int":
		v, _ := raw.(int32)
		return json.Marshal(v)
	case "float":
		v, _ := raw.(float32)
		return json.Marshal(float64(v))
	case "bool":
		v, _ := raw.(bool)
		return json.Marshal(v)
	case "color":
		c, _ := raw.(attribute.Color)
		return json.Marshal(c.String())
	case "object":
		id, _ := raw.(ident.ObjectID)
		return json.Marshal(int32(id))
	default:
		return nil, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

func decodeValue(kind string, raw json.RawMessage) (any, error) {
	switch kind {
	case "string", "file":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "int":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return int32(v), nil
	case "float":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return float32(v), nil
	case "bool":
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "color":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		c, err := attribute.ParseColor(s)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return c, nil
	case "object":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return ident.ObjectID(int32(v)), nil
	default:
		return nil, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

// componentPropertyName is the degrade-to-property naming convention of
// spec.md §9: an attached component's values are flattened into properties
// named "__component__<definition-name>.<attribute-name>".
func componentPropertyName(defName, attrName string) string {
	return "__component__" + defName + "." + attrName
}

// degradeComponents flattens a context's attached components into extra
// wire properties, appended after its own properties. A component whose
// definition carries no attributes has nothing to flatten, so it is
// dropped with a recorded warning instead (spec.md §9), named by parent
// for the log line.
func degradeComponents(instances []ir.ComponentInstanceIR, parent string) ([]wireProperty, error) {
	var out []wireProperty
	for _, inst := range instances {
		if len(inst.Values) == 0 {
			corelog.DroppedComponent(inst.Type, parent)
			continue
		}
		for _, v := range inst.Values {
			w, err := encodeProperty(ir.PropertyIR{Name: componentPropertyName(inst.Type, v.Name), Type: v.Type, Value: v.Value})
			if err != nil {
				return nil, err
			}
			out = append(out, w)
		}
	}
	return out, nil
}
