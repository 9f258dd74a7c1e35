// Package nativeyaml implements Tactile's canonical on-disk dialect: a YAML
// document that round-trips the full document model losslessly, unlike the
// two Tiled dialects which tolerate unknown fields and degrade components to
// properties (spec.md §9). Grounded on the teacher's per-type
// UnmarshalXML/UnmarshalJSON methods (property.go, layer.go, tileset.go),
// translated to explicit encode/decode helpers over yaml.v3's yaml.Node.
package nativeyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
)

// wireProperty is one named, typed value. Value is a raw yaml.Node because
// its shape depends on Type, the same way the teacher's Property.Value
// decodes differently per DataType (property.go UnmarshalXML/jsonValue).
type wireProperty struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

func encodeProperty(p ir.PropertyIR) (wireProperty, error) {
	node, err := encodeValue(p.Type, p.Value)
	if err != nil {
		return wireProperty{}, err
	}
	return wireProperty{Name: p.Name, Type: p.Type, Value: node}, nil
}

func decodeProperty(w wireProperty) (ir.PropertyIR, error) {
	value, err := decodeValue(w.Type, &w.Value)
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

// encodeValue renders a typed property/attribute payload as a yaml.Node,
// dispatching on the kind tag exactly the way the teacher's
// Property.UnmarshalXML switches on p.Type to pick a decode target.
func encodeValue(kind string, raw any) (yaml.Node, error) {
	var node yaml.Node
	var err error
	switch kind {
	case "string", "file":
		s, _ := raw.(string)
		err = node.Encode(s)
	case "int":
		v, _ := raw.(int32)
		err = node.Encode(v)
	case "float":
		v, _ := raw.(float32)
		err = node.Encode(float64(v))
	case "bool":
		v, _ := raw.(bool)
		err = node.Encode(v)
	case "color":
		c, _ := raw.(attribute.Color)
		err = node.Encode(c.String())
	case "object":
		id, _ := raw.(ident.ObjectID)
		err = node.Encode(int32(id))
	default:
		return yaml.Node{}, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
	return node, err
}

func decodeValue(kind string, node *yaml.Node) (any, error) {
	switch kind {
	case "string", "file":
		var v string
		if err := node.Decode(&v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "int":
		var v int32
		if err := node.Decode(&v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return float32(v), nil
	case "bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "color":
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		c, err := attribute.ParseColor(s)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return c, nil
	case "object":
		var v int32
		if err := node.Decode(&v); err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return ident.ObjectID(v), nil
	default:
		return nil, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

// wireComponentInstance mirrors ir.ComponentInstanceIR.
type wireComponentInstance struct {
	Type   string         `yaml:"type"`
	Values []wireProperty `yaml:"values,omitempty"`
}

// wireContext is the flattened name/properties/components trio shared by
// every entity's wire record (map, layer, object, tileset, tile).
type wireContext struct {
	Name       string                  `yaml:"name,omitempty"`
	Properties []wireProperty          `yaml:"properties,omitempty"`
	Components []wireComponentInstance `yaml:"components,omitempty"`
}

func encodeContext(c ir.ContextIR) (wireContext, error) {
	props, err := encodeProperties(c.Properties)
	if err != nil {
		return wireContext{}, err
	}
	var comps []wireComponentInstance
	for _, inst := range c.Components {
		values, err := encodeProperties(inst.Values)
		if err != nil {
			return wireContext{}, err
		}
		comps = append(comps, wireComponentInstance{Type: inst.Type, Values: values})
	}
	return wireContext{Name: c.Name, Properties: props, Components: comps}, nil
}

func decodeContext(w wireContext) (ir.ContextIR, error) {
	props, err := decodeProperties(w.Properties)
	if err != nil {
		return ir.ContextIR{}, err
	}
	var comps []ir.ComponentInstanceIR
	for _, c := range w.Components {
		values, err := decodeProperties(c.Values)
		if err != nil {
			return ir.ContextIR{}, err
		}
		comps = append(comps, ir.ComponentInstanceIR{Type: c.Type, Values: values})
	}
	return ir.ContextIR{Name: w.Name, Properties: props, Components: comps}, nil
}
