// Package tiledxml reads and writes Tiled's ".tmx" XML map format.
// Grounded directly on the teacher's per-type UnmarshalXML methods
// (map.go, layer.go, tileset.go, object.go, property.go), extended with
// the matching MarshalXML direction the teacher never implemented (it
// is read-only). Like tiledjson, attached components degrade to flat
// properties on save and never reconstruct on load (spec.md §9).
package tiledxml

import (
	"encoding/xml"
	"strconv"

	"github.com/mapeditor/tactile-core/core/attribute"
	"github.com/mapeditor/tactile-core/core/corelog"
	"github.com/mapeditor/tactile-core/core/ident"
	"github.com/mapeditor/tactile-core/core/serialize/ir"
)

// wireProperty mirrors a <property name="..." type="..." value="..."/>
// element, the same flat attribute shape the teacher's
// Property.UnmarshalXML reads (property.go).
type wireProperty struct {
	Name  string
	Type  string
	Value string
}

func tiledType(kind string) string {
	switch kind {
	case "int", "float", "bool", "color", "file", "object":
		return kind
	default:
		return "string"
	}
}

func encodeProperty(p ir.PropertyIR) (wireProperty, error) {
	s, err := encodeValue(p.Type, p.Value)
	if err != nil {
		return wireProperty{}, err
	}
	return wireProperty{Name: p.Name, Type: tiledType(p.Type), Value: s}, nil
}

func decodeProperty(w wireProperty) (ir.PropertyIR, error) {
	kind := w.Type
	if kind == "" {
		kind = "string"
	}
	value, err := decodeValue(kind, w.Value)
	if err != nil {
		return ir.PropertyIR{}, err
	}
	return ir.PropertyIR{Name: w.Name, Type: kind, Value: value}, nil
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

// encodeValue renders a typed payload as the text form Tiled itself
// writes for a property attribute value (property.go's reverse: strconv
// formatting per DataType, colors as "#AARRGGBB").
func encodeValue(kind string, raw any) (string, error) {
	switch kind {
	case "string", "file":
		s, _ := raw.(string)
		return s, nil
	case "int":
		v, _ := raw.(int32)
		return strconv.Itoa(int(v)), nil
	case "float":
		v, _ := raw.(float32)
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case "bool":
		v, _ := raw.(bool)
		return strconv.FormatBool(v), nil
	case "color":
		c, _ := raw.(attribute.Color)
		return c.String(), nil
	case "object":
		id, _ := raw.(ident.ObjectID)
		return strconv.Itoa(int(id)), nil
	default:
		return "", ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

// decodeValue parses a property's text attribute value per its type tag,
// mirroring the teacher's switch on p.Type in Property.UnmarshalXML.
func decodeValue(kind, raw string) (any, error) {
	switch kind {
	case "string", "file":
		return raw, nil
	case "int":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return int32(v), nil
	case "float":
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return float32(v), nil
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return v, nil
	case "color":
		c, err := attribute.ParseColor(raw)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return c, nil
	case "object":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ir.NewParseError(ir.WrongType, "", "value", err.Error())
		}
		return ident.ObjectID(v), nil
	default:
		return nil, ir.NewParseError(ir.InvalidEnum, "", "type", "unknown attribute type "+kind)
	}
}

// componentPropertyName is the same degrade-to-property naming
// convention tiledjson uses (spec.md §9).
func componentPropertyName(defName, attrName string) string {
	return "__component__" + defName + "." + attrName
}

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

// marshalProperties writes a <properties> element containing one
// <property> child per entry, matching the teacher's read-side grammar.
func marshalProperties(e *xml.Encoder, props []wireProperty) error {
	if len(props) == 0 {
		return nil
	}
	start := xml.StartElement{Name: xml.Name{Local: "properties"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, p := range props {
		attrs := []xml.Attr{{Name: xml.Name{Local: "name"}, Value: p.Name}}
		if p.Type != "" && p.Type != "string" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "type"}, Value: p.Type})
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "value"}, Value: p.Value})
		propStart := xml.StartElement{Name: xml.Name{Local: "property"}, Attr: attrs}
		if err := e.EncodeToken(propStart); err != nil {
			return err
		}
		if err := e.EncodeToken(propStart.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// unmarshalProperties reads a <properties> element's <property> children.
// Grounded on Properties.UnmarshalXML's token loop (properties.go).
func unmarshalProperties(d *xml.Decoder, start xml.StartElement) ([]wireProperty, error) {
	var out []wireProperty
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}
		if end, ok := token.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			return out, nil
		}
		child, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if child.Name.Local != "property" {
			corelog.UnknownElem(child.Name.Local, start.Name.Local)
			if err := d.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		var w wireProperty
		for _, attr := range child.Attr {
			switch attr.Name.Local {
			case "name":
				w.Name = attr.Value
			case "type":
				w.Type = attr.Value
			case "value":
				w.Value = attr.Value
			default:
				corelog.UnknownAttr(attr.Name.Local, child.Name.Local)
			}
		}
		if err := d.Skip(); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
}
