package component

import (
	"testing"

	"github.com/mapeditor/tactile-core/core/attribute"
)

func TestAttachedValuesPropagatesAddedAttribute(t *testing.T) {
	def := NewDefinition("Health")
	def.AddAttribute("current", attribute.Int32(10))
	inst := NewAttached(def)

	def.AddAttribute("max", attribute.Int32(100))

	v, ok := inst.Values().Get("max")
	if !ok {
		t.Fatalf("Values() missing attribute added to the definition after attach")
	}
	if got, _ := v.AsInt32(); got != 100 {
		t.Fatalf("max = %d, want 100 (definition default)", got)
	}
}

func TestAttachedValuesPropagatesRemovedAttribute(t *testing.T) {
	def := NewDefinition("Health")
	def.AddAttribute("current", attribute.Int32(10))
	inst := NewAttached(def)
	inst.Set("current", attribute.Int32(42))

	def.RemoveAttribute("current")

	if _, ok := inst.Values().Get("current"); ok {
		t.Fatalf("Values() still reports an attribute removed from the definition")
	}
}

func TestAttachedValuesPropagatesRetype(t *testing.T) {
	def := NewDefinition("Health")
	def.AddAttribute("label", attribute.String("hp"))
	inst := NewAttached(def)
	inst.Set("label", attribute.String("override"))

	def.Attributes().Set("label", attribute.Bool(false))

	v, ok := inst.Values().Get("label")
	if !ok {
		t.Fatalf("Values() missing retyped attribute")
	}
	if v.Kind() != attribute.KindBool {
		t.Fatalf("label kind = %v, want bool (stale string override must not survive a retype)", v.Kind())
	}
}

func TestAttachedValuesKeepsMatchingOverride(t *testing.T) {
	def := NewDefinition("Health")
	def.AddAttribute("current", attribute.Int32(10))
	inst := NewAttached(def)
	inst.Set("current", attribute.Int32(7))

	v, _ := inst.Values().Get("current")
	if got, _ := v.AsInt32(); got != 7 {
		t.Fatalf("current = %d, want 7 (explicit override untouched by unrelated definition state)", got)
	}
}
