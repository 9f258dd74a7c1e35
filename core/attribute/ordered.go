package attribute

// OrderedProperties is an insertion-ordered mapping from property name to
// Attribute value, with names unique within the set (spec.md §3 "Context":
// "ordered mapping from property name to Attribute (insertion order
// preserved; names unique within context)").
type OrderedProperties struct {
	order  []string
	values map[string]Attribute
}

// NewOrderedProperties returns an empty, ready-to-use property set.
func NewOrderedProperties() *OrderedProperties {
	return &OrderedProperties{values: make(map[string]Attribute)}
}

// Set inserts or overwrites the named property. Overwriting an existing
// name does not move it in iteration order.
func (p *OrderedProperties) Set(name string, value Attribute) {
	if p.values == nil {
		p.values = make(map[string]Attribute)
	}
	if _, exists := p.values[name]; !exists {
		p.order = append(p.order, name)
	}
	p.values[name] = value
}

// Get retrieves the named property.
func (p *OrderedProperties) Get(name string) (Attribute, bool) {
	if p == nil {
		return Attribute{}, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Delete removes the named property, preserving the relative order of the
// remainder.
func (p *OrderedProperties) Delete(name string) {
	if p == nil {
		return
	}
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Rename changes a property's name in place, preserving its position and
// value. Reports false if oldName is absent or newName already exists.
func (p *OrderedProperties) Rename(oldName, newName string) bool {
	if p == nil {
		return false
	}
	if oldName == newName {
		_, ok := p.values[oldName]
		return ok
	}
	v, ok := p.values[oldName]
	if !ok {
		return false
	}
	if _, clash := p.values[newName]; clash {
		return false
	}
	delete(p.values, oldName)
	p.values[newName] = v
	for i, n := range p.order {
		if n == oldName {
			p.order[i] = newName
			break
		}
	}
	return true
}

// Len returns the number of properties.
func (p *OrderedProperties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Names returns the property names in insertion order. The returned slice
// is owned by the caller.
func (p *OrderedProperties) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Range visits every property in insertion order, stopping early if fn
// returns false.
func (p *OrderedProperties) Range(fn func(name string, value Attribute) bool) {
	if p == nil {
		return
	}
	for _, name := range p.order {
		if !fn(name, p.values[name]) {
			return
		}
	}
}

// Clone returns a deep copy suitable for command snapshots.
func (p *OrderedProperties) Clone() *OrderedProperties {
	if p == nil {
		return NewOrderedProperties()
	}
	dup := &OrderedProperties{
		order:  make([]string, len(p.order)),
		values: make(map[string]Attribute, len(p.values)),
	}
	copy(dup.order, p.order)
	for k, v := range p.values {
		dup.values[k] = v
	}
	return dup
}

// Equal reports whether two property sets have identical names, order, and
// values (used by the round-trip equivalence in spec.md §8).
func (p *OrderedProperties) Equal(other *OrderedProperties) bool {
	if p.Len() != other.Len() {
		return false
	}
	pn, on := p.Names(), other.Names()
	for i := range pn {
		if pn[i] != on[i] {
			return false
		}
		pv, _ := p.Get(pn[i])
		ov, _ := other.Get(on[i])
		if !pv.Equal(ov) {
			return false
		}
	}
	return true
}
