package dom

import "strings"

// StyleCollection is an element's inline style storage: an ordered mapping
// from property name to value. It does no validation and no cascading, and
// writes are not reflected back into the style attribute.
type StyleCollection struct {
	values map[string]string
	order  []string
}

// NewStyleCollection creates an empty collection.
func NewStyleCollection() *StyleCollection {
	return &StyleCollection{values: make(map[string]string)}
}

// parseStyleAttribute seeds a collection from a style attribute string such
// as "color: red; margin: 0". Malformed declarations are skipped.
func parseStyleAttribute(styleAttr string) *StyleCollection {
	sc := NewStyleCollection()
	for _, part := range strings.Split(styleAttr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colonIdx := strings.Index(part, ":")
		if colonIdx == -1 {
			continue
		}
		property := strings.TrimSpace(part[:colonIdx])
		value := strings.TrimSpace(part[colonIdx+1:])
		if property == "" {
			continue
		}
		sc.Set(property, value)
	}
	return sc
}

// Get returns the value of property.
func (sc *StyleCollection) Get(property string) (string, bool) {
	v, ok := sc.values[property]
	return v, ok
}

// Set stores value under property. A new property goes to the end of the
// order; an existing one keeps its position.
func (sc *StyleCollection) Set(property, value string) {
	if _, exists := sc.values[property]; !exists {
		sc.order = append(sc.order, property)
	}
	sc.values[property] = value
}

// Remove deletes property and returns its old value.
func (sc *StyleCollection) Remove(property string) (string, bool) {
	old, ok := sc.values[property]
	if !ok {
		return "", false
	}
	delete(sc.values, property)
	for i, p := range sc.order {
		if p == property {
			sc.order = append(sc.order[:i], sc.order[i+1:]...)
			break
		}
	}
	return old, true
}

// Keys returns the property names in insertion order.
func (sc *StyleCollection) Keys() []string {
	result := make([]string, len(sc.order))
	copy(result, sc.order)
	return result
}

// Len returns the number of properties set.
func (sc *StyleCollection) Len() int {
	return len(sc.order)
}

// CSSText serializes the collection in insertion order.
func (sc *StyleCollection) CSSText() string {
	parts := make([]string, 0, len(sc.order))
	for _, p := range sc.order {
		parts = append(parts, p+": "+sc.values[p])
	}
	return strings.Join(parts, "; ")
}
