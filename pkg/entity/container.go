package entity

import "encoding/json"

// Filter selects attributes by identity.
// Class is always compared. Type narrows only when set, and SubType narrows
// only when Type is set as well.
type Filter struct {
	Class   AttributeClass
	Type    string
	SubType string
}

// IdentityOf returns the filter that matches the identity of a.
func IdentityOf(a Attribute) Filter {
	return Filter{
		Class:   a.Class(),
		Type:    a.AttributeType(),
		SubType: a.AttributeSubType(),
	}
}

// Matches reports whether a passes the filter.
func (f Filter) Matches(a Attribute) bool {
	if a == nil || a.Class() != f.Class {
		return false
	}
	if f.Type == "" {
		return true
	}
	if a.AttributeType() != f.Type {
		return false
	}
	if f.SubType == "" {
		return true
	}
	return a.AttributeSubType() == f.SubType
}

// Container holds an ordered collection of attributes.
// The zero value is an empty container ready to use.
// A Container is not safe for concurrent use.
type Container struct {
	attributes []Attribute
}

// NewContainer creates a container holding attrs in order.
func NewContainer(attrs ...Attribute) *Container {
	c := &Container{attributes: make([]Attribute, 0, len(attrs))}
	c.attributes = append(c.attributes, attrs...)
	return c
}

// Attributes returns a copy of the attributes in container order.
func (c *Container) Attributes() []Attribute {
	out := make([]Attribute, len(c.attributes))
	copy(out, c.attributes)
	return out
}

// Len returns the number of attributes.
func (c *Container) Len() int {
	return len(c.attributes)
}

// HasMatching reports whether any attribute matches f.
func (c *Container) HasMatching(f Filter) bool {
	return c.GetFirstMatchingIndex(f) != -1
}

// GetMatching returns all attributes matching f in container order.
func (c *Container) GetMatching(f Filter) []Attribute {
	var out []Attribute
	for _, a := range c.attributes {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// RemoveMatching removes every attribute matching f.
// The remaining attributes keep their relative order.
func (c *Container) RemoveMatching(f Filter) {
	kept := c.attributes[:0]
	for _, a := range c.attributes {
		if !f.Matches(a) {
			kept = append(kept, a)
		}
	}
	// clear the tail so removed attributes can be collected
	for i := len(kept); i < len(c.attributes); i++ {
		c.attributes[i] = nil
	}
	c.attributes = kept
}

// GetFirstMatching returns the first attribute matching f, or nil.
func (c *Container) GetFirstMatching(f Filter) Attribute {
	if i := c.GetFirstMatchingIndex(f); i != -1 {
		return c.attributes[i]
	}
	return nil
}

// GetFirstMatchingByClass returns the first attribute of the given class, or nil.
func (c *Container) GetFirstMatchingByClass(class AttributeClass) Attribute {
	return c.GetFirstMatching(Filter{Class: class})
}

// GetFirstMatchingIndex returns the index of the first attribute matching f, or -1.
func (c *Container) GetFirstMatchingIndex(f Filter) int {
	for i, a := range c.attributes {
		if f.Matches(a) {
			return i
		}
	}
	return -1
}

// UpsertFirstMatching replaces the first attribute sharing a's identity in
// place, or appends a if there is none.
func (c *Container) UpsertFirstMatching(a Attribute) {
	if a == nil {
		return
	}
	if i := c.GetFirstMatchingIndex(IdentityOf(a)); i != -1 {
		c.attributes[i] = a
		return
	}
	c.attributes = append(c.attributes, a)
}

// MarshalJSON encodes the attributes as an array, each tagged with "__class".
func (c *Container) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(c.attributes))
	for _, a := range c.attributes {
		raw, err := marshalAttribute(a)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an array of class-tagged attributes.
func (c *Container) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	attrs := make([]Attribute, 0, len(raws))
	for _, raw := range raws {
		a, err := unmarshalAttribute(raw)
		if err != nil {
			return err
		}
		attrs = append(attrs, a)
	}
	c.attributes = attrs
	return nil
}
