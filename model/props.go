package model

import (
	"iter"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/avsc/jsonloc"
)

// Property is one non-core key/value pair preserved from the source.
type Property struct {
	Name  string
	Value *jsonloc.Node
}

// Properties is an ordered, read-only property bag.
type Properties struct {
	entries []Property
}

// EmptyProperties is shared by every node without extra properties.
var EmptyProperties = &Properties{}

// NewProperties builds a bag in declaration order. Empty input returns
// EmptyProperties.
func NewProperties(entries []Property) *Properties {
	if len(entries) == 0 {
		return EmptyProperties
	}
	return &Properties{entries: entries}
}

// Len returns the number of properties.
func (p *Properties) Len() int { return len(p.entries) }

// Get returns the raw value of a property.
func (p *Properties) Get(name string) (*jsonloc.Node, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Names lists property names in declaration order.
func (p *Properties) Names() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Name
	}
	return out
}

// All iterates properties in declaration order.
func (p *Properties) All() iter.Seq2[string, *jsonloc.Node] {
	return func(yield func(string, *jsonloc.Node) bool) {
		for _, e := range p.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// Filter returns the properties whose name satisfies keep, order preserved.
func (p *Properties) Filter(keep func(name string) bool) *Properties {
	var out []Property
	for _, e := range p.entries {
		if keep(e.Name) {
			out = append(out, e)
		}
	}
	return NewProperties(out)
}

// MarshalJSON encodes the bag as a JSON object in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := gojson.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		v, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
