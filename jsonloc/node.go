// Package jsonloc holds a JSON value tree in which every node remembers where
// it came from in the source text.
//
// Trees are produced by the drivers under source/ (JSON text and YAML text)
// and consumed by the schema parser. Nodes are immutable once built.
package jsonloc

import (
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Kind enumerates JSON value kinds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Position is a point in the source text. Offset is a byte offset (-1 when the
// driver cannot tell, e.g. YAML); Line and Column are 1-based (0 when unknown).
type Position struct {
	Offset int64
	Line   int
	Column int
}

// String renders "line:col", falling back to "@offset".
func (p Position) String() string {
	if p.Line > 0 {
		return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	}
	if p.Offset >= 0 {
		return "@" + strconv.FormatInt(p.Offset, 10)
	}
	return "?"
}

// Member is a single key/value pair of an object node.
type Member struct {
	Key      string
	KeyStart Position
	Value    *Node
}

// Node is a located JSON value.
//
// Number values keep their source text so callers can apply exact range
// checks; strings hold the decoded value.
type Node struct {
	Kind    Kind
	Start   Position
	End     Position
	Bool    bool
	Number  string
	String  string
	Items   []*Node
	Members []Member
}

// Get returns the value of the first member named key, or nil.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for i := range n.Members {
		if n.Members[i].Key == key {
			return n.Members[i].Value
		}
	}
	return nil
}

// Len returns the number of items (arrays) or members (objects).
func (n *Node) Len() int {
	switch n.Kind {
	case KindArray:
		return len(n.Items)
	case KindObject:
		return len(n.Members)
	}
	return 0
}

// IsIntegral reports whether a number node is written as a JSON integer
// (no fraction and no exponent).
func (n *Node) IsIntegral() bool {
	if n.Kind != KindNumber || n.Number == "" {
		return false
	}
	return !strings.ContainsAny(n.Number, ".eE")
}

// Interface converts the node into plain Go values (map[string]any, []any,
// string, bool, nil and json.Number-like strings via gojson.Number).
func (n *Node) Interface() any {
	switch n.Kind {
	case KindBool:
		return n.Bool
	case KindNumber:
		return gojson.Number(n.Number)
	case KindString:
		return n.String
	case KindArray:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.Members))
		for _, m := range n.Members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON re-encodes the node, preserving member order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	if err := n.encode(&b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func (n *Node) encode(b *strings.Builder) error {
	switch n.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(n.Bool))
	case KindNumber:
		b.WriteString(n.Number)
	case KindString:
		s, err := gojson.Marshal(n.String)
		if err != nil {
			return err
		}
		b.Write(s)
	case KindArray:
		b.WriteByte('[')
		for i, it := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := it.encode(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			k, err := gojson.Marshal(m.Key)
			if err != nil {
				return err
			}
			b.Write(k)
			b.WriteByte(':')
			if err := m.Value.encode(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("jsonloc: unknown node kind %d", n.Kind)
	}
	return nil
}

// Text returns the compact JSON text of the node, used in messages.
func (n *Node) Text() string {
	b, err := n.MarshalJSON()
	if err != nil {
		return "<" + n.Kind.String() + ">"
	}
	return string(b)
}
