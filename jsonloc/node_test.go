package jsonloc

import (
	"testing"

	gojson "github.com/goccy/go-json"
)

func obj(members ...Member) *Node { return &Node{Kind: KindObject, Members: members} }

func str(s string) *Node { return &Node{Kind: KindString, String: s} }

func num(s string) *Node { return &Node{Kind: KindNumber, Number: s} }

func TestNodeGetAndLen(t *testing.T) {
	n := obj(Member{Key: "a", Value: num("1")}, Member{Key: "b", Value: str("x")})
	if got := n.Get("b"); got == nil || got.String != "x" {
		t.Fatalf("Get(b) = %+v", got)
	}
	if n.Get("missing") != nil {
		t.Fatal("Get(missing) should be nil")
	}
	if str("x").Get("a") != nil {
		t.Fatal("Get on a non-object should be nil")
	}
	var nilNode *Node
	if nilNode.Get("a") != nil {
		t.Fatal("Get on nil should be nil")
	}
	if n.Len() != 2 || str("x").Len() != 0 {
		t.Fatalf("Len mismatch")
	}
}

func TestIsIntegral(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"-42", true},
		{"1.0", false},
		{"1e3", false},
		{"1E3", false},
	}
	for _, tt := range tests {
		if got := num(tt.in).IsIntegral(); got != tt.want {
			t.Errorf("IsIntegral(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if str("1").IsIntegral() {
		t.Error("strings are never integral")
	}
}

func TestMarshalPreservesOrder(t *testing.T) {
	n := obj(
		Member{Key: "z", Value: num("1.50")},
		Member{Key: "a", Value: &Node{Kind: KindArray, Items: []*Node{{Kind: KindNull}, {Kind: KindBool, Bool: true}}}},
		Member{Key: "q\"", Value: str("line\nbreak")},
	)
	b, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1.50,"a":[null,true],"q\"":"line\nbreak"}`
	if string(b) != want {
		t.Fatalf("MarshalJSON = %s, want %s", b, want)
	}
	if n.Text() != want {
		t.Fatalf("Text = %s", n.Text())
	}
	if got := (&Node{Kind: Kind(42)}).Text(); got != "<kind(42)>" {
		t.Fatalf("Text of bad kind = %q", got)
	}
}

func TestInterface(t *testing.T) {
	n := obj(Member{Key: "n", Value: num("3")}, Member{Key: "l", Value: &Node{Kind: KindArray, Items: []*Node{str("s")}}})
	v, ok := n.Interface().(map[string]any)
	if !ok {
		t.Fatalf("Interface() = %T", n.Interface())
	}
	if v["n"] != gojson.Number("3") {
		t.Errorf("number = %#v", v["n"])
	}
	if l, ok := v["l"].([]any); !ok || len(l) != 1 || l[0] != "s" {
		t.Errorf("list = %#v", v["l"])
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		p    Position
		want string
	}{
		{Position{Offset: 10, Line: 2, Column: 5}, "2:5"},
		{Position{Offset: 7}, "@7"},
		{Position{Offset: -1}, "?"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
