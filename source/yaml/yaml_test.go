package yaml

import (
	"errors"
	"testing"

	eng "github.com/reoring/avsc/internal/engine"
	"github.com/reoring/avsc/jsonloc"
)

func TestParseScalarsAndPositions(t *testing.T) {
	src := `type: record
name: R
size: 0x10
ratio: 2.50
whole: 3.0
flag: yes
on: true
nothing: ~
quoted: "12"
list:
  - a
  - 1
`
	root, err := Parse([]byte(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind != jsonloc.KindObject || root.Start.Line != 1 || root.Start.Offset != -1 {
		t.Fatalf("root = %+v", root)
	}
	checks := []struct {
		key  string
		kind jsonloc.Kind
		text string
	}{
		{"type", jsonloc.KindString, `"record"`},
		{"size", jsonloc.KindNumber, `16`},
		{"ratio", jsonloc.KindNumber, `2.5`},
		{"whole", jsonloc.KindNumber, `3.0`},
		{"flag", jsonloc.KindString, `"yes"`},
		{"on", jsonloc.KindBool, `true`},
		{"nothing", jsonloc.KindNull, `null`},
		{"quoted", jsonloc.KindString, `"12"`},
		{"list", jsonloc.KindArray, `["a",1]`},
	}
	for _, c := range checks {
		v := root.Get(c.key)
		if v == nil {
			t.Fatalf("missing %s", c.key)
		}
		if v.Kind != c.kind || v.Text() != c.text {
			t.Errorf("%s = %v %s, want %v %s", c.key, v.Kind, v.Text(), c.kind, c.text)
		}
	}
	if p := root.Get("name").Start; p.Line != 2 || p.Column != 7 {
		t.Errorf("name position = %+v", p)
	}
	if p := root.Get("list").Items[1].Start; p.Line != 12 || p.Column != 5 {
		t.Errorf("list item position = %+v", p)
	}
}

func TestParseAnchorsExpand(t *testing.T) {
	root, err := Parse([]byte("a: &x {type: int}\nb: *x\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("b").Get("type").String != "int" {
		t.Fatalf("alias not expanded: %s", root.Text())
	}
}

func TestParseDuplicates(t *testing.T) {
	src := []byte("a: 1\na: 2\n")

	var got []eng.SimpleIssue
	root, err := Parse(src, Options{OnDuplicate: eng.DupWarn, IssueSink: func(si eng.SimpleIssue) { got = append(got, si) }})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "/a" || got[0].Pos.Line != 2 {
		t.Fatalf("issues = %+v", got)
	}
	if root.Get("a").Number != "1" {
		t.Errorf("warn keeps the first value, got %s", root.Text())
	}

	root, err = Parse(src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("a").Number != "2" || len(root.Members) != 1 {
		t.Errorf("ignore keeps the last value, got %s", root.Text())
	}

	_, err = Parse(src, Options{OnDuplicate: eng.DupError})
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeDuplicateKey {
		t.Fatalf("want duplicate error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	var se *SyntaxError
	if _, err := Parse([]byte("a: [1"), Options{}); !errors.As(err, &se) {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if _, err := Parse([]byte(""), Options{}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("want ErrEmptyDocument, got %v", err)
	}
	if _, err := Parse([]byte("a: 1\n---\nb: 2\n"), Options{}); !errors.As(err, &se) {
		t.Fatalf("want multi-document error, got %v", err)
	}
	if _, err := Parse([]byte("? [a]\n: 1\n"), Options{}); !errors.As(err, &se) {
		t.Fatalf("want non-scalar key error, got %v", err)
	}
	if _, err := Parse([]byte("x: .inf\n"), Options{}); !errors.As(err, &se) {
		t.Fatalf("want infinity error, got %v", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	_, err := Parse([]byte("a:\n  b:\n    c: 1\n"), Options{MaxDepth: 2})
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeLimitExceeded || ie.Path != "/a/b" {
		t.Fatalf("want depth error at /a/b, got %v", err)
	}
	if _, err := Parse([]byte("a:\n  b:\n    c: 1\n"), Options{MaxDepth: 3}); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}
}
