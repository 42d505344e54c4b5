package json

import (
	"errors"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/avsc/internal/engine"
)

func drain(t *testing.T, src string) ([]eng.Token, error) {
	t.Helper()
	s := NewBytes([]byte(src))
	var toks []eng.Token
	for {
		tok, err := s.NextToken()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func TestTokenKindsAndPositions(t *testing.T) {
	toks, err := drain(t, "{\n  \"a\": [1, true, null],\n  \"b\": \"x\"\n}")
	if err != nil {
		t.Fatal(err)
	}
	kinds := []eng.Kind{
		eng.KindBeginObject, eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindBool, eng.KindNull,
		eng.KindEndArray, eng.KindKey, eng.KindString, eng.KindEndObject,
	}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(kinds))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}

	// "a" key
	if p := toks[1].Start; p.Line != 2 || p.Column != 3 || p.Offset != 4 {
		t.Errorf("key position = %+v", p)
	}
	// the number 1
	if p := toks[3].Start; p.Line != 2 || p.Column != 9 {
		t.Errorf("number position = %+v", p)
	}
	if toks[3].Number != "1" {
		t.Errorf("number text = %q", toks[3].Number)
	}
	// "b" key on line 3, string value after it
	if p := toks[7].Start; p.Line != 3 || p.Column != 3 {
		t.Errorf("second key position = %+v", p)
	}
	if toks[8].String != "x" || toks[8].Start.Column != 8 {
		t.Errorf("string token = %+v", toks[8])
	}
}

func TestNumbersKeepSourceText(t *testing.T) {
	toks, err := drain(t, `[1.50, -0, 1e400]`)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{toks[1].Number, toks[2].Number, toks[3].Number}
	want := []string{"1.50", "-0", "1e400"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("number %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	_, err := drain(t, "{\n  // note\n  \"a\": 1}")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %v", err)
	}
	if !se.Comment {
		t.Error("comment not detected")
	}
	if se.Pos.Line != 2 {
		t.Errorf("line = %d, want 2", se.Pos.Line)
	}

	_, err = drain(t, `{"a" 1}`)
	if !errors.As(err, &se) || se.Comment {
		t.Fatalf("want plain syntax error, got %v", err)
	}
	if !strings.Contains(se.Error(), " at 1:") {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestBuildTree(t *testing.T) {
	root, err := eng.BuildTree(NewBytes([]byte(`{"k": {"n": [1, 2]}, "s": "v"}`)), eng.BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("s").String != "v" || root.Get("k").Get("n").Len() != 2 {
		t.Fatalf("tree = %s", root.Text())
	}
	if root.Start.Offset != 0 {
		t.Errorf("root offset = %d", root.Start.Offset)
	}

	if _, err := eng.BuildTree(NewBytes([]byte(`1 2`)), eng.BuildOptions{}); !errors.Is(err, eng.ErrTrailingData) {
		t.Fatalf("want ErrTrailingData, got %v", err)
	}
	if _, err := eng.BuildTree(NewBytes(nil), eng.BuildOptions{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}

func TestNewReader(t *testing.T) {
	src, err := NewReader(strings.NewReader(`"x"`))
	if err != nil {
		t.Fatal(err)
	}
	tok, err := src.NextToken()
	if err != nil || tok.Kind != eng.KindString || tok.String != "x" {
		t.Fatalf("tok=%+v err=%v", tok, err)
	}
	if src.Location() != 3 {
		t.Errorf("Location() = %d", src.Location())
	}
}
