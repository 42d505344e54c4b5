package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/avsc/jsonloc"
)

// sliceSource replays a fixed token list; Location grows by one per token.
type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func at(off int) jsonloc.Position { return jsonloc.Position{Offset: int64(off), Line: 1, Column: off + 1} }

// {"a": 1, "a": 2}
func dupObject() []Token {
	return []Token{
		{Kind: KindBeginObject, Start: at(0)},
		{Kind: KindKey, String: "a", Start: at(1)},
		{Kind: KindNumber, Number: "1", Start: at(6)},
		{Kind: KindKey, String: "a", Start: at(9)},
		{Kind: KindNumber, Number: "2", Start: at(14)},
		{Kind: KindEndObject, Start: at(15)},
	}
}

func TestBuildTreeDuplicateResolution(t *testing.T) {
	root, err := BuildTree(&sliceSource{toks: dupObject()}, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Members) != 1 || root.Get("a").Number != "2" {
		t.Fatalf("last should win: %s", root.Text())
	}

	root, err = BuildTree(&sliceSource{toks: dupObject()}, BuildOptions{KeepFirstDuplicate: true})
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("a").Number != "1" {
		t.Fatalf("first should win: %s", root.Text())
	}
	if root.Members[0].KeyStart != at(1) {
		t.Errorf("key start = %+v", root.Members[0].KeyStart)
	}
}

func TestBuildTreeTruncated(t *testing.T) {
	toks := dupObject()[:3]
	if _, err := BuildTree(&sliceSource{toks: toks}, BuildOptions{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}

func TestEnforceDuplicateError(t *testing.T) {
	src := WrapWithEnforcement(&sliceSource{toks: dupObject()}, EnforceOptions{OnDuplicate: DupError})
	_, err := BuildTree(src, BuildOptions{})
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("want IssueError, got %v", err)
	}
	if ie.Code != CodeDuplicateKey || ie.Path != "/a" || ie.Pos != at(9) {
		t.Fatalf("issue = %+v", ie.SimpleIssue)
	}
}

func TestEnforceDuplicateWarn(t *testing.T) {
	var got []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: dupObject()}, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	if _, err := BuildTree(src, BuildOptions{KeepFirstDuplicate: true}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "/a" {
		t.Fatalf("issues = %+v", got)
	}
}

func TestEnforceNestedPath(t *testing.T) {
	// {"x": [{"k": 1, "k": 2}]}
	toks := []Token{
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "x"},
		{Kind: KindBeginArray},
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "k"},
		{Kind: KindNumber, Number: "1"},
		{Kind: KindKey, String: "k"},
		{Kind: KindNumber, Number: "2"},
		{Kind: KindEndObject},
		{Kind: KindEndArray},
		{Kind: KindEndObject},
	}
	var got []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	if _, err := BuildTree(src, BuildOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "/x/0/k" {
		t.Fatalf("issues = %+v", got)
	}
}

func TestEnforceLimits(t *testing.T) {
	nested := []Token{
		{Kind: KindBeginArray},
		{Kind: KindBeginArray},
		{Kind: KindEndArray},
		{Kind: KindEndArray},
	}
	src := WrapWithEnforcement(&sliceSource{toks: nested}, EnforceOptions{MaxDepth: 1})
	_, err := BuildTree(src, BuildOptions{})
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != CodeLimitExceeded {
		t.Fatalf("want depth limit, got %v", err)
	}

	src = WrapWithEnforcement(&sliceSource{toks: nested}, EnforceOptions{MaxDepth: 2})
	if _, err := BuildTree(src, BuildOptions{}); err != nil {
		t.Fatalf("depth 2 should pass: %v", err)
	}

	src = WrapWithEnforcement(&sliceSource{toks: nested}, EnforceOptions{MaxBytes: 2})
	_, err = BuildTree(src, BuildOptions{})
	if !errors.As(err, &ie) || ie.Code != CodeLimitExceeded {
		t.Fatalf("want byte limit, got %v", err)
	}
}

func TestNeedsEnforcement(t *testing.T) {
	if NeedsEnforcement(EnforceOptions{}) {
		t.Error("zero options need no wrapper")
	}
	if !NeedsEnforcement(EnforceOptions{OnDuplicate: DupWarn}) || !NeedsEnforcement(EnforceOptions{MaxBytes: 1}) {
		t.Error("expected enforcement")
	}
}
