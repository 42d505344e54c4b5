// Package json turns JSON text into a located token stream backed by
// encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"

	eng "github.com/reoring/avsc/internal/engine"
	"github.com/reoring/avsc/jsonloc"
)

// SyntaxError reports malformed JSON text.
type SyntaxError struct {
	Msg string
	Pos jsonloc.Position
	// Comment is set when the offending character starts a // or /* comment.
	Comment bool
	Err     error
}

func (e *SyntaxError) Error() string { return e.Msg + " at " + e.Pos.String() }

func (e *SyntaxError) Unwrap() error { return e.Err }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	data  []byte
	dec   *json.Decoder
	stack []frame
	lines lineIndex
	last  int64
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON. The whole
// input has to be in memory so token start offsets can be recovered.
func NewBytes(b []byte) eng.TokenSource {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &jsonSource{data: b, dec: dec, lines: newLineIndex(b), last: 0}
}

// NewReader buffers r fully and wraps it like NewBytes.
func NewReader(r io.Reader) (eng.TokenSource, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBytes(b), nil
}

func (s *jsonSource) NextToken() (eng.Token, error) {
	start := s.skipSeparators(s.dec.InputOffset())
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, s.syntaxError(err)
	}
	end := s.dec.InputOffset()
	s.last = end
	out := eng.Token{Start: s.lines.position(start), End: s.lines.position(end)}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			out.Kind = eng.KindBeginObject
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			out.Kind = eng.KindBeginArray
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			out.Kind = eng.KindEndObject
			if v == ']' {
				out.Kind = eng.KindEndArray
			}
		}
		return out, nil
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				out.Kind = eng.KindKey
				out.String = v
				return out, nil
			}
		}
		s.valueDone()
		out.Kind = eng.KindString
		out.String = v
	case bool:
		s.valueDone()
		out.Kind = eng.KindBool
		out.Bool = v
	case json.Number:
		s.valueDone()
		out.Kind = eng.KindNumber
		out.Number = string(v)
	default:
		s.valueDone()
		out.Kind = eng.KindNull
	}
	return out, nil
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) Location() int64 { return s.last }

// skipSeparators advances past whitespace and the ',' / ':' separators the
// decoder consumes implicitly, so that the offset points at the next token.
func (s *jsonSource) skipSeparators(off int64) int64 {
	for off < int64(len(s.data)) {
		switch s.data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

func (s *jsonSource) syntaxError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off := se.Offset - 1
		if off < 0 {
			off = 0
		}
		return &SyntaxError{
			Msg:     se.Error(),
			Pos:     s.lines.position(off),
			Comment: strings.HasPrefix(se.Error(), "invalid character '/'"),
			Err:     err,
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &SyntaxError{Msg: "unexpected end of JSON input", Pos: s.lines.position(int64(len(s.data))), Err: err}
	}
	return err
}

// lineIndex maps byte offsets to 1-based line/column pairs.
type lineIndex []int64

func newLineIndex(b []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range b {
		if c == '\n' {
			idx = append(idx, int64(i+1))
		}
	}
	return idx
}

func (l lineIndex) position(off int64) jsonloc.Position {
	i := sort.Search(len(l), func(i int) bool { return l[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return jsonloc.Position{Offset: off, Line: i + 1, Column: int(off-l[i]) + 1}
}
