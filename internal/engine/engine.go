package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/reoring/avsc/jsonloc"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token together with the text span it covers.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Start  jsonloc.Position
	End    jsonloc.Position
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset consumed so far; -1 if unknown
}

// ErrTrailingData is returned when more input follows the top-level value.
var ErrTrailingData = errors.New("unexpected data after top-level JSON value")

// BuildOptions controls tree assembly.
type BuildOptions struct {
	// KeepFirstDuplicate keeps the first of several members sharing a key.
	// When false the last one wins, like encoding/json.
	KeepFirstDuplicate bool
}

// BuildTree consumes the whole source and assembles a located value tree.
func BuildTree(src TokenSource, opt BuildOptions) (*jsonloc.Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	root, err := buildValue(src, tok, opt)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, err
	}
	return root, nil
}

func buildValue(src TokenSource, tok Token, opt BuildOptions) (*jsonloc.Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src, tok, opt)
	case KindBeginArray:
		return buildArray(src, tok, opt)
	case KindString:
		return &jsonloc.Node{Kind: jsonloc.KindString, String: tok.String, Start: tok.Start, End: tok.End}, nil
	case KindNumber:
		return &jsonloc.Node{Kind: jsonloc.KindNumber, Number: tok.Number, Start: tok.Start, End: tok.End}, nil
	case KindBool:
		return &jsonloc.Node{Kind: jsonloc.KindBool, Bool: tok.Bool, Start: tok.Start, End: tok.End}, nil
	case KindNull:
		return &jsonloc.Node{Kind: jsonloc.KindNull, Start: tok.Start, End: tok.End}, nil
	default:
		return nil, fmt.Errorf("unexpected token kind %d at %s", tok.Kind, tok.Start)
	}
}

func buildObject(src TokenSource, begin Token, opt BuildOptions) (*jsonloc.Node, error) {
	n := &jsonloc.Node{Kind: jsonloc.KindObject, Start: begin.Start}
	var seen map[string]int
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			n.End = tok.End
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, fmt.Errorf("expected object key at %s", tok.Start)
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		v, err := buildValue(src, vt, opt)
		if err != nil {
			return nil, err
		}
		if seen == nil {
			seen = make(map[string]int)
		}
		if idx, dup := seen[tok.String]; dup {
			if !opt.KeepFirstDuplicate {
				n.Members[idx].Value = v
			}
			continue
		}
		seen[tok.String] = len(n.Members)
		n.Members = append(n.Members, jsonloc.Member{Key: tok.String, KeyStart: tok.Start, Value: v})
	}
}

func buildArray(src TokenSource, begin Token, opt BuildOptions) (*jsonloc.Node, error) {
	n := &jsonloc.Node{Kind: jsonloc.KindArray, Start: begin.Start}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			n.End = tok.End
			return n, nil
		}
		v, err := buildValue(src, tok, opt)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, v)
	}
}

func eofIsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
