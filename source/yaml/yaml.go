// Package yaml builds located value trees from YAML-authored schema sources.
//
// Only the JSON-compatible subset of YAML is accepted: mappings with string
// keys, sequences, and null/bool/int/float/string scalars. Positions carry
// line and column; byte offsets are not available from yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	eng "github.com/reoring/avsc/internal/engine"
	"github.com/reoring/avsc/jsonloc"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("yaml: empty document")

// SyntaxError reports YAML that cannot be mapped onto a JSON value tree.
type SyntaxError struct {
	Msg string
	Pos jsonloc.Position
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line > 0 {
		return e.Msg + " at " + e.Pos.String()
	}
	return e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Options mirrors the JSON driver enforcement knobs that make sense for YAML.
type Options struct {
	OnDuplicate eng.DuplicateStrictness
	MaxDepth    int
	IssueSink   func(eng.SimpleIssue)
}

// Parse decodes the first YAML document in data.
func Parse(data []byte, opt Options) (*jsonloc.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, &SyntaxError{Msg: err.Error(), Err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, &SyntaxError{Msg: "multiple YAML documents, expected one", Pos: pos(&extra)}
	}
	c := converter{opt: opt}
	return c.convert(&root, "", 0)
}

type converter struct {
	opt Options
}

func pos(n *yaml.Node) jsonloc.Position {
	return jsonloc.Position{Offset: -1, Line: n.Line, Column: n.Column}
}

func (c *converter) convert(n *yaml.Node, path string, depth int) (*jsonloc.Node, error) {
	p := pos(n)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return c.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		return c.convert(n.Alias, path, depth)
	case yaml.MappingNode:
		if c.opt.MaxDepth > 0 && depth+1 > c.opt.MaxDepth {
			return nil, eng.IssueError{SimpleIssue: eng.SimpleIssue{Code: eng.CodeLimitExceeded, Path: orRoot(path), Message: "max depth " + strconv.Itoa(c.opt.MaxDepth) + " exceeded", Pos: p}}
		}
		out := &jsonloc.Node{Kind: jsonloc.KindObject, Start: p, End: p}
		first := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, &SyntaxError{Msg: "mapping keys must be scalars", Pos: pos(k)}
			}
			key := k.Value
			childPath := path + "/" + strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
			val, err := c.convert(v, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			if idx, dup := first[key]; dup {
				if err := c.duplicate(key, childPath, pos(k)); err != nil {
					return nil, err
				}
				if c.opt.OnDuplicate == eng.DupIgnore {
					out.Members[idx].Value = val
				}
				continue
			}
			first[key] = len(out.Members)
			out.Members = append(out.Members, jsonloc.Member{Key: key, KeyStart: pos(k), Value: val})
		}
		return out, nil
	case yaml.SequenceNode:
		if c.opt.MaxDepth > 0 && depth+1 > c.opt.MaxDepth {
			return nil, eng.IssueError{SimpleIssue: eng.SimpleIssue{Code: eng.CodeLimitExceeded, Path: orRoot(path), Message: "max depth " + strconv.Itoa(c.opt.MaxDepth) + " exceeded", Pos: p}}
		}
		out := &jsonloc.Node{Kind: jsonloc.KindArray, Start: p, End: p}
		for i, item := range n.Content {
			v, err := c.convert(item, path+"/"+strconv.Itoa(i), depth+1)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, &SyntaxError{Msg: fmt.Sprintf("unsupported YAML node kind %d", n.Kind), Pos: p}
}

func (c *converter) duplicate(key, path string, p jsonloc.Position) error {
	si := eng.SimpleIssue{Code: eng.CodeDuplicateKey, Path: path, Message: "key '" + key + "' duplicated", Pos: p}
	switch c.opt.OnDuplicate {
	case eng.DupError:
		return eng.IssueError{SimpleIssue: si}
	case eng.DupWarn:
		if c.opt.IssueSink != nil {
			c.opt.IssueSink(si)
		}
	}
	return nil
}

func scalar(n *yaml.Node) (*jsonloc.Node, error) {
	p := pos(n)
	out := &jsonloc.Node{Start: p, End: p}
	switch n.ShortTag() {
	case "!!null":
		out.Kind = jsonloc.KindNull
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return nil, &SyntaxError{Msg: "invalid boolean " + strconv.Quote(n.Value), Pos: p, Err: err}
		}
		out.Kind = jsonloc.KindBool
		out.Bool = b
	case "!!int":
		v, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0)
		if !ok {
			return nil, &SyntaxError{Msg: "invalid integer " + strconv.Quote(n.Value), Pos: p}
		}
		out.Kind = jsonloc.KindNumber
		out.Number = v.String()
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &SyntaxError{Msg: "number " + strconv.Quote(n.Value) + " has no JSON representation", Pos: p, Err: err}
		}
		out.Kind = jsonloc.KindNumber
		out.Number = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(out.Number, ".eE") {
			out.Number += ".0"
		}
	default:
		out.Kind = jsonloc.KindString
		out.String = n.Value
	}
	return out, nil
}

func orRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
