package avsc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/reoring/avsc/jsonloc"
	"github.com/reoring/avsc/model"
)

// decodeDefault decodes a field default. Defaults of union-typed fields are
// always decoded against the first branch.
func (c *parseContext) decodeDefault(n *jsonloc.Node, s model.Schema, field string) (model.Literal, *Issue) {
	if u, ok := s.(*model.UnionSchema); ok {
		if len(u.Types()) == 0 {
			is := newIssue(CodeBadDefault, c.loc(n), map[string]any{"field": field})
			return nil, &is
		}
		s = u.Types()[0].Schema()
	}
	return c.parseLiteral(n, s, field)
}

// parseLiteral decodes n against s. It returns either a literal or the
// issue explaining why n does not conform; it never aborts the parse.
func (c *parseContext) parseLiteral(n *jsonloc.Node, s model.Schema, field string) (model.Literal, *Issue) {
	loc := c.loc(n)
	switch sc := s.(type) {
	case *model.PrimitiveSchema:
		return c.parsePrimitiveLiteral(n, sc, field)

	case *model.FixedSchema:
		if n.Kind != jsonloc.KindString {
			return nil, c.badLiteral(n, s, field)
		}
		b, ok := latin1Bytes(n.String)
		if !ok {
			return nil, c.badLiteral(n, s, field)
		}
		if len(b) != sc.Size() {
			return nil, c.literalIssue(CodeLiteralLengthMismatch, n, map[string]any{
				"field":    field,
				"type":     sc.Name().FullName(),
				"expected": sc.Size(),
				"actual":   len(b),
			})
		}
		return model.NewFixedLiteral(sc, loc, b), nil

	case *model.EnumSchema:
		if n.Kind != jsonloc.KindString {
			return nil, c.badLiteral(n, s, field)
		}
		if sc.Ordinal(n.String) < 0 {
			return nil, c.literalIssue(CodeUnknownEnumSymbol, n, map[string]any{
				"field":  field,
				"symbol": n.String,
				"enum":   sc.Name().FullName(),
			})
		}
		return model.NewEnumLiteral(sc, loc, n.String), nil

	case *model.ArraySchema:
		items := sc.Items().Schema()
		if n.Kind != jsonloc.KindArray || items == nil {
			return nil, c.badLiteral(n, s, field)
		}
		out := make([]model.Literal, 0, len(n.Items))
		for _, item := range n.Items {
			lit, is := c.parseLiteral(item, items, field)
			if is != nil {
				return nil, c.wrapLiteral(n, s, field, is)
			}
			out = append(out, lit)
		}
		return model.NewArrayLiteral(sc, loc, out), nil

	case *model.MapSchema:
		values := sc.Values().Schema()
		if n.Kind != jsonloc.KindObject || values == nil {
			return nil, c.badLiteral(n, s, field)
		}
		out := make(map[string]model.Literal, len(n.Members))
		for _, m := range n.Members {
			lit, is := c.parseLiteral(m.Value, values, field)
			if is != nil {
				return nil, c.wrapLiteral(n, s, field, is)
			}
			out[m.Key] = lit
		}
		return model.NewMapLiteral(sc, loc, out), nil

	case *model.RecordSchema:
		if n.Kind != jsonloc.KindObject {
			return nil, c.badLiteral(n, s, field)
		}
		out := make(map[string]model.Literal, len(sc.Fields()))
		for _, f := range sc.Fields() {
			vn := n.Get(f.Name())
			if vn == nil {
				return nil, c.literalIssue(CodeMissingFieldValue, n, map[string]any{
					"field":  f.Name(),
					"record": sc.Name().FullName(),
				})
			}
			fs := f.Schema().Schema()
			if fs == nil {
				return nil, c.badLiteral(n, s, field)
			}
			lit, is := c.parseLiteral(vn, fs, field)
			if is != nil {
				return nil, c.wrapLiteral(n, s, field, is)
			}
			out[f.Name()] = lit
		}
		return model.NewRecordLiteral(sc, loc, out), nil

	case *model.UnionSchema:
		vn, branch := selectUnionBranch(n, sc)
		if branch == nil {
			return nil, c.literalIssue(CodeNoUnionBranch, n, map[string]any{"field": field, "value": n.Text()})
		}
		return c.parseLiteral(vn, branch, field)
	}
	return nil, c.badLiteral(n, s, field)
}

func (c *parseContext) parsePrimitiveLiteral(n *jsonloc.Node, s *model.PrimitiveSchema, field string) (model.Literal, *Issue) {
	loc := c.loc(n)
	switch s.Type() {
	case model.TypeNull:
		if n.Kind == jsonloc.KindNull {
			return model.NewNullLiteral(s, loc), nil
		}
	case model.TypeBoolean:
		if n.Kind == jsonloc.KindBool {
			return model.NewBooleanLiteral(s, loc, n.Bool), nil
		}
	case model.TypeInt:
		if n.IsIntegral() {
			v, err := strconv.ParseInt(n.Number, 10, 32)
			if err != nil {
				return nil, c.outOfRange(n, s, field)
			}
			return model.NewIntLiteral(s, loc, int32(v)), nil
		}
	case model.TypeLong:
		if n.IsIntegral() {
			v, err := strconv.ParseInt(n.Number, 10, 64)
			if err != nil {
				return nil, c.outOfRange(n, s, field)
			}
			return model.NewLongLiteral(s, loc, v), nil
		}
	case model.TypeFloat:
		if n.Kind == jsonloc.KindNumber {
			if exceedsMagnitude(n.Number, math.MaxFloat32) {
				return nil, c.outOfRange(n, s, field)
			}
			if v, err := strconv.ParseFloat(n.Number, 32); err == nil {
				return model.NewFloatLiteral(s, loc, float32(v)), nil
			}
		}
	case model.TypeDouble:
		if n.Kind == jsonloc.KindNumber {
			if exceedsMagnitude(n.Number, math.MaxFloat64) {
				return nil, c.outOfRange(n, s, field)
			}
			if v, err := strconv.ParseFloat(n.Number, 64); err == nil {
				return model.NewDoubleLiteral(s, loc, v), nil
			}
		}
	case model.TypeBytes:
		if n.Kind == jsonloc.KindString {
			if b, ok := latin1Bytes(n.String); ok {
				return model.NewBytesLiteral(s, loc, b), nil
			}
		}
	case model.TypeString:
		if n.Kind == jsonloc.KindString {
			// A malformed uuid is reported but the string is kept as written.
			if s.LogicalType() == model.LogicalUUID {
				if _, err := uuid.Parse(n.String); err != nil {
					is := newIssue(CodeBadUUIDLiteral, loc, map[string]any{"field": field, "value": n.String})
					is.Cause = err
					c.addIssue(is)
				}
			}
			return model.NewStringLiteral(s, loc, n.String), nil
		}
	}
	return nil, c.badLiteral(n, s, field)
}

// selectUnionBranch picks the branch a union value addresses: null selects
// the null branch, otherwise the value is a single-key object keyed by a
// type name, a logical type name or a named type's full name.
func selectUnionBranch(n *jsonloc.Node, u *model.UnionSchema) (*jsonloc.Node, model.Schema) {
	idx := -1
	value := n
	switch n.Kind {
	case jsonloc.KindNull:
		idx = u.BranchByType(model.TypeNull)
	case jsonloc.KindObject:
		if len(n.Members) != 1 {
			return nil, nil
		}
		key := n.Members[0].Key
		value = n.Members[0].Value
		if t, ok := model.TypeFromName(key); ok {
			idx = u.BranchByType(t)
		} else if lt, ok := model.LogicalTypeFromName(key); ok {
			idx = u.BranchByLogicalType(lt)
		} else {
			idx = u.BranchByName(key)
		}
	}
	if idx < 0 {
		return nil, nil
	}
	return value, u.Types()[idx].Schema()
}

// exceedsMagnitude reports whether the decimal text is larger in magnitude
// than limit. Rounding away from zero keeps the comparison exact.
func exceedsMagnitude(text string, limit float64) bool {
	f, _, err := big.ParseFloat(text, 10, 512, big.AwayFromZero)
	if err != nil {
		v, _ := strconv.ParseFloat(text, 64)
		return math.IsInf(v, 0) || math.Abs(v) > limit
	}
	if f.IsInf() {
		return true
	}
	return f.Abs(f).Cmp(big.NewFloat(limit)) > 0
}

// latin1Bytes maps each code point 0-255 to one byte. Higher code points
// cannot be represented and fail the decode.
func latin1Bytes(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

func (c *parseContext) literalIssue(code string, n *jsonloc.Node, params map[string]any) *Issue {
	is := newIssue(code, c.loc(n), params)
	return &is
}

func (c *parseContext) badLiteral(n *jsonloc.Node, s model.Schema, field string) *Issue {
	return c.literalIssue(CodeBadLiteral, n, map[string]any{
		"field": field,
		"value": n.Text(),
		"type":  typeLabel(s),
	})
}

func (c *parseContext) outOfRange(n *jsonloc.Node, s model.Schema, field string) *Issue {
	return c.literalIssue(CodeLiteralOutOfRange, n, map[string]any{
		"field": field,
		"value": n.Text(),
		"type":  typeLabel(s),
	})
}

// wrapLiteral fails a container literal because of one of its elements.
func (c *parseContext) wrapLiteral(n *jsonloc.Node, s model.Schema, field string, inner *Issue) *Issue {
	is := c.badLiteral(n, s, field)
	is.Params["detail"] = inner.Message
	is.Message = renderMessage(CodeBadLiteral, is.Params)
	is.Cause = Issues{*inner}
	return is
}

func typeLabel(s model.Schema) string {
	if s == nil {
		return model.TypeUnknown.String()
	}
	if ns, ok := s.(model.NamedSchema); ok {
		return s.Type().String() + " " + ns.Name().FullName()
	}
	return s.Type().String()
}
