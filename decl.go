package avsc

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/reoring/avsc/jsonloc"
	"github.com/reoring/avsc/model"
)

// Core syntax keys; everything else on a node goes into its property bag.
var (
	coreSchemaProperties = keySet("aliases", "default", "doc", "fields", "items", "name", "namespace", "size", "symbols", "type", "values")
	coreFieldProperties  = keySet("aliases", "default", "doc", "name", "order", "type")
)

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// parseDecl parses a schema declaration or a reference to one.
func parseDecl(ctx *parseContext, n *jsonloc.Node, topLevel bool) (*model.SchemaOrRef, error) {
	switch n.Kind {
	case jsonloc.KindString:
		return parsePrimitiveOrRef(ctx, n, topLevel)
	case jsonloc.KindObject:
		return parseComplex(ctx, n, topLevel)
	case jsonloc.KindArray:
		return parseUnion(ctx, n, topLevel)
	}
	return nil, ctx.fatal(CodeBadSchemaNode, n, map[string]any{"kind": n.Kind.String()})
}

func parsePrimitiveOrRef(ctx *parseContext, n *jsonloc.Node, topLevel bool) (*model.SchemaOrRef, error) {
	t, ok := model.TypeFromName(n.String)
	if !ok {
		return ctx.reference(n, n.String), nil
	}
	if !t.IsPrimitive() {
		// "record", "array" and friends are not valid as bare strings.
		return nil, ctx.fatal(CodeIllegalTypeName, n, map[string]any{"type": n.String})
	}
	loc := ctx.loc(n)
	s := model.NewPrimitiveSchema(loc, t, model.LogicalNone, model.StringRepNone, 0, 0, model.EmptyProperties)
	if err := ctx.defineSchema(s, n, topLevel); err != nil {
		return nil, err
	}
	return model.Inline(loc, s), nil
}

func parseComplex(ctx *parseContext, n *jsonloc.Node, topLevel bool) (*model.SchemaOrRef, error) {
	typeNode, err := requiredString(ctx, n, "type", "it is a schema declaration")
	if err != nil {
		return nil, err
	}
	t, ok := model.TypeFromName(typeNode.String)
	if !ok || t == model.TypeUnion {
		return nil, ctx.fatal(CodeUnknownType, typeNode, map[string]any{"type": typeNode.String})
	}
	props := extraProps(n, coreSchemaProperties)

	var s model.Schema
	switch {
	case t.IsNamed():
		s, err = parseNamed(ctx, n, t, props)
	case t.IsCollection():
		s, err = parseCollection(ctx, n, t, props)
	default:
		s, err = parseDecoratedPrimitive(ctx, n, t, props)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.defineSchema(s, n, topLevel); err != nil {
		return nil, err
	}
	return model.Inline(ctx.loc(n), s), nil
}

func parseDecoratedPrimitive(ctx *parseContext, n *jsonloc.Node, t model.Type, props *model.Properties) (*model.PrimitiveSchema, error) {
	logical, err := parseLogicalType(ctx, n, t)
	if err != nil {
		return nil, err
	}
	rep, err := parseStringRepresentation(ctx, n, t)
	if err != nil {
		return nil, err
	}
	precision := readOptionalInteger(ctx, n, "precision")
	scale := readOptionalInteger(ctx, n, "scale")

	var p, s int
	if t == model.TypeBytes && logical == model.LogicalDecimal {
		var ok bool
		if p, s, ok = validateDecimal(ctx, n, t, precision, scale, -1); !ok {
			logical = model.LogicalNone
		}
	}
	return model.NewPrimitiveSchema(ctx.loc(n), t, logical, rep, s, p, props), nil
}

func parseCollection(ctx *parseContext, n *jsonloc.Node, t model.Type, props *model.Properties) (model.Schema, error) {
	loc := ctx.loc(n)
	if t == model.TypeArray {
		items, err := requiredNode(ctx, n, "items", "array declarations must have an items property")
		if err != nil {
			return nil, err
		}
		slot, err := parseDecl(ctx, items, false)
		if err != nil {
			return nil, err
		}
		return model.NewArraySchema(loc, slot, props), nil
	}
	values, err := requiredNode(ctx, n, "values", "map declarations must have a values property")
	if err != nil {
		return nil, err
	}
	slot, err := parseDecl(ctx, values, false)
	if err != nil {
		return nil, err
	}
	return model.NewMapSchema(loc, slot, props), nil
}

func parseUnion(ctx *parseContext, n *jsonloc.Node, topLevel bool) (*model.SchemaOrRef, error) {
	branches := make([]*model.SchemaOrRef, 0, len(n.Items))
	for _, item := range n.Items {
		slot, err := parseDecl(ctx, item, false)
		if err != nil {
			return nil, err
		}
		if s := slot.Schema(); s != nil && s.Type() == model.TypeUnion {
			return nil, ctx.fatal(CodeNestedUnion, item, nil)
		}
		branches = append(branches, slot)
	}
	loc := ctx.loc(n)
	u := model.NewUnionSchema(loc, branches)
	if err := ctx.defineSchema(u, n, topLevel); err != nil {
		return nil, err
	}
	return model.Inline(loc, u), nil
}

func parseNamed(ctx *parseContext, n *jsonloc.Node, t model.Type, props *model.Properties) (model.NamedSchema, error) {
	name, err := parseSchemaName(ctx, n, t)
	if err != nil {
		return nil, err
	}
	aliases, err := parseAliases(ctx, n, name)
	if err != nil {
		return nil, err
	}
	docNode, err := optionalString(ctx, n, "doc")
	if err != nil {
		return nil, err
	}
	var doc string
	if docNode != nil {
		doc = docNode.String
	}

	pop := ctx.pushNamespace(name.Namespace)
	defer pop()

	switch t {
	case model.TypeRecord:
		return parseRecord(ctx, n, name, aliases, doc, props)
	case model.TypeEnum:
		return parseEnum(ctx, n, name, aliases, doc, props)
	default:
		return parseFixed(ctx, n, name, aliases, doc, props)
	}
}

func parseRecord(ctx *parseContext, n *jsonloc.Node, name model.Name, aliases []model.Name, doc string, props *model.Properties) (*model.RecordSchema, error) {
	rec := model.NewRecordSchema(ctx.loc(n), name, aliases, doc, props)
	fieldsNode, err := requiredArray(ctx, n, "fields", "all records must have fields")
	if err != nil {
		return nil, err
	}
	fields := make([]*model.Field, 0, len(fieldsNode.Items))
	seen := make(map[string]struct{}, len(fieldsNode.Items))
	for i, fn := range fieldsNode.Items {
		if fn.Kind != jsonloc.KindObject {
			return nil, ctx.fatal(CodeBadJSONKind, fn, map[string]any{
				"property": "fields[" + strconv.Itoa(i) + "]",
				"expected": jsonloc.KindObject.String(),
				"actual":   fn.Kind.String(),
			})
		}
		f, err := parseField(ctx, fn)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[f.Name()]; dup {
			ctx.issue(CodeDuplicateField, fn, map[string]any{"field": f.Name(), "record": name.FullName()})
			continue
		}
		seen[f.Name()] = struct{}{}
		if f.HasUnparsedDefault() {
			ctx.deferred = append(ctx.deferred, f)
		}
		fields = append(fields, f)
	}
	rec.SetFields(fields)
	return rec, nil
}

func parseField(ctx *parseContext, fn *jsonloc.Node) (*model.Field, error) {
	nameNode, err := requiredString(ctx, fn, "name", "all record fields must have a name")
	if err != nil {
		return nil, err
	}
	typeNode, err := requiredNode(ctx, fn, "type", "all record fields must have a type")
	if err != nil {
		return nil, err
	}
	docNode, err := optionalString(ctx, fn, "doc")
	if err != nil {
		return nil, err
	}
	var doc string
	if docNode != nil {
		doc = docNode.String
	}
	slot, err := parseDecl(ctx, typeNode, false)
	if err != nil {
		return nil, err
	}
	aliases, err := parseFieldAliases(ctx, fn)
	if err != nil {
		return nil, err
	}
	order := parseFieldOrder(ctx, fn)

	name := nameNode.String
	var def model.Literal
	if dn := fn.Get("default"); dn != nil {
		if s := slot.Schema(); s != nil && model.IsFullyDefined(s) {
			lit, is := ctx.decodeDefault(dn, s, name)
			if is != nil {
				ctx.addIssue(*is)
			} else {
				def = lit
			}
		} else {
			def = model.NewUnparsedLiteral(ctx.loc(dn), dn)
		}
	}

	return model.NewField(ctx.loc(fn), name, doc, slot, def, aliases, order, extraProps(fn, coreFieldProperties)), nil
}

func parseFieldAliases(ctx *parseContext, fn *jsonloc.Node) ([]string, error) {
	arr, err := optionalArray(ctx, fn, "aliases")
	if err != nil || arr == nil {
		return nil, err
	}
	out := make([]string, 0, len(arr.Items))
	for i, an := range arr.Items {
		if an.Kind != jsonloc.KindString {
			return nil, ctx.fatal(CodeBadJSONKind, an, map[string]any{
				"property": "aliases[" + strconv.Itoa(i) + "]",
				"expected": jsonloc.KindString.String(),
				"actual":   an.Kind.String(),
			})
		}
		if containsString(out, an.String) {
			ctx.issue(CodeDuplicateAlias, an, map[string]any{"alias": an.String})
			continue
		}
		out = append(out, an.String)
	}
	return out, nil
}

func parseFieldOrder(ctx *parseContext, fn *jsonloc.Node) model.FieldOrder {
	on := fn.Get("order")
	if on == nil {
		return model.OrderAscending
	}
	if on.Kind == jsonloc.KindString {
		if o, ok := model.FieldOrderFromName(on.String); ok {
			return o
		}
	}
	ctx.issue(CodeBadFieldOrder, on, map[string]any{"order": on.Text()})
	return model.OrderAscending
}

func parseEnum(ctx *parseContext, n *jsonloc.Node, name model.Name, aliases []model.Name, doc string, props *model.Properties) (*model.EnumSchema, error) {
	symbolsNode, err := requiredArray(ctx, n, "symbols", "all enums must have symbols")
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(symbolsNode.Items))
	for i, sn := range symbolsNode.Items {
		if sn.Kind != jsonloc.KindString {
			return nil, ctx.fatal(CodeBadJSONKind, sn, map[string]any{
				"property": "symbols[" + strconv.Itoa(i) + "]",
				"expected": jsonloc.KindString.String(),
				"actual":   sn.Kind.String(),
			})
		}
		if containsString(symbols, sn.String) {
			ctx.issue(CodeDuplicateSymbol, sn, map[string]any{"symbol": sn.String, "enum": name.FullName()})
			continue
		}
		symbols = append(symbols, sn.String)
	}

	defNode, err := optionalString(ctx, n, "default")
	if err != nil {
		return nil, err
	}
	var def *string
	if defNode != nil {
		if containsString(symbols, defNode.String) {
			v := defNode.String
			def = &v
		} else {
			ctx.issue(CodeBadEnumDefault, defNode, map[string]any{
				"default": defNode.String,
				"enum":    name.Simple,
				"symbols": strings.Join(symbols, ", "),
			})
		}
	}
	return model.NewEnumSchema(ctx.loc(n), name, aliases, doc, symbols, def, props), nil
}

func parseFixed(ctx *parseContext, n *jsonloc.Node, name model.Name, aliases []model.Name, doc string, props *model.Properties) (*model.FixedSchema, error) {
	sizeNode, err := requiredNode(ctx, n, "size", "fixed types must have a size property")
	if err != nil {
		return nil, err
	}
	if !sizeNode.IsIntegral() {
		return nil, ctx.fatal(CodeBadFixedSize, sizeNode, map[string]any{"name": name.Simple, "size": sizeNode.Text()})
	}
	size, perr := strconv.ParseInt(sizeNode.Number, 10, 32)
	if perr != nil || size < 0 {
		return nil, ctx.fatal(CodeBadFixedSize, sizeNode, map[string]any{"name": name.Simple, "size": sizeNode.Text()})
	}

	logical, err := parseLogicalType(ctx, n, model.TypeFixed)
	if err != nil {
		return nil, err
	}
	var p, s int
	if logical == model.LogicalDecimal {
		precision := readOptionalInteger(ctx, n, "precision")
		scale := readOptionalInteger(ctx, n, "scale")
		var ok bool
		if p, s, ok = validateDecimal(ctx, n, model.TypeFixed, precision, scale, maxDecimalPrecision(int(size))); !ok {
			logical = model.LogicalNone
		}
	}
	return model.NewFixedSchema(ctx.loc(n), name, aliases, doc, int(size), logical, s, p, props), nil
}

// parseSchemaName derives the qualified name of a named type. A dotted name
// is a full name and overrides any namespace property.
func parseSchemaName(ctx *parseContext, n *jsonloc.Node, t model.Type) (model.Name, error) {
	nameNode, err := requiredString(ctx, n, "name", t.String()+" is a named type")
	if err != nil {
		return model.Name{}, err
	}
	nsNode, err := optionalString(ctx, n, "namespace")
	if err != nil {
		return model.Name{}, err
	}
	name := nameNode.String
	if model.IsFullName(name) {
		ctx.issue(CodeUseOfFullName, nameNode, map[string]any{"type": t.String(), "name": name})
		if nsNode != nil {
			ctx.issue(CodeIgnoredNamespace, nsNode, map[string]any{"type": t.String(), "namespace": nsNode.String, "name": name})
		}
		return model.ParseFullName(name), nil
	}
	ns := ctx.currentNamespace()
	if nsNode != nil {
		ns = nsNode.String
	}
	return model.NewName(name, ns), nil
}

// parseAliases reads type aliases. Bare aliases inherit the owner's namespace.
func parseAliases(ctx *parseContext, n *jsonloc.Node, owner model.Name) ([]model.Name, error) {
	arr, err := optionalArray(ctx, n, "aliases")
	if err != nil || arr == nil || len(arr.Items) == 0 {
		return nil, err
	}
	aliases := make([]model.Name, 0, len(arr.Items))
	for i, an := range arr.Items {
		if an.Kind != jsonloc.KindString {
			return nil, ctx.fatal(CodeBadJSONKind, an, map[string]any{
				"property": "aliases[" + strconv.Itoa(i) + "]",
				"expected": jsonloc.KindString.String(),
				"actual":   an.Kind.String(),
			})
		}
		var alias model.Name
		if model.IsFullName(an.String) {
			alias = model.ParseFullName(an.String)
		} else {
			alias = model.NewName(an.String, owner.Namespace)
		}
		if containsName(aliases, alias) {
			ctx.issue(CodeDuplicateAlias, an, map[string]any{"alias": alias.FullName()})
			continue
		}
		aliases = append(aliases, alias)
	}
	return aliases, nil
}

func parseLogicalType(ctx *parseContext, n *jsonloc.Node, t model.Type) (model.LogicalType, error) {
	ln, err := optionalString(ctx, n, "logicalType")
	if err != nil || ln == nil {
		return model.LogicalNone, err
	}
	lt, ok := model.LogicalTypeFromName(ln.String)
	if !ok {
		ctx.issue(CodeUnknownLogicalType, ln, map[string]any{"logicalType": ln.String})
		return model.LogicalNone, nil
	}
	if !lt.Decorates(t) {
		ctx.issue(CodeMismatchedLogicalType, ln, map[string]any{"logicalType": ln.String, "type": t.String()})
		return model.LogicalNone, nil
	}
	return lt, nil
}

func parseStringRepresentation(ctx *parseContext, n *jsonloc.Node, t model.Type) (model.StringRepresentation, error) {
	rn, err := optionalString(ctx, n, "avro.java.string")
	if err != nil || rn == nil {
		return model.StringRepNone, err
	}
	rep, ok := model.StringRepresentationFromName(rn.String)
	if !ok {
		ctx.issue(CodeUnknownStringRepresentation, rn, map[string]any{"value": rn.String})
	}
	if t != model.TypeString {
		ctx.issue(CodeStringRepresentationOnNonString, rn, map[string]any{"value": rn.String, "type": t.String()})
		return model.StringRepNone, nil
	}
	return rep, nil
}

type locatedInt struct {
	value int
	node  *jsonloc.Node
}

// readOptionalInteger returns nil when the property is absent or unusable;
// a wrong kind is recorded, not fatal.
func readOptionalInteger(ctx *parseContext, n *jsonloc.Node, prop string) *locatedInt {
	v := n.Get(prop)
	if v == nil {
		return nil
	}
	if v.Kind != jsonloc.KindNumber {
		ctx.issue(CodeBadPropertyType, v, map[string]any{"property": prop, "expected": "integer", "actual": v.Kind.String()})
		return nil
	}
	if !v.IsIntegral() {
		ctx.issue(CodeBadPropertyType, v, map[string]any{"property": prop, "expected": "integer", "actual": "floating point value"})
		return nil
	}
	i, err := strconv.ParseInt(v.Number, 10, 32)
	if err != nil {
		ctx.issue(CodeBadPropertyType, v, map[string]any{"property": prop, "expected": "integer", "actual": v.Number})
		return nil
	}
	return &locatedInt{value: int(i), node: v}
}

// validateDecimal checks precision and scale of a decimal decoration.
// maxPrecision < 0 means unbounded. ok=false cancels the logical type.
func validateDecimal(ctx *parseContext, n *jsonloc.Node, t model.Type, precision, scale *locatedInt, maxPrecision int) (p, s int, ok bool) {
	if precision == nil {
		ctx.issue(CodePrecisionRequired, n, map[string]any{"type": t.String(), "logicalType": model.LogicalDecimal.String()})
		return 0, 0, false
	}
	p = precision.value
	if scale != nil {
		s = scale.value
		if p < s {
			ctx.issue(CodePrecisionSmallerThanScale, precision.node, map[string]any{
				"precision": p,
				"scale":     s,
				"scaleAt":   ctx.loc(scale.node).Start.String(),
			})
			return 0, 0, false
		}
	}
	if maxPrecision >= 0 && p > maxPrecision {
		ctx.issue(CodePrecisionTooLarge, precision.node, map[string]any{"precision": p, "max": maxPrecision})
		return 0, 0, false
	}
	return p, s, true
}

// maxFixedDecimalSize bounds the sizes checked by maxDecimalPrecision.
const maxFixedDecimalSize = 1024

// maxDecimalPrecision is the number of base-10 digits a two's complement
// value of size bytes can always hold, or -1 when not checked.
func maxDecimalPrecision(size int) int {
	if size <= 0 {
		return 0
	}
	if size > maxFixedDecimalSize {
		return -1
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(8*size-1))
	limit.Sub(limit, big.NewInt(1))
	return len(limit.String()) - 1
}

// extraProps collects every member not in core, in declaration order.
func extraProps(n *jsonloc.Node, core map[string]struct{}) *model.Properties {
	var out []model.Property
	for _, m := range n.Members {
		if _, ok := core[m.Key]; ok {
			continue
		}
		out = append(out, model.Property{Name: m.Key, Value: m.Value})
	}
	return model.NewProperties(out)
}

func requiredNode(ctx *parseContext, n *jsonloc.Node, prop, reason string) (*jsonloc.Node, error) {
	v := n.Get(prop)
	if v == nil {
		return nil, ctx.fatal(CodeMissingProperty, n, map[string]any{"property": prop, "reason": reason})
	}
	return v, nil
}

func requiredString(ctx *parseContext, n *jsonloc.Node, prop, reason string) (*jsonloc.Node, error) {
	v, err := optionalString(ctx, n, prop)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ctx.fatal(CodeMissingProperty, n, map[string]any{"property": prop, "reason": reason})
	}
	return v, nil
}

func optionalString(ctx *parseContext, n *jsonloc.Node, prop string) (*jsonloc.Node, error) {
	return optionalOfKind(ctx, n, prop, jsonloc.KindString)
}

func requiredArray(ctx *parseContext, n *jsonloc.Node, prop, reason string) (*jsonloc.Node, error) {
	v, err := optionalArray(ctx, n, prop)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ctx.fatal(CodeMissingProperty, n, map[string]any{"property": prop, "reason": reason})
	}
	return v, nil
}

func optionalArray(ctx *parseContext, n *jsonloc.Node, prop string) (*jsonloc.Node, error) {
	return optionalOfKind(ctx, n, prop, jsonloc.KindArray)
}

func optionalOfKind(ctx *parseContext, n *jsonloc.Node, prop string, k jsonloc.Kind) (*jsonloc.Node, error) {
	v := n.Get(prop)
	if v == nil {
		return nil, nil
	}
	if v.Kind != k {
		return nil, ctx.fatal(CodeBadJSONKind, v, map[string]any{
			"property": prop,
			"expected": k.String(),
			"actual":   v.Kind.String(),
		})
	}
	return v, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsName(list []model.Name, n model.Name) bool {
	for _, v := range list {
		if v.Equal(n) {
			return true
		}
	}
	return false
}
