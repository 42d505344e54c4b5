package model

import "strconv"

// FieldOrder is the sort order of a record field.
type FieldOrder int

const (
	OrderAscending FieldOrder = iota
	OrderDescending
	OrderIgnore
)

// FieldOrderFromName parses an "order" property value.
func FieldOrderFromName(s string) (FieldOrder, bool) {
	switch s {
	case "ascending":
		return OrderAscending, true
	case "descending":
		return OrderDescending, true
	case "ignore":
		return OrderIgnore, true
	}
	return OrderAscending, false
}

func (o FieldOrder) String() string {
	switch o {
	case OrderAscending:
		return "ascending"
	case OrderDescending:
		return "descending"
	case OrderIgnore:
		return "ignore"
	}
	return "order(" + strconv.Itoa(int(o)) + ")"
}

// Field is a single record field.
type Field struct {
	loc     CodeLocation
	name    string
	doc     string
	schema  *SchemaOrRef
	def     Literal
	aliases []string
	order   FieldOrder
	props   *Properties
}

// NewField builds a field. def may be nil (no default) or an *UnparsedLiteral.
func NewField(loc CodeLocation, name, doc string, schema *SchemaOrRef, def Literal, aliases []string, order FieldOrder, props *Properties) *Field {
	if props == nil {
		props = EmptyProperties
	}
	return &Field{loc: loc, name: name, doc: doc, schema: schema, def: def, aliases: aliases, order: order, props: props}
}

func (f *Field) Location() CodeLocation  { return f.loc }
func (f *Field) Name() string            { return f.name }
func (f *Field) Doc() string             { return f.doc }
func (f *Field) Schema() *SchemaOrRef    { return f.schema }
func (f *Field) Aliases() []string       { return f.aliases }
func (f *Field) Order() FieldOrder       { return f.order }
func (f *Field) Properties() *Properties { return f.props }

// Default returns the default literal, which may still be unparsed.
func (f *Field) Default() Literal { return f.def }

// HasDefault reports whether the field declared a default.
func (f *Field) HasDefault() bool { return f.def != nil }

// HasUnparsedDefault reports a default still waiting for its schema.
func (f *Field) HasUnparsedDefault() bool {
	_, ok := f.def.(*UnparsedLiteral)
	return ok
}

// SetDefault replaces the default; used when upgrading an unparsed default
// (nil drops a default that failed to decode).
func (f *Field) SetDefault(l Literal) { f.def = l }
