package model

// Schema is implemented by every schema node variant.
type Schema interface {
	Type() Type
	Location() CodeLocation
	Properties() *Properties
	isSchema()
}

// NamedSchema is implemented by records, enums and fixed types.
type NamedSchema interface {
	Schema
	Name() Name
	Aliases() []Name
	Doc() string
}

type base struct {
	loc   CodeLocation
	props *Properties
}

func (b *base) Location() CodeLocation { return b.loc }

func (b *base) Properties() *Properties {
	if b.props == nil {
		return EmptyProperties
	}
	return b.props
}

func (*base) isSchema() {}

type named struct {
	base
	name    Name
	aliases []Name
	doc     string
}

func (n *named) Name() Name      { return n.name }
func (n *named) Aliases() []Name { return n.aliases }
func (n *named) Doc() string     { return n.doc }

// PrimitiveSchema is one of the eight primitive types, possibly decorated.
type PrimitiveSchema struct {
	base
	kind      Type
	logical   LogicalType
	stringRep StringRepresentation
	scale     int
	precision int
}

// NewPrimitiveSchema panics when kind is not primitive.
func NewPrimitiveSchema(loc CodeLocation, kind Type, logical LogicalType, rep StringRepresentation, scale, precision int, props *Properties) *PrimitiveSchema {
	if !kind.IsPrimitive() {
		panic("model: " + kind.String() + " is not a primitive type")
	}
	return &PrimitiveSchema{base: base{loc, props}, kind: kind, logical: logical, stringRep: rep, scale: scale, precision: precision}
}

func (p *PrimitiveSchema) Type() Type { return p.kind }

// LogicalType returns LogicalNone when undecorated.
func (p *PrimitiveSchema) LogicalType() LogicalType { return p.logical }

// StringRepresentation is only ever set on string schemas.
func (p *PrimitiveSchema) StringRepresentation() StringRepresentation { return p.stringRep }

// Scale and Precision are meaningful for decimal bytes only.
func (p *PrimitiveSchema) Scale() int     { return p.scale }
func (p *PrimitiveSchema) Precision() int { return p.precision }

// RecordSchema is a named ordered list of fields.
type RecordSchema struct {
	named
	fields []*Field
}

func NewRecordSchema(loc CodeLocation, name Name, aliases []Name, doc string, props *Properties) *RecordSchema {
	return &RecordSchema{named: named{base{loc, props}, name, aliases, doc}}
}

func (*RecordSchema) Type() Type { return TypeRecord }

func (r *RecordSchema) Fields() []*Field { return r.fields }

func (r *RecordSchema) SetFields(fields []*Field) { r.fields = fields }

// Field returns the field called name, or nil.
func (r *RecordSchema) Field(name string) *Field {
	for _, f := range r.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// EnumSchema is a named list of distinct symbols.
type EnumSchema struct {
	named
	symbols    []string
	defaultSym string
	hasDefault bool
}

// NewEnumSchema panics when def is non-nil and not one of symbols.
func NewEnumSchema(loc CodeLocation, name Name, aliases []Name, doc string, symbols []string, def *string, props *Properties) *EnumSchema {
	e := &EnumSchema{named: named{base{loc, props}, name, aliases, doc}, symbols: symbols}
	if def != nil {
		if e.Ordinal(*def) < 0 {
			panic("model: enum default " + *def + " is not a symbol of " + name.FullName())
		}
		e.defaultSym, e.hasDefault = *def, true
	}
	return e
}

func (*EnumSchema) Type() Type { return TypeEnum }

func (e *EnumSchema) Symbols() []string { return e.symbols }

// Ordinal returns the position of symbol, or -1.
func (e *EnumSchema) Ordinal(symbol string) int {
	for i, s := range e.symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}

// DefaultSymbol returns the enum default, if any.
func (e *EnumSchema) DefaultSymbol() (string, bool) { return e.defaultSym, e.hasDefault }

// FixedSchema is a named fixed-size byte sequence.
type FixedSchema struct {
	named
	size      int
	logical   LogicalType
	scale     int
	precision int
}

func NewFixedSchema(loc CodeLocation, name Name, aliases []Name, doc string, size int, logical LogicalType, scale, precision int, props *Properties) *FixedSchema {
	return &FixedSchema{named: named{base{loc, props}, name, aliases, doc}, size: size, logical: logical, scale: scale, precision: precision}
}

func (*FixedSchema) Type() Type { return TypeFixed }

func (f *FixedSchema) Size() int                { return f.size }
func (f *FixedSchema) LogicalType() LogicalType { return f.logical }
func (f *FixedSchema) Scale() int               { return f.scale }
func (f *FixedSchema) Precision() int           { return f.precision }

// ArraySchema holds items of one schema.
type ArraySchema struct {
	base
	items *SchemaOrRef
}

func NewArraySchema(loc CodeLocation, items *SchemaOrRef, props *Properties) *ArraySchema {
	return &ArraySchema{base: base{loc, props}, items: items}
}

func (*ArraySchema) Type() Type { return TypeArray }

func (a *ArraySchema) Items() *SchemaOrRef { return a.items }

// MapSchema holds string-keyed values of one schema.
type MapSchema struct {
	base
	values *SchemaOrRef
}

func NewMapSchema(loc CodeLocation, values *SchemaOrRef, props *Properties) *MapSchema {
	return &MapSchema{base: base{loc, props}, values: values}
}

func (*MapSchema) Type() Type { return TypeMap }

func (m *MapSchema) Values() *SchemaOrRef { return m.values }

// UnionSchema is an ordered list of branches. Unions never nest directly.
type UnionSchema struct {
	base
	types []*SchemaOrRef
}

func NewUnionSchema(loc CodeLocation, types []*SchemaOrRef) *UnionSchema {
	return &UnionSchema{base: base{loc, EmptyProperties}, types: types}
}

func (*UnionSchema) Type() Type { return TypeUnion }

func (u *UnionSchema) Types() []*SchemaOrRef { return u.types }

// BranchByType returns the index of the first resolved branch of type t, or -1.
func (u *UnionSchema) BranchByType(t Type) int {
	for i, b := range u.types {
		if s := b.Schema(); s != nil && s.Type() == t {
			return i
		}
	}
	return -1
}

// BranchByLogicalType returns the first branch decorated with l, or -1.
func (u *UnionSchema) BranchByLogicalType(l LogicalType) int {
	for i, b := range u.types {
		switch s := b.Schema().(type) {
		case *PrimitiveSchema:
			if s.LogicalType() == l {
				return i
			}
		case *FixedSchema:
			if s.LogicalType() == l {
				return i
			}
		}
	}
	return -1
}

// BranchByName returns the first named branch whose full name is fullName, or -1.
func (u *UnionSchema) BranchByName(fullName string) int {
	for i, b := range u.types {
		if ns, ok := b.Schema().(NamedSchema); ok && ns.Name().FullName() == fullName {
			return i
		}
	}
	return -1
}
