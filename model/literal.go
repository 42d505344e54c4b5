package model

import "github.com/reoring/avsc/jsonloc"

// Literal is a constant decoded against a schema. The schema a literal
// carries always has the literal's own Type; constructors panic otherwise.
type Literal interface {
	Type() Type
	Schema() Schema
	Location() CodeLocation
	// Value returns the decoded native value (nil, bool, int32, int64,
	// float32, float64, []byte, string, []Literal, map[string]Literal).
	Value() any
	isLiteral()
}

type literalBase struct {
	loc CodeLocation
}

func (l literalBase) Location() CodeLocation { return l.loc }
func (literalBase) isLiteral()               {}

func mustPrimitive(s *PrimitiveSchema, t Type) {
	if s == nil || s.Type() != t {
		panic("model: " + t.String() + " literal needs a " + t.String() + " schema")
	}
}

// NullLiteral is the null constant.
type NullLiteral struct {
	literalBase
	schema *PrimitiveSchema
}

func NewNullLiteral(s *PrimitiveSchema, loc CodeLocation) *NullLiteral {
	mustPrimitive(s, TypeNull)
	return &NullLiteral{literalBase{loc}, s}
}

func (*NullLiteral) Type() Type       { return TypeNull }
func (l *NullLiteral) Schema() Schema { return l.schema }
func (*NullLiteral) Value() any       { return nil }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  bool
}

func NewBooleanLiteral(s *PrimitiveSchema, loc CodeLocation, v bool) *BooleanLiteral {
	mustPrimitive(s, TypeBoolean)
	return &BooleanLiteral{literalBase{loc}, s, v}
}

func (*BooleanLiteral) Type() Type       { return TypeBoolean }
func (l *BooleanLiteral) Schema() Schema { return l.schema }
func (l *BooleanLiteral) Value() any     { return l.value }
func (l *BooleanLiteral) Bool() bool     { return l.value }

// IntLiteral is a 32-bit signed integer.
type IntLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  int32
}

func NewIntLiteral(s *PrimitiveSchema, loc CodeLocation, v int32) *IntLiteral {
	mustPrimitive(s, TypeInt)
	return &IntLiteral{literalBase{loc}, s, v}
}

func (*IntLiteral) Type() Type       { return TypeInt }
func (l *IntLiteral) Schema() Schema { return l.schema }
func (l *IntLiteral) Value() any     { return l.value }
func (l *IntLiteral) Int() int32     { return l.value }

// LongLiteral is a 64-bit signed integer.
type LongLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  int64
}

func NewLongLiteral(s *PrimitiveSchema, loc CodeLocation, v int64) *LongLiteral {
	mustPrimitive(s, TypeLong)
	return &LongLiteral{literalBase{loc}, s, v}
}

func (*LongLiteral) Type() Type       { return TypeLong }
func (l *LongLiteral) Schema() Schema { return l.schema }
func (l *LongLiteral) Value() any     { return l.value }
func (l *LongLiteral) Long() int64    { return l.value }

// FloatLiteral is a single precision float.
type FloatLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  float32
}

func NewFloatLiteral(s *PrimitiveSchema, loc CodeLocation, v float32) *FloatLiteral {
	mustPrimitive(s, TypeFloat)
	return &FloatLiteral{literalBase{loc}, s, v}
}

func (*FloatLiteral) Type() Type       { return TypeFloat }
func (l *FloatLiteral) Schema() Schema { return l.schema }
func (l *FloatLiteral) Value() any     { return l.value }
func (l *FloatLiteral) Float() float32 { return l.value }

// DoubleLiteral is a double precision float.
type DoubleLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  float64
}

func NewDoubleLiteral(s *PrimitiveSchema, loc CodeLocation, v float64) *DoubleLiteral {
	mustPrimitive(s, TypeDouble)
	return &DoubleLiteral{literalBase{loc}, s, v}
}

func (*DoubleLiteral) Type() Type        { return TypeDouble }
func (l *DoubleLiteral) Schema() Schema  { return l.schema }
func (l *DoubleLiteral) Value() any      { return l.value }
func (l *DoubleLiteral) Double() float64 { return l.value }

// BytesLiteral is a raw byte sequence.
type BytesLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  []byte
}

func NewBytesLiteral(s *PrimitiveSchema, loc CodeLocation, v []byte) *BytesLiteral {
	mustPrimitive(s, TypeBytes)
	return &BytesLiteral{literalBase{loc}, s, v}
}

func (*BytesLiteral) Type() Type       { return TypeBytes }
func (l *BytesLiteral) Schema() Schema { return l.schema }
func (l *BytesLiteral) Value() any     { return l.value }
func (l *BytesLiteral) Bytes() []byte  { return l.value }

// StringLiteral is a string.
type StringLiteral struct {
	literalBase
	schema *PrimitiveSchema
	value  string
}

func NewStringLiteral(s *PrimitiveSchema, loc CodeLocation, v string) *StringLiteral {
	mustPrimitive(s, TypeString)
	return &StringLiteral{literalBase{loc}, s, v}
}

func (*StringLiteral) Type() Type       { return TypeString }
func (l *StringLiteral) Schema() Schema { return l.schema }
func (l *StringLiteral) Value() any     { return l.value }
func (l *StringLiteral) String() string { return l.value }

// FixedLiteral holds exactly Size() bytes.
type FixedLiteral struct {
	literalBase
	schema *FixedSchema
	value  []byte
}

// NewFixedLiteral panics when len(v) differs from the schema size.
func NewFixedLiteral(s *FixedSchema, loc CodeLocation, v []byte) *FixedLiteral {
	if len(v) != s.Size() {
		panic("model: fixed literal length does not match " + s.Name().FullName())
	}
	return &FixedLiteral{literalBase{loc}, s, v}
}

func (*FixedLiteral) Type() Type       { return TypeFixed }
func (l *FixedLiteral) Schema() Schema { return l.schema }
func (l *FixedLiteral) Value() any     { return l.value }
func (l *FixedLiteral) Bytes() []byte  { return l.value }

// EnumLiteral is one symbol of an enum.
type EnumLiteral struct {
	literalBase
	schema *EnumSchema
	symbol string
}

// NewEnumLiteral panics when symbol is not declared by s.
func NewEnumLiteral(s *EnumSchema, loc CodeLocation, symbol string) *EnumLiteral {
	if s.Ordinal(symbol) < 0 {
		panic("model: " + symbol + " is not a symbol of " + s.Name().FullName())
	}
	return &EnumLiteral{literalBase{loc}, s, symbol}
}

func (*EnumLiteral) Type() Type       { return TypeEnum }
func (l *EnumLiteral) Schema() Schema { return l.schema }
func (l *EnumLiteral) Value() any     { return l.symbol }
func (l *EnumLiteral) Symbol() string { return l.symbol }

// ArrayLiteral is an ordered list of item literals.
type ArrayLiteral struct {
	literalBase
	schema *ArraySchema
	items  []Literal
}

func NewArrayLiteral(s *ArraySchema, loc CodeLocation, items []Literal) *ArrayLiteral {
	return &ArrayLiteral{literalBase{loc}, s, items}
}

func (*ArrayLiteral) Type() Type        { return TypeArray }
func (l *ArrayLiteral) Schema() Schema  { return l.schema }
func (l *ArrayLiteral) Value() any      { return l.items }
func (l *ArrayLiteral) Items() []Literal { return l.items }

// MapLiteral maps string keys to value literals.
type MapLiteral struct {
	literalBase
	schema  *MapSchema
	entries map[string]Literal
}

func NewMapLiteral(s *MapSchema, loc CodeLocation, entries map[string]Literal) *MapLiteral {
	return &MapLiteral{literalBase{loc}, s, entries}
}

func (*MapLiteral) Type() Type                    { return TypeMap }
func (l *MapLiteral) Schema() Schema              { return l.schema }
func (l *MapLiteral) Value() any                  { return l.entries }
func (l *MapLiteral) Entries() map[string]Literal { return l.entries }

// RecordLiteral maps every field name of its record to a literal.
type RecordLiteral struct {
	literalBase
	schema *RecordSchema
	fields map[string]Literal
}

func NewRecordLiteral(s *RecordSchema, loc CodeLocation, fields map[string]Literal) *RecordLiteral {
	return &RecordLiteral{literalBase{loc}, s, fields}
}

func (*RecordLiteral) Type() Type                   { return TypeRecord }
func (l *RecordLiteral) Schema() Schema             { return l.schema }
func (l *RecordLiteral) Value() any                 { return l.fields }
func (l *RecordLiteral) Fields() map[string]Literal { return l.fields }

// UnparsedLiteral is a default value whose schema was not yet known when it
// was read. It carries no schema until decoded.
type UnparsedLiteral struct {
	literalBase
	node *jsonloc.Node
}

func NewUnparsedLiteral(loc CodeLocation, node *jsonloc.Node) *UnparsedLiteral {
	return &UnparsedLiteral{literalBase{loc}, node}
}

func (*UnparsedLiteral) Type() Type           { return TypeUnknown }
func (*UnparsedLiteral) Schema() Schema       { return nil }
func (l *UnparsedLiteral) Value() any         { return l.node.Interface() }
func (l *UnparsedLiteral) Node() *jsonloc.Node { return l.node }
