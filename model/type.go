package model

import "strconv"

// Type is the kind tag shared by schemas and literals.
type Type int

const (
	TypeUnknown Type = iota
	TypeNull
	TypeBoolean
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBytes
	TypeString
	TypeFixed
	TypeEnum
	TypeRecord
	TypeArray
	TypeMap
	TypeUnion
)

var typeNames = [...]string{
	TypeUnknown: "unknown",
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInt:     "int",
	TypeLong:    "long",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeBytes:   "bytes",
	TypeString:  "string",
	TypeFixed:   "fixed",
	TypeEnum:    "enum",
	TypeRecord:  "record",
	TypeArray:   "array",
	TypeMap:     "map",
	TypeUnion:   "union",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		if Type(t) != TypeUnknown {
			m[name] = Type(t)
		}
	}
	return m
}()

// TypeFromName maps a type keyword ("int", "record", ...) to its Type.
func TypeFromName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// IsPrimitive reports null, boolean, int, long, float, double, bytes and string.
func (t Type) IsPrimitive() bool { return t >= TypeNull && t <= TypeString }

// IsNamed reports fixed, enum and record.
func (t Type) IsNamed() bool { return t == TypeFixed || t == TypeEnum || t == TypeRecord }

// IsCollection reports array and map.
func (t Type) IsCollection() bool { return t == TypeArray || t == TypeMap }
