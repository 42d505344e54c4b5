package model

import "errors"

// ErrAlreadyResolved is returned when a reference slot is resolved twice.
var ErrAlreadyResolved = errors.New("model: reference already resolved")

// SchemaOrRef is a slot holding either an inline schema or a reference by
// name. A reference starts unresolved and is filled in exactly once.
type SchemaOrRef struct {
	loc       CodeLocation
	schema    Schema
	ref       string
	namespace string
	byName    bool
}

// Inline wraps a fully declared schema.
func Inline(loc CodeLocation, s Schema) *SchemaOrRef {
	return &SchemaOrRef{loc: loc, schema: s}
}

// Reference records a use of name at loc, with namespace active at that site.
func Reference(loc CodeLocation, name, namespace string) *SchemaOrRef {
	return &SchemaOrRef{loc: loc, ref: name, namespace: namespace, byName: true}
}

func (r *SchemaOrRef) Location() CodeLocation { return r.loc }

// IsReference reports whether the slot was declared by name.
func (r *SchemaOrRef) IsReference() bool { return r.byName }

// IsResolved reports whether a schema is available.
func (r *SchemaOrRef) IsResolved() bool { return r.schema != nil }

// Schema returns the schema, or nil for an unresolved reference.
func (r *SchemaOrRef) Schema() Schema { return r.schema }

// Ref returns the name as written at the reference site.
func (r *SchemaOrRef) Ref() string { return r.ref }

// RefNamespace returns the namespace active at the reference site.
func (r *SchemaOrRef) RefNamespace() string { return r.namespace }

// FullRefName is the full name the reference is looked up by.
func (r *SchemaOrRef) FullRefName() string {
	if !r.byName || r.ref == "" {
		return ""
	}
	return QualifyName(r.ref, r.namespace)
}

// Resolve fills in an unresolved reference.
func (r *SchemaOrRef) Resolve(s Schema) error {
	if r.schema != nil {
		return ErrAlreadyResolved
	}
	r.schema = s
	return nil
}

// IsFullyDefined reports whether s, and everything reachable from it, is
// resolved. Named schemas already being visited count as defined.
func IsFullyDefined(s Schema) bool {
	return fullyDefined(s, map[Schema]bool{})
}

func fullyDefined(s Schema, seen map[Schema]bool) bool {
	if s == nil {
		return false
	}
	if seen[s] {
		return true
	}
	seen[s] = true
	slot := func(r *SchemaOrRef) bool { return r != nil && fullyDefined(r.Schema(), seen) }
	switch v := s.(type) {
	case *RecordSchema:
		for _, f := range v.Fields() {
			if !slot(f.Schema()) {
				return false
			}
		}
	case *ArraySchema:
		return slot(v.Items())
	case *MapSchema:
		return slot(v.Values())
	case *UnionSchema:
		for _, b := range v.Types() {
			if !slot(b) {
				return false
			}
		}
	}
	return true
}
