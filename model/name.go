package model

import "strings"

// Name is a namespace-qualified type name. Two names are equal when their
// full names are equal.
type Name struct {
	Simple    string
	Namespace string
}

// NewName returns a Name from its parts.
func NewName(simple, namespace string) Name {
	return Name{Simple: simple, Namespace: namespace}
}

// ParseFullName splits a dotted full name at its last separator.
func ParseFullName(full string) Name {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return Name{Simple: full[i+1:], Namespace: full[:i]}
	}
	return Name{Simple: full}
}

// IsFullName reports whether s carries its own namespace.
func IsFullName(s string) bool { return strings.IndexByte(s, '.') >= 0 }

// QualifyName resolves a possibly-bare name against a namespace. Dotted
// names are already full names.
func QualifyName(name, namespace string) string {
	if IsFullName(name) || namespace == "" {
		return name
	}
	return namespace + "." + name
}

// FullName is "namespace.simple", or "simple" in the empty namespace.
func (n Name) FullName() string { return QualifyName(n.Simple, n.Namespace) }

// Equal compares full names, case-sensitively.
func (n Name) Equal(o Name) bool { return n.FullName() == o.FullName() }

func (n Name) String() string { return n.FullName() }
