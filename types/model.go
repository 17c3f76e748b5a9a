// Package types holds the algebraic description of the types a grammar
// produces: interfaces with named properties and supertypes, and unions of
// property type alternatives. Descriptions are built two ways — inferred
// from rule structure or collected from explicit declarations — and compared
// elsewhere; the model itself carries no comparison logic.
package types

import (
	"sort"
	"strings"
)

// Kind discriminates the two shapes a named type can take.
type Kind int

const (
	// KindInterface is a record shape: named properties plus supertypes.
	KindInterface Kind = iota
	// KindUnion is an alternative shape: exactly one of a set of property types.
	KindUnion
)

// TypeOrInterface is the tagged union over InterfaceType and UnionType.
// Every comparison discriminates on Kind before looking at the shape.
type TypeOrInterface interface {
	TypeName() string
	Kind() Kind
}

// PropertyType is one alternative shape a property or union member may take:
// a set of type names, optionally an array of them, optionally a
// cross-reference instead of an embedded value.
type PropertyType struct {
	Types     []string
	Array     bool
	Reference bool
}

// String returns the canonical identity of the alternative: the sorted,
// deduplicated, |-joined type names. Declaration order never matters.
func (p *PropertyType) String() string {
	names := make([]string, 0, len(p.Types))
	seen := make(map[string]bool, len(p.Types))
	for _, t := range p.Types {
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// Display returns the human-readable form including the array and reference
// markers, e.g. "@State[]" or "(Number|String)[]".
func (p *PropertyType) Display() string {
	s := p.String()
	if strings.Contains(s, "|") && (p.Array || p.Reference) {
		s = "(" + s + ")"
	}
	if p.Reference {
		s = "@" + s
	}
	if p.Array {
		s += "[]"
	}
	return s
}

// Property is one named member of an interface type.
type Property struct {
	Name         string
	Alternatives []*PropertyType
	Optional     bool
}

// TypeString returns the human-readable type of the property: the display
// form of each alternative, joined by " | ".
func (p *Property) TypeString() string {
	parts := make([]string, len(p.Alternatives))
	for i, a := range p.Alternatives {
		parts[i] = a.Display()
	}
	return strings.Join(parts, " | ")
}

// SoleArrayAlternative reports whether the property has exactly one
// alternative and that alternative is an array. Such a property is never
// truly absent: a missing array reads as empty, so optionality is
// irrelevant for it.
func (p *Property) SoleArrayAlternative() bool {
	return len(p.Alternatives) == 1 && p.Alternatives[0].Array
}

// InterfaceType is a named record type: uniquely named properties plus the
// names of the interface types it structurally extends.
type InterfaceType struct {
	Name       string
	Properties []*Property
	SuperTypes []string
}

func (i *InterfaceType) TypeName() string { return i.Name }

func (i *InterfaceType) Kind() Kind { return KindInterface }

// Property returns the property with the given name, or nil.
func (i *InterfaceType) Property(name string) *Property {
	for _, p := range i.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// UnionType is a named type whose value is exactly one of an ordered set of
// property type alternatives.
type UnionType struct {
	Name  string
	Union []*PropertyType
}

func (u *UnionType) TypeName() string { return u.Name }

func (u *UnionType) Kind() Kind { return KindUnion }
