package types

import "github.com/ruediste/langium/grammar"

// Declare collects the explicitly declared type descriptions of a grammar:
// one interface per interface declaration, one union per type declaration.
// Comparison against inferred types happens by name, so no reference
// resolution is needed here.
func Declare(g *grammar.Grammar) *Index {
	idx := NewIndex()
	for _, decl := range g.Interfaces {
		idx.Add(declareInterface(decl))
	}
	for _, decl := range g.Types {
		idx.Add(declareUnion(decl))
	}
	declareUnionMembership(g, idx)
	return idx
}

// declareUnionMembership mirrors the inferred side: an interface named as
// a plain alternative of a declared union has that union as a supertype.
func declareUnionMembership(g *grammar.Grammar, idx *Index) {
	for _, decl := range g.Types {
		for _, alt := range decl.Alternatives {
			if alt.Array || alt.Reference || len(alt.Types) != 1 {
				continue
			}
			if iface, ok := idx.Lookup(alt.Types[0]).(*InterfaceType); ok && !contains(iface.SuperTypes, decl.Name) {
				iface.SuperTypes = append(iface.SuperTypes, decl.Name)
			}
		}
	}
}

func declareInterface(decl *grammar.InterfaceDecl) *InterfaceType {
	t := &InterfaceType{Name: decl.Name}
	t.SuperTypes = append(t.SuperTypes, decl.SuperTypes...)
	for _, attr := range decl.Attributes {
		t.Properties = append(t.Properties, &Property{
			Name:         attr.Name,
			Optional:     attr.Optional,
			Alternatives: atomTypes(attr.Alternatives),
		})
	}
	return t
}

func declareUnion(decl *grammar.TypeDecl) *UnionType {
	return &UnionType{Name: decl.Name, Union: atomTypes(decl.Alternatives)}
}

func atomTypes(atoms []*grammar.AtomType) []*PropertyType {
	var out []*PropertyType
	for _, a := range atoms {
		pt := &PropertyType{Array: a.Array, Reference: a.Reference}
		pt.Types = append(pt.Types, a.Types...)
		out = mergeAlternatives(out, []*PropertyType{pt})
	}
	return out
}
