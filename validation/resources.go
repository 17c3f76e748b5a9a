package validation

import (
	"github.com/ruediste/langium/grammar"
	"github.com/ruediste/langium/types"
)

// ValidationResource pairs the two independently computed descriptions of
// one type name: the description inferred from the parsing rules and the
// one the author declared, each with the grammar node(s) it came from so
// diagnostics can be anchored precisely. Either side may be absent.
// Resources are built fresh per validation pass and never mutated after
// construction.
type ValidationResource struct {
	Inferred types.TypeOrInterface
	Declared types.TypeOrInterface
	Rules    []*grammar.Rule // rules producing the inferred type
	Decl     grammar.Node    // the interface or type declaration node
}

// Resources maps type names to their ValidationResource, iterating in the
// order names were first inferred or declared. The order is stable across
// runs for identical input.
type Resources struct {
	names  []string
	byName map[string]*ValidationResource
}

// Names returns the type names in first-seen order.
func (r *Resources) Names() []string { return r.names }

// Get returns the resource for a type name, or nil.
func (r *Resources) Get(name string) *ValidationResource { return r.byName[name] }

// Len returns the number of known type names.
func (r *Resources) Len() int { return len(r.names) }

func (r *Resources) resource(name string) *ValidationResource {
	res, ok := r.byName[name]
	if !ok {
		res = &ValidationResource{}
		r.byName[name] = res
		r.names = append(r.names, name)
	}
	return res
}

// CollectResources joins the inferred and declared type descriptions of a
// grammar by type name. A declared type whose declaration node cannot be
// found is dropped, since its diagnostics could not be anchored. Other
// tooling reuses this view, e.g. to list all known types with inferred-only
// definitions as fallback.
func CollectResources(g *grammar.Grammar) *Resources {
	out := &Resources{byName: make(map[string]*ValidationResource)}

	// A type name may be produced by several rules, including datatype rules.
	rulesByType := make(map[string][]*grammar.Rule)
	for _, rule := range g.Rules {
		rulesByType[rule.TypeName()] = append(rulesByType[rule.TypeName()], rule)
	}

	for _, t := range types.Infer(g).All() {
		res := out.resource(t.TypeName())
		res.Inferred = t
		res.Rules = rulesByType[t.TypeName()]
	}

	declNodes := make(map[string]grammar.Node)
	for _, decl := range g.Interfaces {
		declNodes[decl.Name] = decl
	}
	for _, decl := range g.Types {
		if _, ok := declNodes[decl.Name]; !ok {
			declNodes[decl.Name] = decl
		}
	}

	for _, t := range types.Declare(g).All() {
		node, ok := declNodes[t.TypeName()]
		if !ok {
			continue
		}
		res := out.resource(t.TypeName())
		res.Declared = t
		res.Decl = node
	}

	return out
}
