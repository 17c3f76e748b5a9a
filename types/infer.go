package types

import (
	"github.com/ruediste/langium/grammar"
)

// Index is an ordered, name-keyed collection of type descriptions.
// Iteration order is the order types were added, which keeps downstream
// diagnostics stable across runs.
type Index struct {
	entries []TypeOrInterface
	byName  map[string]TypeOrInterface
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]TypeOrInterface)}
}

// Add registers a type description. Adding a name twice keeps the first
// entry and ignores the second.
func (x *Index) Add(t TypeOrInterface) {
	if _, ok := x.byName[t.TypeName()]; ok {
		return
	}
	x.byName[t.TypeName()] = t
	x.entries = append(x.entries, t)
}

// Lookup returns the description for a type name, or nil.
func (x *Index) Lookup(name string) TypeOrInterface {
	return x.byName[name]
}

// All returns every description in insertion order.
func (x *Index) All() []TypeOrInterface {
	out := make([]TypeOrInterface, len(x.entries))
	copy(out, x.entries)
	return out
}

// tokenTypes maps conventional token names to primitive type names.
// Unknown tokens default to string.
var tokenTypes = map[string]string{
	"ID":     "string",
	"STRING": "string",
	"NUMBER": "number",
	"INT":    "number",
	"FLOAT":  "number",
	"BOOL":   "boolean",
}

// Infer derives a type description for every rule of the grammar: an
// interface per object-producing rule (several rules may contribute to one
// type name), a union per datatype rule and per rule whose body is plain
// alternatives of rule references.
func Infer(g *grammar.Grammar) *Index {
	in := &inferrer{grammar: g, idx: NewIndex()}
	return in.run()
}

type inferrer struct {
	grammar *grammar.Grammar
	idx     *Index
	rules   map[string]*grammar.Rule // rule name → rule
}

func (in *inferrer) run() *Index {
	in.rules = make(map[string]*grammar.Rule, len(in.grammar.Rules))
	for _, r := range in.grammar.Rules {
		if _, ok := in.rules[r.Name]; !ok {
			in.rules[r.Name] = r
		}
	}

	interfaces := make(map[string]*InterfaceType)
	for _, r := range in.grammar.Rules {
		if branches, ok := unionBranches(r); ok {
			in.inferUnion(r, branches)
			continue
		}
		name := r.TypeName()
		existing := interfaces[name]
		merged := in.inferInterface(r, existing)
		if existing == nil {
			interfaces[name] = merged
			in.idx.Add(merged)
		}
	}

	in.inferSuperTypes()
	return in.idx
}

// unionBranches reports whether the rule infers a union type, returning its
// alternative branches. A rule is a union when every top-level alternative
// is a bare rule reference or keyword. A + or * cardinality on a branch
// makes that alternative an array.
func unionBranches(r *grammar.Rule) ([]grammar.Element, bool) {
	var branches []grammar.Element
	if alt, ok := r.Body.(*grammar.Alternatives); ok {
		branches = alt.Elements
	} else if r.Body != nil {
		branches = []grammar.Element{r.Body}
	}
	if len(branches) == 0 {
		return nil, false
	}
	for _, b := range branches {
		switch b.(type) {
		case *grammar.RuleRef, *grammar.Keyword:
		default:
			return nil, false
		}
	}
	// A single bare reference is a subtype relation, not a union, unless the
	// rule is a datatype rule.
	if len(branches) == 1 && !r.DataType {
		if _, ok := branches[0].(*grammar.RuleRef); ok {
			return nil, false
		}
	}
	return branches, true
}

func (in *inferrer) inferUnion(r *grammar.Rule, branches []grammar.Element) {
	u := &UnionType{Name: r.TypeName()}
	seen := make(map[string]bool)
	for _, b := range branches {
		var pt *PropertyType
		switch el := b.(type) {
		case *grammar.RuleRef:
			pt = &PropertyType{Types: []string{in.refTypeName(el.Name)}}
		case *grammar.Keyword:
			pt = &PropertyType{Types: []string{"string"}}
		}
		if pt == nil {
			continue
		}
		if c := b.ElemCardinality(); c == '*' || c == '+' {
			pt.Array = true
		}
		if !seen[pt.Display()] {
			seen[pt.Display()] = true
			u.Union = append(u.Union, pt)
		}
	}
	in.idx.Add(u)
}

// inferInterface folds one rule's assignments into the interface for the
// rule's type name, creating it when this is the first contributing rule.
func (in *inferrer) inferInterface(r *grammar.Rule, existing *InterfaceType) *InterfaceType {
	var props []*Property
	byName := make(map[string]*Property)
	in.collect(r.Body, false, func(a *grammar.Assignment, optional bool) {
		alts := in.assignmentTypes(a)
		if len(alts) == 0 {
			return
		}
		p := byName[a.Feature]
		if p == nil {
			p = &Property{Name: a.Feature, Optional: optional}
			byName[a.Feature] = p
			props = append(props, p)
		} else {
			p.Optional = p.Optional || optional
		}
		p.Alternatives = mergeAlternatives(p.Alternatives, alts)
	})

	if existing == nil {
		return &InterfaceType{Name: r.TypeName(), Properties: props}
	}

	// Another rule already produces this type name: merge property sets.
	// A property present in only one of the rules may be absent at runtime,
	// so it becomes optional.
	have := make(map[string]*Property, len(existing.Properties))
	for _, p := range existing.Properties {
		have[p.Name] = p
	}
	for _, p := range props {
		if ep, ok := have[p.Name]; ok {
			ep.Alternatives = mergeAlternatives(ep.Alternatives, p.Alternatives)
			ep.Optional = ep.Optional || p.Optional
		} else {
			p.Optional = true
			existing.Properties = append(existing.Properties, p)
		}
	}
	for _, ep := range existing.Properties {
		if byName[ep.Name] == nil {
			ep.Optional = true
		}
	}
	return existing
}

// collect walks a rule body, invoking add for every assignment together
// with whether grammar structure makes it optional (a ?/* cardinality on
// the assignment or an enclosing group, or placement in one branch of an
// alternative).
func (in *inferrer) collect(el grammar.Element, optional bool, add func(*grammar.Assignment, bool)) {
	switch node := el.(type) {
	case *grammar.Assignment:
		opt := optional || node.Cardinality == '?' || node.Cardinality == '*'
		add(node, opt)
	case *grammar.Group:
		opt := optional || node.Cardinality == '?' || node.Cardinality == '*'
		for _, child := range node.Elements {
			in.collect(child, opt, add)
		}
	case *grammar.Alternatives:
		opt := optional || node.Cardinality == '?' || node.Cardinality == '*' || len(node.Elements) > 1
		for _, child := range node.Elements {
			in.collect(child, opt, add)
		}
	}
}

// assignmentTypes returns the property type alternatives produced by one
// assignment, honoring the += and ?= operators.
func (in *inferrer) assignmentTypes(a *grammar.Assignment) []*PropertyType {
	if a.Operator == "?=" {
		return []*PropertyType{{Types: []string{"boolean"}}}
	}
	alts := in.terminalTypes(a.Terminal)
	if a.Operator == "+=" {
		for _, alt := range alts {
			alt.Array = true
		}
	}
	return alts
}

// terminalTypes resolves the assigned element to property type alternatives.
func (in *inferrer) terminalTypes(el grammar.Element) []*PropertyType {
	switch node := el.(type) {
	case *grammar.Keyword:
		return []*PropertyType{{Types: []string{"string"}}}
	case *grammar.RuleRef:
		return []*PropertyType{{Types: []string{in.refTypeName(node.Name)}}}
	case *grammar.CrossRef:
		return []*PropertyType{{Types: []string{node.Type}, Reference: true}}
	case *grammar.Group:
		var out []*PropertyType
		for _, child := range node.Elements {
			out = mergeAlternatives(out, in.terminalTypes(child))
		}
		return out
	case *grammar.Alternatives:
		var out []*PropertyType
		for _, child := range node.Elements {
			out = mergeAlternatives(out, in.terminalTypes(child))
		}
		return out
	default:
		return nil
	}
}

// refTypeName resolves a referenced rule name to the type it produces.
// Names that resolve to no rule are taken for terminal tokens and mapped
// to a primitive.
func (in *inferrer) refTypeName(name string) string {
	if r, ok := in.rules[name]; ok {
		return r.TypeName()
	}
	if prim, ok := tokenTypes[name]; ok {
		return prim
	}
	return "string"
}

// inferSuperTypes records the union→member subtype relation: a rule whose
// body is alternatives of rule references makes its type a supertype of
// every referenced interface type.
func (in *inferrer) inferSuperTypes() {
	for _, r := range in.grammar.Rules {
		if r.DataType {
			continue
		}
		branches, ok := unionBranches(r)
		if !ok {
			continue
		}
		for _, b := range branches {
			ref, ok := b.(*grammar.RuleRef)
			if !ok {
				continue
			}
			member, _ := in.idx.Lookup(in.refTypeName(ref.Name)).(*InterfaceType)
			if member == nil {
				continue
			}
			if !contains(member.SuperTypes, r.TypeName()) {
				member.SuperTypes = append(member.SuperTypes, r.TypeName())
			}
		}
	}
}

// mergeAlternatives appends the alternatives of b not already present in a,
// using the display form (types plus flags) as identity.
func mergeAlternatives(a, b []*PropertyType) []*PropertyType {
	seen := make(map[string]bool, len(a))
	for _, alt := range a {
		seen[alt.Display()] = true
	}
	for _, alt := range b {
		if !seen[alt.Display()] {
			seen[alt.Display()] = true
			a = append(a, alt)
		}
	}
	return a
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
