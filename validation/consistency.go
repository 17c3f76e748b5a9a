package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruediste/langium/grammar"
	"github.com/ruediste/langium/types"
)

// ValidateTypesConsistency compares the inferred and declared descriptions
// of every type name present on both sides, streaming one diagnostic per
// discrepancy through the acceptor. Names present on only one side are
// skipped: a type that has not been formalized, or is declared with no
// producing rule, is not an inconsistency.
func ValidateTypesConsistency(ctx context.Context, g *grammar.Grammar, accept Acceptor) error {
	res := CollectResources(g)
	for _, name := range res.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := res.Get(name)
		if r.Inferred == nil || r.Declared == nil {
			continue
		}
		validateEntry(r, accept)
	}
	return nil
}

func validateEntry(r *ValidationResource, accept Acceptor) {
	switch inferred := r.Inferred.(type) {
	case *types.UnionType:
		declared, ok := r.Declared.(*types.UnionType)
		if !ok {
			reportShapeMismatch(r, accept)
			return
		}
		checkAlternativesConsistency(r, inferred.Union, declared.Union, accept)
	case *types.InterfaceType:
		declared, ok := r.Declared.(*types.InterfaceType)
		if !ok {
			reportShapeMismatch(r, accept)
			return
		}
		checkPropertiesConsistency(r, inferred, declared, accept)
		checkSuperTypesConsistency(r, inferred, declared, accept)
	}
}

// reportShapeMismatch flags a union paired with an interface. The author
// sees it from both ends: once per producing rule and once on the
// declaration. No further checks run for this name.
func reportShapeMismatch(r *ValidationResource, accept Acceptor) {
	const msg = "inferred and declared versions of this type must both be unions or both be interfaces."
	for _, rule := range r.Rules {
		accept(SeverityError, msg, ruleAnchor(rule))
	}
	accept(SeverityError, msg, declAnchor(r.Decl))
}

// altMismatch is one discrepancy between a found and an expected
// alternative set: the canonical type string plus the applicable clause.
type altMismatch struct {
	alt    string
	clause string
}

// matchAlternatives compares the found (inferred) alternatives against the
// expected (declared) ones. Found alternatives absent from the expected set
// or differing in the array/reference flags are reported; expected
// alternatives with no found counterpart are not, see
// checkPropertiesConsistency for where the symmetric direction is handled.
func matchAlternatives(found, expected []*types.PropertyType) []altMismatch {
	exp := make(map[string]*types.PropertyType, len(expected))
	for _, e := range expected {
		if _, ok := exp[e.String()]; !ok {
			exp[e.String()] = e
		}
	}

	var out []altMismatch
	seen := make(map[string]bool, len(found))
	for _, f := range found {
		key := f.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		e, ok := exp[key]
		if !ok {
			out = append(out, altMismatch{alt: key, clause: "is not expected"})
			continue
		}
		// The conditions are mutually exclusive: the dual-flag forms consume
		// the cases where both flags differ, leaving the singular forms the
		// cases where exactly one does.
		switch {
		case f.Array && !e.Array && f.Reference && !e.Reference:
			out = append(out, altMismatch{alt: key, clause: "can't be an array and a reference"})
		case !f.Array && e.Array && !f.Reference && e.Reference:
			out = append(out, altMismatch{alt: key, clause: "has to be an array and a reference"})
		case f.Array && !e.Array:
			out = append(out, altMismatch{alt: key, clause: "can't be an array"})
		case !f.Array && e.Array:
			out = append(out, altMismatch{alt: key, clause: "has to be an array"})
		case f.Reference && !e.Reference:
			out = append(out, altMismatch{alt: key, clause: "can't be a reference"})
		case !f.Reference && e.Reference:
			out = append(out, altMismatch{alt: key, clause: "has to be a reference"})
		}
	}
	return out
}

// checkAlternativesConsistency reports union alternative mismatches on the
// producing rules. An inferred union covering fewer cases than declared is
// not flagged here.
func checkAlternativesConsistency(r *ValidationResource, found, expected []*types.PropertyType, accept Acceptor) {
	for _, m := range matchAlternatives(found, expected) {
		msg := fmt.Sprintf("the alternative '%s' %s.", m.alt, m.clause)
		for _, rule := range r.Rules {
			accept(SeverityError, msg, ruleAnchor(rule))
		}
	}
}

func checkPropertiesConsistency(r *ValidationResource, inferred, declared *types.InterfaceType, accept Acceptor) {
	for _, found := range inferred.Properties {
		expected := declared.Property(found.Name)
		if expected == nil {
			msg := fmt.Sprintf("property '%s' is not expected.", found.Name)
			for _, info := range assignmentAnchors(r, found.Name) {
				accept(SeverityError, msg, info)
			}
			continue
		}

		if found.TypeString() != expected.TypeString() {
			if ms := matchAlternatives(found.Alternatives, expected.Alternatives); len(ms) > 0 {
				clauses := make([]string, len(ms))
				for i, m := range ms {
					clauses[i] = fmt.Sprintf("the alternative '%s' %s", m.alt, m.clause)
				}
				msg := fmt.Sprintf(
					"the assigned type '%s' is not compatible with the declared property '%s' of type '%s'. %s.",
					found.TypeString(), found.Name, expected.TypeString(), strings.Join(clauses, "; "))
				for _, info := range assignmentAnchors(r, found.Name) {
					accept(SeverityError, msg, info)
				}
			}
		}

		// A property whose only alternative is an array reads as empty when
		// absent; optionality is irrelevant there and never downgraded.
		if !found.SoleArrayAlternative() && !expected.SoleArrayAlternative() &&
			!expected.Optional && found.Optional {
			msg := fmt.Sprintf("property '%s' can't be optional.", found.Name)
			for _, info := range assignmentAnchors(r, found.Name) {
				accept(SeverityError, msg, info)
			}
		}
	}

	for _, expected := range declared.Properties {
		if inferred.Property(expected.Name) == nil {
			msg := fmt.Sprintf("property '%s' is expected.", expected.Name)
			for _, rule := range r.Rules {
				accept(SeverityError, msg, ruleAnchor(rule))
			}
		}
	}
}

func checkSuperTypesConsistency(r *ValidationResource, inferred, declared *types.InterfaceType, accept Acceptor) {
	declaredSet := toSet(declared.SuperTypes)
	for _, name := range inferred.SuperTypes {
		if !declaredSet[name] {
			msg := fmt.Sprintf("supertype '%s' is not expected.", name)
			for _, rule := range r.Rules {
				accept(SeverityError, msg, ruleAnchor(rule))
			}
		}
	}
	inferredSet := toSet(inferred.SuperTypes)
	for _, name := range declared.SuperTypes {
		if !inferredSet[name] {
			msg := fmt.Sprintf("supertype '%s' is expected.", name)
			for _, rule := range r.Rules {
				accept(SeverityError, msg, ruleAnchor(rule))
			}
		}
	}
}

// ruleAnchor targets a producing rule: its return type annotation when
// present, else its name token.
func ruleAnchor(rule *grammar.Rule) DiagnosticInfo {
	if rule.ReturnType != "" {
		rng := rule.ReturnTypeRange
		return DiagnosticInfo{Node: rule, Property: "returnType", Index: -1, Range: &rng}
	}
	rng := rule.NameRange
	return DiagnosticInfo{Node: rule, Property: "name", Index: -1, Range: &rng}
}

// declAnchor targets the name token of an interface or type declaration.
func declAnchor(node grammar.Node) DiagnosticInfo {
	switch decl := node.(type) {
	case *grammar.InterfaceDecl:
		rng := decl.NameRange
		return DiagnosticInfo{Node: decl, Property: "name", Index: -1, Range: &rng}
	case *grammar.TypeDecl:
		rng := decl.NameRange
		return DiagnosticInfo{Node: decl, Property: "name", Index: -1, Range: &rng}
	default:
		return DiagnosticInfo{Node: node, Index: -1}
	}
}

// assignmentAnchors targets every assignment of the given feature across
// the producing rules. Returning nothing drops the diagnostic; an inferred
// property always stems from an assignment, so an empty result only occurs
// on malformed input.
func assignmentAnchors(r *ValidationResource, feature string) []DiagnosticInfo {
	var out []DiagnosticInfo
	for _, rule := range r.Rules {
		for _, a := range grammar.Assignments(rule.Body) {
			if a.Feature == feature {
				rng := a.FeatureRange
				out = append(out, DiagnosticInfo{Node: a, Property: "feature", Index: -1, Range: &rng})
			}
		}
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
