package validation

import (
	"context"
	"log/slog"

	"github.com/ruediste/langium/grammar"
)

// Validator drives the registered checks over a parsed grammar, one node
// at a time in document order. Scheduling is single-threaded and
// cooperative: checks of the same document never run in parallel.
type Validator struct {
	registry *Registry
}

// NewValidator returns a Validator over the given registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// NewDefaultValidator wires a validator with the grammar AST reflection and
// the built-in checks registered.
func NewDefaultValidator(logger *slog.Logger) *Validator {
	registry := NewRegistry(grammar.Reflect, logger)
	RegisterTypeChecks(registry)
	return NewValidator(registry)
}

// Validate runs every applicable check against every node of the grammar,
// returning the collected diagnostics in emission order. On cancellation
// the pass unwinds promptly and the context error is returned.
func (v *Validator) Validate(ctx context.Context, g *grammar.Grammar) ([]*Diagnostic, error) {
	var diags []*Diagnostic
	accept := Collect(&diags)

	var nodes []grammar.Node
	grammar.Walk(g, func(n grammar.Node) bool {
		nodes = append(nodes, n)
		return true
	})

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, check := range v.registry.GetChecks(grammar.Reflect.TypeOf(node)) {
			if err := check(ctx, node, accept); err != nil {
				return nil, err
			}
		}
	}
	return diags, nil
}

// RegisterTypeChecks registers the built-in type consistency check. It runs
// once per document, against the grammar root.
func RegisterTypeChecks(registry *Registry) {
	registry.Register(map[string][]Check{
		grammar.TypeGrammar: {checkGrammarTypesConsistency},
	})
}

func checkGrammarTypesConsistency(ctx context.Context, node grammar.Node, accept Acceptor) error {
	g, ok := node.(*grammar.Grammar)
	if !ok {
		return nil
	}
	return ValidateTypesConsistency(ctx, g, accept)
}
