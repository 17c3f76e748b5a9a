package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"

	"github.com/ruediste/langium/grammar"
)

// Check validates one AST node, streaming problems through the acceptor.
// A check may block; it polls ctx at natural suspension points and returns
// ctx.Err() once cancellation is observed. Any other returned error (or a
// panic) is the check's own failure and never aborts the validation pass.
type Check func(ctx context.Context, node grammar.Node, accept Acceptor) error

// Reflection is the subtype oracle the registry expands registrations with.
type Reflection interface {
	AllTypes() []string
	IsSubtype(sub, super string) bool
}

// Registry maps node type names to the checks to run against them.
//
// A check registered for a type name is stored against every subtype of
// that name, so looking up checks for a concrete node already includes
// everything inherited from ancestor registrations. Registration happens
// once during service construction; validation passes only read.
type Registry struct {
	reflection Reflection
	logger     *slog.Logger
	checks     map[string][]Check
}

// NewRegistry creates a Registry using the given subtype oracle.
// A nil logger falls back to slog.Default().
func NewRegistry(reflection Reflection, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		reflection: reflection,
		logger:     logger,
		checks:     make(map[string][]Check),
	}
}

// Register adds checks keyed by the type name they apply to. Each check is
// propagated to every subtype of its key and wrapped for failure isolation.
// Registering the same check twice appends it twice.
func (r *Registry) Register(checks map[string][]Check) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, check := range checks[name] {
			r.RegisterCheck(name, check)
		}
	}
}

// RegisterCheck adds a single check for the given type name and all of its
// subtypes.
func (r *Registry) RegisterCheck(typeName string, check Check) {
	wrapped := r.wrap(check)
	for _, sub := range r.reflection.AllTypes() {
		if r.reflection.IsSubtype(sub, typeName) {
			r.checks[sub] = append(r.checks[sub], wrapped)
		}
	}
}

// GetChecks returns the checks accumulated for a type name. Inheritance was
// resolved at registration time, so this is a plain lookup.
func (r *Registry) GetChecks(typeName string) []Check {
	return r.checks[typeName]
}

// wrap isolates a check's failures: a panic or a non-cancellation error
// becomes a single diagnostic on the node under check plus a log entry,
// so one author's crash never aborts the pass or sibling checks.
// Cancellation is not swallowed; it propagates to the caller.
func (r *Registry) wrap(check Check) Check {
	return func(ctx context.Context, node grammar.Node, accept Acceptor) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := debug.Stack()
				r.logger.Error("validation check panicked",
					slog.Any("panic", rec),
					slog.String("stack", string(stack)))
				accept(SeverityError,
					fmt.Sprintf("an error occurred during validation: %v", rec),
					DiagnosticInfo{Node: node, Index: -1})
				err = nil
			}
		}()

		err = check(ctx, node, accept)
		if err == nil {
			// The check may have suspended and resumed; cancellation raised
			// in the meantime still has to unwind the pass.
			return ctx.Err()
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		r.logger.Error("validation check failed", slog.Any("error", err))
		accept(SeverityError,
			"an error occurred during validation: "+err.Error(),
			DiagnosticInfo{Node: node, Index: -1})
		return nil
	}
}
