package validation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ruediste/langium/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultValidatorReportsTypeMismatch(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' v=ID;

interface Machine {
	v: number;
}
`)
	v := NewDefaultValidator(quietLogger())
	diags, err := v.Validate(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "not compatible with the declared property 'v'")
}

func TestDefaultValidatorCleanGrammar(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' v=ID;

interface Machine {
	v: string;
}
`)
	v := NewDefaultValidator(quietLogger())
	diags, err := v.Validate(context.Background(), g)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidatorRunsChecksPerNodeType(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' a=ID b=ID;
`)
	r := newTestRegistry()
	var seen []string
	r.RegisterCheck(grammar.TypeAssignment, func(ctx context.Context, node grammar.Node, accept Acceptor) error {
		seen = append(seen, node.(*grammar.Assignment).Feature)
		return nil
	})

	diags, err := NewValidator(r).Validate(context.Background(), g)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []string{"a", "b"}, seen, "nodes visit in document order")
}

func TestValidatorSupertypeCheckSeesAllElements(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' name=ID states+=State*;
State: 'state' name=ID;
`)
	r := newTestRegistry()
	count := 0
	r.RegisterCheck(grammar.TypeAbstractElement, func(ctx context.Context, node grammar.Node, accept Acceptor) error {
		count++
		return nil
	})

	_, err := NewValidator(r).Validate(context.Background(), g)
	require.NoError(t, err)
	// keyword, assignment, rule ref per assignment, twice over, plus the
	// grouping nodes wrapping each rule body
	assert.Greater(t, count, 6)
}

func TestValidatorStopsOnCancellation(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' a=ID b=ID c=ID;
`)
	ctx, cancel := context.WithCancel(context.Background())
	r := newTestRegistry()
	calls := 0
	r.RegisterCheck(grammar.TypeAssignment, func(ctx context.Context, node grammar.Node, accept Acceptor) error {
		calls++
		cancel()
		return nil
	})

	diags, err := NewValidator(r).Validate(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, diags)
	assert.Equal(t, 1, calls, "no further nodes visit after cancellation")
}

func TestValidatorKeepsGoingPastBrokenCheck(t *testing.T) {
	g := parse(t, `grammar Demo

Machine: 'machine' a=ID b=ID;
`)
	r := newTestRegistry()
	var seen []string
	r.Register(map[string][]Check{
		grammar.TypeAssignment: {
			func(ctx context.Context, node grammar.Node, accept Acceptor) error {
				return fmt.Errorf("no index for %s", node.(*grammar.Assignment).Feature)
			},
			func(ctx context.Context, node grammar.Node, accept Acceptor) error {
				seen = append(seen, node.(*grammar.Assignment).Feature)
				return nil
			},
		},
	})

	diags, err := NewValidator(r).Validate(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "an error occurred during validation")
}
