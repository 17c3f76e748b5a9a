package types

import (
	"testing"

	"github.com/ruediste/langium/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.ParseSource(src, "test.langium")
	require.NoError(t, err)
	return g
}

func TestInferInterfaceFromAssignments(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
entry Machine: 'machine' name=ID states+=State*;
State: 'state' name=ID;
`))

	machine, ok := idx.Lookup("Machine").(*InterfaceType)
	require.True(t, ok)
	require.Len(t, machine.Properties, 2)

	name := machine.Property("name")
	require.NotNil(t, name)
	assert.Equal(t, "string", name.TypeString())
	assert.False(t, name.Optional)

	states := machine.Property("states")
	require.NotNil(t, states)
	assert.Equal(t, "State[]", states.TypeString())
	assert.True(t, states.Optional, "a starred assignment may match zero times")
}

func TestInferCrossReference(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
State: 'state' name=ID ('to' transitions+=[State])*;
`))

	state, ok := idx.Lookup("State").(*InterfaceType)
	require.True(t, ok)
	transitions := state.Property("transitions")
	require.NotNil(t, transitions)
	assert.Equal(t, "@State[]", transitions.TypeString())
	assert.True(t, transitions.Optional)
}

func TestInferBooleanAssignment(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
State: 'state' initial?='initial' name=ID;
`))

	state := idx.Lookup("State").(*InterfaceType)
	assert.Equal(t, "boolean", state.Property("initial").TypeString())
}

func TestInferOptionalityFromAlternatives(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Element: 'el' (left=ID | right=ID) name=ID;
`))

	el := idx.Lookup("Element").(*InterfaceType)
	assert.True(t, el.Property("left").Optional, "assigned in only one branch")
	assert.True(t, el.Property("right").Optional)
	assert.False(t, el.Property("name").Optional)
}

func TestInferRuleReturnTypeGrouping(t *testing.T) {
	// Two rules returning the same type name contribute to one interface;
	// properties assigned by only one of them become optional.
	idx := Infer(parse(t, `
grammar G
FunctionDecl returns Decl: 'fn' name=ID body=ID;
VarDecl returns Decl: 'var' name=ID;
`))

	decl, ok := idx.Lookup("Decl").(*InterfaceType)
	require.True(t, ok)
	assert.False(t, decl.Property("name").Optional)
	assert.True(t, decl.Property("body").Optional)
	assert.Nil(t, idx.Lookup("FunctionDecl"))
}

func TestInferUnionRule(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Literal: NumberLiteral | StringLiteral;
NumberLiteral: value=NUMBER;
StringLiteral: value=STRING;
`))

	literal, ok := idx.Lookup("Literal").(*UnionType)
	require.True(t, ok)
	require.Len(t, literal.Union, 2)
	assert.Equal(t, "NumberLiteral", literal.Union[0].String())
	assert.Equal(t, "StringLiteral", literal.Union[1].String())
}

func TestInferUnionMembersGainSupertype(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Literal: NumberLiteral | StringLiteral;
NumberLiteral: value=NUMBER;
StringLiteral: value=STRING;
`))

	number := idx.Lookup("NumberLiteral").(*InterfaceType)
	assert.Equal(t, []string{"Literal"}, number.SuperTypes)
}

func TestInferUnionBranchCardinality(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Value: NUMBER | STRING+;
`))

	value, ok := idx.Lookup("Value").(*UnionType)
	require.True(t, ok)
	require.Len(t, value.Union, 2)
	assert.Equal(t, "number", value.Union[0].Display())
	assert.Equal(t, "string[]", value.Union[1].Display())
}

func TestInferDatatypeRule(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Size returns string: 'small' | 'big';
`))

	size, ok := idx.Lookup("Size").(*UnionType)
	require.True(t, ok)
	require.Len(t, size.Union, 1, "identical keyword alternatives collapse")
	assert.Equal(t, "string", size.Union[0].String())
}

func TestInferTokenTypes(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Item: count=NUMBER flag=BOOL label=UNKNOWN_TOKEN;
`))

	item := idx.Lookup("Item").(*InterfaceType)
	assert.Equal(t, "number", item.Property("count").TypeString())
	assert.Equal(t, "boolean", item.Property("flag").TypeString())
	assert.Equal(t, "string", item.Property("label").TypeString(), "unknown tokens default to string")
}

func TestInferAssignedAlternatives(t *testing.T) {
	idx := Infer(parse(t, `
grammar G
Item: value=(NUMBER|STRING);
`))

	item := idx.Lookup("Item").(*InterfaceType)
	value := item.Property("value")
	require.NotNil(t, value)
	assert.Equal(t, "number | string", value.TypeString())
}

func TestDeclareInterface(t *testing.T) {
	idx := Declare(parse(t, `
grammar G
interface State extends NamedElement, Scoped {
    name: string
    transitions: @State[]
    label?: string
}
`))

	state, ok := idx.Lookup("State").(*InterfaceType)
	require.True(t, ok)
	assert.Equal(t, []string{"NamedElement", "Scoped"}, state.SuperTypes)
	assert.Equal(t, "@State[]", state.Property("transitions").TypeString())
	assert.True(t, state.Property("label").Optional)
	assert.False(t, state.Property("name").Optional)
}

func TestDeclareUnion(t *testing.T) {
	idx := Declare(parse(t, `
grammar G
type Literal = NumberLiteral | StringLiteral;
`))

	literal, ok := idx.Lookup("Literal").(*UnionType)
	require.True(t, ok)
	require.Len(t, literal.Union, 2)
}

func TestDeclareUnionMembershipBecomesSuperType(t *testing.T) {
	idx := Declare(parse(t, `
grammar G
type Literal = NumberLiteral | StringLiteral;
interface NumberLiteral {
    value: number
}
`))

	number, ok := idx.Lookup("NumberLiteral").(*InterfaceType)
	require.True(t, ok)
	assert.Equal(t, []string{"Literal"}, number.SuperTypes)
}
