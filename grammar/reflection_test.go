package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectionSubtypes(t *testing.T) {
	assert.True(t, Reflect.IsSubtype(TypeAssignment, TypeAssignment))
	assert.True(t, Reflect.IsSubtype(TypeAssignment, TypeAbstractElement))
	assert.True(t, Reflect.IsSubtype(TypeAssignment, TypeAstNode))
	assert.True(t, Reflect.IsSubtype(TypeInterfaceDecl, TypeDeclaration))
	assert.False(t, Reflect.IsSubtype(TypeAssignment, TypeDeclaration))
	assert.False(t, Reflect.IsSubtype(TypeAbstractElement, TypeAssignment))
}

func TestReflectionAllTypesCoversHierarchy(t *testing.T) {
	all := Reflect.AllTypes()
	assert.Contains(t, all, TypeGrammar)
	assert.Contains(t, all, TypeAstNode)
	for _, name := range all {
		assert.True(t, Reflect.IsSubtype(name, TypeAstNode), "%s must descend from AstNode", name)
	}
}

func TestReflectionTypeOf(t *testing.T) {
	assert.Equal(t, TypeGrammar, Reflect.TypeOf(&Grammar{}))
	assert.Equal(t, TypeRule, Reflect.TypeOf(&Rule{}))
	assert.Equal(t, TypeAssignment, Reflect.TypeOf(&Assignment{}))
	assert.Equal(t, TypeTypeDecl, Reflect.TypeOf(&TypeDecl{}))
}

func TestWalkDocumentOrder(t *testing.T) {
	g, err := ParseSource(statemachineSrc, "test.langium")
	require.NoError(t, err)

	var order []string
	Walk(g, func(n Node) bool {
		order = append(order, Reflect.TypeOf(n))
		return true
	})
	require.NotEmpty(t, order)
	assert.Equal(t, TypeGrammar, order[0])
	assert.Contains(t, order, TypeInterfaceDecl)
	assert.Contains(t, order, TypeCrossRef)
}

func TestWalkSkipChildren(t *testing.T) {
	g, err := ParseSource(statemachineSrc, "test.langium")
	require.NoError(t, err)

	var count int
	Walk(g, func(n Node) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "returning false stops descent at the root")
}

func TestAssignments(t *testing.T) {
	g, err := ParseSource(statemachineSrc, "test.langium")
	require.NoError(t, err)

	machine := Assignments(g.Rules[0].Body)
	require.Len(t, machine, 2)
	assert.Equal(t, "name", machine[0].Feature)
	assert.Equal(t, "states", machine[1].Feature)

	state := Assignments(g.Rules[1].Body)
	require.Len(t, state, 2)
	assert.Equal(t, "transitions", state[1].Feature)
}
