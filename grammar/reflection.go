package grammar

// Node type names of the grammar AST, including the abstract groupings.
// Checks can be registered against any of these; registering against an
// abstract name covers all of its subtypes.
const (
	TypeAstNode         = "AstNode"
	TypeAbstractElement = "AbstractElement"
	TypeDeclaration     = "Declaration"
	TypeGrammar         = "Grammar"
	TypeRule            = "Rule"
	TypeAssignment      = "Assignment"
	TypeRuleRef         = "RuleRef"
	TypeCrossRef        = "CrossRef"
	TypeKeyword         = "Keyword"
	TypeGroup           = "Group"
	TypeAlternatives    = "Alternatives"
	TypeInterfaceDecl   = "InterfaceDecl"
	TypeTypeDecl        = "TypeDecl"
	TypeAttribute       = "Attribute"
	TypeAtomType        = "AtomType"
)

// superTypes maps every node type name to its ancestors, nearest first.
var superTypes = map[string][]string{
	TypeGrammar:       {TypeAstNode},
	TypeRule:          {TypeAstNode},
	TypeAssignment:    {TypeAbstractElement, TypeAstNode},
	TypeRuleRef:       {TypeAbstractElement, TypeAstNode},
	TypeCrossRef:      {TypeAbstractElement, TypeAstNode},
	TypeKeyword:       {TypeAbstractElement, TypeAstNode},
	TypeGroup:         {TypeAbstractElement, TypeAstNode},
	TypeAlternatives:  {TypeAbstractElement, TypeAstNode},
	TypeInterfaceDecl: {TypeDeclaration, TypeAstNode},
	TypeTypeDecl:      {TypeDeclaration, TypeAstNode},
	TypeAttribute:     {TypeAstNode},
	TypeAtomType:      {TypeAstNode},

	TypeAbstractElement: {TypeAstNode},
	TypeDeclaration:     {TypeAstNode},
	TypeAstNode:         {},
}

// allTypes lists every type name in a fixed order, concrete types first.
var allTypes = []string{
	TypeGrammar,
	TypeRule,
	TypeAssignment,
	TypeRuleRef,
	TypeCrossRef,
	TypeKeyword,
	TypeGroup,
	TypeAlternatives,
	TypeInterfaceDecl,
	TypeTypeDecl,
	TypeAttribute,
	TypeAtomType,
	TypeAbstractElement,
	TypeDeclaration,
	TypeAstNode,
}

// Reflection answers questions about the grammar AST node type hierarchy.
type Reflection struct{}

// Reflect is the shared Reflection instance.
var Reflect = Reflection{}

// AllTypes returns every known node type name in a stable order.
func (Reflection) AllTypes() []string {
	out := make([]string, len(allTypes))
	copy(out, allTypes)
	return out
}

// IsSubtype reports whether sub is the same as or a descendant of super.
func (Reflection) IsSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	for _, s := range superTypes[sub] {
		if s == super {
			return true
		}
	}
	return false
}

// TypeOf returns the node type name for a concrete AST node.
func (Reflection) TypeOf(n Node) string {
	switch n.(type) {
	case *Grammar:
		return TypeGrammar
	case *Rule:
		return TypeRule
	case *Assignment:
		return TypeAssignment
	case *RuleRef:
		return TypeRuleRef
	case *CrossRef:
		return TypeCrossRef
	case *Keyword:
		return TypeKeyword
	case *Group:
		return TypeGroup
	case *Alternatives:
		return TypeAlternatives
	case *InterfaceDecl:
		return TypeInterfaceDecl
	case *TypeDecl:
		return TypeTypeDecl
	case *Attribute:
		return TypeAttribute
	case *AtomType:
		return TypeAtomType
	default:
		return TypeAstNode
	}
}
