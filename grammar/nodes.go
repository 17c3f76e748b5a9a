// Package grammar defines the AST for grammar files and a parser producing
// position-annotated nodes from source text.
package grammar

// Position is a point in a grammar source file. Line and Column are 1-based,
// Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Range is a source region from Start up to (but not including) End.
type Range struct {
	Start Position
	End   Position
}

// Node is the interface for all grammar AST nodes.
type Node interface {
	node()
	Range() Range
}

// BaseNode carries the source range shared by all nodes.
type BaseNode struct {
	Rng Range
}

func (b BaseNode) Range() Range { return b.Rng }

// Grammar is the root node of a grammar file.
type Grammar struct {
	BaseNode
	Name       string
	NameRange  Range
	Rules      []*Rule
	Interfaces []*InterfaceDecl
	Types      []*TypeDecl
	SourceFile string // display path of the source file
}

func (g *Grammar) node() {}

// Rule represents a parsing rule: name [returns Type]: body ;
// A rule returning a primitive (string, number, boolean, bigint, Date) is a
// datatype rule: its value is a plain datum, not a tree node.
type Rule struct {
	BaseNode
	Name            string
	NameRange       Range
	Entry           bool
	DataType        bool
	ReturnType      string // empty when the rule name doubles as the type name
	ReturnTypeRange Range
	Body            Element
}

func (r *Rule) node() {}

// TypeName returns the name of the type this rule produces.
func (r *Rule) TypeName() string {
	if r.ReturnType != "" && !r.DataType {
		return r.ReturnType
	}
	return r.Name
}

// InterfaceDecl represents interface Name extends A, B { attributes }.
type InterfaceDecl struct {
	BaseNode
	Name       string
	NameRange  Range
	SuperTypes []string
	Attributes []*Attribute
}

func (i *InterfaceDecl) node() {}

// Attribute is one property declaration inside an interface body.
type Attribute struct {
	BaseNode
	Name         string
	NameRange    Range
	Optional     bool
	Alternatives []*AtomType
}

func (a *Attribute) node() {}

// AtomType is one alternative of a declared property or union type:
// an optional @ reference marker, one or more type names, and an optional
// [] array suffix.
type AtomType struct {
	BaseNode
	Types     []string
	Array     bool
	Reference bool
}

func (a *AtomType) node() {}

// TypeDecl represents type Name = A | B ;
type TypeDecl struct {
	BaseNode
	Name         string
	NameRange    Range
	Alternatives []*AtomType
}

func (t *TypeDecl) node() {}

// Element is the interface for rule body nodes.
type Element interface {
	Node
	element()
	// ElemCardinality returns the repetition marker: 0, '?', '*' or '+'.
	ElemCardinality() byte
}

// BaseElement provides the cardinality shared by all rule body nodes.
type BaseElement struct {
	BaseNode
	Cardinality byte // 0, '?', '*' or '+'
}

func (b BaseElement) ElemCardinality() byte { return b.Cardinality }

// Assignment represents feature=terminal, feature+=terminal or feature?=terminal.
type Assignment struct {
	BaseElement
	Feature      string
	FeatureRange Range
	Operator     string // "=", "+=" or "?="
	Terminal     Element
}

func (a *Assignment) node()    {}
func (a *Assignment) element() {}

// RuleRef is an unqualified reference to another rule (or token name).
type RuleRef struct {
	BaseElement
	Name string
}

func (r *RuleRef) node()    {}
func (r *RuleRef) element() {}

// CrossRef represents [Type] or [Type:TOKEN]: a reference to a node of the
// given type elsewhere in the tree, identified by the given token.
type CrossRef struct {
	BaseElement
	Type     string
	Terminal string // token used to parse the reference, empty for the default
}

func (c *CrossRef) node()    {}
func (c *CrossRef) element() {}

// Keyword is a quoted literal in a rule body.
type Keyword struct {
	BaseElement
	Value string
}

func (k *Keyword) node()    {}
func (k *Keyword) element() {}

// Group is a parenthesized or implicit sequence of elements.
type Group struct {
	BaseElement
	Elements []Element
}

func (g *Group) node()    {}
func (g *Group) element() {}

// Alternatives represents a | b | c.
type Alternatives struct {
	BaseElement
	Elements []Element
}

func (a *Alternatives) node()    {}
func (a *Alternatives) element() {}
