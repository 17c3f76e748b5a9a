package grammar

import (
	"errors"
	"fmt"
	"os"
)

// ParseError is a positioned syntax error in a grammar file.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// primitiveTypes are the value types a datatype rule may return.
var primitiveTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"bigint":  true,
	"Date":    true,
}

// ParseFile reads a grammar file and parses it into a Grammar AST.
func ParseFile(filename string) (*Grammar, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return ParseSource(string(src), filename)
}

// ParseSource parses raw grammar source into a Grammar AST.
// The name parameter is used for error messages and diagnostics.
func ParseSource(source, name string) (*Grammar, error) {
	p := &parser{lex: newLexer(source)}
	p.cur = p.lex.next()
	p.ahead = p.lex.next()
	g := p.parseGrammar()
	g.SourceFile = name
	errs := append(p.lex.errs, p.errs...)
	if len(errs) > 0 {
		return g, fmt.Errorf("%s: %w", name, errors.Join(errs...))
	}
	return g, nil
}

// parser is a recursive-descent parser with two tokens of lookahead.
type parser struct {
	lex   *lexer
	cur   token
	ahead token
	errs  []error
}

func (p *parser) advance() token {
	t := p.cur
	p.cur = p.ahead
	p.ahead = p.lex.next()
	return t
}

func (p *parser) at(kind tokenKind, text string) bool {
	return p.cur.Kind == kind && (text == "" || p.cur.Text == text)
}

func (p *parser) atPunct(text string) bool { return p.at(tokPunct, text) }

func (p *parser) errorf(pos Position, format string, args ...any) {
	p.errs = append(p.errs, &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it matches, otherwise records an
// error and leaves the token in place.
func (p *parser) expect(kind tokenKind, text string) token {
	if p.at(kind, text) {
		return p.advance()
	}
	want := text
	if want == "" {
		want = kind.String()
	}
	p.errorf(p.cur.Pos, "expected '%s', found '%s'", want, p.cur.Text)
	return p.cur
}

// expectIdent consumes an identifier, returning its token.
func (p *parser) expectIdent() token {
	return p.expect(tokIdent, "")
}

func (p *parser) parseGrammar() *Grammar {
	g := &Grammar{}
	start := p.cur.Pos

	p.expect(tokIdent, "grammar")
	name := p.expectIdent()
	g.Name = name.Text
	g.NameRange = name.Rng()

	for p.cur.Kind != tokEOF {
		switch {
		case p.at(tokIdent, "interface"):
			g.Interfaces = append(g.Interfaces, p.parseInterfaceDecl())
		case p.at(tokIdent, "type") && p.ahead.Kind == tokIdent:
			g.Types = append(g.Types, p.parseTypeDecl())
		case p.cur.Kind == tokIdent:
			g.Rules = append(g.Rules, p.parseRule())
		default:
			p.errorf(p.cur.Pos, "expected rule, interface or type declaration, found '%s'", p.cur.Text)
			p.advance()
		}
	}

	g.Rng = Range{Start: start, End: p.cur.End}
	return g
}

func (p *parser) parseRule() *Rule {
	r := &Rule{}
	start := p.cur.Pos

	if p.at(tokIdent, "entry") && p.ahead.Kind == tokIdent {
		r.Entry = true
		p.advance()
	}
	name := p.expectIdent()
	r.Name = name.Text
	r.NameRange = name.Rng()

	if p.at(tokIdent, "returns") {
		p.advance()
		ret := p.expectIdent()
		r.ReturnType = ret.Text
		r.ReturnTypeRange = ret.Rng()
		r.DataType = primitiveTypes[ret.Text]
	}

	p.expect(tokPunct, ":")
	r.Body = p.parseAlternatives()
	end := p.cur.End
	p.expect(tokPunct, ";")

	r.Rng = Range{Start: start, End: end}
	return r
}

func (p *parser) parseAlternatives() Element {
	first := p.parseSequence()
	if !p.atPunct("|") {
		return first
	}
	alt := &Alternatives{Elements: []Element{first}}
	for p.atPunct("|") {
		p.advance()
		alt.Elements = append(alt.Elements, p.parseSequence())
	}
	alt.Rng = Range{Start: first.Range().Start, End: alt.Elements[len(alt.Elements)-1].Range().End}
	return alt
}

func (p *parser) parseSequence() Element {
	var elems []Element
	for p.startsItem() {
		elems = append(elems, p.parseItem())
	}
	if len(elems) == 0 {
		p.errorf(p.cur.Pos, "expected rule element, found '%s'", p.cur.Text)
		return &Group{BaseElement: BaseElement{BaseNode: BaseNode{Rng: Range{Start: p.cur.Pos, End: p.cur.Pos}}}}
	}
	if len(elems) == 1 {
		return elems[0]
	}
	g := &Group{Elements: elems}
	g.Rng = Range{Start: elems[0].Range().Start, End: elems[len(elems)-1].Range().End}
	return g
}

func (p *parser) startsItem() bool {
	return p.cur.Kind == tokIdent || p.cur.Kind == tokString ||
		p.atPunct("(") || p.atPunct("[")
}

func (p *parser) parseItem() Element {
	// feature=..., feature+=..., feature?=...
	if p.cur.Kind == tokIdent && p.ahead.Kind == tokPunct &&
		(p.ahead.Text == "=" || p.ahead.Text == "+=" || p.ahead.Text == "?=") {
		feature := p.advance()
		op := p.advance()
		terminal := p.parsePrimary()
		a := &Assignment{
			Feature:      feature.Text,
			FeatureRange: feature.Rng(),
			Operator:     op.Text,
			Terminal:     terminal,
		}
		a.Rng = Range{Start: feature.Pos, End: terminal.Range().End}
		p.parseCardinality(&a.BaseElement, &a.Rng)
		return a
	}
	el := p.parsePrimary()
	switch e := el.(type) {
	case *Assignment:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	case *RuleRef:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	case *CrossRef:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	case *Keyword:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	case *Group:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	case *Alternatives:
		p.parseCardinality(&e.BaseElement, &e.Rng)
	}
	return el
}

// parseCardinality consumes a trailing ?, * or +, extending the node range.
func (p *parser) parseCardinality(be *BaseElement, rng *Range) {
	if p.atPunct("?") || p.atPunct("*") || p.atPunct("+") {
		t := p.advance()
		be.Cardinality = t.Text[0]
		rng.End = t.End
	}
}

func (p *parser) parsePrimary() Element {
	switch {
	case p.cur.Kind == tokString:
		t := p.advance()
		k := &Keyword{Value: t.Text}
		k.Rng = t.Rng()
		return k

	case p.atPunct("["):
		open := p.advance()
		typ := p.expectIdent()
		c := &CrossRef{Type: typ.Text}
		if p.atPunct(":") {
			p.advance()
			c.Terminal = p.expectIdent().Text
		}
		end := p.cur.End
		p.expect(tokPunct, "]")
		c.Rng = Range{Start: open.Pos, End: end}
		return c

	case p.atPunct("("):
		p.advance()
		inner := p.parseAlternatives()
		p.expect(tokPunct, ")")
		return inner

	case p.cur.Kind == tokIdent:
		t := p.advance()
		r := &RuleRef{Name: t.Text}
		r.Rng = t.Rng()
		return r

	default:
		p.errorf(p.cur.Pos, "expected rule element, found '%s'", p.cur.Text)
		t := p.advance()
		k := &Keyword{Value: t.Text}
		k.Rng = t.Rng()
		return k
	}
}

func (p *parser) parseInterfaceDecl() *InterfaceDecl {
	decl := &InterfaceDecl{}
	start := p.cur.Pos
	p.expect(tokIdent, "interface")

	name := p.expectIdent()
	decl.Name = name.Text
	decl.NameRange = name.Rng()

	if p.at(tokIdent, "extends") {
		p.advance()
		decl.SuperTypes = append(decl.SuperTypes, p.expectIdent().Text)
		for p.atPunct(",") {
			p.advance()
			decl.SuperTypes = append(decl.SuperTypes, p.expectIdent().Text)
		}
	}

	p.expect(tokPunct, "{")
	for p.cur.Kind == tokIdent {
		decl.Attributes = append(decl.Attributes, p.parseAttribute())
	}
	end := p.cur.End
	p.expect(tokPunct, "}")

	decl.Rng = Range{Start: start, End: end}
	return decl
}

func (p *parser) parseAttribute() *Attribute {
	a := &Attribute{}
	name := p.expectIdent()
	a.Name = name.Text
	a.NameRange = name.Rng()
	start := name.Pos

	if p.atPunct("?") {
		p.advance()
		a.Optional = true
	}
	p.expect(tokPunct, ":")
	a.Alternatives = p.parseAtomTypes()

	end := p.cur.Pos
	if n := len(a.Alternatives); n > 0 {
		end = a.Alternatives[n-1].Range().End
	}
	if p.atPunct(";") {
		end = p.cur.End
		p.advance()
	}
	a.Rng = Range{Start: start, End: end}
	return a
}

func (p *parser) parseTypeDecl() *TypeDecl {
	decl := &TypeDecl{}
	start := p.cur.Pos
	p.expect(tokIdent, "type")

	name := p.expectIdent()
	decl.Name = name.Text
	decl.NameRange = name.Rng()

	p.expect(tokPunct, "=")
	decl.Alternatives = p.parseAtomTypes()
	end := p.cur.End
	p.expect(tokPunct, ";")

	decl.Rng = Range{Start: start, End: end}
	return decl
}

func (p *parser) parseAtomTypes() []*AtomType {
	types := []*AtomType{p.parseAtomType()}
	for p.atPunct("|") {
		p.advance()
		types = append(types, p.parseAtomType())
	}
	return types
}

func (p *parser) parseAtomType() *AtomType {
	a := &AtomType{}
	start := p.cur.Pos
	end := p.cur.End

	if p.atPunct("@") {
		p.advance()
		a.Reference = true
	}
	if p.atPunct("(") {
		p.advance()
		a.Types = append(a.Types, p.expectIdent().Text)
		for p.atPunct("|") {
			p.advance()
			a.Types = append(a.Types, p.expectIdent().Text)
		}
		end = p.cur.End
		p.expect(tokPunct, ")")
	} else {
		t := p.expectIdent()
		a.Types = append(a.Types, t.Text)
		end = t.End
	}

	if p.atPunct("[") {
		p.advance()
		end = p.cur.End
		p.expect(tokPunct, "]")
		a.Array = true
	}
	a.Rng = Range{Start: start, End: end}
	return a
}
