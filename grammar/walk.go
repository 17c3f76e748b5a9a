package grammar

// Walk visits n and all its descendants in document order. The visit
// function returns false to skip the children of the current node.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch node := n.(type) {
	case *Grammar:
		for _, r := range node.Rules {
			Walk(r, visit)
		}
		for _, i := range node.Interfaces {
			Walk(i, visit)
		}
		for _, t := range node.Types {
			Walk(t, visit)
		}
	case *Rule:
		Walk(node.Body, visit)
	case *InterfaceDecl:
		for _, a := range node.Attributes {
			Walk(a, visit)
		}
	case *Attribute:
		for _, alt := range node.Alternatives {
			Walk(alt, visit)
		}
	case *TypeDecl:
		for _, alt := range node.Alternatives {
			Walk(alt, visit)
		}
	case *Assignment:
		Walk(node.Terminal, visit)
	case *Group:
		for _, e := range node.Elements {
			Walk(e, visit)
		}
	case *Alternatives:
		for _, e := range node.Elements {
			Walk(e, visit)
		}
	}
}

// Assignments returns every property assignment in a rule body element,
// in document order.
func Assignments(el Element) []*Assignment {
	var out []*Assignment
	if el == nil {
		return out
	}
	Walk(el, func(n Node) bool {
		if a, ok := n.(*Assignment); ok {
			out = append(out, a)
		}
		return true
	})
	return out
}
