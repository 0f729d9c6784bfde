package ast

import (
	"strconv"
	"strings"
)

// NodeKind identifies which of the three variants a node is.
type NodeKind int

const (
	KindNumber NodeKind = iota
	KindIdent
	KindList
)

// Node is one expression in the syntax tree. Nodes are immutable once
// constructed; consumers dispatch on Kind.
type Node interface {
	Kind() NodeKind
	String() string
}

// NumberExpr is a signed integer literal.
type NumberExpr struct {
	Value int64
}

// IdentExpr is a bare name reference.
type IdentExpr struct {
	Name string
}

// ListExpr is an ordered, possibly empty sequence of child nodes in
// source order. The first item determines the meaning of the form. The
// item count is fixed for the node's lifetime.
type ListExpr struct {
	Items []Node
}

func (*NumberExpr) Kind() NodeKind { return KindNumber }
func (*IdentExpr) Kind() NodeKind  { return KindIdent }
func (*ListExpr) Kind() NodeKind   { return KindList }

func (n *NumberExpr) String() string { return strconv.FormatInt(n.Value, 10) }

func (n *IdentExpr) String() string { return n.Name }

func (n *ListExpr) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range n.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}
