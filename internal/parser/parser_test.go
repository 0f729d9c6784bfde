package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lisc/internal/ast"
	"lisc/internal/diag"
	"lisc/internal/lexer"
)

func newParser(src string) (*Parser, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(lexer.New(strings.NewReader(src)), diag.NewReporter(&buf)), &buf
}

func parseOne(t *testing.T, src string) ast.Node {
	t.Helper()
	p, buf := newParser(src)
	node, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("parse %q: %v (diagnostics: %q)", src, err, buf.String())
	}
	return node
}

func wantKind(t *testing.T, src string, kind ErrorKind) string {
	t.Helper()
	p, buf := newParser(src)
	node, err := p.ParseExpression()
	if err == nil {
		t.Fatalf("parse %q: want failure, got node %s", src, node)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("parse %q: error %v is not a parser.Error", src, err)
	}
	if perr.Kind != kind {
		t.Fatalf("parse %q: want kind %d, got %d (%v)", src, kind, perr.Kind, err)
	}
	if node != nil {
		t.Fatalf("parse %q: failure must not produce a node", src)
	}
	return buf.String()
}

func TestParse_SetForm(t *testing.T) {
	node := parseOne(t, "(set a 5)")
	list, ok := node.(*ast.ListExpr)
	if !ok {
		t.Fatalf("want *ast.ListExpr, got %T", node)
	}
	if len(list.Items) != 3 {
		t.Fatalf("want 3 items, got %d", len(list.Items))
	}
	if id, ok := list.Items[0].(*ast.IdentExpr); !ok || id.Name != "set" {
		t.Errorf("item 0: want Identifier(set), got %s", list.Items[0])
	}
	if id, ok := list.Items[1].(*ast.IdentExpr); !ok || id.Name != "a" {
		t.Errorf("item 1: want Identifier(a), got %s", list.Items[1])
	}
	if n, ok := list.Items[2].(*ast.NumberExpr); !ok || n.Value != 5 {
		t.Errorf("item 2: want NumberLiteral(5), got %s", list.Items[2])
	}
}

func TestParse_Atoms(t *testing.T) {
	if n := parseOne(t, "42"); n.Kind() != ast.KindNumber {
		t.Errorf("42: want number node, got %s", n)
	}
	if n := parseOne(t, "foo"); n.Kind() != ast.KindIdent {
		t.Errorf("foo: want identifier node, got %s", n)
	}
}

func TestParse_EmptyList(t *testing.T) {
	node := parseOne(t, "()")
	list, ok := node.(*ast.ListExpr)
	if !ok {
		t.Fatalf("want *ast.ListExpr, got %T", node)
	}
	if len(list.Items) != 0 {
		t.Fatalf("want empty list, got %d items", len(list.Items))
	}
}

func TestParse_NestedLists(t *testing.T) {
	node := parseOne(t, "(set x (set y 5))")
	if got, want := node.String(), "(set x (set y 5))"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestParse_UnterminatedList(t *testing.T) {
	out := wantKind(t, "(a", UnterminatedList)
	if !strings.Contains(out, "Error: unterminated list") {
		t.Fatalf("diagnostic %q does not identify an unterminated list", out)
	}
}

func TestParse_UnterminatedNestedList(t *testing.T) {
	wantKind(t, "(set a (b 1)", UnterminatedList)
}

func TestParse_UnexpectedToken(t *testing.T) {
	out := wantKind(t, ")", UnexpectedToken)
	if !strings.Contains(out, "Error: unexpected token") {
		t.Fatalf("diagnostic %q does not identify an unexpected token", out)
	}
}

func TestParse_UnexpectedTokenInsideList(t *testing.T) {
	// The unrecognized rune comes through the lexer verbatim and is
	// rejected here.
	wantKind(t, "(a # b)", UnexpectedToken)
}

func TestParse_EOFCannotStartExpression(t *testing.T) {
	wantKind(t, "", UnexpectedToken)
}

func TestParse_FailureIsReportedExactlyOnce(t *testing.T) {
	// The inner failure propagates through the enclosing lists without
	// being re-reported.
	p, buf := newParser("(a (b (c #)))")
	if _, err := p.ParseExpression(); err == nil {
		t.Fatal("want failure")
	}
	if got := strings.Count(buf.String(), "Error:"); got != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %d: %q", got, buf.String())
	}
}

func TestParse_ConsecutiveTopLevelForms(t *testing.T) {
	p, _ := newParser("(set a 1) (set b 2)")
	var got []string
	for p.Peek().Type != lexer.EOF {
		node, err := p.ParseExpression()
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		got = append(got, node.String())
	}
	if len(got) != 2 || got[0] != "(set a 1)" || got[1] != "(set b 2)" {
		t.Fatalf("got %v", got)
	}
}
