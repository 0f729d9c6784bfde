package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lisc/internal/codegen"
	"lisc/internal/diag"
	"lisc/internal/env"
	"lisc/internal/ir"
	"lisc/internal/lexer"
	"lisc/internal/parser"
	"lisc/internal/vm"
)

const (
	historyFile = ".lisc_history"
	promptMain  = "ready> "
	promptCont  = "...    "
)

func main() {
	out := flag.String("o", "", "write the encoded module to this file")
	run := flag.Bool("run", false, "execute the compiled module and print its result")
	prelude := flag.Bool("prelude", true, "bind the backend builtins into the session environment")
	flag.Parse()

	if flag.NArg() == 0 {
		os.Exit(repl(*prelude))
	}
	os.Exit(compileFile(flag.Arg(0), *out, *run, *prelude))
}

// session is one compilation session: a fresh module, builder and
// environment, with diagnostics going to errw.
type session struct {
	mod      *ir.Module
	builder  *ir.Builder
	env      *env.Env
	reporter *diag.Reporter
	gen      *codegen.Generator
}

func newSession(prelude, noFold bool, errw io.Writer) *session {
	s := &session{
		mod:      &ir.Module{},
		env:      env.New(),
		reporter: diag.NewReporter(errw),
	}
	s.builder = ir.NewBuilder(s.mod)
	s.builder.NoFold = noFold
	s.gen = codegen.New(s.builder, s.env, s.reporter)
	if prelude {
		for name, op := range ir.Builtins() {
			s.env.Set(name, op)
		}
	}
	return s
}

var errTopLevel = errors.New("top-level form must be a list")

// feed parses and generates every top-level form in src. A token that
// cannot start a top-level form stops the loop with errTopLevel; parse
// and codegen failures stop it with the reported error.
func (s *session) feed(src io.RuneReader, each func(ir.Value)) error {
	p := parser.New(lexer.New(src), s.reporter)
	for {
		tok := p.Peek()
		if tok.Type == lexer.EOF {
			return nil
		}
		if tok.Type != lexer.LPAREN {
			s.reporter.Report(fmt.Errorf("%s, got %q", errTopLevel, tok.Lexeme))
			return errTopLevel
		}
		node, err := p.ParseExpression()
		if err != nil {
			return err
		}
		v, err := s.gen.Generate(node)
		if err != nil {
			return err
		}
		if each != nil {
			each(v)
		}
	}
}

func compileFile(path, out string, run, prelude bool) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()

	// File mode materializes the whole program in the module; folding
	// would leave nothing to encode or execute.
	s := newSession(prelude, true, os.Stderr)
	if err := s.feed(bufio.NewReader(f), nil); err != nil {
		if errors.Is(err, errTopLevel) {
			return 2
		}
		return 1
	}

	if out != "" {
		code, err := s.mod.Encode()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := os.WriteFile(out, code, 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("Compiled:", out)
	}
	if run {
		code, err := s.mod.Encode()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		res, err := vm.Run(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(res)
	}
	if out == "" && !run {
		fmt.Print(s.mod)
	}
	return 0
}

func repl(prelude bool) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(prelude, false, os.Stderr)
	for {
		src, ok := readForm(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		// Diagnostics are already on stderr; just keep going with the
		// next form.
		_ = s.feed(strings.NewReader(src), func(v ir.Value) {
			fmt.Println(v)
		})
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readForm collects lines until the parentheses balance, so a form can
// span multiple prompts. There are no strings or comments to confuse a
// plain bracket count.
func readForm(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if depth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

func depth(src string) int {
	d := 0
	for _, ch := range src {
		switch ch {
		case '(':
			d++
		case ')':
			d--
		}
	}
	return d
}
