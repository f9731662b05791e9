// Package rxgen generates random strings that match a regular expression.
//
// A Generator is built once from pattern text (regexp/syntax grammar) and can
// then be asked for any number of matching strings. Every random choice is
// drawn from a caller-supplied Source, so output is reproducible under a
// seeded source:
//
//	g := rxgen.MustNew(`[0-9]{4}-[0-9]{2}-[0-9]{2}`)
//	s, err := g.GenerateString(rxgen.NewSeeded(1))
//
// Unbounded repetition (*, +, {n,}) is limited to MaxRepeat iterations.
// Zero-width assertions such as ^, $ and \b are treated as satisfied and
// emit nothing, so patterns that place them mid-string may produce output
// the pattern does not match.
package rxgen

import (
	"fmt"
	"io"
)

type Generator struct {
	expr  string
	prog  *prog
	opts  Options
	bound boundResolver
}

// New parses pattern and returns a Generator for it.
func New(pattern string, opts ...Option) (*Generator, error) {
	o := buildOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	parser := NewParser(pattern, o.SyntaxFlags)
	node, err := parser.Parse()
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return compile(pattern, node, o)
}

// MustNew is like New but panics if the pattern does not compile.
func MustNew(pattern string, opts ...Option) *Generator {
	g, err := New(pattern, opts...)
	if err != nil {
		panic(fmt.Sprintf("rxgen: New(%q): %v", pattern, err))
	}
	return g
}

// FromNode returns a Generator for a tree built by hand. The tree must not
// be modified afterwards.
func FromNode(root Node, opts ...Option) (*Generator, error) {
	o := buildOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return compile("", root, o)
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func compile(pattern string, root Node, o Options) (*Generator, error) {
	p, err := newCompiler(o.Mode).Compile(root)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return &Generator{
		expr:  pattern,
		prog:  p,
		opts:  o,
		bound: boundResolver{ceiling: o.MaxRepeat, lazyMinimum: o.LazyMinimum},
	}, nil
}

// Generate writes one string from the pattern's language to w.
//
// Errors from w match ErrSink and errors from src match ErrRandomSource;
// both also match the underlying error. An unbounded repetition whose
// minimum exceeds MaxRepeat yields a *RepeatError. Output written before a
// failure is not undone.
func (g *Generator) Generate(src Source, w io.Writer) error {
	s := &genState{
		prog:  g.prog,
		bound: g.bound,
		mode:  g.opts.Mode,
		fold:  g.opts.Fold,
		src:   src,
		w:     w,
		buf:   make([]byte, 0, 64),
	}
	return s.gen(g.prog.root)
}

// String returns the source text used to build the Generator. It is empty
// for generators built with FromNode.
func (g *Generator) String() string {
	return g.expr
}

// Root returns the tree the Generator interprets. It must not be modified.
func (g *Generator) Root() Node {
	return g.prog.root
}

// MaxRepeat returns the ceiling applied to unbounded repetition.
func (g *Generator) MaxRepeat() int {
	return g.opts.MaxRepeat
}

// Mode returns the output mode.
func (g *Generator) Mode() Mode {
	return g.opts.Mode
}

// Options returns a copy of the Generator's settings.
func (g *Generator) Options() Options {
	return g.opts
}
