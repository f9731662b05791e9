package rxgen

import (
	"fmt"
	"regexp/syntax"
	"unicode"
)

// Parser turns pattern text into an AST. The grammar is the one accepted by
// regexp/syntax; its tree is translated node by node.
type Parser struct {
	input string
	flags syntax.Flags
	// State for capturing groups
	captures int
	names    map[string]int
}

func NewParser(input string, flags syntax.Flags) *Parser {
	return &Parser{
		input: input,
		flags: flags,
		names: make(map[string]int),
	}
}

// Parse parses the input. Parser errors are returned unchanged.
func (p *Parser) Parse() (Node, error) {
	p.captures = 0
	p.names = make(map[string]int)
	re, err := syntax.Parse(p.input, p.flags)
	if err != nil {
		return nil, err
	}
	return p.translate(re)
}

// NumCaptures returns the number of capture groups seen by the last Parse.
func (p *Parser) NumCaptures() int { return p.captures }

// CaptureIndex returns the index of the named group, or -1.
func (p *Parser) CaptureIndex(name string) int {
	if idx, ok := p.names[name]; ok {
		return idx
	}
	return -1
}

func (p *Parser) translate(re *syntax.Regexp) (Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return nil, ErrEmptyClass

	case syntax.OpEmptyMatch:
		return &Empty{}, nil

	case syntax.OpLiteral:
		runes := make([]rune, len(re.Rune))
		copy(runes, re.Rune)
		return &Literal{Runes: runes, FoldCase: re.Flags&syntax.FoldCase != 0}, nil

	case syntax.OpCharClass:
		if len(re.Rune) == 0 {
			return nil, ErrEmptyClass
		}
		ranges := make([]RuneRange, 0, len(re.Rune)/2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			ranges = append(ranges, RuneRange{Lo: re.Rune[i], Hi: re.Rune[i+1]})
		}
		return &CharClass{Ranges: ranges}, nil

	case syntax.OpAnyCharNotNL:
		return &CharClass{Ranges: []RuneRange{{0, '\n' - 1}, {'\n' + 1, unicode.MaxRune}}}, nil

	case syntax.OpAnyChar:
		return &CharClass{Ranges: []RuneRange{{0, unicode.MaxRune}}}, nil

	case syntax.OpBeginLine:
		return &Assertion{Kind: AssertStartLine}, nil
	case syntax.OpEndLine:
		return &Assertion{Kind: AssertEndLine}, nil
	case syntax.OpBeginText:
		return &Assertion{Kind: AssertStartText}, nil
	case syntax.OpEndText:
		return &Assertion{Kind: AssertEndText}, nil
	case syntax.OpWordBoundary:
		return &Assertion{Kind: AssertWordBoundary}, nil
	case syntax.OpNoWordBoundary:
		return &Assertion{Kind: AssertNotWordBoundary}, nil

	case syntax.OpCapture:
		p.captures++
		if re.Name != "" {
			p.names[re.Name] = re.Cap
		}
		body, err := p.translate(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &Capture{Body: body, Index: re.Cap, Name: re.Name}, nil

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		body, err := p.translate(re.Sub[0])
		if err != nil {
			return nil, err
		}
		q := &Quantifier{Body: body, Greedy: re.Flags&syntax.NonGreedy == 0}
		switch re.Op {
		case syntax.OpStar:
			q.Min, q.Max = 0, -1
		case syntax.OpPlus:
			q.Min, q.Max = 1, -1
		case syntax.OpQuest:
			q.Min, q.Max = 0, 1
		default:
			q.Min, q.Max = re.Min, re.Max
		}
		return q, nil

	case syntax.OpConcat:
		nodes, err := p.translateAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Concat{Nodes: nodes}, nil

	case syntax.OpAlternate:
		nodes, err := p.translateAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Alternate{Nodes: nodes}, nil
	}
	return nil, fmt.Errorf("%w: unsupported operator %v", ErrInvalidNode, re.Op)
}

func (p *Parser) translateAll(subs []*syntax.Regexp) ([]Node, error) {
	nodes := make([]Node, 0, len(subs))
	for _, sub := range subs {
		n, err := p.translate(sub)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
