package rxgen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
	maxByte     = 0xFF
)

// classTable is the sampling form of a CharClass in a given mode: the
// effective ranges and the running total of their sizes.
type classTable struct {
	ranges []RuneRange
	cum    []uint64 // cum[i] = sum of sizes of ranges[0..i]
}

func (t *classTable) total() uint64 { return t.cum[len(t.cum)-1] }

// at returns the u-th rune of the class, 0 <= u < total.
func (t *classTable) at(u uint64) rune {
	lo, hi := 0, len(t.cum)-1
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.cum[mid] <= u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var base uint64
	if lo > 0 {
		base = t.cum[lo-1]
	}
	return t.ranges[lo].Lo + rune(u-base)
}

// prog is a validated tree plus the lookup tables derived from it.
type prog struct {
	root    Node
	classes map[*CharClass]*classTable
	folds   map[rune][]rune
}

// compiler validates an AST and builds the tables the generator reads.
type compiler struct {
	mode Mode
	prog *prog
}

func newCompiler(mode Mode) *compiler {
	return &compiler{mode: mode}
}

func (c *compiler) Compile(root Node) (*prog, error) {
	c.prog = &prog{
		root:    root,
		classes: make(map[*CharClass]*classTable),
		folds:   make(map[rune][]rune),
	}
	if err := c.compileNode(root); err != nil {
		return nil, err
	}
	return c.prog, nil
}

func (c *compiler) compileNode(node Node) error {
	switch n := node.(type) {
	case nil:
		return fmt.Errorf("%w: nil node", ErrInvalidNode)

	case *Empty:
		if n == nil {
			return nilNode(node)
		}
		return nil

	case *Assertion:
		if n == nil {
			return nilNode(node)
		}
		return nil

	case *Literal:
		if n == nil {
			return nilNode(node)
		}
		for _, r := range n.Runes {
			if c.mode == ModeBinary && (r < 0 || r > maxByte) {
				return fmt.Errorf("%w: %U", ErrBinaryLiteral, r)
			}
			if c.mode == ModeText && !utf8.ValidRune(r) {
				return fmt.Errorf("%w: %U is not a scalar value", ErrInvalidNode, r)
			}
			if n.FoldCase {
				c.addFold(r)
			}
		}
		return nil

	case *CharClass:
		if n == nil {
			return nilNode(node)
		}
		if _, ok := c.prog.classes[n]; ok {
			return nil
		}
		t, err := c.buildClass(n.Ranges)
		if err != nil {
			return err
		}
		c.prog.classes[n] = t
		return nil

	case *Concat:
		if n == nil {
			return nilNode(node)
		}
		for _, sub := range n.Nodes {
			if err := c.compileNode(sub); err != nil {
				return err
			}
		}
		return nil

	case *Alternate:
		if n == nil {
			return nilNode(node)
		}
		if len(n.Nodes) == 0 {
			return fmt.Errorf("%w: alternation without branches", ErrInvalidNode)
		}
		for _, sub := range n.Nodes {
			if err := c.compileNode(sub); err != nil {
				return err
			}
		}
		return nil

	case *Quantifier:
		if n == nil {
			return nilNode(node)
		}
		if n.Min < 0 || n.Max < -1 || (n.Max >= 0 && n.Min > n.Max) {
			return fmt.Errorf("%w: {%d,%d}", ErrInvalidRepeat, n.Min, n.Max)
		}
		return c.compileNode(n.Body)

	case *Capture:
		if n == nil {
			return nilNode(node)
		}
		return c.compileNode(n.Body)
	}
	return fmt.Errorf("%w: unknown node %T", ErrInvalidNode, node)
}

func nilNode(node Node) error {
	return fmt.Errorf("%w: nil %T", ErrInvalidNode, node)
}

// buildClass checks the class invariants and clips the ranges to the
// scalars the mode can emit.
func (c *compiler) buildClass(ranges []RuneRange) (*classTable, error) {
	if len(ranges) == 0 {
		return nil, ErrEmptyClass
	}
	t := &classTable{}
	for i, r := range ranges {
		if r.Lo > r.Hi || r.Lo < 0 || r.Hi > unicode.MaxRune {
			return nil, fmt.Errorf("%w: %U-%U", ErrInvalidRange, r.Lo, r.Hi)
		}
		if i > 0 && r.Lo <= ranges[i-1].Hi {
			return nil, fmt.Errorf("%w: %U-%U overlaps or precedes %U-%U",
				ErrInvalidRange, r.Lo, r.Hi, ranges[i-1].Lo, ranges[i-1].Hi)
		}
		switch c.mode {
		case ModeBinary:
			if r.Lo > maxByte {
				continue
			}
			t.add(RuneRange{r.Lo, min(r.Hi, maxByte)})
		default:
			if r.Lo < surrogateLo && r.Hi >= surrogateLo {
				t.add(RuneRange{r.Lo, surrogateLo - 1})
			}
			if r.Hi > surrogateHi && r.Lo <= surrogateHi {
				t.add(RuneRange{surrogateHi + 1, r.Hi})
			}
			if r.Hi < surrogateLo || r.Lo > surrogateHi {
				t.add(r)
			}
		}
	}
	if len(t.ranges) == 0 {
		return nil, fmt.Errorf("%w: no %v scalars in class", ErrEmptyClass, c.mode)
	}
	return t, nil
}

func (t *classTable) add(r RuneRange) {
	var prev uint64
	if len(t.cum) > 0 {
		prev = t.cum[len(t.cum)-1]
	}
	t.ranges = append(t.ranges, r)
	t.cum = append(t.cum, prev+uint64(r.Len()))
}

// addFold records the simple case-fold orbit of r, restricted to what the
// mode can emit. Runes without other case forms are not recorded.
func (c *compiler) addFold(r rune) {
	if _, ok := c.prog.folds[r]; ok {
		return
	}
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if c.mode == ModeBinary && f > maxByte {
			continue
		}
		orbit = append(orbit, f)
	}
	if len(orbit) > 1 {
		c.prog.folds[r] = orbit
	}
}
