package rxgen

// NodeType identifies the type of AST node.
type NodeType int

const (
	NodeEmpty NodeType = iota
	NodeLiteral
	NodeCharClass
	NodeAssertion
	NodeConcat
	NodeAlternate
	NodeQuantifier
	NodeCapture
)

var nodeTypeNames = [...]string{
	NodeEmpty:      "empty",
	NodeLiteral:    "literal",
	NodeCharClass:  "class",
	NodeAssertion:  "assertion",
	NodeConcat:     "concat",
	NodeAlternate:  "alternate",
	NodeQuantifier: "quantifier",
	NodeCapture:    "capture",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "unknown"
}

// Node is the base interface for AST nodes. The set of implementations is
// closed; the generator switches over the concrete types below.
type Node interface {
	Type() NodeType
	node()
}

// Empty generates nothing.
type Empty struct{}

func (n *Empty) Type() NodeType { return NodeEmpty }

// Literal generates a fixed sequence of runes.
type Literal struct {
	Runes    []rune
	FoldCase bool // any case form of each rune is acceptable
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// CharClass generates exactly one rune from the union of Ranges.
// Ranges must be sorted ascending and must not overlap.
type CharClass struct {
	Ranges []RuneRange
}

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	Lo, Hi rune
}

// Len returns the number of runes in the range.
func (r RuneRange) Len() int64 { return int64(r.Hi) - int64(r.Lo) + 1 }

func (n *CharClass) Type() NodeType { return NodeCharClass }

// AssertionType is the kind of a zero-width assertion.
type AssertionType int

const (
	AssertStartText       AssertionType = iota // \A, ^ without (?m)
	AssertEndText                              // \z, $ without (?m)
	AssertStartLine                            // (?m)^
	AssertEndLine                              // (?m)$
	AssertWordBoundary                         // \b
	AssertNotWordBoundary                      // \B
)

// Assertion matches a position without consuming characters. It is always
// treated as satisfied during generation.
type Assertion struct {
	Kind AssertionType
}

func (n *Assertion) Type() NodeType { return NodeAssertion }

// Concat generates each node in order.
type Concat struct {
	Nodes []Node
}

func (n *Concat) Type() NodeType { return NodeConcat }

// Alternate generates one of several branches.
type Alternate struct {
	Nodes []Node
}

func (n *Alternate) Type() NodeType { return NodeAlternate }

// Quantifier generates Body repeated Min..Max times.
type Quantifier struct {
	Body   Node
	Min    int
	Max    int // -1 for infinity
	Greedy bool
}

func (n *Quantifier) Type() NodeType { return NodeQuantifier }

// Capture is a capture group. Index and Name never affect the output.
type Capture struct {
	Body  Node
	Index int    // 1-based index
	Name  string // Optional name
}

func (n *Capture) Type() NodeType { return NodeCapture }

func (*Empty) node()      {}
func (*Literal) node()    {}
func (*CharClass) node()  {}
func (*Assertion) node()  {}
func (*Concat) node()     {}
func (*Alternate) node()  {}
func (*Quantifier) node() {}
func (*Capture) node()    {}
