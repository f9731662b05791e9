package rxgen

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// genState carries one Generate call. The prog is shared and read-only;
// everything else belongs to the call.
type genState struct {
	prog  *prog
	bound boundResolver
	mode  Mode
	fold  FoldPolicy
	src   Source
	w     io.Writer
	buf   []byte
}

func (s *genState) gen(node Node) error {
	switch n := node.(type) {
	case *Empty, *Assertion:
		return nil

	case *Literal:
		s.buf = s.buf[:0]
		for _, r := range n.Runes {
			if n.FoldCase && s.fold == FoldRandom {
				if orbit, ok := s.prog.folds[r]; ok {
					i, err := uniform(s.src, uint64(len(orbit)))
					if err != nil {
						return err
					}
					r = orbit[i]
				}
			}
			s.appendRune(r)
		}
		return s.flush()

	case *CharClass:
		t := s.prog.classes[n]
		u, err := uniform(s.src, t.total())
		if err != nil {
			return err
		}
		s.buf = s.buf[:0]
		s.appendRune(t.at(u))
		return s.flush()

	case *Concat:
		for _, sub := range n.Nodes {
			if err := s.gen(sub); err != nil {
				return err
			}
		}
		return nil

	case *Alternate:
		i, err := uniform(s.src, uint64(len(n.Nodes)))
		if err != nil {
			return err
		}
		return s.gen(n.Nodes[i])

	case *Quantifier:
		count, err := s.bound.resolve(n, s.src)
		if err != nil {
			return err
		}
		for range count {
			if err := s.gen(n.Body); err != nil {
				return err
			}
		}
		return nil

	case *Capture:
		return s.gen(n.Body)
	}
	return fmt.Errorf("%w: unknown node %T", ErrInvalidNode, node)
}

func (s *genState) appendRune(r rune) {
	if s.mode == ModeBinary {
		s.buf = append(s.buf, byte(r))
		return
	}
	s.buf = utf8.AppendRune(s.buf, r)
}

func (s *genState) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if _, err := s.w.Write(s.buf); err != nil {
		return sinkError(err)
	}
	return nil
}
