package rxgen

// boundResolver picks the iteration count of a quantifier.
type boundResolver struct {
	ceiling     int
	lazyMinimum bool
}

// upper returns the effective upper bound of q. An explicit Max wins even
// above the ceiling; only unbounded repetition is clamped.
func (b boundResolver) upper(q *Quantifier) int {
	if b.lazyMinimum && !q.Greedy {
		return q.Min
	}
	if q.Max < 0 {
		return b.ceiling
	}
	return q.Max
}

// resolve draws a count uniformly from [q.Min, upper(q)]. An unbounded
// repetition whose minimum exceeds the ceiling fails in every mode.
func (b boundResolver) resolve(q *Quantifier, src Source) (int, error) {
	if q.Max < 0 && q.Min > b.ceiling {
		return 0, &RepeatError{Min: q.Min, Ceiling: b.ceiling}
	}
	hi := b.upper(q)
	n, err := uniform(src, uint64(hi-q.Min)+1)
	if err != nil {
		return 0, err
	}
	return q.Min + int(n), nil
}
