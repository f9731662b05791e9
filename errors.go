package rxgen

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile is matched by every *CompileError.
	ErrCompile = errors.New("rxgen: pattern does not compile")
	// ErrEmptyClass indicates a character class with no generable rune.
	ErrEmptyClass = errors.New("rxgen: empty character class")
	// ErrInvalidRange indicates class ranges that are inverted, unsorted or overlapping.
	ErrInvalidRange = errors.New("rxgen: invalid character class range")
	// ErrInvalidRepeat indicates a quantifier with an impossible min/max pair.
	ErrInvalidRepeat = errors.New("rxgen: invalid repeat bounds")
	// ErrInvalidNode indicates a nil node or an alternation without branches.
	ErrInvalidNode = errors.New("rxgen: invalid node")
	// ErrBinaryLiteral indicates a literal rune that does not fit in a byte in binary mode.
	ErrBinaryLiteral = errors.New("rxgen: literal rune does not fit in a byte")

	// ErrConfiguration indicates generator settings that cannot produce output.
	ErrConfiguration = errors.New("rxgen: configuration error")
	// ErrSink wraps failures of the output writer.
	ErrSink = errors.New("rxgen: write failed")
	// ErrRandomSource wraps failures of the random source.
	ErrRandomSource = errors.New("rxgen: random source failed")
	// ErrSourceExhausted is returned by sources with a finite supply of values.
	ErrSourceExhausted = errors.New("rxgen: random source exhausted")
)

// CompileError reports a pattern that could not be turned into a generator.
// Err is either the parser's error, returned verbatim, or one of the
// validation errors above.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// RepeatError reports an unbounded repetition whose minimum exceeds the
// configured ceiling.
type RepeatError struct {
	Min     int
	Ceiling int
}

func (e *RepeatError) Error() string {
	return fmt.Sprintf("rxgen: repeat minimum %d exceeds max repeat %d", e.Min, e.Ceiling)
}

func (e *RepeatError) Is(target error) bool { return target == ErrConfiguration }

func sinkError(err error) error {
	return fmt.Errorf("%w: %w", ErrSink, err)
}

func sourceError(err error) error {
	return fmt.Errorf("%w: %w", ErrRandomSource, err)
}
