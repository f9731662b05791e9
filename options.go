package rxgen

import (
	"fmt"
	"regexp/syntax"
	"strings"
)

// DefaultMaxRepeat is the ceiling used for *, + and {n,} when none is configured.
const DefaultMaxRepeat = 100

// Mode selects how generated scalars are encoded.
type Mode int

const (
	// ModeText emits valid UTF-8. Surrogate code points are never produced.
	ModeText Mode = iota
	// ModeBinary emits one byte per scalar. Classes are clipped to 0x00-0xFF.
	ModeBinary
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeBinary:
		return "binary"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "text" or "binary" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return ModeText, nil
	case "binary", "bytes":
		return ModeBinary, nil
	}
	return ModeText, fmt.Errorf("rxgen: unknown mode %q", s)
}

// FoldPolicy controls what a case-insensitive literal emits.
type FoldPolicy int

const (
	// FoldRandom picks each letter uniformly among its simple case folds.
	FoldRandom FoldPolicy = iota
	// FoldPreserve emits the runes stored in the Literal. For parsed
	// patterns regexp/syntax stores the smallest case form, so (?i)abc
	// yields "ABC".
	FoldPreserve
)

func (f FoldPolicy) String() string {
	switch f {
	case FoldRandom:
		return "random"
	case FoldPreserve:
		return "preserve"
	}
	return fmt.Sprintf("FoldPolicy(%d)", int(f))
}

// ParseFoldPolicy converts "random" or "preserve" into a FoldPolicy.
func ParseFoldPolicy(s string) (FoldPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return FoldRandom, nil
	case "preserve":
		return FoldPreserve, nil
	}
	return FoldRandom, fmt.Errorf("rxgen: unknown fold policy %q", s)
}

// Options configures a Generator. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// MaxRepeat replaces the missing upper bound of unbounded repetitions.
	// Explicit bounds in the pattern are honored even when larger.
	MaxRepeat int
	Mode      Mode
	Fold      FoldPolicy
	// LazyMinimum makes non-greedy repetitions always emit their minimum.
	LazyMinimum bool
	// SyntaxFlags are passed to regexp/syntax when parsing pattern text.
	SyntaxFlags syntax.Flags
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the settings used when no Option is given.
func DefaultOptions() Options {
	return Options{
		MaxRepeat:   DefaultMaxRepeat,
		Mode:        ModeText,
		Fold:        FoldRandom,
		SyntaxFlags: syntax.Perl,
	}
}

// WithMaxRepeat sets the ceiling for unbounded repetition. n must be positive.
func WithMaxRepeat(n int) Option {
	return func(o *Options) { o.MaxRepeat = n }
}

// WithMode sets the output encoding.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithFoldPolicy sets how case-insensitive literals are emitted.
func WithFoldPolicy(f FoldPolicy) Option {
	return func(o *Options) { o.Fold = f }
}

// WithLazyMinimum makes x*?, x+?, x{n,m}? and friends emit their minimum count.
// x{n,}? still fails with ErrConfiguration when n exceeds the max repeat.
func WithLazyMinimum() Option {
	return func(o *Options) { o.LazyMinimum = true }
}

// WithSyntaxFlags overrides the regexp/syntax parse flags (default syntax.Perl).
func WithSyntaxFlags(f syntax.Flags) Option {
	return func(o *Options) { o.SyntaxFlags = f }
}

func (o Options) validate() error {
	if o.MaxRepeat <= 0 {
		return fmt.Errorf("%w: max repeat must be positive, got %d", ErrConfiguration, o.MaxRepeat)
	}
	switch o.Mode {
	case ModeText, ModeBinary:
	default:
		return fmt.Errorf("%w: unknown mode %v", ErrConfiguration, o.Mode)
	}
	switch o.Fold {
	case FoldRandom, FoldPreserve:
	default:
		return fmt.Errorf("%w: unknown fold policy %v", ErrConfiguration, o.Fold)
	}
	return nil
}
