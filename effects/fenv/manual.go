package fenv

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

var _ Env = (*Manual)(nil)

// Manual is a software floating-point environment. Flags are raised
// explicitly with Raise, which makes attribution deterministic in tests
// and lets soft-float code report its own exceptions.
type Manual struct {
	pending kind.Kind
	clears  int
}

// NewManual returns a Manual environment with no pending flags.
func NewManual() *Manual {
	return &Manual{}
}

// Raise sets the FpeKind bits of k. Bits outside kind.FpeBitmask are ignored.
func (m *Manual) Raise(k kind.Kind) {
	m.pending |= k.FPEs()
}

func (m *Manual) Pending() kind.Kind { return m.pending }

func (m *Manual) Clear() {
	m.pending = kind.FpeNone
	m.clears++
}

// Clears returns how many times Clear was called.
func (m *Manual) Clears() int { return m.clears }

func (m *Manual) Supported() kind.Kind {
	return kind.FpeInvalid | kind.FpeDivideByZero | kind.FpeOverflow | kind.FpeUnderflow | kind.FpeInexact
}

func (m *Manual) Hardware() bool { return false }
