package effects

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/effect_ive_kinds/effects/fenv"
	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"go.uber.org/zap"
)

// ExecutionContext accumulates the effects of one unit of work.
//
// IMPORTANT: an ExecutionContext is NOT safe for concurrent use. The
// floating-point flags it samples belong to one OS thread, so a context
// and its regions must stay on the goroutine that created it. With the
// hardware environment, New locks that goroutine to its thread until
// Close.
type ExecutionContext struct {
	_ noCopy

	id        string
	unit      string
	permitted kind.Kind
	invalid   kind.Kind
	kind      kind.Kind
	since     time.Time

	env    fenv.Env
	logger *zap.Logger

	locked bool
	closed bool
}

// New creates a context for a unit of work that may only show the effects
// in permitted. A Nonterminating context starts with kind.Nonterminating
// accumulated. Pending floating-point flags are discarded so state from
// before the context existed is not attributed to it.
func New(permitted kind.Kind, typ ContextType, opts ...Option) *ExecutionContext {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &ExecutionContext{
		id:        uuid.New().String(),
		unit:      o.unit,
		permitted: permitted,
		invalid:   ^permitted & kind.Bitmask,
		kind:      kind.Pure,
		since:     time.Now(),
		env:       o.env,
	}
	c.logger = o.logger.With(zap.String("context_id", c.id), zap.String("unit", c.unit))

	if o.lockThread && o.env.Hardware() {
		runtime.LockOSThread()
		c.locked = true
	}
	if typ == Nonterminating {
		c.kind |= kind.Nonterminating
	}
	c.env.Clear()

	c.logger.Debug("created execution context",
		zap.Stringer("permitted", permitted),
		zap.Stringer("type", typ),
	)
	return c
}

// Close releases the OS thread lock taken by New. The accumulated kind
// stays readable. Calling Close more than once is a no-op.
func (c *ExecutionContext) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.locked {
		runtime.UnlockOSThread()
		c.locked = false
	}
	c.logger.Debug("closed execution context", zap.Stringer("kind", c.kind))
}

// ID returns the unique id of the context.
func (c *ExecutionContext) ID() string { return c.id }

// Unit returns the unit name given with WithUnit.
func (c *ExecutionContext) Unit() string { return c.unit }

// Permitted returns the effect kinds declared acceptable at construction.
func (c *ExecutionContext) Permitted() kind.Kind { return c.permitted }

// Invalid returns the effect kinds that make Valid fail.
func (c *ExecutionContext) Invalid() kind.Kind { return c.invalid }

// MarkException records that control flow may panic, raise a signal or
// exit the process. It cannot be observed after the fact, so the caller
// declares it.
func (c *ExecutionContext) MarkException() {
	c.kind |= kind.Exception
}

// MarkVariationOS records behaviour that depends on the operating system,
// e.g. a path function returning '/' on UNIX and '\\' on Windows.
func (c *ExecutionContext) MarkVariationOS() {
	c.kind |= kind.VariationOS
}

// MarkVariationHardware records behaviour that depends on the hardware,
// e.g. results bounded by the width of int on 32 and 64 bit targets.
func (c *ExecutionContext) MarkVariationHardware() {
	c.kind |= kind.VariationHardware
}

// Clear resets the accumulated kind to kind.Pure and discards pending
// floating-point flags. Nonterminating is not re-seeded.
func (c *ExecutionContext) Clear() {
	c.kind = kind.Pure
	c.since = time.Now()
	c.env.Clear()
	c.logger.Debug("cleared execution context")
}

// Kind returns the accumulated effect word without sampling the
// floating-point environment.
func (c *ExecutionContext) Kind() kind.Kind {
	return c.kind
}

// Valid samples the floating-point environment and reports whether every
// accumulated effect is permitted.
func (c *ExecutionContext) Valid() bool {
	c.sample()
	if c.kind&c.invalid == 0 {
		return true
	}
	c.logger.Debug("effects outside permitted kinds",
		zap.Stringer("kind", c.kind),
		zap.Stringer("invalid", c.kind&c.invalid),
	)
	return false
}

func (c *ExecutionContext) IsPure() bool {
	c.sample()
	return c.kind == kind.Pure
}

func (c *ExecutionContext) HasNonterminating() bool { return c.has(kind.Nonterminating) }

func (c *ExecutionContext) HasException() bool { return c.has(kind.Exception) }

func (c *ExecutionContext) HasReference() bool { return c.has(kind.Reference) }

func (c *ExecutionContext) HasWrite() bool { return c.has(kind.Write) }

func (c *ExecutionContext) HasFPE() bool { return c.has(kind.FPE) }

// FPE is HasFPE that also returns the full accumulated word, so the
// caller can inspect which FpeKind bits were raised.
func (c *ExecutionContext) FPE() (kind.Kind, bool) {
	ok := c.has(kind.FPE)
	return c.kind, ok
}

func (c *ExecutionContext) HasVariationOS() bool { return c.has(kind.VariationOS) }

func (c *ExecutionContext) HasVariationHardware() bool { return c.has(kind.VariationHardware) }

func (c *ExecutionContext) has(bit kind.Kind) bool {
	c.sample()
	return c.kind&bit != 0
}

// attribute accumulates k; floating-point observations also sample the
// environment.
func (c *ExecutionContext) attribute(k kind.Kind, floating bool) {
	c.kind |= k
	if floating {
		c.sample()
	}
}

// sample moves pending floating-point flags into the accumulated kind and
// clears them, so each flag is attributed once.
func (c *ExecutionContext) sample() {
	pending := c.env.Pending().FPEs()
	if pending == kind.FpeNone {
		return
	}
	c.kind |= kind.FPE | pending
	c.env.Clear()
}

// noCopy makes go vet's copylocks check flag copies of a context.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
