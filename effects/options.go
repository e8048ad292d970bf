package effects

import (
	"github.com/on-the-ground/effect_ive_kinds/effects/fenv"
	"go.uber.org/zap"
)

// ContextType declares whether a unit of work is guaranteed to terminate.
type ContextType int

const (
	// Terminating: execution always finishes in finite time, no infinite
	// timeouts or loops.
	Terminating ContextType = iota
	// Nonterminating: execution may not terminate.
	Nonterminating
)

func (t ContextType) String() string {
	if t == Nonterminating {
		return "nonterminating"
	}
	return "terminating"
}

// Option configures an ExecutionContext.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	env        fenv.Env
	unit       string
	lockThread bool
}

func defaultOptions() options {
	return options{
		logger:     zap.NewNop(),
		env:        fenv.Hardware(),
		lockThread: true,
	}
}

// WithLogger routes context diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEnv replaces the host floating-point environment.
func WithEnv(env fenv.Env) Option {
	return func(o *options) {
		if env != nil {
			o.env = env
		}
	}
}

// WithUnit names the unit of work in logs and reports.
func WithUnit(name string) Option {
	return func(o *options) {
		o.unit = name
	}
}

// WithoutThreadLock leaves the calling goroutine free to migrate between
// OS threads. Only safe when the environment is not the hardware one or
// the caller already holds runtime.LockOSThread.
func WithoutThreadLock() Option {
	return func(o *options) {
		o.lockThread = false
	}
}
