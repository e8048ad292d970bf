// Package fenv exposes the floating-point exception flags of the
// execution environment as a capability object.
//
// The hardware flags are sticky per OS thread: an operation that raises
// invalid, divide-by-zero, overflow, underflow or inexact sets the
// matching flag and it stays set until cleared. Readers must therefore
// run on a goroutine locked to its thread (runtime.LockOSThread),
// otherwise the flags read belong to whichever thread the scheduler
// picked.
//
// Locking the thread does not make the flags private to the caller: the
// Go runtime does its own float arithmetic (garbage collector pacing,
// allocation assists) on the same thread and may leave inexact raised.
// Manual does not see runtime work and is the environment to use when
// results must not depend on allocation.
package fenv

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

// Env is the floating-point exception state a context samples.
type Env interface {
	// Pending returns the FpeKind bits currently raised.
	Pending() kind.Kind
	// Clear discards every pending flag.
	Clear()
	// Supported returns the FpeKind categories the environment can report.
	Supported() kind.Kind
	// Hardware reports whether the flags belong to the current OS thread.
	Hardware() bool
}

// Hardware returns the environment of the host floating-point unit.
// Categories the host cannot report are absent from Supported and never
// show up in Pending.
func Hardware() Env {
	return hardwareEnv{}
}

type hardwareEnv struct{}

func (hardwareEnv) Pending() kind.Kind   { return readFlags() }
func (hardwareEnv) Clear()               { clearFlags() }
func (hardwareEnv) Supported() kind.Kind { return supported }
func (hardwareEnv) Hardware() bool       { return supported != kind.FpeNone }
