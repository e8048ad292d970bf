// Package effects records the observable effects of a unit of code.
//
// An effect is anything a mathematically pure function would not do:
//   - run forever (kind.Nonterminating),
//   - panic, raise a signal or exit (kind.Exception),
//   - read data it does not own (kind.Reference),
//   - write memory it owns on the heap (kind.Write),
//   - raise floating-point exceptions (kind.FPE plus the FpeKind bits),
//   - behave differently per operating system or hardware.
//
// # How does it work?
//
// Create one ExecutionContext per unit of work, declaring which kinds are
// acceptable. Every value, mutable alias and read-only alias the unit
// touches is passed through Observe, ObserveRef or ObserveConst; the
// returned region reports its effects to the context when it is created
// and whenever it is set again. Effects accumulate until Clear.
//
// Floating-point exceptions are not hooked per operation. The flags of the
// floating-point unit are sampled, attributed and cleared whenever a
// float-typed region is produced and before every query, so each flag is
// counted once, at the next observation point.
//
// Exceptions, OS variation and hardware variation cannot be detected
// after the fact; the caller declares them with MarkException,
// MarkVariationOS and MarkVariationHardware.
//
// # Runtime floating-point work
//
// The hardware environment cannot tell the unit's arithmetic from the Go
// runtime's. The garbage collector pacer and allocation assists do float
// math on whatever thread is running, so a unit that only touches
// integers but allocates may still see kind.FPE|kind.FpeInexact, and
// Valid fails if FPE is not permitted. Permit FPE for units that
// allocate, or pass WithEnv(fenv.NewManual()) where classification must
// be deterministic.
//
// The engine never fails. Valid returning false is the only diagnostic:
// the caller decides whether to log, assert or abort.
//
// Example:
//
//	func area(r float64) (float64, bool) {
//	    c := effects.New(kind.Reference|kind.FPE, effects.Terminating)
//	    defer c.Close()
//
//	    radius := effects.Observe(c, r)
//	    a := effects.Observe(c, math.Pi*radius.Get()*radius.Get())
//	    return a.Get(), c.Valid()
//	}
package effects
