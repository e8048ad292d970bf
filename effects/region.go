package effects

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

// Region is a tracked wrapper that reported its effects to the context
// that created it.
type Region[T any] interface {
	Get() T
	Context() *ExecutionContext
}

var (
	_ Region[int] = Value[int]{}
	_ Region[int] = Ref[int]{}
	_ Region[int] = Const[int]{}
)

// Value is a region owning its value. Regions are created by a context;
// the zero value of Value, Ref or Const is not usable.
type Value[T any] struct {
	ctx   *ExecutionContext
	value T
}

// Observe wraps a value owned by the unit of work. A non-nil pointer
// value attributes kind.Write; a float (or pointer to float) value
// attributes kind.Reference and samples the floating-point environment.
func Observe[T any](c *ExecutionContext, v T) Value[T] {
	r := Value[T]{ctx: c, value: v}
	createdValue(c, r.value)
	return r
}

func (r Value[T]) Get() T                     { return r.value }
func (r Value[T]) Context() *ExecutionContext { return r.ctx }

// Set replaces the value and attributes it again. The zero Value has no
// context and panics.
func (r *Value[T]) Set(v T) {
	if r.ctx == nil {
		panic("effects: Set on a Value not created by Observe")
	}
	r.value = v
	createdValue(r.ctx, r.value)
}

// Assign copies the value of o into r and attributes it to r's context.
func (r *Value[T]) Assign(o Value[T]) {
	r.Set(o.value)
}

// Const is a region aliasing caller data the unit of work only reads.
type Const[T any] struct {
	ctx      *ExecutionContext
	constant *T
}

// ObserveConst wraps a read-only alias. Reading is not a reference
// effect; only a non-nil pointer value or a float type attributes
// anything. p must not be nil.
func ObserveConst[T any](c *ExecutionContext, p *T) Const[T] {
	if p == nil {
		panic("effects: ObserveConst of nil alias")
	}
	r := Const[T]{ctx: c, constant: p}
	createdValue(c, *r.constant)
	return r
}

func (r Const[T]) Get() T                     { return *r.constant }
func (r Const[T]) Context() *ExecutionContext { return r.ctx }

// Ref is a region aliasing mutable caller data the unit of work does not
// own.
type Ref[T any] struct {
	ctx       *ExecutionContext
	reference *T
}

// ObserveRef wraps a mutable alias. It always attributes kind.Reference,
// plus kind.Write when *p is a non-nil pointer. p must not be nil.
func ObserveRef[T any](c *ExecutionContext, p *T) Ref[T] {
	if p == nil {
		panic("effects: ObserveRef of nil alias")
	}
	r := Ref[T]{ctx: c, reference: p}
	createdReference(c, *r.reference)
	return r
}

func (r Ref[T]) Get() T                     { return *r.reference }
func (r Ref[T]) Context() *ExecutionContext { return r.ctx }

// Set writes v through the alias and attributes it again. The zero Ref
// has no alias and panics.
func (r Ref[T]) Set(v T) {
	if r.ctx == nil || r.reference == nil {
		panic("effects: Set on a Ref not created by ObserveRef")
	}
	*r.reference = v
	createdReference(r.ctx, *r.reference)
}

// createdValue attributes owned values and read-only aliases alike.
func createdValue[T any](c *ExecutionContext, v T) {
	tr := traitsOf[T]()
	k := kind.Pure
	if ownsMemory(tr, v) {
		k |= kind.Write
	}
	if tr.floating {
		// floating-point use reads the rounding mode, a global
		k |= kind.Reference
	}
	c.attribute(k, tr.floating)
}

func createdReference[T any](c *ExecutionContext, v T) {
	tr := traitsOf[T]()
	k := kind.Reference
	if ownsMemory(tr, v) {
		k |= kind.Write
	}
	c.attribute(k, tr.floating)
}
