package effects_test

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_kinds/effects"
	"github.com/on-the-ground/effect_ive_kinds/effects/fenv"
	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
)

func ExampleObserveRef() {
	c := effects.New(kind.Reference, effects.Terminating, effects.WithEnv(fenv.NewManual()))
	defer c.Close()

	counter := 1
	ref := effects.ObserveRef(c, &counter)
	ref.Set(ref.Get() + 1)

	fmt.Println(counter, c.Kind(), c.Valid())
	// Output: 2 reference true
}

func ExampleExecutionContext_Valid() {
	c := effects.New(kind.Reference, effects.Terminating, effects.WithEnv(fenv.NewManual()))
	defer c.Close()

	effects.Observe(c, new(int))
	fmt.Println(c.Kind(), c.Valid())
	// Output: write false
}
