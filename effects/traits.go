package effects

import (
	"reflect"

	"github.com/on-the-ground/effect_ive_kinds/internal/memo"
)

// traits is what attribution needs to know about a wrapped type.
type traits struct {
	// address: T is a pointer or unsafe.Pointer.
	address bool
	// floating: T, after removing every pointer level, is a float or
	// complex type.
	floating bool
}

const maxTraitTypes = 1024

var traitsOfType = memo.Tableize(computeTraits, maxTraitTypes)

func computeTraits(t reflect.Type) traits {
	var tr traits
	if t == nil {
		return tr
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		tr.address = true
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		tr.floating = true
	}
	return tr
}

func traitsOf[T any]() traits {
	return traitsOfType(reflect.TypeOf((*T)(nil)).Elem())
}

// ownsMemory reports whether v is a non-nil address. Any such address is
// assumed to point at owned heap memory, which implies a write effect.
// Static data and stack addresses cannot be told apart from heap ones, so
// they are flagged too.
func ownsMemory[T any](tr traits, v T) bool {
	if !tr.address {
		return false
	}
	return !reflect.ValueOf(&v).Elem().IsNil()
}
