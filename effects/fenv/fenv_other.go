//go:build !amd64 && !arm64

package fenv

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

// No flag access on this architecture: every category is absent.
const supported = kind.FpeNone

func readFlags() kind.Kind { return kind.FpeNone }

func clearFlags() {}
