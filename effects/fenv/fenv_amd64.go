package fenv

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

// MXCSR exception flag bits. The denormal flag (bit 1) has no FpeKind.
const (
	mxcsrInvalid    = 1 << 0
	mxcsrDenormal   = 1 << 1
	mxcsrDivideZero = 1 << 2
	mxcsrOverflow   = 1 << 3
	mxcsrUnderflow  = 1 << 4
	mxcsrPrecision  = 1 << 5
	mxcsrFlagsMask  = 0x3f
)

const supported = kind.FpeInvalid | kind.FpeDivideByZero | kind.FpeOverflow | kind.FpeUnderflow | kind.FpeInexact

func getMXCSR() uint32
func setMXCSR(v uint32)

func readFlags() kind.Kind {
	return mxcsrToKind(getMXCSR())
}

func clearFlags() {
	setMXCSR(getMXCSR() &^ mxcsrFlagsMask)
}

func mxcsrToKind(v uint32) kind.Kind {
	k := kind.FpeNone
	if v&mxcsrInvalid != 0 {
		k |= kind.FpeInvalid
	}
	if v&mxcsrDivideZero != 0 {
		k |= kind.FpeDivideByZero
	}
	if v&mxcsrOverflow != 0 {
		k |= kind.FpeOverflow
	}
	if v&mxcsrUnderflow != 0 {
		k |= kind.FpeUnderflow
	}
	if v&mxcsrPrecision != 0 {
		k |= kind.FpeInexact
	}
	return k
}
