package fenv

import "github.com/on-the-ground/effect_ive_kinds/effects/kind"

// FPSR cumulative exception bits. IDC (input denormal, bit 7) has no FpeKind.
const (
	fpsrInvalid    = 1 << 0
	fpsrDivideZero = 1 << 1
	fpsrOverflow   = 1 << 2
	fpsrUnderflow  = 1 << 3
	fpsrInexact    = 1 << 4
	fpsrDenormal   = 1 << 7
	fpsrFlagsMask  = 0x9f
)

const supported = kind.FpeInvalid | kind.FpeDivideByZero | kind.FpeOverflow | kind.FpeUnderflow | kind.FpeInexact

func getFPSR() uint64
func setFPSR(v uint64)

func readFlags() kind.Kind {
	return fpsrToKind(getFPSR())
}

func clearFlags() {
	setFPSR(getFPSR() &^ fpsrFlagsMask)
}

func fpsrToKind(v uint64) kind.Kind {
	k := kind.FpeNone
	if v&fpsrInvalid != 0 {
		k |= kind.FpeInvalid
	}
	if v&fpsrDivideZero != 0 {
		k |= kind.FpeDivideByZero
	}
	if v&fpsrOverflow != 0 {
		k |= kind.FpeOverflow
	}
	if v&fpsrUnderflow != 0 {
		k |= kind.FpeUnderflow
	}
	if v&fpsrInexact != 0 {
		k |= kind.FpeInexact
	}
	return k
}
