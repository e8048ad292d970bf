package fenv

import (
	"testing"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/stretchr/testify/assert"
)

func TestFPSRToKind(t *testing.T) {
	assert.Equal(t, kind.FpeNone, fpsrToKind(0))
	assert.Equal(t, kind.FpeNone, fpsrToKind(fpsrDenormal))
	assert.Equal(t, kind.FpeDivideByZero, fpsrToKind(fpsrDivideZero))
	assert.Equal(t, kind.FpeUnderflow|kind.FpeInexact, fpsrToKind(fpsrUnderflow|fpsrInexact))
	assert.Equal(t, supported, fpsrToKind(fpsrFlagsMask))
}
