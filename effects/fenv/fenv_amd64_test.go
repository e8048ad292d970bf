package fenv

import (
	"testing"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/stretchr/testify/assert"
)

func TestMXCSRToKind(t *testing.T) {
	// 0x1f80 is the power-on value: all exceptions masked, no flag raised.
	assert.Equal(t, kind.FpeNone, mxcsrToKind(0x1f80))
	assert.Equal(t, kind.FpeNone, mxcsrToKind(0x1f80|mxcsrDenormal))
	assert.Equal(t, kind.FpeInvalid, mxcsrToKind(0x1f80|mxcsrInvalid))
	assert.Equal(t, kind.FpeOverflow|kind.FpeInexact, mxcsrToKind(mxcsrOverflow|mxcsrPrecision))
	assert.Equal(t, supported, mxcsrToKind(mxcsrFlagsMask))
}
