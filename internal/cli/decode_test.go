package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	res, err := Decode([]string{"0x2014", "write|reference", "0"})
	require.NoError(t, err)
	require.Len(t, res.Words, 3)

	assert.Equal(t, "0x2014", res.Words[0].Word)
	assert.Equal(t, []string{"reference", "fpe"}, res.Words[0].Effects)
	assert.Equal(t, []string{"inexact"}, res.Words[0].FPEs)

	assert.Equal(t, "0x000c", res.Words[1].Word)
	assert.Nil(t, res.Words[1].FPEs)

	assert.Equal(t, []string{"pure"}, res.Words[2].Effects)
}

func TestDecodeCommand_Text(t *testing.T) {
	out, err := execute(t, "decode", "0x2814")
	require.NoError(t, err)
	assert.Equal(t, "0x2814  reference|fpe  fpe: overflow|inexact\n", out)
}

func TestDecodeCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "decode", "20")
	require.NoError(t, err)

	var res DecodeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Words, 1)
	assert.Equal(t, "0x0014", res.Words[0].Word)
}

func TestDecodeCommand_BadWord(t *testing.T) {
	_, err := execute(t, "decode", "telepathy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
