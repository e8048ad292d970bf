package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/spf13/cobra"
)

// DecodedWord is one decoded kind word.
type DecodedWord struct {
	Input   string   `json:"input" yaml:"input"`
	Word    string   `json:"word" yaml:"word"`
	Effects []string `json:"effects" yaml:"effects"`
	FPEs    []string `json:"fpes,omitempty" yaml:"fpes,omitempty"`
}

// DecodeResult is the output of the decode command.
type DecodeResult struct {
	Words []DecodedWord `json:"words" yaml:"words"`
}

func (r DecodeResult) Text(w io.Writer) error {
	for _, d := range r.Words {
		line := fmt.Sprintf("%s  %s", d.Word, strings.Join(d.Effects, "|"))
		if len(d.FPEs) > 0 {
			line += "  fpe: " + strings.Join(d.FPEs, "|")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses each input as a kind word or kind names.
func Decode(inputs []string) (DecodeResult, error) {
	res := DecodeResult{Words: make([]DecodedWord, 0, len(inputs))}
	for _, in := range inputs {
		k, err := kind.Parse(in)
		if err != nil {
			return DecodeResult{}, err
		}
		d := DecodedWord{
			Input:   in,
			Word:    k.Hex(),
			Effects: k.Effects().Names(),
		}
		if fpes := k.FPEs(); fpes != kind.FpeNone {
			d.FPEs = fpes.Names()
		}
		res.Words = append(res.Words, d)
	}
	return res, nil
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode WORD...",
		Short: "Print the kinds set in effect words",
		Example: `  effectkind decode 0x2014
  effectkind decode "reference|write" 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := Decode(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot decode", err)
			}
			return write(cmd.OutOrStdout(), root.Format, res)
		},
	}
}
