package cli

import (
	"fmt"
	"io"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/on-the-ground/effect_ive_kinds/effects/policy"
	"github.com/spf13/cobra"
)

// PolicyUnit is one normalised unit policy.
type PolicyUnit struct {
	Unit           string    `json:"unit" yaml:"unit"`
	Permitted      kind.Kind `json:"permitted" yaml:"permitted"`
	Invalid        kind.Kind `json:"invalid" yaml:"invalid"`
	Nonterminating bool      `json:"nonterminating" yaml:"nonterminating"`
}

// PolicyResult is the output of the policy command.
type PolicyResult struct {
	Default PolicyUnit   `json:"default" yaml:"default"`
	Units   []PolicyUnit `json:"units" yaml:"units"`
}

func (r PolicyResult) Text(w io.Writer) error {
	for _, u := range append([]PolicyUnit{r.Default}, r.Units...) {
		typ := "terminating"
		if u.Nonterminating {
			typ = "nonterminating"
		}
		if _, err := fmt.Fprintf(w, "%-24s %-14s permitted=%s invalid=%s\n",
			u.Unit, typ, u.Permitted, u.Invalid); err != nil {
			return err
		}
	}
	return nil
}

// DescribePolicy normalises a loaded policy for output.
func DescribePolicy(cfg *policy.Config) PolicyResult {
	describe := func(name string, u policy.Unit) PolicyUnit {
		return PolicyUnit{
			Unit:           name,
			Permitted:      u.Permitted.Kind(),
			Invalid:        ^u.Permitted.Kind() & kind.Bitmask,
			Nonterminating: u.Nonterminating,
		}
	}
	res := PolicyResult{Default: describe("(default)", cfg.Default)}
	for _, name := range cfg.Names() {
		res.Units = append(res.Units, describe(name, cfg.Units[name]))
	}
	return res
}

// NewPolicyCommand creates the policy command.
func NewPolicyCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "policy FILE",
		Short: "Load an effect policy and print it normalised",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := policy.LoadStrict(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot load policy", err)
			}
			return write(cmd.OutOrStdout(), root.Format, DescribePolicy(cfg))
		},
	}
}
