package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/on-the-ground/effect_ive_kinds/effects"
	"github.com/on-the-ground/effect_ive_kinds/effects/fenv"
	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/spf13/cobra"
)

// ScenarioResult is the outcome of one self-test scenario.
type ScenarioResult struct {
	Name   string    `json:"name" yaml:"name"`
	Kind   kind.Kind `json:"kind" yaml:"kind"`
	Word   string    `json:"word" yaml:"word"`
	Passed bool      `json:"passed" yaml:"passed"`
	Detail string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// SelftestResult is the output of the selftest command.
type SelftestResult struct {
	Arch      string           `json:"arch" yaml:"arch"`
	Hardware  bool             `json:"hardware" yaml:"hardware"`
	Supported kind.Kind        `json:"supported" yaml:"supported"`
	Scenarios []ScenarioResult `json:"scenarios" yaml:"scenarios"`
}

// Passed reports whether every scenario passed.
func (r SelftestResult) Passed() bool {
	for _, s := range r.Scenarios {
		if !s.Passed {
			return false
		}
	}
	return true
}

func (r SelftestResult) Text(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "arch=%s hardware=%t supported=%s\n", r.Arch, r.Hardware, r.Supported); err != nil {
		return err
	}
	for _, s := range r.Scenarios {
		status := "PASS"
		if !s.Passed {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s %-28s %s %s", status, s.Name, s.Word, s.Kind)
		if s.Detail != "" {
			line += " (" + s.Detail + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Package variables keep the compiler from folding the arithmetic.
var (
	fZero   = 0.0
	fTwo    = 2.0
	fThree  = 3.0
	globalJ = 2
)

//go:noinline
func fdiv(a, b float64) float64 { return a / b }

type scenario struct {
	name string
	run  func(opts []effects.Option) (kind.Kind, string)
}

func scenarios(supported kind.Kind) []scenario {
	return []scenario{
		{"mutable integer alias", func(opts []effects.Option) (kind.Kind, string) {
			c := effects.New(kind.Reference, effects.Terminating, opts...)
			defer c.Close()
			i := 1
			ref := effects.ObserveRef(c, &i)
			ref.Set(ref.Get() + 1)
			got := c.Kind()
			switch {
			case got != kind.Reference:
				return got, "want reference"
			case !c.Valid():
				return c.Kind(), "want valid"
			}
			return got, ""
		}},
		{"inexact division", func(opts []effects.Option) (kind.Kind, string) {
			c := effects.New(kind.Reference|kind.FPE, effects.Terminating, opts...)
			defer c.Close()
			effects.Observe(c, fdiv(fTwo, fThree))
			got := c.Kind()
			switch {
			case !got.Has(kind.Reference):
				return got, "want reference"
			case supported.Has(kind.FpeInexact) && !got.Has(kind.FPE|kind.FpeInexact):
				return got, "want fpe|inexact"
			case !c.Valid():
				return c.Kind(), "want valid"
			}
			return got, ""
		}},
		{"invalid after clear", func(opts []effects.Option) (kind.Kind, string) {
			c := effects.New(kind.Reference|kind.FPE, effects.Terminating, opts...)
			defer c.Close()
			effects.Observe(c, fdiv(fTwo, fThree))
			c.Clear()
			effects.Observe(c, fdiv(fZero, fZero))
			got := c.Kind()
			switch {
			case supported.Has(kind.FpeInvalid) && !got.Has(kind.FPE|kind.FpeInvalid):
				return got, "want fpe|invalid"
			case c.IsPure():
				return c.Kind(), "want impure"
			}
			return got, ""
		}},
		{"owned allocation", func(opts []effects.Option) (kind.Kind, string) {
			c := effects.New(kind.Reference|kind.Write, effects.Terminating, opts...)
			defer c.Close()
			p := effects.Observe(c, new(int))
			got := c.Kind()
			if got != kind.Write {
				return got, "want write"
			}
			p.Set(nil)
			c.Clear()
			if c.Kind() != kind.Pure {
				return c.Kind(), "want pure after clear"
			}
			return got, ""
		}},
		{"constant global", func(opts []effects.Option) (kind.Kind, string) {
			c := effects.New(kind.Reference, effects.Terminating, opts...)
			defer c.Close()
			effects.ObserveConst(c, &globalJ)
			got := c.Kind()
			if got != kind.Pure {
				return got, "want pure"
			}
			return got, ""
		}},
	}
}

// Selftest runs the usage scenarios against env.
func Selftest(env fenv.Env, opts ...effects.Option) SelftestResult {
	res := SelftestResult{
		Arch:      runtime.GOARCH,
		Hardware:  env.Hardware(),
		Supported: env.Supported(),
	}
	opts = append([]effects.Option{effects.WithEnv(env)}, opts...)
	for _, s := range scenarios(env.Supported()) {
		got, detail := s.run(opts)
		res.Scenarios = append(res.Scenarios, ScenarioResult{
			Name:   s.name,
			Kind:   got,
			Word:   got.Hex(),
			Passed: detail == "",
			Detail: detail,
		})
	}
	return res
}

// NewSelftestCommand creates the selftest command.
func NewSelftestCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the effect scenarios against this host's floating-point unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.Logger()
			defer func() { _ = logger.Sync() }()

			res := Selftest(fenv.Hardware(), effects.WithLogger(logger))
			if err := write(cmd.OutOrStdout(), root.Format, res); err != nil {
				return err
			}
			if !res.Passed() {
				return NewExitError(ExitFailure, "self-test failed")
			}
			return nil
		},
	}
}
