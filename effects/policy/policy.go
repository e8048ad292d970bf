// Package policy loads the permitted effect kinds of named units of work
// from YAML and builds execution contexts from them.
//
//	default:
//	  permitted: [reference]
//	units:
//	  geometry.area:
//	    permitted: [reference, fpe]
//	  server.loop:
//	    permitted: [reference, write, exception]
//	    nonterminating: true
package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/on-the-ground/effect_ive_kinds/effects"
	"gopkg.in/yaml.v3"
)

// ErrUnknownUnit is returned by Strict lookups of a unit with no entry.
var ErrUnknownUnit = errors.New("unit not in policy")

// Unit is the policy of one unit of work.
type Unit struct {
	Permitted      Kinds `yaml:"permitted"`
	Nonterminating bool  `yaml:"nonterminating,omitempty"`
}

// ContextType returns the context type the unit declares.
func (u Unit) ContextType() effects.ContextType {
	if u.Nonterminating {
		return effects.Nonterminating
	}
	return effects.Terminating
}

// Config maps unit names to policies. Units without an entry use Default.
type Config struct {
	Default Unit            `yaml:"default"`
	Units   map[string]Unit `yaml:"units"`
}

// DefaultConfig permits nothing: every unit must be pure.
func DefaultConfig() *Config {
	return &Config{Units: map[string]Unit{}}
}

// Parse reads a policy document.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if cfg.Units == nil {
		cfg.Units = map[string]Unit{}
	}
	return cfg, nil
}

// Load reads a policy file. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	cfg, err := LoadStrict(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadStrict reads a policy file and fails when it does not exist.
func LoadStrict(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}
	return Parse(data)
}

// Lookup returns the policy of unit, falling back to Default.
func (c *Config) Lookup(unit string) Unit {
	if u, ok := c.Units[unit]; ok {
		return u
	}
	return c.Default
}

// Strict returns the policy of unit without falling back to Default.
func (c *Config) Strict(unit string) (Unit, error) {
	u, ok := c.Units[unit]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	return u, nil
}

// NewContext creates an execution context for unit under its policy.
func (c *Config) NewContext(unit string, opts ...effects.Option) *effects.ExecutionContext {
	u := c.Lookup(unit)
	opts = append([]effects.Option{effects.WithUnit(unit)}, opts...)
	return effects.New(u.Permitted.Kind(), u.ContextType(), opts...)
}

// Names returns the unit names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Units))
	for name := range c.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders the config back to YAML with normalised kind names.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
