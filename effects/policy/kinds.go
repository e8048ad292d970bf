package policy

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"gopkg.in/yaml.v3"
)

// Kinds is a permitted-kinds mask that reads either a YAML sequence of
// names ([reference, fpe]) or a single scalar ("reference|fpe", 0x14).
type Kinds kind.Kind

func (k Kinds) Kind() kind.Kind { return kind.Kind(k) }

func (k *Kinds) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := kind.Parse(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*k = Kinds(v)
		return nil
	case yaml.SequenceNode:
		var acc kind.Kind
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: permitted kinds must be names", item.Line)
			}
			v, err := kind.Parse(item.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", item.Line, err)
			}
			acc |= v
		}
		*k = Kinds(acc)
		return nil
	default:
		return fmt.Errorf("line %d: unexpected permitted kinds", node.Line)
	}
}

func (k Kinds) MarshalYAML() (any, error) {
	if kind.Kind(k) == kind.Pure {
		return []string{}, nil
	}
	return kind.Kind(k).Names(), nil
}
