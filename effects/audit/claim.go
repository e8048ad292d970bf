package audit

import (
	"time"

	"github.com/on-the-ground/effect_ive_kinds/effects"
	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/rickb777/date/v2/timespan"
)

var _ effects.TimeBounded = Claim{}

// Claim is the recorded effect profile of one unit of work, folded over
// every report seen for it.
type Claim struct {
	Unit         string    `json:"unit" yaml:"unit"`
	Observations int       `json:"observations" yaml:"observations"`
	Invalid      int       `json:"invalid" yaml:"invalid"`
	Kind         kind.Kind `json:"kind" yaml:"kind"`
	Permitted    kind.Kind `json:"permitted" yaml:"permitted"`
	First        time.Time `json:"first" yaml:"first"`
	Last         time.Time `json:"last" yaml:"last"`
}

// Pure reports whether every observation of the unit was pure.
func (c Claim) Pure() bool {
	return c.Kind == kind.Pure
}

// Violations returns the effect kinds seen that the last policy forbids.
func (c Claim) Violations() kind.Kind {
	return c.Kind &^ c.Permitted & kind.Bitmask
}

// TimeSpan covers the first to the last recorded report.
func (c Claim) TimeSpan() effects.TimeSpan {
	return timespan.BetweenTimes(c.First, c.Last)
}

func (c *Claim) fold(r effects.Report) {
	if c.Observations == 0 || r.Since.Before(c.First) {
		c.First = r.Since
	}
	if r.Until.After(c.Last) {
		c.Last = r.Until
	}
	c.Observations++
	if !r.Valid {
		c.Invalid++
	}
	c.Kind |= r.Kind
	c.Permitted = r.Permitted
}
