package effects

import (
	"time"

	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is the interval a report or claim covers.
type TimeSpan = timespan.TimeSpan

// TimeBounded is implemented by records that cover an interval.
type TimeBounded interface {
	TimeSpan() TimeSpan
}

var _ TimeBounded = Report{}

// Report is a snapshot of a context, suitable for logs and audit trails.
type Report struct {
	ContextID string    `json:"context_id" yaml:"context_id"`
	Unit      string    `json:"unit" yaml:"unit"`
	Kind      kind.Kind `json:"kind" yaml:"kind"`
	Word      string    `json:"word" yaml:"word"`
	Permitted kind.Kind `json:"permitted" yaml:"permitted"`
	Valid     bool      `json:"valid" yaml:"valid"`
	Since     time.Time `json:"since" yaml:"since"`
	Until     time.Time `json:"until" yaml:"until"`
}

// Report samples the floating-point environment and snapshots the context.
// The span starts at construction or at the last Clear.
func (c *ExecutionContext) Report() Report {
	valid := c.Valid()
	return Report{
		ContextID: c.id,
		Unit:      c.unit,
		Kind:      c.kind,
		Word:      c.kind.Hex(),
		Permitted: c.permitted,
		Valid:     valid,
		Since:     c.since,
		Until:     time.Now(),
	}
}

// Violations returns the accumulated effect kinds that were not permitted.
func (r Report) Violations() kind.Kind {
	return r.Kind &^ r.Permitted & kind.Bitmask
}

// PartitionKey groups reports by unit of work.
func (r Report) PartitionKey() string {
	return r.Unit
}

func (r Report) TimeSpan() TimeSpan {
	return timespan.BetweenTimes(r.Since, r.Until)
}
