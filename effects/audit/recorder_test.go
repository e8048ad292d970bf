package audit_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/effect_ive_kinds/effects"
	"github.com/on-the-ground/effect_ive_kinds/effects/audit"
	"github.com/on-the-ground/effect_ive_kinds/effects/fenv"
	"github.com/on-the-ground/effect_ive_kinds/effects/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func report(unit string, k, permitted kind.Kind, at time.Time) effects.Report {
	return effects.Report{
		Unit:      unit,
		Kind:      k,
		Permitted: permitted,
		Valid:     k&^permitted&kind.Bitmask == 0,
		Since:     at,
		Until:     at.Add(time.Millisecond),
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	assert.Equal(t, audit.Config{BufferSize: 1, NumWorkers: 1}, audit.NewConfig(0, -3))
	assert.Equal(t, audit.Config{BufferSize: 8, NumWorkers: 2}, audit.NewConfig(8, 2))
}

func TestRecorder_FoldsPerUnit(t *testing.T) {
	ctx := context.Background()
	rec := audit.New(ctx, audit.NewConfig(4, 3))

	t0 := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, rec.Record(ctx, report("area", kind.Reference, kind.Reference|kind.FPE, t0)))
	require.NoError(t, rec.Record(ctx, report("area", kind.Reference|kind.FPE|kind.FpeInexact, kind.Reference|kind.FPE, t0.Add(time.Second))))
	require.NoError(t, rec.Record(ctx, report("alloc", kind.Write, kind.Pure, t0)))
	require.NoError(t, rec.Record(ctx, report("add", kind.Pure, kind.Pure, t0)))

	claims := rec.Close()
	require.Len(t, claims, 3)
	assert.Equal(t, []string{"add", "alloc", "area"}, []string{claims[0].Unit, claims[1].Unit, claims[2].Unit})

	add, alloc, area := claims[0], claims[1], claims[2]
	assert.True(t, add.Pure())
	assert.Equal(t, 1, add.Observations)

	assert.Equal(t, 1, alloc.Invalid)
	assert.Equal(t, kind.Write, alloc.Violations())

	assert.Equal(t, 2, area.Observations)
	assert.Equal(t, 0, area.Invalid)
	assert.Equal(t, kind.Reference|kind.FPE|kind.FpeInexact, area.Kind)
	assert.Equal(t, t0, area.First)
	assert.Equal(t, t0.Add(time.Second+time.Millisecond), area.Last)
	assert.Equal(t, time.Second+time.Millisecond, area.TimeSpan().Duration())
}

func TestRecorder_RecordContext(t *testing.T) {
	ctx := context.Background()
	rec := audit.New(ctx, audit.NewConfig(1, 1))

	c := effects.New(kind.Reference, effects.Terminating,
		effects.WithEnv(fenv.NewManual()),
		effects.WithUnit("counter"),
	)
	defer c.Close()
	i := 0
	effects.ObserveRef(c, &i).Set(1)

	require.NoError(t, rec.RecordContext(ctx, c))
	claims := rec.Close()
	require.Len(t, claims, 1)
	assert.Equal(t, "counter", claims[0].Unit)
	assert.Equal(t, kind.Reference, claims[0].Kind)
	assert.Equal(t, 0, claims[0].Invalid)
}

func TestRecorder_ClosedRecorder(t *testing.T) {
	ctx := context.Background()
	rec := audit.New(ctx, audit.NewConfig(1, 2))

	assert.Empty(t, rec.Close())
	assert.Nil(t, rec.Close())

	err := rec.Record(ctx, report("late", kind.Pure, kind.Pure, time.Now()))
	assert.True(t, errors.Is(err, audit.ErrRecorderClosed))
}

func TestRecorder_CancelledRecord(t *testing.T) {
	rec := audit.New(context.Background(), audit.NewConfig(1, 1))
	defer rec.Close()

	// A cancelled context races with a free buffer slot; either outcome
	// is allowed, but an error must be the context's.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		if err := rec.Record(ctx, report("busy", kind.Pure, kind.Pure, time.Now())); err != nil {
			assert.True(t, errors.Is(err, context.Canceled))
		}
	}
}

func TestRecorder_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := audit.New(ctx, audit.NewConfig(4, 2))

	require.NoError(t, rec.Record(context.Background(), report("early", kind.Reference, kind.Reference, time.Now())))
	cancel()

	assert.Eventually(t, func() bool {
		err := rec.Record(context.Background(), report("late", kind.Pure, kind.Pure, time.Now()))
		return errors.Is(err, audit.ErrRecorderClosed)
	}, time.Second, 5*time.Millisecond)

	claims := rec.Close()
	units := make([]string, 0, len(claims))
	for _, claim := range claims {
		units = append(units, claim.Unit)
	}
	assert.Contains(t, units, "early")
	assert.Nil(t, rec.Close())
}

func TestRecorder_ConcurrentProducers(t *testing.T) {
	ctx := context.Background()
	rec := audit.New(ctx, audit.NewConfig(8, 4))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				unit := fmt.Sprintf("unit-%d", i%5)
				if err := rec.Record(ctx, report(unit, kind.Reference, kind.Reference, time.Now())); err != nil {
					t.Errorf("record: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	claims := rec.Close()
	require.Len(t, claims, 5)
	for _, claim := range claims {
		assert.Equal(t, 80, claim.Observations, claim.Unit)
	}
}

func TestRecorder_LogsInvalidReports(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := context.Background()
	rec := audit.New(ctx, audit.NewConfig(1, 1), audit.WithLogger(zap.New(core)))

	require.NoError(t, rec.Record(ctx, report("ok", kind.Reference, kind.Reference, time.Now())))
	require.NoError(t, rec.Record(ctx, report("bad", kind.Write|kind.Exception, kind.Write, time.Now())))
	rec.Close()

	entries := logs.FilterMessage("unit showed effects outside its policy").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bad", entries[0].ContextMap()["unit"])
	assert.Equal(t, "exception", entries[0].ContextMap()["violations"])
}
