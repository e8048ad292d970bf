package memo_test

import (
	"sync"
	"testing"

	"github.com/on-the-ground/effect_ive_kinds/internal/memo"
	"github.com/stretchr/testify/assert"
)

func TestTable_BasicUsage(t *testing.T) {
	table := memo.NewTable[string, string](4)

	table.Store("a", "first")
	val, ok := table.Load("a")
	assert.True(t, ok)
	assert.Equal(t, "first", val)

	_, ok = table.Load("x")
	assert.False(t, ok)

	table.Store("a", "updated")
	val, ok = table.Load("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestTable_RotationKeepsPreviousGeneration(t *testing.T) {
	table := memo.NewTable[int, int](2)

	table.Store(1, 10)
	table.Store(2, 20)
	// rotates: 1 and 2 move to the previous generation
	table.Store(3, 30)

	for k, want := range map[int]int{1: 10, 2: 20, 3: 30} {
		v, ok := table.Load(k)
		assert.True(t, ok, "key %d", k)
		assert.Equal(t, want, v)
	}

	table.Store(4, 40)
	// rotates again: the generation holding 1 and 2 is dropped
	table.Store(5, 50)

	_, ok := table.Load(1)
	assert.False(t, ok)
	_, ok = table.Load(2)
	assert.False(t, ok)
	for _, k := range []int{3, 4, 5} {
		_, ok := table.Load(k)
		assert.True(t, ok, "key %d", k)
	}
}

func TestTable_ZeroSizePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on zero size, but didn't panic")
		}
	}()
	memo.NewTable[int, int](0)
}

func TestTableize_CallsOncePerKey(t *testing.T) {
	calls := 0
	square := memo.Tableize(func(n int) int {
		calls++
		return n * n
	}, 8)

	assert.Equal(t, 9, square(3))
	assert.Equal(t, 9, square(3))
	assert.Equal(t, 16, square(4))
	assert.Equal(t, 2, calls)
}

func TestTableize_ConcurrentUse(t *testing.T) {
	double := memo.Tableize(func(n int) int { return 2 * n }, 16)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if got := double(i); got != 2*i {
					t.Errorf("double(%d) = %d", i, got)
				}
			}
		}()
	}
	wg.Wait()
}
