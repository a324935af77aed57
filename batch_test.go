package ripple_test

import (
	"fmt"
	"testing"

	"github.com/ripplekit/ripple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCoalescesWritesToOneSignal(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 0)

	var seen []int
	ripple.CreateEffect(rt, func() error {
		seen = append(seen, a.Get())
		return nil
	})
	require.Equal(t, []int{0}, seen)

	rt.Batch(func() {
		a.Set(1)
		a.Set(2)
	})

	// exactly one run, observing the final value
	assert.Equal(t, []int{0, 2}, seen)
}

func TestBatchCoalescesWritesAcrossSignals(t *testing.T) {
	rt := ripple.New(failOnError(t))

	first := ripple.CreateRWSignal(rt, "John")
	last := ripple.CreateRWSignal(rt, "Doe")

	var logs []string
	ripple.CreateEffect(rt, func() error {
		logs = append(logs, first.Get()+" "+last.Get())
		return nil
	})
	require.Equal(t, []string{"John Doe"}, logs)

	rt.Batch(func() {
		first.Set("Jane")
		last.Set("Smith")
	})

	assert.Equal(t, []string{"John Doe", "Jane Smith"}, logs)
}

func TestBatchReadsSeeLatestWrite(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 1)
	rt.Batch(func() {
		a.Set(5)
		// the value cell updates immediately, only the drain is deferred
		assert.Equal(t, 5, a.Get())
	})
}

func TestNestedBatchesDrainOnce(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 0)
	b := ripple.CreateRWSignal(rt, 0)

	runs := 0
	ripple.CreateEffect(rt, func() error {
		_ = fmt.Sprint(a.Get(), b.Get())
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	rt.StartBatch()
	a.Set(1)
	rt.StartBatch()
	b.Set(1)
	rt.EndBatch()
	// still batching, nothing drained yet
	assert.Equal(t, 1, runs)
	rt.EndBatch()

	assert.Equal(t, 2, runs)
}

func TestBatchWithMemoDiamond(t *testing.T) {
	rt := ripple.New(failOnError(t))

	//   A   B
	//    \ / \
	//    sum  neg
	//      \  /
	//     effect
	a := ripple.CreateRWSignal(rt, 1)
	b := ripple.CreateRWSignal(rt, 2)
	sum := ripple.CreateMemo(rt, func() int {
		return a.Get() + b.Get()
	})
	neg := ripple.CreateMemo(rt, func() int {
		return -b.Get()
	})

	var logs []string
	ripple.CreateEffect(rt, func() error {
		logs = append(logs, fmt.Sprintf("%d %d", sum.Get(), neg.Get()))
		return nil
	})
	require.Equal(t, []string{"3 -2"}, logs)

	rt.Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	require.Equal(t, []string{"3 -2", "30 -20"}, logs)
}
