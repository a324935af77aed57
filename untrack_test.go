package ripple_test

import (
	"testing"

	"github.com/ripplekit/ripple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldPauseTracking(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 0)

	runs := 0
	ripple.CreateEffect(rt, func() error {
		rt.PauseTracking()
		a.Get()
		rt.ResumeTracking()
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	a.Set(1)
	assert.Equal(t, 1, runs)
}

func TestUntrackedHelper(t *testing.T) {
	rt := ripple.New(failOnError(t))

	tracked := ripple.CreateRWSignal(rt, 0)
	hidden := ripple.CreateRWSignal(rt, 0)

	var seen []int
	ripple.CreateEffect(rt, func() error {
		tracked.Get()
		v := ripple.Untracked(rt, func() int {
			return hidden.Get()
		})
		seen = append(seen, v)
		return nil
	})
	require.Equal(t, []int{0}, seen)

	hidden.Set(5)
	require.Equal(t, []int{0}, seen)

	tracked.Set(1)
	assert.Equal(t, []int{0, 5}, seen)
}

func TestGetUntracked(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 1)
	b := ripple.CreateRWSignal(rt, 10)

	runs := 0
	ripple.CreateEffect(rt, func() error {
		a.Get()
		b.GetUntracked()
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	b.Set(20)
	assert.Equal(t, 1, runs)

	a.Set(2)
	assert.Equal(t, 2, runs)
}

func TestMemoResolvedUnderPauseStillTracksItsOwnSources(t *testing.T) {
	rt := ripple.New(failOnError(t))

	src := ripple.CreateRWSignal(rt, 1)
	double := ripple.CreateMemo(rt, func() int {
		return src.Get() * 2
	})

	// first compute happens inside a paused frame; the memo itself
	// must still record src as a source
	v := ripple.Untracked(rt, func() int {
		return double.Get()
	})
	require.Equal(t, 2, v)

	src.Set(3)
	assert.Equal(t, 6, double.GetUntracked())
}

func TestUntrackedWriteStillPropagates(t *testing.T) {
	rt := ripple.New(failOnError(t))

	a := ripple.CreateRWSignal(rt, 0)

	runs := 0
	ripple.CreateEffect(rt, func() error {
		a.Get()
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	ripple.Untracked(rt, func() struct{} {
		a.Set(1)
		return struct{}{}
	})
	assert.Equal(t, 2, runs)
}
