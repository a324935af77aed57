package ripple_test

import (
	"errors"
	"testing"

	"github.com/ripplekit/ripple"
	"github.com/ripplekit/ripple/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type theme struct {
	name string
}

type locale struct {
	tag string
}

func TestProvideAndUseContext(t *testing.T) {
	rt := ripple.New(failOnError(t))

	scope := rt.CreateScope()
	scope.Run(func() {
		ripple.ProvideContext(rt, theme{name: "dark"})

		got, err := ripple.UseContext[theme](rt)
		require.NoError(t, err)
		assert.Equal(t, "dark", got.name)
	})
}

func TestUseContextWalksAncestry(t *testing.T) {
	rt := ripple.New(failOnError(t))

	outer := rt.CreateScope()
	outer.Run(func() {
		ripple.ProvideContext(rt, theme{name: "light"})

		inner := rt.CreateScope()
		inner.Run(func() {
			got, err := ripple.UseContext[theme](rt)
			require.NoError(t, err)
			assert.Equal(t, "light", got.name)
		})
	})
}

func TestInnerProvideShadowsOuter(t *testing.T) {
	rt := ripple.New(failOnError(t))

	outer := rt.CreateScope()
	outer.Run(func() {
		ripple.ProvideContext(rt, theme{name: "light"})

		inner := rt.CreateScope()
		inner.Run(func() {
			ripple.ProvideContext(rt, theme{name: "dark"})

			got, err := ripple.UseContext[theme](rt)
			require.NoError(t, err)
			assert.Equal(t, "dark", got.name)
		})

		// the inner provide never leaks back out
		got, err := ripple.UseContext[theme](rt)
		require.NoError(t, err)
		assert.Equal(t, "light", got.name)
	})
}

func TestUseContextMissing(t *testing.T) {
	rt := ripple.New(failOnError(t))

	_, err := ripple.UseContext[theme](rt)
	assert.True(t, errors.Is(err, ripple.ErrMissingContext))
}

func TestContextKeysAreDistinctPerType(t *testing.T) {
	rt := ripple.New(failOnError(t))

	scope := rt.CreateScope()
	scope.Run(func() {
		ripple.ProvideContext(rt, theme{name: "dark"})
		ripple.ProvideContext(rt, locale{tag: "en-US"})

		th, err := ripple.UseContext[theme](rt)
		require.NoError(t, err)
		assert.Equal(t, "dark", th.name)

		lc, err := ripple.UseContext[locale](rt)
		require.NoError(t, err)
		assert.Equal(t, "en-US", lc.tag)
	})
}

type Handle struct {
	label string
}

func TestContextKeysDistinguishSameNamedTypes(t *testing.T) {
	rt := ripple.New(failOnError(t))

	scope := rt.CreateScope()
	scope.Run(func() {
		// same type name in two packages must not share a key
		ripple.ProvideContext(rt, Handle{label: "local"})
		ripple.ProvideContext(rt, arena.Handle{})

		got, err := ripple.UseContext[Handle](rt)
		require.NoError(t, err)
		assert.Equal(t, "local", got.label)

		_, err = ripple.UseContext[arena.Handle](rt)
		assert.NoError(t, err)
	})
}

func TestUseContextInsideMemo(t *testing.T) {
	rt := ripple.New(failOnError(t))

	scope := rt.CreateScope()
	scope.Run(func() {
		ripple.ProvideContext(rt, theme{name: "dark"})

		label := ripple.CreateMemo(rt, func() string {
			th, err := ripple.UseContext[theme](rt)
			if err != nil {
				return "unknown"
			}
			return th.name
		})
		assert.Equal(t, "dark", label.Get())
	})
}
