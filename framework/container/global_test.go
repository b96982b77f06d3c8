package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-graph/framework/container"
)

// These tests share the process-wide graph and must not run in parallel.

func TestDefault_ForwardsToSameEngine(t *testing.T) {
	container.Init()
	t.Cleanup(container.Reset)

	container.Add(greeterKey, helloFactory())

	v, err := container.Get(greeterKey)
	require.NoError(t, err)
	assert.Equal(t, hello, v.(Greeter).Speak())

	typed, err := container.Resolve[Greeter](container.Default())
	require.NoError(t, err)
	assert.NotSame(t, v, typed)
}

func TestDefault_SingletonAndScoped(t *testing.T) {
	container.Init()
	t.Cleanup(container.Reset)

	container.AddSingleton(greeterKey, echoFactory())

	a, err := container.GetWith(greeterKey, "blah blah blah")
	require.NoError(t, err)
	b, err := container.Get(greeterKey)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, "blah blah blah", b.(Greeter).Speak())

	s, err := container.GetScopedWith(greeterKey, "ignored", "scope")
	require.NoError(t, err)
	assert.Same(t, a, s)

	require.NoError(t, container.RemoveScoped(greeterKey, "scope"))
	s, err = container.GetScoped(greeterKey, "scope")
	require.NoError(t, err)
	assert.Same(t, a, s, "the delegate is still the singleton")
}

func TestDefault_ResetClearsRegistrations(t *testing.T) {
	container.Init()
	container.Add(greeterKey, helloFactory())

	container.Reset()

	_, err := container.Get(greeterKey)
	assert.ErrorIs(t, err, container.ErrNotFound)
	_, err = container.GetScoped(greeterKey, "")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestInit_ReplacesDefaultGraph(t *testing.T) {
	before := container.Default()
	after := container.Init()
	t.Cleanup(container.Reset)

	assert.NotSame(t, before, after)
	assert.Same(t, after, container.Default())
}
