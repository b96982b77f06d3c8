package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-graph/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(r container.Registrar) {
	p.registerCalled = true
	r.Register(container.KeyOf[string](), container.Value("eager"), true)
}

func (p *eagerProvider) Boot(g *container.Graph) error {
	p.bootCalled = true
	return nil
}

// greeterProvider resolves another provider's binding during Boot.
type greeterProvider struct {
	container.BaseProvider
	booted string
}

func (p *greeterProvider) Register(r container.Registrar) {
	container.Bind(r, container.Supplier[Greeter, struct{}](func(g *container.Graph, _ struct{}) (Greeter, error) {
		msg, err := container.Resolve[string](g)
		if err != nil {
			return nil, err
		}
		return &echoGreeter{msg: msg}, nil
	}))
}

func (p *greeterProvider) Boot(g *container.Graph) error {
	greeter, err := container.Resolve[Greeter](g)
	if err != nil {
		return err
	}
	p.booted = greeter.Speak()
	return nil
}

type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(container.Registrar) {}

func (p *failingProvider) Boot(*container.Graph) error { return errors.New("no database") }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_Register_CallsRegisterImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.True(t, p.registerCalled)
	assert.False(t, p.bootCalled, "Boot() should NOT be called before registry.Boot()")
}

func TestRegistry_Boot_BuildsGraphAndBootsProviders(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	g, err := reg.Boot()
	require.NoError(t, err)

	assert.True(t, p.bootCalled)
	assert.Equal(t, "eager", container.MustResolve[string](g))
}

func TestRegistry_Boot_ProvidersSeeEachOther(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	greeter := &greeterProvider{}
	require.NoError(t, reg.Register(greeter))
	require.NoError(t, reg.Register(&eagerProvider{}))

	_, err := reg.Boot()
	require.NoError(t, err)

	assert.Equal(t, "eager", greeter.booted)
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	require.NoError(t, reg.Register(&eagerProvider{}))

	assert.False(t, reg.Booted())
	assert.Nil(t, reg.Graph())

	first, err := reg.Boot()
	require.NoError(t, err)
	second, err := reg.Boot()
	require.NoError(t, err)

	assert.True(t, reg.Booted())
	assert.Same(t, first, second)
	assert.Same(t, first, reg.Graph())
}

func TestRegistry_Boot_ReturnsProviderError(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	require.NoError(t, reg.Register(&failingProvider{}))

	_, err := reg.Boot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database")
	assert.Contains(t, err.Error(), "failingProvider")
}

func TestRegistry_Boot_FailureIsSticky(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	require.NoError(t, reg.Register(&failingProvider{}))
	later := &eagerProvider{}
	require.NoError(t, reg.Register(later))

	_, first := reg.Boot()
	require.Error(t, first)

	_, second := reg.Boot()
	require.Error(t, second, "a retry must not hand out a half-booted graph")
	assert.Equal(t, first, second)
	assert.False(t, later.bootCalled, "providers after the failing one never boot")
	assert.True(t, reg.Booted())

	late := &eagerProvider{}
	assert.ErrorIs(t, reg.Register(late), second)
	assert.False(t, late.registerCalled)
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	g, err := reg.Boot()
	require.NoError(t, err)

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.True(t, p.bootCalled, "provider registered after Boot() should be booted immediately")
	assert.True(t, g.Bound(container.KeyOf[string]()), "late providers register on the live graph")
}

func TestRegistry_RegisterAfterBoot_ReturnsBootError(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	_, err := reg.Boot()
	require.NoError(t, err)

	assert.Error(t, reg.Register(&failingProvider{}))
}

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Boot(container.New()))
}
