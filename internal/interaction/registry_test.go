package interaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerviz/internal/charts"
	"ledgerviz/internal/interaction"
	"ledgerviz/internal/logger"
	"ledgerviz/internal/mocks"
)

func newRegistry(page *mocks.Page, hub *interaction.ResizeHub) (*interaction.Registry, *mocks.Clock) {
	clock := &mocks.Clock{}
	gen := charts.NewGenerator(charts.DefaultOptions(), logger.Nop())
	return interaction.NewRegistry(gen, page, hub, interaction.Options{
		AfterFunc: clock.AfterFunc,
		Logger:    logger.Nop(),
	}), clock
}

func TestMountRendersAndAttaches(t *testing.T) {
	container := mocks.NewContainer("xp", 500, 400)
	hub := interaction.NewResizeHub()
	reg, _ := newRegistry(mocks.NewPage(container), hub)

	c, ok := reg.Mount("xp", xpSource())
	require.True(t, ok)
	assert.Equal(t, "xp", c.ID())
	assert.Equal(t, 1, container.Replaces())
	assert.True(t, c.Attached())
	assert.Equal(t, 1, hub.Len())

	got, ok := reg.Get("xp")
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestMountMissingContainerIsNoop(t *testing.T) {
	hub := interaction.NewResizeHub()
	reg, _ := newRegistry(mocks.NewPage(), hub)

	c, ok := reg.Mount("missing", xpSource())
	assert.False(t, ok)
	assert.Nil(t, c)
	assert.Equal(t, 0, hub.Len())
	assert.Empty(t, reg.IDs())
}

func TestRemountDisposesPreviousChart(t *testing.T) {
	container := mocks.NewContainer("chart", 500, 400)
	hub := interaction.NewResizeHub()
	reg, clock := newRegistry(mocks.NewPage(container), hub)

	first, ok := reg.Mount("chart", xpSource())
	require.True(t, ok)
	hub.Resize()

	second, ok := reg.Mount("chart", charts.DualBarSource{Received: 100, Done: 95})
	require.True(t, ok)
	assert.NotSame(t, first, second)
	assert.False(t, first.Attached())
	assert.Equal(t, 1, hub.Len())
	assert.Contains(t, container.Content(), "Ratio: 0.9 Excellent")

	// the first chart's pending resize was cancelled with it
	replaces := container.Replaces()
	clock.Fire()
	clock.FireStopped()
	assert.Equal(t, replaces, container.Replaces())
}

func TestUnmountAndClose(t *testing.T) {
	a := mocks.NewContainer("a", 500, 400)
	b := mocks.NewContainer("b", 500, 400)
	hub := interaction.NewResizeHub()
	reg, _ := newRegistry(mocks.NewPage(a, b), hub)

	_, ok := reg.Mount("a", xpSource())
	require.True(t, ok)
	_, ok = reg.Mount("b", charts.DualBarSource{Received: 0, Done: 0})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	assert.Equal(t, 2, hub.Len())

	assert.True(t, reg.Unmount("a"))
	assert.False(t, reg.Unmount("a"))
	assert.Equal(t, 1, hub.Len())

	reg.Close()
	assert.Equal(t, 0, hub.Len())
	assert.Empty(t, reg.IDs())
}

func TestMountWithoutEventSource(t *testing.T) {
	container := mocks.NewContainer("xp", 500, 400)
	gen := charts.NewGenerator(charts.DefaultOptions(), logger.Nop())
	reg := interaction.NewRegistry(gen, mocks.NewPage(container), nil, interaction.Options{Logger: logger.Nop()})

	c, ok := reg.Mount("xp", xpSource())
	require.True(t, ok)
	assert.False(t, c.Attached())
	assert.Equal(t, 1, container.Replaces())
}
