package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firedCall struct {
	label string
	ctx   any
	args  []any
}

type firedLog struct{ calls []firedCall }

func (l *firedLog) listener(label string) *Listener {
	return NewListener(func(ctx any, args ...any) {
		l.calls = append(l.calls, firedCall{label: label, ctx: ctx, args: args})
	})
}

func (l *firedLog) labels() []string {
	out := make([]string, 0, len(l.calls))
	for _, c := range l.calls {
		out = append(out, c.label)
	}
	return out
}

func eventable(t *testing.T) *Instance {
	t.Helper()

	c, err := NewFactory(WithEvents(true)).Create(nil, nil)
	require.NoError(t, err)
	return c.Init(nil)
}

//
// -----------------------------------------------------------------------------
// On / Fire
// -----------------------------------------------------------------------------

// TestFire_RegistrationOrder verifies listeners fire FIFO with the fired arguments.
func TestFire_RegistrationOrder(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}

	for _, label := range []string{"L1", "L2", "L3"} {
		_, ok := inst.On("change", log.listener(label), nil)
		require.True(t, ok)
	}

	n := inst.Fire("change", "a", 1)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"L1", "L2", "L3"}, log.labels())
	for _, c := range log.calls {
		assert.Equal(t, []any{"a", 1}, c.args)
	}
}

// TestOn_Context verifies the default context is the instance and an explicit one is honoured.
func TestOn_Context(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}
	explicit := &struct{ name string }{name: "ctx"}

	_, ok := inst.On("e", log.listener("default"), nil)
	require.True(t, ok)
	_, ok = inst.On("e", log.listener("explicit"), explicit)
	require.True(t, ok)

	inst.Fire("e")
	require.Len(t, log.calls, 2)
	assert.Same(t, inst, log.calls[0].ctx)
	assert.Same(t, explicit, log.calls[1].ctx)
}

// TestOn_InvalidInput verifies missing name or listener is a silent failure.
func TestOn_InvalidInput(t *testing.T) {
	t.Parallel()

	inst := eventable(t)

	h, ok := inst.On("", NewListener(func(any, ...any) {}), nil)
	assert.False(t, ok)
	assert.Nil(t, h)

	h, ok = inst.On("e", nil, nil)
	assert.False(t, ok)
	assert.Nil(t, h)

	assert.Nil(t, NewListener(nil))
	assert.Equal(t, 0, inst.Events().Listeners("e"))
}

// TestFire_UnknownName verifies firing without listeners is a no-op.
func TestFire_UnknownName(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	assert.Equal(t, 0, inst.Fire("nothing"))
}

// TestEvents_NotEventable verifies event operations are inert on non-eventable instances.
func TestEvents_NotEventable(t *testing.T) {
	t.Parallel()

	c, err := NewFactory().Create(nil, nil)
	require.NoError(t, err)
	inst := c.Init(nil)

	h, ok := inst.On("e", NewListener(func(any, ...any) {}), nil)
	assert.False(t, ok)
	assert.Nil(t, h)
	assert.Nil(t, inst.Events())
	assert.Equal(t, 0, inst.Fire("e"))
	assert.Equal(t, 0, inst.UnAll())
}

//
// -----------------------------------------------------------------------------
// Un
// -----------------------------------------------------------------------------

// TestUnHandle_RemovesOnlyThatRegistration verifies removing L2 by handle keeps L1 and L3.
func TestUnHandle_RemovesOnlyThatRegistration(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}

	_, _ = inst.On("e", log.listener("L1"), nil)
	h2, _ := inst.On("e", log.listener("L2"), nil)
	_, _ = inst.On("e", log.listener("L3"), nil)

	assert.Equal(t, 1, inst.UnHandle("e", h2))
	assert.Equal(t, 0, inst.UnHandle("e", h2))

	inst.Fire("e")
	assert.Equal(t, []string{"L1", "L3"}, log.labels())
}

// TestUnListener_RemovesEveryMatch verifies all registrations of one listener are removed.
func TestUnListener_RemovesEveryMatch(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}
	shared := log.listener("shared")

	_, _ = inst.On("e", shared, nil)
	_, _ = inst.On("e", log.listener("other"), nil)
	_, _ = inst.On("e", shared, "ctx")

	assert.Equal(t, 2, inst.UnListener("e", shared))
	assert.Equal(t, 0, inst.UnListener("missing", shared))

	inst.Fire("e")
	assert.Equal(t, []string{"other"}, log.labels())
}

// TestUn_ByName verifies Un(name) clears one event only.
func TestUn_ByName(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}

	_, _ = inst.On("a", log.listener("a1"), nil)
	_, _ = inst.On("a", log.listener("a2"), nil)
	_, _ = inst.On("b", log.listener("b1"), nil)

	assert.Equal(t, 2, inst.Un("a"))
	assert.Equal(t, 0, inst.Fire("a"))
	assert.Equal(t, 1, inst.Fire("b"))
	assert.Equal(t, []string{"b1"}, log.labels())
}

// TestUnAll_ClearsEverything verifies UnAll empties every event name.
func TestUnAll_ClearsEverything(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}

	_, _ = inst.On("a", log.listener("a"), nil)
	_, _ = inst.On("b", log.listener("b"), nil)
	require.Equal(t, []string{"a", "b"}, inst.Events().Names())

	assert.Equal(t, 2, inst.UnAll())
	assert.Equal(t, 0, inst.Fire("a"))
	assert.Equal(t, 0, inst.Fire("b"))
	assert.Empty(t, log.calls)
	assert.Empty(t, inst.Events().Names())
}

//
// -----------------------------------------------------------------------------
// Dispatch snapshot
// -----------------------------------------------------------------------------

// TestFire_MutationDuringDispatch verifies listeners added or removed mid-dispatch do not affect it.
func TestFire_MutationDuringDispatch(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	log := &firedLog{}

	var h3 *Handle
	late := log.listener("late")

	_, _ = inst.On("e", NewListener(func(any, ...any) {
		log.calls = append(log.calls, firedCall{label: "L1"})
		inst.UnHandle("e", h3)
		_, _ = inst.On("e", late, nil)
	}), nil)
	_, _ = inst.On("e", log.listener("L2"), nil)
	h3, _ = inst.On("e", log.listener("L3"), nil)

	assert.Equal(t, 3, inst.Fire("e"))
	assert.Equal(t, []string{"L1", "L2", "L3"}, log.labels())

	log.calls = nil
	inst.Fire("e")
	assert.Equal(t, []string{"L1", "L2", "late"}, log.labels())
}

// TestOnce_FiresOnce verifies a one-shot registration runs once, also under nested fires.
func TestOnce_FiresOnce(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	count := 0
	nested := false

	_, _ = inst.On("e", NewListener(func(any, ...any) {
		if !nested {
			nested = true
			inst.Fire("e")
		}
	}), nil)
	_, ok := inst.Once("e", NewListener(func(any, ...any) { count++ }), nil)
	require.True(t, ok)

	inst.Fire("e")
	inst.Fire("e")

	assert.Equal(t, 1, count)
	assert.Equal(t, 1, inst.Events().Listeners("e"))
}

// TestHandle_Accessors verifies the handle exposes its registration.
func TestHandle_Accessors(t *testing.T) {
	t.Parallel()

	inst := eventable(t)
	l := NewListener(func(any, ...any) {})

	h, ok := inst.On("ready", l, nil)
	require.True(t, ok)
	assert.Equal(t, "ready", h.Event())
	assert.Same(t, l, h.Listener())
	assert.Equal(t, "ready#"+h.ID().String(), h.String())

	other, _ := inst.On("ready", l, nil)
	assert.NotEqual(t, h.ID(), other.ID())
}
