package class

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListenerFunc receives the bound context and the arguments passed to Fire.
type ListenerFunc func(ctx any, args ...any)

// Listener wraps a ListenerFunc so it has an identity: Go funcs are not
// comparable, the *Listener pointer is what UnListener matches against.
type Listener struct {
	fn ListenerFunc
}

// NewListener wraps fn. It returns nil for a nil fn.
func NewListener(fn ListenerFunc) *Listener {
	if fn == nil {
		return nil
	}
	return &Listener{fn: fn}
}

// Handle is the registration record returned by On. Pass it to UnHandle to
// remove exactly that registration.
type Handle struct {
	id       uuid.UUID
	event    string
	listener *Listener
	ctx      any
	once     bool
	fired    bool
}

// ID returns the registration id.
func (h *Handle) ID() uuid.UUID { return h.id }

// Event returns the event name the handle was registered under.
func (h *Handle) Event() string { return h.event }

// Listener returns the registered listener.
func (h *Handle) Listener() *Listener { return h.listener }

// String implements fmt.Stringer.
func (h *Handle) String() string { return h.event + "#" + h.id.String() }

// Hub is a per-instance publish/subscribe table.
//
// Listeners of one event fire in registration order. Fire dispatches over a
// snapshot, so listeners added or removed by a running listener do not change
// the dispatch in progress.
type Hub struct {
	owner  *Instance
	events map[string][]*Handle
	logger *zap.Logger
}

func newHub(owner *Instance, logger *zap.Logger) *Hub {
	return &Hub{owner: owner, events: map[string][]*Handle{}, logger: logger}
}

// On registers l under name. ctx is passed to l on every fire; a nil ctx means
// the owning instance. It returns (nil, false) for an empty name or nil listener.
func (h *Hub) On(name string, l *Listener, ctx any) (*Handle, bool) {
	return h.add(name, l, ctx, false)
}

// Once is On for a registration that is removed right before its first invocation.
func (h *Hub) Once(name string, l *Listener, ctx any) (*Handle, bool) {
	return h.add(name, l, ctx, true)
}

func (h *Hub) add(name string, l *Listener, ctx any, once bool) (*Handle, bool) {
	if name == "" || l == nil || l.fn == nil {
		return nil, false
	}
	if ctx == nil {
		ctx = h.owner
	}
	rec := &Handle{id: uuid.New(), event: name, listener: l, ctx: ctx, once: once}
	h.events[name] = append(h.events[name], rec)
	h.logger.Debug("listener registered", zap.String("event", name), zap.Stringer("handle", rec))
	return rec, true
}

// UnAll clears every event and returns the number of removed registrations.
func (h *Hub) UnAll() int {
	n := 0
	for _, recs := range h.events {
		n += len(recs)
	}
	clear(h.events)
	return n
}

// Un clears all registrations of name.
func (h *Hub) Un(name string) int {
	n := len(h.events[name])
	delete(h.events, name)
	return n
}

// UnListener removes every registration of name whose listener is l.
func (h *Hub) UnListener(name string, l *Listener) int {
	if l == nil {
		return 0
	}
	return h.removeWhere(name, func(rec *Handle) bool { return rec.listener == l })
}

// UnHandle removes the registration identified by handle.
func (h *Hub) UnHandle(name string, handle *Handle) int {
	if handle == nil {
		return 0
	}
	return h.removeWhere(name, func(rec *Handle) bool { return rec == handle })
}

func (h *Hub) removeWhere(name string, match func(*Handle) bool) int {
	recs, ok := h.events[name]
	if !ok {
		return 0
	}
	kept := slices.DeleteFunc(slices.Clone(recs), match)
	removed := len(recs) - len(kept)
	if len(kept) == 0 {
		delete(h.events, name)
	} else {
		h.events[name] = kept
	}
	return removed
}

// Fire invokes every listener registered under name, first registered first,
// and returns how many listeners were invoked. Firing an unknown name is a
// no-op. A Once registration runs at most once, also across nested fires.
func (h *Hub) Fire(name string, args ...any) int {
	snapshot := slices.Clone(h.events[name])
	invoked := 0
	for _, rec := range snapshot {
		if rec.once {
			if rec.fired {
				continue
			}
			rec.fired = true
			h.removeWhere(name, func(r *Handle) bool { return r == rec })
		}
		rec.listener.fn(rec.ctx, args...)
		invoked++
	}
	if invoked > 0 {
		h.logger.Debug("event fired", zap.String("event", name), zap.Int("listeners", invoked))
	}
	return invoked
}

// Listeners returns the number of current registrations of name.
func (h *Hub) Listeners(name string) int { return len(h.events[name]) }

// Names returns the event names that have at least one registration, sorted.
func (h *Hub) Names() []string {
	names := make([]string, 0, len(h.events))
	for name := range h.events {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Events returns the instance's hub, creating it on first use. It returns nil
// when the instance's class is not eventable.
func (i *Instance) Events() *Hub {
	if !i.eventable {
		return nil
	}
	if i.hub == nil {
		i.hub = newHub(i, i.logger)
	}
	return i.hub
}

// On registers a listener on the instance hub. See Hub.On.
func (i *Instance) On(name string, l *Listener, ctx any) (*Handle, bool) {
	hub := i.Events()
	if hub == nil {
		return nil, false
	}
	return hub.On(name, l, ctx)
}

// Once registers a one-shot listener on the instance hub. See Hub.Once.
func (i *Instance) Once(name string, l *Listener, ctx any) (*Handle, bool) {
	hub := i.Events()
	if hub == nil {
		return nil, false
	}
	return hub.Once(name, l, ctx)
}

// UnAll clears every event of the instance.
func (i *Instance) UnAll() int {
	if i.hub == nil {
		return 0
	}
	return i.hub.UnAll()
}

// Un clears every listener of name.
func (i *Instance) Un(name string) int {
	if i.hub == nil {
		return 0
	}
	return i.hub.Un(name)
}

// UnListener removes every registration of name whose listener is l.
func (i *Instance) UnListener(name string, l *Listener) int {
	if i.hub == nil {
		return 0
	}
	return i.hub.UnListener(name, l)
}

// UnHandle removes exactly the registration identified by handle.
func (i *Instance) UnHandle(name string, handle *Handle) int {
	if i.hub == nil {
		return 0
	}
	return i.hub.UnHandle(name, handle)
}

// Fire dispatches name synchronously. See Hub.Fire.
func (i *Instance) Fire(name string, args ...any) int {
	if i.hub == nil {
		return 0
	}
	return i.hub.Fire(name, args...)
}
