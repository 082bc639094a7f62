package class

import (
	"maps"
	"strconv"

	"go.uber.org/zap"
)

// Instance is a value constructed from a Class.
type Instance struct {
	class  *Class
	id     uint64
	fields map[string]any

	eventable bool
	hub       *Hub
	disposed  bool

	logger *zap.Logger
}

// Class returns the class the instance was constructed from, or nil once the
// instance has been disposed. Name and the registry accessors (All, Find,
// Remove, Count) accept the nil result; anything else should check Disposed first.
func (i *Instance) Class() *Class { return i.class }

// ID returns the registry id. ok is false when the class does not track instances.
func (i *Instance) ID() (id uint64, ok bool) { return i.id, i.id != 0 }

// Disposed reports whether Dispose has completed.
func (i *Instance) Disposed() bool { return i.disposed }

// Get returns an own field.
func (i *Instance) Get(key string) (any, bool) {
	v, ok := i.fields[key]
	return v, ok
}

// Set stores an own field.
func (i *Instance) Set(key string, val any) { i.fields[key] = val }

// Fields returns a copy of the own fields.
func (i *Instance) Fields() map[string]any { return maps.Clone(i.fields) }

// Call invokes the named method of the instance's class with i as receiver.
func (i *Instance) Call(name string, args ...any) (any, error) {
	if i.disposed {
		return nil, LifecycleError{Op: "call " + strconv.Quote(name), ID: i.id}
	}
	m, ok := i.class.methods[name]
	if !ok {
		return nil, MissingMethodError{Class: i.class.name, Method: name}
	}
	return m(i, args...)
}

// Super returns a thunk that runs name exactly as implemented on the parent of
// the instance's class, bound to i. Arguments passed to the thunk are forwarded.
//
// An override can use it to re-invoke the parent implementation at a point of
// its choosing. The class is resolved when the thunk runs, so a thunk obtained
// before Dispose fails with a LifecycleError afterwards.
func (i *Instance) Super(name string) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if i.disposed {
			return nil, LifecycleError{Op: "super " + strconv.Quote(name), ID: i.id}
		}
		parent := i.class.parent
		if parent == nil {
			return nil, MissingMethodError{Class: i.class.name + ".super", Method: name}
		}
		m, ok := parent.methods[name]
		if !ok {
			return nil, MissingMethodError{Class: parent.name, Method: name}
		}
		return m(i, args...)
	}
}

// Dispose removes the instance from its class registry and severs the
// reference to the class chain. Later Call and Super invocations fail with a
// LifecycleError. Event operations stay best-effort.
func (i *Instance) Dispose() error {
	if i.disposed {
		return LifecycleError{Op: "dispose", ID: i.id}
	}
	if !i.class.tracksInstances {
		return ErrTrackingDisabled
	}

	i.class.registry.Remove(i.id)
	i.logger.Debug("instance disposed", zap.String("class", i.class.name), zap.Uint64("id", i.id))

	i.class = nil
	i.disposed = true
	return nil
}
