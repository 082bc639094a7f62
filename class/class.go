package class

import (
	"slices"

	"go.uber.org/zap"
)

// Config is the initialization payload passed to a constructor.
type Config map[string]any

// Class is a constructible template produced by a Factory.
//
// The parent reference is a back-reference used for composition and Super; a
// Class never owns its parent.
type Class struct {
	name    string
	parent  *Class
	factory *Factory
	methods map[string]Method

	tracksInstances bool
	isEventable     bool
	registry        *Registry

	logger *zap.Logger
}

// Name returns the class name. It is safe to call on a nil Class.
func (c *Class) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Parent returns the parent class, or nil for a root class.
func (c *Class) Parent() *Class { return c.parent }

// TracksInstances reports whether the class keeps an instance registry.
func (c *Class) TracksInstances() bool { return c.tracksInstances }

// IsEventable reports whether instances carry an event hub.
func (c *Class) IsEventable() bool { return c.isEventable }

// Has reports whether the class table (own or inherited) defines name.
func (c *Class) Has(name string) bool {
	_, ok := c.methods[name]
	return ok
}

// MethodNames returns every method name of the class table in ascending order.
func (c *Class) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Create produces a subclass of c. The receiver is the implicit parent, so a
// non-nil parent is rejected with a UsageError. Capability flags are inherited
// from c.
func (c *Class) Create(parent *Class, methods Methods, opts ...ClassOption) (*Class, error) {
	if parent != nil {
		return nil, UsageError{Class: c.name}
	}
	return c.factory.build(c, c.tracksInstances, c.isEventable, methods, opts)
}

// Extend is Create without the parent argument.
func (c *Class) Extend(methods Methods, opts ...ClassOption) (*Class, error) {
	return c.Create(nil, methods, opts...)
}

// New constructs an instance.
//
// When the class tracks instances the new instance is assigned the next id and
// registered before the "init" method runs. If "init" fails the instance is
// unregistered again and the error is returned.
func (c *Class) New(cfg Config) (*Instance, error) {
	inst := &Instance{
		class:     c,
		fields:    make(map[string]any, len(cfg)),
		eventable: c.isEventable,
		logger:    c.logger,
	}

	if c.tracksInstances {
		inst.id = c.registry.assignID()
		c.registry.register(inst.id, inst)
		c.logger.Debug("instance registered", zap.String("class", c.name), zap.Uint64("id", inst.id))
	}

	if _, err := c.methods[initMethod](inst, cfg); err != nil {
		if c.tracksInstances {
			c.registry.Remove(inst.id)
		}
		return nil, err
	}
	return inst, nil
}

// Init constructs an instance and panics if initialization fails.
func (c *Class) Init(cfg Config) *Instance {
	inst, err := c.New(cfg)
	if err != nil {
		panic(err)
	}
	return inst
}

// Registry returns the instance registry, or nil when tracking is disabled.
// The registry accessors below are safe to call on a nil Class, which is what
// a disposed instance reports from Instance.Class.
func (c *Class) Registry() *Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// All returns a snapshot of the live instances keyed by id.
// It returns nil when tracking is disabled.
func (c *Class) All() map[uint64]*Instance {
	reg := c.Registry()
	if reg == nil {
		return nil
	}
	return reg.All()
}

// Find returns the live instance registered under id.
func (c *Class) Find(id uint64) (*Instance, bool) {
	reg := c.Registry()
	if reg == nil {
		return nil, false
	}
	return reg.Lookup(id)
}

// Remove unregisters the instance with the given id. It reports whether an
// instance was removed. The instance itself is left usable; see Instance.Dispose.
func (c *Class) Remove(id uint64) bool {
	reg := c.Registry()
	if reg == nil {
		return false
	}
	return reg.Remove(id)
}

// Count returns the number of live instances (0 when tracking is disabled).
func (c *Class) Count() int {
	reg := c.Registry()
	if reg == nil {
		return 0
	}
	return reg.Len()
}

func (c *Class) inheritedMethod(name string) Method {
	if c.parent != nil {
		return c.parent.methods[name]
	}
	if name == initMethod {
		return defaultInit
	}
	return nil
}
