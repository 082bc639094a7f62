package class

import (
	"slices"
	"strconv"

	"go.uber.org/zap"
)

// initMethod is the method run by the constructor.
const initMethod = "init"

// Option configures a Factory.
type Option func(*Factory)

// WithInstanceTracking enables the per-class instance registry
// (All/Find/Remove and Instance.Dispose) for every class the factory produces.
func WithInstanceTracking(enabled bool) Option {
	return func(f *Factory) { f.tracksInstances = enabled }
}

// WithEvents enables the per-instance event hub (On/Un/Fire).
func WithEvents(enabled bool) Option {
	return func(f *Factory) { f.isEventable = enabled }
}

// WithLogger sets the structured logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// ClassOption configures a single Create call.
type ClassOption func(*classOptions)

type classOptions struct {
	name string
}

// WithName names the produced class. Names are unique within a Factory.
func WithName(name string) ClassOption {
	return func(o *classOptions) { o.name = name }
}

// Factory is the root class factory. Its capability flags are set once at
// construction and threaded into every Class it (or any descendant) produces.
type Factory struct {
	tracksInstances bool
	isEventable     bool
	logger          *zap.Logger

	seq     int
	classes map[string]*Class
}

// NewFactory constructs a root factory. Both capabilities are off by default.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		logger:  zap.NewNop(),
		classes: make(map[string]*Class),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// TracksInstances reports whether produced classes keep an instance registry.
func (f *Factory) TracksInstances() bool { return f.tracksInstances }

// IsEventable reports whether produced instances carry an event hub.
func (f *Factory) IsEventable() bool { return f.isEventable }

// Create produces a new class. parent may be nil for a root class.
//
// Every entry of methods is composed with parent's same-named method unless
// the entry is an override. Create fails with a ConfigError naming the first
// malformed entry (in name order) and with a DuplicateClassError when the
// name given with WithName is taken.
func (f *Factory) Create(parent *Class, methods Methods, opts ...ClassOption) (*Class, error) {
	return f.build(parent, f.tracksInstances, f.isEventable, methods, opts)
}

// Class returns a class produced by this factory (or its descendants) by name.
func (f *Factory) Class(name string) (*Class, bool) {
	c, ok := f.classes[name]
	return c, ok
}

// Classes returns the names of all produced classes in ascending order.
func (f *Factory) Classes() []string {
	names := make([]string, 0, len(f.classes))
	for name := range f.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// nextName returns the first "Class<n>" name not taken by any class.
func (f *Factory) nextName() string {
	for {
		f.seq++
		name := "Class" + strconv.Itoa(f.seq)
		if _, taken := f.classes[name]; !taken {
			return name
		}
	}
}

func (f *Factory) build(parent *Class, tracks, eventable bool, methods Methods, opts []ClassOption) (*Class, error) {
	var o classOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	keys := make([]string, 0, len(methods))
	for name := range methods {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	for _, name := range keys {
		if name == "" {
			return nil, ConfigError{Method: name, Reason: "empty method name"}
		}
		if methods[name].handler == nil {
			return nil, ConfigError{Method: name, Reason: "nil handler"}
		}
	}

	if o.name == "" {
		o.name = f.nextName()
	} else if _, taken := f.classes[o.name]; taken {
		return nil, DuplicateClassError{Name: o.name}
	}

	c := &Class{
		name:            o.name,
		parent:          parent,
		factory:         f,
		tracksInstances: tracks,
		isEventable:     eventable,
		logger:          f.logger,
	}

	// Inherited entries first, own entries layered on top.
	if parent != nil {
		c.methods = make(map[string]Method, len(parent.methods)+len(methods))
		for name, m := range parent.methods {
			c.methods[name] = m
		}
	} else {
		c.methods = make(map[string]Method, len(methods)+1)
		c.methods[initMethod] = defaultInit
	}
	for _, name := range keys {
		spec := methods[name]
		c.methods[name] = chain(spec.handler, c.inheritedMethod(name), spec.override)
	}

	if tracks {
		c.registry = newRegistry()
	}

	f.classes[c.name] = c

	c.logger.Debug("class created",
		zap.String("class", c.name),
		zap.String("parent", parent.Name()),
		zap.Int("methods", len(keys)),
		zap.Bool("tracksInstances", tracks),
		zap.Bool("eventable", eventable),
	)
	return c, nil
}

// defaultInit copies every configuration key onto the instance as an own field.
// It is the root "init" of every hierarchy.
func defaultInit(self *Instance, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	var cfg map[string]any
	switch v := args[0].(type) {
	case Config:
		cfg = v
	case map[string]any:
		cfg = v
	}
	for k, v := range cfg {
		self.fields[k] = v
	}
	return nil, nil
}
