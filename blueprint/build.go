package blueprint

import (
	"errors"
	"strconv"

	"github.com/sghaida/oclass/class"
)

// ErrMissingHandler is the sentinel behind MissingHandlerError.
var ErrMissingHandler = errors.New("blueprint: missing handler")

// MissingHandlerError names a declared method without a handler.
type MissingHandlerError struct {
	Class  string
	Method string
}

// Error implements the error interface.
func (e MissingHandlerError) Error() string {
	// Example: blueprint: missing handler for "Dog.speak"
	return "blueprint: missing handler for " + strconv.Quote(HandlerKey(e.Class, e.Method))
}

// Unwrap allows errors.Is(err, ErrMissingHandler).
func (e MissingHandlerError) Unwrap() error { return ErrMissingHandler }

// Handlers maps HandlerKey(class, method) to the method implementation.
type Handlers map[string]class.Method

// HandlerKey returns the lookup key of a method handler, e.g. "Dog.speak".
func HandlerKey(className, method string) string { return className + "." + method }

// Provide stores a handler and returns h for chaining.
func (h Handlers) Provide(className, method string, fn class.Method) Handlers {
	h[HandlerKey(className, method)] = fn
	return h
}

// Set is a built hierarchy.
type Set struct {
	Factory *class.Factory
	classes map[string]*class.Class
	order   []string
}

// Class returns the built class called name.
func (s *Set) Class(name string) (*class.Class, bool) {
	c, ok := s.classes[name]
	return c, ok
}

// MustClass returns the built class called name or panics.
func (s *Set) MustClass(name string) *class.Class {
	c, ok := s.classes[name]
	if !ok {
		panic(errors.New("blueprint: no class " + strconv.Quote(name)))
	}
	return c
}

// Names returns the class names in build order (parents first).
func (s *Set) Names() []string { return append([]string(nil), s.order...) }

// Build validates bp and creates every class through a new class.Factory
// configured with the blueprint capabilities. opts are applied after the
// capabilities, so they can add a logger or override a flag.
//
// Root classes are created by the factory; every other class is created on
// its parent, so capability inheritance follows the class chain.
func Build(bp *Blueprint, handlers Handlers, opts ...class.Option) (*Set, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	factoryOpts := append([]class.Option{
		class.WithInstanceTracking(bp.Capabilities.TrackInstances),
		class.WithEvents(bp.Capabilities.Events),
	}, opts...)

	set := &Set{
		Factory: class.NewFactory(factoryOpts...),
		classes: make(map[string]*class.Class, len(bp.Classes)),
	}

	for _, def := range bp.Order() {
		methods := make(class.Methods, len(def.Methods))
		for _, m := range def.Methods {
			fn, ok := handlers[HandlerKey(def.Name, m.Name)]
			if !ok || fn == nil {
				return nil, MissingHandlerError{Class: def.Name, Method: m.Name}
			}
			methods[m.Name] = class.WithOverride(fn, m.Override)
		}

		var (
			c   *class.Class
			err error
		)
		if def.Parent == "" {
			c, err = set.Factory.Create(nil, methods, class.WithName(def.Name))
		} else {
			c, err = set.classes[def.Parent].Extend(methods, class.WithName(def.Name))
		}
		if err != nil {
			return nil, err
		}

		set.classes[def.Name] = c
		set.order = append(set.order, def.Name)
	}

	return set, nil
}
