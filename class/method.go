package class

// Method is the callable stored in a class method table.
//
// The receiver is passed explicitly as self so a composed method can forward
// the same receiver to the parent implementation and to its own body.
type Method func(self *Instance, args ...any) (any, error)

// MethodSpec describes one entry of a method map: a handler and whether it
// overrides (shadows) the parent's same-named method.
//
// Build values with Direct, Override or WithOverride.
type MethodSpec struct {
	handler  Method
	override bool
}

// Direct returns a MethodSpec whose handler composes with the parent's method.
func Direct(fn Method) MethodSpec { return MethodSpec{handler: fn} }

// Override returns a MethodSpec whose handler replaces the parent's method.
func Override(fn Method) MethodSpec { return MethodSpec{handler: fn, override: true} }

// WithOverride returns a MethodSpec with an explicit override flag.
func WithOverride(fn Method, override bool) MethodSpec {
	return MethodSpec{handler: fn, override: override}
}

// Handler returns the user supplied handler.
func (s MethodSpec) Handler() Method { return s.handler }

// IsOverride reports whether the entry shadows the parent's method.
func (s MethodSpec) IsOverride() bool { return s.override }

// Methods maps method names to their specs.
type Methods map[string]MethodSpec

// chain returns the method stored in the new class table.
//
// parent is the already composed method of the parent class (nil when the
// parent has none), so composing one level at a time composes the whole chain.
func chain(handler, parent Method, override bool) Method {
	if override || parent == nil {
		return handler
	}
	return func(self *Instance, args ...any) (any, error) {
		if _, err := parent(self, args...); err != nil {
			return nil, err
		}
		return handler(self, args...)
	}
}
