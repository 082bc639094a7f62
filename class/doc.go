// Package class provides a small, explicit class system for Go values.
//
// A Class is a named, constructible bundle of behaviour. It may inherit from
// at most one parent Class. Methods defined on a subclass compose with the
// parent's same-named method: the parent runs first (its result is
// discarded), then the subclass body runs and its result is returned. A
// method marked as an override replaces the parent's method instead.
//
// Two capabilities are optional and are set once on the root Factory:
//
//   - Instance tracking: every Class keeps a registry of live instances keyed by
//     a monotonically assigned id, with All/Find/Remove and Instance.Dispose.
//   - Events: every Instance gets a small publish/subscribe hub
//     (On/Un/Fire) with FIFO dispatch over a snapshot of the listener list.
//
// Capabilities are carried as fields on each produced Class and inherited by
// every Class created from it. There is no package-level mutable state.
//
// Basic usage
//
//	f := class.NewFactory(class.WithInstanceTracking(true))
//
//	animal, err := f.Create(nil, class.Methods{
//		"speak": class.Override(func(self *class.Instance, _ ...any) (any, error) {
//			return "...", nil
//		}),
//	}, class.WithName("Animal"))
//
//	dog, err := animal.Extend(class.Methods{
//		"speak": class.Direct(func(self *class.Instance, _ ...any) (any, error) {
//			return "woof", nil
//		}),
//	}, class.WithName("Dog"))
//
//	rex := dog.Init(class.Config{"name": "rex"})
//	out, err := rex.Call("speak") // animal's speak runs first, "woof" is returned
//
// # Concurrency
//
// The package is synchronous and single-threaded:
// nothing blocks and nothing is locked. Classes and instances must not be
// shared between goroutines without external synchronization.
package class
