// Package oclass is an explicit class system for Go: single inheritance with
// automatic chaining of same-named methods, optional instance bookkeeping and
// an optional per-instance event hub.
//
// The repository is organised as:
//
//   - class: the runtime (Factory, Class, Instance, Registry, Hub)
//   - blueprint: declarative YAML/TOML hierarchies built through a class.Factory
//   - cmd/classgen: code generator turning a blueprint into typed wiring code
//   - examples/zoo: runnable example using generated wiring and events
//
// There is no package-level state: capabilities are set once on a Factory and
// inherited by every class it produces.
//
// Import
//
//	"github.com/sghaida/oclass/class"
package oclass
