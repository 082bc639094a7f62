// Command classgen generates typed wiring code from a class blueprint.
//
// You describe a hierarchy in a *.class.yaml (or *.class.toml) file next to
// the package that provides the method implementations, and add a
// //go:generate directive to the owner Go file:
//
//	//go:generate go run github.com/sghaida/oclass/cmd/classgen --spec ./zoo.class.yaml --out ./zoo_classes.gen.go
//
// Then:
//
//	go generate ./...
//
// # Generated API
//
// For a blueprint with prefix P (empty by default) classgen writes:
//
//   - PHandlers: one class.Method field per declared (class, method), named
//     <Class><Method>, e.g. DogSpeak
//   - PClasses: one *class.Class field per class
//   - NewPFactory(opts ...class.Option) *class.Factory: a factory with the
//     blueprint capabilities applied first
//   - BuildPClasses(f, h) (*PClasses, error): returns a
//     blueprint.MissingHandlerError for the first unset handler, then creates
//     roots on f and subclasses on their parents
//
// --class-import and --blueprint-import change the import paths written into
// the generated file.
//
// Before writing, classgen builds the hierarchy once with placeholder
// handlers through the blueprint package, so a blueprint that cannot be built
// never produces code. Output is gofmt-formatted and written atomically.
//
// Exit codes: 0 success, 1 generation failure, 2 usage error.
package main
