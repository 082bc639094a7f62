package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"go.uber.org/zap"

	"github.com/sghaida/oclass/blueprint"
	"github.com/sghaida/oclass/class"
)

// genMethod is one method entry as seen by the template.
type genMethod struct {
	Name     string
	Field    string
	Override bool
}

// genClass is one class as seen by the template.
type genClass struct {
	Name        string
	Field       string
	ParentField string
	Methods     []genMethod
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package         string
	Prefix          string
	ClassImport     string
	BlueprintImport string
	TrackInstances  bool
	Events          bool
	HasMethods      bool // handler checks reference the blueprint package
	Classes         []genClass
}

func loadBlueprint(path string) (*blueprint.Blueprint, error) {
	bp, err := blueprint.Load(path)
	if err != nil {
		return nil, err
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

// dryBuild builds the hierarchy once with placeholder handlers so that
// anything the class factory rejects is reported before code is written.
func dryBuild(bp *blueprint.Blueprint, logger *zap.Logger) error {
	noop := func(_ *class.Instance, _ ...any) (any, error) { return nil, nil }

	handlers := blueprint.Handlers{}
	for _, c := range bp.Classes {
		for _, m := range c.Methods {
			handlers.Provide(c.Name, m.Name, noop)
		}
	}

	set, err := blueprint.Build(bp, handlers, class.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("blueprint does not build: %w", err)
	}
	logger.Debug("dry build ok", zap.Strings("order", set.Names()))
	return nil
}

// render turns the blueprint into formatted Go source.
func render(bp *blueprint.Blueprint, classImport, blueprintImport string) ([]byte, error) {
	if !token.IsIdentifier(bp.Package) {
		return nil, fmt.Errorf("package %q is not a valid Go identifier", bp.Package)
	}

	data := templateData{
		Package:         bp.Package,
		Prefix:          exportName(bp.Prefix),
		ClassImport:     classImport,
		BlueprintImport: blueprintImport,
		TrackInstances:  bp.Capabilities.TrackInstances,
		Events:          bp.Capabilities.Events,
	}

	classFields := map[string]string{}
	handlerFields := map[string]string{}

	for _, def := range bp.Order() {
		gc := genClass{Name: def.Name, Field: exportName(def.Name)}
		if gc.Field == "" {
			return nil, fmt.Errorf("class %q has no usable Go identifier", def.Name)
		}
		if other, dup := classFields[gc.Field]; dup {
			return nil, fmt.Errorf("classes %q and %q both map to field %s", other, def.Name, gc.Field)
		}
		classFields[gc.Field] = def.Name
		if def.Parent != "" {
			gc.ParentField = exportName(def.Parent)
		}

		for _, m := range def.Methods {
			field := gc.Field + exportName(m.Name)
			key := blueprint.HandlerKey(def.Name, m.Name)
			if other, dup := handlerFields[field]; dup {
				return nil, fmt.Errorf("handlers %q and %q both map to field %s", other, key, field)
			}
			handlerFields[field] = key
			gc.Methods = append(gc.Methods, genMethod{Name: m.Name, Field: field, Override: m.Override})
			data.HasMethods = true
		}
		data.Classes = append(data.Classes, gc)
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}
	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// exportName converts a blueprint name to an exported Go identifier:
// "on_change" -> "OnChange", "speak" -> "Speak".
func exportName(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteRune('X')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// genTemplate is the Go source template of the generated wiring file.
var genTemplate = template.Must(
	template.New("classgen").Parse(`// Code generated by classgen; DO NOT EDIT.

package {{.Package}}

import (
{{- if .HasMethods}}
	blueprint "{{.BlueprintImport}}"
{{- end}}
	class "{{.ClassImport}}"
)

// {{.Prefix}}Handlers holds one implementation per declared method.
type {{.Prefix}}Handlers struct {
{{- range .Classes}}{{range .Methods}}
	{{.Field}} class.Method
{{- end}}{{end}}
}

// {{.Prefix}}Classes holds the built hierarchy.
type {{.Prefix}}Classes struct {
{{- range .Classes}}
	{{.Field}} *class.Class
{{- end}}
}

// New{{.Prefix}}Factory returns a factory with the blueprint capabilities applied before opts.
func New{{.Prefix}}Factory(opts ...class.Option) *class.Factory {
	return class.NewFactory(append([]class.Option{
		class.WithInstanceTracking({{.TrackInstances}}),
		class.WithEvents({{.Events}}),
	}, opts...)...)
}

// Build{{.Prefix}}Classes creates every class of the blueprint. Root classes are
// created on f, subclasses on their parent.
func Build{{.Prefix}}Classes(f *class.Factory, h {{.Prefix}}Handlers) (*{{.Prefix}}Classes, error) {
{{- range .Classes}}{{$class := .}}{{range .Methods}}
	if h.{{.Field}} == nil {
		return nil, blueprint.MissingHandlerError{Class: {{printf "%q" $class.Name}}, Method: {{printf "%q" .Name}}}
	}
{{- end}}{{end}}

	var (
		c   {{.Prefix}}Classes
		err error
	)
{{range .Classes}}
	c.{{.Field}}, err = {{if .ParentField}}c.{{.ParentField}}.Extend{{else}}f.Create{{end}}({{if not .ParentField}}nil, {{end}}class.Methods{
	{{- range .Methods}}
		{{printf "%q" .Name}}: class.WithOverride(h.{{.Field}}, {{.Override}}),
	{{- end}}
	{{- if .Methods}}
	{{end}}}, class.WithName({{printf "%q" .Name}}))
	if err != nil {
		return nil, err
	}
{{end}}
	return &c, nil
}
`),
)
