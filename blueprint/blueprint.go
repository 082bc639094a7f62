// Package blueprint describes a class hierarchy declaratively and builds it
// through a class.Factory.
//
// A blueprint is usually stored next to the code that provides the handlers,
// either as YAML (*.class.yaml) or TOML (*.class.toml):
//
//	package: zoo
//	capabilities:
//	  trackInstances: true
//	  events: true
//	classes:
//	  - name: Animal
//	    methods:
//	      - name: speak
//	        override: true
//	  - name: Dog
//	    parent: Animal
//	    methods:
//	      - name: speak
//
// Handlers are supplied separately at Build time, keyed by HandlerKey. The
// same file drives cmd/classgen, which generates typed wiring code instead.
package blueprint

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalid is the sentinel behind ValidationError.
var ErrInvalid = errors.New("blueprint: invalid")

// Blueprint is the root document.
type Blueprint struct {
	// Package is the Go package name used by generated code.
	Package string `yaml:"package" toml:"package"`

	// Prefix prefixes generated identifiers (Handlers, Classes, Build...).
	// Optional; generated code uses no prefix when empty.
	Prefix string `yaml:"prefix,omitempty" toml:"prefix"`

	Capabilities Capabilities `yaml:"capabilities" toml:"capabilities"`
	Classes      []ClassDef   `yaml:"classes" toml:"classes"`
}

// Capabilities mirrors the class.Factory options.
type Capabilities struct {
	TrackInstances bool `yaml:"trackInstances" toml:"trackInstances"`
	Events         bool `yaml:"events" toml:"events"`
}

// ClassDef declares one class. Parent is empty for a root class.
type ClassDef struct {
	Name    string      `yaml:"name" toml:"name"`
	Parent  string      `yaml:"parent,omitempty" toml:"parent"`
	Methods []MethodDef `yaml:"methods" toml:"methods"`
}

// MethodDef declares one method entry of a class.
type MethodDef struct {
	Name     string `yaml:"name" toml:"name"`
	Override bool   `yaml:"override,omitempty" toml:"override"`
}

// ValidationError lists every problem found by Validate.
type ValidationError struct{ Problems []string }

// Error implements the error interface.
func (e ValidationError) Error() string {
	return "blueprint: invalid: " + strings.Join(e.Problems, "; ")
}

// Unwrap allows errors.Is(err, ErrInvalid).
func (e ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks the blueprint for structural problems and reports all of
// them at once.
func (b *Blueprint) Validate() error {
	var problems []string
	add := func(msg string) { problems = append(problems, msg) }

	if strings.TrimSpace(b.Package) == "" {
		add("package is required")
	}
	if len(b.Classes) == 0 {
		add("at least one class is required")
	}

	byName := make(map[string]ClassDef, len(b.Classes))
	for i, c := range b.Classes {
		if strings.TrimSpace(c.Name) == "" {
			add("class #" + strconv.Itoa(i) + " has no name")
			continue
		}
		if _, dup := byName[c.Name]; dup {
			add("duplicate class " + strconv.Quote(c.Name))
			continue
		}
		byName[c.Name] = c

		seen := make(map[string]struct{}, len(c.Methods))
		for _, m := range c.Methods {
			if strings.TrimSpace(m.Name) == "" {
				add("class " + strconv.Quote(c.Name) + " has a method without name")
				continue
			}
			if _, dup := seen[m.Name]; dup {
				add("class " + strconv.Quote(c.Name) + " declares method " + strconv.Quote(m.Name) + " twice")
			}
			seen[m.Name] = struct{}{}
		}
	}

	for _, c := range b.Classes {
		if c.Parent == "" {
			continue
		}
		if _, ok := byName[c.Parent]; !ok {
			add("class " + strconv.Quote(c.Name) + " has unknown parent " + strconv.Quote(c.Parent))
		}
	}

	for _, c := range b.Classes {
		if cyclic(c.Name, byName) {
			add("class " + strconv.Quote(c.Name) + " is part of an inheritance cycle")
		}
	}

	if len(problems) > 0 {
		return ValidationError{Problems: problems}
	}
	return nil
}

func cyclic(start string, byName map[string]ClassDef) bool {
	visited := map[string]struct{}{}
	for name := start; name != ""; {
		if _, ok := visited[name]; ok {
			return name == start
		}
		visited[name] = struct{}{}
		c, ok := byName[name]
		if !ok {
			return false
		}
		name = c.Parent
	}
	return false
}

// Order returns the classes parents first, keeping declaration order among
// classes whose parents are already placed. Classes whose parent never gets
// placed (unknown parent or cycle) are left out; call Validate first.
func (b *Blueprint) Order() []ClassDef {
	placed := make(map[string]struct{}, len(b.Classes))
	out := make([]ClassDef, 0, len(b.Classes))

	for progress := true; progress; {
		progress = false
		for _, c := range b.Classes {
			if _, done := placed[c.Name]; done {
				continue
			}
			if c.Parent != "" {
				if _, ok := placed[c.Parent]; !ok {
					continue
				}
			}
			placed[c.Name] = struct{}{}
			out = append(out, c)
			progress = true
		}
	}
	return out
}

// Class returns the declaration of name.
func (b *Blueprint) Class(name string) (ClassDef, bool) {
	for _, c := range b.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDef{}, false
}
