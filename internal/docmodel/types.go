// Package docmodel defines the documentation data model shared by both
// extraction pipelines, parses previously written YAML documents, and merges
// fresh extraction results against curated prior documents.
package docmodel

import "fmt"

// PlaceholderDescription marks entries whose prose documentation is still
// owed. It survives round trips so repeated runs stay byte-identical.
const PlaceholderDescription = "TODO: Add description"

// ClassPlaceholder returns the description placeholder for a class entry.
func ClassPlaceholder(name string) string {
	return fmt.Sprintf("TODO: Add description for %s", name)
}

// Param is one documented parameter of a method.
type Param struct {
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Entry is a documented property or method of a class. Properties use Type
// and Writable; methods use Returns, ReturnDescription and Params. Signature
// carries the display form from the source doc comment, when one was given.
type Entry struct {
	Name              string
	Description       string
	Type              string
	Writable          bool
	Returns           string
	ReturnDescription string
	Params            []Param
	Example           string
	Aliases           []string
	Signature         string
}

// Class groups the documented properties and methods of one scope. Entry
// order is insertion order and is preserved through merge and render.
type Class struct {
	Name        string
	Description string
	Source      string
	Properties  []Entry
	Methods     []Entry
}

// Meta is the optional leading "_meta" section of the extensions document.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// Document is an ordered set of classes, optionally prefixed by a Meta
// section. It is both the fresh extraction result and the parsed form of a
// previously written YAML document.
type Document struct {
	Meta    *Meta
	Classes []Class
}

// Class returns the class with the given name, or nil.
func (d *Document) Class(name string) *Class {
	for i := range d.Classes {
		if d.Classes[i].Name == name {
			return &d.Classes[i]
		}
	}
	return nil
}

// Property returns the named property entry, or nil.
func (c *Class) Property(name string) *Entry {
	return findEntry(c.Properties, name)
}

// Method returns the named method entry, or nil.
func (c *Class) Method(name string) *Entry {
	return findEntry(c.Methods, name)
}

func findEntry(entries []Entry, name string) *Entry {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	return nil
}
