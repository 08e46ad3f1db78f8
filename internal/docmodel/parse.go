package docmodel

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// ParseDocument decodes a previously written YAML document, preserving the
// key order of classes and their entries. Malformed params inside an entry
// are dropped rather than failing the whole parse; the caller gets the rest.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{}
	if len(root.Content) == 0 {
		return doc, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse document: top level is not a mapping")
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := mapping.Content[i+1]

		if key == "_meta" {
			var meta Meta
			if err := value.Decode(&meta); err != nil {
				return nil, fmt.Errorf("parse _meta: %w", err)
			}
			doc.Meta = &meta
			continue
		}

		class, err := parseClass(key, value)
		if err != nil {
			return nil, err
		}
		doc.Classes = append(doc.Classes, class)
	}
	return doc, nil
}

func parseClass(name string, node *yaml.Node) (Class, error) {
	class := Class{Name: name}
	if node.Kind != yaml.MappingNode {
		return class, fmt.Errorf("class %s: not a mapping", name)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "description":
			class.Description = value.Value
		case "source":
			class.Source = value.Value
		case "properties":
			entries, err := parseEntries(value)
			if err != nil {
				return class, fmt.Errorf("class %s: %w", name, err)
			}
			class.Properties = entries
		case "methods":
			entries, err := parseEntries(value)
			if err != nil {
				return class, fmt.Errorf("class %s: %w", name, err)
			}
			class.Methods = entries
		}
	}
	return class, nil
}

// entryYAML mirrors the serialized shape of a property or method entry.
type entryYAML struct {
	Type              string   `yaml:"type"`
	Description       string   `yaml:"description"`
	Writable          bool     `yaml:"writable"`
	Returns           string   `yaml:"returns"`
	ReturnDescription string   `yaml:"return_description"`
	Params            []Param  `yaml:"params"`
	Example           string   `yaml:"example"`
	Aliases           []string `yaml:"aliases"`
	Signature         string   `yaml:"signature"`
}

func parseEntries(node *yaml.Node) ([]Entry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("entries: not a mapping")
	}
	var entries []Entry
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var raw entryYAML
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("entry %s: %w", name, err)
		}
		entry := Entry{
			Name:              name,
			Description:       raw.Description,
			Type:              raw.Type,
			Writable:          raw.Writable,
			Returns:           raw.Returns,
			ReturnDescription: raw.ReturnDescription,
			Example:           raw.Example,
			Aliases:           raw.Aliases,
			Signature:         raw.Signature,
		}
		// Params without a name are curation mistakes; keep the rest of the
		// entry usable instead of failing the run.
		for _, p := range raw.Params {
			if err := validate.Struct(p); err != nil {
				continue
			}
			entry.Params = append(entry.Params, p)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
