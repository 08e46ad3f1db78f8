// Package render serializes documentation models: YAML documents with stable
// key order and literal-style multiline strings, and Markdown references with
// a fixed section layout.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alecnunn/soldoc/internal/docmodel"
)

// YAML serializes a document as YAML. Class and entry order is the document's
// insertion order; values containing newlines use literal block style so
// examples survive round trips byte for byte.
func YAML(doc *docmodel.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	if doc.Meta != nil {
		meta := mapping()
		addScalar(meta, "title", doc.Meta.Title)
		addScalar(meta, "description", doc.Meta.Description)
		addScalar(meta, "status", doc.Meta.Status)
		addNode(root, "_meta", meta)
	}

	for _, class := range doc.Classes {
		addNode(root, class.Name, classNode(&class))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func classNode(class *docmodel.Class) *yaml.Node {
	node := mapping()
	addScalar(node, "description", class.Description)
	if class.Source != "" {
		addScalar(node, "source", class.Source)
	}

	if len(class.Properties) > 0 {
		props := mapping()
		for _, p := range class.Properties {
			addNode(props, p.Name, entryNode(&p, true))
		}
		addNode(node, "properties", props)
	}
	if len(class.Methods) > 0 {
		methods := mapping()
		for _, m := range class.Methods {
			addNode(methods, m.Name, entryNode(&m, false))
		}
		addNode(node, "methods", methods)
	}
	return node
}

func entryNode(e *docmodel.Entry, property bool) *yaml.Node {
	node := mapping()
	if property && e.Type != "" {
		addScalar(node, "type", e.Type)
	}
	addScalar(node, "description", e.Description)
	if e.Writable {
		addNode(node, "writable", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if e.Signature != "" {
		addScalar(node, "signature", e.Signature)
	}
	if e.Returns != "" {
		addScalar(node, "returns", e.Returns)
	}
	if e.ReturnDescription != "" {
		addScalar(node, "return_description", e.ReturnDescription)
	}
	if len(e.Params) > 0 {
		params := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range e.Params {
			pn := mapping()
			addScalar(pn, "name", p.Name)
			if p.Type != "" {
				addScalar(pn, "type", p.Type)
			}
			if p.Description != "" {
				addScalar(pn, "description", p.Description)
			}
			params.Content = append(params.Content, pn)
		}
		addNode(node, "params", params)
	}
	if e.Example != "" {
		addScalar(node, "example", e.Example)
	}
	if len(e.Aliases) > 0 {
		aliases := &yaml.Node{Kind: yaml.SequenceNode}
		for _, a := range e.Aliases {
			aliases.Content = append(aliases.Content, scalar(a))
		}
		addNode(node, "aliases", aliases)
	}
	return node
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalar(value string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if strings.Contains(value, "\n") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func addScalar(m *yaml.Node, key, value string) {
	addNode(m, key, scalar(value))
}

func addNode(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
