package validator

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchemaDocument is returned when a schema document cannot be
// decoded.
var ErrInvalidSchemaDocument = errors.New("invalid schema document")

// ParseSchemaYAML decodes a declarative schema. JSON documents are accepted
// as well.
//
//	email: required|email
//	password:
//	  - required
//	  - min: 8
//	confirm: required|confirmed:@password
//	address:
//	  zip:
//	    - required
//	    - digits: 5
//	  country:
//	    - one_of: [de, es, fr]
//
// A string is an expression, a list holds rule entries in order (strings are
// expressions, single-key maps are a rule name with params) and a map nests
// another schema. Rule params may be a scalar, a list (positional) or a map
// (named); false disables the rule.
func ParseSchemaYAML(data []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidSchemaDocument, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Schema{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Schema{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: top level must be a map of field paths", ErrInvalidSchemaDocument, root.Line)
	}
	return decodeSchema(root, "")
}

// LoadSchemaFile reads and decodes a schema file from fsys.
func LoadSchemaFile(fsys fs.FS, name string) (Schema, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchemaDocument, err)
	}
	schema, err := ParseSchemaYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return schema, nil
}

func decodeSchema(node *yaml.Node, prefix string) (Schema, error) {
	schema := make(Schema, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("%w: line %d: field path must be a non-empty string", ErrInvalidSchemaDocument, key.Line)
		}
		path := Join(prefix, key.Value)

		def, err := decodeField(value, path)
		if err != nil {
			return nil, err
		}
		schema[key.Value] = def
	}
	return schema, nil
}

func decodeField(node *yaml.Node, path string) (Definition, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Rules{}, nil
		}
		return Expr(node.Value), nil
	case yaml.SequenceNode:
		rules := make(Rules, 0, len(node.Content))
		for _, entry := range node.Content {
			def, ok, err := decodeRuleEntry(entry, path)
			if err != nil {
				return nil, err
			}
			if ok {
				rules = append(rules, def)
			}
		}
		return rules, nil
	case yaml.MappingNode:
		return decodeSchema(node, path)
	case yaml.AliasNode:
		return decodeField(node.Alias, path)
	}
	return nil, schemaNodeErr(node, path, "unsupported field definition")
}

// decodeRuleEntry decodes one list entry. ok is false for disabled rules.
func decodeRuleEntry(node *yaml.Node, path string) (Definition, bool, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return Expr(node.Value), true, nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, false, schemaNodeErr(node, path, "rule entry must have exactly one rule name")
		}
		name := node.Content[0].Value
		params, enabled, err := decodeParams(node.Content[1], path)
		if err != nil {
			return nil, false, err
		}
		if !enabled {
			return nil, false, nil
		}
		return Rule{Name: name, Params: params}, true, nil
	}
	return nil, false, schemaNodeErr(node, path, "rule entry must be a string or a single-key map")
}

func decodeParams(node *yaml.Node, path string) (Params, bool, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return Params{}, false, schemaNodeErr(node, path, err.Error())
	}
	if enabled, ok := raw.(bool); ok && !enabled {
		return Params{}, false, nil
	}
	return paramsFrom(raw), true, nil
}

func schemaNodeErr(node *yaml.Node, path, detail string) error {
	err := configErr(ErrInvalidDefinition, "", fmt.Sprintf("line %d: %s", node.Line, detail))
	return withPath(err, path)
}
