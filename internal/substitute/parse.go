package substitute

import (
	"encoding/json"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// csonSeparators are the characters that may join CSON pairs. The first one
// that occurs in the input is the separator for the whole input.
const csonSeparators = ";,|/~"

var (
	ErrNotObject   = errors.New("not an object of strings")
	ErrNoSeparator = errors.New("no pair separator")
	ErrBadPair     = errors.New("pair must be key:value")
)

// ParseJSON accepts exactly one JSON object whose values are all strings.
func ParseJSON(raw string) (*Map, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.Errorf("json: %w", ErrNotObject)
	}

	m := NewMap()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("json: key: %w", err)
		}
		key, _ := kt.(string)
		vt, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("json: value for %q: %w", key, err)
		}
		value, ok := vt.(string)
		if !ok {
			return nil, errors.Errorf("json: value for %q: %w", key, ErrNotObject)
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Errorf("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("json: trailing data after object")
	}
	return m, nil
}

// ParseYAML accepts a single YAML document whose root is a block or flow
// mapping of scalar keys to non-null scalar values.
func ParseYAML(raw string) (*Map, error) {
	dec := yaml.NewDecoder(strings.NewReader(raw))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Errorf("yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errors.New("yaml: more than one document")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.Errorf("yaml: %w", ErrNotObject)
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("yaml: %w", ErrNotObject)
	}

	m := NewMap()
	for i := 0; i+1 < len(root.Content); i += 2 {
		k := resolveAlias(root.Content[i])
		v := resolveAlias(root.Content[i+1])
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("yaml: line %d: %w", k.Line, ErrNotObject)
		}
		if k.ShortTag() == "!!null" || v.ShortTag() == "!!null" {
			return nil, errors.Errorf("yaml: line %d: null entry", k.Line)
		}
		m.Set(k.Value, v.Value)
	}
	return m, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// ParseCSON parses the compact "key:value" pair list, e.g. "a:1;b:2".
// Every pair must contain exactly one colon, otherwise the whole input is
// rejected.
func ParseCSON(raw string) (*Map, error) {
	i := strings.IndexAny(raw, csonSeparators)
	if i < 0 {
		return nil, errors.Errorf("cson: %w", ErrNoSeparator)
	}
	sep := raw[i : i+1]

	m := NewMap()
	for _, pair := range strings.Split(raw, sep) {
		kv := strings.Split(pair, ":")
		if len(kv) != 2 {
			return nil, errors.Errorf("cson: %q: %w", pair, ErrBadPair)
		}
		m.Set(kv[0], kv[1])
	}
	return m, nil
}
