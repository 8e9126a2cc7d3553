package substitute

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   string
	Value string
}

// Map is an insertion-ordered set of string substitutions with unique keys.
// Setting an existing key replaces its value but keeps its original position.
type Map struct {
	pairs []Pair
	index map[string]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Set adds key with value, or overwrites the value if key is already present.
func (m *Map) Set(key, value string) {
	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value
		return
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Get returns the value stored for key.
func (m *Map) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.pairs[i].Value, true
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.pairs) }

// Pairs returns a copy of the entries in insertion order.
func (m *Map) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Rewrite applies every entry to token in order. Each entry replaces all
// occurrences of its key once; values produced by earlier entries are visible
// to later ones, but no entry is applied twice. An empty key matches before
// every rune and at the end of the token.
func (m *Map) Rewrite(token string) string {
	for _, p := range m.pairs {
		token = strings.ReplaceAll(token, p.Key, p.Value)
	}
	return token
}

// MarshalJSON renders the map as a JSON object, keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range m.pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeJSONString(&b, p.Key); err != nil {
			return nil, err
		}
		b.WriteByte(':')
		if err := writeJSONString(&b, p.Value); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// String is the canonical JSON form used in verbose reports.
func (m *Map) String() string {
	data, err := m.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func writeJSONString(b *bytes.Buffer, s string) error {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	b.Truncate(b.Len() - 1)
	return nil
}
