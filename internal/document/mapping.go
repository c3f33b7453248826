package document

// Mapping is a YAML mapping that remembers key order and key line numbers.
// The zero value is not usable; use NewMapping.
type Mapping struct {
	keys   []string
	values map[string]any
	lines  map[string]int
	line   int
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		values: make(map[string]any),
		lines:  make(map[string]int),
	}
}

// Set adds or replaces a key. New keys are appended to the key order.
func (m *Mapping) Set(key string, value any) *Mapping {
	m.set(key, value, 0)
	return m
}

func (m *Mapping) set(key string, value any, line int) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	m.lines[key] = line
}

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Line returns the source line of the mapping itself, 0 when unknown.
func (m *Mapping) Line() int {
	if m == nil {
		return 0
	}
	return m.line
}

// KeyLine returns the source line of key, 0 when unknown.
func (m *Mapping) KeyLine(key string) int {
	if m == nil {
		return 0
	}
	return m.lines[key]
}

// Has reports whether key is present, even with a null value.
func (m *Mapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the raw value for key.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// String returns the string value for key, or "" when absent or not a string.
func (m *Mapping) String(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Bool returns the bool value for key, or def when absent or not a bool.
func (m *Mapping) Bool(key string, def bool) bool {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Int returns the integer value for key, or def when absent or not an integer.
func (m *Mapping) Int(key string, def int) int {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	default:
		return def
	}
}

// Mapping returns the nested mapping for key. A missing or null value yields
// an empty mapping and ok=false.
func (m *Mapping) Mapping(key string) (*Mapping, bool) {
	v, _ := m.Get(key)
	if nested, ok := v.(*Mapping); ok {
		return nested, true
	}
	return NewMapping(), false
}

// Strings returns the string items of a sequence value. Non-string items are
// skipped.
func (m *Mapping) Strings(key string) []string {
	v, _ := m.Get(key)
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Plain converts the mapping into plain Go values.
func (m *Mapping) Plain() map[string]any {
	out := make(map[string]any, m.Len())
	for _, k := range m.Keys() {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Mapping:
		return t.Plain()
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = plain(item)
		}
		return items
	default:
		return v
	}
}
