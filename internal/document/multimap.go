package document

// Multimap is an ordered name/value multimap. Names keep first-seen order
// and a repeated name keeps every value rather than overwriting.
type Multimap struct {
	names  []string
	values map[string][]string
}

// NewMultimap returns an empty multimap.
func NewMultimap() *Multimap {
	return &Multimap{values: make(map[string][]string)}
}

// Add appends a value under name, registering the name on first sight.
func (m *Multimap) Add(name, value string) {
	if _, seen := m.values[name]; !seen {
		m.names = append(m.names, name)
	}
	m.values[name] = append(m.values[name], value)
}

// Get returns all values for name in insertion order. The slice is shared;
// callers must not mutate it.
func (m *Multimap) Get(name string) []string {
	return m.values[name]
}

// First returns the first value for name and whether the name exists.
func (m *Multimap) First(name string) (string, bool) {
	vs := m.values[name]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Has reports whether name has at least one value.
func (m *Multimap) Has(name string) bool {
	return len(m.values[name]) > 0
}

// Names returns field names in first-seen order.
func (m *Multimap) Names() []string {
	return m.names
}

// Len returns the number of distinct names.
func (m *Multimap) Len() int {
	return len(m.names)
}
