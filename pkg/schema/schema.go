package schema

// Schema is an ordered set of options.
type Schema struct {
	keys    []string
	options map[string]*Option
}

// New creates an empty schema
func New() *Schema {
	return &Schema{options: make(map[string]*Option)}
}

// Add declares an option. Re-adding a key replaces its option in place.
func (s *Schema) Add(key string, opt *Option) *Schema {
	if _, exists := s.options[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.options[key] = opt
	return s
}

// Remove drops an option from the schema.
func (s *Schema) Remove(key string) *Schema {
	if _, exists := s.options[key]; !exists {
		return s
	}
	delete(s.options, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return s
}

// Get returns the option declared for key.
func (s *Schema) Get(key string) (*Option, bool) {
	opt, ok := s.options[key]
	return opt, ok
}

// Lookup walks nested dict schemas along path.
func (s *Schema) Lookup(path ...string) (*Option, bool) {
	current := s
	var opt *Option
	for i, key := range path {
		o, ok := current.options[key]
		if !ok {
			return nil, false
		}
		opt = o
		if i == len(path)-1 {
			break
		}
		if o.Schema == nil {
			return nil, false
		}
		current = o.Schema
	}
	return opt, opt != nil
}

// Keys returns option names in declaration order
func (s *Schema) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of declared options
func (s *Schema) Len() int {
	return len(s.keys)
}

// Defaults returns the complete default mapping. The result is a fresh copy
// and may be modified by the caller.
func (s *Schema) Defaults() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.options[key].DefaultValue()
	}
	return out
}

// Extend returns a copy of s with the options of other appended. Options in
// other replace options of the same name in s.
func (s *Schema) Extend(other *Schema) *Schema {
	out := s.Clone()
	if other == nil {
		return out
	}
	for _, key := range other.keys {
		out.Add(key, other.options[key])
	}
	return out
}

// Clone returns a shallow copy: the key order and option table are copied,
// options themselves are shared.
func (s *Schema) Clone() *Schema {
	out := New()
	for _, key := range s.keys {
		out.Add(key, s.options[key])
	}
	return out
}
