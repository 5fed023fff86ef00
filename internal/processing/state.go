package processing

// State is an opaque bag of values owned by the processing pipeline and
// threaded explicitly through each Process call. It is a value type with
// copy-on-write semantics, so a State handed to one call can never be
// mutated by another.
type State struct {
	values map[string]any
}

// NewState returns a fresh, empty state.
func NewState() State {
	return State{}
}

// With returns a copy of the state with key set to value. The receiver
// is left unchanged.
func (s State) With(key string, value any) State {
	next := make(map[string]any, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value
	return State{values: next}
}

// Value returns the value stored under key, if any.
func (s State) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}
