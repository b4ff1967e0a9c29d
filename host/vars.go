package host

import "github.com/lotus-sim/lotus-script-go/content"

// varStore holds the variables of one vehicle. Integer and float variables are kept
// apart from each other, so reading an f64 variable through get_i64 yields 0.
type varStore struct {
	values map[string]any
}

func newVarStore() *varStore {
	return &varStore{values: make(map[string]any)}
}

func (s *varStore) get(name string) any {
	return s.values[name]
}

func (s *varStore) set(name string, v any) {
	switch v.(type) {
	case int64, float64, string, bool, content.ID:
		s.values[name] = v
	}
}

func lookup[T any](s *varStore, name string) T {
	v, _ := s.values[name].(T)
	return v
}
