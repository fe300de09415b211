package loader

import (
	"encoding/json"
	"sort"
)

// Aggregate is the set of validated component configurations produced by
// one pass. It is built once and never modified.
//
// A nil *Aggregate means no component validated; every method treats it as
// empty.
type Aggregate struct {
	configs map[string]any
	names   []string
}

func newAggregate(configs map[string]any) *Aggregate {
	if len(configs) == 0 {
		return nil
	}

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Aggregate{configs: configs, names: names}
}

// Get returns the validated configuration of a component.
// The value is shared; callers must treat it as read-only.
func (a *Aggregate) Get(component string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.configs[component]
	return v, ok
}

// Has reports whether a component is present.
func (a *Aggregate) Has(component string) bool {
	_, ok := a.Get(component)
	return ok
}

// Names returns the component names, sorted.
func (a *Aggregate) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.names...)
}

// Len returns the number of components.
func (a *Aggregate) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// MarshalJSON renders the aggregate as an object keyed by component name.
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	return json.Marshal(a.configs)
}

// Lookup returns a component's configuration as *T.
// It reports false if the component is absent or holds a different type.
//
//	camera, ok := loader.Lookup[models.CameraConfig](agg, "camera")
func Lookup[T any](a *Aggregate, component string) (*T, bool) {
	v, ok := a.Get(component)
	if !ok {
		return nil, false
	}
	t, ok := v.(*T)
	return t, ok
}
