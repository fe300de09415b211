package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Type is a schema type: it validates raw JSON text and returns a
// typed instance (usually a pointer to a config struct).
type Type interface {
	Name() string
	Validate(raw []byte) (any, error)
}

// Module is a registered schema module.
type Module struct {
	Name  string
	Types []Type
}

// Type returns the type with the given name.
func (m Module) Type(name string) (Type, bool) {
	for _, t := range m.Types {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Registry maps module names to modules.
//
// All public methods are thread-safe.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module.
//
// Returns:
//   - ErrInvalidModule if the name is empty or a type is nil
//   - ErrModuleExists if the name is already registered
func (r *Registry) Register(m Module) error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidModule)
	}
	for i, t := range m.Types {
		if t == nil {
			return fmt.Errorf("%w: %s has nil type at index %d", ErrInvalidModule, m.Name, i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.Name]; exists {
		return fmt.Errorf("%w: %s", ErrModuleExists, m.Name)
	}
	r.modules[m.Name] = m
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for package-level registration of built-in models.
func (r *Registry) MustRegister(m Module) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Module returns the module registered under name.
func (r *Registry) Module(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	return m, ok
}

// Modules returns the registered module names, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve finds the module and type for a component using the naming
// convention ModuleName(component) / TypeName(component).
func (r *Registry) Resolve(component string) (Module, Type, error) {
	modName := ModuleName(component)

	m, ok := r.Module(modName)
	if !ok {
		return Module{}, nil, fmt.Errorf("%w: %s", ErrModuleNotFound, modName)
	}

	typeName := TypeName(component)
	t, ok := m.Type(typeName)
	if !ok {
		return m, nil, fmt.Errorf("%w: %s in module %s", ErrTypeNotFound, typeName, modName)
	}
	return m, t, nil
}

// ModuleName returns the schema module name for a component: "{component}_model".
func ModuleName(component string) string {
	return component + "_model"
}

// TypeName returns the schema type name for a component: "{Capitalize(component)}Config".
func TypeName(component string) string {
	return Capitalize(component) + "Config"
}

// Capitalize upper-cases the first character and lower-cases the rest,
// so "camera" and "CAMERA" both become "Camera".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
