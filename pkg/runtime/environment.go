package runtime

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownIdentifier is returned for lookups of undeclared names.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrTypeMismatch is returned when a value's type differs from the binding's.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Environment is the flat symbol table of one interpreter run.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Declare binds name, replacing any earlier binding and its type.
func (e *Environment) Declare(name string, value Value) {
	e.values[name] = value
}

// Assign rebinds an existing name. The new value must have the declared type.
func (e *Environment) Assign(name string, value Value) error {
	current, ok := e.values[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownIdentifier, name)
	}
	if current.Type() != value.Type() {
		return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, current.Type(), value.Type())
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownIdentifier, name)
}

// Has reports whether name is bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
