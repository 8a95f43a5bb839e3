package format

import "fmt"

// Registry is the closed set of named container definitions handed to the
// generator. Iteration order is insertion order; it decides the order source
// units are emitted in, not any wire semantics. The registry is built once by
// the upstream schema layer and treated as immutable during generation.
type Registry struct {
	names      []string
	containers map[string]ContainerFormat
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		containers: make(map[string]ContainerFormat),
	}
}

// Add registers a container under name. Duplicate names return an error.
func (r *Registry) Add(name string, container ContainerFormat) error {
	if name == "" {
		return fmt.Errorf("format: container name is required")
	}
	if container == nil {
		return fmt.Errorf("format: container %q: definition is required", name)
	}
	if _, exists := r.containers[name]; exists {
		return fmt.Errorf("format: container %q already registered", name)
	}
	r.names = append(r.names, name)
	r.containers[name] = container
	return nil
}

// MustAdd panics on registration failure. Useful when assembling fixture
// registries in tests.
func (r *Registry) MustAdd(name string, container ContainerFormat) {
	if err := r.Add(name, container); err != nil {
		panic(err)
	}
}

// Get retrieves a container definition by name.
func (r *Registry) Get(name string) (ContainerFormat, bool) {
	container, ok := r.containers[name]
	return container, ok
}

// Has reports whether a container is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.containers[name]
	return ok
}

// Names returns container names in insertion order. The returned slice is a
// copy; callers may reorder it freely.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of registered containers.
func (r *Registry) Len() int {
	return len(r.names)
}
