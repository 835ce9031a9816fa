// Package registry provides a global registry of host document factories.
// Hosts register themselves at startup, allowing commands to resolve the
// bomber surfaces against any of them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-bomber/internal/surface"
)

// Factory builds a host document exposing the given surface ids.
type Factory func(ids surface.IDs) (*surface.Document, error)

// HostInfo contains metadata about a registered host.
type HostInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a host factory to the registry.
// Panics if a host with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: host %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered hosts, sorted by ID.
func List() []HostInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]HostInfo, 0, len(factories))
	for id := range factories {
		result = append(result, HostInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the document of a host by its ID.
// Returns an error if the host ID is not registered.
func Create(id string, ids surface.IDs) (*surface.Document, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown host %q", id)
	}
	return f(ids)
}

// Exists checks if a host with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
