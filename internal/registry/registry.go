// Package registry provides a global registry of link transports.
// Transports register themselves in init() functions, allowing the CLI
// to open a link by the name given in the config without a hardcoded switch.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

// Transport opens one end of a node-to-node link.
type Transport interface {
	// Name returns the identifier used in config and flags (e.g., "tcp", "ws").
	Name() string

	// Title returns a human-readable description for listings.
	Title() string

	// Listen waits for exactly one peer on addr.
	// path is the endpoint for transports that have one.
	Listen(ctx context.Context, addr, path string) (link.Conn, error)

	// Dial connects to a listening peer at addr.
	Dial(ctx context.Context, addr, path string) (link.Conn, error)
}

// TransportInfo contains metadata about a registered transport.
type TransportInfo struct {
	Name  string
	Title string
}

var (
	transports = make(map[string]Transport)
	mu         sync.RWMutex
)

// Register adds a transport to the registry.
// Panics if a transport with the same name is already registered.
func Register(t Transport) {
	mu.Lock()
	defer mu.Unlock()

	name := strings.ToLower(t.Name())
	if _, exists := transports[name]; exists {
		panic(fmt.Sprintf("registry: transport %q already registered", name))
	}
	transports[name] = t
}

// List returns information about all registered transports, sorted by name.
func List() []TransportInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TransportInfo, 0, len(transports))
	for _, t := range transports {
		result = append(result, TransportInfo{
			Name:  strings.ToLower(t.Name()),
			Title: t.Title(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get looks a transport up by name (case-insensitive).
// Returns an error if the name is not registered.
func Get(name string) (Transport, error) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := transports[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("registry: unknown transport %q", name)
	}
	return t, nil
}

// Exists checks if a transport with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := transports[strings.ToLower(name)]
	return ok
}
