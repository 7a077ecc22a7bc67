package platform

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Auto selects ewmh when an X display is configured and stdin otherwise.
const Auto = "auto"

// ErrUnknownBackend is returned by Open for names nobody registered.
var ErrUnknownBackend = errors.New("unknown backend")

// Factory opens a backend.
type Factory func() (Backend, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under name. Backend packages call it
// from init().
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[name]; dup {
		panic("platform: backend registered twice: " + name)
	}
	factories[name] = f
}

// Names lists the registered backends in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open returns the backend registered under name, resolving Auto first.
func Open(name string) (Backend, error) {
	name = Resolve(name, os.Getenv("DISPLAY"))

	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	b, err := f()
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", name, err)
	}
	return b, nil
}

// Resolve maps Auto to a concrete backend name for the given DISPLAY value.
func Resolve(name, display string) string {
	if name != Auto && name != "" {
		return name
	}
	if display != "" {
		return "ewmh"
	}
	return "stdin"
}
