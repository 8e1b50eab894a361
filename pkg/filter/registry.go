package filter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory creates a filter instance.
type Factory func() Filter

var (
	registry   = map[string]Factory{}
	registryMu sync.RWMutex
)

func init() {
	// Register all built-in filters
	Register("csv2text", func() Filter { return NewCsv2Text() })
	Register("beautify", func() Filter { return NewBeautify() })
	Register("re.inverse", func() Filter { return NewInverseGrep() })
	Register("grep", func() Filter { return NewGrep() })
}

// New creates a filter by name.
func New(name string) (Filter, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown filter: %s (available: %s)", name, strings.Join(Available(), ", "))
	}
	return factory(), nil
}

// Register adds a filter factory, replacing any existing one with that name.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Available returns the registered filter names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered returns true if a filter is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
