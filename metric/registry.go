package metric

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]Func{}
)

// Register binds a custom metric implementation to a name so that feature
// definitions and declarative configs can reference it by name. Registering
// an already-bound name replaces the previous implementation.
func Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("metric: Register with empty name")
	}
	if fn == nil {
		return fmt.Errorf("metric: Register %q with nil func", name)
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = fn
	return nil
}

// Lookup returns the custom metric registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}
