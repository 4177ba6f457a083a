package scaler

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Kind identifies a mapping from a raw distance into a bounded range.
type Kind string

const (
	KindNone        Kind = "none"
	KindLinear      Kind = "linear"
	KindExponential Kind = "exponential"
	KindCustom      Kind = "custom"
)

// Valid reports whether k names a known scaler kind.
func (k Kind) Valid() bool {
	switch k {
	case KindNone, KindLinear, KindExponential, KindCustom:
		return true
	}
	return false
}

// RequiresRange reports whether k needs a range parameter.
func (k Kind) RequiresRange() bool {
	return k == KindLinear || k == KindExponential
}

// ErrInvalidOutput indicates a custom scaler that produced a value outside
// [0, 1].
var ErrInvalidOutput = errors.New("scaler: custom scaler output outside [0, 1]")

// Func is the extension signature for user-supplied scalers. It receives the
// raw distance and the feature's range parameter (0 when unset) and must
// return a value in [0, 1].
type Func func(d, r float64) (float64, error)

// Identity returns d unchanged. Used when the raw metric already lies in
// [0, 1], e.g. hellinger or discrete.
func Identity(d float64) float64 { return d }

// Linear maps d to min(d/r, 1): monotonic, 0 at 0, saturating to 1 at and
// beyond d = r.
func Linear(d, r float64) float64 {
	return math.Min(d/r, 1)
}

// Exponential maps d to 1 - exp(-d/r): monotonic, 0 at 0, asymptotic to 1
// without ever reaching it.
func Exponential(d, r float64) float64 {
	return 1 - math.Exp(-d/r)
}

// CheckOutput validates the output-range contract for custom scalers: the
// value must lie in [0, 1].
func CheckOutput(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("scaler: output %v: %w", v, ErrInvalidOutput)
	}
	return nil
}

var (
	mu       sync.RWMutex
	registry = map[string]Func{}
)

// Register binds a custom scaler implementation to a name so that feature
// definitions and declarative configs can reference it by name. Registering
// an already-bound name replaces the previous implementation.
func Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("scaler: Register with empty name")
	}
	if fn == nil {
		return fmt.Errorf("scaler: Register %q with nil func", name)
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = fn
	return nil
}

// Lookup returns the custom scaler registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}
