// Package booking holds the configuration-time histogram bookkeeping:
// a registry of named axis binnings and a catalog of histogram
// definitions built from them. Both are populated once at startup and
// read-only afterwards; all name resolution fails fast.
package booking

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateName is returned when registering an axis or
	// defining a histogram under a name already taken.
	ErrDuplicateName = errors.New("booking: duplicate name")

	// ErrUnknownAxis is returned when resolving an axis name that was
	// never registered.
	ErrUnknownAxis = errors.New("booking: unknown axis")

	// ErrUnknownHistogram is returned when looking up a histogram name
	// that was never defined.
	ErrUnknownHistogram = errors.New("booking: unknown histogram")

	// ErrInvalidAxis is returned for axes violating Bins >= 1 or
	// Low < High.
	ErrInvalidAxis = errors.New("booking: invalid axis")

	// ErrInvalidSpec is returned for histogram specs with an axis
	// count other than 1 or 2.
	ErrInvalidSpec = errors.New("booking: invalid histogram spec")
)

// Axis is an immutable bin layout: Bins uniform bins over [Low, High).
type Axis struct {
	Title string
	Bins  int
	Low   float64
	High  float64
}

func (a Axis) validate() error {
	if a.Bins < 1 {
		return fmt.Errorf("%w: bins=%d", ErrInvalidAxis, a.Bins)
	}
	if !(a.Low < a.High) {
		return fmt.Errorf("%w: low=%v high=%v", ErrInvalidAxis, a.Low, a.High)
	}
	return nil
}

// Width returns the uniform bin width.
func (a Axis) Width() float64 {
	return (a.High - a.Low) / float64(a.Bins)
}

// Center returns the center of bin i.
func (a Axis) Center(i int) float64 {
	return a.Low + (float64(i)+0.5)*a.Width()
}

// EdgeLow returns the low edge of bin i.
func (a Axis) EdgeLow(i int) float64 {
	return a.Low + float64(i)*a.Width()
}

// AxisRegistry maps names to axis definitions. Registration happens
// during configuration; Seal freezes the registry before the event
// loop starts, after which Register panics.
type AxisRegistry struct {
	mu     sync.RWMutex
	axes   map[string]Axis
	sealed bool
}

// NewAxisRegistry returns an empty registry.
func NewAxisRegistry() *AxisRegistry {
	return &AxisRegistry{axes: make(map[string]Axis)}
}

// Register adds an axis under name.
func (r *AxisRegistry) Register(name string, ax Axis) error {
	if err := ax.validate(); err != nil {
		return fmt.Errorf("axis %q: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic("booking: Register on sealed AxisRegistry")
	}
	if _, ok := r.axes[name]; ok {
		return fmt.Errorf("axis %q: %w", name, ErrDuplicateName)
	}
	r.axes[name] = ax
	return nil
}

// Resolve returns the axis registered under name.
func (r *AxisRegistry) Resolve(name string) (Axis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ax, ok := r.axes[name]
	if !ok {
		return Axis{}, fmt.Errorf("axis %q: %w", name, ErrUnknownAxis)
	}
	return ax, nil
}

// Seal ends the configuration phase.
func (r *AxisRegistry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}
