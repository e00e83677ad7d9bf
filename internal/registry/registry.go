// Package registry wires independently written modules into a shared target
// at startup. Modules are added explicitly; nothing is discovered by scanning.
package registry

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Registrar contributes something to a target of type T. Order decides the
// position among other registrars: lower runs first, ties keep insertion order.
type Registrar[T any] interface {
	Order() int
	Register(ctx context.Context, target T) error
}

// Func adapts a plain function into a Registrar.
type Func[T any] struct {
	Name     string
	Priority int
	Fn       func(ctx context.Context, target T) error
}

func (f Func[T]) Order() int { return f.Priority }

func (f Func[T]) Register(ctx context.Context, target T) error { return f.Fn(ctx, target) }

func (f Func[T]) String() string { return f.Name }

// Registry collects registrars and applies them in a stable order.
type Registry[T any] struct {
	mu    sync.Mutex
	items []Registrar[T]
}

func New[T any]() *Registry[T] { return &Registry[T]{} }

// Add appends registrars; nil entries are ignored.
func (r *Registry[T]) Add(rs ...Registrar[T]) *Registry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range rs {
		if reg != nil {
			r.items = append(r.items, reg)
		}
	}
	return r
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sorted returns a snapshot of the registrars in application order.
func (r *Registry[T]) Sorted() []Registrar[T] {
	r.mu.Lock()
	out := slices.Clone(r.items)
	r.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Registrar[T]) int {
		return cmp.Compare(a.Order(), b.Order())
	})
	return out
}

// Apply runs every registrar against target in Sorted order and stops at the
// first failure.
func (r *Registry[T]) Apply(ctx context.Context, target T) error {
	for i, reg := range r.Sorted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.Register(ctx, target); err != nil {
			return fmt.Errorf("registrar #%d (%s, order %d): %w", i, describe(reg), reg.Order(), err)
		}
	}
	return nil
}

func describe(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", v)
}
