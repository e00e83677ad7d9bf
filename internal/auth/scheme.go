// Package auth keeps the set of external sign-in schemes. Providers live in
// subpackages and add themselves through a Builder at startup.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/registry"
)

var (
	ErrDuplicateScheme = errors.New("auth: scheme already registered")
	ErrInvalidScheme   = errors.New("auth: invalid scheme")
)

// Scheme is one external sign-in provider. Login starts the flow; Callback
// receives the provider redirect at CallbackPath. FailurePath is optional.
type Scheme struct {
	Name         string
	Login        gin.HandlerFunc
	CallbackPath string
	Callback     gin.HandlerFunc
	FailurePath  string
	Failure      gin.HandlerFunc
}

func (s Scheme) validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidScheme)
	case s.Login == nil:
		return fmt.Errorf("%w: %s has no login handler", ErrInvalidScheme, s.Name)
	case !strings.HasPrefix(s.CallbackPath, "/") || s.Callback == nil:
		return fmt.Errorf("%w: %s needs an absolute callback path and handler", ErrInvalidScheme, s.Name)
	case s.FailurePath != "" && (!strings.HasPrefix(s.FailurePath, "/") || s.Failure == nil):
		return fmt.Errorf("%w: %s failure path needs a handler", ErrInvalidScheme, s.Name)
	}
	return nil
}

// Schemes is the ordered set of registered schemes. Names are unique
// ignoring case.
type Schemes struct {
	mu    sync.RWMutex
	items []Scheme
}

func NewSchemes() *Schemes { return &Schemes{} }

func (s *Schemes) Add(sc Scheme) error {
	if err := sc.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if strings.EqualFold(it.Name, sc.Name) {
			return fmt.Errorf("%w: %s", ErrDuplicateScheme, sc.Name)
		}
		if it.CallbackPath == sc.CallbackPath {
			return fmt.Errorf("%w: callback path %s already used by %s", ErrDuplicateScheme, sc.CallbackPath, it.Name)
		}
	}
	s.items = append(s.items, sc)
	return nil
}

func (s *Schemes) Get(name string) (Scheme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return Scheme{}, false
}

// All returns the schemes in registration order.
func (s *Schemes) All() []Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Scheme(nil), s.items...)
}

func (s *Schemes) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Name)
	}
	return out
}

// Builder adds a scheme to the set during startup.
type Builder = registry.Registrar[*Schemes]
