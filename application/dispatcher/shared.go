package dispatcher

import (
	"context"
	"sync"

	"github.com/petricontrols/bootstrap/domain/ports"
)

// SharedLoader resolves the wrapped loader at most once and hands the same
// module handle (or the same error) to every caller. Concurrent callers block
// until the first load finishes. A failed load is not retried.
type SharedLoader struct {
	loader ports.ModuleLoader

	once   sync.Once
	module ports.Module
	err    error
}

var _ ports.ModuleLoader = (*SharedLoader)(nil)

// Share wraps loader so that it is resolved once per process.
func Share(loader ports.ModuleLoader) *SharedLoader {
	return &SharedLoader{loader: loader}
}

// Load implements ports.ModuleLoader. Only the first caller's context is used.
func (s *SharedLoader) Load(ctx context.Context) (ports.Module, error) {
	s.once.Do(func() {
		s.module, s.err = s.loader.Load(ctx)
	})
	return s.module, s.err
}
