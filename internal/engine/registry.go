package engine

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/agbru/bigcalc/internal/bigz"
)

// Constructor builds an Evaluator.
type Constructor func() Evaluator

// SizedConstructor builds an Evaluator that rejects results larger than
// maxWords 64-bit words.
type SizedConstructor func(maxWords int) Evaluator

// Factory creates evaluators by name.
type Factory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns the evaluator registered under name, creating it on first
	// use.
	Get(name string) (Evaluator, error)
	// Register adds or replaces the constructor for name.
	Register(name string, ctor Constructor)
}

// DefaultFactory is the thread-safe Factory implementation. Evaluators are
// created lazily and cached.
type DefaultFactory struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
	cache map[string]Evaluator
}

var (
	extraMu      sync.Mutex
	extraEngines = map[string]SizedConstructor{}
)

// registerEngine makes an optional backend, such as the gmp evaluator,
// available to every factory created afterwards. It is meant to be called
// from init functions.
func registerEngine(name string, ctor SizedConstructor) {
	extraMu.Lock()
	defer extraMu.Unlock()
	extraEngines[name] = ctor
}

// sizedEngines returns the built-in and optional backends by name.
func sizedEngines() map[string]SizedConstructor {
	engines := map[string]SizedConstructor{
		"bigz": func(maxWords int) Evaluator {
			return NewBigzEvaluator(bigz.WithMaxWords(maxWords))
		},
		"stdlib": func(maxWords int) Evaluator {
			return NewStdlibEvaluator().WithMaxWords(maxWords)
		},
	}
	extraMu.Lock()
	defer extraMu.Unlock()
	maps.Copy(engines, extraEngines)
	return engines
}

// NewFactory returns an empty factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{
		ctors: make(map[string]Constructor),
		cache: make(map[string]Evaluator),
	}
}

// NewDefaultFactory returns a factory with the bigz and stdlib evaluators
// and any backend compiled in through build tags, all limited to
// bigz.DefaultMaxWords.
func NewDefaultFactory() *DefaultFactory {
	f := NewFactory()
	for name, ctor := range sizedEngines() {
		f.Register(name, func() Evaluator { return ctor(bigz.DefaultMaxWords) })
	}
	return f
}

// LimitSize re-registers the built-in and optional backends listed by f
// with the given size limit. Other names, such as test doubles, are left
// alone. maxWords <= 0 removes the limit.
func LimitSize(f Factory, maxWords int) {
	engines := sizedEngines()
	for _, name := range f.List() {
		if ctor, ok := engines[name]; ok {
			f.Register(name, func() Evaluator { return ctor(maxWords) })
		}
	}
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// List returns the registered evaluator names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.ctors))
}

// Get returns the evaluator registered under name.
func (f *DefaultFactory) Get(name string) (Evaluator, error) {
	f.mu.RLock()
	if ev, ok := f.cache[name]; ok {
		f.mu.RUnlock()
		return ev, nil
	}
	ctor, ok := f.ctors[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, name, f.List())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := f.cache[name]; ok {
		return ev, nil
	}
	ev := ctor()
	f.cache[name] = ev
	return ev, nil
}

// Register adds or replaces the constructor for name and drops any cached
// evaluator of that name.
func (f *DefaultFactory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[name] = ctor
	delete(f.cache, name)
}
