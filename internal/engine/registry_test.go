package engine

import (
	"context"
	"errors"
	"slices"
	"testing"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

type stubEvaluator struct{ name string }

func (s stubEvaluator) Name() string { return s.name }
func (s stubEvaluator) Evaluate(context.Context, Request) (string, error) {
	return s.name, nil
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	names := f.List()
	if !slices.Contains(names, "bigz") || !slices.Contains(names, "stdlib") {
		t.Errorf("List() = %v, want bigz and stdlib", names)
	}
	if !slices.IsSorted(names) {
		t.Errorf("List() is not sorted: %v", names)
	}

	ev, err := f.Get("bigz")
	if err != nil {
		t.Fatal(err)
	}
	again, _ := f.Get("bigz")
	if ev != again {
		t.Error("Get should return the cached evaluator")
	}

	if _, err := f.Get("abacus"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Get(abacus): expected ErrUnknownEngine, got %v", err)
	}
}

func TestFactoryRegisterReplaces(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.Register("x", func() Evaluator { return stubEvaluator{"first"} })
	first, _ := f.Get("x")
	f.Register("x", func() Evaluator { return stubEvaluator{"second"} })
	second, _ := f.Get("x")
	if first.Name() != "first" || second.Name() != "second" {
		t.Errorf("got %q then %q", first.Name(), second.Name())
	}
}

func TestGlobalFactoryIsShared(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory must return the same instance")
	}
}

func TestLimitSizeAppliesToEveryBackend(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	f.Register("stub", func() Evaluator { return stubEvaluator{"stub"} })
	LimitSize(f, 2)

	for _, name := range f.List() {
		ev, err := f.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		_, err = ev.Evaluate(context.Background(), Request{Op: "ash", Operands: []string{"1", "128"}})
		if name == "stub" {
			if err != nil {
				t.Errorf("stub: unexpected error %v", err)
			}
			continue
		}
		var memErr apperrors.MemoryError
		if !errors.As(err, &memErr) || memErr.Limit != 2 {
			t.Errorf("%s: ash 1 128 with a 2-word limit: got %v, want MemoryError", name, err)
		}
	}
}
