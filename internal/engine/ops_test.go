package engine

import (
	"errors"
	"testing"
)

func TestEveryOpIsImplemented(t *testing.T) {
	t.Parallel()
	for _, op := range Ops {
		if _, ok := bigzOps[op.Name]; !ok {
			t.Errorf("bigz evaluator does not implement %q", op.Name)
		}
		if _, ok := stdlibOps[op.Name]; !ok {
			t.Errorf("stdlib evaluator does not implement %q", op.Name)
		}
		if op.Arity < 1 || op.Arity > 3 {
			t.Errorf("%s has arity %d", op.Name, op.Arity)
		}
	}
	if len(bigzOps) != len(Ops) || len(stdlibOps) != len(Ops) {
		t.Errorf("implementation tables have %d and %d entries for %d operations", len(bigzOps), len(stdlibOps), len(Ops))
	}
}

func TestLookupOp(t *testing.T) {
	t.Parallel()
	spec, ok := LookupOp("ModExp")
	if !ok || spec.Name != "modexp" || spec.Arity != 3 {
		t.Errorf("LookupOp(ModExp) = %+v, %v", spec, ok)
	}
	if _, ok := LookupOp("frobnicate"); ok {
		t.Error("LookupOp should not find an unknown operation")
	}
	if names := OpNames(); len(names) != len(Ops) || names[0] != "add" {
		t.Errorf("OpNames() = %v", names)
	}
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"valid", Request{Op: "add", Operands: []string{"1", "2"}}, nil},
		{"upper case op", Request{Op: " ADD ", Operands: []string{"1", "2"}}, nil},
		{"unknown op", Request{Op: "frobnicate", Operands: []string{"1"}}, ErrUnknownOp},
		{"missing operand", Request{Op: "modexp", Operands: []string{"1", "2"}}, ErrArity},
		{"bad input base", Request{Op: "neg", Operands: []string{"1"}, InputBase: 1}, ErrBase},
		{"bad output base", Request{Op: "neg", Operands: []string{"1"}, OutputBase: 37}, ErrBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRequestString(t *testing.T) {
	t.Parallel()
	req := Request{Op: "modexp", Operands: []string{"4", "13", "497"}}
	if got := req.String(); got != "modexp 4 13 497" {
		t.Errorf("String() = %q", got)
	}
}
