// Command generate-golden writes the golden vectors used by the engine
// tests. The results come from the math/big evaluator, which serves as the
// oracle for every other engine.
//
// Usage:
//
//	go run ./cmd/generate-golden -out internal/engine/testdata/golden.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/agbru/bigcalc/internal/engine"
)

// GoldenCase is one operation and its expected decimal result.
type GoldenCase struct {
	Op         string   `json:"op"`
	Operands   []string `json:"operands"`
	OutputBase int      `json:"out_base,omitempty"`
	Result     string   `json:"result"`
}

// GoldenFile is the document written to disk.
type GoldenFile struct {
	Cases []GoldenCase `json:"cases"`
}

var operands = []string{
	"0", "1", "-1", "7", "-12",
	"18446744073709551615",
	"-18446744073709551616",
	"340282366920938463463374607431768211457",
	"-98765432109876543210987654321",
	"123456789012345678901234567890123456789",
}

var (
	binaryOps = []string{"add", "sub", "mul", "div", "mod", "rem", "trunc", "gcd", "and", "or", "xor"}
	unaryOps  = []string{"neg", "not", "bitlen", "sqrt"}
	exponents = []string{"0", "1", "2", "5", "13"}
	shifts    = []string{"-70", "-3", "0", "3", "70"}
)

// generateCases lists the golden requests in a fixed order. Requests the
// oracle rejects (division by zero, negative square roots) are skipped.
func generateCases() []GoldenCase {
	var reqs []engine.Request
	for _, op := range binaryOps {
		for _, a := range operands {
			for _, b := range operands {
				reqs = append(reqs, engine.Request{Op: op, Operands: []string{a, b}})
			}
		}
	}
	for _, op := range unaryOps {
		for _, a := range operands {
			reqs = append(reqs, engine.Request{Op: op, Operands: []string{a}})
		}
	}
	for _, a := range operands {
		for _, e := range exponents {
			reqs = append(reqs, engine.Request{Op: "pow", Operands: []string{a, e}})
		}
	}
	for _, a := range operands {
		for _, n := range shifts {
			reqs = append(reqs, engine.Request{Op: "ash", Operands: []string{a, n}})
		}
	}
	for _, a := range operands {
		reqs = append(reqs, engine.Request{Op: "convert", Operands: []string{a}, OutputBase: 16})
	}

	oracle := engine.NewStdlibEvaluator()
	cases := make([]GoldenCase, 0, len(reqs))
	for _, req := range reqs {
		result, err := oracle.Evaluate(context.Background(), req)
		if err != nil {
			continue
		}
		cases = append(cases, GoldenCase{
			Op:         req.Op,
			Operands:   req.Operands,
			OutputBase: req.OutputBase,
			Result:     result,
		})
	}
	return cases
}

func main() {
	out := flag.String("out", "internal/engine/testdata/golden.json", "Output file.")
	flag.Parse()

	data, err := json.MarshalIndent(GoldenFile{Cases: generateCases()}, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote golden vectors to %s\n", *out)
}
