package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenCase mirrors the records written by cmd/generate-golden.
type goldenCase struct {
	Op         string   `json:"op"`
	Operands   []string `json:"operands"`
	OutputBase int      `json:"out_base"`
	Result     string   `json:"result"`
}

func loadGolden(t *testing.T) []goldenCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "golden.json"))
	require.NoError(t, err)
	var file struct {
		Cases []goldenCase `json:"cases"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	require.NotEmpty(t, file.Cases)
	return file.Cases
}

// TestGolden runs every registered evaluator against the golden vectors.
func TestGolden(t *testing.T) {
	cases := loadGolden(t)
	factory := NewDefaultFactory()

	for _, name := range factory.List() {
		t.Run(name, func(t *testing.T) {
			ev, err := factory.Get(name)
			require.NoError(t, err)
			for _, c := range cases {
				req := Request{Op: c.Op, Operands: c.Operands, OutputBase: c.OutputBase}
				got, err := ev.Evaluate(context.Background(), req)
				if assert.NoError(t, err, "%s", req) {
					assert.Equal(t, c.Result, got, "%s", req)
				}
			}
		})
	}
}
