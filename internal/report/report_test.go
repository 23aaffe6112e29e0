package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
)

func TestGenerator_GenerateReflectsCounts(t *testing.T) {
	diag := diagnostics.NewCollector()
	diag.Notice("hint", nil)
	diag.Warn("a problem", nil)
	diag.Error("fatal", nil)

	g := NewGenerator()
	report := g.Generate(1, "Testville", diag,
		Counts{Expected: 10, Found: 9}, Counts{Expected: 2, Found: 2},
		map[string]Counts{"M1": {Expected: 1, Found: 1}},
		3, 1, map[string]int{"subway": 2})

	require.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, report.Counts.Errors)
	assert.Equal(t, 1, report.Counts.Warnings)
	assert.Equal(t, 1, report.Counts.Notices)
	assert.False(t, report.IsGood)
	assert.Len(t, report.Diagnostics, 3)
}

func TestGenerator_IsGoodWithoutErrors(t *testing.T) {
	diag := diagnostics.NewCollector()
	diag.Warn("a problem", nil)

	g := NewGenerator()
	report := g.Generate(1, "Testville", diag, Counts{}, Counts{}, nil, 0, 0, nil)
	assert.True(t, report.IsGood)
}
