package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_InsertionOrderAndHasErrors(t *testing.T) {
	c := NewCollector()
	require.False(t, c.HasErrors())

	c.Notice("first notice", nil)
	c.Warn("a warning", &ElementRef{Kind: "node", Ref: 1, Name: "Central"})
	c.Error("fatal thing", nil)

	require.True(t, c.HasErrors())
	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, Notice, all[0].Severity)
	assert.Equal(t, Warning, all[1].Severity)
	assert.Equal(t, Error, all[2].Severity)
	assert.Equal(t, `a warning (node 1, "Central")`, all[1].Text())
	assert.Equal(t, "first notice", all[0].Text())
}

func TestCollector_CountsAndBySeverity(t *testing.T) {
	c := NewCollector()
	c.Notice("n1", nil)
	c.Notice("n2", nil)
	c.Warn("w1", nil)

	counts := c.Counts()
	assert.Equal(t, 2, counts[Notice])
	assert.Equal(t, 1, counts[Warning])
	assert.Equal(t, 0, counts[Error])
	assert.Len(t, c.BySeverity(Notice), 2)
}

func TestCollector_Merge(t *testing.T) {
	parent := NewCollector()
	parent.Notice("parent notice", nil)

	child := NewCollector()
	child.Error("child error", nil)

	parent.Merge(child)
	assert.True(t, parent.HasErrors())
	assert.Len(t, parent.All(), 2)
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, Error > Warning)
	assert.True(t, Warning > Notice)
}
