package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return NewFromZap(zap.New(core)), logs
}

func TestLogger_InfoIsObserved(t *testing.T) {
	logger, logs := newObservedLogger()
	logger.Info("validating city", Field{Key: "city_id", Value: 42})

	require := logs.All()
	assert.Len(t, require, 1)
	assert.Equal(t, "validating city", require[0].Message)
	assert.Equal(t, int64(42), require[0].ContextMap()["city_id"])
}

func TestLogger_WithAddsPersistentFields(t *testing.T) {
	logger, logs := newObservedLogger()
	child := logger.With(Field{Key: "component", Value: "resolver"})
	child.Warn("slow pass")

	entries := logs.All()
	require := entries[0].ContextMap()
	assert.Equal(t, "resolver", require["component"])
}
