package zaplogger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
)

func TestLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(zap.New(core), observability.F("session_id", "abc"))

	l.With(observability.F("use_case", "catalog.add")).
		Warn("use_case_done", observability.F("outcome", "invalid_input"), observability.F("error", errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "use_case_done", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["session_id"])
	assert.Equal(t, "catalog.add", ctx["use_case"])
	assert.Equal(t, "invalid_input", ctx["outcome"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNewWithNilBaseDiscards(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() { l.Info("ignored") })
	assert.NoError(t, l.Sync())
}
