package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithQuiet(), WithWriter(&buf), WithFormat("json"))

	l.Info("variable added", "key", "FOO")
	l.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "variable added", rec["msg"])
	assert.Equal(t, "FOO", rec["key"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithQuiet(), WithWriter(&buf), WithDebug())

	l.Debug("aggregating", "lines", 3)
	assert.Contains(t, buf.String(), "aggregating")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(WithQuiet(), WithWriter(&buf)))
	ctx = WithValues(ctx, "profile", "/home/u/.zshrc", "dangling")

	Info(ctx, "query")
	Warn(ctx, "careful")
	Error(ctx, "failed")

	out := buf.String()
	assert.Contains(t, out, "msg=query")
	assert.Contains(t, out, "profile=/home/u/.zshrc")
	assert.Contains(t, out, "dangling=MISSING_VALUE")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestFromContext_Default(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	Info(context.Background(), "goes nowhere")
}
