package logging

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAdapterWithOutput(tt.level, tt.format, &buf)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
	}{
		{name: "debug", logFunc: func(l Logger, m string, f ...Field) { l.Debug(m, f...) }, message: "request sent"},
		{name: "info", logFunc: func(l Logger, m string, f ...Field) { l.Info(m, f...) }, message: "page loaded"},
		{name: "warn", logFunc: func(l Logger, m string, f ...Field) { l.Warn(m, f...) }, message: "validation failed"},
		{name: "error", logFunc: func(l Logger, m string, f ...Field) { l.Error(m, f...) }, message: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedAdapter(logrus.DebugLevel)
			tt.logFunc(logger, tt.message, F(FieldCategoryID, 7))

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, "category_id=7")
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldMethod, "DELETE").
		WithFields(F(FieldStatusCode, 409)).
		WithError(errors.New("has child records")).
		Error("delete rejected")

	output := buf.String()
	assert.Contains(t, output, "delete rejected")
	assert.Contains(t, output, "method=DELETE")
	assert.Contains(t, output, "status_code=409")
	assert.Contains(t, output, "has child records")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{F("a", "x"), F("b", 42)})
	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "x", logrusFields["a"])
	assert.Equal(t, 42, logrusFields["b"])

	assert.Empty(t, convertFields(nil))
}

func TestMockLogger_SharedEntries(t *testing.T) {
	mock := NewMockLogger()
	derived := mock.WithField(FieldOperation, "add").WithError(errors.New("boom"))
	derived.Warn("failed", F(FieldStatusCode, 422))
	mock.Info("plain")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{F(FieldOperation, "add"), F(FieldStatusCode, 422)}, entries[0].Fields)
	assert.True(t, mock.HasEntry("INFO", "plain"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, io.Discard, adapter.logger.Out)

	assert.NotPanics(t, func() {
		logger.WithError(errors.New("boom")).Warn("dropped", F(FieldCount, 1))
	})
}
