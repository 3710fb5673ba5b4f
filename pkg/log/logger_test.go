package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level log.Level) log.Logger {
	return log.New(
		log.WithOutput(buf),
		log.WithLevel(level),
		log.WithFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true}),
	)
}

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newTestLogger(&buf, log.InfoLevel)

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Equal(t, log.InfoLevel, logger.Level())

	require.NoError(t, logger.SetLevel("trace"))
	logger.Tracef("now %s", "visible")
	assert.Contains(t, buf.String(), "now visible")

	require.Error(t, logger.SetLevel("loud"))
}

func TestLoggerLevelMethods(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newTestLogger(&buf, log.WarnLevel)

	logger.Trace("trace message")
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warnf("warn %s", "message")
	logger.Error("error message")
	logger.Errorf("error %s", "formatted")

	out := buf.String()
	assert.NotContains(t, out, "trace message")
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "level=warning msg=\"warn message\"")
	assert.Contains(t, out, "level=error msg=\"error message\"")
	assert.Contains(t, out, "level=error msg=\"error formatted\"")
}

func TestLoggerFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newTestLogger(&buf, log.DebugLevel)
	logger.WithField(log.FieldKeyTask, "src").WithFields(log.Fields{log.FieldKeyEntries: 3}).Debug("walked")

	assert.Contains(t, buf.String(), "task=src")
	assert.Contains(t, buf.String(), "entries=3")

	buf.Reset()
	logger.Debug("plain")
	assert.NotContains(t, buf.String(), "task=src")
}

func TestLoggerCloneIsIndependent(t *testing.T) {
	t.Parallel()

	var parentBuf, childBuf bytes.Buffer

	parent := newTestLogger(&parentBuf, log.InfoLevel)
	child := parent.WithOptions(log.WithOutput(&childBuf), log.WithLevel(log.DebugLevel))

	child.Debug("child message")
	parent.Debug("parent debug")
	parent.Info("parent message")

	assert.Contains(t, childBuf.String(), "child message")
	assert.NotContains(t, parentBuf.String(), "child message")
	assert.NotContains(t, parentBuf.String(), "parent debug")
	assert.Contains(t, parentBuf.String(), "parent message")
	assert.Equal(t, log.InfoLevel, parent.Level())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range log.AllLevels {
		parsed, err := log.ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
		assert.Equal(t, level, log.FromLogrusLevel(level.ToLogrusLevel()))
	}

	_, err := log.ParseLevel("verbose")
	require.Error(t, err)
}

func TestParseFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	formatter, err := log.ParseFormatter(log.JSONFormat, &buf)
	require.NoError(t, err)

	logger := log.New(log.WithOutput(&buf), log.WithFormatter(formatter))
	logger.WithField(log.FieldKeyBase, "a").Info("json")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "json", decoded["msg"])
	assert.Equal(t, "a", decoded["base"])

	formatter, err = log.ParseFormatter(log.TextFormat, &buf)
	require.NoError(t, err)

	textFormatter, ok := formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.True(t, textFormatter.DisableColors)

	_, err = log.ParseFormatter("xml", &buf)
	require.Error(t, err)
}
