package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytom/sm3/config"
)

// readModule returns the contents of the single log file for module.
func readModule(t *testing.T, dir, module string) string {
	matches, err := filepath.Glob(filepath.Join(dir, module+".*"))
	require.NoError(t, err)
	require.Len(t, matches, 1, module)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func newTestLogger(hook logrus.Hook) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(hook)
	return logger
}

func TestHookWritesModuleFile(t *testing.T) {
	dir := t.TempDir()
	hook := NewSumHook(dir)
	defer hook.Close()

	logger := newTestLogger(hook)
	logger.WithFields(logrus.Fields{"module": "sum", "file": "a.txt"}).Info("hashed")

	data := readModule(t, dir, "sum")
	assert.True(t, strings.Contains(data, "msg=hashed"))
	assert.True(t, strings.Contains(data, "file=a.txt"))
}

func TestHookTwoModules(t *testing.T) {
	dir := t.TempDir()
	hook := NewSumHook(dir)
	defer hook.Close()

	logger := newTestLogger(hook)
	for i := 0; i < 3; i++ {
		logger.WithFields(logrus.Fields{"module": "sum", "n": i}).Debug("hashed")
		logger.WithFields(logrus.Fields{"module": "check", "n": i}).Debug("verified")
	}

	assert.Len(t, hook.writers, 2)

	sum := readModule(t, dir, "sum")
	check := readModule(t, dir, "check")
	assert.Equal(t, 3, strings.Count(sum, "msg=hashed"))
	assert.Equal(t, 0, strings.Count(sum, "msg=verified"))
	assert.Equal(t, 3, strings.Count(check, "msg=verified"))
	assert.Equal(t, 0, strings.Count(check, "msg=hashed"))
	for _, n := range []string{"n=0", "n=1", "n=2"} {
		assert.True(t, strings.Contains(sum, n), n)
		assert.True(t, strings.Contains(check, n), n)
	}
}

func TestHookReopensAfterClose(t *testing.T) {
	dir := t.TempDir()
	hook := NewSumHook(dir)

	logger := newTestLogger(hook)
	logger.WithField("module", "sum").Info("first")
	require.NoError(t, hook.Close())
	assert.Len(t, hook.writers, 0)

	logger.WithField("module", "sum").Info("second")
	require.NoError(t, hook.Close())

	data := readModule(t, dir, "sum")
	assert.True(t, strings.Contains(data, "msg=first"))
	assert.True(t, strings.Contains(data, "msg=second"))
}

func TestHookDefaultModule(t *testing.T) {
	dir := t.TempDir()
	hook := NewSumHook(dir)
	defer hook.Close()

	logger := newTestLogger(hook)
	logger.Warn("no module")

	assert.True(t, strings.Contains(readModule(t, dir, defaultModule), "msg=\"no module\""))
}

func TestModuleOf(t *testing.T) {
	cases := []struct {
		module interface{}
		want   string
	}{
		{module: "sum", want: "sum"},
		{module: 7, want: "7"},
		{module: nil, want: defaultModule},
		{module: "", want: defaultModule},
		{module: "..", want: defaultModule},
		{module: "a/b", want: "a_b"},
	}

	for _, c := range cases {
		entry := logrus.NewEntry(logrus.New()).WithField("module", c.module)
		assert.Equal(t, c.want, moduleOf(entry), "%v", c.module)
	}
	assert.Equal(t, defaultModule, moduleOf(logrus.NewEntry(logrus.New())))
}

func TestHookNonStringModule(t *testing.T) {
	dir := t.TempDir()
	hook := NewSumHook(dir)
	defer hook.Close()

	logger := newTestLogger(hook)
	assert.NotPanics(t, func() {
		logger.WithField("module", 42).Info("numbered")
	})
	assert.True(t, strings.Contains(readModule(t, dir, "42"), "msg=numbered"))
}

func TestInitLogFileReplacesHook(t *testing.T) {
	std := logrus.StandardLogger()
	savedHooks, savedOut := std.Hooks, std.Out
	std.ReplaceHooks(make(logrus.LevelHooks))
	defer func() {
		std.ReplaceHooks(savedHooks)
		std.SetOutput(savedOut)
	}()

	cfg := config.DefaultConfig()
	cfg.SetRoot(t.TempDir())

	first, err := InitLogFile(cfg)
	require.NoError(t, err)
	second, err := InitLogFile(cfg)
	require.NoError(t, err)
	defer second.Close()

	count := 0
	for _, h := range std.Hooks[logrus.InfoLevel] {
		if _, ok := h.(*SumHook); ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, first.writers, 0)

	logrus.WithField("module", "sum").Info("routed")
	assert.True(t, strings.Contains(readModule(t, cfg.LogDir(), "sum"), "msg=routed"))
}

func TestClearLockFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sum_lock"), nil, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sum.20260101"), nil, 0600))

	require.NoError(t, clearLockFiles(dir))

	_, err := os.Stat(filepath.Join(dir, "sum_lock"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "sum.20260101"))
	assert.NoError(t, err)

	assert.NoError(t, clearLockFiles(filepath.Join(dir, "missing")))
}
