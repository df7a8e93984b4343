package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"github.com/bytom/sm3/config"
	"github.com/bytom/sm3/errors"
)

const (
	rotationTime = 24 * time.Hour
	maxAge       = 7 * 24 * time.Hour

	// defaultModule names the file for entries without a "module" field.
	defaultModule = "general"
)

var fileFormatter = &logrus.TextFormatter{DisableColors: true}

// InitLogFile sends every entry of the standard logger to per-module files
// under the configured log directory and silences the console. A hook left
// by an earlier call is detached and closed first. The caller closes the
// returned hook before exiting.
func InitLogFile(config *config.Config) (*SumHook, error) {
	logPath := config.LogDir()
	if err := os.MkdirAll(logPath, 0700); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}
	if err := clearLockFiles(logPath); err != nil {
		return nil, err
	}

	std := logrus.StandardLogger()
	hooks := make(logrus.LevelHooks)
	for level, fired := range std.Hooks {
		for _, h := range fired {
			if old, ok := h.(*SumHook); ok {
				old.Close()
				continue
			}
			hooks[level] = append(hooks[level], h)
		}
	}

	hook := NewSumHook(logPath)
	hooks.Add(hook)
	std.ReplaceHooks(hooks)
	std.SetOutput(io.Discard)
	return hook, nil
}

// SumHook writes each entry to <logPath>/<module>.YYYYMMDD, where module is
// the entry's "module" field. Files rotate daily and are kept for a week.
// One writer per module stays open until Close.
type SumHook struct {
	logPath string

	mu      sync.Mutex
	writers map[string]*rotatelogs.RotateLogs
}

// NewSumHook returns a hook writing below logPath, which must exist.
func NewSumHook(logPath string) *SumHook {
	return &SumHook{
		logPath: logPath,
		writers: make(map[string]*rotatelogs.RotateLogs),
	}
}

// Levels returns all levels; filtering is left to the logger.
func (hook *SumHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *SumHook) Fire(entry *logrus.Entry) error {
	msg, err := fileFormatter.Format(entry)
	if err != nil {
		return err
	}

	hook.mu.Lock()
	defer hook.mu.Unlock()

	writer, err := hook.writer(moduleOf(entry))
	if err != nil {
		return err
	}
	_, err = writer.Write(msg)
	return err
}

// writer returns the open writer for module, creating it on first use.
// Callers hold mu.
func (hook *SumHook) writer(module string) (*rotatelogs.RotateLogs, error) {
	if w, ok := hook.writers[module]; ok {
		return w, nil
	}

	w, err := rotatelogs.New(
		filepath.Join(hook.logPath, module)+".%Y%m%d",
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "open log for module %s", module)
	}
	hook.writers[module] = w
	return w, nil
}

// Close closes every module writer. Entries fired afterwards reopen them.
func (hook *SumHook) Close() error {
	hook.mu.Lock()
	defer hook.mu.Unlock()

	var firstErr error
	for module, w := range hook.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close log for module %s", module)
		}
		delete(hook.writers, module)
	}
	return firstErr
}

// moduleOf picks the file name for entry. Non-string module values are
// formatted; path separators are replaced so the file stays in logPath.
func moduleOf(entry *logrus.Entry) string {
	v, ok := entry.Data["module"]
	if !ok || v == nil {
		return defaultModule
	}

	module, ok := v.(string)
	if !ok {
		module = fmt.Sprint(v)
	}
	module = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, module)
	if module == "" || module == "." || module == ".." {
		return defaultModule
	}
	return module
}

// clearLockFiles removes stale rotatelogs "_lock" files left by a crash.
func clearLockFiles(logPath string) error {
	files, err := os.ReadDir(logPath)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	for _, file := range files {
		if strings.HasSuffix(file.Name(), "_lock") {
			if err := os.Remove(filepath.Join(logPath, file.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
