package main

import (
	"fmt"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// configureLogging sets the console format of the standard logger. With
// debug on, the level is pinned to debug and each entry carries the call
// site that produced it.
func configureLogging(logger *log.Logger, debug bool) {
	formatter := &log.TextFormatter{FullTimestamp: true}
	if debug {
		formatter.CallerPrettyfier = callSite
		logger.SetReportCaller(true)
		logger.SetLevel(log.DebugLevel)
	}
	logger.SetFormatter(formatter)
}

// callSite renders a frame as ("commands.runSum", "sum.go:57").
func callSite(frame *runtime.Frame) (function, file string) {
	return path.Base(frame.Function), fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
}
