// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/collectiblevm/config"
)

const (
	logMaxSize  = 8 // megabytes
	logMaxFiles = 7
	logMaxAge   = 7 // days
)

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     zap.AtomicLevel
}

// logFactory writes colored output to stderr and rotated plain text to
// [logging.Config.Directory].
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	// Logger name --> the logger.
	loggers map[string]logWrapper
}

func newLogFactory(cfg config.Config) *logFactory {
	return &logFactory{
		config: logging.Config{
			RotatingWriterConfig: logging.RotatingWriterConfig{
				MaxSize:   logMaxSize,
				MaxFiles:  logMaxFiles,
				MaxAge:    logMaxAge,
				Directory: cfg.LogDir,
				Compress:  true,
			},
			LogLevel:     cfg.GetLogLevel(),
			DisplayLevel: cfg.GetLogDisplayLevel(),
			LogFormat:    logging.JSON,
		},
		loggers: make(map[string]logWrapper),
	}
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}
	consoleEnc := logging.Colors.ConsoleEncoder()
	fileEnc := config.LogFormat.FileEncoder()

	var consoleWriter io.WriteCloser = os.Stderr
	if config.DisableWriterDisplaying {
		consoleWriter = discardWriteCloser{io.Discard}
	}
	consoleCore := logging.NewWrappedCore(config.DisplayLevel, consoleWriter, consoleEnc)
	consoleCore.WriterDisabled = config.DisableWriterDisplaying

	rw := &lumberjack.Logger{
		Filename:   filepath.Join(config.Directory, config.LoggerName+".log"),
		MaxSize:    config.MaxSize,
		MaxAge:     config.MaxAge,
		MaxBackups: config.MaxFiles,
		Compress:   config.Compress,
	}
	fileCore := logging.NewWrappedCore(config.LogLevel, rw, fileEnc)
	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)

	l := logging.NewLogger(prefix, consoleCore, fileCore)
	f.loggers[config.LoggerName] = logWrapper{
		logger:       l,
		displayLevel: consoleCore.AtomicLevel,
		logLevel:     fileCore.AtomicLevel,
	}
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, lw := range f.loggers {
		lw.logger.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}
