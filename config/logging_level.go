package config

import (
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.viam.com/sdfmjcf/logging"
)

var globalLogger struct {
	// These variables are initialized once at startup. No need for special synchronization.
	logger           logging.Logger
	cmdLineDebugFlag bool

	// fileConfigDebugFlag changes whenever a config file is loaded.
	mu                  sync.Mutex
	fileConfigDebugFlag bool
}

// InitLoggingSettings initializes the global logging settings.
func InitLoggingSettings(logger logging.Logger, cmdLineDebugFlag bool) {
	globalLogger.logger = logger
	globalLogger.cmdLineDebugFlag = cmdLineDebugFlag
	if cmdLineDebugFlag {
		logging.GlobalLogLevel.SetLevel(zapcore.DebugLevel)
	} else {
		logging.GlobalLogLevel.SetLevel(zapcore.InfoLevel)
	}
	globalLogger.logger.Debug("Log level initialized: ", logging.GlobalLogLevel.Level())
}

// UpdateFileConfigDebug is used to update the debug flag whenever a config file asking for debug logs is
// loaded.
func UpdateFileConfigDebug(fileDebug bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	globalLogger.fileConfigDebugFlag = fileDebug
	refreshLogLevelInLock()
}

func refreshLogLevelInLock() {
	var newLevel zapcore.Level
	if globalLogger.cmdLineDebugFlag || globalLogger.fileConfigDebugFlag {
		newLevel = zap.DebugLevel
	} else {
		newLevel = zap.InfoLevel
	}

	if logging.GlobalLogLevel.Level() == newLevel {
		return
	}
	if globalLogger.logger != nil {
		globalLogger.logger.Debug("New log level: ", newLevel)
	}
	logging.GlobalLogLevel.SetLevel(newLevel)
}

// ApplyLogging sets the level of logger from the options and adds a rotating file appender when LogFile is set.
// The returned closer closes the log file and must be called once logging is done.
func (o Options) ApplyLogging(logger logging.Logger) io.Closer {
	logger.SetLevel(o.Level())
	UpdateFileConfigDebug(o.Level() == logging.DEBUG)
	if o.LogFile == "" {
		return io.NopCloser(nil)
	}
	appender, closer := logging.NewFileAppender(o.LogFile)
	logger.AddAppender(appender)
	return closer
}
