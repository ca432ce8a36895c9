package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	errEmptyLoggerName     = errors.New("cannot have empty logger name")
	errSubLoggerRegistered = errors.New("sub logger already registered")
	errSubLoggerNotFound   = errors.New("sub logger not found")
)

// NewSubLogger allows for a new sub logger to be registered.
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, errEmptyLoggerName
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, fmt.Errorf("%w: %s", errSubLoggerRegistered, name)
	}
	return registerNewSubLogger(name), nil
}

// SetOutput overrides the default output with a new writer
func (sl *SubLogger) SetOutput(o io.Writer) {
	mu.Lock()
	sl.output = o
	mu.Unlock()
}

// SetLevels overrides the default levels with new levels
func (sl *SubLogger) SetLevels(newLevels Levels) {
	mu.Lock()
	sl.Levels = newLevels
	mu.Unlock()
}

// GetLevels returns the current enabled levels of the sub logger
func (sl *SubLogger) GetLevels() Levels {
	mu.RLock()
	defer mu.RUnlock()
	return sl.Levels
}

// getFields must be called with the read lock held
func (sl *SubLogger) getFields() *logFields {
	if sl == nil || sl.output == nil {
		return nil
	}
	return &logFields{
		info:   sl.Info,
		warn:   sl.Warn,
		debug:  sl.Debug,
		error:  sl.Error,
		name:   sl.name,
		output: sl.output,
		logger: logger,
	}
}

func registerNewSubLogger(name string) *SubLogger {
	temp := &SubLogger{
		name:   strings.ToUpper(name),
		output: os.Stdout,
		Levels: splitLevel("INFO|WARN|DEBUG|ERROR"),
	}
	subLoggers[temp.name] = temp
	return temp
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	DatabaseMgr = registerNewSubLogger("DATABASE")
	RequestSys = registerNewSubLogger("REQUESTER")
	OAuthSys = registerNewSubLogger("OAUTH")
	PaginationSys = registerNewSubLogger("PAGINATION")
	ClientSys = registerNewSubLogger("COINBASE")
	logger = newLogger(&Config{AdvancedSettings: GenDefaultSettings().AdvancedSettings})
}
