package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thrasher-corp/coinbasev1/common/convert"
)

var (
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errConfigNil             = errors.New("logger config is nil")
)

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	mw, err := MultiWriter()
	if err != nil {
		return nil, err
	}
	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		var writer io.Writer
		switch strings.ToLower(outputWriters[x]) {
		case "stdout", "console":
			writer = os.Stdout
		case "stderr":
			writer = os.Stderr
		case "file":
			if !fileLoggingConfiguredCorrectly {
				continue
			}
			writer = globalLogFile
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
		err = mw.Add(writer)
		if err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	return Config{
		Enabled: convert.BoolPtr(true),
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		LoggerFileConfig: &LoggerFileConfig{
			FileName: "log.txt",
			Rotate:   convert.BoolPtr(false),
			MaxSize:  DefaultMaxFileSize,
		},
		AdvancedSettings: AdvancedSettings{
			ShowLogSystemName: convert.BoolPtr(true),
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: Headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

// SetGlobalLogConfig sets the global config used by SetupGlobalLogger
func SetGlobalLogConfig(c *Config) error {
	if c == nil {
		return errConfigNil
	}
	mu.Lock()
	globalLogConfig = c
	mu.Unlock()
	return nil
}

// SetFileLoggingState toggles file output once the log path has been verified
func SetFileLoggingState(correctlyConfigured bool) {
	mu.Lock()
	fileLoggingConfiguredCorrectly = correctlyConfigured
	mu.Unlock()
}

// SetLogPath sets the directory log files are written to
func SetLogPath(path string) {
	mu.Lock()
	logPath = path
	mu.Unlock()
}

// GetLogPath returns the directory log files are written to
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func configureSubLogger(subLogger, levels string, output io.Writer) error {
	logPtr, found := subLoggers[subLogger]
	if !found {
		return fmt.Errorf("%w: %v", errSubLoggerNotFound, subLogger)
	}
	logPtr.output = output
	logPtr.Levels = splitLevel(levels)
	return nil
}

// SetupSubLoggers configure all sub loggers with provided configuration values
func SetupSubLoggers(s []SubLoggerConfig) error {
	mu.Lock()
	defer mu.Unlock()
	for x := range s {
		output, err := getWriters(&s[x])
		if err != nil {
			return err
		}
		err = configureSubLogger(strings.ToUpper(s[x].Name), s[x].Level, output)
		if err != nil {
			return err
		}
	}
	return nil
}

// SetupGlobalLogger setup the global loggers with the default global config values
func SetupGlobalLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if fileLoggingConfiguredCorrectly && globalLogConfig.LoggerFileConfig != nil {
		if err := globalLogFile.Close(); err != nil {
			return err
		}
		globalLogFile = &Rotate{
			FileName: globalLogConfig.LoggerFileConfig.FileName,
			MaxSize:  globalLogConfig.LoggerFileConfig.MaxSize,
			Rotate:   globalLogConfig.LoggerFileConfig.Rotate,
		}
	}

	enabled := globalLogConfig.Enabled == nil || *globalLogConfig.Enabled
	for x := range subLoggers {
		if !enabled {
			subLoggers[x].Levels = Levels{}
			continue
		}
		output, err := getWriters(&globalLogConfig.SubLoggerConfig)
		if err != nil {
			return err
		}
		subLoggers[x].Levels = splitLevel(globalLogConfig.Level)
		subLoggers[x].output = output
	}

	logger = newLogger(globalLogConfig)
	return nil
}

// CloseLogger closes the log file if one is open
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	return globalLogFile.Close()
}

func newLogger(c *Config) Logger {
	return Logger{
		ShowLogSystemName: c.AdvancedSettings.ShowLogSystemName != nil && *c.AdvancedSettings.ShowLogSystemName,
		TimestampFormat:   c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
	}
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(enabledLevels[x]) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}
