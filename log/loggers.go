package log

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Info takes a pointer subLogger struct and string sends to the sub logger output
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(infoLevel), data)
}

// Infoln takes a pointer subLogger struct and interface sends to the sub logger output
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(infoLevel), fmt.Sprint(v...))
}

// Infof takes a pointer subLogger struct, string and interface formats sends to the sub logger output
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(infoLevel), data, v...)
}

// Debug takes a pointer subLogger struct and string sends to the sub logger output
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(debugLevel), data)
}

// Debugln takes a pointer subLogger struct, string and interface sends to the sub logger output
func Debugln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(debugLevel), fmt.Sprint(v...))
}

// Debugf takes a pointer subLogger struct, string and interface formats sends to the sub logger output
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(debugLevel), data, v...)
}

// Warn takes a pointer subLogger struct & string and sends to the sub logger output
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(warnLevel), data)
}

// Warnln takes a pointer subLogger struct & interface formats and sends to the sub logger output
func Warnln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(warnLevel), fmt.Sprint(v...))
}

// Warnf takes a pointer subLogger struct, string and interface formats sends to the sub logger output
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(warnLevel), data, v...)
}

// Error takes a pointer subLogger struct & interface formats and sends to the sub logger output
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(errorLevel), data)
}

// Errorln takes a pointer subLogger struct, string & interface formats and sends to the sub logger output
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(errorLevel), fmt.Sprint(v...))
}

// Errorf takes a pointer subLogger struct, string and interface formats and sends to the sub logger output
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(errorLevel), data, v...)
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}

type level uint8

const (
	infoLevel level = iota
	debugLevel
	warnLevel
	errorLevel
)

// header returns the configured header if the level is enabled for the sub
// logger, otherwise an empty string
func (l *logFields) header(lvl level) string {
	if l == nil {
		return ""
	}
	switch lvl {
	case infoLevel:
		if l.info {
			return l.logger.InfoHeader
		}
	case debugLevel:
		if l.debug {
			return l.logger.DebugHeader
		}
	case warnLevel:
		if l.warn {
			return l.logger.WarnHeader
		}
	case errorLevel:
		if l.error {
			return l.logger.ErrorHeader
		}
	}
	return ""
}

func (l *logFields) stagef(header, data string, v ...interface{}) {
	if l == nil || header == "" {
		return
	}
	l.stage(header, fmt.Sprintf(data, v...))
}

// stage formats and writes a single log line
func (l *logFields) stage(header, data string) {
	if l == nil || header == "" {
		return
	}
	if customLogHook != nil && customLogHook(header, l.name, data) {
		return
	}
	var b strings.Builder
	b.WriteString(header)
	if l.logger.TimestampFormat != "" {
		b.WriteString(time.Now().Format(l.logger.TimestampFormat))
	}
	if l.logger.ShowLogSystemName {
		b.WriteString("[")
		b.WriteString(l.name)
		b.WriteString("]")
	}
	b.WriteString(l.logger.Spacer)
	b.WriteString(data)
	if !strings.HasSuffix(data, "\n") {
		b.WriteByte('\n')
	}
	_, err := l.output.Write([]byte(b.String()))
	displayError(err)
}
