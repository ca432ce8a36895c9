package log

import "io"

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global        *SubLogger
	ConfigMgr     *SubLogger
	DatabaseMgr   *SubLogger
	RequestSys    *SubLogger
	OAuthSys      *SubLogger
	PaginationSys *SubLogger
	ClientSys     *SubLogger
)

// SubLogger defines a sub logger can be used externally for packages wanted to
// leverage the client logger features.
type SubLogger struct {
	name string
	Levels
	output io.Writer
}

// logFields is a snapshot of a sub logger taken under the read lock so a
// line cannot be altered by a concurrent reconfiguration
type logFields struct {
	info   bool
	warn   bool
	debug  bool
	error  bool
	name   string
	output io.Writer
	logger Logger
}
