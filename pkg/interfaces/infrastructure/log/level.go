// Package log 提供Orb系统的日志级别定义
package log

// LogLevel 日志级别
type LogLevel string

const (
	// DebugLevel 调试级别
	DebugLevel LogLevel = "debug"
	// InfoLevel 信息级别
	InfoLevel LogLevel = "info"
	// WarnLevel 警告级别
	WarnLevel LogLevel = "warn"
	// ErrorLevel 错误级别
	ErrorLevel LogLevel = "error"
	// FatalLevel 致命级别
	FatalLevel LogLevel = "fatal"
)

// String 返回级别名
func (l LogLevel) String() string {
	return string(l)
}

// Valid 判断级别是否合法
func (l LogLevel) Valid() bool {
	switch l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return true
	default:
		return false
	}
}
