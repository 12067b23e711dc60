// Package log 提供基于zap的日志记录器实现
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	logconfig "github.com/orbchain/v1/internal/config/log"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
)

// zapLogger 基于zap.SugaredLogger的Logger实现
type zapLogger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

var (
	globalMu     sync.RWMutex
	globalLogger logiface.Logger = newNopLogger()
)

// NewLogger 根据配置构造日志记录器
func NewLogger(cfg *logconfig.Config) (logiface.Logger, error) {
	opts := cfg.Options

	level := zapcore.InfoLevel
	if err := level.Set(opts.Level); err != nil {
		return nil, err
	}

	var encoderCfg zapcore.EncoderConfig
	if opts.Development {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	if opts.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, newWriteSyncer(opts), level)

	zapOpts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if opts.Development {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.Development())
	}

	base := zap.New(core, zapOpts...)
	return &zapLogger{sugar: base.Sugar(), base: base}, nil
}

// newWriteSyncer 根据输出路径构造写入器（文件路径走lumberjack轮转）
func newWriteSyncer(opts *logconfig.LogOptions) zapcore.WriteSyncer {
	switch opts.OutputPath {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	default:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.OutputPath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
	}
}

// SetGlobalLogger 设置全局日志记录器
func SetGlobalLogger(logger logiface.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger 获取全局日志记录器
func GetGlobalLogger() logiface.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// newNopLogger 构造空操作日志记录器（全局记录器初始化前的占位）
func newNopLogger() logiface.Logger {
	base := zap.NewNop()
	return &zapLogger{sugar: base.Sugar(), base: base}
}

func (l *zapLogger) Debug(msg string) { l.sugar.Debug(msg) }

func (l *zapLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

func (l *zapLogger) Info(msg string) { l.sugar.Info(msg) }

func (l *zapLogger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

func (l *zapLogger) Warn(msg string) { l.sugar.Warn(msg) }

func (l *zapLogger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

func (l *zapLogger) Error(msg string) { l.sugar.Error(msg) }

func (l *zapLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

func (l *zapLogger) Fatal(msg string) { l.sugar.Fatal(msg) }

func (l *zapLogger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

func (l *zapLogger) With(args ...interface{}) logiface.Logger {
	return &zapLogger{sugar: l.sugar.With(args...), base: l.base}
}

func (l *zapLogger) Sync() error { return l.sugar.Sync() }

func (l *zapLogger) GetZapLogger() *zap.Logger { return l.base }
