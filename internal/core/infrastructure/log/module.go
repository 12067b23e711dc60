package log

import (
	"go.uber.org/fx"

	logconfig "github.com/orbchain/v1/internal/config/log"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
)

// Module 日志基础设施fx模块
var Module = fx.Module("infrastructure.log",
	fx.Provide(provideLogger),
	fx.Invoke(registerGlobalLogger),
)

// provideLogger 提供日志记录器
func provideLogger() (logiface.Logger, error) {
	cfg := logconfig.New(nil)
	return NewLogger(cfg)
}

// registerGlobalLogger 注册全局日志记录器
func registerGlobalLogger(logger logiface.Logger) {
	SetGlobalLogger(logger)
}
