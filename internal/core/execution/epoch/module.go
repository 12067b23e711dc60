package epoch

import (
	"go.uber.org/fx"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// Module 纪元切换fx模块
var Module = fx.Module("execution.epoch",
	fx.Provide(provideController),
)

// ControllerParams 控制器依赖
type ControllerParams struct {
	fx.In

	Cfg       *types.ProtocolConfig
	Logger    logiface.Logger
	Metrics   metricsiface.ExecutionMetrics
	VMFactory executioniface.VMFactory
}

// provideController 提供纪元切换控制器
func provideController(p ControllerParams) *Controller {
	return NewController(p.Cfg, p.Logger, p.Metrics, p.VMFactory)
}
