package orchestrator

import (
	"go.uber.org/fx"

	"github.com/orbchain/v1/internal/core/execution/epoch"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// Module 执行编排fx模块
var Module = fx.Module("execution.orchestrator",
	fx.Provide(provideService),
)

// ServiceParams 编排服务依赖
type ServiceParams struct {
	fx.In

	Cfg       *types.ProtocolConfig
	Logger    logiface.Logger
	Metrics   metricsiface.ExecutionMetrics
	VM        executioniface.VM
	EpochCtrl *epoch.Controller
}

// provideService 提供执行编排服务
func provideService(p ServiceParams) *Service {
	return NewService(p.Cfg, p.Logger, p.Metrics, p.VM, p.EpochCtrl)
}
