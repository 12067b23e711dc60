package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
)

// Module 指标基础设施fx模块
var Module = fx.Module("infrastructure.metrics",
	fx.Provide(provideRegistry),
	fx.Provide(provideExecutionMetrics),
)

// provideRegistry 提供prometheus registry
func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// provideExecutionMetrics 提供执行指标
func provideExecutionMetrics(registry *prometheus.Registry) metricsiface.ExecutionMetrics {
	return NewExecutionMetrics(registry)
}
