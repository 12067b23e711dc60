// Package metrics 提供基于prometheus的执行指标实现
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
)

// executionMetrics prometheus计数器集合
type executionMetrics struct {
	excessiveEstimatedEffectsSize prometheus.Counter
	excessiveWrittenObjectsSize   prometheus.Counter
	conservationRecovery          prometheus.Counter
	safeModeEpochAdvance          prometheus.Counter
}

// NewExecutionMetrics 创建执行指标并注册到指定registry
func NewExecutionMetrics(registry prometheus.Registerer) metricsiface.ExecutionMetrics {
	m := &executionMetrics{
		excessiveEstimatedEffectsSize: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orb",
			Subsystem: "execution",
			Name:      "excessive_estimated_effects_size_total",
			Help:      "预估效果大小越过软限制的次数",
		}),
		excessiveWrittenObjectsSize: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orb",
			Subsystem: "execution",
			Name:      "excessive_written_objects_size_total",
			Help:      "写入对象大小越过软限制的次数",
		}),
		conservationRecovery: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orb",
			Subsystem: "execution",
			Name:      "conservation_recovery_total",
			Help:      "守恒检查触发有界恢复的次数",
		}),
		safeModeEpochAdvance: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orb",
			Subsystem: "execution",
			Name:      "safe_mode_epoch_advance_total",
			Help:      "纪元推进回退到安全模式的次数",
		}),
	}
	registry.MustRegister(
		m.excessiveEstimatedEffectsSize,
		m.excessiveWrittenObjectsSize,
		m.conservationRecovery,
		m.safeModeEpochAdvance,
	)
	return m
}

// NewNopExecutionMetrics 创建不注册任何registry的空指标（测试使用）
func NewNopExecutionMetrics() metricsiface.ExecutionMetrics {
	return &executionMetrics{
		excessiveEstimatedEffectsSize: prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_effects_size"}),
		excessiveWrittenObjectsSize:   prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_written_size"}),
		conservationRecovery:          prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_conservation"}),
		safeModeEpochAdvance:          prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_safe_mode"}),
	}
}

func (m *executionMetrics) IncExcessiveEstimatedEffectsSize() {
	m.excessiveEstimatedEffectsSize.Inc()
}

func (m *executionMetrics) IncExcessiveWrittenObjectsSize() {
	m.excessiveWrittenObjectsSize.Inc()
}

func (m *executionMetrics) IncConservationRecovery() {
	m.conservationRecovery.Inc()
}

func (m *executionMetrics) IncSafeModeEpochAdvance() {
	m.safeModeEpochAdvance.Inc()
}
