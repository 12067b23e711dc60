// Package metrics 提供执行核心的可观测指标接口定义
//
// 指标实现基于prometheus（见 internal/core/infrastructure/metrics）；
// 接口层只暴露执行核心关心的计数动作，避免业务包直接耦合具体实现。
package metrics

// ExecutionMetrics 执行核心指标接口
type ExecutionMetrics interface {
	// IncExcessiveEstimatedEffectsSize 预估效果大小越过软限制
	IncExcessiveEstimatedEffectsSize()

	// IncExcessiveWrittenObjectsSize 写入对象大小越过软限制
	IncExcessiveWrittenObjectsSize()

	// IncConservationRecovery 守恒检查触发了一次有界恢复
	IncConservationRecovery()

	// IncSafeModeEpochAdvance 纪元推进回退到了安全模式
	IncSafeModeEpochAdvance()
}
