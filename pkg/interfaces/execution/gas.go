// Package execution 提供执行核心对外的协作方接口定义
package execution

import (
	"github.com/orbchain/v1/pkg/types"
)

// GasCharger 燃料计量器
//
// 计费算术内部实现不属于执行核心；核心只按以下操作序列驱动：
// 合并燃料币 → 输入读取计费 → 执行 → 最终计费/汇总。
// 计量器与交易上下文一样由单次调用独占。
type GasCharger interface {
	// SmashGas 合并多枚支付币为一枚燃料币
	SmashGas(store TemporaryStore)

	// NoCharges 尚未发生任何计费
	NoCharges() bool

	// ChargeInputObjects 对输入对象的读取计费
	//
	// 必须在任何程序运行之前调用：即使执行失败也要保证
	// 读取已付费并反映在效果中。
	ChargeInputObjects(store TemporaryStore) error

	// ChargeGas 最终计费并产出费用汇总
	//
	// 允许通过自身簿记把*result从成功改为失败（如预算耗尽），
	// 除此之外不得改写执行结果。
	ChargeGas(store TemporaryStore, result *error) types.GasCostSummary

	// Reset 清零全部计费（守恒恢复路径使用）
	Reset(store TemporaryStore)

	// ResetStorageCostAndRebate 仅清零存储费与返还（纪元安全模式重试前使用）
	ResetStorageCostAndRebate()

	// UnmeteredStorageRebate 系统交易累积的未计量存储返还
	UnmeteredStorageRebate() uint64

	// IsUnmetered 是否为未计量（系统）交易
	IsUnmetered() bool

	// GasCoin 燃料币引用（未计量交易为nil）
	GasCoin() *types.ObjectRef

	// GasPrice 燃料单价
	GasPrice() uint64

	// Summary 计量器状态摘要（用于日志）
	Summary() string
}
