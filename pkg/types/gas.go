// Package types 提供执行核心的公共类型定义
package types

// GasCostSummary 燃料费用汇总
//
// 各字段均为非负整数，必须与守恒检查的算术自洽：
// 原生资产总量的变动只允许来自这里申报的费用字段。
type GasCostSummary struct {
	// ComputationCost 计算费用（从燃料币烧毁，纪元末作为奖励重铸）
	ComputationCost uint64

	// StorageCost 存储占用费（进入存储基金）
	StorageCost uint64

	// StorageRebate 删除/改写对象时返还的存储费
	StorageRebate uint64

	// NonRefundableStorageFee 存储费中不予返还、留存基金的部分
	NonRefundableStorageFee uint64
}

// NetGasUsage 实际从燃料币扣除的净额
func (g GasCostSummary) NetGasUsage() int64 {
	return int64(g.ComputationCost) + int64(g.StorageCost) - int64(g.StorageRebate)
}

// GasData 交易的燃料数据
type GasData struct {
	// Payment 支付燃料的币对象引用（多枚时执行前合并）
	Payment []ObjectRef

	// Owner 燃料所有者（与签名者不同则为代付）
	Owner Address

	// Price 单价
	Price uint64

	// Budget 预算上限
	Budget uint64
}

// AdvanceEpochGasSummary 纪元推进交易的额外守恒输入
//
// 纪元推进会铸造存储/计算奖励，昂贵守恒检查需要据此修正等式。
type AdvanceEpochGasSummary struct {
	StorageCharge     uint64
	ComputationCharge uint64
}
