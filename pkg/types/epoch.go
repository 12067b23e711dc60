// Package types 提供执行核心的公共类型定义
package types

// AdvanceEpochParams 纪元推进参数快照
//
// 每次纪元切换尝试构造一次，常规程序与安全模式程序复用同一份，
// 保证两条路径看到完全一致的输入。构造后不可变。
type AdvanceEpochParams struct {
	Epoch                   EpochID
	NextProtocolVersion     ProtocolVersion
	StorageCharge           uint64
	ComputationCharge       uint64
	StorageRebate           uint64
	NonRefundableStorageFee uint64

	// StorageFundReinvestRate 存储基金再投资率（基点）
	StorageFundReinvestRate uint64

	// RewardSlashingRate 奖励罚没率（基点）
	RewardSlashingRate uint64

	EpochStartTimestampMS uint64
}

// NewAdvanceEpochParams 由纪元切换数据与协议配置构造参数快照
func NewAdvanceEpochParams(ce ChangeEpoch, reinvestRate, slashingRate uint64) AdvanceEpochParams {
	return AdvanceEpochParams{
		Epoch:                   ce.Epoch,
		NextProtocolVersion:     ce.ProtocolVersion,
		StorageCharge:           ce.StorageCharge,
		ComputationCharge:       ce.ComputationCharge,
		StorageRebate:           ce.StorageRebate,
		NonRefundableStorageFee: ce.NonRefundableStorageFee,
		StorageFundReinvestRate: reinvestRate,
		RewardSlashingRate:      slashingRate,
		EpochStartTimestampMS:   ce.EpochStartTimestampMS,
	}
}
