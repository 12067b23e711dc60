// Package types 提供执行核心的公共类型定义
package types

// ProtocolConfig 协议配置
//
// 共识对配置版本达成一致，执行核心只读使用。
// 默认值与校验逻辑见 internal/config/protocol。
type ProtocolConfig struct {
	// ==================== 限制阈值 ====================

	// MaxSerializedTxEffectsSizeBytes 普通交易效果大小硬限制
	MaxSerializedTxEffectsSizeBytes uint64

	// MaxSerializedTxEffectsSizeBytesSystemTx 系统交易效果大小硬限制
	// （普通限制在系统交易下降级为软限制，仅告警）
	MaxSerializedTxEffectsSizeBytesSystemTx uint64

	// MaxSizeWrittenObjects 普通交易写入对象总大小硬限制（0表示不启用）
	MaxSizeWrittenObjects uint64

	// MaxSizeWrittenObjectsSystemTx 系统交易写入对象总大小硬限制（0表示不启用）
	MaxSizeWrittenObjectsSystemTx uint64

	// ==================== 守恒检查 ====================

	// SimpleConservationChecks 是否启用廉价守恒检查
	SimpleConservationChecks bool

	// EnableExpensiveChecks 是否启用昂贵检查（逐对象解析类型布局求和）
	EnableExpensiveChecks bool

	// ==================== 纪元切换 ====================

	// AdvanceEpochStartTimeInSafeMode 安全模式下允许直接改写纪元起始时间戳
	// （为真时安全模式不再运行程序，由存储层直接落账）
	AdvanceEpochStartTimeInSafeMode bool

	// FreshVMOnFrameworkUpgrade 框架升级后是否换用全新VM实例处理系统包
	FreshVMOnFrameworkUpgrade bool

	// StorageFundReinvestRate 存储基金再投资率（基点）
	StorageFundReinvestRate uint64

	// RewardSlashingRate 奖励罚没率（基点）
	RewardSlashingRate uint64

	// ==================== 特性开关 ====================

	// EnableJWKConsensusUpdates 启用JWK共识更新（认证器状态）
	EnableJWKConsensusUpdates bool

	// EnableRandomBeacon 启用随机信标
	EnableRandomBeacon bool

	// EnableCoinDenyList 启用币种拒绝名单
	EnableCoinDenyList bool

	// EnableBridge 启用跨链桥
	EnableBridge bool

	// TryFinalizeBridgeCommittee 纪元尾尝试敲定桥委员会
	TryFinalizeBridgeCommittee bool

	// EnableExecutionTimeEstimates 启用执行耗时估计存储
	EnableExecutionTimeEstimates bool

	// EnableAccumulators 启用累加器
	EnableAccumulators bool

	// ==================== 燃料计量 ====================

	// GasReadCostPerByte 输入对象读取的每字节费用
	GasReadCostPerByte uint64

	// GasWriteCostPerByte 写入对象的每字节存储费用
	GasWriteCostPerByte uint64

	// StorageRebateRate 存储费可返还比例（基点，10000为全额）
	StorageRebateRate uint64
}
