package protocol

// ==================== 限制阈值默认值 ====================

const (
	// defaultMaxEffectsSizeBytes 普通交易效果序列化大小上限
	// 效果需要广播给全网并永久存档，上限控制单笔交易的传播成本
	defaultMaxEffectsSizeBytes = 512 * 1024

	// defaultMaxEffectsSizeBytesSystemTx 系统交易效果大小上限
	// 系统交易（纪元切换等）合法地产生更大效果，给予更宽松的额度
	defaultMaxEffectsSizeBytesSystemTx = 16 * 1024 * 1024

	// defaultMaxSizeWrittenObjects 普通交易写入对象总大小上限
	defaultMaxSizeWrittenObjects = 4 * 1024 * 1024

	// defaultMaxSizeWrittenObjectsSystemTx 系统交易写入对象总大小上限
	defaultMaxSizeWrittenObjectsSystemTx = 64 * 1024 * 1024
)

// ==================== 守恒检查默认值 ====================

const (
	// defaultSimpleConservationChecks 默认启用廉价守恒检查
	// 廉价检查只核对存储返还簿记，逐笔交易执行，开销可忽略
	defaultSimpleConservationChecks = true

	// defaultEnableExpensiveChecks 昂贵守恒检查默认关闭
	// 逐对象解析类型布局求和资产，仅调试构建开启
	defaultEnableExpensiveChecks = false
)

// ==================== 纪元切换默认值 ====================

const (
	// defaultAdvanceEpochStartTimeInSafeMode 安全模式下是否直写纪元起始时间
	// 开启时安全模式回退直接改写系统状态对象的时间戳，
	// 关闭时改为运行专用安全模式程序
	defaultAdvanceEpochStartTimeInSafeMode = true

	// defaultFreshVMOnFrameworkUpgrade 框架升级后换用全新VM处理系统包
	// 新框架可能携带新的原生函数，旧VM实例无法解析
	defaultFreshVMOnFrameworkUpgrade = true

	// defaultStorageFundReinvestRate 存储基金再投资率（基点）
	defaultStorageFundReinvestRate = 500

	// defaultRewardSlashingRate 奖励罚没率（基点）
	defaultRewardSlashingRate = 10000
)

// ==================== 特性开关默认值 ====================

const (
	defaultEnableJWKConsensusUpdates    = true
	defaultEnableRandomBeacon           = true
	defaultEnableCoinDenyList           = true
	defaultEnableBridge                 = true
	defaultTryFinalizeBridgeCommittee   = true
	defaultEnableExecutionTimeEstimates = true
	defaultEnableAccumulators           = false
)

// ==================== 燃料计量默认值 ====================

const (
	// defaultGasReadCostPerByte 输入对象读取的每字节计算费
	defaultGasReadCostPerByte = 1

	// defaultGasWriteCostPerByte 写入对象的每字节存储费
	defaultGasWriteCostPerByte = 76

	// defaultStorageRebateRate 存储返还比例（基点）
	// 对象被删除或改写时，按该比例返还其历史存储费，
	// 其余部分进入不可退还费，防止存储租金被完全套现
	defaultStorageRebateRate = 9900
)
