package sysprogram

// ==================== 框架调用目标 ====================
// 系统程序调用的框架模块与函数名。名字属于链上框架的公开ABI，
// 改名等同协议变更。

const (
	// 系统包（0x3）中的纪元模块
	moduleSystem                    = "orb_system"
	funcAdvanceEpoch                = "advance_epoch"
	funcAdvanceEpochSafeMode        = "advance_epoch_safe_mode"
	funcStoreExecutionTimeEstimates = "store_execution_time_estimates"

	// 框架包（0x2）中的时钟模块
	moduleClock                 = "clock"
	funcConsensusCommitPrologue = "consensus_commit_prologue"

	// 框架包中的余额模块
	moduleBalance             = "balance"
	funcCreateStakingRewards  = "create_staking_rewards"
	funcDestroyStorageRebates = "destroy_storage_rebates"

	// 框架包中的认证器状态模块
	moduleAuthenticatorState     = "authenticator_state"
	funcAuthenticatorStateCreate = "create"
	funcAuthenticatorStateUpdate = "update_authenticator_state"
	funcAuthenticatorStateExpire = "expire_jwks"

	// 框架包中的随机数状态模块
	moduleRandomnessState     = "random"
	funcRandomnessStateCreate = "create"
	funcRandomnessStateUpdate = "update_randomness_state"

	// 框架包中的拒绝名单模块
	moduleDenyList     = "deny_list"
	funcDenyListCreate = "create"

	// 框架包中的跨链桥模块
	moduleBridge            = "bridge"
	funcBridgeCreate        = "create"
	funcBridgeCommitteeInit = "init_bridge_committee"

	// 框架包中的累加器模块
	moduleAccumulator         = "accumulator"
	funcAccumulatorRootCreate = "create"
)

// 原生资产的类型参数（质押奖励铸造使用）
const nativeAssetTypeTag = "0x2::orb::ORB"
