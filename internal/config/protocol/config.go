// Package protocol 提供协议配置管理功能
//
// 协议配置是共识对象：所有验证者在同一协议版本下必须使用
// 完全一致的限制阈值与特性开关，否则执行结果无法达成一致。
package protocol

import (
	"fmt"

	"github.com/orbchain/v1/pkg/types"
)

// New 创建默认协议配置
func New() *types.ProtocolConfig {
	return createDefaultProtocolConfig()
}

// createDefaultProtocolConfig 创建默认协议配置
func createDefaultProtocolConfig() *types.ProtocolConfig {
	return &types.ProtocolConfig{
		// 限制阈值
		MaxSerializedTxEffectsSizeBytes:         defaultMaxEffectsSizeBytes,
		MaxSerializedTxEffectsSizeBytesSystemTx: defaultMaxEffectsSizeBytesSystemTx,
		MaxSizeWrittenObjects:                   defaultMaxSizeWrittenObjects,
		MaxSizeWrittenObjectsSystemTx:           defaultMaxSizeWrittenObjectsSystemTx,

		// 守恒检查
		SimpleConservationChecks: defaultSimpleConservationChecks,
		EnableExpensiveChecks:    defaultEnableExpensiveChecks,

		// 纪元切换
		AdvanceEpochStartTimeInSafeMode: defaultAdvanceEpochStartTimeInSafeMode,
		FreshVMOnFrameworkUpgrade:       defaultFreshVMOnFrameworkUpgrade,
		StorageFundReinvestRate:         defaultStorageFundReinvestRate,
		RewardSlashingRate:              defaultRewardSlashingRate,

		// 特性开关
		EnableJWKConsensusUpdates:    defaultEnableJWKConsensusUpdates,
		EnableRandomBeacon:           defaultEnableRandomBeacon,
		EnableCoinDenyList:           defaultEnableCoinDenyList,
		EnableBridge:                 defaultEnableBridge,
		TryFinalizeBridgeCommittee:   defaultTryFinalizeBridgeCommittee,
		EnableExecutionTimeEstimates: defaultEnableExecutionTimeEstimates,
		EnableAccumulators:           defaultEnableAccumulators,

		// 燃料计量
		GasReadCostPerByte:  defaultGasReadCostPerByte,
		GasWriteCostPerByte: defaultGasWriteCostPerByte,
		StorageRebateRate:   defaultStorageRebateRate,
	}
}

// Validate 校验协议配置
func Validate(cfg *types.ProtocolConfig) error {
	if cfg.MaxSerializedTxEffectsSizeBytes == 0 {
		return fmt.Errorf("协议配置非法: 普通交易效果大小限制不能为0")
	}
	if cfg.MaxSerializedTxEffectsSizeBytesSystemTx < cfg.MaxSerializedTxEffectsSizeBytes {
		return fmt.Errorf("协议配置非法: 系统交易效果限制(%d)不能低于普通限制(%d)",
			cfg.MaxSerializedTxEffectsSizeBytesSystemTx, cfg.MaxSerializedTxEffectsSizeBytes)
	}
	if cfg.MaxSizeWrittenObjects != 0 && cfg.MaxSizeWrittenObjectsSystemTx < cfg.MaxSizeWrittenObjects {
		return fmt.Errorf("协议配置非法: 系统交易写入限制(%d)不能低于普通限制(%d)",
			cfg.MaxSizeWrittenObjectsSystemTx, cfg.MaxSizeWrittenObjects)
	}
	if cfg.StorageRebateRate > 10000 {
		return fmt.Errorf("协议配置非法: 存储返还比例(%d)超过10000基点", cfg.StorageRebateRate)
	}
	if cfg.StorageFundReinvestRate > 10000 {
		return fmt.Errorf("协议配置非法: 存储基金再投资率(%d)超过10000基点", cfg.StorageFundReinvestRate)
	}
	if cfg.RewardSlashingRate > 10000 {
		return fmt.Errorf("协议配置非法: 奖励罚没率(%d)超过10000基点", cfg.RewardSlashingRate)
	}
	return nil
}
