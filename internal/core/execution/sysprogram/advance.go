package sysprogram

import (
	"github.com/orbchain/v1/pkg/types"
)

// mintEpochRewards 铸造本纪元的存储与计算奖励余额
//
// 两笔铸造对应纪元内烧毁的存储费与计算费，铸造额由纪元切换
// 交易申报；昂贵守恒检查据同一份申报修正等式。
func mintEpochRewards(b *ProgramBuilder, params types.AdvanceEpochParams) (storage, computation types.Argument) {
	typeArgs := []string{nativeAssetTypeTag}
	storage = b.MoveCall(types.FrameworkPackageID, moduleBalance, funcCreateStakingRewards,
		typeArgs, []types.Argument{b.Pure(params.StorageCharge)})
	computation = b.MoveCall(types.FrameworkPackageID, moduleBalance, funcCreateStakingRewards,
		typeArgs, []types.Argument{b.Pure(params.ComputationCharge)})
	return storage, computation
}

// AdvanceEpochProgram 在给定构造器上续拼纪元推进程序
//
// 构造器可携带纪元尾维护动作已累积的命令，推进调用拼在其后，
// 整个组合程序一次递交：任一维护动作的失败都落在安全模式兜底
// 之下，不会卡死纪元边界。铸造奖励余额后调用系统模块推进纪元，
// 返回的存储返还余额最后销毁归池。参数快照与安全模式程序共用，
// 两条路径输入一致。
func AdvanceEpochProgram(b *ProgramBuilder, params types.AdvanceEpochParams) types.Program {
	storage, computation := mintEpochRewards(b, params)
	system := b.Obj(types.SharedObjectArg(types.SystemStateObjectID, builtinSharedVersion, true))
	args := []types.Argument{
		system,
		b.Pure(uint64(params.Epoch)),
		b.Pure(uint64(params.NextProtocolVersion)),
		storage,
		computation,
		b.Pure(params.StorageRebate),
		b.Pure(params.NonRefundableStorageFee),
		b.Pure(params.StorageFundReinvestRate),
		b.Pure(params.RewardSlashingRate),
		b.Pure(params.EpochStartTimestampMS),
	}
	rebates := b.MoveCall(types.SystemPackageID, moduleSystem, funcAdvanceEpoch, nil, args)
	b.MoveCall(types.FrameworkPackageID, moduleBalance, funcDestroyStorageRebates,
		[]string{nativeAssetTypeTag}, []types.Argument{rebates})
	return b.Finish()
}

// AdvanceEpochSafeModeProgram 构造安全模式纪元推进程序
//
// 常规推进失败后的兜底：只做最小限度的纪元簿记，不结算质押奖励。
// 该程序再失败即为致命错误。
func AdvanceEpochSafeModeProgram(params types.AdvanceEpochParams) types.Program {
	b := NewProgramBuilder()
	storage, computation := mintEpochRewards(b, params)
	system := b.Obj(types.SharedObjectArg(types.SystemStateObjectID, builtinSharedVersion, true))
	args := []types.Argument{
		system,
		b.Pure(uint64(params.Epoch)),
		b.Pure(uint64(params.NextProtocolVersion)),
		storage,
		computation,
		b.Pure(params.StorageRebate),
		b.Pure(params.NonRefundableStorageFee),
	}
	b.MoveCall(types.SystemPackageID, moduleSystem, funcAdvanceEpochSafeMode, nil, args)
	return b.Finish()
}

// SystemPackagePublishProgram 构造系统包首次发布程序
//
// 仅当排队的包版本恰为初始版本时走发布路径，其余版本走原地升级。
func SystemPackagePublishProgram(pkg types.SystemPackage) types.Program {
	b := NewProgramBuilder()
	b.Publish(pkg.Modules, pkg.Dependencies)
	return b.Finish()
}
