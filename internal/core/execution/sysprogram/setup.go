package sysprogram

import (
	"github.com/orbchain/v1/pkg/types"
)

// 内置共享对象创世即存在，初始共享版本固定为对象初始版本。
const builtinSharedVersion = types.ObjectStartVersion

// ConsensusCommitPrologueProgram 构造共识提交序言程序
//
// 把共识提交时间戳写入共享时钟。该调用受协议契约保护必须成功。
func ConsensusCommitPrologueProgram(p types.ConsensusCommitPrologue) types.Program {
	b := NewProgramBuilder()
	clock := b.Obj(types.SharedObjectArg(types.ClockObjectID, builtinSharedVersion, true))
	args := []types.Argument{clock, b.Pure(p.CommitTimestampMS)}
	b.MoveCall(types.FrameworkPackageID, moduleClock, funcConsensusCommitPrologue, nil, args)
	return b.Finish()
}

// AuthenticatorStateUpdateProgram 构造认证器状态更新程序
func AuthenticatorStateUpdateProgram(u types.AuthenticatorStateUpdate) types.Program {
	b := NewProgramBuilder()
	state := b.Obj(types.SharedObjectArg(types.AuthenticatorStateObjectID, u.AuthenticatorObjInitialSharedVersion, true))
	args := []types.Argument{state, b.Pure(u.NewActiveJWKs)}
	b.MoveCall(types.FrameworkPackageID, moduleAuthenticatorState, funcAuthenticatorStateUpdate, nil, args)
	return b.Finish()
}

// RandomnessStateUpdateProgram 构造随机数状态更新程序
func RandomnessStateUpdateProgram(u types.RandomnessStateUpdate) types.Program {
	b := NewProgramBuilder()
	state := b.Obj(types.SharedObjectArg(types.RandomnessStateObjectID, u.RandomnessObjInitialSharedVersion, true))
	args := []types.Argument{
		state,
		b.Pure(u.RandomnessRound),
		b.Pure(u.RandomBytes),
	}
	b.MoveCall(types.FrameworkPackageID, moduleRandomnessState, funcRandomnessStateUpdate, nil, args)
	return b.Finish()
}

// ==================== 纪元尾维护动作 ====================
// 纪元尾的维护动作不单独成程序：各自把命令续拼进同一个构造器，
// 与末项的纪元推进组成一个程序一并递交。

// AppendAuthenticatorStateCreate 续拼认证器状态创建命令
func AppendAuthenticatorStateCreate(b *ProgramBuilder) {
	b.MoveCall(types.FrameworkPackageID, moduleAuthenticatorState, funcAuthenticatorStateCreate, nil, nil)
}

// AppendAuthenticatorStateExpire 续拼旧JWK过期命令
func AppendAuthenticatorStateExpire(b *ProgramBuilder, e types.AuthenticatorStateExpire) {
	state := b.Obj(types.SharedObjectArg(types.AuthenticatorStateObjectID, e.AuthenticatorObjInitialSharedVersion, true))
	args := []types.Argument{state, b.Pure(uint64(e.MinEpoch))}
	b.MoveCall(types.FrameworkPackageID, moduleAuthenticatorState, funcAuthenticatorStateExpire, nil, args)
}

// AppendRandomnessStateCreate 续拼随机数状态创建命令
func AppendRandomnessStateCreate(b *ProgramBuilder) {
	b.MoveCall(types.FrameworkPackageID, moduleRandomnessState, funcRandomnessStateCreate, nil, nil)
}

// AppendDenyListStateCreate 续拼拒绝名单创建命令
func AppendDenyListStateCreate(b *ProgramBuilder) {
	b.MoveCall(types.FrameworkPackageID, moduleDenyList, funcDenyListCreate, nil, nil)
}

// AppendBridgeCreate 续拼跨链桥创建命令
func AppendBridgeCreate(b *ProgramBuilder, chainID string) {
	args := []types.Argument{b.Pure(chainID)}
	b.MoveCall(types.FrameworkPackageID, moduleBridge, funcBridgeCreate, nil, args)
}

// AppendBridgeCommitteeInit 续拼桥委员会初始化命令
func AppendBridgeCommitteeInit(b *ProgramBuilder, bridgeSharedVersion types.SequenceNumber) {
	bridge := b.Obj(types.SharedObjectArg(types.BridgeObjectID, bridgeSharedVersion, true))
	system := b.Obj(types.SharedObjectArg(types.SystemStateObjectID, builtinSharedVersion, true))
	b.MoveCall(types.FrameworkPackageID, moduleBridge, funcBridgeCommitteeInit, nil, []types.Argument{bridge, system})
}

// AppendStoreExecutionTimeEstimates 续拼执行耗时估计存储命令
func AppendStoreExecutionTimeEstimates(b *ProgramBuilder, estimates []byte) {
	system := b.Obj(types.SharedObjectArg(types.SystemStateObjectID, builtinSharedVersion, true))
	args := []types.Argument{system, b.Pure(estimates)}
	b.MoveCall(types.SystemPackageID, moduleSystem, funcStoreExecutionTimeEstimates, nil, args)
}

// AppendAccumulatorRootCreate 续拼累加器根创建命令
func AppendAccumulatorRootCreate(b *ProgramBuilder) {
	b.MoveCall(types.FrameworkPackageID, moduleAccumulator, funcAccumulatorRootCreate, nil, nil)
}
