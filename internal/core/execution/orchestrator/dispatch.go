package orchestrator

import (
	"github.com/orbchain/v1/internal/core/execution/store"
	"github.com/orbchain/v1/internal/core/execution/sysprogram"
	"github.com/orbchain/v1/pkg/types"
)

// executionLoop 按交易类别分派执行
//
// 系统交易的失败策略各不相同：受协议契约保护的调用失败即致命，
// 可编程交易的失败降级为交易级错误。收尾时无论成败都核对效果
// 大小与写入大小限制。
func (s *Service) executionLoop(
	tmpStore *store.TemporaryStore,
	txCtx *types.TransactionContext,
	req Request,
	trace *types.TraceBuilder,
) (*types.ExecutionResults, []types.ExecutionTiming, error) {
	var results *types.ExecutionResults
	var timings []types.ExecutionTiming
	var err error

	switch kind := req.Kind.(type) {
	case types.ChangeEpoch:
		s.epochCtrl.AdvanceEpoch(s.vm, tmpStore, req.Store, req.Charger, txCtx, kind, nil, trace)
		results = types.EmptyResults()

	case types.GenesisTransaction:
		if req.Epoch != 0 {
			panic(types.NewFatalError("创世交易只允许出现在纪元0, 实际纪元 %d", req.Epoch))
		}
		s.executeGenesis(tmpStore, kind)
		results = types.EmptyResults()

	case types.ConsensusCommitPrologue:
		prog := sysprogram.ConsensusCommitPrologueProgram(kind)
		s.runProtectedProgram(tmpStore, txCtx, req, prog, trace, "共识提交序言")
		results = types.EmptyResults()

	case types.AuthenticatorStateUpdate:
		s.requireFeature(s.cfg.EnableJWKConsensusUpdates, "认证器状态更新")
		prog := sysprogram.AuthenticatorStateUpdateProgram(kind)
		s.runProtectedProgram(tmpStore, txCtx, req, prog, trace, "认证器状态更新")
		results = types.EmptyResults()

	case types.RandomnessStateUpdate:
		s.requireFeature(s.cfg.EnableRandomBeacon, "随机数状态更新")
		prog := sysprogram.RandomnessStateUpdateProgram(kind)
		s.runProtectedProgram(tmpStore, txCtx, req, prog, trace, "随机数状态更新")
		results = types.EmptyResults()

	case types.EndOfEpochTransaction:
		results = s.executeEndOfEpoch(tmpStore, txCtx, req, kind, trace)

	case types.ProgrammableTransaction:
		results, timings, err = s.vm.ExecuteProgram(
			s.cfg, s.metrics, tmpStore, req.Store, txCtx, req.Charger, kind.Program, req.Mode, trace)

	case types.ProgrammableSystemTransaction:
		results, timings, err = s.vm.ExecuteProgram(
			s.cfg, s.metrics, tmpStore, req.Store, txCtx, req.Charger, kind.Program, types.ModeSystem, trace)

	default:
		panic(types.NewFatalError("未知交易类别 %T", req.Kind))
	}

	// 限制检查无论执行成败都要跑：软档告警与指标不能因执行失败
	// 而丢失；硬档错误只在执行本身成功时成为最终结果
	lerr := s.checkMeterLimit(tmpStore, req.Charger)
	if lerr == nil {
		lerr = s.checkWrittenObjectsLimit(tmpStore, req.Charger)
	}
	if err == nil {
		err = lerr
	}
	return results, timings, err
}

// executeGenesis 创世路径：绕过程序执行直接写入原始对象
//
// 创世交易以创世标记摘要作为自身摘要递交，写入对象的前驱
// 交易在落定时自然指向标记；后续交易组装效果时剔除该标记。
func (s *Service) executeGenesis(tmpStore *store.TemporaryStore, tx types.GenesisTransaction) {
	for _, gen := range tx.Objects {
		tmpStore.CreateObject(gen.Data.Clone())
	}
}

// executeEndOfEpoch 纪元尾交易：维护动作累积进同一构造器，随末项的
// 纪元推进组成一个程序一并递交
//
// 合并递交使任何一项维护动作的失败都落进纪元推进的安全模式兜底，
// 纪元边界不会被单个动作卡死。
func (s *Service) executeEndOfEpoch(
	tmpStore *store.TemporaryStore,
	txCtx *types.TransactionContext,
	req Request,
	tx types.EndOfEpochTransaction,
	trace *types.TraceBuilder,
) *types.ExecutionResults {
	n := len(tx.Kinds)
	if n == 0 {
		panic(types.NewFatalError("纪元尾交易不允许为空"))
	}
	if _, ok := tx.Kinds[n-1].(types.EndOfEpochChangeEpoch); !ok {
		panic(types.NewFatalError("纪元尾交易必须以纪元切换收尾, 实际为 %T", tx.Kinds[n-1]))
	}

	builder := sysprogram.NewProgramBuilder()
	for i, sub := range tx.Kinds {
		switch k := sub.(type) {
		case types.EndOfEpochChangeEpoch:
			if i != n-1 {
				panic(types.NewFatalError("纪元切换必须是纪元尾交易的末项, 实际位于第 %d 项", i))
			}
			s.epochCtrl.AdvanceEpoch(s.vm, tmpStore, req.Store, req.Charger, txCtx, k.ChangeEpoch, builder, trace)

		case types.AuthenticatorStateCreate:
			s.requireFeature(s.cfg.EnableJWKConsensusUpdates, "认证器状态创建")
			sysprogram.AppendAuthenticatorStateCreate(builder)

		case types.AuthenticatorStateExpire:
			s.requireFeature(s.cfg.EnableJWKConsensusUpdates, "JWK过期")
			sysprogram.AppendAuthenticatorStateExpire(builder, k)

		case types.RandomnessStateCreate:
			s.requireFeature(s.cfg.EnableRandomBeacon, "随机数状态创建")
			sysprogram.AppendRandomnessStateCreate(builder)

		case types.DenyListStateCreate:
			s.requireFeature(s.cfg.EnableCoinDenyList, "拒绝名单创建")
			sysprogram.AppendDenyListStateCreate(builder)

		case types.BridgeStateCreate:
			s.requireFeature(s.cfg.EnableBridge, "跨链桥创建")
			sysprogram.AppendBridgeCreate(builder, k.ChainID)

		case types.BridgeCommitteeInit:
			s.requireFeature(s.cfg.EnableBridge && s.cfg.TryFinalizeBridgeCommittee, "桥委员会初始化")
			sysprogram.AppendBridgeCommitteeInit(builder, k.BridgeObjInitialSharedVersion)

		case types.StoreExecutionTimeEstimates:
			s.requireFeature(s.cfg.EnableExecutionTimeEstimates, "执行耗时估计存储")
			sysprogram.AppendStoreExecutionTimeEstimates(builder, k.Estimates)

		case types.AccumulatorRootCreate:
			s.requireFeature(s.cfg.EnableAccumulators, "累加器根创建")
			sysprogram.AppendAccumulatorRootCreate(builder)

		default:
			panic(types.NewFatalError("未知纪元尾动作 %T", sub))
		}
	}
	return types.EmptyResults()
}

// runProtectedProgram 运行受协议契约保护的系统程序，失败即致命
func (s *Service) runProtectedProgram(
	tmpStore *store.TemporaryStore,
	txCtx *types.TransactionContext,
	req Request,
	prog types.Program,
	trace *types.TraceBuilder,
	name string,
) {
	if _, _, err := s.vm.ExecuteProgram(s.cfg, s.metrics, tmpStore, req.Store, txCtx, req.Charger, prog, types.ModeSystem, trace); err != nil {
		panic(types.NewFatalError("%s程序失败: %v", name, err))
	}
}

// requireFeature 断言特性开关已开启
//
// 共识层只会在特性开启后生成对应交易，关着的开关收到交易
// 说明协议实现不一致。
func (s *Service) requireFeature(enabled bool, name string) {
	if !enabled {
		panic(types.NewFatalError("%s交易到达但特性未开启", name))
	}
}
