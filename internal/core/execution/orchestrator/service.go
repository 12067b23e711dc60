// Package orchestrator 提供交易执行编排服务
//
// 编排器是确定性执行的唯一入口：划分输入、构造交易作用域的
// 临时存储/计量器/上下文，驱动执行与计费，核对守恒与所有权
// 不变量，最后组装共识可见的交易效果。无论成败每笔交易都产出
// 效果；不可恢复的协议级不一致以致命panic上抛，宿主停机。
package orchestrator

import (
	"github.com/orbchain/v1/internal/core/execution/epoch"
	"github.com/orbchain/v1/internal/core/execution/store"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// Service 交易执行编排服务
type Service struct {
	cfg       *types.ProtocolConfig
	logger    logiface.Logger
	metrics   metricsiface.ExecutionMetrics
	vm        executioniface.VM
	epochCtrl *epoch.Controller
}

// NewService 创建执行编排服务
func NewService(cfg *types.ProtocolConfig, logger logiface.Logger, metrics metricsiface.ExecutionMetrics, vm executioniface.VM, epochCtrl *epoch.Controller) *Service {
	return &Service{
		cfg:       cfg,
		logger:    logger.With("module", "execution.orchestrator"),
		metrics:   metrics,
		vm:        vm,
		epochCtrl: epochCtrl,
	}
}

// Request 单笔交易的执行请求
//
// 临时存储、计量器与交易上下文均由本次调用独占，绝不跨交易复用。
type Request struct {
	// Store 后备对象存储
	Store executioniface.BackingStore

	// Inputs 经上游检查的输入对象集合
	Inputs *types.InputObjects

	// Kind 交易类别
	Kind types.TransactionKind

	// Charger 燃料计量器（系统交易传未计量实现）
	Charger executioniface.GasCharger

	// Mode 执行模式
	Mode types.ExecutionMode

	Signer  types.Address
	Sponsor *types.Address
	Digest  types.TransactionDigest

	Epoch             types.EpochID
	EpochTimestampMS  uint64
	ReferenceGasPrice uint64
	GasBudget         uint64

	// DeniedCerts 被拒绝的交易摘要集合
	DeniedCerts map[types.TransactionDigest]struct{}

	// EnableTrace 是否收集执行踪迹（对语义无影响）
	EnableTrace bool
}

// Response 单笔交易的执行结果
//
// Err为交易级执行错误；此时Inner与Effects仍然有效，
// 效果以失败状态记录了计费与版本推进。
type Response struct {
	Inner   *types.InnerTemporaryStore
	Effects *types.TransactionEffects
	Results *types.ExecutionResults
	Timings []types.ExecutionTiming
	Trace   *types.TraceBuilder
	Err     *types.ExecutionError
}

// ExecuteTransactionToEffects 执行一笔交易并产出效果
func (s *Service) ExecuteTransactionToEffects(req Request) *Response {
	mutableInputs := req.Inputs.MutableInputs()
	sharedRefs := req.Inputs.FilterSharedObjects()
	deps := req.Inputs.TransactionDependencies()
	isEpochChange := types.IsEndOfEpochKind(req.Kind)

	tmpStore := store.NewTemporaryStore(s.cfg, req.Store, req.Inputs, types.ReceivingObjects(req.Kind), req.Digest)
	txCtx := types.NewTransactionContext(
		req.Signer, req.Digest, req.Epoch, req.EpochTimestampMS,
		req.ReferenceGasPrice, req.Charger.GasPrice(), req.GasBudget, req.Sponsor,
	)

	var trace *types.TraceBuilder
	if req.EnableTrace {
		trace = &types.TraceBuilder{}
	}

	results, timings, summary, execErr := s.executeTransaction(tmpStore, txCtx, req, trace)

	status := types.SuccessStatus()
	if execErr != nil {
		if execErr.Kind == types.ErrInvariantViolation {
			s.logger.Errorf("交易 %s 以不变量违规失败: %v, 输入=%d",
				req.Digest, execErr, len(tmpStore.InputObjects()))
		}
		status = types.FailureStatus(execErr)
	}

	// 宽容检查模式允许程序改写只读输入，不做所有权核对
	if !req.Mode.AllowArbitraryFunctionCalls() {
		if err := tmpStore.CheckOwnershipInvariants(req.Signer, req.Charger, mutableInputs, isEpochChange); err != nil {
			panic(types.NewFatalError("交易 %s 所有权不变量被破坏: %v", req.Digest, err))
		}
	}

	inner, effects := tmpStore.IntoEffects(sharedRefs, req.Digest, deps, summary, status, req.Charger, req.Epoch)
	s.logger.Debugf("交易 %s 执行完成: status=%s charger=%s", req.Digest, status, req.Charger.Summary())

	return &Response{
		Inner:   inner,
		Effects: effects,
		Results: results,
		Timings: timings,
		Trace:   trace,
		Err:     execErr,
	}
}

// executeTransaction 驱动单笔交易：合并燃料、读取计费、分派执行、
// 最终计费与守恒核对
func (s *Service) executeTransaction(
	tmpStore *store.TemporaryStore,
	txCtx *types.TransactionContext,
	req Request,
	trace *types.TraceBuilder,
) (*types.ExecutionResults, []types.ExecutionTiming, types.GasCostSummary, *types.ExecutionError) {
	req.Charger.SmashGas(tmpStore)
	chargeErr := req.Charger.ChargeInputObjects(tmpStore)

	var results *types.ExecutionResults
	var timings []types.ExecutionTiming
	var err error

	switch {
	case s.isDenied(req):
		err = types.NewExecutionError(types.ErrCertificateDenied, nil)
	case req.Inputs.ContainsStreamEndedObjects():
		err = types.NewExecutionError(types.ErrInputObjectDeleted, nil)
	default:
		if ids, reason, cancelled := req.Inputs.CancelledObjects(); cancelled {
			err = s.cancellationError(req.Digest, ids, reason)
		} else if chargeErr != nil {
			err = chargeErr
		} else {
			results, timings, err = s.executionLoop(tmpStore, txCtx, req, trace)
		}
	}

	if err != nil {
		// 失败路径只保留燃料合并与扣费：丢弃程序写入后重做合并，
		// 照常计费推进版本
		tmpStore.DropWrites()
		req.Charger.SmashGas(tmpStore)
	}

	summary := req.Charger.ChargeGas(tmpStore, &err)

	if req.Charger.IsUnmetered() {
		tmpStore.ConserveUnmeteredStorageRebate(req.Charger.UnmeteredStorageRebate())
	}

	summary, err = s.checkConservation(tmpStore, req, summary, err)

	if err == nil {
		if cerr := tmpStore.CheckExecutionResultsConsistency(); cerr != nil {
			panic(types.NewFatalError("交易 %s 执行结果不一致: %v", req.Digest, cerr))
		}
	}

	return results, timings, summary, asExecutionError(err)
}

// isDenied 判断交易是否命中拒绝集合
func (s *Service) isDenied(req Request) bool {
	_, ok := req.DeniedCerts[req.Digest]
	return ok
}

// cancellationError 把取消标记翻译为执行错误
//
// 标记区间之外的哨兵版本属于共识层逻辑错误，致命中断。
func (s *Service) cancellationError(digest types.TransactionDigest, ids []types.ObjectID, reason types.SequenceNumber) error {
	switch reason {
	case types.SequenceNumberCongested:
		return types.NewCongestionError(ids)
	case types.SequenceNumberRandomnessUnavailable:
		return types.NewExecutionError(types.ErrRandomnessUnavailable, nil)
	default:
		panic(types.NewFatalError("交易 %s 携带非法取消标记 %d", digest, reason))
	}
}

// asExecutionError 收敛错误类型
//
// 执行路径产生的错误要么是交易级执行错误，要么是致命panic；
// 其他错误形态属于实现缺陷。
func asExecutionError(err error) *types.ExecutionError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*types.ExecutionError); ok {
		return ee
	}
	panic(types.NewFatalError("非执行错误泄漏出执行路径: %v", err))
}
