package testutil

import (
	"github.com/orbchain/v1/internal/core/execution/store"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// ExecuteFunc 假VM的可编排执行行为
type ExecuteFunc func(tmpStore executioniface.TemporaryStore, txCtx *types.TransactionContext, prog types.Program, mode types.ExecutionMode) error

// FakeVM 可编排的假虚拟机
//
// 默认对任何程序原样成功且不产生写入；通过OnExecute注入
// 具体行为或失败。所有递交的程序按序记录在Programs中。
type FakeVM struct {
	OnExecute ExecuteFunc
	Programs  []types.Program
	Modes     []types.ExecutionMode

	// Resolver 非nil时替换默认的布局解析器
	Resolver executioniface.LayoutResolver
}

var _ executioniface.VM = (*FakeVM)(nil)

// ExecuteProgram 记录程序并执行注入的行为
func (v *FakeVM) ExecuteProgram(
	cfg *types.ProtocolConfig,
	metrics metricsiface.ExecutionMetrics,
	tmpStore executioniface.TemporaryStore,
	packages executioniface.BackingStore,
	txCtx *types.TransactionContext,
	charger executioniface.GasCharger,
	prog types.Program,
	mode types.ExecutionMode,
	trace *types.TraceBuilder,
) (*types.ExecutionResults, []types.ExecutionTiming, error) {
	v.Programs = append(v.Programs, prog)
	v.Modes = append(v.Modes, mode)
	trace.Record("fakevm.execute")
	if v.OnExecute != nil {
		if err := v.OnExecute(tmpStore, txCtx, prog, mode); err != nil {
			return nil, nil, err
		}
	}
	return types.EmptyResults(), nil, nil
}

// NewLayoutResolver 构造布局解析器
func (v *FakeVM) NewLayoutResolver(tmpStore executioniface.TemporaryStore) executioniface.LayoutResolver {
	if v.Resolver != nil {
		return v.Resolver
	}
	return StateAwareResolver{}
}

// StateAwareResolver 默认布局解析器
//
// 系统状态对象的存储基金计为内嵌原生资产，其余非币对象计零。
type StateAwareResolver struct{}

// ResolveBalance 解析对象内嵌的原生资产数量
func (StateAwareResolver) ResolveBalance(obj *types.Object) (uint64, error) {
	if obj.ID == types.SystemStateObjectID {
		return store.DecodeSystemState(obj.Payload).StorageFund, nil
	}
	return 0, nil
}

// FakeVMFactory 假VM工厂
type FakeVMFactory struct {
	// NewFn 非nil时替换默认构造行为
	NewFn func(cfg *types.ProtocolConfig) (executioniface.VM, error)

	// Created 已构造的VM个数
	Created int
}

var _ executioniface.VMFactory = (*FakeVMFactory)(nil)

// NewVM 构造全新假VM
func (f *FakeVMFactory) NewVM(cfg *types.ProtocolConfig) (executioniface.VM, error) {
	f.Created++
	if f.NewFn != nil {
		return f.NewFn(cfg)
	}
	return &FakeVM{}, nil
}
