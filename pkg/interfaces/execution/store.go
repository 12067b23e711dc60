// Package execution 提供执行核心对外的协作方接口定义
//
// 执行核心通过这些窄接口消费对象存储、临时存储、燃料计量与VM，
// 自身不持有任何跨交易的可变状态。
package execution

import (
	"github.com/orbchain/v1/pkg/types"
)

// BackingStore 后备对象存储
//
// 提供按ID的点查；对象缺失返回(nil, nil)，错误只代表存储故障。
type BackingStore interface {
	// GetObject 读取对象
	GetObject(id types.ObjectID) (*types.Object, error)

	// GetPackage 读取包对象
	GetPackage(id types.ObjectID) (*types.Object, error)
}

// TemporaryStore 交易作用域的临时存储
//
// 缓冲一笔交易的全部读写并在结束时组装最终效果。
// 由一次编排器调用独占持有，绝不跨交易复用。
type TemporaryStore interface {
	// ReadObject 读穿缓冲读取对象（先查写集，再查输入，最后落到后备存储）
	ReadObject(id types.ObjectID) (*types.Object, error)

	// MutateInput 缓冲对输入对象的改写
	MutateInput(obj *types.Object)

	// CreateObject 缓冲新对象的创建
	CreateObject(obj *types.Object)

	// DeleteObject 缓冲对象删除
	DeleteObject(id types.ObjectID)

	// InputObjects 输入对象快照（用于失败日志）
	InputObjects() map[types.ObjectID]*types.Object

	// DropWrites 丢弃全部待定变更（守恒恢复与安全模式重试前调用）
	DropWrites()

	// ConserveUnmeteredStorageRebate 把系统交易累积的未计量存储返还
	// 归并进系统状态对象，避免从守恒池中流失
	ConserveUnmeteredStorageRebate(amount uint64)

	// CheckConservation 廉价守恒检查：存储返还簿记必须与申报费用自洽
	CheckConservation(summary types.GasCostSummary) error

	// CheckConservationExpensive 昂贵守恒检查：逐对象解析类型布局
	// 精确求和原生资产总量
	CheckConservationExpensive(summary types.GasCostSummary, advanceEpoch *types.AdvanceEpochGasSummary, resolver LayoutResolver) error

	// CollectedStorageRebate 写集与删除集对应输入对象的历史存储返还总额
	CollectedStorageRebate() uint64

	// EstimateEffectsSizeUpperbound 预估效果序列化大小上界
	EstimateEffectsSizeUpperbound() uint64

	// WrittenObjectsSize 写入对象的总大小
	WrittenObjectsSize() uint64

	// CheckOwnershipInvariants 校验可变输入的所有权不变量
	CheckOwnershipInvariants(signer types.Address, charger GasCharger, mutableInputs map[types.ObjectID]bool, isEpochChange bool) error

	// CheckExecutionResultsConsistency 分支执行完成后的结果一致性检查
	CheckExecutionResultsConsistency() error

	// AdvanceEpochSafeMode 安全模式下直接改写系统状态对象的纪元簿记
	// （不运行任何程序）
	AdvanceEpochSafeMode(params *types.AdvanceEpochParams)

	// UpgradeSystemPackage 应用系统包的原地升级
	UpgradeSystemPackage(pkg *types.Object)

	// UpdateObjectVersionAndPrevTx 为写集统一赋版本与前驱交易
	// （创世状态更新路径使用）
	UpdateObjectVersionAndPrevTx()

	// IntoInner 消费临时存储，产出变更集（不组装效果）
	IntoInner() *types.InnerTemporaryStore

	// IntoEffects 消费临时存储，组装最终效果
	IntoEffects(sharedRefs []types.ObjectRef, digest types.TransactionDigest, deps map[types.TransactionDigest]struct{}, summary types.GasCostSummary, status types.ExecutionStatus, charger GasCharger, epoch types.EpochID) (*types.InnerTemporaryStore, *types.TransactionEffects)
}
