// Package store 提供交易作用域的临时存储实现
//
// 临时存储缓冲一笔交易的全部读写：输入快照在构造时固定，
// 写入与删除先落在内存缓冲，最后由IntoEffects一次性落定。
// 一个实例只服务一次执行调用，绝不复用。
package store

import (
	"fmt"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

// TemporaryStore 临时存储
type TemporaryStore struct {
	cfg     *types.ProtocolConfig
	backing executioniface.BackingStore
	digest  types.TransactionDigest

	inputs  map[types.ObjectID]*types.Object
	written map[types.ObjectID]*types.Object
	deleted map[types.ObjectID]types.SequenceNumber

	// upgradedPkgs 本交易原地升级的系统包，落定时版本加一
	upgradedPkgs map[types.ObjectID]struct{}

	// lamport 本交易为全部写入对象赋的统一版本：
	// 输入与接收中对象版本的最大值加一
	lamport types.SequenceNumber

	// conservedUnmeteredRebate 已归并进系统状态的未计量返还
	conservedUnmeteredRebate uint64
}

var _ executioniface.TemporaryStore = (*TemporaryStore)(nil)

// NewTemporaryStore 创建临时存储
//
// receiving为程序引用的接收中对象：它们不进输入快照，但其版本
// 参与lamport版本推算，保证接收后的改写拿到更高的版本号。
func NewTemporaryStore(cfg *types.ProtocolConfig, backing executioniface.BackingStore, inputs *types.InputObjects, receiving []types.ObjectRef, digest types.TransactionDigest) *TemporaryStore {
	inputMap := inputs.ObjectMap()
	lamport := types.ObjectStartVersion
	for _, obj := range inputMap {
		if obj.Version+1 > lamport {
			lamport = obj.Version + 1
		}
	}
	for _, ref := range receiving {
		if ref.Version+1 > lamport {
			lamport = ref.Version + 1
		}
	}
	return &TemporaryStore{
		cfg:          cfg,
		backing:      backing,
		digest:       digest,
		inputs:       inputMap,
		written:      make(map[types.ObjectID]*types.Object),
		deleted:      make(map[types.ObjectID]types.SequenceNumber),
		upgradedPkgs: make(map[types.ObjectID]struct{}),
		lamport:      lamport,
	}
}

// LamportVersion 本交易的统一写入版本
func (s *TemporaryStore) LamportVersion() types.SequenceNumber {
	return s.lamport
}

// ReadObject 读穿缓冲读取对象
func (s *TemporaryStore) ReadObject(id types.ObjectID) (*types.Object, error) {
	if obj, ok := s.written[id]; ok {
		return obj, nil
	}
	if _, ok := s.deleted[id]; ok {
		return nil, nil
	}
	if obj, ok := s.inputs[id]; ok {
		return obj, nil
	}
	return s.backing.GetObject(id)
}

// MutateInput 缓冲对既有对象的改写
func (s *TemporaryStore) MutateInput(obj *types.Object) {
	delete(s.deleted, obj.ID)
	s.written[obj.ID] = obj
}

// CreateObject 缓冲新对象的创建
func (s *TemporaryStore) CreateObject(obj *types.Object) {
	s.written[obj.ID] = obj
}

// DeleteObject 缓冲对象删除
//
// 本交易内刚创建又删除的对象直接抵消，不留删除记录。
func (s *TemporaryStore) DeleteObject(id types.ObjectID) {
	if _, ok := s.written[id]; ok {
		delete(s.written, id)
		if _, wasInput := s.inputs[id]; !wasInput {
			return
		}
	}
	if obj, ok := s.inputs[id]; ok {
		s.deleted[id] = obj.Version
		return
	}
	obj, err := s.backing.GetObject(id)
	if err != nil || obj == nil {
		panic(types.NewFatalError("删除不可读对象 %s: %v", id, err))
	}
	s.deleted[id] = obj.Version
}

// InputObjects 输入对象快照
func (s *TemporaryStore) InputObjects() map[types.ObjectID]*types.Object {
	out := make(map[types.ObjectID]*types.Object, len(s.inputs))
	for id, obj := range s.inputs {
		out[id] = obj
	}
	return out
}

// DropWrites 丢弃全部待定变更
func (s *TemporaryStore) DropWrites() {
	s.written = make(map[types.ObjectID]*types.Object)
	s.deleted = make(map[types.ObjectID]types.SequenceNumber)
	s.upgradedPkgs = make(map[types.ObjectID]struct{})
	s.conservedUnmeteredRebate = 0
}

// CollectedStorageRebate 写集与删除集对应输入对象的历史返还总额
func (s *TemporaryStore) CollectedStorageRebate() uint64 {
	var total uint64
	for id := range s.written {
		if in, ok := s.inputs[id]; ok {
			total += in.StorageRebate
		}
	}
	for id := range s.deleted {
		if in, ok := s.inputs[id]; ok {
			total += in.StorageRebate
		}
	}
	return total
}

// ConserveUnmeteredStorageRebate 把未计量返还归并进系统状态的存储基金
func (s *TemporaryStore) ConserveUnmeteredStorageRebate(amount uint64) {
	if amount == 0 {
		return
	}
	obj, err := s.ReadObject(types.SystemStateObjectID)
	if err != nil || obj == nil {
		panic(types.NewFatalError("归并未计量返还时系统状态对象不可读: %v", err))
	}
	mutated := obj.Clone()
	state := DecodeSystemState(mutated.Payload)
	state.StorageFund += amount
	mutated.Payload = EncodeSystemState(state)
	s.MutateInput(mutated)
	s.conservedUnmeteredRebate += amount
}

// WrittenObjectsSize 写入对象总大小
func (s *TemporaryStore) WrittenObjectsSize() uint64 {
	var total uint64
	for _, obj := range s.written {
		total += obj.SizeEstimate()
	}
	return total
}

// EstimateEffectsSizeUpperbound 预估效果序列化大小上界
//
// 每条对象引用与依赖按固定开销计，刻意取宽松上界。
func (s *TemporaryStore) EstimateEffectsSizeUpperbound() uint64 {
	const headerSize = 256
	const refSize = 64
	refs := uint64(len(s.written) + len(s.deleted) + len(s.inputs))
	return headerSize + refs*refSize
}

// CheckOwnershipInvariants 校验可变输入的所有权不变量
//
// 被改写的输入必须以可变方式声明；不可变对象仅在纪元切换的
// 系统包升级路径允许被重写。
func (s *TemporaryStore) CheckOwnershipInvariants(signer types.Address, charger executioniface.GasCharger, mutableInputs map[types.ObjectID]bool, isEpochChange bool) error {
	gasCoinID := types.ObjectID{}
	if ref := charger.GasCoin(); ref != nil {
		gasCoinID = ref.ID
	}
	for id := range s.written {
		in, ok := s.inputs[id]
		if !ok {
			continue
		}
		if in.Owner.Kind == types.OwnerImmutable {
			if isEpochChange && in.IsPackage() {
				continue
			}
			return fmt.Errorf("不可变输入 %s 被改写", id)
		}
		if !mutableInputs[id] && id != gasCoinID {
			return fmt.Errorf("只读输入 %s 被改写", id)
		}
	}
	for id := range s.deleted {
		if in, ok := s.inputs[id]; ok {
			if in.Owner.Kind == types.OwnerImmutable {
				return fmt.Errorf("不可变输入 %s 被删除", id)
			}
			if !mutableInputs[id] && id != gasCoinID {
				return fmt.Errorf("只读输入 %s 被删除", id)
			}
		}
	}
	return nil
}

// CheckExecutionResultsConsistency 结果一致性检查
func (s *TemporaryStore) CheckExecutionResultsConsistency() error {
	for id := range s.written {
		if _, ok := s.deleted[id]; ok {
			return fmt.Errorf("对象 %s 同时出现在写集与删除集", id)
		}
		if s.written[id].ID != id {
			return fmt.Errorf("写集键 %s 与对象ID %s 不一致", id, s.written[id].ID)
		}
	}
	return nil
}

// AdvanceEpochSafeMode 安全模式下直接改写系统状态的纪元簿记
//
// 不运行任何程序：解码系统状态负载，推进纪元与协议版本，
// 按申报费用调整存储基金，按协议配置决定是否直写起始时间戳。
func (s *TemporaryStore) AdvanceEpochSafeMode(params *types.AdvanceEpochParams) {
	obj, err := s.ReadObject(types.SystemStateObjectID)
	if err != nil || obj == nil {
		panic(types.NewFatalError("安全模式推进时系统状态对象不可读: %v", err))
	}
	mutated := obj.Clone()
	state := DecodeSystemState(mutated.Payload)
	state.Epoch = uint64(params.Epoch)
	state.ProtocolVersion = uint64(params.NextProtocolVersion)
	state.SafeMode = true
	state.StorageFund += params.StorageCharge + params.NonRefundableStorageFee
	if state.StorageFund >= params.StorageRebate {
		state.StorageFund -= params.StorageRebate
	} else {
		state.StorageFund = 0
	}
	if s.cfg.AdvanceEpochStartTimeInSafeMode {
		state.EpochStartTimestampMS = params.EpochStartTimestampMS
	}
	mutated.Payload = EncodeSystemState(state)
	s.MutateInput(mutated)
}

// UpgradeSystemPackage 应用系统包的原地升级
//
// 传入的包已预先回退一个版本，落定时加回，效果呈现恰好加一的增量。
func (s *TemporaryStore) UpgradeSystemPackage(pkg *types.Object) {
	if !pkg.IsPackage() {
		panic(types.NewFatalError("以非包对象 %s 执行系统包升级", pkg.ID))
	}
	s.written[pkg.ID] = pkg
	s.upgradedPkgs[pkg.ID] = struct{}{}
}
