// Package testutil 提供执行核心测试的共享夹具
package testutil

import (
	"github.com/orbchain/v1/internal/core/execution/store"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// ==================== 标识夹具 ====================

// ObjectID 由种子字节构造测试对象ID
func ObjectID(seed byte) types.ObjectID {
	var id types.ObjectID
	for i := range id {
		id[i] = seed
	}
	return id
}

// Address 由种子字节构造测试地址
func Address(seed byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

// Digest 由种子字节构造测试交易摘要
func Digest(seed byte) types.TransactionDigest {
	var d types.TransactionDigest
	for i := range d {
		d[i] = seed
	}
	return d
}

// ==================== 对象夹具 ====================

// Coin 构造测试币对象
func Coin(id types.ObjectID, owner types.Address, version types.SequenceNumber, balance, rebate uint64) *types.Object {
	return &types.Object{
		ID:            id,
		Version:       version,
		Kind:          types.ObjectCoin,
		Owner:         types.NewAddressOwner(owner),
		TypeTag:       "0x2::coin::Coin<0x2::orb::ORB>",
		Balance:       balance,
		StorageRebate: rebate,
	}
}

// StructObject 构造测试结构对象
func StructObject(id types.ObjectID, owner types.Address, version types.SequenceNumber, payload []byte, rebate uint64) *types.Object {
	return &types.Object{
		ID:            id,
		Version:       version,
		Kind:          types.ObjectStruct,
		Owner:         types.NewAddressOwner(owner),
		TypeTag:       "0x2::example::Widget",
		Payload:       payload,
		StorageRebate: rebate,
	}
}

// SystemStateObject 构造系统状态共享对象
func SystemStateObject(epoch types.EpochID, protocolVersion types.ProtocolVersion, fund uint64, timestampMS uint64) *types.Object {
	payload := store.EncodeSystemState(&store.SystemState{
		Epoch:                 uint64(epoch),
		ProtocolVersion:       uint64(protocolVersion),
		StorageFund:           fund,
		EpochStartTimestampMS: timestampMS,
	})
	return &types.Object{
		ID:      types.SystemStateObjectID,
		Version: types.ObjectStartVersion,
		Kind:    types.ObjectStruct,
		Owner:   types.NewSharedOwner(types.ObjectStartVersion),
		TypeTag: "0x3::orb_system::SystemState",
		Payload: payload,
	}
}

// ==================== 输入夹具 ====================

// InputBuilder 输入对象集合构造器
type InputBuilder struct {
	entries []types.InputEntry
}

// NewInputBuilder 创建输入构造器
func NewInputBuilder() *InputBuilder {
	return &InputBuilder{}
}

// Mutable 追加可变输入
func (b *InputBuilder) Mutable(obj *types.Object) *InputBuilder {
	b.entries = append(b.entries, types.InputEntry{Object: obj, Mutable: true})
	return b
}

// ReadOnly 追加只读输入
func (b *InputBuilder) ReadOnly(obj *types.Object) *InputBuilder {
	b.entries = append(b.entries, types.InputEntry{Object: obj})
	return b
}

// StreamEnded 追加已被共识流删除的输入标记
func (b *InputBuilder) StreamEnded() *InputBuilder {
	b.entries = append(b.entries, types.InputEntry{StreamEnded: true})
	return b
}

// Cancelled 追加携带取消标记的输入
func (b *InputBuilder) Cancelled(obj *types.Object, marker types.SequenceNumber) *InputBuilder {
	b.entries = append(b.entries, types.InputEntry{Object: obj, Mutable: true, AssignedVersion: marker})
	return b
}

// Build 产出输入集合
func (b *InputBuilder) Build() *types.InputObjects {
	return &types.InputObjects{Entries: b.entries}
}

// ==================== 后备存储夹具 ====================

// MemStore 内存后备存储
type MemStore struct {
	Objects map[types.ObjectID]*types.Object
}

var _ executioniface.BackingStore = (*MemStore)(nil)

// NewMemStore 创建内存后备存储
func NewMemStore(objs ...*types.Object) *MemStore {
	m := &MemStore{Objects: make(map[types.ObjectID]*types.Object)}
	for _, obj := range objs {
		m.Objects[obj.ID] = obj
	}
	return m
}

// GetObject 读取对象
func (m *MemStore) GetObject(id types.ObjectID) (*types.Object, error) {
	obj, ok := m.Objects[id]
	if !ok {
		return nil, nil
	}
	return obj, nil
}

// GetPackage 读取包对象
func (m *MemStore) GetPackage(id types.ObjectID) (*types.Object, error) {
	return m.GetObject(id)
}

// ==================== 指标夹具 ====================

// Metrics 计数型测试指标
type Metrics struct {
	ExcessiveEffectsSize int
	ExcessiveWrittenSize int
	ConservationRecovery int
	SafeModeEpochAdvance int
}

var _ metricsiface.ExecutionMetrics = (*Metrics)(nil)

func (m *Metrics) IncExcessiveEstimatedEffectsSize() { m.ExcessiveEffectsSize++ }
func (m *Metrics) IncExcessiveWrittenObjectsSize()   { m.ExcessiveWrittenSize++ }
func (m *Metrics) IncConservationRecovery()          { m.ConservationRecovery++ }
func (m *Metrics) IncSafeModeEpochAdvance()          { m.SafeModeEpochAdvance++ }
