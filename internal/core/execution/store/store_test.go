package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbchain/v1/pkg/types"
)

// testConfig 返回算术友好的测试协议配置
func testConfig() *types.ProtocolConfig {
	return &types.ProtocolConfig{
		MaxSerializedTxEffectsSizeBytes:         1 << 20,
		MaxSerializedTxEffectsSizeBytesSystemTx: 1 << 24,
		SimpleConservationChecks:                true,
		AdvanceEpochStartTimeInSafeMode:         true,
		GasReadCostPerByte:                      1,
		GasWriteCostPerByte:                     1,
		StorageRebateRate:                       10000,
	}
}

func testID(seed byte) types.ObjectID {
	var id types.ObjectID
	for i := range id {
		id[i] = seed
	}
	return id
}

func testCoin(seed byte, version types.SequenceNumber, balance, rebate uint64) *types.Object {
	return &types.Object{
		ID:            testID(seed),
		Version:       version,
		Kind:          types.ObjectCoin,
		Owner:         types.NewAddressOwner(types.Address{0x01}),
		Balance:       balance,
		StorageRebate: rebate,
	}
}

func inputsOf(objs ...*types.Object) *types.InputObjects {
	in := &types.InputObjects{}
	for _, obj := range objs {
		in.Entries = append(in.Entries, types.InputEntry{Object: obj, Mutable: true})
	}
	return in
}

type emptyBacking struct{}

func (emptyBacking) GetObject(types.ObjectID) (*types.Object, error)  { return nil, nil }
func (emptyBacking) GetPackage(types.ObjectID) (*types.Object, error) { return nil, nil }

// TestLamportVersion 验证lamport版本取所有输入版本的最大值加一
func TestLamportVersion(t *testing.T) {
	a := testCoin(0x0a, 3, 100, 0)
	b := testCoin(0x0b, 7, 100, 0)
	s := NewTemporaryStore(testConfig(), emptyBacking{}, inputsOf(a, b), nil, types.TransactionDigest{0x01})

	assert.Equal(t, types.SequenceNumber(8), s.LamportVersion())
}

// TestLamportVersionIncludesReceiving 验证接收中对象的版本参与推算
func TestLamportVersionIncludesReceiving(t *testing.T) {
	a := testCoin(0x0a, 3, 100, 0)
	receiving := []types.ObjectRef{{ID: testID(0x0e), Version: 41}}
	s := NewTemporaryStore(testConfig(), emptyBacking{}, inputsOf(a), receiving, types.TransactionDigest{0x01})

	assert.Equal(t, types.SequenceNumber(42), s.LamportVersion())
}

// TestReadThroughOrder 验证读穿顺序: 写集 > 删除集 > 输入 > 后备存储
func TestReadThroughOrder(t *testing.T) {
	input := testCoin(0x0a, 3, 100, 0)
	s := NewTemporaryStore(testConfig(), emptyBacking{}, inputsOf(input), nil, types.TransactionDigest{0x01})

	// 初始读到输入
	got, err := s.ReadObject(input.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.Balance)

	// 写集覆盖输入
	mutated := input.Clone()
	mutated.Balance = 42
	s.MutateInput(mutated)
	got, err = s.ReadObject(input.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Balance)

	// 删除后读到nil
	s.DeleteObject(input.ID)
	got, err = s.ReadObject(input.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestDeleteCreatedObjectCancels 验证同一交易内先创建后删除直接抵消
func TestDeleteCreatedObjectCancels(t *testing.T) {
	s := NewTemporaryStore(testConfig(), emptyBacking{}, &types.InputObjects{}, nil, types.TransactionDigest{0x01})

	obj := testCoin(0x0c, 1, 10, 0)
	s.CreateObject(obj)
	s.DeleteObject(obj.ID)

	inner := s.IntoInner()
	assert.Empty(t, inner.WrittenObjects)
	assert.Empty(t, inner.DeletedObjects)
}

// TestCollectedStorageRebate 验证回收额覆盖写集与删除集对应的输入
func TestCollectedStorageRebate(t *testing.T) {
	a := testCoin(0x0a, 3, 100, 50)
	b := testCoin(0x0b, 4, 100, 30)
	s := NewTemporaryStore(testConfig(), emptyBacking{}, inputsOf(a, b), nil, types.TransactionDigest{0x01})

	s.MutateInput(a.Clone())
	s.DeleteObject(b.ID)

	assert.Equal(t, uint64(80), s.CollectedStorageRebate())
}

// TestDropWrites 验证丢弃变更后回收额与写集清零
func TestDropWrites(t *testing.T) {
	a := testCoin(0x0a, 3, 100, 50)
	s := NewTemporaryStore(testConfig(), emptyBacking{}, inputsOf(a), nil, types.TransactionDigest{0x01})

	s.MutateInput(a.Clone())
	require.Equal(t, uint64(50), s.CollectedStorageRebate())

	s.DropWrites()
	assert.Zero(t, s.CollectedStorageRebate())
	assert.Zero(t, s.WrittenObjectsSize())
}
