package gas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbchain/v1/internal/core/execution/store"
	"github.com/orbchain/v1/pkg/types"
)

func testConfig() *types.ProtocolConfig {
	return &types.ProtocolConfig{
		GasReadCostPerByte:  1,
		GasWriteCostPerByte: 1,
		StorageRebateRate:   10000,
	}
}

func testCoin(seed byte, version types.SequenceNumber, balance, rebate uint64) *types.Object {
	var id types.ObjectID
	for i := range id {
		id[i] = seed
	}
	return &types.Object{
		ID:            id,
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

// TestSmashGas 验证多枚支付币合并为首枚
func TestSmashGas(t *testing.T) {
	cfg := testConfig()
	a := testCoin(0x0a, 2, 100, 10)
	b := testCoin(0x0b, 3, 50, 20)
	s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(a, b), nil, types.TransactionDigest{0x01})

	c := NewCharger(cfg, types.GasData{
		Payment: []types.ObjectRef{a.Reference(), b.Reference()},
		Price:   1,
		Budget:  1000,
	})
	c.SmashGas(s)

	merged, err := s.ReadObject(a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), merged.Balance)

	gone, err := s.ReadObject(b.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 被删币的历史返还进入回收池
	assert.Equal(t, uint64(30), s.CollectedStorageRebate())
}

// TestChargeInputObjects 验证输入读取按字节计费与预算上限
func TestChargeInputObjects(t *testing.T) {
	cfg := testConfig()
	coin := testCoin(0x0a, 2, 100, 0)

	t.Run("预算内计费成功", func(t *testing.T) {
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewCharger(cfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 1000})

		require.NoError(t, c.ChargeInputObjects(s))
		assert.False(t, c.NoCharges())
	})

	t.Run("超出预算返回燃料错误", func(t *testing.T) {
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewCharger(cfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 10})

		err := c.ChargeInputObjects(s)
		require.Error(t, err)
		var ee *types.ExecutionError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, types.ErrInsufficientGas, ee.Kind)
	})

	t.Run("未计量交易不计费", func(t *testing.T) {
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewUnmeteredCharger(cfg)

		require.NoError(t, c.ChargeInputObjects(s))
		assert.True(t, c.NoCharges())
	})
}

// TestChargeGas 验证最终计费的扣款与汇总
func TestChargeGas(t *testing.T) {
	cfg := testConfig()

	t.Run("成功路径扣除净额", func(t *testing.T) {
		coin := testCoin(0x0a, 5, 1000, 50)
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewCharger(cfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 100000})
		require.NoError(t, c.ChargeInputObjects(s))

		var result error
		summary := c.ChargeGas(s, &result)
		require.NoError(t, result)

		// 读取费64; 写集只有燃料币, 存储费64; 回收50全额返还
		assert.Equal(t, uint64(64), summary.ComputationCost)
		assert.Equal(t, uint64(64), summary.StorageCost)
		assert.Equal(t, uint64(50), summary.StorageRebate)
		assert.Zero(t, summary.NonRefundableStorageFee)

		mutated, err := s.ReadObject(coin.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000-78), mutated.Balance)
	})

	t.Run("预算耗尽把结果改写为失败", func(t *testing.T) {
		coin := testCoin(0x0a, 5, 1000, 0)
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewCharger(cfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 100})
		require.NoError(t, c.ChargeInputObjects(s))

		var result error
		c.ChargeGas(s, &result)
		require.Error(t, result)
		var ee *types.ExecutionError
		require.ErrorAs(t, result, &ee)
		assert.Equal(t, types.ErrInsufficientGas, ee.Kind)
	})

	t.Run("非退还拆分按比例", func(t *testing.T) {
		rateCfg := testConfig()
		rateCfg.StorageRebateRate = 9900
		coin := testCoin(0x0a, 5, 10000, 100)
		s := store.NewTemporaryStore(rateCfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		c := NewCharger(rateCfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 100000})

		var result error
		summary := c.ChargeGas(s, &result)
		require.NoError(t, result)
		assert.Equal(t, uint64(99), summary.StorageRebate)
		assert.Equal(t, uint64(1), summary.NonRefundableStorageFee)
	})

	t.Run("未计量交易收集返还且汇总为零", func(t *testing.T) {
		victim := testCoin(0x0b, 4, 0, 80)
		s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(victim), nil, types.TransactionDigest{0x01})
		c := NewUnmeteredCharger(cfg)
		s.DeleteObject(victim.ID)

		var result error
		summary := c.ChargeGas(s, &result)
		require.NoError(t, result)
		assert.Equal(t, types.GasCostSummary{}, summary)
		assert.Equal(t, uint64(80), c.UnmeteredStorageRebate())
		assert.Nil(t, c.GasCoin())
	})
}

// TestReset 验证守恒恢复路径的计费清零
func TestReset(t *testing.T) {
	cfg := testConfig()
	coin := testCoin(0x0a, 5, 1000, 0)
	s := store.NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
	c := NewCharger(cfg, types.GasData{Payment: []types.ObjectRef{coin.Reference()}, Budget: 100000})

	require.NoError(t, c.ChargeInputObjects(s))
	var result error
	c.ChargeGas(s, &result)
	require.False(t, c.NoCharges())

	c.Reset(s)
	assert.True(t, c.NoCharges())
}
