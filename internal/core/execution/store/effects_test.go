package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbchain/v1/internal/core/execution/gas"
	"github.com/orbchain/v1/pkg/types"
)

// TestIntoEffectsFiltersGenesisMarker 验证依赖集合剔除创世标记并排序
func TestIntoEffectsFiltersGenesisMarker(t *testing.T) {
	cfg := testConfig()
	coin := testCoin(0x0a, 3, 100, 0)
	s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
	s.MutateInput(coin.Clone())

	deps := map[types.TransactionDigest]struct{}{
		types.GenesisMarkerDigest(): {},
		{0xbb}:                      {},
		{0x02}:                      {},
	}
	charger := gas.NewUnmeteredCharger(cfg)
	_, effects := s.IntoEffects(nil, types.TransactionDigest{0x01}, deps, types.GasCostSummary{}, types.SuccessStatus(), charger, 1)

	require.Len(t, effects.Dependencies, 2)
	assert.Equal(t, types.TransactionDigest{0x02}, effects.Dependencies[0])
	assert.Equal(t, types.TransactionDigest{0xbb}, effects.Dependencies[1])
}

// TestIntoEffectsRefs 验证创建/改写/删除引用的划分与lamport落定
func TestIntoEffectsRefs(t *testing.T) {
	cfg := testConfig()
	coin := testCoin(0x0a, 5, 100, 0)
	s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})

	s.MutateInput(coin.Clone())
	created := testCoin(0x0b, 0, 7, 0)
	s.CreateObject(created)

	charger := gas.NewUnmeteredCharger(cfg)
	inner, effects := s.IntoEffects(nil, types.TransactionDigest{0x01}, nil, types.GasCostSummary{}, types.SuccessStatus(), charger, 1)

	require.Len(t, effects.Mutated, 1)
	require.Len(t, effects.Created, 1)
	assert.Equal(t, types.SequenceNumber(6), effects.Mutated[0].Version)
	assert.Equal(t, types.SequenceNumber(6), effects.Created[0].Version)
	assert.Equal(t, types.SequenceNumber(6), inner.LamportVersion)

	// 写入对象统一携带本交易摘要
	for _, obj := range inner.WrittenObjects {
		assert.Equal(t, types.TransactionDigest{0x01}, obj.PreviousTransaction)
	}
}

// TestIntoEffectsStorageRebateAssignment 验证计量与未计量交易的返还押存差异
func TestIntoEffectsStorageRebateAssignment(t *testing.T) {
	cfg := testConfig()

	t.Run("计量交易按写入大小押存", func(t *testing.T) {
		coin := testCoin(0x0a, 5, 100, 0)
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		s.MutateInput(coin.Clone())

		charger := gas.NewCharger(cfg, types.GasData{
			Payment: []types.ObjectRef{coin.Reference()},
			Budget:  1000,
		})
		inner, _ := s.IntoEffects(nil, types.TransactionDigest{0x01}, nil, types.GasCostSummary{}, types.SuccessStatus(), charger, 1)

		obj := inner.WrittenObjects[coin.ID]
		require.NotNil(t, obj)
		assert.Equal(t, obj.SizeEstimate()*cfg.GasWriteCostPerByte, obj.StorageRebate)
	})

	t.Run("未计量交易不押存", func(t *testing.T) {
		coin := testCoin(0x0a, 5, 100, 0)
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		s.MutateInput(coin.Clone())

		charger := gas.NewUnmeteredCharger(cfg)
		inner, _ := s.IntoEffects(nil, types.TransactionDigest{0x01}, nil, types.GasCostSummary{}, types.SuccessStatus(), charger, 1)

		obj := inner.WrittenObjects[coin.ID]
		require.NotNil(t, obj)
		assert.Zero(t, obj.StorageRebate)
	})
}

// TestUpgradeSystemPackageVersion 验证原地升级的包在效果中呈现加一增量
func TestUpgradeSystemPackageVersion(t *testing.T) {
	cfg := testConfig()
	s := NewTemporaryStore(cfg, emptyBacking{}, &types.InputObjects{}, nil, types.TransactionDigest{0x01})

	// 队列版本7, 预先回退到6
	pkg := types.NewSystemPackage(types.FrameworkPackageID, 7, [][]byte{{0x01}}, nil, types.TransactionDigest{0x01})
	pkg.DecrementPackageVersion()
	require.Equal(t, types.SequenceNumber(6), pkg.Version)
	s.UpgradeSystemPackage(pkg)

	charger := gas.NewUnmeteredCharger(cfg)
	inner, effects := s.IntoEffects(nil, types.TransactionDigest{0x01}, nil, types.GasCostSummary{}, types.SuccessStatus(), charger, 1)

	require.Len(t, effects.Created, 1)
	assert.Equal(t, types.SequenceNumber(7), effects.Created[0].Version)
	assert.Equal(t, types.SequenceNumber(7), inner.WrittenObjects[types.FrameworkPackageID].Version)
}

// TestUpgradeSystemPackageRejectsNonPackage 验证非包对象触发致命错误
func TestUpgradeSystemPackageRejectsNonPackage(t *testing.T) {
	s := NewTemporaryStore(testConfig(), emptyBacking{}, &types.InputObjects{}, nil, types.TransactionDigest{0x01})
	require.Panics(t, func() {
		s.UpgradeSystemPackage(testCoin(0x0a, 1, 0, 0))
	})
}

// TestAdvanceEpochSafeMode 验证安全模式直接落账的纪元簿记
func TestAdvanceEpochSafeMode(t *testing.T) {
	params := &types.AdvanceEpochParams{
		Epoch:                   5,
		NextProtocolVersion:     9,
		StorageCharge:           100,
		StorageRebate:           30,
		NonRefundableStorageFee: 7,
		EpochStartTimestampMS:   999,
	}

	newStateStore := func(cfg *types.ProtocolConfig) *TemporaryStore {
		state := &types.Object{
			ID:      types.SystemStateObjectID,
			Version: 3,
			Kind:    types.ObjectStruct,
			Owner:   types.NewSharedOwner(types.ObjectStartVersion),
			Payload: EncodeSystemState(&SystemState{Epoch: 4, ProtocolVersion: 8, StorageFund: 1000, EpochStartTimestampMS: 111}),
		}
		return NewTemporaryStore(cfg, emptyBacking{}, inputsOf(state), nil, types.TransactionDigest{0x01})
	}

	t.Run("允许直写起始时间", func(t *testing.T) {
		cfg := testConfig()
		s := newStateStore(cfg)
		s.AdvanceEpochSafeMode(params)

		obj, err := s.ReadObject(types.SystemStateObjectID)
		require.NoError(t, err)
		state := DecodeSystemState(obj.Payload)
		assert.Equal(t, uint64(5), state.Epoch)
		assert.Equal(t, uint64(9), state.ProtocolVersion)
		assert.True(t, state.SafeMode)
		// 1000 + 100 + 7 - 30
		assert.Equal(t, uint64(1077), state.StorageFund)
		assert.Equal(t, uint64(999), state.EpochStartTimestampMS)
	})

	t.Run("禁止直写起始时间", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdvanceEpochStartTimeInSafeMode = false
		s := newStateStore(cfg)
		s.AdvanceEpochSafeMode(params)

		obj, err := s.ReadObject(types.SystemStateObjectID)
		require.NoError(t, err)
		state := DecodeSystemState(obj.Payload)
		assert.Equal(t, uint64(5), state.Epoch)
		assert.Equal(t, uint64(111), state.EpochStartTimestampMS)
	})
}

// TestCheckOwnershipInvariants 验证所有权不变量
func TestCheckOwnershipInvariants(t *testing.T) {
	cfg := testConfig()
	signer := types.Address{0x01}
	charger := gas.NewUnmeteredCharger(cfg)

	t.Run("只读输入被改写应报错", func(t *testing.T) {
		coin := testCoin(0x0a, 3, 100, 0)
		in := &types.InputObjects{Entries: []types.InputEntry{{Object: coin, Mutable: false}}}
		s := NewTemporaryStore(cfg, emptyBacking{}, in, nil, types.TransactionDigest{0x01})
		s.MutateInput(coin.Clone())

		err := s.CheckOwnershipInvariants(signer, charger, in.MutableInputs(), false)
		assert.Error(t, err)
	})

	t.Run("不可变包仅纪元切换允许重写", func(t *testing.T) {
		pkg := types.NewSystemPackage(types.FrameworkPackageID, 5, [][]byte{{0x01}}, nil, types.TransactionDigest{})
		in := &types.InputObjects{Entries: []types.InputEntry{{Object: pkg, Mutable: false}}}

		s := NewTemporaryStore(cfg, emptyBacking{}, in, nil, types.TransactionDigest{0x01})
		s.MutateInput(pkg.Clone())
		assert.Error(t, s.CheckOwnershipInvariants(signer, charger, in.MutableInputs(), false))
		assert.NoError(t, s.CheckOwnershipInvariants(signer, charger, in.MutableInputs(), true))
	})

	t.Run("可变输入改写合法", func(t *testing.T) {
		coin := testCoin(0x0a, 3, 100, 0)
		in := inputsOf(coin)
		s := NewTemporaryStore(cfg, emptyBacking{}, in, nil, types.TransactionDigest{0x01})
		s.MutateInput(coin.Clone())

		assert.NoError(t, s.CheckOwnershipInvariants(signer, charger, in.MutableInputs(), false))
	})
}
