package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbchain/v1/pkg/types"
)

type zeroResolver struct{}

func (zeroResolver) ResolveBalance(*types.Object) (uint64, error) { return 0, nil }

type errResolver struct{}

func (errResolver) ResolveBalance(*types.Object) (uint64, error) {
	return 0, errors.New("布局不可解析")
}

// TestCheckConservation 验证廉价守恒检查的簿记等式
func TestCheckConservation(t *testing.T) {
	cfg := testConfig()

	newMutatedStore := func() *TemporaryStore {
		coin := testCoin(0x0a, 2, 1000, 50)
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		mutated := coin.Clone()
		mutated.Balance = 922
		s.MutateInput(mutated)
		return s
	}

	t.Run("自洽的费用汇总通过", func(t *testing.T) {
		s := newMutatedStore()
		summary := types.GasCostSummary{
			ComputationCost: 64,
			StorageCost:     s.WrittenObjectsSize() * cfg.GasWriteCostPerByte,
			StorageRebate:   50,
		}
		assert.NoError(t, s.CheckConservation(summary))
	})

	t.Run("存储费与写集不符应报错", func(t *testing.T) {
		s := newMutatedStore()
		summary := types.GasCostSummary{
			ComputationCost: 64,
			StorageCost:     s.WrittenObjectsSize()*cfg.GasWriteCostPerByte + 1,
			StorageRebate:   50,
		}
		assert.Error(t, s.CheckConservation(summary))
	})

	t.Run("返还拆分不平应报错", func(t *testing.T) {
		s := newMutatedStore()
		summary := types.GasCostSummary{
			ComputationCost: 64,
			StorageCost:     s.WrittenObjectsSize() * cfg.GasWriteCostPerByte,
			StorageRebate:   49,
		}
		assert.Error(t, s.CheckConservation(summary))
	})

	t.Run("未计量交易的归并返还通过", func(t *testing.T) {
		state := &types.Object{
			ID:      types.SystemStateObjectID,
			Version: 3,
			Kind:    types.ObjectStruct,
			Owner:   types.NewSharedOwner(types.ObjectStartVersion),
			Payload: EncodeSystemState(&SystemState{StorageFund: 100}),
		}
		victim := testCoin(0x0b, 4, 0, 80)
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(state, victim), nil, types.TransactionDigest{0x01})
		s.DeleteObject(victim.ID)
		s.ConserveUnmeteredStorageRebate(80)

		// 系统状态的历史返还为0, 回收额80全部归并
		assert.NoError(t, s.CheckConservation(types.GasCostSummary{}))

		obj, err := s.ReadObject(types.SystemStateObjectID)
		require.NoError(t, err)
		assert.Equal(t, uint64(180), DecodeSystemState(obj.Payload).StorageFund)
	})
}

// TestCheckConservationExpensive 验证逐对象求和的昂贵守恒检查
func TestCheckConservationExpensive(t *testing.T) {
	cfg := testConfig()

	// 流入 = 1000 + 50 = 1050; 流出 = 922 + 押存64 = 986
	// 等式: 1050 == 986 + 计算费64
	newBalancedStore := func() (*TemporaryStore, types.GasCostSummary) {
		coin := testCoin(0x0a, 2, 1000, 50)
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin), nil, types.TransactionDigest{0x01})
		mutated := coin.Clone()
		mutated.Balance = 922
		s.MutateInput(mutated)
		summary := types.GasCostSummary{
			ComputationCost: 64,
			StorageCost:     64,
			StorageRebate:   50,
		}
		return s, summary
	}

	t.Run("守恒场景通过", func(t *testing.T) {
		s, summary := newBalancedStore()
		assert.NoError(t, s.CheckConservationExpensive(summary, nil, zeroResolver{}))
	})

	t.Run("凭空铸造应报错", func(t *testing.T) {
		s, summary := newBalancedStore()
		s.CreateObject(testCoin(0x0c, 0, 777, 0))
		summary.StorageCost += 64
		summary.ComputationCost -= 64 // 保持廉价等式口径, 只破坏资产总量
		assert.Error(t, s.CheckConservationExpensive(summary, nil, zeroResolver{}))
	})

	t.Run("纪元铸造额修正等式", func(t *testing.T) {
		s, summary := newBalancedStore()
		minted := &types.AdvanceEpochGasSummary{StorageCharge: 10, ComputationCharge: 5}
		// 无对应流出, 铸造额使等式失衡
		assert.Error(t, s.CheckConservationExpensive(summary, minted, zeroResolver{}))
	})

	t.Run("布局解析失败应报错", func(t *testing.T) {
		coin := testCoin(0x0a, 2, 1000, 0)
		widget := &types.Object{
			ID:      testID(0x0d),
			Version: 2,
			Kind:    types.ObjectStruct,
			Owner:   types.NewAddressOwner(types.Address{0x01}),
		}
		s := NewTemporaryStore(cfg, emptyBacking{}, inputsOf(coin, widget), nil, types.TransactionDigest{0x01})
		s.MutateInput(widget.Clone())
		assert.Error(t, s.CheckConservationExpensive(types.GasCostSummary{}, nil, errResolver{}))
	})
}
