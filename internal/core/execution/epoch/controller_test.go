package epoch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbchain/v1/internal/core/execution/gas"
	"github.com/orbchain/v1/internal/core/execution/store"
	"github.com/orbchain/v1/internal/core/execution/sysprogram"
	"github.com/orbchain/v1/internal/core/execution/testutil"
	loginfra "github.com/orbchain/v1/internal/core/infrastructure/log"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

func testConfig() *types.ProtocolConfig {
	return &types.ProtocolConfig{
		SimpleConservationChecks:        true,
		AdvanceEpochStartTimeInSafeMode: true,
		FreshVMOnFrameworkUpgrade:       true,
		StorageFundReinvestRate:         500,
		RewardSlashingRate:              10000,
		GasWriteCostPerByte:             1,
		StorageRebateRate:               10000,
	}
}

func newFixture(cfg *types.ProtocolConfig) (*Controller, *testutil.FakeVMFactory, *testutil.Metrics) {
	metrics := &testutil.Metrics{}
	factory := &testutil.FakeVMFactory{}
	ctrl := NewController(cfg, loginfra.GetGlobalLogger(), metrics, factory)
	return ctrl, factory, metrics
}

func newStateStore(cfg *types.ProtocolConfig) *store.TemporaryStore {
	state := testutil.SystemStateObject(4, 8, 1000, 111)
	inputs := testutil.NewInputBuilder().Mutable(state).Build()
	return store.NewTemporaryStore(cfg, testutil.NewMemStore(), inputs, nil, testutil.Digest(0x01))
}

func changeEpochTx() types.ChangeEpoch {
	return types.ChangeEpoch{
		Epoch:                 5,
		ProtocolVersion:       9,
		StorageCharge:         100,
		ComputationCharge:     40,
		StorageRebate:         30,
		EpochStartTimestampMS: 999,
	}
}

// TestAdvanceEpochNormalPath 验证常规推进只运行一个纪元程序
func TestAdvanceEpochNormalPath(t *testing.T) {
	cfg := testConfig()
	ctrl, _, metrics := newFixture(cfg)
	vm := &testutil.FakeVM{}
	s := newStateStore(cfg)
	charger := gas.NewUnmeteredCharger(cfg)
	txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

	ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, changeEpochTx(), nil, nil)

	require.Len(t, vm.Programs, 1)
	// 纪元程序形态: 两笔奖励铸造 + 推进 + 返还销毁
	assert.Len(t, vm.Programs[0].Commands, 4)
	assert.Zero(t, metrics.SafeModeEpochAdvance)
}

// TestAdvanceEpochCarriesAccumulatedActions 验证累积的维护动作与推进
// 调用组成同一个程序递交
func TestAdvanceEpochCarriesAccumulatedActions(t *testing.T) {
	cfg := testConfig()
	ctrl, _, metrics := newFixture(cfg)
	vm := &testutil.FakeVM{}
	s := newStateStore(cfg)
	charger := gas.NewUnmeteredCharger(cfg)
	txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

	builder := sysprogram.NewProgramBuilder()
	sysprogram.AppendAuthenticatorStateCreate(builder)
	ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, changeEpochTx(), builder, nil)

	require.Len(t, vm.Programs, 1)
	// 维护动作 + 两笔奖励铸造 + 推进 + 返还销毁
	assert.Len(t, vm.Programs[0].Commands, 5)
	assert.Zero(t, metrics.SafeModeEpochAdvance)
}

// TestAdvanceEpochSafeModeFallback 验证常规推进失败后的安全模式兜底
func TestAdvanceEpochSafeModeFallback(t *testing.T) {
	t.Run("直写路径不再运行程序", func(t *testing.T) {
		cfg := testConfig()
		ctrl, _, metrics := newFixture(cfg)
		vm := &testutil.FakeVM{
			OnExecute: func(tmpStore executioniface.TemporaryStore, _ *types.TransactionContext, _ types.Program, _ types.ExecutionMode) error {
				// 先留下半截写入再失败, 验证兜底前被丢弃
				tmpStore.CreateObject(testutil.Coin(testutil.ObjectID(0x66), testutil.Address(0x02), 0, 1, 0))
				return types.NewExecutionError(types.ErrMoveAbort, errors.New("advance_epoch中止"))
			},
		}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, changeEpochTx(), nil, nil)

		require.Len(t, vm.Programs, 1)
		assert.Equal(t, 1, metrics.SafeModeEpochAdvance)

		obj, err := s.ReadObject(types.SystemStateObjectID)
		require.NoError(t, err)
		state := store.DecodeSystemState(obj.Payload)
		assert.Equal(t, uint64(5), state.Epoch)
		assert.True(t, state.SafeMode)

		// 半截写入已随DropWrites丢弃
		leaked, err := s.ReadObject(testutil.ObjectID(0x66))
		require.NoError(t, err)
		assert.Nil(t, leaked)
	})

	t.Run("程序路径运行安全模式程序", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdvanceEpochStartTimeInSafeMode = false
		ctrl, _, metrics := newFixture(cfg)

		calls := 0
		vm := &testutil.FakeVM{
			OnExecute: func(_ executioniface.TemporaryStore, _ *types.TransactionContext, _ types.Program, _ types.ExecutionMode) error {
				calls++
				if calls == 1 {
					return types.NewExecutionError(types.ErrMoveAbort, errors.New("advance_epoch中止"))
				}
				return nil
			},
		}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, changeEpochTx(), nil, nil)

		require.Len(t, vm.Programs, 2)
		// 安全模式程序形态: 两笔奖励铸造 + 安全推进
		assert.Len(t, vm.Programs[1].Commands, 3)
		assert.Equal(t, 1, metrics.SafeModeEpochAdvance)
	})

	t.Run("安全模式程序再失败即致命", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdvanceEpochStartTimeInSafeMode = false
		ctrl, _, _ := newFixture(cfg)
		vm := &testutil.FakeVM{
			OnExecute: func(_ executioniface.TemporaryStore, _ *types.TransactionContext, _ types.Program, _ types.ExecutionMode) error {
				return types.NewExecutionError(types.ErrMoveAbort, errors.New("全部中止"))
			},
		}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		require.Panics(t, func() {
			ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, changeEpochTx(), nil, nil)
		})
	})
}

// TestProcessSystemPackages 验证系统包的发布与原地升级
func TestProcessSystemPackages(t *testing.T) {
	t.Run("初始版本走发布路径", func(t *testing.T) {
		cfg := testConfig()
		ctrl, _, _ := newFixture(cfg)
		vm := &testutil.FakeVM{}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		ce := changeEpochTx()
		ce.SystemPackages = []types.SystemPackage{{
			ID:      testutil.ObjectID(0x30),
			Version: types.ObjectStartVersion,
			Modules: [][]byte{{0x01}},
		}}
		ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, ce, nil, nil)

		require.Len(t, vm.Programs, 2)
		publish := vm.Programs[1]
		require.Len(t, publish.Commands, 1)
		assert.Equal(t, types.CommandPublish, publish.Commands[0].Kind)
	})

	t.Run("后续版本走原地升级", func(t *testing.T) {
		cfg := testConfig()
		ctrl, _, _ := newFixture(cfg)
		vm := &testutil.FakeVM{}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		ce := changeEpochTx()
		ce.SystemPackages = []types.SystemPackage{{
			ID:      testutil.ObjectID(0x30),
			Version: 7,
			Modules: [][]byte{{0x02}},
		}}
		ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, ce, nil, nil)

		// 升级不经过VM
		require.Len(t, vm.Programs, 1)
		obj, err := s.ReadObject(testutil.ObjectID(0x30))
		require.NoError(t, err)
		require.NotNil(t, obj)
		assert.Equal(t, types.SequenceNumber(6), obj.Version)
	})

	t.Run("框架升级后换用全新VM", func(t *testing.T) {
		cfg := testConfig()
		ctrl, factory, _ := newFixture(cfg)
		vm := &testutil.FakeVM{}
		s := newStateStore(cfg)
		charger := gas.NewUnmeteredCharger(cfg)
		txCtx := types.NewTransactionContext(testutil.Address(0x01), testutil.Digest(0x01), 4, 111, 1, 1, 0, nil)

		ce := changeEpochTx()
		ce.SystemPackages = []types.SystemPackage{{
			ID:      types.FrameworkPackageID,
			Version: 2,
			Modules: [][]byte{{0x03}},
		}}
		ctrl.AdvanceEpoch(vm, s, testutil.NewMemStore(), charger, txCtx, ce, nil, nil)

		assert.Equal(t, 1, factory.Created)
	})
}
