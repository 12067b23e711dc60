// Package epoch 提供纪元切换控制器
//
// 纪元推进优先走常规系统程序；失败时退入安全模式兜底，
// 保证链在任何情况下都能跨过纪元边界。安全模式自身再失败
// 属于致命错误，宿主进程停机。
package epoch

import (
	"github.com/orbchain/v1/internal/core/execution/sysprogram"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// Controller 纪元切换控制器
type Controller struct {
	cfg       *types.ProtocolConfig
	logger    logiface.Logger
	metrics   metricsiface.ExecutionMetrics
	vmFactory executioniface.VMFactory
}

// NewController 创建纪元切换控制器
func NewController(cfg *types.ProtocolConfig, logger logiface.Logger, metrics metricsiface.ExecutionMetrics, vmFactory executioniface.VMFactory) *Controller {
	return &Controller{
		cfg:       cfg,
		logger:    logger.With("module", "execution.epoch"),
		metrics:   metrics,
		vmFactory: vmFactory,
	}
}

// AdvanceEpoch 推进纪元
//
// builder可携带纪元尾维护动作已累积的命令，推进调用拼在其后
// 作为同一个程序递交；传nil表示没有前置动作。组合程序失败时
// 丢弃全部写入、清零存储计费后退入安全模式：按协议配置要么由
// 临时存储直接落账，要么运行最小化的安全模式程序。随后按队列
// 处理系统包变更。
func (c *Controller) AdvanceEpoch(
	vm executioniface.VM,
	tmpStore executioniface.TemporaryStore,
	backing executioniface.BackingStore,
	charger executioniface.GasCharger,
	txCtx *types.TransactionContext,
	ce types.ChangeEpoch,
	builder *sysprogram.ProgramBuilder,
	trace *types.TraceBuilder,
) {
	if builder == nil {
		builder = sysprogram.NewProgramBuilder()
	}
	params := types.NewAdvanceEpochParams(ce, c.cfg.StorageFundReinvestRate, c.cfg.RewardSlashingRate)
	prog := sysprogram.AdvanceEpochProgram(builder, params)

	_, _, err := vm.ExecuteProgram(c.cfg, c.metrics, tmpStore, backing, txCtx, charger, prog, types.ModeSystem, trace)
	if err != nil {
		c.logger.Errorf("常规纪元推进失败, 进入安全模式: epoch=%d err=%v", ce.Epoch, err)
		c.metrics.IncSafeModeEpochAdvance()
		tmpStore.DropWrites()
		charger.ResetStorageCostAndRebate()
		c.advanceEpochSafeMode(vm, tmpStore, backing, charger, txCtx, &params, trace)
	}

	c.processSystemPackages(vm, tmpStore, backing, charger, txCtx, ce.SystemPackages, trace)
}

// advanceEpochSafeMode 安全模式推进
func (c *Controller) advanceEpochSafeMode(
	vm executioniface.VM,
	tmpStore executioniface.TemporaryStore,
	backing executioniface.BackingStore,
	charger executioniface.GasCharger,
	txCtx *types.TransactionContext,
	params *types.AdvanceEpochParams,
	trace *types.TraceBuilder,
) {
	if c.cfg.AdvanceEpochStartTimeInSafeMode {
		tmpStore.AdvanceEpochSafeMode(params)
		return
	}
	prog := sysprogram.AdvanceEpochSafeModeProgram(*params)
	if _, _, err := vm.ExecuteProgram(c.cfg, c.metrics, tmpStore, backing, txCtx, charger, prog, types.ModeSystem, trace); err != nil {
		panic(types.NewFatalError("安全模式纪元推进失败: epoch=%d err=%v", params.Epoch, err))
	}
}

// processSystemPackages 按队列处理系统包变更
//
// 初始版本走发布路径，其余版本走原地升级：新包对象先回退一个
// 版本再写入，落定效果时恰好呈现加一的版本增量。框架包升级后
// 按协议配置换用携带新原生函数的全新VM处理后续包。
func (c *Controller) processSystemPackages(
	vm executioniface.VM,
	tmpStore executioniface.TemporaryStore,
	backing executioniface.BackingStore,
	charger executioniface.GasCharger,
	txCtx *types.TransactionContext,
	packages []types.SystemPackage,
	trace *types.TraceBuilder,
) {
	for _, pkg := range packages {
		if pkg.Version == types.ObjectStartVersion {
			prog := sysprogram.SystemPackagePublishProgram(pkg)
			if _, _, err := vm.ExecuteProgram(c.cfg, c.metrics, tmpStore, backing, txCtx, charger, prog, types.ModeSystem, trace); err != nil {
				panic(types.NewFatalError("系统包 %s 发布失败: %v", pkg.ID, err))
			}
		} else {
			obj := types.NewSystemPackage(pkg.ID, pkg.Version, pkg.Modules, pkg.Dependencies, txCtx.Digest)
			obj.DecrementPackageVersion()
			tmpStore.UpgradeSystemPackage(obj)
		}

		if pkg.ID == types.FrameworkPackageID && c.cfg.FreshVMOnFrameworkUpgrade {
			fresh, err := c.vmFactory.NewVM(c.cfg)
			if err != nil {
				panic(types.NewFatalError("框架升级后构造全新VM失败: %v", err))
			}
			vm = fresh
		}
	}
}
