// Package gas 提供参考燃料计量器实现
//
// 计量器被一次执行调用独占持有。计费口径刻意简单：输入读取按
// 字节计算费，写入按字节存储费，删除/改写按比例返还历史存储费。
// 执行核心只依赖计量器的操作序列，不依赖这里的具体算术。
package gas

import (
	"fmt"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

// Charger 参考燃料计量器
type Charger struct {
	cfg *types.ProtocolConfig

	unmetered bool
	payment   []types.ObjectRef
	gasCoin   *types.ObjectRef
	price     uint64
	budget    uint64

	computationCost         uint64
	storageCost             uint64
	storageRebate           uint64
	nonRefundableStorageFee uint64

	// unmeteredStorageRebate 系统交易收集到的历史返还，
	// 需要归并进系统状态对象以维持守恒
	unmeteredStorageRebate uint64
}

var _ executioniface.GasCharger = (*Charger)(nil)

// NewCharger 创建计量型计量器（用户交易）
func NewCharger(cfg *types.ProtocolConfig, gasData types.GasData) *Charger {
	c := &Charger{
		cfg:     cfg,
		payment: gasData.Payment,
		price:   gasData.Price,
		budget:  gasData.Budget,
	}
	if len(gasData.Payment) > 0 {
		ref := gasData.Payment[0]
		c.gasCoin = &ref
	}
	return c
}

// NewUnmeteredCharger 创建未计量计量器（系统交易）
func NewUnmeteredCharger(cfg *types.ProtocolConfig) *Charger {
	return &Charger{cfg: cfg, unmetered: true}
}

// SmashGas 合并多枚支付币为一枚燃料币
//
// 余额全部并入首枚，其余删除；被删币的历史存储返还经由
// 临时存储的删除簿记自然回收。
func (c *Charger) SmashGas(store executioniface.TemporaryStore) {
	if c.unmetered || len(c.payment) <= 1 {
		return
	}
	primary, err := store.ReadObject(c.payment[0].ID)
	if err != nil || primary == nil {
		panic(types.NewFatalError("燃料币 %s 不可读: %v", c.payment[0].ID, err))
	}
	merged := primary.Clone()
	for _, ref := range c.payment[1:] {
		coin, err := store.ReadObject(ref.ID)
		if err != nil || coin == nil {
			panic(types.NewFatalError("燃料币 %s 不可读: %v", ref.ID, err))
		}
		merged.Balance += coin.Balance
		store.DeleteObject(ref.ID)
	}
	store.MutateInput(merged)
}

// NoCharges 尚未发生任何计费
func (c *Charger) NoCharges() bool {
	return c.computationCost == 0 &&
		c.storageCost == 0 &&
		c.storageRebate == 0 &&
		c.nonRefundableStorageFee == 0
}

// ChargeInputObjects 对输入对象的读取计费
func (c *Charger) ChargeInputObjects(store executioniface.TemporaryStore) error {
	if c.unmetered {
		return nil
	}
	var readBytes uint64
	for _, obj := range store.InputObjects() {
		readBytes += obj.SizeEstimate()
	}
	c.computationCost += readBytes * c.cfg.GasReadCostPerByte
	if c.computationCost > c.budget {
		return types.NewExecutionError(types.ErrInsufficientGas,
			fmt.Errorf("输入读取费 %d 超过预算 %d", c.computationCost, c.budget))
	}
	return nil
}

// ChargeGas 最终计费并产出费用汇总
//
// 未计量交易只收集历史返还，费用汇总恒为零；计量交易先把燃料币
// 纳入写集，再按写集大小计存储费、按回收额计返还，预算耗尽时
// 把*result改写为失败但计费照常落账。
func (c *Charger) ChargeGas(store executioniface.TemporaryStore, result *error) types.GasCostSummary {
	if c.unmetered {
		c.unmeteredStorageRebate = store.CollectedStorageRebate()
		return types.GasCostSummary{}
	}

	coin, err := store.ReadObject(c.gasCoin.ID)
	if err != nil || coin == nil {
		panic(types.NewFatalError("计费阶段燃料币 %s 不可读: %v", c.gasCoin.ID, err))
	}
	mutated := coin.Clone()
	store.MutateInput(mutated)

	c.storageCost = store.WrittenObjectsSize() * c.cfg.GasWriteCostPerByte
	collected := store.CollectedStorageRebate()
	c.storageRebate = collected * c.cfg.StorageRebateRate / 10000
	c.nonRefundableStorageFee = collected - c.storageRebate

	if c.computationCost+c.storageCost > c.budget && *result == nil {
		*result = types.NewExecutionError(types.ErrInsufficientGas,
			fmt.Errorf("总费用 %d 超过预算 %d", c.computationCost+c.storageCost, c.budget))
	}

	summary := c.currentSummary()
	net := summary.NetGasUsage()
	switch {
	case net >= 0 && uint64(net) >= mutated.Balance:
		mutated.Balance = 0
	case net >= 0:
		mutated.Balance -= uint64(net)
	default:
		mutated.Balance += uint64(-net)
	}
	store.MutateInput(mutated)
	return summary
}

// Reset 清零全部计费（守恒恢复路径使用，写集已由调用方丢弃）
func (c *Charger) Reset(store executioniface.TemporaryStore) {
	_ = store
	c.computationCost = 0
	c.storageCost = 0
	c.storageRebate = 0
	c.nonRefundableStorageFee = 0
	c.unmeteredStorageRebate = 0
}

// ResetStorageCostAndRebate 仅清零存储费与返还
func (c *Charger) ResetStorageCostAndRebate() {
	c.storageCost = 0
	c.storageRebate = 0
	c.nonRefundableStorageFee = 0
}

// UnmeteredStorageRebate 系统交易累积的未计量存储返还
func (c *Charger) UnmeteredStorageRebate() uint64 {
	return c.unmeteredStorageRebate
}

// IsUnmetered 是否为未计量交易
func (c *Charger) IsUnmetered() bool {
	return c.unmetered
}

// GasCoin 燃料币引用
func (c *Charger) GasCoin() *types.ObjectRef {
	return c.gasCoin
}

// GasPrice 燃料单价
func (c *Charger) GasPrice() uint64 {
	return c.price
}

// Summary 计量器状态摘要（用于日志）
func (c *Charger) Summary() string {
	if c.unmetered {
		return fmt.Sprintf("unmetered{rebate=%d}", c.unmeteredStorageRebate)
	}
	return fmt.Sprintf("metered{comp=%d storage=%d rebate=%d nonRefundable=%d budget=%d}",
		c.computationCost, c.storageCost, c.storageRebate, c.nonRefundableStorageFee, c.budget)
}

func (c *Charger) currentSummary() types.GasCostSummary {
	return types.GasCostSummary{
		ComputationCost:         c.computationCost,
		StorageCost:             c.storageCost,
		StorageRebate:           c.storageRebate,
		NonRefundableStorageFee: c.nonRefundableStorageFee,
	}
}
