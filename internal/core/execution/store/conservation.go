package store

import (
	"fmt"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

// CheckConservation 廉价守恒检查
//
// 只核对簿记算术，不解析对象负载：
//  1. 申报的存储费必须等于按写集大小计出的存储费
//     （未计量交易的费用汇总恒为零，跳过该项）；
//  2. 回收的历史返还必须恰好拆成申报返还、不可退还费
//     与已归并进存储基金的未计量返还三部分。
func (s *TemporaryStore) CheckConservation(summary types.GasCostSummary) error {
	if !isZeroSummary(summary) {
		expected := s.WrittenObjectsSize() * s.cfg.GasWriteCostPerByte
		if summary.StorageCost != expected {
			return fmt.Errorf("存储费簿记不自洽: 申报 %d, 按写集应为 %d", summary.StorageCost, expected)
		}
	}
	collected := s.CollectedStorageRebate()
	accounted := summary.StorageRebate + summary.NonRefundableStorageFee + s.conservedUnmeteredRebate
	if collected != accounted {
		return fmt.Errorf("存储返还簿记不自洽: 回收 %d, 落账 %d", collected, accounted)
	}
	return nil
}

// CheckConservationExpensive 昂贵守恒检查
//
// 对象承载的原生资产由两部分构成：币余额（或经布局解析得到的
// 内嵌余额）加上押在对象上的存储返还。被触碰输入的流入总量加上
// 纪元推进申报的铸造额，必须等于写集的流出总量加上烧毁的计算费
// 与沉淀的不可退还费。
func (s *TemporaryStore) CheckConservationExpensive(summary types.GasCostSummary, advanceEpoch *types.AdvanceEpochGasSummary, resolver executioniface.LayoutResolver) error {
	var in, out uint64

	for id, obj := range s.inputs {
		_, written := s.written[id]
		_, deleted := s.deleted[id]
		if !written && !deleted {
			continue
		}
		amount, err := resolveBalance(obj, resolver)
		if err != nil {
			return err
		}
		in += amount + obj.StorageRebate
	}
	for _, obj := range s.written {
		amount, err := resolveBalance(obj, resolver)
		if err != nil {
			return err
		}
		out += amount + s.finalStorageRebate(obj, summary)
	}

	var minted uint64
	if advanceEpoch != nil {
		minted = advanceEpoch.StorageCharge + advanceEpoch.ComputationCharge
	}

	lhs := in + minted
	rhs := out + summary.ComputationCost + summary.NonRefundableStorageFee
	if lhs != rhs {
		return fmt.Errorf("原生资产不守恒: 流入+铸造=%d, 流出+烧毁+沉淀=%d", lhs, rhs)
	}
	return nil
}

// finalStorageRebate 写入对象落定后将携带的存储返还
//
// 计量交易按写入大小押存储费；未计量交易不押，历史返还
// 经ConserveUnmeteredStorageRebate归并进存储基金。
func (s *TemporaryStore) finalStorageRebate(obj *types.Object, summary types.GasCostSummary) uint64 {
	if isZeroSummary(summary) {
		return 0
	}
	return obj.SizeEstimate() * s.cfg.GasWriteCostPerByte
}

func isZeroSummary(summary types.GasCostSummary) bool {
	return summary == (types.GasCostSummary{})
}

// resolveBalance 解析单个对象承载的原生资产数量
func resolveBalance(obj *types.Object, resolver executioniface.LayoutResolver) (uint64, error) {
	if obj.Kind == types.ObjectCoin {
		return obj.Balance, nil
	}
	amount, err := resolver.ResolveBalance(obj)
	if err != nil {
		return 0, fmt.Errorf("解析对象 %s 类型布局失败: %w", obj.ID, err)
	}
	return amount, nil
}
