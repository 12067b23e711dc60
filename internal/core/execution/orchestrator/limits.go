package orchestrator

import (
	"fmt"

	"github.com/orbchain/v1/internal/core/execution/store"
	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

// threshold 限制检查的三态结论
type threshold int

const (
	thresholdNone threshold = iota
	thresholdSoft
	thresholdHard
)

// checkLimit 双档阈值判定（soft为0表示不设软档，hard为0表示不设限）
func checkLimit(value, soft, hard uint64) threshold {
	switch {
	case hard > 0 && value > hard:
		return thresholdHard
	case soft > 0 && value > soft:
		return thresholdSoft
	default:
		return thresholdNone
	}
}

// limitsFor 按计量类别选取软硬档
//
// 计量交易只有硬档（普通限制）；未计量交易把普通限制降为软档
// 告警，硬档换用系统交易限制。
func limitsFor(charger executioniface.GasCharger, normal, system uint64) (soft, hard uint64) {
	if charger.IsUnmetered() {
		return normal, system
	}
	return 0, normal
}

// checkMeterLimit 核对预估效果大小
func (s *Service) checkMeterLimit(tmpStore *store.TemporaryStore, charger executioniface.GasCharger) error {
	soft, hard := limitsFor(charger,
		s.cfg.MaxSerializedTxEffectsSizeBytes,
		s.cfg.MaxSerializedTxEffectsSizeBytesSystemTx)
	estimate := tmpStore.EstimateEffectsSizeUpperbound()

	switch checkLimit(estimate, soft, hard) {
	case thresholdHard:
		return types.NewLimitExceededError(types.ErrEffectsTooLarge, estimate, hard,
			fmt.Errorf("预估效果大小 %d 超过上限 %d", estimate, hard))
	case thresholdSoft:
		s.metrics.IncExcessiveEstimatedEffectsSize()
		s.logger.Warnf("预估效果大小 %d 越过软限制 %d", estimate, soft)
	}
	return nil
}

// checkWrittenObjectsLimit 核对写入对象总大小
func (s *Service) checkWrittenObjectsLimit(tmpStore *store.TemporaryStore, charger executioniface.GasCharger) error {
	soft, hard := limitsFor(charger,
		s.cfg.MaxSizeWrittenObjects,
		s.cfg.MaxSizeWrittenObjectsSystemTx)
	size := tmpStore.WrittenObjectsSize()

	switch checkLimit(size, soft, hard) {
	case thresholdHard:
		return types.NewLimitExceededError(types.ErrWrittenObjectsTooLarge, size, hard,
			fmt.Errorf("写入对象总大小 %d 超过上限 %d", size, hard))
	case thresholdSoft:
		s.metrics.IncExcessiveWrittenObjectsSize()
		s.logger.Warnf("写入对象总大小 %d 越过软限制 %d", size, soft)
	}
	return nil
}
