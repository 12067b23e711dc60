package orchestrator

import (
	"github.com/orbchain/v1/internal/core/execution/store"
	"github.com/orbchain/v1/pkg/types"
)

// checkConservation 守恒核对与有界恢复
//
// 核对失败时允许恰好一次恢复：丢弃全部写入、清零计费后重新
// 合并燃料并计费，把结果改写为不变量违规的失败，再核对一次。
// 第二次仍不守恒说明计费自身破坏守恒，致命中断。
func (s *Service) checkConservation(
	tmpStore *store.TemporaryStore,
	req Request,
	summary types.GasCostSummary,
	execErr error,
) (types.GasCostSummary, error) {
	if req.Mode.SkipConservationChecks() {
		return summary, execErr
	}

	cerr := s.runConservationChecks(tmpStore, req, summary)
	if cerr == nil {
		return summary, execErr
	}

	s.logger.Errorf("交易 %s 守恒核对失败, 执行有界恢复: %v", req.Digest, cerr)
	s.metrics.IncConservationRecovery()

	tmpStore.DropWrites()
	req.Charger.Reset(tmpStore)
	req.Charger.SmashGas(tmpStore)
	execErr = types.NewExecutionError(types.ErrInvariantViolation, cerr)
	summary = req.Charger.ChargeGas(tmpStore, &execErr)
	if req.Charger.IsUnmetered() {
		tmpStore.ConserveUnmeteredStorageRebate(req.Charger.UnmeteredStorageRebate())
	}

	if cerr = s.runConservationChecks(tmpStore, req, summary); cerr != nil {
		panic(types.NewFatalError("交易 %s 恢复后仍不守恒: %v", req.Digest, cerr))
	}
	return summary, execErr
}

// runConservationChecks 按协议配置执行廉价与昂贵两档核对
func (s *Service) runConservationChecks(tmpStore *store.TemporaryStore, req Request, summary types.GasCostSummary) error {
	if s.cfg.SimpleConservationChecks {
		if err := tmpStore.CheckConservation(summary); err != nil {
			return err
		}
	}
	if s.cfg.EnableExpensiveChecks {
		resolver := s.vm.NewLayoutResolver(tmpStore)
		advanceEpoch := types.AdvanceEpochTxGasSummary(req.Kind)
		if err := tmpStore.CheckConservationExpensive(summary, advanceEpoch, resolver); err != nil {
			return err
		}
	}
	return nil
}
