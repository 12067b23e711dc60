package store

import (
	"sort"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	"github.com/orbchain/v1/pkg/types"
)

// UpdateObjectVersionAndPrevTx 为写集统一赋版本与前驱交易
//
// 包对象有独立的版本线：普通包保持自身版本，原地升级的包加回
// 预先回退的一个版本；其余对象统一落定为lamport版本。
func (s *TemporaryStore) UpdateObjectVersionAndPrevTx() {
	for id, obj := range s.written {
		s.finalizeVersion(id, obj)
		obj.PreviousTransaction = s.digest
	}
}

// finalizeVersion 落定单个写入对象的版本
func (s *TemporaryStore) finalizeVersion(id types.ObjectID, obj *types.Object) {
	if _, upgraded := s.upgradedPkgs[id]; upgraded {
		obj.Version++
		return
	}
	if obj.IsPackage() {
		return
	}
	obj.Version = s.lamport
}

// IntoInner 消费临时存储，产出变更集
func (s *TemporaryStore) IntoInner() *types.InnerTemporaryStore {
	s.UpdateObjectVersionAndPrevTx()
	inner := &types.InnerTemporaryStore{
		InputObjects:   s.inputs,
		WrittenObjects: s.written,
		DeletedObjects: s.deleted,
		LamportVersion: s.lamport,
	}
	s.written = nil
	s.deleted = nil
	return inner
}

// IntoEffects 消费临时存储，组装最终效果
//
// 写集统一落定为lamport版本并押上新的存储返还；依赖集合剔除
// 创世标记后按字节序排序，保证效果全网逐字节一致。
func (s *TemporaryStore) IntoEffects(
	sharedRefs []types.ObjectRef,
	digest types.TransactionDigest,
	deps map[types.TransactionDigest]struct{},
	summary types.GasCostSummary,
	status types.ExecutionStatus,
	charger executioniface.GasCharger,
	epoch types.EpochID,
) (*types.InnerTemporaryStore, *types.TransactionEffects) {
	metered := !charger.IsUnmetered()
	for id, obj := range s.written {
		s.finalizeVersion(id, obj)
		obj.PreviousTransaction = digest
		if metered {
			obj.StorageRebate = obj.SizeEstimate() * s.cfg.GasWriteCostPerByte
		} else {
			obj.StorageRebate = 0
		}
	}

	var created, mutated, deleted []types.ObjectRef
	for id, obj := range s.written {
		ref := obj.Reference()
		if _, wasInput := s.inputs[id]; wasInput {
			mutated = append(mutated, ref)
		} else {
			created = append(created, ref)
		}
	}
	for id := range s.deleted {
		deleted = append(deleted, types.ObjectRef{ID: id, Version: s.lamport})
	}
	types.SortObjectRefs(created)
	types.SortObjectRefs(mutated)
	types.SortObjectRefs(deleted)

	var gasObject types.ObjectRef
	if ref := charger.GasCoin(); ref != nil {
		gasObject = types.ObjectRef{ID: ref.ID, Version: s.lamport}
	}

	effects := &types.TransactionEffects{
		TransactionDigest: digest,
		Epoch:             epoch,
		Status:            status,
		GasUsed:           summary,
		Created:           created,
		Mutated:           mutated,
		Deleted:           deleted,
		SharedObjects:     sharedRefs,
		GasObject:         gasObject,
		Dependencies:      sortedDependencies(deps),
	}

	inner := &types.InnerTemporaryStore{
		InputObjects:   s.inputs,
		WrittenObjects: s.written,
		DeletedObjects: s.deleted,
		LamportVersion: s.lamport,
	}
	s.written = nil
	s.deleted = nil
	return inner, effects
}

// sortedDependencies 剔除创世标记后按字节序输出依赖摘要
func sortedDependencies(deps map[types.TransactionDigest]struct{}) []types.TransactionDigest {
	marker := types.GenesisMarkerDigest()
	out := make([]types.TransactionDigest, 0, len(deps))
	for d := range deps {
		if d == marker {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out
}
