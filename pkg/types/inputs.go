// Package types 提供执行核心的公共类型定义
package types

// ==================== 交易输入 ====================

// InputEntry 单个输入对象及其调度元数据
type InputEntry struct {
	Object *Object

	// Mutable 是否以可变方式使用
	Mutable bool

	// StreamEnded 对象已被先前共识流删除（仅保留标记，无对象内容）
	StreamEnded bool

	// AssignedVersion 共识层为共享对象指派的版本；
	// 落在取消标记区间表示本交易已被预先取消。
	AssignedVersion SequenceNumber
}

// InputObjects 一笔交易经检查后的输入对象集合
//
// 由上层输入检查器构造；执行核心只做划分与标记探测。
type InputObjects struct {
	Entries []InputEntry
}

// MutableInputs 可变输入的ID集合
func (in *InputObjects) MutableInputs() map[ObjectID]bool {
	out := make(map[ObjectID]bool)
	for _, e := range in.Entries {
		if e.Mutable && e.Object != nil {
			out[e.Object.ID] = true
		}
	}
	return out
}

// FilterSharedObjects 共享对象引用列表
func (in *InputObjects) FilterSharedObjects() []ObjectRef {
	var refs []ObjectRef
	for _, e := range in.Entries {
		if e.Object != nil && e.Object.IsShared() {
			refs = append(refs, e.Object.Reference())
		}
	}
	return refs
}

// TransactionDependencies 输入对象的前驱交易摘要集合
func (in *InputObjects) TransactionDependencies() map[TransactionDigest]struct{} {
	deps := make(map[TransactionDigest]struct{})
	for _, e := range in.Entries {
		if e.Object != nil {
			deps[e.Object.PreviousTransaction] = struct{}{}
		}
	}
	return deps
}

// ContainsStreamEndedObjects 是否存在被共识流删除的输入
func (in *InputObjects) ContainsStreamEndedObjects() bool {
	for _, e := range in.Entries {
		if e.StreamEnded {
			return true
		}
	}
	return false
}

// CancelledObjects 提取取消标记
//
// 返回被标记对象的ID列表与标记值；无标记时ok为false。
// 标记值是否合法由编排器判定（非法标记属于致命错误）。
func (in *InputObjects) CancelledObjects() (ids []ObjectID, reason SequenceNumber, ok bool) {
	for _, e := range in.Entries {
		if e.AssignedVersion >= SequenceNumberRandomnessUnavailable {
			if e.Object != nil {
				ids = append(ids, e.Object.ID)
			}
			reason = e.AssignedVersion
			ok = true
		}
	}
	return ids, reason, ok
}

// ObjectMap 输入对象按ID索引的视图
func (in *InputObjects) ObjectMap() map[ObjectID]*Object {
	out := make(map[ObjectID]*Object, len(in.Entries))
	for _, e := range in.Entries {
		if e.Object != nil {
			out[e.Object.ID] = e.Object
		}
	}
	return out
}
