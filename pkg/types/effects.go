// Package types 提供执行核心的公共类型定义
package types

import (
	"sort"
	"time"
)

// ExecutionTiming 单条命令的执行耗时踪迹
type ExecutionTiming struct {
	Command  int
	Duration time.Duration

	// Aborted 该命令是否以中止结束
	Aborted bool
}

// TraceBuilder 可选的执行踪迹收集器
//
// 非nil时VM与编排器向其追加事件；对执行语义无任何影响。
type TraceBuilder struct {
	Events []string
}

// Record 追加一条踪迹事件
func (t *TraceBuilder) Record(event string) {
	if t == nil {
		return
	}
	t.Events = append(t.Events, event)
}

// TransactionEffects 交易效果
//
// 共识对效果达成一致；无论成功失败，每笔交易都产生效果。
type TransactionEffects struct {
	TransactionDigest TransactionDigest
	Epoch             EpochID
	Status            ExecutionStatus
	GasUsed           GasCostSummary

	Created []ObjectRef
	Mutated []ObjectRef
	Deleted []ObjectRef

	// SharedObjects 本交易访问的共享对象引用
	SharedObjects []ObjectRef

	// GasObject 扣费后的燃料币引用
	GasObject ObjectRef

	// Dependencies 本交易依赖的前驱交易摘要（已剔除创世标记）
	Dependencies []TransactionDigest
}

// InnerTemporaryStore 一次执行落定的对象变更集
//
// 临时存储消费自身后产出：写入集、删除集与输入快照，
// 供上层持久化与效果核对使用。
type InnerTemporaryStore struct {
	InputObjects   map[ObjectID]*Object
	WrittenObjects map[ObjectID]*Object
	DeletedObjects map[ObjectID]SequenceNumber

	// LamportVersion 本交易为所有写入对象赋的版本
	LamportVersion SequenceNumber
}

// SortObjectRefs 对象引用按ID字典序排序（确定性输出）
func SortObjectRefs(refs []ObjectRef) {
	sort.Slice(refs, func(i, j int) bool {
		return CompareObjectID(refs[i].ID, refs[j].ID) < 0
	})
}
