// Package types 提供执行核心的公共类型定义
package types

import (
	"fmt"
	"strings"
)

// ==================== 执行错误 ====================

// ExecutionErrorKind 交易级失败的封闭错误类别集合
//
// 这些错误属于预期内失败：总是产生合法的效果集并通过
// ExecutionStatus上报，不会作为致命错误向上传播。
type ExecutionErrorKind string

const (
	// ErrInvariantViolation VM内部不变量被破坏（记录后仍作为交易失败上报）
	ErrInvariantViolation ExecutionErrorKind = "invariant_violation"

	// ErrVMVerification 程序反序列化或验证失败
	ErrVMVerification ExecutionErrorKind = "vm_verification_or_deserialization"

	// ErrMoveAbort 程序主动中止
	ErrMoveAbort ExecutionErrorKind = "move_abort"

	// ErrCertificateDenied 交易摘要命中拒绝集合
	ErrCertificateDenied ExecutionErrorKind = "certificate_denied"

	// ErrInputObjectDeleted 输入对象已被先前共识流删除
	ErrInputObjectDeleted ExecutionErrorKind = "input_object_deleted"

	// ErrCongestionCancelled 因共享对象拥塞被取消
	ErrCongestionCancelled ExecutionErrorKind = "cancelled_due_to_congestion"

	// ErrRandomnessUnavailable 因随机数不可用被取消
	ErrRandomnessUnavailable ExecutionErrorKind = "cancelled_due_to_randomness_unavailable"

	// ErrEffectsTooLarge 预估效果大小越过硬限制
	ErrEffectsTooLarge ExecutionErrorKind = "effects_too_large"

	// ErrWrittenObjectsTooLarge 写入对象总大小越过硬限制
	ErrWrittenObjectsTooLarge ExecutionErrorKind = "written_objects_too_large"

	// ErrPublishUpgrade 包发布/升级失败
	ErrPublishUpgrade ExecutionErrorKind = "publish_upgrade_error"

	// ErrInsufficientGas 燃料预算耗尽
	ErrInsufficientGas ExecutionErrorKind = "insufficient_gas"
)

// CongestedObjects 引发拥塞取消的对象集合
type CongestedObjects []ObjectID

func (c CongestedObjects) String() string {
	parts := make([]string, 0, len(c))
	for _, id := range c {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}

// ExecutionError 交易级执行错误
//
// Command记录出错的命令下标（无法定位时为nil）；
// CurrentSize/MaxSize仅对限制类错误有效。
type ExecutionError struct {
	Kind                 ExecutionErrorKind
	Command              *int
	Congested            CongestedObjects
	CurrentSize, MaxSize uint64

	cause error
}

// NewExecutionError 构造执行错误
func NewExecutionError(kind ExecutionErrorKind, cause error) *ExecutionError {
	return &ExecutionError{Kind: kind, cause: cause}
}

// NewLimitExceededError 构造限制越界错误，携带当前值与上限
func NewLimitExceededError(kind ExecutionErrorKind, current, max uint64, cause error) *ExecutionError {
	return &ExecutionError{Kind: kind, CurrentSize: current, MaxSize: max, cause: cause}
}

// NewCongestionError 构造拥塞取消错误
func NewCongestionError(congested CongestedObjects) *ExecutionError {
	return &ExecutionError{Kind: ErrCongestionCancelled, Congested: congested}
}

// WithCommand 绑定出错命令下标
func (e *ExecutionError) WithCommand(i int) *ExecutionError {
	e.Command = &i
	return e
}

func (e *ExecutionError) Error() string {
	head := fmt.Sprintf("执行失败(%s)", e.Kind)
	if e.Command != nil {
		head = fmt.Sprintf("执行失败(%s, 命令%d)", e.Kind, *e.Command)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", head, e.cause)
	}
	return head
}

// Unwrap 返回底层原因
func (e *ExecutionError) Unwrap() error {
	return e.cause
}

// ==================== 执行状态 ====================

// ExecutionStatus 交易的最终执行状态
//
// 不变量：每条执行路径恰好产生一个状态；失败同样要计费并推进对象版本。
type ExecutionStatus struct {
	Success bool
	Error   *ExecutionError
}

// SuccessStatus 构造成功状态
func SuccessStatus() ExecutionStatus {
	return ExecutionStatus{Success: true}
}

// FailureStatus 由执行错误构造失败状态
func FailureStatus(err *ExecutionError) ExecutionStatus {
	return ExecutionStatus{Success: false, Error: err}
}

func (s ExecutionStatus) String() string {
	if s.Success {
		return "success"
	}
	if s.Error != nil {
		return fmt.Sprintf("failure(%s)", s.Error.Kind)
	}
	return "failure"
}

// ==================== 致命错误 ====================

// FatalError 不变量级致命错误
//
// 契约：该类错误表示协议实现自身不一致（守恒恢复后仍失败、
// 强制系统调用失败、纪元尾交易排序非法等），执行核心以panic
// 形式抛出且绝不恢复，宿主进程据此失败停机。安全优先于可用性。
type FatalError struct {
	Msg string
}

// NewFatalError 构造致命错误
func NewFatalError(format string, args ...interface{}) *FatalError {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}

func (e *FatalError) Error() string {
	return "致命不变量违规: " + e.Msg
}
