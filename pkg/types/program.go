// Package types 提供执行核心的公共类型定义
package types

// ==================== 程序表示 ====================
// 交易携带的程序由外部VM解释执行；执行核心只负责构造系统程序
// 并把程序原样递交给VM。这里的表示刻意保持数据化，不含任何行为。

// ArgumentKind 命令参数的引用类别
type ArgumentKind uint8

const (
	// ArgumentInput 引用程序输入表中的第Index项
	ArgumentInput ArgumentKind = iota
	// ArgumentResult 引用第Index条命令的执行结果
	ArgumentResult
	// ArgumentGasCoin 引用本交易的燃料币
	ArgumentGasCoin
)

// Argument 命令参数引用
type Argument struct {
	Kind  ArgumentKind
	Index uint16
}

// InputArgument 构造输入引用
func InputArgument(i uint16) Argument {
	return Argument{Kind: ArgumentInput, Index: i}
}

// ResultArgument 构造结果引用
func ResultArgument(i uint16) Argument {
	return Argument{Kind: ArgumentResult, Index: i}
}

// ==================== 调用参数 ====================

// ObjectArgKind 对象参数类别
type ObjectArgKind uint8

const (
	// ObjectArgImmOrOwned 不可变或独占对象
	ObjectArgImmOrOwned ObjectArgKind = iota
	// ObjectArgShared 共享对象
	ObjectArgShared
	// ObjectArgReceiving 接收中的对象
	ObjectArgReceiving
)

// ObjectArg 对象类调用参数
type ObjectArg struct {
	Kind ObjectArgKind
	ID   ObjectID

	// Version 当Kind为ImmOrOwned/Receiving时的对象版本
	Version SequenceNumber

	// InitialSharedVersion / Mutable 当Kind为Shared时有效
	InitialSharedVersion SequenceNumber
	Mutable              bool
}

// SharedObjectArg 构造可变共享对象参数
func SharedObjectArg(id ObjectID, initialVersion SequenceNumber, mutable bool) ObjectArg {
	return ObjectArg{
		Kind:                 ObjectArgShared,
		ID:                   id,
		InitialSharedVersion: initialVersion,
		Mutable:              mutable,
	}
}

// CallArg 调用参数：纯字节参数或对象参数（二选一）
type CallArg struct {
	// Pure 确定性序列化后的纯参数（与Object互斥）
	Pure []byte

	// Object 对象参数
	Object *ObjectArg
}

// PureCallArg 构造纯参数
func PureCallArg(b []byte) CallArg {
	return CallArg{Pure: b}
}

// ObjectCallArg 构造对象参数
func ObjectCallArg(arg ObjectArg) CallArg {
	return CallArg{Object: &arg}
}

// ==================== 命令 ====================

// CommandKind 命令类别
type CommandKind uint8

const (
	// CommandMoveCall 函数调用命令
	CommandMoveCall CommandKind = iota
	// CommandPublish 包发布命令
	CommandPublish
)

// MoveCall 函数调用命令体
type MoveCall struct {
	Package  ObjectID
	Module   string
	Function string
	TypeArgs []string
	Args     []Argument
}

// PublishModules 包发布命令体
type PublishModules struct {
	Modules      [][]byte
	Dependencies []ObjectID
}

// Command 程序命令
type Command struct {
	Kind     CommandKind
	MoveCall *MoveCall
	Publish  *PublishModules
}

// Program 可编程交易的程序：输入表加命令序列
type Program struct {
	Inputs   []CallArg
	Commands []Command
}
