// Package types 提供执行核心的公共类型定义
package types

// ==================== 所有权模型 ====================

// OwnerKind 对象所有权类别
type OwnerKind uint8

const (
	// OwnerAddress 地址独占所有
	OwnerAddress OwnerKind = iota
	// OwnerObject 被其他对象持有（动态字段）
	OwnerObject
	// OwnerShared 共享对象，多交易可变访问，需显式版本排序
	OwnerShared
	// OwnerImmutable 不可变对象（如已发布的包）
	OwnerImmutable
)

// Owner 对象所有者描述
type Owner struct {
	Kind OwnerKind

	// Address 当Kind为OwnerAddress/OwnerObject时有效
	Address Address

	// InitialSharedVersion 当Kind为OwnerShared时有效
	InitialSharedVersion SequenceNumber
}

// NewAddressOwner 构造地址所有者
func NewAddressOwner(addr Address) Owner {
	return Owner{Kind: OwnerAddress, Address: addr}
}

// NewSharedOwner 构造共享所有者
func NewSharedOwner(initialVersion SequenceNumber) Owner {
	return Owner{Kind: OwnerShared, InitialSharedVersion: initialVersion}
}

// NewImmutableOwner 构造不可变所有者
func NewImmutableOwner() Owner {
	return Owner{Kind: OwnerImmutable}
}

// ==================== 对象模型 ====================

// ObjectKind 对象数据类别
type ObjectKind uint8

const (
	// ObjectStruct 普通结构对象
	ObjectStruct ObjectKind = iota
	// ObjectCoin 原生资产币对象，Balance字段有效
	ObjectCoin
	// ObjectPackage 代码包对象，Modules/Dependencies字段有效
	ObjectPackage
)

// Object 链上对象
//
// 执行核心中对象仅是被缓冲读写的数据载体；字节码语义由外部VM负责。
// Balance只对币对象有意义，是守恒检查的直接输入；
// 非币对象内嵌的资产余额需要VM解析类型布局后求和（昂贵检查路径）。
type Object struct {
	ID      ObjectID
	Version SequenceNumber
	Kind    ObjectKind
	Owner   Owner

	// TypeTag 对象类型标签（如 "0x2::coin::Coin<0x2::orb::ORB>"）
	TypeTag string

	// Balance 原生资产数量（仅币对象）
	Balance uint64

	// Payload 对象内容的序列化负载（执行核心不解释）
	Payload []byte

	// StorageRebate 该对象占用存储时预缴、删除时返还的费用
	StorageRebate uint64

	// PreviousTransaction 最后一次写该对象的交易摘要
	PreviousTransaction TransactionDigest

	// Modules / Dependencies 仅包对象有效
	Modules      [][]byte
	Dependencies []ObjectID
}

// Reference 返回对象引用（ID+版本）
func (o *Object) Reference() ObjectRef {
	return ObjectRef{ID: o.ID, Version: o.Version}
}

// IsPackage 判断是否为包对象
func (o *Object) IsPackage() bool {
	return o.Kind == ObjectPackage
}

// IsShared 判断是否为共享对象
func (o *Object) IsShared() bool {
	return o.Owner.Kind == OwnerShared
}

// Clone 深拷贝对象（写缓冲需要独立副本）
func (o *Object) Clone() *Object {
	dup := *o
	dup.Payload = append([]byte(nil), o.Payload...)
	if o.Modules != nil {
		dup.Modules = make([][]byte, len(o.Modules))
		for i, m := range o.Modules {
			dup.Modules[i] = append([]byte(nil), m...)
		}
	}
	dup.Dependencies = append([]ObjectID(nil), o.Dependencies...)
	return &dup
}

// SizeEstimate 对象序列化大小估计（存储计费与限制检查共用口径）
func (o *Object) SizeEstimate() uint64 {
	size := uint64(64) + uint64(len(o.Payload))
	for _, m := range o.Modules {
		size += uint64(len(m))
	}
	return size
}

// DecrementPackageVersion 将包版本减一
//
// 系统包原地升级前先回退一个版本，使存储层在组装效果时
// 观察到恰好加一的版本增量。非包对象调用属于内部逻辑错误。
func (o *Object) DecrementPackageVersion() {
	if o.Kind != ObjectPackage {
		panic(NewFatalError("对非包对象执行包版本回退: %s", o.ID))
	}
	o.Version--
}

// NewSystemPackage 构造系统包对象
func NewSystemPackage(id ObjectID, version SequenceNumber, modules [][]byte, deps []ObjectID, prevTx TransactionDigest) *Object {
	return &Object{
		ID:                  id,
		Version:             version,
		Kind:                ObjectPackage,
		Owner:               NewImmutableOwner(),
		Modules:             modules,
		Dependencies:        deps,
		PreviousTransaction: prevTx,
	}
}

// ObjectRef 对象引用
type ObjectRef struct {
	ID      ObjectID
	Version SequenceNumber
}

// ==================== 内置系统对象地址 ====================

// 框架与系统对象使用保留的低位地址，创世时写入。
var (
	// FrameworkPackageID 基础框架包（余额/时钟/认证器等模块所在）
	FrameworkPackageID = ObjectIDFromUint64(0x2)

	// SystemPackageID 系统包（纪元推进逻辑所在）
	SystemPackageID = ObjectIDFromUint64(0x3)

	// SystemStateObjectID 系统状态共享对象
	SystemStateObjectID = ObjectIDFromUint64(0x5)

	// ClockObjectID 共享时钟对象
	ClockObjectID = ObjectIDFromUint64(0x6)

	// AuthenticatorStateObjectID 认证器状态共享对象
	AuthenticatorStateObjectID = ObjectIDFromUint64(0x7)

	// RandomnessStateObjectID 随机数状态共享对象
	RandomnessStateObjectID = ObjectIDFromUint64(0x8)

	// BridgeObjectID 跨链桥共享对象
	BridgeObjectID = ObjectIDFromUint64(0x9)

	// DenyListObjectID 拒绝名单共享对象
	DenyListObjectID = ObjectIDFromUint64(0x403)

	// AccumulatorRootObjectID 累加器根共享对象
	AccumulatorRootObjectID = ObjectIDFromUint64(0xacc)
)
