// Package types 提供执行核心的公共类型定义
package types

// ==================== 交易类别 ====================
// TransactionKind是封闭的变体集合：每笔交易恰好执行一个变体，
// 调度器对每个变体有独立的致命/非致命策略（见执行编排器）。

// TransactionKind 交易类别的封闭联合
type TransactionKind interface {
	isTransactionKind()

	// Name 返回类别名（用于日志）
	Name() string
}

// ---------- 纪元切换 ----------

// SystemPackage 纪元切换时排队的系统包变更
type SystemPackage struct {
	ID           ObjectID
	Version      SequenceNumber
	Modules      [][]byte
	Dependencies []ObjectID
}

// ChangeEpoch 纪元切换交易
//
// 只允许作为单独类别或EndOfEpochTransaction列表的最后一项出现，
// 其余位置属于致命的内部逻辑错误。
type ChangeEpoch struct {
	Epoch                   EpochID
	ProtocolVersion         ProtocolVersion
	StorageCharge           uint64
	ComputationCharge       uint64
	StorageRebate           uint64
	NonRefundableStorageFee uint64
	EpochStartTimestampMS   uint64

	// SystemPackages 排队待应用的系统包变更（发布或升级）
	SystemPackages []SystemPackage
}

func (ChangeEpoch) isTransactionKind() {}

// Name 返回类别名
func (ChangeEpoch) Name() string { return "ChangeEpoch" }

// ---------- 创世 ----------

// GenesisObject 创世直接写入的原始对象
type GenesisObject struct {
	Data Object
}

// GenesisTransaction 创世交易：绕过程序执行直接创建对象
type GenesisTransaction struct {
	Objects []GenesisObject
}

func (GenesisTransaction) isTransactionKind() {}

// Name 返回类别名
func (GenesisTransaction) Name() string { return "Genesis" }

// ---------- 共识提交序言 ----------

// ConsensusCommitPrologueVersion 序言版本（V1..V4共用同一执行路径）
type ConsensusCommitPrologueVersion uint8

const (
	ConsensusCommitPrologueV1 ConsensusCommitPrologueVersion = iota + 1
	ConsensusCommitPrologueV2
	ConsensusCommitPrologueV3
	ConsensusCommitPrologueV4
)

// ConsensusCommitPrologue 共识提交序言交易：更新共享时钟的时间戳
//
// 协议契约要求该调用必须成功，失败按不可恢复的不变量违规处理。
type ConsensusCommitPrologue struct {
	Version           ConsensusCommitPrologueVersion
	Round             uint64
	CommitTimestampMS uint64

	// ConsensusCommitDigest V2起携带的共识提交摘要
	ConsensusCommitDigest []byte
}

func (ConsensusCommitPrologue) isTransactionKind() {}

// Name 返回类别名
func (ConsensusCommitPrologue) Name() string { return "ConsensusCommitPrologue" }

// ---------- 可编程交易 ----------

// ProgrammableTransaction 用户可编程交易，原样递交VM执行
type ProgrammableTransaction struct {
	Program Program
}

func (ProgrammableTransaction) isTransactionKind() {}

// Name 返回类别名
func (ProgrammableTransaction) Name() string { return "ProgrammableTransaction" }

// ProgrammableSystemTransaction 协议自身构造的可编程交易
type ProgrammableSystemTransaction struct {
	Program Program
}

func (ProgrammableSystemTransaction) isTransactionKind() {}

// Name 返回类别名
func (ProgrammableSystemTransaction) Name() string { return "ProgrammableSystemTransaction" }

// ---------- 纪元尾交易 ----------

// EndOfEpochTransaction 纪元尾交易：有序的维护动作列表
//
// 列表必须以恰好一个ChangeEpoch结尾；这是合法构造方的前置条件，
// 调度时在列表末项边界断言。
type EndOfEpochTransaction struct {
	Kinds []EndOfEpochKind
}

func (EndOfEpochTransaction) isTransactionKind() {}

// Name 返回类别名
func (EndOfEpochTransaction) Name() string { return "EndOfEpochTransaction" }

// ---------- 状态更新交易 ----------

// ActiveJWK 共识层提供的活跃JWK
type ActiveJWK struct {
	Issuer string
	KeyID  string
	JWK    []byte
	Epoch  EpochID
}

// AuthenticatorStateUpdate 认证器状态更新交易
type AuthenticatorStateUpdate struct {
	Epoch         EpochID
	Round         uint64
	NewActiveJWKs []ActiveJWK

	// AuthenticatorObjInitialSharedVersion 认证器共享对象的初始共享版本
	AuthenticatorObjInitialSharedVersion SequenceNumber
}

func (AuthenticatorStateUpdate) isTransactionKind() {}

// Name 返回类别名
func (AuthenticatorStateUpdate) Name() string { return "AuthenticatorStateUpdate" }

// RandomnessStateUpdate 随机数状态更新交易
type RandomnessStateUpdate struct {
	Epoch           EpochID
	RandomnessRound uint64
	RandomBytes     []byte

	// RandomnessObjInitialSharedVersion 随机数共享对象的初始共享版本
	RandomnessObjInitialSharedVersion SequenceNumber
}

func (RandomnessStateUpdate) isTransactionKind() {}

// Name 返回类别名
func (RandomnessStateUpdate) Name() string { return "RandomnessStateUpdate" }

// ==================== 纪元尾动作 ====================

// EndOfEpochKind 纪元尾维护动作的封闭联合
type EndOfEpochKind interface {
	isEndOfEpochKind()
}

// EndOfEpochChangeEpoch 强制的收尾动作，必须位于列表末尾
type EndOfEpochChangeEpoch struct {
	ChangeEpoch ChangeEpoch
}

// AuthenticatorStateCreate 创建认证器状态共享对象
type AuthenticatorStateCreate struct{}

// AuthenticatorStateExpire 过期认证器中的旧JWK
type AuthenticatorStateExpire struct {
	MinEpoch                             EpochID
	AuthenticatorObjInitialSharedVersion SequenceNumber
}

// RandomnessStateCreate 创建随机数状态共享对象
type RandomnessStateCreate struct{}

// DenyListStateCreate 创建币种拒绝名单共享对象
type DenyListStateCreate struct{}

// BridgeStateCreate 创建跨链桥共享对象
type BridgeStateCreate struct {
	ChainID string
}

// BridgeCommitteeInit 初始化跨链桥委员会
type BridgeCommitteeInit struct {
	BridgeObjInitialSharedVersion SequenceNumber
}

// StoreExecutionTimeEstimates 存储执行耗时估计
type StoreExecutionTimeEstimates struct {
	Estimates []byte
}

// AccumulatorRootCreate 创建累加器根共享对象
type AccumulatorRootCreate struct{}

func (EndOfEpochChangeEpoch) isEndOfEpochKind()       {}
func (AuthenticatorStateCreate) isEndOfEpochKind()    {}
func (AuthenticatorStateExpire) isEndOfEpochKind()    {}
func (RandomnessStateCreate) isEndOfEpochKind()       {}
func (DenyListStateCreate) isEndOfEpochKind()         {}
func (BridgeStateCreate) isEndOfEpochKind()           {}
func (BridgeCommitteeInit) isEndOfEpochKind()         {}
func (StoreExecutionTimeEstimates) isEndOfEpochKind() {}
func (AccumulatorRootCreate) isEndOfEpochKind()       {}

// ==================== 类别辅助 ====================

// IsEndOfEpochKind 判断交易是否属于纪元边界交易
func IsEndOfEpochKind(kind TransactionKind) bool {
	switch kind.(type) {
	case ChangeEpoch, EndOfEpochTransaction:
		return true
	default:
		return false
	}
}

// IsGenesisKind 判断是否为创世交易
func IsGenesisKind(kind TransactionKind) bool {
	_, ok := kind.(GenesisTransaction)
	return ok
}

// ReceivingObjects 提取交易引用的接收中对象
func ReceivingObjects(kind TransactionKind) []ObjectRef {
	var prog *Program
	switch k := kind.(type) {
	case ProgrammableTransaction:
		prog = &k.Program
	case ProgrammableSystemTransaction:
		prog = &k.Program
	default:
		return nil
	}
	var refs []ObjectRef
	for _, in := range prog.Inputs {
		if in.Object != nil && in.Object.Kind == ObjectArgReceiving {
			refs = append(refs, ObjectRef{ID: in.Object.ID, Version: in.Object.Version})
		}
	}
	return refs
}

// AdvanceEpochTxGasSummary 提取纪元推进交易申报的铸造额
//
// 非纪元交易返回nil。
func AdvanceEpochTxGasSummary(kind TransactionKind) *AdvanceEpochGasSummary {
	var ce *ChangeEpoch
	switch k := kind.(type) {
	case ChangeEpoch:
		ce = &k
	case EndOfEpochTransaction:
		for _, sub := range k.Kinds {
			if c, ok := sub.(EndOfEpochChangeEpoch); ok {
				ce = &c.ChangeEpoch
			}
		}
	}
	if ce == nil {
		return nil
	}
	return &AdvanceEpochGasSummary{
		StorageCharge:     ce.StorageCharge,
		ComputationCharge: ce.ComputationCharge,
	}
}
