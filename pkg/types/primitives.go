// Package types 提供执行核心的公共类型定义
package types

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/mr-tron/base58"
)

// ==================== 基础标识类型 ====================

// ObjectID 对象的全局唯一标识（32字节）
type ObjectID [32]byte

// String 返回对象ID的base58表示
func (id ObjectID) String() string {
	return base58.Encode(id[:])
}

// IsZero 判断是否为零值ID
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// Address 账户地址（32字节）
type Address [32]byte

// String 返回地址的base58表示
func (a Address) String() string {
	return base58.Encode(a[:])
}

// TransactionDigest 交易摘要（32字节）
type TransactionDigest [32]byte

// String 返回交易摘要的base58表示
func (d TransactionDigest) String() string {
	return base58.Encode(d[:])
}

// GenesisMarkerDigest 返回创世标记摘要
//
// 创世时直接写入的对象使用该特殊摘要作为前驱交易，
// 组装效果时必须从依赖集合中剔除。
func GenesisMarkerDigest() TransactionDigest {
	var d TransactionDigest
	for i := range d {
		d[i] = 0x01
	}
	return d
}

// ==================== 版本序号 ====================

// SequenceNumber 对象版本序号
//
// 高位区间保留为取消标记：共识层在调度阶段给被取消交易的共享对象
// 赋一个哨兵版本号，执行核心据此在运行任何程序之前短路失败。
type SequenceNumber uint64

const (
	// ObjectStartVersion 对象的初始版本
	ObjectStartVersion SequenceNumber = 1

	// SequenceNumberMax 版本序号上限
	SequenceNumberMax SequenceNumber = math.MaxUint64

	// SequenceNumberCongested 共享对象拥塞取消标记
	SequenceNumberCongested SequenceNumber = math.MaxUint64 - 2

	// SequenceNumberRandomnessUnavailable 随机数不可用取消标记
	SequenceNumberRandomnessUnavailable SequenceNumber = math.MaxUint64 - 3
)

// IsCancellationMarker 判断版本号是否落在取消标记区间
func (s SequenceNumber) IsCancellationMarker() bool {
	return s == SequenceNumberCongested || s == SequenceNumberRandomnessUnavailable
}

// ==================== 纪元与协议版本 ====================

// EpochID 纪元编号
type EpochID uint64

// ProtocolVersion 协议版本号
type ProtocolVersion uint64

// ==================== 辅助函数 ====================

// ObjectIDFromUint64 由数值构造对象ID（用于内置系统对象地址）
func ObjectIDFromUint64(n uint64) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint64(id[24:], n)
	return id
}

// CompareObjectID 对象ID的字典序比较（用于确定性排序）
func CompareObjectID(a, b ObjectID) int {
	return bytes.Compare(a[:], b[:])
}
