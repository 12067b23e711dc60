package store

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/orbchain/v1/pkg/types"
)

// SystemState 系统状态共享对象的负载结构
//
// 负载以确定性CBOR编码存放在系统状态对象的Payload中。常规纪元
// 推进由系统程序在VM内改写；安全模式与未计量返还归并两条路径
// 绕过VM，由临时存储直接解码改写。
type SystemState struct {
	Epoch                 uint64 `cbor:"1,keyasint"`
	ProtocolVersion       uint64 `cbor:"2,keyasint"`
	StorageFund           uint64 `cbor:"3,keyasint"`
	EpochStartTimestampMS uint64 `cbor:"4,keyasint"`
	SafeMode              bool   `cbor:"5,keyasint"`
}

var stateEncMode cbor.EncMode

func init() {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(types.NewFatalError("初始化系统状态编码模式失败: %v", err))
	}
	stateEncMode = mode
}

// EncodeSystemState 编码系统状态负载
func EncodeSystemState(s *SystemState) []byte {
	data, err := stateEncMode.Marshal(s)
	if err != nil {
		panic(types.NewFatalError("系统状态编码失败: %v", err))
	}
	return data
}

// DecodeSystemState 解码系统状态负载
//
// 系统状态对象由协议自身写入，解码失败属于致命的状态损坏。
func DecodeSystemState(payload []byte) *SystemState {
	var s SystemState
	if err := cbor.Unmarshal(payload, &s); err != nil {
		panic(types.NewFatalError("系统状态解码失败: %v", err))
	}
	return &s
}
