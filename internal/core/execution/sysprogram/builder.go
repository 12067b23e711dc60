// Package sysprogram 提供系统程序的构造器与全部预置系统程序
//
// 系统程序由协议自身拼装（纪元推进、共识序言、系统对象创建等），
// 其形态完全由代码决定。构造失败只能源于实现自身的逻辑错误，
// 因此构造器在任何非法输入上直接panic为致命错误，绝不返回error。
package sysprogram

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/orbchain/v1/pkg/types"
)

// pureEncMode 纯参数的确定性编码模式
//
// 系统程序的纯参数进入共识可见的交易效果，全网必须字节一致。
var pureEncMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(types.NewFatalError("初始化确定性编码模式失败: %v", err))
	}
	pureEncMode = mode
}

// ProgramBuilder 系统程序构造器
//
// 输入表对对象参数按ID去重：同一对象在程序内只占一个输入槽位，
// 重复登记返回既有槽位的引用。
type ProgramBuilder struct {
	inputs   []types.CallArg
	commands []types.Command
	objSlots map[types.ObjectID]uint16
}

// NewProgramBuilder 创建程序构造器
func NewProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{
		objSlots: make(map[types.ObjectID]uint16),
	}
}

// Pure 登记确定性编码的纯参数
func (b *ProgramBuilder) Pure(v interface{}) types.Argument {
	data, err := pureEncMode.Marshal(v)
	if err != nil {
		panic(types.NewFatalError("系统程序纯参数编码失败: %v", err))
	}
	return b.PureBytes(data)
}

// PureBytes 登记已编码的纯参数
func (b *ProgramBuilder) PureBytes(data []byte) types.Argument {
	b.inputs = append(b.inputs, types.PureCallArg(data))
	return types.InputArgument(uint16(len(b.inputs) - 1))
}

// Obj 登记对象参数（按ID去重）
func (b *ProgramBuilder) Obj(arg types.ObjectArg) types.Argument {
	if slot, ok := b.objSlots[arg.ID]; ok {
		existing := b.inputs[slot].Object
		if existing.Kind != arg.Kind || existing.Mutable != arg.Mutable {
			panic(types.NewFatalError("对象 %s 以不一致的参数形态重复登记", arg.ID))
		}
		return types.InputArgument(slot)
	}
	b.inputs = append(b.inputs, types.ObjectCallArg(arg))
	slot := uint16(len(b.inputs) - 1)
	b.objSlots[arg.ID] = slot
	return types.InputArgument(slot)
}

// MoveCall 追加函数调用命令，返回引用其结果的参数
func (b *ProgramBuilder) MoveCall(pkg types.ObjectID, module, function string, typeArgs []string, args []types.Argument) types.Argument {
	if module == "" || function == "" {
		panic(types.NewFatalError("系统程序调用目标为空: %s::%s", module, function))
	}
	b.commands = append(b.commands, types.Command{
		Kind: types.CommandMoveCall,
		MoveCall: &types.MoveCall{
			Package:  pkg,
			Module:   module,
			Function: function,
			TypeArgs: typeArgs,
			Args:     args,
		},
	})
	return types.ResultArgument(uint16(len(b.commands) - 1))
}

// Publish 追加包发布命令
func (b *ProgramBuilder) Publish(modules [][]byte, deps []types.ObjectID) {
	if len(modules) == 0 {
		panic(types.NewFatalError("系统包发布不允许空模块列表"))
	}
	b.commands = append(b.commands, types.Command{
		Kind: types.CommandPublish,
		Publish: &types.PublishModules{
			Modules:      modules,
			Dependencies: deps,
		},
	})
}

// Finish 产出最终程序
func (b *ProgramBuilder) Finish() types.Program {
	return types.Program{
		Inputs:   b.inputs,
		Commands: b.commands,
	}
}
