// Package types 提供执行核心的公共类型定义
package types

// ExecutionMode 执行模式能力标签
//
// 每种模式固定三件事：是否允许任意函数调用、是否跳过守恒/计量检查、
// 返回给调用方的辅助结果形态。模式在一次调用内不可变。
type ExecutionMode struct {
	name                        string
	allowArbitraryFunctionCalls bool
	skipConservationChecks      bool
}

var (
	// ModeNormal 生产路径的常规模式
	ModeNormal = ExecutionMode{name: "normal"}

	// ModeGenesis 创世模式：铸造总供给，豁免守恒检查
	ModeGenesis = ExecutionMode{name: "genesis", skipConservationChecks: true}

	// ModeSystem 系统模式：协议内部构造的程序使用
	ModeSystem = ExecutionMode{name: "system"}

	// ModeDevInspect 宽容检查模式：允许任意调用，跳过守恒与所有权检查
	ModeDevInspect = ExecutionMode{
		name:                        "dev_inspect",
		allowArbitraryFunctionCalls: true,
		skipConservationChecks:      true,
	}
)

// Name 返回模式名
func (m ExecutionMode) Name() string { return m.name }

// AllowArbitraryFunctionCalls 是否允许任意函数调用
func (m ExecutionMode) AllowArbitraryFunctionCalls() bool {
	return m.allowArbitraryFunctionCalls
}

// SkipConservationChecks 是否跳过守恒检查
func (m ExecutionMode) SkipConservationChecks() bool {
	return m.skipConservationChecks
}

// ExecutionResults 模式相关的辅助执行结果
//
// 常规/系统模式下为空；宽容检查模式返回每条命令的返回值。
type ExecutionResults struct {
	ReturnValues [][]byte
}

// EmptyResults 构造空结果
func EmptyResults() *ExecutionResults {
	return &ExecutionResults{}
}
