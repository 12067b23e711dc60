// Package execution 提供执行核心对外的协作方接口定义
package execution

import (
	metricsiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/metrics"
	"github.com/orbchain/v1/pkg/types"
)

// VM 程序执行虚拟机
//
// 执行核心只通过该窄接口递交程序：VM负责反序列化、验证与解释，
// 把读写落到临时存储并通过计量器计费。返回的错误一律是交易级
// 执行错误（*types.ExecutionError），能定位到出错命令时通过
// WithCommand携带其下标；VM自身绝不致命中断。
type VM interface {
	// ExecuteProgram 对缓冲存储执行一段程序
	ExecuteProgram(
		cfg *types.ProtocolConfig,
		metrics metricsiface.ExecutionMetrics,
		store TemporaryStore,
		packages BackingStore,
		txCtx *types.TransactionContext,
		charger GasCharger,
		prog types.Program,
		mode types.ExecutionMode,
		trace *types.TraceBuilder,
	) (*types.ExecutionResults, []types.ExecutionTiming, error)

	// NewLayoutResolver 构造类型布局解析器（昂贵守恒检查使用）
	NewLayoutResolver(store TemporaryStore) LayoutResolver
}

// VMFactory 虚拟机工厂
//
// 框架升级后协议配置可要求换用携带新原生函数的全新VM实例
// 处理系统包，此时纪元切换控制器通过工厂构造。
type VMFactory interface {
	// NewVM 构造全新VM实例
	NewVM(cfg *types.ProtocolConfig) (VM, error)
}

// LayoutResolver 类型布局解析器
//
// 解析对象的类型布局并提取其内嵌的原生资产总量。
type LayoutResolver interface {
	// ResolveBalance 解析对象内嵌的原生资产数量
	ResolveBalance(obj *types.Object) (uint64, error)
}
