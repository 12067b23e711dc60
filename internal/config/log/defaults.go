package log

// ==================== 日志默认配置 ====================

const (
	// defaultLevel 默认日志级别
	// 验证者生产环境以info为基线，执行核心的逐交易细节走debug
	defaultLevel = "info"

	// defaultFormat 默认输出格式
	// 生产环境统一json便于采集，开发模式可切换console
	defaultFormat = "json"

	// defaultOutputPath 默认输出路径
	defaultOutputPath = "stdout"

	// defaultMaxSizeMB 单文件最大尺寸
	defaultMaxSizeMB = 100

	// defaultMaxBackups 保留的轮转文件数
	defaultMaxBackups = 10

	// defaultMaxAgeDays 轮转文件保留天数
	defaultMaxAgeDays = 30

	// defaultCompress 默认压缩轮转文件
	defaultCompress = true
)

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:       defaultLevel,
		Format:      defaultFormat,
		OutputPath:  defaultOutputPath,
		MaxSizeMB:   defaultMaxSizeMB,
		MaxBackups:  defaultMaxBackups,
		MaxAgeDays:  defaultMaxAgeDays,
		Compress:    defaultCompress,
		Development: false,
	}
}
