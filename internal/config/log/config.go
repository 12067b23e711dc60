// Package log 提供日志配置管理功能
package log

// LogOptions 日志配置选项
type LogOptions struct {
	// === 基础配置 ===
	Level      string `json:"level"`      // 日志级别: debug/info/warn/error
	Format     string `json:"format"`     // 输出格式: json/console
	OutputPath string `json:"outputPath"` // 输出路径: stdout/stderr/文件路径

	// === 文件轮转配置 ===
	MaxSizeMB  int  `json:"maxSizeMB"`  // 单文件最大尺寸(MB)
	MaxBackups int  `json:"maxBackups"` // 保留的轮转文件数
	MaxAgeDays int  `json:"maxAgeDays"` // 轮转文件保留天数
	Compress   bool `json:"compress"`   // 是否压缩轮转文件

	// === 开发配置 ===
	Development bool `json:"development"` // 开发模式(彩色输出、调用方信息)
}

// Config 日志配置
type Config struct {
	Options *LogOptions
}

// New 创建日志配置（用户配置为nil时使用默认值）
func New(userOptions *LogOptions) *Config {
	opts := createDefaultLogOptions()
	if userOptions != nil {
		mergeOptions(opts, userOptions)
	}
	return &Config{Options: opts}
}

// mergeOptions 合并用户配置到默认配置
func mergeOptions(base, user *LogOptions) {
	if user.Level != "" {
		base.Level = user.Level
	}
	if user.Format != "" {
		base.Format = user.Format
	}
	if user.OutputPath != "" {
		base.OutputPath = user.OutputPath
	}
	if user.MaxSizeMB > 0 {
		base.MaxSizeMB = user.MaxSizeMB
	}
	if user.MaxBackups > 0 {
		base.MaxBackups = user.MaxBackups
	}
	if user.MaxAgeDays > 0 {
		base.MaxAgeDays = user.MaxAgeDays
	}
	if user.Compress {
		base.Compress = true
	}
	if user.Development {
		base.Development = true
	}
}
