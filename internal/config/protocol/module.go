package protocol

import (
	"go.uber.org/fx"

	"github.com/orbchain/v1/pkg/types"
)

// Module 协议配置fx模块
var Module = fx.Module("config.protocol",
	fx.Provide(provideProtocolConfig),
)

// provideProtocolConfig 提供经过校验的协议配置
func provideProtocolConfig() (*types.ProtocolConfig, error) {
	cfg := New()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
