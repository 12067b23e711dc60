package objectstore

import (
	"context"

	"go.uber.org/fx"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
)

// Module 对象存储fx模块
var Module = fx.Module("persistence.objectstore",
	fx.Provide(provideStore),
	fx.Provide(func(s *Store) executioniface.BackingStore { return s }),
)

// provideStore 提供对象存储并挂接生命周期
func provideStore(lc fx.Lifecycle, opts Options, logger logiface.Logger) (*Store, error) {
	store, err := NewStore(opts, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
