package kvparser

import (
	"context"

	"github.com/gocrud/kvparser/config"
	"github.com/gocrud/kvparser/store"
	"github.com/gocrud/kvparser/store/consul"
	"github.com/gocrud/kvparser/store/database"
	"github.com/gocrud/kvparser/store/etcd"
	"github.com/gocrud/kvparser/store/memory"
	"github.com/gocrud/kvparser/store/mongodb"
	"github.com/gocrud/kvparser/store/redis"
)

// Dial 默认的 Dialer，按 parser.store 创建对应驱动的客户端
func Dial(ctx context.Context, cfg *config.Config) (store.Client, error) {
	switch cfg.Parser.Store {
	case store.DriverConsul:
		return dialed(consul.New(cfg.Consul))
	case store.DriverEtcd:
		return dialed(etcd.New(cfg.Etcd))
	case store.DriverRedis:
		return dialed(redis.New(ctx, cfg.Redis))
	case store.DriverDatabase:
		return dialed(database.New(cfg.Database))
	case store.DriverMongoDB:
		return dialed(mongodb.New(ctx, cfg.MongoDB))
	case store.DriverMemory:
		return memory.New(cfg.Memory), nil
	default:
		return nil, store.UnknownDriver(cfg.Parser.Store)
	}
}

// dialed 避免把 nil 指针包装成非 nil 的 store.Client
func dialed[C store.Client](client C, err error) (store.Client, error) {
	if err != nil {
		return nil, err
	}
	return client, nil
}
