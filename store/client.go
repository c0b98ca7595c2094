// Package store 定义远端 KV 存储客户端的契约，以及各驱动共享的名称
package store

//go:generate mockgen -source=client.go -destination=mock/client_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
)

// 支持的驱动名称
const (
	DriverConsul   = "consul"
	DriverEtcd     = "etcd"
	DriverRedis    = "redis"
	DriverDatabase = "database"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Drivers 返回全部驱动名称
func Drivers() []string {
	return []string{DriverConsul, DriverEtcd, DriverRedis, DriverDatabase, DriverMongoDB, DriverMemory}
}

// ErrUnknownDriver 未知的驱动名称
var ErrUnknownDriver = errors.New("store: unknown driver")

// UnknownDriver 构造带驱动名称的 ErrUnknownDriver
func UnknownDriver(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownDriver, name)
}

// KVPair 一条键值记录
type KVPair struct {
	Key   string
	Value string
}

// Client KV 存储客户端
// Get 在 key 不存在时返回 (nil, nil)，只有传输或服务端错误才返回 error
type Client interface {
	Get(ctx context.Context, key string) (*KVPair, error)
	Close() error
}
