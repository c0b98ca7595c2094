// Package redis 基于 Redis 字符串键的存储客户端
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocrud/kvparser/store"
	"github.com/redis/go-redis/v9"
)

// Options Redis 客户端配置选项
type Options struct {
	Addr         string        `yaml:"addr" json:"addr" env:"ADDR"`             // Redis 服务器地址 (host:port)
	Username     string        `yaml:"username" json:"username" env:"USERNAME"` // ACL 用户名（可选）
	Password     string        `yaml:"password" json:"password" env:"PASSWORD"` // 密码（可选）
	DB           int           `yaml:"db" json:"db" env:"DB"`                   // 数据库编号
	DialTimeout  time.Duration `yaml:"dial_timeout" json:"dial_timeout" env:"DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout" env:"WRITE_TIMEOUT"`
	PoolSize     int           `yaml:"pool_size" json:"pool_size" env:"POOL_SIZE"`
	MaxRetries   int           `yaml:"max_retries" json:"max_retries" env:"MAX_RETRIES"`
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		Addr:         "localhost:6379",
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if o.DB < 0 {
		return fmt.Errorf("redis database number must be non-negative")
	}
	if o.DialTimeout <= 0 {
		return fmt.Errorf("redis dial timeout must be positive")
	}
	return nil
}

// Client Redis KV 客户端
type Client struct {
	rdb *redis.Client
}

// New 创建 Redis 客户端并测试连接
func New(ctx context.Context, opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		MaxRetries:   opts.MaxRetries,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromClient 包装已有的 Redis 客户端，Close 会关闭它
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Get 读取单个 key，不存在时返回 (nil, nil)
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return &store.KVPair{Key: key, Value: value}, nil
}

// Close 关闭 Redis 客户端
func (c *Client) Close() error {
	return c.rdb.Close()
}
