// Package etcd 基于 etcd v3 的存储客户端
package etcd

import (
	"context"
	"fmt"
	"time"

	"github.com/gocrud/kvparser/store"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Options etcd 客户端配置选项
type Options struct {
	Endpoints          []string      `yaml:"endpoints" json:"endpoints" env:"ENDPOINTS" envSeparator:","` // etcd 服务器地址列表
	DialTimeout        time.Duration `yaml:"dial_timeout" json:"dial_timeout" env:"DIAL_TIMEOUT"`         // 连接超时时间
	Username           string        `yaml:"username" json:"username" env:"USERNAME"`                     // 用户名（可选）
	Password           string        `yaml:"password" json:"password" env:"PASSWORD"`                     // 密码（可选）
	AutoSyncInterval   time.Duration `yaml:"auto_sync_interval" json:"auto_sync_interval" env:"AUTO_SYNC_INTERVAL"`
	MaxCallRecvMsgSize int           `yaml:"max_call_recv_msg_size" json:"max_call_recv_msg_size" env:"MAX_CALL_RECV_MSG_SIZE"`
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		Endpoints:   []string{"localhost:2379"},
		DialTimeout: 5 * time.Second,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if len(o.Endpoints) == 0 {
		return fmt.Errorf("etcd endpoints are required")
	}
	if o.DialTimeout <= 0 {
		return fmt.Errorf("etcd dial timeout must be positive")
	}
	return nil
}

// Client etcd KV 客户端
type Client struct {
	cli *clientv3.Client
}

// New 创建 etcd 客户端
func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	config := clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
	}

	// 设置认证信息
	if opts.Username != "" {
		config.Username = opts.Username
		config.Password = opts.Password
	}
	if opts.AutoSyncInterval > 0 {
		config.AutoSyncInterval = opts.AutoSyncInterval
	}
	if opts.MaxCallRecvMsgSize > 0 {
		config.MaxCallRecvMsgSize = opts.MaxCallRecvMsgSize
	}

	cli, err := clientv3.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return &Client{cli: cli}, nil
}

// NewFromClient 包装已有的 etcd 客户端，Close 会关闭它
func NewFromClient(cli *clientv3.Client) *Client {
	return &Client{cli: cli}
}

// Get 读取单个 key，不存在时返回 (nil, nil)
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	resp, err := c.cli.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	kv := resp.Kvs[0]
	return &store.KVPair{Key: string(kv.Key), Value: string(kv.Value)}, nil
}

// Close 关闭 etcd 客户端
func (c *Client) Close() error {
	return c.cli.Close()
}
