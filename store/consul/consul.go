// Package consul 基于 Consul KV 的存储客户端
package consul

import (
	"context"
	"fmt"
	"time"

	"github.com/gocrud/kvparser/store"
	"github.com/hashicorp/consul/api"
)

// Options Consul 客户端配置选项
type Options struct {
	Address    string        `yaml:"address" json:"address" env:"ADDRESS"`       // agent 地址 host:port
	Scheme     string        `yaml:"scheme" json:"scheme" env:"SCHEME"`          // http 或 https
	PathPrefix string        `yaml:"path_prefix" json:"path_prefix" env:"PATH_PREFIX"`
	Datacenter string        `yaml:"datacenter" json:"datacenter" env:"DATACENTER"`
	Token      string        `yaml:"token" json:"token" env:"TOKEN"`
	Namespace  string        `yaml:"namespace" json:"namespace" env:"NAMESPACE"`
	Partition  string        `yaml:"partition" json:"partition" env:"PARTITION"`
	WaitTime   time.Duration `yaml:"wait_time" json:"wait_time" env:"WAIT_TIME"`
	Consistent bool          `yaml:"consistent" json:"consistent" env:"CONSISTENT"` // 读请求使用 consistent 模式
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		Address: "127.0.0.1:8500",
		Scheme:  "http",
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.Address == "" {
		return fmt.Errorf("consul address is required")
	}
	if o.Scheme != "" && o.Scheme != "http" && o.Scheme != "https" {
		return fmt.Errorf("consul scheme must be http or https, got %q", o.Scheme)
	}
	if o.WaitTime < 0 {
		return fmt.Errorf("consul wait time must not be negative")
	}
	return nil
}

// Client Consul KV 客户端
type Client struct {
	kv         *api.KV
	consistent bool
}

// New 创建 Consul 客户端
// api.NewClient 会把默认值回填进传入的 *api.Config，这里每次都构造新的 config
func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	config := api.DefaultConfig()
	config.Address = opts.Address
	if opts.Scheme != "" {
		config.Scheme = opts.Scheme
	}
	if opts.PathPrefix != "" {
		config.PathPrefix = opts.PathPrefix
	}
	if opts.Datacenter != "" {
		config.Datacenter = opts.Datacenter
	}
	if opts.Token != "" {
		config.Token = opts.Token
	}
	if opts.Namespace != "" {
		config.Namespace = opts.Namespace
	}
	if opts.Partition != "" {
		config.Partition = opts.Partition
	}
	if opts.WaitTime > 0 {
		config.WaitTime = opts.WaitTime
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &Client{kv: client.KV(), consistent: opts.Consistent}, nil
}

// Get 读取单个 key，不存在时返回 (nil, nil)
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	q := &api.QueryOptions{RequireConsistent: c.consistent}
	pair, _, err := c.kv.Get(key, q.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("consul get %s: %w", key, err)
	}
	if pair == nil {
		return nil, nil
	}
	return &store.KVPair{Key: pair.Key, Value: string(pair.Value)}, nil
}

// Close Consul 客户端基于 HTTP，无需释放连接
func (c *Client) Close() error {
	return nil
}
