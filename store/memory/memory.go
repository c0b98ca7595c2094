// Package memory 提供进程内的 KV 存储客户端，用于测试和示例
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gocrud/kvparser/store"
)

// Options 内存存储配置选项
type Options struct {
	Entries map[string]string `yaml:"entries" json:"entries"`
	Delay   time.Duration     `yaml:"delay" json:"delay" env:"DELAY"`
}

// Validate 验证配置
func (o *Options) Validate() error {
	return nil
}

// Client 基于 map 的 KV 客户端，记录每次 Get 的 key
type Client struct {
	mu      sync.RWMutex
	entries map[string]string
	errs    map[string]error
	delay   time.Duration
	calls   []string
	closed  bool
}

// New 创建内存客户端
func New(opts Options) *Client {
	c := &Client{
		entries: make(map[string]string, len(opts.Entries)),
		errs:    make(map[string]error),
		delay:   opts.Delay,
	}
	for k, v := range opts.Entries {
		c.entries[k] = v
	}
	return c
}

// Get 获取键值，key 不存在时返回 (nil, nil)
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	c.mu.Lock()
	c.calls = append(c.calls, key)
	delay := c.delay
	c.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if err, ok := c.errs[key]; ok {
		return nil, err
	}
	value, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &store.KVPair{Key: key, Value: value}, nil
}

// Set 写入键值
func (c *Client) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Delete 删除键
func (c *Client) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// SetError 让指定 key 的 Get 返回 err
func (c *Client) SetError(key string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[key] = err
}

// Calls 返回 Get 调用过的 key（按调用顺序）
func (c *Client) Calls() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// Closed 是否已关闭
func (c *Client) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close 关闭客户端
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
