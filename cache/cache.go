package cache

import (
	"sync"
	"sync/atomic"
)

// Cache 路径查询结果缓存
// Get 通过 ok 区分"未缓存"与"缓存了零值"（0、false、nil 都算命中）
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
	Len() int
}

// PathCache 基于 sync.Map 的缓存实现，并发安全
// 没有淘汰策略，也没有过期时间，条目在进程生命周期内一直存在
type PathCache struct {
	entries sync.Map
	size    atomic.Int64
}

// New 创建一个独立的 PathCache
func New() *PathCache {
	return &PathCache{}
}

// Get 获取缓存值
func (c *PathCache) Get(key string) (any, bool) {
	return c.entries.Load(key)
}

// Set 写入或覆盖缓存值
func (c *PathCache) Set(key string, value any) {
	if _, loaded := c.entries.Swap(key, value); !loaded {
		c.size.Add(1)
	}
}

// Delete 删除单个条目
func (c *PathCache) Delete(key string) {
	if _, loaded := c.entries.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// Clear 清空所有条目
func (c *PathCache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.Delete(key.(string))
		return true
	})
}

// Len 返回条目数量
func (c *PathCache) Len() int {
	return int(c.size.Load())
}

// Shared 进程级共享缓存
// 所有使用它的 Parser 共享同一份条目，任意实例写入的路径对其他实例可见
var Shared = New()
