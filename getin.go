package kvparser

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// cacheKey 把路径片段用逗号拼接成缓存 key
// 注意：片段本身包含逗号时不同路径可能得到相同的 key
func cacheKey(path []string) string {
	return strings.Join(path, ",")
}

// GetIn 按路径片段读取最近一次解析结果中的值
// 第一次查询后结果写入缓存，之后相同路径直接从缓存返回；重新 Parse 不会自动清空缓存
func (p *Parser) GetIn(path ...string) (any, error) {
	values := p.values.Load()
	if values == nil {
		return nil, ErrUninitialized
	}

	key := cacheKey(path)
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	value, ok := lookup(values, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, key)
	}

	p.cache.Set(key, value)
	return value, nil
}

// ResetCache 清空路径缓存，通常在重新 Parse 之后调用
func (p *Parser) ResetCache() {
	p.cache.Clear()
}

// Get 按路径读取并转换为 T
// 类型不一致时通过 JSON 往返转换，例如 number 叶子读取为 int
// NaN 与 ±Inf 没有 JSON 表示，只能以 float64 读取
func Get[T any](p *Parser, path ...string) (T, error) {
	var zero T

	value, err := p.GetIn(path...)
	if err != nil {
		return zero, err
	}
	if t, ok := value.(T); ok {
		return t, nil
	}

	var out T
	if err := convert(value, &out); err != nil {
		return zero, fmt.Errorf("value at %s is %T, cannot convert to %T: %w", cacheKey(path), value, zero, err)
	}
	return out, nil
}

// Bind 将路径下的值绑定到结构体，path 为空时绑定整个结果
func (p *Parser) Bind(target any, path ...string) error {
	value, err := p.GetIn(path...)
	if err != nil {
		return err
	}
	if err := convert(value, target); err != nil {
		return fmt.Errorf("failed to bind %s: %w", cacheKey(path), err)
	}
	return nil
}

// convert 使用 JSON 序列化/反序列化进行转换
func convert(value, target any) error {
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("number %v has no JSON form, read it as float64", f)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}
