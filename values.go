package kvparser

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Values 解析结果树的节点
// 叶子值是 string、float64 或 JSON 解码得到的任意值；
// object 叶子即使是 map[string]any 也不会被当作 Values 节点
type Values map[string]any

// place 按路径写入值，中间节点不存在时创建
// write 为 false 时只创建中间节点（可选 key 不存在的情况），遇到叶子即停止，不会报错
// object 叶子即使解码为 map[string]any 也不作为父节点，后续 key 写入其下方会得到 ErrPathConflict
func (v Values) place(segments []string, value any, write bool) error {
	node := v
	for i, seg := range segments[:len(segments)-1] {
		child, ok := node[seg]
		if !ok {
			child = Values{}
			node[seg] = child
		}
		next, isNode := child.(Values)
		if !isNode {
			if !write {
				return nil
			}
			return fmt.Errorf("%w: %s is a value, not a node", ErrPathConflict, strings.Join(segments[:i+1], "/"))
		}
		node = next
	}

	if !write {
		return nil
	}

	leaf := segments[len(segments)-1]
	if existing, ok := node[leaf]; ok {
		// 只由缺失 key 创建的空节点可以被叶子替换
		if sub, isNode := existing.(Values); isNode && !sub.hollow() {
			return fmt.Errorf("%w: %s is a node, not a value", ErrPathConflict, strings.Join(segments, "/"))
		}
	}
	node[leaf] = value
	return nil
}

// hollow 节点及其所有子节点都不包含叶子
func (v Values) hollow() bool {
	for _, child := range v {
		sub, isNode := child.(Values)
		if !isNode || !sub.hollow() {
			return false
		}
	}
	return true
}

// lookup 沿路径查找，nil 也是合法的值；第二个返回值表示是否找到
func lookup(root Values, path []string) (any, bool) {
	var current any = root
	for _, seg := range path {
		switch node := current.(type) {
		case Values:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// valueStore 使用 atomic.Value 保存最近一次成功解析的 Values，实现无锁读取
type valueStore struct {
	value atomic.Value // stores Values
}

// Load 加载当前快照，从未 Store 过时返回 nil
func (s *valueStore) Load() Values {
	val := s.value.Load()
	if val == nil {
		return nil
	}
	return val.(Values)
}

// Store 原子替换快照
func (s *valueStore) Store(values Values) {
	s.value.Store(values)
}
