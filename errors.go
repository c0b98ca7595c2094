package kvparser

import "errors"

// Parse 之前的校验错误
var (
	// ErrKeysRequired keys 为 nil 或空
	ErrKeysRequired = errors.New("keys array is required")
	// ErrInvalidKeys 存在格式不正确的 key 描述
	ErrInvalidKeys = errors.New("some keys have incorrect format")
	// ErrUnsupportedType key 描述声明了不支持的类型
	ErrUnsupportedType = errors.New("type is not supported")
	// ErrNotConnected 既没有调用 Connect 也没有注入客户端
	ErrNotConnected = errors.New("store client is not connected")
)

// Parse 过程中的错误，任一发生整个 Parse 失败，已有的 Values 保持不变
var (
	// ErrRequiredKeyMissing require 为 true 的 key 在存储中不存在
	ErrRequiredKeyMissing = errors.New("required key not found")
	// ErrMalformedObject object 类型的值不是合法的 JSON
	ErrMalformedObject = errors.New("malformed object value")
	// ErrPathConflict 同一路径既被当作节点又被当作叶子
	ErrPathConflict = errors.New("path conflict")
	// ErrFetch 存储客户端返回错误
	ErrFetch = errors.New("failed to fetch key")
)

// GetIn 的错误
var (
	// ErrUninitialized 尚未有成功的 Parse
	ErrUninitialized = errors.New("values are not initialized")
	// ErrPathNotFound 路径在当前 Values 中不存在
	ErrPathNotFound = errors.New("incorrect path")
)
