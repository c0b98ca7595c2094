package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，例如 KVPARSER_PARSER_PREFIX
const EnvPrefix = "KVPARSER_"

// Decode 从 YAML（或 JSON）读取配置，未知字段视为错误
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Parse 解析 YAML 文本并填充默认值、校验
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := Decode(bytes.NewReader(data), cfg); err != nil {
		return nil, err
	}
	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 加载配置：YAML 文件（path 为空时跳过）→ 环境变量覆盖 → 默认值 → 校验
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := Decode(bytes.NewReader(data), cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone 深拷贝配置（JSON 往返）
// 存储客户端的构造函数可能修改传入的配置，调用方应传入副本
func Clone(cfg *Config) (*Config, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return clone, nil
}
