// Package config 定义 kvparser 的配置结构、默认值与校验
package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/gocrud/kvparser/logging"
	"github.com/gocrud/kvparser/store"
	"github.com/gocrud/kvparser/store/consul"
	"github.com/gocrud/kvparser/store/database"
	"github.com/gocrud/kvparser/store/etcd"
	"github.com/gocrud/kvparser/store/memory"
	"github.com/gocrud/kvparser/store/mongodb"
	"github.com/gocrud/kvparser/store/redis"
)

// ErrInvalidConfig 配置不符合约定的结构或取值
var ErrInvalidConfig = errors.New("config does not have right format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParserOptions 解析器配置
type ParserOptions struct {
	// Prefix 非空时每个 key 查询前都会拼成 "<prefix>/<key>"
	Prefix string `yaml:"prefix" json:"prefix" env:"PREFIX"`
	// Store 使用的存储驱动
	Store string `yaml:"store" json:"store" env:"STORE" validate:"omitempty,oneof=consul etcd redis database mongodb memory"`
	// Concurrency 同时进行的 Get 上限，0 表示不限制
	Concurrency int `yaml:"concurrency" json:"concurrency" env:"CONCURRENCY" validate:"gte=0"`
	// Timeout 单次 Parse 的总超时，0 表示不限制
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT" validate:"gte=0"`
}

// Config 顶层配置
type Config struct {
	Parser   ParserOptions    `yaml:"parser" json:"parser" envPrefix:"PARSER_"`
	Consul   consul.Options   `yaml:"consul" json:"consul" envPrefix:"CONSUL_"`
	Etcd     etcd.Options     `yaml:"etcd" json:"etcd" envPrefix:"ETCD_"`
	Redis    redis.Options    `yaml:"redis" json:"redis" envPrefix:"REDIS_"`
	Database database.Options `yaml:"database" json:"database" envPrefix:"DATABASE_"`
	MongoDB  mongodb.Options  `yaml:"mongodb" json:"mongodb" envPrefix:"MONGODB_"`
	Memory   memory.Options   `yaml:"memory" json:"memory" envPrefix:"MEMORY_"`
	Logging  logging.Options  `yaml:"logging" json:"logging" envPrefix:"LOGGING_"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		Parser: ParserOptions{
			Store: store.DriverConsul,
		},
		Consul:   consul.NewDefaultOptions(),
		Etcd:     etcd.NewDefaultOptions(),
		Redis:    redis.NewDefaultOptions(),
		Database: database.NewDefaultOptions(),
		MongoDB:  mongodb.NewDefaultOptions(),
		Logging:  logging.NewDefaultOptions(),
	}
}

// ApplyDefaults 用默认值填充未设置（零值）的字段
func ApplyDefaults(cfg *Config) error {
	if err := mergo.Merge(cfg, *Default()); err != nil {
		return fmt.Errorf("error merging default config: %w", err)
	}
	return nil
}

// Validate 校验解析器配置以及所选驱动的配置
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var err error
	switch c.Parser.Store {
	case store.DriverConsul:
		err = c.Consul.Validate()
	case store.DriverEtcd:
		err = c.Etcd.Validate()
	case store.DriverRedis:
		err = c.Redis.Validate()
	case store.DriverDatabase:
		err = c.Database.Validate()
	case store.DriverMongoDB:
		err = c.MongoDB.Validate()
	case store.DriverMemory:
		err = c.Memory.Validate()
	default:
		err = store.UnknownDriver(c.Parser.Store)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.Parser.Store, err)
	}
	return nil
}

// Normalize 填充默认值并校验
func Normalize(cfg *Config) error {
	if err := ApplyDefaults(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}
