// Package database 基于关系型数据库表的存储客户端（gorm）
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocrud/kvparser/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// DialectSqlite 目前内置的方言
const DialectSqlite = "sqlite"

// Options 数据库存储配置选项
type Options struct {
	Dialect      string        `yaml:"dialect" json:"dialect" env:"DIALECT"`
	DSN          string        `yaml:"dsn" json:"dsn" env:"DSN"`
	Table        string        `yaml:"table" json:"table" env:"TABLE"`
	AutoMigrate  bool          `yaml:"auto_migrate" json:"auto_migrate" env:"AUTO_MIGRATE"`
	MaxIdleConns int           `yaml:"max_idle_conns" json:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxOpenConns int           `yaml:"max_open_conns" json:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxLifetime  time.Duration `yaml:"max_lifetime" json:"max_lifetime" env:"MAX_LIFETIME"`
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		Dialect:      DialectSqlite,
		DSN:          "file:kv.db",
		Table:        "kv_entries",
		MaxIdleConns: 2,
		MaxOpenConns: 10,
		MaxLifetime:  time.Hour,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.Dialect != DialectSqlite {
		return fmt.Errorf("database dialect %q is not supported", o.Dialect)
	}
	if o.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if o.Table == "" {
		return fmt.Errorf("database table is required")
	}
	return nil
}

// Entry 表中的一行
type Entry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

// Client 数据库 KV 客户端
type Client struct {
	db    *gorm.DB
	table string
}

// New 打开数据库连接
func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(opts.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxLifetime)
	}

	client := &Client{db: db, table: opts.Table}
	if opts.AutoMigrate {
		if err := client.Migrate(); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}
	return client, nil
}

// NewFromDB 包装已有的 gorm 连接
func NewFromDB(db *gorm.DB, table string) *Client {
	return &Client{db: db, table: table}
}

// Migrate 创建 KV 表
func (c *Client) Migrate() error {
	if err := c.db.Table(c.table).AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("auto migrate failed for table '%s': %w", c.table, err)
	}
	return nil
}

// Put 写入或覆盖一行
func (c *Client) Put(ctx context.Context, key, value string) error {
	err := c.db.WithContext(ctx).Table(c.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("database put %s: %w", key, err)
	}
	return nil
}

// Get 读取单个 key，不存在时返回 (nil, nil)
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	var entry Entry
	err := c.db.WithContext(ctx).
		Table(c.table).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database get %s: %w", key, err)
	}
	return &store.KVPair{Key: entry.Key, Value: entry.Value}, nil
}

// Close 关闭数据库连接
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
