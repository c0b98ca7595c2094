// Package mongodb 基于 MongoDB 集合的存储客户端
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gocrud/kvparser/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Options MongoDB 存储配置选项
type Options struct {
	URI         string        `yaml:"uri" json:"uri" env:"URI"`
	Username    string        `yaml:"username" json:"username" env:"USERNAME"`
	Password    string        `yaml:"password" json:"password" env:"PASSWORD"`
	Database    string        `yaml:"database" json:"database" env:"DATABASE"`
	Collection  string        `yaml:"collection" json:"collection" env:"COLLECTION"`
	KeyField    string        `yaml:"key_field" json:"key_field" env:"KEY_FIELD"`
	ValueField  string        `yaml:"value_field" json:"value_field" env:"VALUE_FIELD"`
	MaxPoolSize uint64        `yaml:"max_pool_size" json:"max_pool_size" env:"MAX_POOL_SIZE"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		URI:         "mongodb://localhost:27017",
		Database:    "config",
		Collection:  "kv",
		KeyField:    "_id",
		ValueField:  "value",
		MaxPoolSize: 100,
		Timeout:     10 * time.Second,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.URI == "" {
		return fmt.Errorf("mongo uri is required")
	}
	if o.Database == "" || o.Collection == "" {
		return fmt.Errorf("mongo database and collection are required")
	}
	if o.KeyField == "" || o.ValueField == "" {
		return fmt.Errorf("mongo key and value fields are required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("mongo timeout must be positive")
	}
	return nil
}

// Client MongoDB KV 客户端
type Client struct {
	client     *mongo.Client
	coll       *mongo.Collection
	keyField   string
	valueField string
	timeout    time.Duration
}

// New 创建 MongoDB 客户端并测试连接
func New(ctx context.Context, opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(opts.URI).SetConnectTimeout(opts.Timeout)
	if opts.Username != "" || opts.Password != "" {
		clientOpts.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return &Client{
		client:     client,
		coll:       client.Database(opts.Database).Collection(opts.Collection),
		keyField:   opts.KeyField,
		valueField: opts.ValueField,
		timeout:    opts.Timeout,
	}, nil
}

// Get 读取单个 key，不存在时返回 (nil, nil)
// 非字符串的 value 字段会被编码为 JSON 文本
func (c *Client) Get(ctx context.Context, key string) (*store.KVPair, error) {
	var doc bson.M
	err := c.coll.FindOne(ctx, bson.D{{Key: c.keyField, Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s: %w", key, err)
	}

	raw, ok := doc[c.valueField]
	if !ok {
		return nil, nil
	}
	if s, ok := raw.(string); ok {
		return &store.KVPair{Key: key, Value: s}, nil
	}

	data, err := bson.MarshalExtJSON(bson.M{"v": raw}, false, false)
	if err != nil {
		return nil, fmt.Errorf("mongo get %s: encode value: %w", key, err)
	}
	var wrapped struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("mongo get %s: decode value: %w", key, err)
	}
	return &store.KVPair{Key: key, Value: string(wrapped.V)}, nil
}

// Close 断开连接
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}
