// Package kvparser 从远端 KV 存储批量读取 key，按声明的类型转换后组装成嵌套结构，
// 并为按路径的重复查询提供缓存
package kvparser

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocrud/kvparser/cache"
	"github.com/gocrud/kvparser/config"
	"github.com/gocrud/kvparser/logging"
	"github.com/gocrud/kvparser/store"
	"golang.org/x/sync/errgroup"
)

// Dialer 根据配置创建存储客户端
// 传入的 cfg 是副本，Dialer 可以随意修改
type Dialer func(ctx context.Context, cfg *config.Config) (store.Client, error)

// Option Parser 构造选项
type Option func(*Parser)

// WithClient 直接注入存储客户端，无需调用 Connect
// 注入的客户端不会被 Parser.Close 关闭
func WithClient(client store.Client) Option {
	return func(p *Parser) {
		p.client = client
	}
}

// WithCache 使用指定的缓存，例如 cache.Shared
func WithCache(c cache.Cache) Option {
	return func(p *Parser) {
		p.cache = c
	}
}

// WithLogger 使用指定的 Logger
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithDialer 替换 Connect 使用的 Dialer
func WithDialer(dialer Dialer) Option {
	return func(p *Parser) {
		p.dialer = dialer
	}
}

// Parser 从存储读取配置的解析器
type Parser struct {
	cfg    *config.Config
	cache  cache.Cache
	logger logging.Logger
	dialer Dialer
	values valueStore

	mu     sync.RWMutex
	client store.Client
	owned  bool // client 由 Connect 创建，Close 时需要关闭
}

// New 创建 Parser，cfg 为 nil 时使用默认配置
// 配置会被复制、填充默认值并校验，不会访问存储
func New(cfg *config.Config, opts ...Option) (*Parser, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	normalized, err := config.Clone(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if err := config.Normalize(normalized); err != nil {
		return nil, err
	}

	p := &Parser{
		cfg:    normalized,
		dialer: Dial,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.cache == nil {
		p.cache = cache.New()
	}
	if p.logger == nil {
		logger, err := logging.New(normalized.Logging, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		p.logger = logger
	}
	p.logger = p.logger.WithCategory("kvparser")

	return p, nil
}

// Config 返回当前配置的副本
func (p *Parser) Config() *config.Config {
	// Config 只包含可 JSON 编码的字段，Clone 不会失败
	clone, _ := config.Clone(p.cfg)
	return clone
}

// Connect 根据配置创建存储客户端
// 客户端库可能会修改传给它的配置，所以每次都传入配置的深拷贝
func (p *Parser) Connect(ctx context.Context) error {
	cfg, err := config.Clone(p.cfg)
	if err != nil {
		return err
	}

	client, err := p.dialer(ctx, cfg)
	if err != nil {
		p.logger.Error("failed to connect store",
			logging.Field{Key: "driver", Value: p.cfg.Parser.Store},
			logging.Field{Key: "error", Value: err})
		return fmt.Errorf("failed to connect %s store: %w", p.cfg.Parser.Store, err)
	}

	p.mu.Lock()
	previous, owned := p.client, p.owned
	p.client, p.owned = client, true
	p.mu.Unlock()

	if previous != nil && owned {
		if err := previous.Close(); err != nil {
			p.logger.Warn("failed to close previous store client",
				logging.Field{Key: "error", Value: err})
		}
	}

	p.logger.Debug("store connected", logging.Field{Key: "driver", Value: p.cfg.Parser.Store})
	return nil
}

// Close 关闭由 Connect 创建的客户端
func (p *Parser) Close() error {
	p.mu.Lock()
	client, owned := p.client, p.owned
	p.client, p.owned = nil, false
	p.mu.Unlock()

	if client == nil || !owned {
		return nil
	}
	return client.Close()
}

func (p *Parser) currentClient() store.Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Values 返回最近一次成功解析的结果，尚未解析时为 nil
func (p *Parser) Values() Values {
	return p.values.Load()
}

// effectiveKey 计算发送给存储的 key
func (p *Parser) effectiveKey(key string) string {
	if prefix := p.cfg.Parser.Prefix; prefix != "" {
		return prefix + "/" + key
	}
	return key
}

type fetchResult struct {
	value any
	found bool
}

// Parse 并发读取所有 key，转换类型后组装成新的 Values
// 任一 key 失败则整体失败，之前的 Values 保持不变
func (p *Parser) Parse(ctx context.Context, keys []KeyDescriptor) (Values, error) {
	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}

	client := p.currentClient()
	if client == nil {
		return nil, ErrNotConnected
	}

	if timeout := p.cfg.Parser.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p.logger.Debug("fetching keys",
		logging.Field{Key: "count", Value: len(keys)},
		logging.Field{Key: "prefix", Value: p.cfg.Parser.Prefix},
		logging.Field{Key: "driver", Value: p.cfg.Parser.Store})

	results := make([]fetchResult, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	if limit := p.cfg.Parser.Concurrency; limit > 0 {
		g.SetLimit(limit)
	}

	for i, key := range keys {
		g.Go(func() error {
			res, err := p.fetch(gctx, client, key)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Error("failed to parse keys", logging.Field{Key: "error", Value: err})
		return nil, err
	}

	// 按描述顺序组装，同一叶子路径以最后一个描述为准
	values := Values{}
	for i, key := range keys {
		if err := values.place(key.segments(), results[i].value, results[i].found); err != nil {
			p.logger.Error("failed to parse keys", logging.Field{Key: "error", Value: err})
			return nil, err
		}
	}

	p.values.Store(values)
	p.logger.Info("keys parsed", logging.Field{Key: "count", Value: len(keys)})
	return values, nil
}

func (p *Parser) fetch(ctx context.Context, client store.Client, key KeyDescriptor) (fetchResult, error) {
	effective := p.effectiveKey(key.Key)

	pair, err := client.Get(ctx, effective)
	if err != nil {
		return fetchResult{}, fmt.Errorf("%w %s: %w", ErrFetch, effective, err)
	}

	if pair == nil {
		if key.Require {
			return fetchResult{}, fmt.Errorf("%w: key %s is required but not found", ErrRequiredKeyMissing, effective)
		}
		p.logger.Debug("optional key not found", logging.Field{Key: "key", Value: effective})
		return fetchResult{}, nil
	}

	value, err := coerce(key.Type, pair.Value, effective)
	if err != nil {
		return fetchResult{}, err
	}
	return fetchResult{value: value, found: true}, nil
}
