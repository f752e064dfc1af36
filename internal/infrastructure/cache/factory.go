package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/caixa/backend/internal/infrastructure/config"
)

// SummaryCacheFactory creates summary caches based on configuration
type SummaryCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based summary cache
func (f *SummaryCacheFactory) CreateRedisCache() (SummaryCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisSummaryCache(redisCfg, f.cacheConfig.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis summary cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory summary cache
// This is suitable for single-instance deployments and testing
func (f *SummaryCacheFactory) CreateInMemoryCache() SummaryCache {
	return NewInMemorySummaryCache(
		WithTTL(f.cacheConfig.TTL),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache creates a summary cache based on the configured backend.
// The memory backend is served directly. The redis backend is tried first,
// falling back to in-memory when Redis is unavailable and fallback is allowed.
func (f *SummaryCacheFactory) CreateCache() (SummaryCache, error) {
	if f.cacheConfig.Backend == "memory" {
		f.logger.Info("using in-memory summary cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis summary cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory summary cache. "+
		"Instances will memoize projections independently.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
