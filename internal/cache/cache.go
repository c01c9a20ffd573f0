package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/fungccc/HKMortgage2026/internal/domain"
)

// ResultCache stores finished simulation results by parameter key. Results
// are deterministic, so a hit is always interchangeable with a fresh run.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.SimulationResult, bool, error)
	Set(ctx context.Context, key string, result *domain.SimulationResult) error
	Name() string
}

// Key fingerprints a parameter set. namespace separates simulators built on
// different tables.
func Key(namespace string, params domain.SimulationParameters) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters: %w", err)
	}
	return fmt.Sprintf("sim:%s:%016x", namespace, xxhash.Sum64(data)), nil
}

// TablesNamespace fingerprints a set of market tables.
func TablesNamespace(tables domain.MarketTables) (string, error) {
	data, err := json.Marshal(tables)
	if err != nil {
		return "", fmt.Errorf("failed to encode tables: %w", err)
	}
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64(data))), nil
}

// MemoryCache is a bounded in-process LRU with per-entry expiry.
type MemoryCache struct {
	lru *expirable.LRU[string, *domain.SimulationResult]
}

// NewMemoryCache creates an LRU holding at most size results. A zero ttl
// keeps entries until they are evicted.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 1
	}
	return &MemoryCache{lru: expirable.NewLRU[string, *domain.SimulationResult](size, nil, ttl)}
}

func (c *MemoryCache) Name() string { return "memory" }

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.SimulationResult, bool, error) {
	res, ok := c.lru.Get(key)
	return res, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, result *domain.SimulationResult) error {
	c.lru.Add(key, result)
	return nil
}

// Len reports the number of cached results, including expired ones not yet
// swept.
func (c *MemoryCache) Len() int { return c.lru.Len() }
