package pricing

import (
	"context"
	"sync"
	"time"

	"gasline/internal/domain"
)

type PricelistRepository interface {
	ListRules(ctx context.Context) ([]domain.PriceRule, error)
}

type TaxRepository interface {
	ListTaxes(ctx context.Context) (map[int]domain.TaxRecord, error)
}

// RuleCache memoizes the pricelist and tax tables for a short TTL. Both
// tables are buyer-independent so sharing them across requests is safe; the
// TTL bounds staleness. The cache is an injected dependency, never a
// package-level singleton, so tests can substitute fixed data.
type RuleCache struct {
	pricelist PricelistRepository
	taxes     TaxRepository
	ttl       time.Duration
	now       func() time.Time

	mu          sync.Mutex
	rules       []domain.PriceRule
	taxTable    map[int]domain.TaxRecord
	rulesExpiry time.Time
	taxesExpiry time.Time
}

func NewRuleCache(pricelist PricelistRepository, taxes TaxRepository, ttl time.Duration) *RuleCache {
	return &RuleCache{
		pricelist: pricelist,
		taxes:     taxes,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (c *RuleCache) Rules(ctx context.Context) ([]domain.PriceRule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rules != nil && c.now().Before(c.rulesExpiry) {
		return c.rules, nil
	}
	rules, err := c.pricelist.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	c.rules = rules
	c.rulesExpiry = c.now().Add(c.ttl)
	return rules, nil
}

func (c *RuleCache) Taxes(ctx context.Context) (map[int]domain.TaxRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.taxTable != nil && c.now().Before(c.taxesExpiry) {
		return c.taxTable, nil
	}
	table, err := c.taxes.ListTaxes(ctx)
	if err != nil {
		return nil, err
	}
	c.taxTable = table
	c.taxesExpiry = c.now().Add(c.ttl)
	return table, nil
}
