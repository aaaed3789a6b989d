package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"gasline/internal/domain"
)

type mockPricelistRepository struct {
	calls         int
	ListRulesFunc func(ctx context.Context) ([]domain.PriceRule, error)
}

func (m *mockPricelistRepository) ListRules(ctx context.Context) ([]domain.PriceRule, error) {
	m.calls++
	return m.ListRulesFunc(ctx)
}

type mockTaxRepository struct {
	calls         int
	ListTaxesFunc func(ctx context.Context) (map[int]domain.TaxRecord, error)
}

func (m *mockTaxRepository) ListTaxes(ctx context.Context) (map[int]domain.TaxRecord, error) {
	m.calls++
	return m.ListTaxesFunc(ctx)
}

func TestRuleCache_MemoizesWithinTTL(t *testing.T) {
	pricelist := &mockPricelistRepository{
		ListRulesFunc: func(ctx context.Context) ([]domain.PriceRule, error) {
			return []domain.PriceRule{{ID: 1, Scope: domain.ScopeGlobal, Mode: domain.ComputeFixed}}, nil
		},
	}
	cache := NewRuleCache(pricelist, &mockTaxRepository{}, time.Minute)

	for i := 0; i < 3; i++ {
		rules, err := cache.Rules(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rules) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(rules))
		}
	}

	if pricelist.calls != 1 {
		t.Errorf("expected a single repository call, got %d", pricelist.calls)
	}
}

func TestRuleCache_RefetchesAfterExpiry(t *testing.T) {
	taxes := &mockTaxRepository{
		ListTaxesFunc: func(ctx context.Context) (map[int]domain.TaxRecord, error) {
			return map[int]domain.TaxRecord{1: {ID: 1, Amount: 21, CompanyID: 1}}, nil
		},
	}
	cache := NewRuleCache(&mockPricelistRepository{}, taxes, time.Minute)

	current := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	if _, err := cache.Taxes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(2 * time.Minute)
	if _, err := cache.Taxes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if taxes.calls != 2 {
		t.Errorf("expected a refetch after expiry, got %d calls", taxes.calls)
	}
}

func TestRuleCache_ErrorsPropagateAndAreNotCached(t *testing.T) {
	failing := errors.New("connection refused")
	healthy := false
	pricelist := &mockPricelistRepository{
		ListRulesFunc: func(ctx context.Context) ([]domain.PriceRule, error) {
			if !healthy {
				return nil, failing
			}
			return []domain.PriceRule{}, nil
		},
	}
	cache := NewRuleCache(pricelist, &mockTaxRepository{}, time.Minute)

	if _, err := cache.Rules(context.Background()); err == nil {
		t.Fatal("expected error from repository")
	}

	healthy = true
	if _, err := cache.Rules(context.Background()); err != nil {
		t.Fatalf("expected recovery after repository heals, got %v", err)
	}
	if pricelist.calls != 2 {
		t.Errorf("expected 2 calls, got %d", pricelist.calls)
	}
}
