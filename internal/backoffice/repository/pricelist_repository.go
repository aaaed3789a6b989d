package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
)

type MySQLPricelistRepository struct {
	db *sql.DB
}

func NewMySQLPricelistRepository(db *sql.DB) *MySQLPricelistRepository {
	return &MySQLPricelistRepository{db: db}
}

// ListRules returns the active pricelist ordered for first-match evaluation:
// product-scoped rules first, then category-scoped, then global, and by
// ascending minimum quantity within each scope.
func (r *MySQLPricelistRepository) ListRules(ctx context.Context) ([]domain.PriceRule, error) {
	query := `
		SELECT id, appliedOn, productId, categoryId, computePrice, fixedPrice,
		       percentPrice, minQuantity, dateStart, dateEnd
		FROM PricelistItem
		ORDER BY CASE appliedOn
		           WHEN 'product' THEN 0
		           WHEN 'category' THEN 1
		           ELSE 2
		         END,
		         minQuantity ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying pricelist items: %w", err)
	}
	defer rows.Close()

	var rules []domain.PriceRule
	for rows.Next() {
		var rule domain.PriceRule
		var scope, mode string
		err := rows.Scan(
			&rule.ID, &scope, &rule.ProductID, &rule.CategoryID, &mode,
			&rule.FixedPrice, &rule.PercentPrice, &rule.MinQuantity,
			&rule.DateStart, &rule.DateEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pricelist row: %w", err)
		}
		rule.Scope = domain.RuleScope(scope)
		rule.Mode = domain.ComputeMode(mode)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pricelist rows: %w", err)
	}

	return rules, nil
}
