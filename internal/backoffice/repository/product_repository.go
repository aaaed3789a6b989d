package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gasline/internal/domain"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// FindByIDs returns the products keyed by id, including the tax ids attached
// to each. Deleted products are excluded.
func (r *MySQLProductRepository) FindByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error) {
	if len(ids) == 0 {
		return map[int]domain.Product{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, listPrice, categoryId, category, companyId, isActive, isDeleted,
		       createdAt, updatedAt
		FROM Product
		WHERE id IN (%s)
		  AND isDeleted = 0`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make(map[int]domain.Product)
	for rows.Next() {
		var p domain.Product
		var category string
		err := rows.Scan(
			&p.ID, &p.Name, &p.ListPrice, &p.CategoryID, &category, &p.CompanyID,
			&p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		p.Category = domain.ProductCategory(category)
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	if err := r.attachTaxIDs(ctx, placeholders, args, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *MySQLProductRepository) attachTaxIDs(ctx context.Context, placeholders []string, args []interface{}, products map[int]domain.Product) error {
	query := fmt.Sprintf(`
		SELECT productId, taxId
		FROM ProductTax
		WHERE productId IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying product taxes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, taxID int
		if err := rows.Scan(&productID, &taxID); err != nil {
			return fmt.Errorf("scanning product tax row: %w", err)
		}
		if p, ok := products[productID]; ok {
			p.TaxIDs = append(p.TaxIDs, taxID)
			products[productID] = p
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating product tax rows: %w", err)
	}

	return nil
}
