package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
)

type MySQLTaxRepository struct {
	db *sql.DB
}

func NewMySQLTaxRepository(db *sql.DB) *MySQLTaxRepository {
	return &MySQLTaxRepository{db: db}
}

func (r *MySQLTaxRepository) ListTaxes(ctx context.Context) (map[int]domain.TaxRecord, error) {
	query := `
		SELECT id, name, amount, companyId
		FROM Tax
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying taxes: %w", err)
	}
	defer rows.Close()

	table := make(map[int]domain.TaxRecord)
	for rows.Next() {
		var rec domain.TaxRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Amount, &rec.CompanyID); err != nil {
			return nil, fmt.Errorf("scanning tax row: %w", err)
		}
		table[rec.ID] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tax rows: %w", err)
	}

	return table, nil
}
