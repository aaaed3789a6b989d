package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
)

type MySQLWarehouseRepository struct {
	db *sql.DB
}

func NewMySQLWarehouseRepository(db *sql.DB) *MySQLWarehouseRepository {
	return &MySQLWarehouseRepository{db: db}
}

func (r *MySQLWarehouseRepository) All(ctx context.Context) ([]domain.Warehouse, error) {
	query := `
		SELECT id, name, branchId, street, city, zip, lat, lng
		FROM Warehouse
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		var wh domain.Warehouse
		err := rows.Scan(&wh.ID, &wh.Name, &wh.BranchID, &wh.Street, &wh.City, &wh.Zip,
			&wh.Lat, &wh.Lng)
		if err != nil {
			return nil, fmt.Errorf("scanning warehouse row: %w", err)
		}
		warehouses = append(warehouses, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating warehouse rows: %w", err)
	}

	return warehouses, nil
}

// FindByBranch returns the warehouse bound 1:1 to a pickup branch, or nil
// when the branch has none.
func (r *MySQLWarehouseRepository) FindByBranch(ctx context.Context, branchID int) (*domain.Warehouse, error) {
	query := `
		SELECT id, name, branchId, street, city, zip, lat, lng
		FROM Warehouse
		WHERE branchId = ?
		LIMIT 1
	`

	var wh domain.Warehouse
	err := r.db.QueryRowContext(ctx, query, branchID).Scan(
		&wh.ID, &wh.Name, &wh.BranchID, &wh.Street, &wh.City, &wh.Zip, &wh.Lat, &wh.Lng,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying warehouse by branch: %w", err)
	}

	return &wh, nil
}
