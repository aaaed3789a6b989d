package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
	"gasline/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Create persists the order header and its lines in one transaction and
// returns the new order id. The stored total is the tax-exclusive sum of the
// lines.
func (r *MySQLOrderRepository) Create(ctx context.Context, order domain.Order) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning order transaction: %w", err)
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	var totalPrice float64
	for _, line := range order.Lines {
		totalPrice += line.Quantity * line.PriceUnit
	}

	headerQuery := `
		INSERT INTO Orders (partnerId, shippingAddressId, invoiceAddressId, warehouseId,
		                    companyId, notes, status, totalPrice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, headerQuery,
		order.PartnerID, order.ShippingAddressID, order.InvoiceAddressID, order.WarehouseID,
		order.CompanyID, order.Notes, domain.OrderStatusCreated, totalPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting order insert id: %w", err)
	}

	lineQuery := `
		INSERT INTO OrderItems (orderId, productId, name, quantity, priceUnit, taxRate)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, lineQuery,
			orderID, line.ProductID, line.Name, line.Quantity, line.PriceUnit, line.TaxRate,
		); err != nil {
			return 0, fmt.Errorf("inserting order line for product %d: %w", line.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}

	return orderID, nil
}

// Cancel marks an order canceled. Used as the saga compensation when a
// later split-order step fails.
func (r *MySQLOrderRepository) Cancel(ctx context.Context, id int64) error {
	query := `UPDATE Orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, domain.OrderStatusCanceled, id)
	if err != nil {
		return fmt.Errorf("canceling order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, partnerId, shippingAddressId, invoiceAddressId, warehouseId,
		       companyId, notes, status, totalPrice, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.PartnerID, &order.ShippingAddressID, &order.InvoiceAddressID,
		&order.WarehouseID, &order.CompanyID, &order.Notes, &order.Status,
		&order.TotalPrice, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}
