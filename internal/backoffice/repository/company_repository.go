package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
	"gasline/internal/errors"
)

type MySQLCompanyRepository struct {
	db *sql.DB
}

func NewMySQLCompanyRepository(db *sql.DB) *MySQLCompanyRepository {
	return &MySQLCompanyRepository{db: db}
}

func (r *MySQLCompanyRepository) FindByID(ctx context.Context, id int) (*domain.Company, error) {
	query := `
		SELECT id, name, street, city, zip, isBranch
		FROM Company
		WHERE id = ?
	`

	var company domain.Company
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.Street, &company.City, &company.Zip,
		&company.IsBranch,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("company with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying company by id: %w", err)
	}

	return &company, nil
}
