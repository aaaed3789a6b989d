package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
)

// MySQLAddressRepository manages partner child rows of type delivery or
// invoice. Address sub-records live in the Partner table, discriminated by
// parentId and type.
type MySQLAddressRepository struct {
	db *sql.DB
}

func NewMySQLAddressRepository(db *sql.DB) *MySQLAddressRepository {
	return &MySQLAddressRepository{db: db}
}

func (r *MySQLAddressRepository) Create(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
	query := `
		INSERT INTO Partner (parentId, type, name, street, street2, city, state, zip,
		                     country, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		parentID, string(typ), name, a.Street, a.Street2, a.City, a.State, a.Zip,
		a.Country, a.Lat, a.Lng,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting %s address: %w", typ, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting address insert id: %w", err)
	}

	return id, nil
}

func (r *MySQLAddressRepository) FindChildren(ctx context.Context, parentID int64, typ domain.AddressType) ([]domain.Partner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Partner
		WHERE parentId = ?
		  AND type = ?
	`, partnerColumns)

	rows, err := r.db.QueryContext(ctx, query, parentID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("querying %s addresses: %w", typ, err)
	}
	defer rows.Close()

	var children []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := scanPartner(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning address row: %w", err)
		}
		children = append(children, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating address rows: %w", err)
	}

	return children, nil
}

// FindByStreetCity returns the first child of the given type matching the
// street and city, or nil when no such record exists.
func (r *MySQLAddressRepository) FindByStreetCity(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Partner
		WHERE parentId = ?
		  AND type = ?
		  AND street = ?
		  AND city = ?
		LIMIT 1
	`, partnerColumns)

	var p domain.Partner
	err := scanPartner(r.db.QueryRowContext(ctx, query, parentID, string(typ), street, city), &p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying address by street and city: %w", err)
	}

	return &p, nil
}
