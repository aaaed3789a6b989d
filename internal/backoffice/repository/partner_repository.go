package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gasline/internal/domain"
	"gasline/internal/errors"
)

type MySQLPartnerRepository struct {
	db *sql.DB
}

func NewMySQLPartnerRepository(db *sql.DB) *MySQLPartnerRepository {
	return &MySQLPartnerRepository{db: db}
}

const partnerColumns = `id, parentId, type, name, email, phone, street, street2, city, state, zip,
	       country, lat, lng, vat, fiscalRegime, isCompany, companyId, portalActive,
	       createdAt, updatedAt`

func (r *MySQLPartnerRepository) FindByID(ctx context.Context, id int64) (*domain.Partner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Partner
		WHERE id = ?
	`, partnerColumns)

	var p domain.Partner
	err := scanPartner(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("partner with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying partner by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLPartnerRepository) Create(ctx context.Context, p domain.Partner) (int64, error) {
	query := `
		INSERT INTO Partner (parentId, type, name, email, phone, street, street2, city, state,
		                     zip, country, lat, lng, vat, fiscalRegime, isCompany, companyId,
		                     portalActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ParentID, string(p.Type), p.Name, p.Email, p.Phone, p.Street, p.Street2, p.City,
		p.State, p.Zip, p.Country, p.Lat, p.Lng, p.VAT, string(p.FiscalRegime),
		p.IsCompany, p.CompanyID, p.PortalActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting partner: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting partner insert id: %w", err)
	}

	return id, nil
}

func (r *MySQLPartnerRepository) UpdateFiscalData(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error {
	query := `UPDATE Partner SET vat = ?, fiscalRegime = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, vat, string(regime), id)
	if err != nil {
		return fmt.Errorf("updating partner fiscal data: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("partner with id %d not found", id))
	}

	return nil
}

func (r *MySQLPartnerRepository) EnablePortal(ctx context.Context, id int64, token string) error {
	query := `UPDATE Partner SET portalActive = 1, portalToken = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("enabling partner portal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("partner with id %d not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartner(row rowScanner, p *domain.Partner) error {
	var typ, regime string
	err := row.Scan(
		&p.ID, &p.ParentID, &typ, &p.Name, &p.Email, &p.Phone, &p.Street, &p.Street2,
		&p.City, &p.State, &p.Zip, &p.Country, &p.Lat, &p.Lng, &p.VAT, &regime,
		&p.IsCompany, &p.CompanyID, &p.PortalActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Type = domain.AddressType(typ)
	p.FiscalRegime = domain.FiscalRegime(regime)
	return nil
}
