package identity

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gasline/internal/domain"
)

type PartnerRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Partner, error)
	Create(ctx context.Context, p domain.Partner) (int64, error)
	UpdateFiscalData(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error
}

type AddressRepository interface {
	Create(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error)
	FindByStreetCity(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error)
}

// Resolution links the checkout to back-office records: the owning
// commercial entity plus the shipping and invoice address sub-records the
// order will reference.
type Resolution struct {
	PartnerID         int64
	ShippingAddressID int64
	InvoiceAddressID  int64
}

type Resolver struct {
	partners  PartnerRepository
	addresses AddressRepository
	logger    *zap.Logger
}

func NewResolver(partners PartnerRepository, addresses AddressRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		partners:  partners,
		addresses: addresses,
		logger:    logger,
	}
}

// Resolve returns the partner and address ids for the submission, creating
// back-office records as needed. A nil session means guest checkout. Any
// back-office failure propagates to the orchestrator; there is no retry
// here.
func (r *Resolver) Resolve(ctx context.Context, data domain.CheckoutData, auth *domain.AuthSession) (*Resolution, error) {
	if auth == nil {
		return r.resolveGuest(ctx, data)
	}
	return r.resolveAuthenticated(ctx, data, auth)
}

func (r *Resolver) resolveAuthenticated(ctx context.Context, data domain.CheckoutData, auth *domain.AuthSession) (*Resolution, error) {
	// The owning entity is the buyer's linked company, or the buyer itself.
	partnerID := auth.PartnerID
	if auth.CompanyPartnerID != nil {
		partnerID = *auth.CompanyPartnerID
	}

	if data.SaveFiscalData && data.TaxID != "" {
		if err := r.partners.UpdateFiscalData(ctx, partnerID, data.TaxID, data.FiscalRegime); err != nil {
			return nil, fmt.Errorf("persisting fiscal data: %w", err)
		}
	}

	shippingID, err := r.resolveShipping(ctx, partnerID, data)
	if err != nil {
		return nil, err
	}

	invoiceID, err := r.resolveInvoice(ctx, partnerID, shippingID, data)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		PartnerID:         partnerID,
		ShippingAddressID: shippingID,
		InvoiceAddressID:  invoiceID,
	}, nil
}

func (r *Resolver) resolveShipping(ctx context.Context, partnerID int64, data domain.CheckoutData) (int64, error) {
	if data.Shipping.IsSaved() {
		return *data.Shipping.SavedID, nil
	}

	id, err := r.addresses.Create(ctx, partnerID, domain.AddressTypeDelivery,
		contactName(data), data.Shipping.Fields())
	if err != nil {
		return 0, fmt.Errorf("creating delivery address: %w", err)
	}
	return id, nil
}

// resolveInvoice applies the billing priority: explicit saved id, newly
// entered billing address, then same-as-shipping. The last case never reuses
// the shipping id directly; an invoice-type record must exist for future
// checkouts, so an existing street+city match is reused or a new record is
// cloned from the shipping address.
func (r *Resolver) resolveInvoice(ctx context.Context, partnerID, shippingID int64, data domain.CheckoutData) (int64, error) {
	if data.Billing.IsSaved() {
		return *data.Billing.SavedID, nil
	}

	if !data.BillingSameAsShipping && data.Billing.Inline != nil {
		id, err := r.addresses.Create(ctx, partnerID, domain.AddressTypeInvoice,
			contactName(data), data.Billing.Fields())
		if err != nil {
			return 0, fmt.Errorf("creating invoice address: %w", err)
		}
		return id, nil
	}

	shippingFields, err := r.shippingFields(ctx, shippingID, data)
	if err != nil {
		return 0, err
	}

	match, err := r.addresses.FindByStreetCity(ctx, partnerID, domain.AddressTypeInvoice,
		shippingFields.Street, shippingFields.City)
	if err != nil {
		return 0, fmt.Errorf("searching invoice addresses: %w", err)
	}
	if match != nil {
		return match.ID, nil
	}

	clone := domain.Address{
		Street:  shippingFields.Street,
		Street2: shippingFields.Street2,
		City:    shippingFields.City,
		State:   shippingFields.State,
		Zip:     shippingFields.Zip,
		Country: shippingFields.Country,
	}
	id, err := r.addresses.Create(ctx, partnerID, domain.AddressTypeInvoice, contactName(data), clone)
	if err != nil {
		return 0, fmt.Errorf("creating invoice address from shipping: %w", err)
	}
	return id, nil
}

func (r *Resolver) shippingFields(ctx context.Context, shippingID int64, data domain.CheckoutData) (domain.Address, error) {
	if !data.Shipping.IsSaved() {
		return data.Shipping.Fields(), nil
	}
	saved, err := r.partners.FindByID(ctx, shippingID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("loading saved shipping address: %w", err)
	}
	return saved.PostalAddress(), nil
}

func (r *Resolver) resolveGuest(ctx context.Context, data domain.CheckoutData) (*Resolution, error) {
	// Billing fields are canonical for the new entity when the buyer
	// diverged them from shipping.
	canonical := data.Shipping.Fields()
	if !data.BillingSameAsShipping && data.Billing.Inline != nil {
		canonical = data.Billing.Fields()
	}

	partner := domain.Partner{
		Type:         domain.AddressTypeContact,
		Name:         entityName(data),
		Email:        data.Email,
		Phone:        data.Phone,
		Street:       canonical.Street,
		Street2:      canonical.Street2,
		City:         canonical.City,
		State:        canonical.State,
		Zip:          canonical.Zip,
		Country:      canonical.Country,
		Lat:          canonical.Lat,
		Lng:          canonical.Lng,
		VAT:          data.TaxID,
		FiscalRegime: data.FiscalRegime,
		IsCompany:    data.CompanyName != "",
	}

	partnerID, err := r.partners.Create(ctx, partner)
	if err != nil {
		return nil, fmt.Errorf("creating commercial entity: %w", err)
	}
	r.logger.Info("guest commercial entity created",
		zap.Int64("partnerId", partnerID), zap.Bool("isCompany", partner.IsCompany))

	// The new entity's own postal fields double as the shipping address
	// unless the buyer supplied a distinct one.
	shippingID := partnerID
	if !data.BillingSameAsShipping && data.Billing.Inline != nil && data.Shipping.Inline != nil {
		shippingID, err = r.addresses.Create(ctx, partnerID, domain.AddressTypeDelivery,
			contactName(data), data.Shipping.Fields())
		if err != nil {
			return nil, fmt.Errorf("creating guest delivery address: %w", err)
		}
	}

	return &Resolution{
		PartnerID:         partnerID,
		ShippingAddressID: shippingID,
		InvoiceAddressID:  partnerID,
	}, nil
}

func contactName(data domain.CheckoutData) string {
	return strings.TrimSpace(data.FirstName + " " + data.LastName)
}

func entityName(data domain.CheckoutData) string {
	if data.CompanyName != "" {
		return data.CompanyName
	}
	return contactName(data)
}
