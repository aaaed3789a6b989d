package identity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gasline/internal/domain"
)

type mockPartnerRepository struct {
	FindByIDFunc         func(ctx context.Context, id int64) (*domain.Partner, error)
	CreateFunc           func(ctx context.Context, p domain.Partner) (int64, error)
	UpdateFiscalDataFunc func(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error
}

func (m *mockPartnerRepository) FindByID(ctx context.Context, id int64) (*domain.Partner, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockPartnerRepository) Create(ctx context.Context, p domain.Partner) (int64, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockPartnerRepository) UpdateFiscalData(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error {
	return m.UpdateFiscalDataFunc(ctx, id, vat, regime)
}

type mockAddressRepository struct {
	CreateFunc           func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error)
	FindByStreetCityFunc func(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error)
}

func (m *mockAddressRepository) Create(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
	return m.CreateFunc(ctx, parentID, typ, name, a)
}

func (m *mockAddressRepository) FindByStreetCity(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error) {
	return m.FindByStreetCityFunc(ctx, parentID, typ, street, city)
}

func baseData() domain.CheckoutData {
	return domain.CheckoutData{
		FirstName:    "Ana",
		LastName:     "García",
		Email:        "ana@example.com",
		Phone:        "+54 341 5555555",
		TaxID:        "20304050607",
		FiscalRegime: domain.RegimeResponsableInscripto,
		Shipping: domain.InlineAddress(domain.Address{
			Street: "Av. Pellegrini 1234",
			City:   "Rosario",
			State:  "Santa Fe",
			Zip:    "2000",
		}),
		BillingSameAsShipping: true,
	}
}

func TestResolve_GuestSameAsShipping(t *testing.T) {
	var created domain.Partner
	partners := &mockPartnerRepository{
		CreateFunc: func(ctx context.Context, p domain.Partner) (int64, error) {
			created = p
			return 100, nil
		},
	}
	addresses := &mockAddressRepository{
		CreateFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
			t.Fatal("no address child expected for same-as-shipping guest")
			return 0, nil
		},
	}
	r := NewResolver(partners, addresses, zap.NewNop())

	res, err := r.Resolve(context.Background(), baseData(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.PartnerID != 100 || res.ShippingAddressID != 100 || res.InvoiceAddressID != 100 {
		t.Errorf("expected the new entity id everywhere, got %+v", res)
	}
	if created.Type != domain.AddressTypeContact {
		t.Errorf("expected contact type, got %q", created.Type)
	}
	if created.Name != "Ana García" {
		t.Errorf("expected contact name, got %q", created.Name)
	}
	if created.IsCompany {
		t.Error("no company name given, entity must not be a company")
	}
	if created.Street != "Av. Pellegrini 1234" || created.City != "Rosario" {
		t.Errorf("expected shipping fields on the entity, got %+v", created)
	}
	if created.VAT != "20304050607" || created.FiscalRegime != domain.RegimeResponsableInscripto {
		t.Errorf("expected fiscal data on the entity, got %+v", created)
	}
}

func TestResolve_GuestCompanyWithDistinctBilling(t *testing.T) {
	var created domain.Partner
	partners := &mockPartnerRepository{
		CreateFunc: func(ctx context.Context, p domain.Partner) (int64, error) {
			created = p
			return 100, nil
		},
	}
	var childType domain.AddressType
	var childAddr domain.Address
	addresses := &mockAddressRepository{
		CreateFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
			if parentID != 100 {
				t.Errorf("expected parent 100, got %d", parentID)
			}
			childType = typ
			childAddr = a
			return 101, nil
		},
	}
	r := NewResolver(partners, addresses, zap.NewNop())

	data := baseData()
	data.CompanyName = "Gases del Litoral SA"
	data.BillingSameAsShipping = false
	data.Billing = domain.InlineAddress(domain.Address{
		Street: "San Martín 800", City: "Rosario", State: "Santa Fe", Zip: "2000",
	})

	res, err := r.Resolve(context.Background(), data, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Name != "Gases del Litoral SA" || !created.IsCompany {
		t.Errorf("expected company entity, got %+v", created)
	}
	if created.Street != "San Martín 800" {
		t.Errorf("billing fields are canonical for the entity, got street %q", created.Street)
	}
	if childType != domain.AddressTypeDelivery || childAddr.Street != "Av. Pellegrini 1234" {
		t.Errorf("expected a delivery child from the shipping slot, got %q %+v", childType, childAddr)
	}
	if res.ShippingAddressID != 101 || res.InvoiceAddressID != 100 {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolve_AuthenticatedSavedSlots(t *testing.T) {
	partners := &mockPartnerRepository{
		UpdateFiscalDataFunc: func(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error {
			t.Fatal("fiscal update not opted in")
			return nil
		},
	}
	addresses := &mockAddressRepository{
		CreateFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
			t.Fatal("saved slots must be used verbatim")
			return 0, nil
		},
	}
	r := NewResolver(partners, addresses, zap.NewNop())

	data := baseData()
	data.Shipping = domain.SavedAddress(55)
	data.Billing = domain.SavedAddress(56)
	data.BillingSameAsShipping = false

	res, err := r.Resolve(context.Background(), data, &domain.AuthSession{PartnerID: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PartnerID != 40 || res.ShippingAddressID != 55 || res.InvoiceAddressID != 56 {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolve_AuthenticatedCompanyAndFiscalPersistence(t *testing.T) {
	var updatedID int64
	partners := &mockPartnerRepository{
		UpdateFiscalDataFunc: func(ctx context.Context, id int64, vat string, regime domain.FiscalRegime) error {
			updatedID = id
			if vat != "20304050607" {
				t.Errorf("unexpected vat %q", vat)
			}
			return nil
		},
	}
	company := int64(90)
	addresses := &mockAddressRepository{
		CreateFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
			if parentID != company {
				t.Errorf("children must hang off the company, got parent %d", parentID)
			}
			if typ == domain.AddressTypeDelivery {
				return 201, nil
			}
			return 202, nil
		},
		FindByStreetCityFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error) {
			return nil, nil
		},
	}
	r := NewResolver(partners, addresses, zap.NewNop())

	data := baseData()
	data.SaveFiscalData = true

	res, err := r.Resolve(context.Background(), data, &domain.AuthSession{
		PartnerID:        40,
		CompanyPartnerID: &company,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedID != company {
		t.Errorf("fiscal data must be persisted on the company, got %d", updatedID)
	}
	if res.PartnerID != company {
		t.Errorf("expected company as owning entity, got %d", res.PartnerID)
	}
	if res.ShippingAddressID != 201 || res.InvoiceAddressID != 202 {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolve_SameAsShippingReusesInvoiceMatch(t *testing.T) {
	partners := &mockPartnerRepository{}
	addresses := &mockAddressRepository{
		CreateFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, name string, a domain.Address) (int64, error) {
			if typ == domain.AddressTypeDelivery {
				return 201, nil
			}
			t.Fatal("a matching invoice record must be reused, not recreated")
			return 0, nil
		},
		FindByStreetCityFunc: func(ctx context.Context, parentID int64, typ domain.AddressType, street, city string) (*domain.Partner, error) {
			if street != "Av. Pellegrini 1234" || city != "Rosario" {
				t.Errorf("match must use the shipping street+city, got %q / %q", street, city)
			}
			return &domain.Partner{ID: 300, Type: domain.AddressTypeInvoice}, nil
		},
	}
	r := NewResolver(partners, addresses, zap.NewNop())

	res, err := r.Resolve(context.Background(), baseData(), &domain.AuthSession{PartnerID: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.InvoiceAddressID != 300 {
		t.Errorf("expected reused invoice record 300, got %d", res.InvoiceAddressID)
	}
}

func TestResolve_BackOfficeErrorPropagates(t *testing.T) {
	partners := &mockPartnerRepository{
		CreateFunc: func(ctx context.Context, p domain.Partner) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}
	r := NewResolver(partners, &mockAddressRepository{}, zap.NewNop())

	if _, err := r.Resolve(context.Background(), baseData(), nil); err == nil {
		t.Fatal("expected error to propagate")
	}
}
