package domain

import "time"

type AddressType string

const (
	AddressTypeContact  AddressType = "contact"
	AddressTypeDelivery AddressType = "delivery"
	AddressTypeInvoice  AddressType = "invoice"
)

// Partner is a back-office commercial entity. Top-level rows (ParentID nil)
// are buyers; child rows carry shipping/billing sub-addresses distinguished
// by Type.
type Partner struct {
	ID           int64
	ParentID     *int64
	Type         AddressType
	Name         string
	Email        string
	Phone        string
	Street       string
	Street2      string
	City         string
	State        string
	Zip          string
	Country      string
	Lat          *float64
	Lng          *float64
	VAT          string
	FiscalRegime FiscalRegime
	IsCompany    bool
	CompanyID    int
	PortalActive bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostalAddress returns the partner's own postal fields as an Address.
func (p Partner) PostalAddress() Address {
	return Address{
		Street:  p.Street,
		Street2: p.Street2,
		City:    p.City,
		State:   p.State,
		Zip:     p.Zip,
		Country: p.Country,
		Lat:     p.Lat,
		Lng:     p.Lng,
	}
}
