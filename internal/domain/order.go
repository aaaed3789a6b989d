package domain

import "time"

type Order struct {
	ID                int64
	PartnerID         int64
	ShippingAddressID int64
	InvoiceAddressID  int64
	WarehouseID       *int
	CompanyID         int
	Notes             string
	Status            string
	TotalPrice        float64
	Lines             []OrderLine
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const (
	OrderStatusCreated  = "CREATED"
	OrderStatusCanceled = "CANCELED"
)

// OrderLine is always expressed in the product's base unit of measure. For a
// gas fill against a container of known capacity the quantity is
// capacity x containers and the unit price is the fill price / capacity.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int
	Name      string
	Quantity  float64
	PriceUnit float64
	TaxRate   float64
}
