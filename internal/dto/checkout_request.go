package dto

type CheckoutRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`

	TaxID          string `json:"taxId"`
	FiscalRegime   string `json:"fiscalRegime"`
	SaveFiscalData bool   `json:"saveFiscalData"`

	ShippingAddressID *int64      `json:"shippingAddressId,omitempty"`
	Shipping          *AddressDTO `json:"shipping,omitempty"`

	DeliveryMethod   string `json:"deliveryMethod"`
	DeliveryBranchID *int   `json:"deliveryBranchId,omitempty"`
	SecondaryMethod  string `json:"secondaryDeliveryMethod,omitempty"`

	BillingAddressID      *int64      `json:"billingAddressId,omitempty"`
	Billing               *AddressDTO `json:"billing,omitempty"`
	BillingSameAsShipping bool        `json:"billingSameAsShipping"`

	Notes        string  `json:"notes"`
	DeliveryCost float64 `json:"deliveryCost"`

	Items []CartItemDTO `json:"items"`
}

type AddressDTO struct {
	Street  string   `json:"street"`
	Street2 string   `json:"street2,omitempty"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	Zip     string   `json:"zip"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type CartItemDTO struct {
	CartKey           string   `json:"cartKey"`
	ProductID         int      `json:"productId"`
	VariantID         *int     `json:"variantId,omitempty"`
	Name              string   `json:"name"`
	Quantity          int      `json:"quantity"`
	Price             float64  `json:"price"`
	TaxRate           float64  `json:"taxRate"`
	Category          string   `json:"category"`
	Hazmat            bool     `json:"hazmat"`
	Ownership         *string  `json:"ownership,omitempty"`
	ContainerCapacity *float64 `json:"containerCapacity,omitempty"`
}
