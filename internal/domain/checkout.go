package domain

type DeliveryMethod string

const (
	DeliveryOwnFleet DeliveryMethod = "own_delivery"
	DeliveryPickup   DeliveryMethod = "branch_pickup"
	DeliveryCarrier  DeliveryMethod = "carrier_delivery"
)

type FiscalRegime string

const (
	RegimeResponsableInscripto FiscalRegime = "responsable_inscripto"
	RegimeMonotributo          FiscalRegime = "monotributo"
	RegimeConsumidorFinal      FiscalRegime = "consumidor_final"
	RegimeExento               FiscalRegime = "exento"
)

// CheckoutData is the full checkout submission as it leaves the storefront
// form. Address slots carry either a saved-address id or inline fields,
// never both.
type CheckoutData struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string

	TaxID          string
	FiscalRegime   FiscalRegime
	SaveFiscalData bool

	Shipping         AddressSlot
	DeliveryMethod   DeliveryMethod
	DeliveryBranchID *int
	// SecondaryMethod is set only for mixed carts: it is the method chosen
	// for the general partition while DeliveryMethod covers the restricted one.
	SecondaryMethod DeliveryMethod

	Billing               AddressSlot
	BillingSameAsShipping bool

	Notes        string
	DeliveryCost float64
}

// AuthSession links the submission to an already-authenticated buyer. A nil
// session means guest checkout.
type AuthSession struct {
	PartnerID        int64
	CompanyPartnerID *int64
	HomeWarehouseID  *int
}
