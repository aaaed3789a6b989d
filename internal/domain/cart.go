package domain

type ProductCategory string

const (
	CategoryGas    ProductCategory = "gas"
	CategorySupply ProductCategory = "supply"
)

type ContainerOwnership string

const (
	OwnershipOwn      ContainerOwnership = "own"
	OwnershipExchange ContainerOwnership = "exchange"
	OwnershipLoan     ContainerOwnership = "loan"
)

// CartItem is one purchasable line of the client cart snapshot. Price and
// TaxRate are advisory hints from the storefront; the checkout path always
// recomputes both server-side before creating an order.
type CartItem struct {
	CartKey           string
	ProductID         int
	VariantID         *int
	Name              string
	Quantity          int
	Price             float64
	TaxRate           float64
	Category          ProductCategory
	Hazmat            bool
	Ownership         *ContainerOwnership
	ContainerCapacity *float64
}

// Restricted reports whether the item may only travel on the owned fleet or
// be picked up at a branch.
func (i CartItem) Restricted() bool {
	return i.Category == CategoryGas || i.Hazmat
}
