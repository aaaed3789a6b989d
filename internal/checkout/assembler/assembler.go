package assembler

import (
	"fmt"
	"strings"

	"gasline/internal/domain"
)

// LinePrice is the authoritative server-side price for one cart line, keyed
// by cartKey. Client-supplied hints never reach this package.
type LinePrice struct {
	Unit    float64
	TaxRate float64
}

// AssembledOrder is one back-office order payload: the lines of a single
// cart partition plus its delivery method and fulfillment notes.
type AssembledOrder struct {
	Items  []domain.CartItem
	Lines  []domain.OrderLine
	Method domain.DeliveryMethod
	Notes  string
}

// ShouldSplit reports whether the cart must become two independent orders:
// only when it is mixed and the two chosen methods differ.
func ShouldSplit(restricted, general []domain.CartItem, primary, secondary domain.DeliveryMethod) bool {
	if len(restricted) == 0 || len(general) == 0 {
		return false
	}
	return primary != secondary
}

// Assemble converts the classified cart into one or two order payloads.
// When the cart splits, the restricted partition travels under the primary
// method and the general partition under the secondary one; otherwise a
// single order carries every line with a combined notes block.
func Assemble(data domain.CheckoutData, restricted, general []domain.CartItem, prices map[string]LinePrice, branch *domain.Company) []AssembledOrder {
	primary := data.DeliveryMethod
	secondary := data.SecondaryMethod
	if secondary == "" {
		secondary = primary
	}

	if ShouldSplit(restricted, general, primary, secondary) {
		return []AssembledOrder{
			{
				Items:  restricted,
				Lines:  BuildLines(restricted, prices),
				Method: primary,
				Notes:  DeliveryNotes(primary, branch, data.Notes),
			},
			{
				Items:  general,
				Lines:  BuildLines(general, prices),
				Method: secondary,
				Notes:  DeliveryNotes(secondary, branch, data.Notes),
			},
		}
	}

	all := make([]domain.CartItem, 0, len(restricted)+len(general))
	all = append(all, restricted...)
	all = append(all, general...)

	return []AssembledOrder{
		{
			Items:  all,
			Lines:  BuildLines(all, prices),
			Method: primary,
			Notes:  DeliveryNotes(primary, branch, data.Notes),
		},
	}
}

// BuildLines converts cart lines to order lines in the product's base unit
// of measure. A gas fill against a container of known capacity becomes
// capacity x containers at the per-unit fill price; everything else passes
// through unchanged. A line without an entry in prices is dropped: the cart
// item's own Price/TaxRate fields are advisory display hints and must never
// become an order line.
func BuildLines(items []domain.CartItem, prices map[string]LinePrice) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		price, ok := prices[item.CartKey]
		if !ok {
			continue
		}

		quantity := float64(item.Quantity)
		unit := price.Unit
		if item.ContainerCapacity != nil && *item.ContainerCapacity > 0 {
			quantity = *item.ContainerCapacity * float64(item.Quantity)
			unit = price.Unit / *item.ContainerCapacity
		}

		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  quantity,
			PriceUnit: unit,
			TaxRate:   price.TaxRate,
		})
	}
	return lines
}

// DeliveryNotes builds the free-text block fulfillment staff read on the
// order. It has no structured schema and nothing parses it downstream.
func DeliveryNotes(method domain.DeliveryMethod, branch *domain.Company, buyerNotes string) string {
	var b strings.Builder

	switch method {
	case domain.DeliveryPickup:
		if branch != nil {
			b.WriteString(fmt.Sprintf("Pickup at branch: %s, %s, %s", branch.Name, branch.Street, branch.City))
		} else {
			b.WriteString("Pickup at branch")
		}
	case domain.DeliveryOwnFleet:
		b.WriteString("Delivery by own fleet")
	case domain.DeliveryCarrier:
		b.WriteString("Delivery by carrier")
	default:
		b.WriteString("Delivery method: " + string(method))
	}

	if strings.TrimSpace(buyerNotes) != "" {
		b.WriteString("\nBuyer notes: ")
		b.WriteString(strings.TrimSpace(buyerNotes))
	}

	return b.String()
}
