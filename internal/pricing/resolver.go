package pricing

import (
	"time"

	"gasline/internal/domain"
)

// PriceFor evaluates a pricelist against one cart line and returns the
// authoritative unit price, or nil when no rule can be resolved outside the
// back office. Rules must arrive sorted by specificity (product, category,
// global) and by ascending minimum quantity within each scope; the first
// rule whose quantity threshold and date window match wins and later rules
// are not reconsidered.
func PriceFor(rules []domain.PriceRule, productID, categoryID int, listPrice float64, quantity int, now time.Time) *float64 {
	for _, rule := range rules {
		if !rule.AppliesTo(productID, categoryID) {
			continue
		}
		if float64(quantity) < rule.MinQuantity {
			continue
		}
		if !rule.ActiveAt(now) {
			continue
		}
		switch rule.Mode {
		case domain.ComputeFixed:
			price := rule.FixedPrice
			return &price
		case domain.ComputePercentage:
			price := listPrice * (1 - rule.PercentPrice/100)
			return &price
		default:
			// formula pricing runs inside the back office only
			return nil
		}
	}
	return nil
}

// TaxRateFor sums the tax percentages attached to a product for a single
// company scope. Taxes from different companies are never summed together:
// the group matching the selling company wins, and when the selling company
// has no entries the first group encountered is used instead.
func TaxRateFor(taxIDs []int, table map[int]domain.TaxRecord, sellingCompanyID int) float64 {
	groups := make(map[int][]domain.TaxRecord)
	order := make([]int, 0, 2)
	for _, id := range taxIDs {
		rec, ok := table[id]
		if !ok {
			continue
		}
		if _, seen := groups[rec.CompanyID]; !seen {
			order = append(order, rec.CompanyID)
		}
		groups[rec.CompanyID] = append(groups[rec.CompanyID], rec)
	}
	if len(groups) == 0 {
		return 0
	}

	selected, ok := groups[sellingCompanyID]
	if !ok {
		selected = groups[order[0]]
	}

	var rate float64
	for _, rec := range selected {
		rate += rec.Amount
	}
	return rate
}
