package assembler

import (
	"strings"
	"testing"

	"gasline/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildLines_GasFillDerivation(t *testing.T) {
	// Two 10 kg containers filled at 500 per fill become 20 kg at 50 per kg.
	items := []domain.CartItem{{
		CartKey:           "fill-1",
		ProductID:         7,
		Name:              "Propane fill 10kg",
		Quantity:          2,
		Category:          domain.CategoryGas,
		ContainerCapacity: floatPtr(10),
	}}
	prices := map[string]LinePrice{
		"fill-1": {Unit: 500, TaxRate: 21},
	}

	lines := BuildLines(items, prices)

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 20 {
		t.Errorf("expected quantity 20, got %v", lines[0].Quantity)
	}
	if lines[0].PriceUnit != 50 {
		t.Errorf("expected unit price 50, got %v", lines[0].PriceUnit)
	}
	if lines[0].TaxRate != 21 {
		t.Errorf("expected tax rate 21, got %v", lines[0].TaxRate)
	}
}

func TestBuildLines_PassThroughWithoutCapacity(t *testing.T) {
	items := []domain.CartItem{{
		CartKey:   "reg-1",
		ProductID: 9,
		Name:      "Regulator",
		Quantity:  3,
	}}
	prices := map[string]LinePrice{
		"reg-1": {Unit: 120, TaxRate: 21},
	}

	lines := BuildLines(items, prices)

	if lines[0].Quantity != 3 || lines[0].PriceUnit != 120 {
		t.Errorf("expected 3 x 120 pass-through, got %v x %v", lines[0].Quantity, lines[0].PriceUnit)
	}
}

func TestBuildLines_DropsUnpricedLines(t *testing.T) {
	// A line without a server-side price must not inherit the advisory
	// Price/TaxRate fields from the cart item.
	items := []domain.CartItem{
		{CartKey: "x", Quantity: 1, Price: 0.01, TaxRate: 0},
		{CartKey: "reg-1", Quantity: 1},
	}
	prices := map[string]LinePrice{
		"reg-1": {Unit: 120, TaxRate: 21},
	}

	lines := BuildLines(items, prices)

	if len(lines) != 1 {
		t.Fatalf("expected the unpriced line dropped, got %d lines", len(lines))
	}
	if lines[0].PriceUnit != 120 {
		t.Errorf("expected the priced line only, got %+v", lines[0])
	}
}

func TestShouldSplit(t *testing.T) {
	gas := []domain.CartItem{{CartKey: "g", Category: domain.CategoryGas}}
	supply := []domain.CartItem{{CartKey: "s", Category: domain.CategorySupply}}

	cases := []struct {
		name               string
		restricted         []domain.CartItem
		general            []domain.CartItem
		primary, secondary domain.DeliveryMethod
		want               bool
	}{
		{"mixed different methods", gas, supply, domain.DeliveryOwnFleet, domain.DeliveryCarrier, true},
		{"mixed same method", gas, supply, domain.DeliveryOwnFleet, domain.DeliveryOwnFleet, false},
		{"restricted only", gas, nil, domain.DeliveryOwnFleet, domain.DeliveryCarrier, false},
		{"general only", nil, supply, domain.DeliveryOwnFleet, domain.DeliveryCarrier, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldSplit(tc.restricted, tc.general, tc.primary, tc.secondary); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAssemble_SplitsMixedCartOnDifferentMethods(t *testing.T) {
	gas := []domain.CartItem{{CartKey: "g", Category: domain.CategoryGas, Quantity: 1}}
	supply := []domain.CartItem{{CartKey: "s", Category: domain.CategorySupply, Quantity: 1}}
	data := domain.CheckoutData{
		DeliveryMethod:  domain.DeliveryOwnFleet,
		SecondaryMethod: domain.DeliveryCarrier,
	}
	prices := map[string]LinePrice{
		"g": {Unit: 500, TaxRate: 21},
		"s": {Unit: 120, TaxRate: 21},
	}

	orders := Assemble(data, gas, supply, prices, nil)

	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Method != domain.DeliveryOwnFleet || orders[0].Items[0].CartKey != "g" {
		t.Errorf("restricted partition must travel under the primary method, got %+v", orders[0])
	}
	if orders[1].Method != domain.DeliveryCarrier || orders[1].Items[0].CartKey != "s" {
		t.Errorf("general partition must travel under the secondary method, got %+v", orders[1])
	}
}

func TestAssemble_SingleOrderWhenSecondaryDefaults(t *testing.T) {
	gas := []domain.CartItem{{CartKey: "g", Category: domain.CategoryGas, Quantity: 1}}
	supply := []domain.CartItem{{CartKey: "s", Category: domain.CategorySupply, Quantity: 1}}
	data := domain.CheckoutData{DeliveryMethod: domain.DeliveryPickup}
	prices := map[string]LinePrice{
		"g": {Unit: 500, TaxRate: 21},
		"s": {Unit: 120, TaxRate: 21},
	}

	orders := Assemble(data, gas, supply, prices, nil)

	if len(orders) != 1 {
		t.Fatalf("expected a single order, got %d", len(orders))
	}
	if len(orders[0].Lines) != 2 {
		t.Errorf("expected both partitions in one order, got %d lines", len(orders[0].Lines))
	}
}

func TestDeliveryNotes_PickupWithBranch(t *testing.T) {
	branch := &domain.Company{Name: "Sucursal Centro", Street: "Mitre 500", City: "Rosario"}

	notes := DeliveryNotes(domain.DeliveryPickup, branch, "  ring the bell  ")

	if !strings.Contains(notes, "Sucursal Centro") || !strings.Contains(notes, "Mitre 500") {
		t.Errorf("expected branch name and address in notes, got %q", notes)
	}
	if !strings.Contains(notes, "Buyer notes: ring the bell") {
		t.Errorf("expected trimmed buyer notes, got %q", notes)
	}
}

func TestDeliveryNotes_NoBranchNoBuyerNotes(t *testing.T) {
	notes := DeliveryNotes(domain.DeliveryOwnFleet, nil, "")

	if notes != "Delivery by own fleet" {
		t.Errorf("unexpected notes: %q", notes)
	}
}
