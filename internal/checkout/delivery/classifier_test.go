package delivery

import (
	"testing"

	"gasline/internal/domain"
)

func gasItem(key string) domain.CartItem {
	return domain.CartItem{CartKey: key, Category: domain.CategoryGas}
}

func supplyItem(key string) domain.CartItem {
	return domain.CartItem{CartKey: key, Category: domain.CategorySupply}
}

func TestClassify_PartitionsByRestriction(t *testing.T) {
	hazmat := supplyItem("c")
	hazmat.Hazmat = true

	restricted, general := Classify([]domain.CartItem{
		gasItem("a"), supplyItem("b"), hazmat,
	})

	if len(restricted) != 2 {
		t.Fatalf("expected 2 restricted items, got %d", len(restricted))
	}
	if restricted[0].CartKey != "a" || restricted[1].CartKey != "c" {
		t.Errorf("unexpected restricted partition: %v", restricted)
	}
	if len(general) != 1 || general[0].CartKey != "b" {
		t.Errorf("unexpected general partition: %v", general)
	}
}

func TestClassify_EmptyCart(t *testing.T) {
	restricted, general := Classify(nil)
	if restricted != nil || general != nil {
		t.Errorf("expected empty partitions, got %v / %v", restricted, general)
	}
}

func TestAvailableMethods_InsideDeliveryZone(t *testing.T) {
	items := []domain.CartItem{gasItem("a"), supplyItem("b")}

	avail := AvailableMethods(items, "2000", []string{"2000", "2126"})

	if !avail.IsMixed {
		t.Error("expected mixed cart")
	}
	if !hasMethod(avail.RestrictedMethods, domain.DeliveryOwnFleet) {
		t.Errorf("own fleet must be available in zone, got %v", avail.RestrictedMethods)
	}
	if hasMethod(avail.RestrictedMethods, domain.DeliveryCarrier) {
		t.Error("carrier must never serve the restricted partition")
	}
	if !hasMethod(avail.GeneralMethods, domain.DeliveryCarrier) {
		t.Errorf("carrier must serve the general partition, got %v", avail.GeneralMethods)
	}
}

func TestAvailableMethods_OutsideDeliveryZone(t *testing.T) {
	items := []domain.CartItem{gasItem("a"), supplyItem("b")}

	avail := AvailableMethods(items, "9999", []string{"2000"})

	if hasMethod(avail.RestrictedMethods, domain.DeliveryOwnFleet) {
		t.Error("own fleet must not be offered outside the zone")
	}
	if !hasMethod(avail.RestrictedMethods, domain.DeliveryPickup) {
		t.Error("pickup must always be available")
	}
	if !hasMethod(avail.GeneralMethods, domain.DeliveryCarrier) {
		t.Error("carrier must remain available for the general partition")
	}
}

func TestAvailableMethods_SinglePartition(t *testing.T) {
	avail := AvailableMethods([]domain.CartItem{gasItem("a")}, "2000", []string{"2000"})

	if avail.IsMixed {
		t.Error("single-partition cart must not be mixed")
	}
	if len(avail.GeneralMethods) != 0 {
		t.Errorf("expected no general methods, got %v", avail.GeneralMethods)
	}
}

func hasMethod(methods []domain.DeliveryMethod, m domain.DeliveryMethod) bool {
	for _, method := range methods {
		if method == m {
			return true
		}
	}
	return false
}
