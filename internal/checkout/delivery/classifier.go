package delivery

import "gasline/internal/domain"

// Classify partitions cart items into the restricted group (gas/hazmat,
// owned fleet or branch pickup only) and the general group (third-party
// carrier allowed).
func Classify(items []domain.CartItem) (restricted, general []domain.CartItem) {
	for _, item := range items {
		if item.Restricted() {
			restricted = append(restricted, item)
		} else {
			general = append(general, item)
		}
	}
	return restricted, general
}

type MethodAvailability struct {
	RestrictedMethods []domain.DeliveryMethod
	GeneralMethods    []domain.DeliveryMethod
	IsMixed           bool
}

// AvailableMethods derives the delivery methods legally available per
// partition for a shipping postal code. Own-fleet delivery requires the zip
// to fall inside the configured delivery zone; branch pickup is always
// available; carrier delivery applies to the general partition only.
func AvailableMethods(items []domain.CartItem, zip string, zoneZips []string) MethodAvailability {
	restricted, general := Classify(items)
	inZone := zipInZone(zip, zoneZips)

	avail := MethodAvailability{
		IsMixed: len(restricted) > 0 && len(general) > 0,
	}

	if len(restricted) > 0 {
		avail.RestrictedMethods = append(avail.RestrictedMethods, domain.DeliveryPickup)
		if inZone {
			avail.RestrictedMethods = append(avail.RestrictedMethods, domain.DeliveryOwnFleet)
		}
	}
	if len(general) > 0 {
		avail.GeneralMethods = append(avail.GeneralMethods, domain.DeliveryPickup)
		if inZone {
			avail.GeneralMethods = append(avail.GeneralMethods, domain.DeliveryOwnFleet)
		}
		avail.GeneralMethods = append(avail.GeneralMethods, domain.DeliveryCarrier)
	}

	return avail
}

func zipInZone(zip string, zoneZips []string) bool {
	for _, z := range zoneZips {
		if z == zip {
			return true
		}
	}
	return false
}
