package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"gasline/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-\(\)]{5,19}$`)
	cuitRe  = regexp.MustCompile(`^[0-9]{11}$`)
)

// Validate checks a checkout submission against the field-level rules and
// returns a field -> message map, empty on success. It is pure and
// deterministic: the same payload always yields the same map. The storefront
// mirrors these rules for progressive validation, so messages are keyed by
// the form field path.
func Validate(data domain.CheckoutData) map[string]string {
	errs := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(data.FirstName)) < 2 {
		errs["firstName"] = "first name must be at least 2 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(data.LastName)) < 2 {
		errs["lastName"] = "last name must be at least 2 characters"
	}
	if !emailRe.MatchString(data.Email) {
		errs["email"] = "a valid email address is required"
	}
	if !phoneRe.MatchString(strings.TrimSpace(data.Phone)) {
		errs["phone"] = "a valid phone number is required"
	}
	if !cuitRe.MatchString(data.TaxID) {
		errs["taxId"] = "tax id must be an 11-digit number"
	}
	if data.FiscalRegime == "" {
		errs["fiscalRegime"] = "a fiscal regime selection is required"
	}

	switch data.DeliveryMethod {
	case "":
		errs["deliveryMethod"] = "a delivery method is required"
	case domain.DeliveryPickup:
		if data.DeliveryBranchID == nil {
			errs["deliveryBranchId"] = "a branch selection is required for pickup"
		}
	}

	// Saved addresses were validated when first stored; only inline slots
	// get field checks.
	if !data.Shipping.IsSaved() {
		validateAddress(errs, "shipping", data.Shipping.Fields())
	}
	if !data.BillingSameAsShipping && !data.Billing.IsSaved() && data.Billing.Inline != nil {
		validateAddress(errs, "billing", data.Billing.Fields())
	}

	return errs
}

func validateAddress(errs map[string]string, slot string, a domain.Address) {
	if strings.TrimSpace(a.Street) == "" {
		errs[slot+".street"] = "street is required"
	}
	if strings.TrimSpace(a.City) == "" {
		errs[slot+".city"] = "city is required"
	}
	if strings.TrimSpace(a.State) == "" {
		errs[slot+".state"] = "state is required"
	}
	if strings.TrimSpace(a.Zip) == "" {
		errs[slot+".zip"] = "zip is required"
	}
}
