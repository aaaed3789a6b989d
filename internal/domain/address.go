package domain

type Address struct {
	Street  string
	Street2 string
	City    string
	State   string
	Zip     string
	Country string
	Lat     *float64
	Lng     *float64
}

// AddressSlot holds exactly one of a saved-address id or an inline address.
// The saved id is authoritative whenever present.
type AddressSlot struct {
	SavedID *int64
	Inline  *Address
}

func SavedAddress(id int64) AddressSlot {
	return AddressSlot{SavedID: &id}
}

func InlineAddress(a Address) AddressSlot {
	return AddressSlot{Inline: &a}
}

func (s AddressSlot) IsSaved() bool {
	return s.SavedID != nil
}

func (s AddressSlot) IsEmpty() bool {
	return s.SavedID == nil && s.Inline == nil
}

// Fields returns the inline address, or a zero value when the slot is saved
// or empty.
func (s AddressSlot) Fields() Address {
	if s.Inline == nil {
		return Address{}
	}
	return *s.Inline
}
