package dto

type DeliveryOptionsRequest struct {
	Zip   string        `json:"zip"`
	Items []CartItemDTO `json:"items"`
}

type DeliveryOptionsResponse struct {
	RestrictedMethods []string `json:"restrictedMethods"`
	GeneralMethods    []string `json:"generalMethods"`
	IsMixed           bool     `json:"isMixed"`
}
