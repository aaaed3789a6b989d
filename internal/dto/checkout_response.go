package dto

type CheckoutResponse struct {
	TraceID     string `json:"traceId"`
	RedirectURL string `json:"redirectUrl"`
}

type CheckoutErrorResponse struct {
	TraceID string            `json:"traceId"`
	Errors  map[string]string `json:"errors"`
}
