package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"gasline/internal/checkout/delivery"
	"gasline/internal/checkout/usecase"
	"gasline/internal/domain"
	"gasline/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutUseCase interface {
	SubmitCheckout(ctx context.Context, data domain.CheckoutData, items []domain.CartItem, auth *domain.AuthSession) (*usecase.Result, error)
	DeliveryOptions(items []domain.CartItem, zip string) delivery.MethodAvailability
}

type CheckoutController struct {
	useCase CheckoutUseCase
	logger  *zap.Logger
}

func NewCheckoutController(useCase CheckoutUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeErrors(w, http.StatusBadRequest, traceID, map[string]string{
			usecase.GeneralErrorKey: "request body must be valid JSON",
		})
		return
	}

	auth := authSession(r)
	data := toCheckoutData(req)
	items := toCartItems(req.Items)

	result, err := c.useCase.SubmitCheckout(r.Context(), data, items, auth)
	if err != nil {
		// The full cause stays in the log; the buyer only ever sees the
		// generic failure.
		logger.Error("checkout failed", zap.Error(err))
		c.writeErrors(w, http.StatusBadGateway, traceID, map[string]string{
			usecase.GeneralErrorKey: "we could not process your order, please try again",
		})
		return
	}

	if len(result.FieldErrors) > 0 {
		c.writeErrors(w, http.StatusUnprocessableEntity, traceID, result.FieldErrors)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.CheckoutResponse{
		TraceID:     traceID,
		RedirectURL: result.RedirectURL,
	})
}

// DeliveryOptions answers the storefront's pre-submission question: which
// delivery methods may each cart partition use for this postal code.
func (c *CheckoutController) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.DeliveryOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		c.writeErrors(w, http.StatusBadRequest, traceID, map[string]string{
			usecase.GeneralErrorKey: "request body must be valid JSON",
		})
		return
	}

	avail := c.useCase.DeliveryOptions(toCartItems(req.Items), req.Zip)

	c.writeJSON(w, http.StatusOK, dto.DeliveryOptionsResponse{
		RestrictedMethods: methodNames(avail.RestrictedMethods),
		GeneralMethods:    methodNames(avail.GeneralMethods),
		IsMixed:           avail.IsMixed,
	})
}

func methodNames(methods []domain.DeliveryMethod) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return names
}

// authSession reads the identity headers set by the storefront session layer.
// Absent headers mean guest checkout.
func authSession(r *http.Request) *domain.AuthSession {
	partnerID, err := strconv.ParseInt(r.Header.Get("X-Partner-Id"), 10, 64)
	if err != nil || partnerID <= 0 {
		return nil
	}

	auth := &domain.AuthSession{PartnerID: partnerID}
	if companyID, err := strconv.ParseInt(r.Header.Get("X-Company-Partner-Id"), 10, 64); err == nil && companyID > 0 {
		auth.CompanyPartnerID = &companyID
	}
	if warehouseID, err := strconv.Atoi(r.Header.Get("X-Home-Warehouse-Id")); err == nil && warehouseID > 0 {
		auth.HomeWarehouseID = &warehouseID
	}
	return auth
}

func toCheckoutData(req dto.CheckoutRequest) domain.CheckoutData {
	return domain.CheckoutData{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,

		TaxID:          req.TaxID,
		FiscalRegime:   domain.FiscalRegime(req.FiscalRegime),
		SaveFiscalData: req.SaveFiscalData,

		Shipping:         toAddressSlot(req.ShippingAddressID, req.Shipping),
		DeliveryMethod:   domain.DeliveryMethod(req.DeliveryMethod),
		DeliveryBranchID: req.DeliveryBranchID,
		SecondaryMethod:  domain.DeliveryMethod(req.SecondaryMethod),

		Billing:               toAddressSlot(req.BillingAddressID, req.Billing),
		BillingSameAsShipping: req.BillingSameAsShipping,

		Notes:        req.Notes,
		DeliveryCost: req.DeliveryCost,
	}
}

func toAddressSlot(savedID *int64, inline *dto.AddressDTO) domain.AddressSlot {
	if savedID != nil {
		return domain.SavedAddress(*savedID)
	}
	if inline == nil {
		return domain.AddressSlot{}
	}
	return domain.InlineAddress(domain.Address{
		Street:  inline.Street,
		Street2: inline.Street2,
		City:    inline.City,
		State:   inline.State,
		Zip:     inline.Zip,
		Country: inline.Country,
		Lat:     inline.Lat,
		Lng:     inline.Lng,
	})
}

func toCartItems(items []dto.CartItemDTO) []domain.CartItem {
	converted := make([]domain.CartItem, len(items))
	for i, item := range items {
		var ownership *domain.ContainerOwnership
		if item.Ownership != nil {
			o := domain.ContainerOwnership(*item.Ownership)
			ownership = &o
		}
		converted[i] = domain.CartItem{
			CartKey:           item.CartKey,
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			Name:              item.Name,
			Quantity:          item.Quantity,
			Price:             item.Price,
			TaxRate:           item.TaxRate,
			Category:          domain.ProductCategory(item.Category),
			Hazmat:            item.Hazmat,
			Ownership:         ownership,
			ContainerCapacity: item.ContainerCapacity,
		}
	}
	return converted
}

func (c *CheckoutController) writeErrors(w http.ResponseWriter, status int, traceID string, errs map[string]string) {
	c.writeJSON(w, status, dto.CheckoutErrorResponse{
		TraceID: traceID,
		Errors:  errs,
	})
}

func (c *CheckoutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
