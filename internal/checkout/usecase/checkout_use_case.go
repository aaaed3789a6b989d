package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gasline/internal/checkout/assembler"
	"gasline/internal/checkout/delivery"
	"gasline/internal/checkout/validator"
	"gasline/internal/config"
	"gasline/internal/domain"
	"gasline/internal/identity"
	"gasline/internal/metrics"
	"gasline/internal/payment"
	"gasline/internal/portal"
	"gasline/internal/pricing"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, data domain.CheckoutData, auth *domain.AuthSession) (*identity.Resolution, error)
}

type WarehouseResolver interface {
	Resolve(ctx context.Context, method domain.DeliveryMethod, branchID *int, shipping domain.Address) *int
}

type PartnerRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Partner, error)
}

type CompanyRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Company, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (int64, error)
	Cancel(ctx context.Context, id int64) error
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error)
}

type RuleSource interface {
	Rules(ctx context.Context) ([]domain.PriceRule, error)
	Taxes(ctx context.Context) (map[int]domain.TaxRecord, error)
}

type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref payment.PreferenceRequest) (*payment.PreferenceResponse, error)
}

type PortalQueue interface {
	Enqueue(task portal.Task)
}

// Result is the single outcome shape of a checkout submission: a redirect
// URL on success, or a field-keyed error map. There is no partial success.
type Result struct {
	RedirectURL string
	FieldErrors map[string]string
}

// GeneralErrorKey carries the errors that are not tied to a single form
// field: the empty cart and the generic could-not-process failure.
const GeneralErrorKey = "general"

type CheckoutUseCase struct {
	identity   IdentityResolver
	warehouses WarehouseResolver
	partners   PartnerRepository
	companies  CompanyRepository
	orders     OrderRepository
	products   ProductRepository
	rules      RuleSource
	gateway    PaymentGateway
	portal     PortalQueue
	cfg        config.CheckoutConfig
	logger     *zap.Logger
	metrics    *metrics.CheckoutMetrics
	now        func() time.Time
}

func NewCheckoutUseCase(
	identity IdentityResolver,
	warehouses WarehouseResolver,
	partners PartnerRepository,
	companies CompanyRepository,
	orders OrderRepository,
	products ProductRepository,
	rules RuleSource,
	gateway PaymentGateway,
	portalQueue PortalQueue,
	cfg config.CheckoutConfig,
	logger *zap.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		identity:   identity,
		warehouses: warehouses,
		partners:   partners,
		companies:  companies,
		orders:     orders,
		products:   products,
		rules:      rules,
		gateway:    gateway,
		portal:     portalQueue,
		cfg:        cfg,
		logger:     logger,
		metrics:    checkoutMetrics,
		now:        time.Now,
	}
}

// SubmitCheckout runs the full checkout sequence: validate, resolve identity
// and addresses, recompute authoritative prices and taxes, classify the cart
// and resolve warehouses, create the order(s) through the saga, build the
// payment preference, and schedule portal provisioning for guests. Field
// errors come back in the Result; any other failure is returned as an error
// for the controller to surface generically.
func (uc *CheckoutUseCase) SubmitCheckout(ctx context.Context, data domain.CheckoutData, items []domain.CartItem, auth *domain.AuthSession) (*Result, error) {
	start := uc.now()
	if uc.metrics != nil {
		uc.metrics.RecordCheckoutStarted()
		defer func() {
			uc.metrics.RecordCheckoutDuration(time.Since(start))
		}()
	}

	if fieldErrs := validator.Validate(data); len(fieldErrs) > 0 {
		if uc.metrics != nil {
			uc.metrics.RecordCheckoutRejected()
		}
		return &Result{FieldErrors: fieldErrs}, nil
	}
	if len(items) == 0 {
		if uc.metrics != nil {
			uc.metrics.RecordCheckoutRejected()
		}
		return &Result{FieldErrors: map[string]string{GeneralErrorKey: "cart is empty"}}, nil
	}

	resolution, err := uc.resolveIdentity(ctx, data, auth)
	if err != nil {
		return uc.fail(err)
	}

	inputs, err := uc.fetchPricingInputs(ctx, data, items, resolution)
	if err != nil {
		return uc.fail(err)
	}

	linePrices, err := uc.repriceLines(items, inputs)
	if err != nil {
		return uc.fail(err)
	}

	restricted, general := delivery.Classify(items)
	branch := uc.loadBranch(ctx, data)

	assembled := assembler.Assemble(data, restricted, general, linePrices, branch)
	if len(assembled) > 1 && uc.metrics != nil {
		uc.metrics.RecordOrdersSplit()
	}

	orderIDs, pref, err := uc.createOrdersAndPreference(ctx, data, auth, resolution, assembled, linePrices, inputs.shippingAddr)
	if err != nil {
		return uc.fail(err)
	}

	uc.scheduleProvisioning(data, auth, resolution)

	if uc.metrics != nil {
		uc.metrics.RecordCheckoutCompleted()
	}
	uc.logger.Info("checkout completed",
		zap.Int64("partnerId", resolution.PartnerID),
		zap.Int64s("orderIds", orderIDs),
		zap.Bool("split", len(orderIDs) > 1))

	return &Result{RedirectURL: pref.InitPoint}, nil
}

// DeliveryOptions reports the delivery methods available per cart partition
// for a shipping postal code. The storefront calls it before the submission
// to drive the method selectors.
func (uc *CheckoutUseCase) DeliveryOptions(items []domain.CartItem, zip string) delivery.MethodAvailability {
	return delivery.AvailableMethods(items, zip, uc.cfg.DeliveryZoneZips)
}

func (uc *CheckoutUseCase) fail(err error) (*Result, error) {
	if uc.metrics != nil {
		uc.metrics.RecordCheckoutFailed()
	}
	return nil, err
}

func (uc *CheckoutUseCase) resolveIdentity(ctx context.Context, data domain.CheckoutData, auth *domain.AuthSession) (*identity.Resolution, error) {
	stepStart := uc.now()
	resolution, err := uc.identity.Resolve(ctx, data, auth)
	if uc.metrics != nil {
		uc.metrics.RecordStepDuration("resolve-identity", time.Since(stepStart))
	}
	if err != nil {
		return nil, fmt.Errorf("resolving identity: %w", err)
	}
	return resolution, nil
}

// pricingInputs are the read-only fetches the pricing step depends on. None
// of them depend on each other, so they are loaded concurrently.
type pricingInputs struct {
	products     map[int]domain.Product
	rules        []domain.PriceRule
	taxes        map[int]domain.TaxRecord
	shippingAddr domain.Address
}

func (uc *CheckoutUseCase) fetchPricingInputs(ctx context.Context, data domain.CheckoutData, items []domain.CartItem, resolution *identity.Resolution) (*pricingInputs, error) {
	stepStart := uc.now()
	defer func() {
		if uc.metrics != nil {
			uc.metrics.RecordStepDuration("pricing-inputs", time.Since(stepStart))
		}
	}()

	productIDs := distinctProductIDs(items)

	var inputs pricingInputs
	var productsErr, rulesErr, taxesErr, addrErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		inputs.products, productsErr = uc.products.FindByIDs(ctx, productIDs)
	}()
	go func() {
		defer wg.Done()
		inputs.rules, rulesErr = uc.rules.Rules(ctx)
		if rulesErr == nil {
			inputs.taxes, taxesErr = uc.rules.Taxes(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		inputs.shippingAddr, addrErr = uc.shippingAddress(ctx, data, resolution)
	}()
	wg.Wait()

	for _, err := range []error{productsErr, rulesErr, taxesErr, addrErr} {
		if err != nil {
			return nil, fmt.Errorf("fetching pricing inputs: %w", err)
		}
	}

	return &inputs, nil
}

func (uc *CheckoutUseCase) shippingAddress(ctx context.Context, data domain.CheckoutData, resolution *identity.Resolution) (domain.Address, error) {
	if !data.Shipping.IsSaved() {
		return data.Shipping.Fields(), nil
	}
	saved, err := uc.partners.FindByID(ctx, resolution.ShippingAddressID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("loading saved shipping address: %w", err)
	}
	return saved.PostalAddress(), nil
}

// repriceLines discards the client-supplied price hints and recomputes every
// line from the pricelist and tax tables, keyed by cartKey. A cart line whose
// product the back office does not know is stale or fabricated and fails the
// checkout; no buyer-claimed price may stand in for a missing one. A
// formula-mode rule cannot be resolved here, so the product's list price
// stands in.
func (uc *CheckoutUseCase) repriceLines(items []domain.CartItem, inputs *pricingInputs) (map[string]assembler.LinePrice, error) {
	now := uc.now()
	linePrices := make(map[string]assembler.LinePrice, len(items))

	for _, item := range items {
		product, ok := inputs.products[item.ProductID]
		if !ok {
			uc.logger.Warn("cart references unknown product",
				zap.String("cartKey", item.CartKey), zap.Int("productId", item.ProductID))
			return nil, fmt.Errorf("repricing cart: unknown product %d", item.ProductID)
		}

		unit := product.ListPrice
		if price := pricing.PriceFor(inputs.rules, product.ID, product.CategoryID, product.ListPrice, item.Quantity, now); price != nil {
			unit = *price
		} else {
			uc.logger.Debug("no resolvable price rule, using list price",
				zap.Int("productId", product.ID))
		}

		linePrices[item.CartKey] = assembler.LinePrice{
			Unit:    unit,
			TaxRate: pricing.TaxRateFor(product.TaxIDs, inputs.taxes, uc.cfg.SellingCompanyID),
		}
	}

	return linePrices, nil
}

// loadBranch fetches the pickup branch for the delivery notes. Failures
// degrade to plainer notes, never to a failed checkout.
func (uc *CheckoutUseCase) loadBranch(ctx context.Context, data domain.CheckoutData) *domain.Company {
	usesPickup := data.DeliveryMethod == domain.DeliveryPickup || data.SecondaryMethod == domain.DeliveryPickup
	if !usesPickup || data.DeliveryBranchID == nil {
		return nil
	}
	branch, err := uc.companies.FindByID(ctx, *data.DeliveryBranchID)
	if err != nil {
		uc.logger.Warn("loading pickup branch failed",
			zap.Int("branchId", *data.DeliveryBranchID), zap.Error(err))
		return nil
	}
	return branch
}

func (uc *CheckoutUseCase) createOrdersAndPreference(
	ctx context.Context,
	data domain.CheckoutData,
	auth *domain.AuthSession,
	resolution *identity.Resolution,
	assembled []assembler.AssembledOrder,
	linePrices map[string]assembler.LinePrice,
	shippingAddr domain.Address,
) ([]int64, *payment.PreferenceResponse, error) {
	orderIDs := make([]int64, len(assembled))
	var pref *payment.PreferenceResponse

	steps := make([]sagaStep, 0, len(assembled)+1)
	for i := range assembled {
		i := i
		ord := assembled[i]
		steps = append(steps, sagaStep{
			name: fmt.Sprintf("create-order-%d", i+1),
			run: func(ctx context.Context) error {
				stepStart := uc.now()
				warehouseID := uc.resolveWarehouse(ctx, auth, ord.Method, data.DeliveryBranchID, shippingAddr)

				id, err := uc.orders.Create(ctx, domain.Order{
					PartnerID:         resolution.PartnerID,
					ShippingAddressID: resolution.ShippingAddressID,
					InvoiceAddressID:  resolution.InvoiceAddressID,
					WarehouseID:       warehouseID,
					CompanyID:         uc.cfg.SellingCompanyID,
					Notes:             ord.Notes,
					Lines:             ord.Lines,
				})
				if uc.metrics != nil {
					uc.metrics.RecordStepDuration("create-order", time.Since(stepStart))
				}
				if err != nil {
					return fmt.Errorf("creating order: %w", err)
				}
				orderIDs[i] = id
				return nil
			},
			compensate: func(ctx context.Context) error {
				if uc.metrics != nil {
					uc.metrics.RecordOrderCompensated()
				}
				uc.logger.Warn("compensating order",
					zap.Int64("partnerId", resolution.PartnerID),
					zap.Int64("orderId", orderIDs[i]),
					zap.Int64s("orderIds", orderIDs))
				return uc.orders.Cancel(ctx, orderIDs[i])
			},
		})
	}

	steps = append(steps, sagaStep{
		name: "create-payment-preference",
		run: func(ctx context.Context) error {
			stepStart := uc.now()
			created, err := uc.gateway.CreatePreference(ctx, uc.buildPreference(data, assembled, linePrices, orderIDs))
			if uc.metrics != nil {
				uc.metrics.RecordStepDuration("payment-preference", time.Since(stepStart))
			}
			if err != nil {
				return fmt.Errorf("creating payment preference: %w", err)
			}
			pref = created
			return nil
		},
	})

	saga := &checkoutSaga{logger: uc.logger.With(
		zap.Int64("partnerId", resolution.PartnerID))}
	if err := saga.execute(ctx, steps); err != nil {
		return nil, nil, err
	}

	return orderIDs, pref, nil
}

// resolveWarehouse prefers the session's home warehouse when one is known;
// the resolver is skipped entirely in that case.
func (uc *CheckoutUseCase) resolveWarehouse(ctx context.Context, auth *domain.AuthSession, method domain.DeliveryMethod, branchID *int, shippingAddr domain.Address) *int {
	if auth != nil && auth.HomeWarehouseID != nil {
		return auth.HomeWarehouseID
	}
	return uc.warehouses.Resolve(ctx, method, branchID, shippingAddr)
}

// buildPreference converts the assembled orders into gateway items with
// tax-inclusive unit prices, appending a synthetic shipping line when a
// delivery cost applies. The external reference encodes the created order
// id(s).
func (uc *CheckoutUseCase) buildPreference(data domain.CheckoutData, assembled []assembler.AssembledOrder, linePrices map[string]assembler.LinePrice, orderIDs []int64) payment.PreferenceRequest {
	var items []payment.Item
	for _, ord := range assembled {
		for _, item := range ord.Items {
			// The gateway line stays in cart units (per container for a
			// gas fill), tax included.
			price := linePrices[item.CartKey]
			items = append(items, payment.Item{
				Title:     item.Name,
				Quantity:  item.Quantity,
				UnitPrice: round2(price.Unit * (1 + price.TaxRate/100)),
			})
		}
	}

	if data.DeliveryCost > 0 {
		items = append(items, payment.Item{
			Title:     "Shipping",
			Quantity:  1,
			UnitPrice: round2(data.DeliveryCost * (1 + uc.cfg.ShippingTaxRate/100)),
		})
	}

	return payment.PreferenceRequest{
		Items:             items,
		Payer:             payment.Payer{Email: data.Email},
		ExternalReference: externalReference(orderIDs),
	}
}

func (uc *CheckoutUseCase) scheduleProvisioning(data domain.CheckoutData, auth *domain.AuthSession, resolution *identity.Resolution) {
	if auth != nil || uc.portal == nil {
		return
	}
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)
	uc.portal.Enqueue(portal.Task{
		PartnerID: resolution.PartnerID,
		Email:     data.Email,
		Name:      name,
	})
}

func externalReference(orderIDs []int64) string {
	if len(orderIDs) == 1 {
		return fmt.Sprintf("order-%d", orderIDs[0])
	}
	parts := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "orders-" + strings.Join(parts, "-")
}

func distinctProductIDs(items []domain.CartItem) []int {
	seen := make(map[int]bool, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
