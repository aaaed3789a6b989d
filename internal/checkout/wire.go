package checkout

import (
	"database/sql"

	"gasline/internal/backoffice/repository"
	"gasline/internal/checkout/controller"
	"gasline/internal/checkout/usecase"
	"gasline/internal/config"
	"gasline/internal/geocode"
	"gasline/internal/identity"
	"gasline/internal/metrics"
	"gasline/internal/notify"
	"gasline/internal/payment"
	"gasline/internal/portal"
	"gasline/internal/pricing"
	"gasline/internal/warehouse"

	"go.uber.org/zap"
)

// NewModule wires the checkout pipeline. The returned provisioner must be
// started with Run before the server accepts traffic and stopped with it.
func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.CheckoutController, *portal.Provisioner) {
	partnerRepo := repository.NewMySQLPartnerRepository(db)
	addressRepo := repository.NewMySQLAddressRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db)
	pricelistRepo := repository.NewMySQLPricelistRepository(db)
	taxRepo := repository.NewMySQLTaxRepository(db)
	warehouseRepo := repository.NewMySQLWarehouseRepository(db)
	companyRepo := repository.NewMySQLCompanyRepository(db)
	productRepo := repository.NewMySQLProductRepository(db)

	identityResolver := identity.NewResolver(partnerRepo, addressRepo, logger)
	geocoder := geocode.New(cfg.Geocoder, logger)
	warehouseResolver := warehouse.NewResolver(warehouseRepo, geocoder, logger)
	ruleCache := pricing.NewRuleCache(pricelistRepo, taxRepo, cfg.Pricing.CacheTTL)
	gateway := payment.New(cfg.Payment)

	mailer := notify.NewMailer(cfg.Portal)
	provisioner := portal.NewProvisioner(partnerRepo, mailer, cfg.Portal.BaseURL, cfg.Portal.QueueSize, logger)

	checkoutMetrics := metrics.NewCheckoutMetrics()
	metrics.RegisterPortalQueueDepth(provisioner.QueueDepth)

	useCase := usecase.NewCheckoutUseCase(
		identityResolver,
		warehouseResolver,
		partnerRepo,
		companyRepo,
		orderRepo,
		productRepo,
		ruleCache,
		gateway,
		provisioner,
		cfg.Checkout,
		logger,
		checkoutMetrics,
	)

	return controller.NewCheckoutController(useCase, logger), provisioner
}
