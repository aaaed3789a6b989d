package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Checkout CheckoutConfig
	Pricing  PricingConfig
	Geocoder GeocoderConfig
	Payment  PaymentConfig
	Portal   PortalConfig
}

type ServerConfig struct {
	Port int
	// WriteTimeout must cover the payment-gateway round trip inside a
	// checkout submission.
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type CheckoutConfig struct {
	// SellingCompanyID scopes tax resolution and created orders.
	SellingCompanyID int
	// DeliveryZoneZips is the postal-code set served by the owned fleet.
	DeliveryZoneZips []string
	DeliveryCost     float64
	// ShippingTaxRate is applied to the synthetic shipping line on the
	// payment preference.
	ShippingTaxRate float64
}

type PricingConfig struct {
	CacheTTL time.Duration
}

type GeocoderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type PaymentConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

type PortalConfig struct {
	BaseURL   string
	QueueSize int
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	From      string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "20s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "gasline")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "backoffice")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CHECKOUT_SELLING_COMPANY_ID", 1)
	viper.SetDefault("CHECKOUT_DELIVERY_ZONE_ZIPS", "")
	viper.SetDefault("CHECKOUT_DELIVERY_COST", 0.0)
	viper.SetDefault("CHECKOUT_SHIPPING_TAX_RATE", 21.0)
	viper.SetDefault("PRICING_CACHE_TTL", "60s")
	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODER_API_KEY", "")
	viper.SetDefault("GEOCODER_TIMEOUT", "3s")
	viper.SetDefault("PAYMENT_BASE_URL", "https://api.mercadopago.com")
	viper.SetDefault("PAYMENT_ACCESS_TOKEN", "")
	viper.SetDefault("PAYMENT_TIMEOUT", "10s")
	viper.SetDefault("PORTAL_BASE_URL", "http://localhost:8080")
	viper.SetDefault("PORTAL_QUEUE_SIZE", 64)
	viper.SetDefault("PORTAL_SMTP_HOST", "localhost")
	viper.SetDefault("PORTAL_SMTP_PORT", 25)
	viper.SetDefault("PORTAL_SMTP_USER", "")
	viper.SetDefault("PORTAL_SMTP_PASS", "")
	viper.SetDefault("PORTAL_FROM", "no-reply@gasline.local")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}
	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	idleTimeout, err := time.ParseDuration(viper.GetString("SERVER_IDLE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cacheTTL, err := time.ParseDuration(viper.GetString("PRICING_CACHE_TTL"))
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := time.ParseDuration(viper.GetString("GEOCODER_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	paymentTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetInt("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     idleTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Checkout: CheckoutConfig{
			SellingCompanyID: viper.GetInt("CHECKOUT_SELLING_COMPANY_ID"),
			DeliveryZoneZips: splitZips(viper.GetString("CHECKOUT_DELIVERY_ZONE_ZIPS")),
			DeliveryCost:     viper.GetFloat64("CHECKOUT_DELIVERY_COST"),
			ShippingTaxRate:  viper.GetFloat64("CHECKOUT_SHIPPING_TAX_RATE"),
		},
		Pricing: PricingConfig{
			CacheTTL: cacheTTL,
		},
		Geocoder: GeocoderConfig{
			BaseURL: viper.GetString("GEOCODER_BASE_URL"),
			APIKey:  viper.GetString("GEOCODER_API_KEY"),
			Timeout: geocoderTimeout,
		},
		Payment: PaymentConfig{
			BaseURL:     viper.GetString("PAYMENT_BASE_URL"),
			AccessToken: viper.GetString("PAYMENT_ACCESS_TOKEN"),
			Timeout:     paymentTimeout,
		},
		Portal: PortalConfig{
			BaseURL:   viper.GetString("PORTAL_BASE_URL"),
			QueueSize: viper.GetInt("PORTAL_QUEUE_SIZE"),
			SMTPHost:  viper.GetString("PORTAL_SMTP_HOST"),
			SMTPPort:  viper.GetInt("PORTAL_SMTP_PORT"),
			SMTPUser:  viper.GetString("PORTAL_SMTP_USER"),
			SMTPPass:  viper.GetString("PORTAL_SMTP_PASS"),
			From:      viper.GetString("PORTAL_FROM"),
		},
	}

	return cfg, nil
}

func splitZips(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	zips := make([]string, 0, len(parts))
	for _, p := range parts {
		if z := strings.TrimSpace(p); z != "" {
			zips = append(zips, z)
		}
	}
	return zips
}
