package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	DSN        string `env:"DB_DSN"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"variantswitch"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SeedDemo   bool   `env:"SEED_DEMO" envDefault:"false"`

	SessionKey string `env:"SESSION_KEY" envDefault:"dev-insecure"`
	AdminToken string `env:"ADMIN_TOKEN"`

	SalesChannelID string `env:"SALES_CHANNEL_ID"`
	LanguageID     string `env:"LANGUAGE_ID" envDefault:"2fbb5fe2-e29a-4d70-aa5a-b7e2f8a2b1c6"`
	VersionID      string `env:"VERSION_ID"`

	ShowOnProductCard         bool `env:"SHOW_ON_PRODUCT_CARD" envDefault:"true"`
	PreviewOnHover            bool `env:"PREVIEW_VARIANT_ON_HOVER" envDefault:"false"`
	ShowOnOffCanvasCart       bool `env:"SHOW_ON_OFFCANVAS_CART" envDefault:"true"`
	ShowOnCartPage            bool `env:"SHOW_ON_CART_PAGE" envDefault:"true"`
	ShowOnCheckoutConfirmPage bool `env:"SHOW_ON_CHECKOUT_CONFIRM_PAGE" envDefault:"true"`
}

// Load lee .env si existe y luego las variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseDSN arma el DSN desde las partes cuando DB_DSN no está.
func (c *Config) DatabaseDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword + " dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=" + c.DBSSLMode
}

func (c *Config) IsDev() bool {
	e := strings.ToLower(c.AppEnv)
	return e == "" || e == "development" || e == "dev"
}

func (c *Config) Features() usecase.Features {
	return usecase.Features{
		ShowOnProductCard:         c.ShowOnProductCard,
		PreviewOnHover:            c.PreviewOnHover,
		ShowOnOffCanvasCart:       c.ShowOnOffCanvasCart,
		ShowOnCartPage:            c.ShowOnCartPage,
		ShowOnCheckoutConfirmPage: c.ShowOnCheckoutConfirmPage,
	}
}

// SalesChannel arma el contexto por defecto de las requests.
func (c *Config) SalesChannel() domain.SalesChannelContext {
	sc := domain.SalesChannelContext{VersionID: domain.LiveVersionID}
	if id, err := uuid.Parse(c.SalesChannelID); err == nil {
		sc.SalesChannelID = id
	}
	if id, err := uuid.Parse(c.LanguageID); err == nil {
		sc.LanguageID = id
	}
	if id, err := uuid.Parse(c.VersionID); err == nil {
		sc.VersionID = id
	}
	return sc
}
