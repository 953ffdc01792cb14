package app

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/adapters/httpserver"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/adapters/repo/postgres"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/config"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/views"
)

type App struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Tmpl *template.Template

	Products     *postgres.ProductRepo
	Configurator *postgres.ConfiguratorRepo
	ProductUC    *usecase.ProductUC
	StorefrontUC *usecase.StorefrontUC
	CartUC       *usecase.CartUC
	ExportUC     *usecase.ExportUC
	SalesChannel domain.SalesChannelContext
}

func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	confRepo := postgres.NewConfiguratorRepo(db)
	comboRepo := postgres.NewCombinationRepo(db)

	loader := &usecase.CombinationLoader{Source: comboRepo}
	finder := &usecase.VariantFinder{Source: comboRepo}
	productUC := &usecase.ProductUC{Products: prodRepo}
	listing := &usecase.ListingUC{Settings: confRepo, Combinations: loader}

	app := &App{
		DB:           db,
		Cfg:          cfg,
		Products:     prodRepo,
		Configurator: confRepo,
		ProductUC:    productUC,
		SalesChannel: cfg.SalesChannel(),
	}
	app.StorefrontUC = &usecase.StorefrontUC{Products: productUC, Listing: listing, Finder: finder, Features: cfg.Features()}
	app.CartUC = &usecase.CartUC{Finder: finder, Recalculator: &usecase.ProductRecalculator{Products: prodRepo}}
	app.ExportUC = &usecase.ExportUC{Products: productUC, Settings: confRepo, Combinations: loader}

	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl
	return app, nil
}

// ParseTemplates carga las vistas embebidas.
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, errors.New("dict: cantidad impar de argumentos")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, errors.New("dict: clave no string")
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
		"colorhex": func(s string) string {
			v := strings.TrimSpace(strings.ToLower(s))
			if v == "" {
				return "#334155"
			}
			if !strings.HasPrefix(v, "#") {
				v = "#" + v
			}
			return v
		},
	}
	return template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html")
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.StorefrontUC, a.CartUC, a.ExportUC, a.SalesChannel, a.Cfg.SessionKey, a.Cfg.AdminToken)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.PropertyGroup{}, &domain.PropertyOption{}, &domain.GroupTranslation{}, &domain.OptionTranslation{}, &domain.ConfiguratorSetting{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_parent_version ON products(parent_id, version_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_settings_product_option ON configurator_settings(product_id, option_id)").Error

	if !a.Cfg.SeedDemo {
		return nil
	}
	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return seedDemo(context.Background(), a.Products, a.Configurator)
}

// seedDemo carga una remera con color y talle; rojo/L queda sin stock.
func seedDemo(ctx context.Context, products *postgres.ProductRepo, conf *postgres.ConfiguratorRepo) error {
	active := true
	color := &domain.PropertyGroup{Name: "Color", DisplayType: domain.DisplayTypeColor, SortingType: domain.SortingTypePosition, Position: 1}
	size := &domain.PropertyGroup{Name: "Talle", DisplayType: domain.DisplayTypeText, SortingType: domain.SortingTypeAlphanumeric, Position: 2}
	for _, g := range []*domain.PropertyGroup{color, size} {
		if err := conf.SaveGroup(ctx, g); err != nil {
			return err
		}
	}
	opts := []*domain.PropertyOption{
		{GroupID: color.ID, Name: "Rojo", Position: 1, ColorHexCode: "#ef4444"},
		{GroupID: color.ID, Name: "Azul", Position: 2, ColorHexCode: "#3b82f6"},
		{GroupID: size.ID, Name: "S"},
		{GroupID: size.ID, Name: "L"},
	}
	for _, o := range opts {
		if err := conf.SaveOption(ctx, o); err != nil {
			return err
		}
	}
	red, blue, small, large := opts[0], opts[1], opts[2], opts[3]

	parent := &domain.Product{ProductNumber: "SW-10000", Name: "Remera básica", Active: &active}
	if err := products.Save(ctx, parent); err != nil {
		return err
	}
	for i, o := range opts {
		if err := conf.Save(ctx, &domain.ConfiguratorSetting{ProductID: parent.ID, OptionID: o.ID, Position: i}); err != nil {
			return err
		}
	}
	children := []struct {
		number    string
		options   []*domain.PropertyOption
		available bool
	}{
		{"SW-10000.1", []*domain.PropertyOption{red, small}, true},
		{"SW-10000.2", []*domain.PropertyOption{red, large}, false},
		{"SW-10000.3", []*domain.PropertyOption{blue, small}, true},
		{"SW-10000.4", []*domain.PropertyOption{blue, large}, true},
	}
	for _, c := range children {
		pid := parent.ID
		child := &domain.Product{ParentID: &pid, ProductNumber: c.number, Available: c.available}
		ids := make([]uuid.UUID, 0, len(c.options))
		for _, o := range c.options {
			ids = append(ids, o.ID)
		}
		child.SetOptionIDs(ids)
		if err := products.Save(ctx, child); err != nil {
			return err
		}
	}
	zlog.Info().Str("parent", parent.ID.String()).Msg("demo cargada")
	return nil
}
