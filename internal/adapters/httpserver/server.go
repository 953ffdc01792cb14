package httpserver

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/views"
)

type Server struct {
	mux        *http.ServeMux
	tmpl       *template.Template
	storefront *usecase.StorefrontUC
	carts      *usecase.CartUC
	exports    *usecase.ExportUC
	sc         domain.SalesChannelContext
	validate   *validator.Validate

	sessionKey []byte
	adminToken string
}

func New(t *template.Template, sf *usecase.StorefrontUC, carts *usecase.CartUC, exports *usecase.ExportUC, sc domain.SalesChannelContext, sessionKey, adminToken string) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		tmpl:       t,
		storefront: sf,
		carts:      carts,
		exports:    exports,
		sc:         sc,
		validate:   validator.New(),
		sessionKey: []byte(sessionKey),
		adminToken: adminToken,
	}
	if len(s.sessionKey) == 0 {
		s.sessionKey = []byte("dev-insecure")
	}
	s.routes()
	return Chain(s.mux,
		SecurityHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	static, _ := fs.Sub(views.Static, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/products", s.handleProducts)

	// tarjeta de producto con la variante elegida
	s.mux.HandleFunc("/variant-switch/", s.handleVariantSwitch)

	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/offcanvas", s.handleOffCanvasCart)
	s.mux.HandleFunc("/cart/line-item/add", s.handleCartAdd)
	s.mux.HandleFunc("/cart/line-item/remove", s.handleCartRemove)
	s.mux.HandleFunc("/line-item/switch-variant/", s.handleLineItemSwitch)
	s.mux.HandleFunc("/checkout/confirm", s.handleCheckoutConfirm)

	s.mux.HandleFunc("/admin/export/combinations.xlsx", s.handleExportCombinations)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/products", http.StatusFound)
}

// cardView es lo que necesita una tarjeta de producto para renderizarse.
type cardView struct {
	Product        domain.Product
	ParentID       string
	Groups         domain.GroupSet
	Layout         string
	SwitchURL      string
	PreviewOnHover bool
}

func (s *Server) newCard(p domain.Product, groups domain.GroupSet, layout string) cardView {
	parent := p.ConfigParentID().String()
	return cardView{
		Product:        p,
		ParentID:       parent,
		Groups:         groups,
		Layout:         layout,
		SwitchURL:      "/variant-switch/" + parent,
		PreviewOnHover: s.storefront.Features.PreviewOnHover,
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	query := qv.Get("q")
	listing, err := s.storefront.ListingPage(r.Context(), s.sc, domain.ProductFilter{Page: page, PageSize: 24, Query: query})
	if err != nil {
		log.Error().Err(err).Msg("listado")
		http.Error(w, "err", 500)
		return
	}
	cards := make([]cardView, 0, len(listing.Products))
	for _, p := range listing.Products {
		cards = append(cards, s.newCard(p, listing.Groups[p.ID], "standard"))
	}
	data := map[string]any{
		"Cards": cards,
		"Total": listing.Total,
		"Page":  listing.Page,
		"Pages": listing.Pages,
		"Query": query,
	}
	s.render(w, r, "listing.html", data)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["Flashes"]; !exists && r != nil {
		data["Flashes"] = readFlashes(w, r)
	}
	if _, exists := data["CartCount"]; !exists && r != nil {
		cart := s.readCart(r)
		data["CartCount"] = cart.Count()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", 500)
	}
}

// renderFragment no agrega datos de página: se usa para respuestas parciales.
func (s *Server) renderFragment(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render fragment")
		http.Error(w, "tpl", 500)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.adminToken == "" {
		http.Error(w, "forbidden", 403)
		return false
	}
	tok := r.Header.Get("X-Admin-Token")
	if auth := r.Header.Get("Authorization"); tok == "" && strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		tok = strings.TrimSpace(auth[7:])
	}
	if tok != "" && secureCompare(tok, s.adminToken) {
		return true
	}
	http.Error(w, "unauthorized", 401)
	return false
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
