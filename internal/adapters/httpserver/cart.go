package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
)

const cartCookie = "cart"

func (s *Server) readCart(r *http.Request) *domain.Cart {
	empty := &domain.Cart{Token: uuid.NewString()}
	c, err := r.Cookie(cartCookie)
	if err != nil {
		return empty
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return empty
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return empty
	}
	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return empty
	}
	if cart.Token == "" {
		cart.Token = empty.Token
	}
	return &cart
}

func (s *Server) writeCart(w http.ResponseWriter, cart *domain.Cart) {
	b, _ := json.Marshal(cart)
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: cartCookie, Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// lineView es una línea de carrito con su configuración de variantes.
type lineView struct {
	domain.LineItem
	Config    *domain.LineItemConfig
	SwitchURL string
}

func (s *Server) cartView(w http.ResponseWriter, r *http.Request, b usecase.Boundary) (map[string]any, bool) {
	cart := s.readCart(r)
	configs, err := s.storefront.CartConfigs(r.Context(), s.sc, b, cart)
	if err != nil {
		log.Error().Err(err).Str("boundary", string(b)).Msg("cart configs")
		http.Error(w, "err", 500)
		return nil, false
	}
	lines := make([]lineView, 0, len(cart.LineItems))
	for _, li := range cart.LineItems {
		v := lineView{LineItem: li, SwitchURL: "/line-item/switch-variant/" + li.ID}
		if cfg, ok := configs[li.ID]; ok {
			c := cfg
			v.Config = &c
		}
		lines = append(lines, v)
	}
	return map[string]any{
		"Cart":       cart,
		"Lines":      lines,
		"CartCount":  cart.Count(),
		"Boundary":   string(b),
		"Confirm":    false,
		"RedirectTo": "/cart",
	}, true
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	data, ok := s.cartView(w, r, usecase.BoundaryCartPage)
	if !ok {
		return
	}
	s.render(w, r, "cart.html", data)
}

func (s *Server) handleOffCanvasCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	data, ok := s.cartView(w, r, usecase.BoundaryOffCanvasCart)
	if !ok {
		return
	}
	data["Flashes"] = readFlashes(w, r)
	s.renderFragment(w, "offcanvas-cart.html", data)
}

func (s *Server) handleCheckoutConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	data, ok := s.cartView(w, r, usecase.BoundaryConfirmPage)
	if !ok {
		return
	}
	data["Confirm"] = true
	data["RedirectTo"] = "/checkout/confirm"
	s.render(w, r, "cart.html", data)
}

type addForm struct {
	ProductID string `validate:"required,uuid"`
	Quantity  int    `validate:"gte=1,lte=999"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	form := addForm{ProductID: r.FormValue("productId"), Quantity: 1}
	if q := r.FormValue("quantity"); q != "" {
		form.Quantity, _ = strconv.Atoi(q)
	}
	if err := s.validate.Struct(form); err != nil {
		http.Error(w, "form", 400)
		return
	}
	cart := s.readCart(r)
	if err := s.carts.AddProduct(r.Context(), s.sc, cart, uuid.MustParse(form.ProductID), form.Quantity); err != nil {
		log.Error().Err(err).Msg("agregar al carrito")
		writeFlashes(w, []flash{{Type: flashDanger, Message: message(msgDefaultError)}})
		s.actionResponse(w, r)
		return
	}
	s.writeCart(w, cart)
	writeFlashes(w, cartFlashes(cart))
	s.actionResponse(w, r)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	cart := s.readCart(r)
	if err := s.carts.RemoveLineItem(cart, r.FormValue("id")); err != nil {
		writeFlashes(w, []flash{{Type: flashDanger, Message: message(msgDefaultError)}})
		s.actionResponse(w, r)
		return
	}
	s.writeCart(w, cart)
	s.actionResponse(w, r)
}

type switchForm struct {
	LineItemID string                  `validate:"required"`
	Options    map[uuid.UUID]uuid.UUID `validate:"min=1"`
	ParentID   string                  `validate:"required,uuid"`
	Switched   string                  `validate:"omitempty,uuid"`
}

// formOptions arma el mapa grupo -> opción con los radios del formulario,
// que se llaman como el id del grupo. Se usa cuando no llega el campo options.
func formOptions(form map[string][]string) map[uuid.UUID]uuid.UUID {
	out := map[uuid.UUID]uuid.UUID{}
	for k, vs := range form {
		groupID, err := uuid.Parse(k)
		if err != nil || len(vs) == 0 {
			continue
		}
		optionID, err := uuid.Parse(vs[0])
		if err != nil {
			continue
		}
		out[groupID] = optionID
	}
	return out
}

// handleLineItemSwitch: POST /line-item/switch-variant/{id}
func (s *Server) handleLineItemSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	form := switchForm{
		LineItemID: strings.TrimPrefix(r.URL.Path, "/line-item/switch-variant/"),
		ParentID:   r.FormValue("parentId"),
		Switched:   r.URL.Query().Get("switched"),
	}
	if form.Switched == "" {
		form.Switched = r.PostFormValue("switched")
	}
	fail := func(err error) {
		log.Warn().Err(err).Str("line", form.LineItemID).Msg("switch line item")
		writeFlashes(w, []flash{{Type: flashDanger, Message: message(msgDefaultError)}})
		s.actionResponse(w, r)
	}
	var err error
	if raw := strings.TrimSpace(r.FormValue("options")); raw != "" {
		if form.Options, err = parseOptionMap(raw); err != nil {
			fail(err)
			return
		}
	} else {
		form.Options = formOptions(r.PostForm)
	}
	if err := s.validate.Struct(form); err != nil {
		fail(err)
		return
	}

	cart := s.readCart(r)
	parentID := uuid.MustParse(form.ParentID)
	switched, err := s.carts.SwitchLineItem(r.Context(), s.sc, cart, form.LineItemID, usecase.SwitchRequest{
		ParentID: &parentID,
		Options:  form.Options,
		Switched: parseOptionalUUID(form.Switched),
	})
	if err != nil {
		fail(err)
		return
	}
	if !switched {
		w.WriteHeader(http.StatusOK)
		return
	}
	s.writeCart(w, cart)
	writeFlashes(w, cartFlashes(cart))
	s.actionResponse(w, r)
}

// cartFlashes muestra los errores del carrito o el mensaje de éxito.
func cartFlashes(cart *domain.Cart) []flash {
	if len(cart.Errors) == 0 {
		return []flash{{Type: flashSuccess, Message: message(msgCartUpdated)}}
	}
	out := []flash{}
	for _, e := range cart.Errors {
		if !e.Persistent {
			continue
		}
		out = append(out, flash{Type: flashDanger, Message: message(e.Message)})
	}
	return out
}

// actionResponse redirige a redirectTo si es una ruta local, si no al carrito.
func (s *Server) actionResponse(w http.ResponseWriter, r *http.Request) {
	target := r.FormValue("redirectTo")
	if !isLocalPath(target) {
		target = "/cart"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}
