package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

func TestCartCookieRoundTrip(t *testing.T) {
	s := &Server{sessionKey: []byte("k1")}
	cart := &domain.Cart{Token: "tok"}
	cart.Add(domain.NewProductLineItem(uuid.New(), 3))

	rec := httptest.NewRecorder()
	s.writeCart(rec, cart)
	c := rec.Result().Cookies()
	require.Len(t, c, 1)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(c[0])
	got := s.readCart(req)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, cart.LineItems, got.LineItems)

	// otra clave invalida la firma
	other := &Server{sessionKey: []byte("k2")}
	empty := other.readCart(req)
	assert.Empty(t, empty.LineItems)
	assert.NotEmpty(t, empty.Token)
}

func TestParseOptionMap(t *testing.T) {
	g, o := uuid.New(), uuid.New()
	m, err := parseOptionMap(`{"` + g.String() + `":"` + o.String() + `","x":"y"}`)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]uuid.UUID{g: o}, m)

	m, err = parseOptionMap("")
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)

	m, err = parseOptionMap("[1,2")
	assert.Error(t, err)
	assert.NotNil(t, m)
}

func TestFormOptions(t *testing.T) {
	g, o := uuid.New(), uuid.New()
	m := formOptions(map[string][]string{
		g.String():       {o.String()},
		"parentId":       {uuid.NewString()},
		"redirectTo":     {"/cart"},
		uuid.NewString(): {"x"},
	})
	assert.Equal(t, map[uuid.UUID]uuid.UUID{g: o}, m)
	assert.Empty(t, formOptions(nil))
}

func TestCardTemplate(t *testing.T) {
	name, layout := cardTemplate("image")
	assert.Equal(t, "box-image.html", name)
	assert.Equal(t, "image", layout)

	name, layout = cardTemplate("../../etc")
	assert.Equal(t, "box-standard.html", name)
	assert.Equal(t, "standard", layout)
}

func TestIsLocalPath(t *testing.T) {
	assert.True(t, isLocalPath("/cart"))
	assert.False(t, isLocalPath("//evil.example"))
	assert.False(t, isLocalPath("https://evil.example"))
	assert.False(t, isLocalPath("/\\evil"))
	assert.False(t, isLocalPath(""))
}

func TestFlashesRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFlashes(rec, cartFlashes(&domain.Cart{Errors: []domain.CartError{{Message: "product-not-found", Persistent: true}}}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	fs := readFlashes(out, req)
	require.Len(t, fs, 1)
	assert.Equal(t, flashDanger, fs[0].Type)
	assert.Equal(t, message("product-not-found"), fs[0].Message)
	// la cookie se borra al leer
	require.Len(t, out.Result().Cookies(), 1)
	assert.Equal(t, -1, out.Result().Cookies()[0].MaxAge)
}

func TestChainOrder(t *testing.T) {
	order := []string{}
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestRecoveryReturns500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("x") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
