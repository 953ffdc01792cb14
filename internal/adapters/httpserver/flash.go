package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "flash"

const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

const (
	msgCartUpdated  = "checkout.cartUpdateSuccess"
	msgDefaultError = "error.message-default"
)

var messages = map[string]string{
	msgCartUpdated:      "El carrito se actualizó.",
	msgDefaultError:     "Ocurrió un error, intentá de nuevo.",
	"product-not-found": "Uno de los productos ya no está disponible y se quitó del carrito.",
}

// message traduce una clave; si no está en el catálogo devuelve la clave.
func message(key string) string {
	if m, ok := messages[key]; ok {
		return m
	}
	return key
}

type flash struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

func writeFlashes(w http.ResponseWriter, fs []flash) {
	if len(fs) == 0 {
		return
	}
	b, _ := json.Marshal(fs)
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: base64.RawURLEncoding.EncodeToString(b), Path: "/", MaxAge: 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// readFlashes lee los mensajes pendientes y borra la cookie.
func readFlashes(w http.ResponseWriter, r *http.Request) []flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var fs []flash
	if err := json.Unmarshal(raw, &fs); err != nil {
		return nil
	}
	return fs
}
