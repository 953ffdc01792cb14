package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

var cardLayouts = map[string]struct{}{
	"standard": {},
	"minimal":  {},
	"image":    {},
}

func cardTemplate(layout string) (string, string) {
	if _, ok := cardLayouts[layout]; !ok {
		layout = "standard"
	}
	return "box-" + layout + ".html", layout
}

// parseOptionMap decodifica {"groupId":"optionId"}. Entradas inválidas se ignoran.
func parseOptionMap(raw string) (map[uuid.UUID]uuid.UUID, error) {
	out := map[uuid.UUID]uuid.UUID{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return out, err
	}
	for g, o := range m {
		groupID, err := uuid.Parse(g)
		if err != nil {
			continue
		}
		optionID, err := uuid.Parse(o)
		if err != nil {
			continue
		}
		out[groupID] = optionID
	}
	return out, nil
}

func parseOptionalUUID(raw string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}

// handleVariantSwitch: GET /variant-switch/{productId}?switched=&options=&cardType=
// Responde la tarjeta de la variante encontrada o un cuerpo vacío si no existe.
func (s *Server) handleVariantSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	parentID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/variant-switch/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	qv := r.URL.Query()
	name, layout := cardTemplate(qv.Get("cardType"))
	switched := parseOptionalUUID(qv.Get("switched"))
	options, err := parseOptionMap(qv.Get("options"))
	if err != nil {
		log.Debug().Err(err).Msg("options inválidas")
	}

	p, groups, err := s.storefront.SwitchProductBox(r.Context(), s.sc, parentID, options, switched)
	if errors.Is(err, domain.ErrVariantNotFound) {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("parent", parentID.String()).Msg("variant switch")
		http.Error(w, "err", 500)
		return
	}
	s.renderFragment(w, name, s.newCard(*p, groups, layout))
}
