package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/adapters/export/xlsx"
	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// handleExportCombinations: GET /admin/export/combinations.xlsx?parent=
func (s *Server) handleExportCombinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}
	parentID, err := uuid.Parse(r.URL.Query().Get("parent"))
	if err != nil {
		http.Error(w, "parent", 400)
		return
	}
	m, err := s.exports.CombinationMatrix(r.Context(), s.sc, parentID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), 400)
		return
	case err != nil:
		log.Error().Err(err).Str("parent", parentID.String()).Msg("export combinaciones")
		http.Error(w, "err", 500)
		return
	}
	var buf bytes.Buffer
	if err := xlsx.WriteMatrix(&buf, m); err != nil {
		log.Error().Err(err).Msg("xlsx")
		http.Error(w, "err", 500)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "combinations-"+m.Parent.ProductNumber+".xlsx"))
	_, _ = w.Write(buf.Bytes())
}
