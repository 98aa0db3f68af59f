package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/compracerta/internal/barcode"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// BarcodesHandler serves the price history of scanned products.
type BarcodesHandler struct {
	DB *sql.DB
}

// Prices handles GET /api/barcodes/{code}/prices.
func (h *BarcodesHandler) Prices(w http.ResponseWriter, r *http.Request) {
	code, err := barcode.Normalize(r.PathValue("code"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	prices, err := store.ListBarcodePrices(r.Context(), h.DB, code, limit)
	if err != nil {
		storeError(w, err, "failed to list prices")
		return
	}
	if prices == nil {
		prices = []model.BarcodePrice{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"barcode":        code,
		"valid_checksum": barcode.ValidChecksum(code),
		"prices":         prices,
	})
}
