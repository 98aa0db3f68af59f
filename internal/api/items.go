package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/compracerta/internal/barcode"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// ItemsHandler handles list item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      string   `json:"unit"`
	UnitPrice float64  `json:"unit_price"`
	Barcode   string   `json:"barcode"`
}

type updateItemRequest struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
	Barcode   *string  `json:"barcode"`
	IsChecked *bool    `json:"is_checked"`
}

type setCheckedRequest struct {
	Checked bool `json:"checked"`
}

// List handles GET /api/lists/{id}/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, list.ID)
	if err != nil {
		storeError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ListItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/lists/{id}/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An omitted quantity means one; an explicit one must be valid.
	quantity := 1.0
	if req.Quantity != nil {
		if err := model.ValidateQuantity(*req.Quantity); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		quantity = *req.Quantity
	}

	code, err := normalizeBarcode(req.Barcode)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.AddItem(r.Context(), h.DB, list.ID, store.NewItem{
		Name:      req.Name,
		Quantity:  quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		Barcode:   code,
	})
	if err != nil {
		storeError(w, err, "failed to add item")
		return
	}
	h.recordPrice(r, item)

	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Barcode != nil {
		code, err := normalizeBarcode(*req.Barcode)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Barcode = &code
	}

	upd := store.ItemUpdate{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		Barcode:   req.Barcode,
		IsChecked: req.IsChecked,
	}
	if upd.Empty() {
		jsonError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if _, err := store.UpdateItem(r.Context(), h.DB, item.ID, upd); err != nil {
		storeError(w, err, "failed to update item")
		return
	}

	updated, err := store.GetItem(r.Context(), h.DB, item.ID)
	if err != nil || updated == nil {
		storeError(w, err, "failed to get item")
		return
	}
	if req.UnitPrice != nil || req.Barcode != nil {
		h.recordPrice(r, updated)
	}
	jsonResponse(w, http.StatusOK, updated)
}

// SetChecked handles PUT /api/items/{id}/checked.
func (h *ItemsHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	var req setCheckedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := store.SetItemChecked(r.Context(), h.DB, item.ID, req.Checked); err != nil {
		storeError(w, err, "failed to update item")
		return
	}
	item.IsChecked = req.Checked
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}
	if _, err := store.DeleteItem(r.Context(), h.DB, item.ID); err != nil {
		storeError(w, err, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// ownedItem loads the item named by the {id} path value, checking that its
// list belongs to the caller.
func (h *ItemsHandler) ownedItem(w http.ResponseWriter, r *http.Request) (*model.ListItem, bool) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return nil, false
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get item")
		return nil, false
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return nil, false
	}

	list, err := store.GetList(r.Context(), h.DB, item.ListID)
	if err != nil {
		storeError(w, err, "failed to get list")
		return nil, false
	}
	if list == nil || list.UserID != GetClaims(r.Context()).UserID {
		jsonError(w, http.StatusNotFound, "item not found")
		return nil, false
	}
	return item, true
}

func (h *ItemsHandler) recordPrice(r *http.Request, item *model.ListItem) {
	if err := store.RecordItemBarcodePrice(r.Context(), h.DB, item); err != nil {
		slog.Error("failed to record barcode price", "item_id", item.ID, "error", err)
	}
}

// normalizeBarcode accepts an empty code as "no barcode".
func normalizeBarcode(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	return barcode.Normalize(raw)
}
