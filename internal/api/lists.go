package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// ListsHandler handles shopping list endpoints. Users only see their own lists.
type ListsHandler struct {
	DB *sql.DB
}

type createListRequest struct {
	Name string `json:"name"`
}

type updateListRequest struct {
	Name *string `json:"name"`
}

type completeListRequest struct {
	FinalAmount float64 `json:"final_amount"`
}

type historyResponse struct {
	Lists   []model.ShoppingList `json:"lists"`
	Summary model.Summary        `json:"summary"`
}

// List handles GET /api/lists.
func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := store.ListUserLists(r.Context(), h.DB, GetClaims(r.Context()).UserID)
	if err != nil {
		storeError(w, err, "failed to list lists")
		return
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	jsonResponse(w, http.StatusOK, lists)
}

// Create handles POST /api/lists.
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := store.CreateList(r.Context(), h.DB, GetClaims(r.Context()).UserID, req.Name)
	if err != nil {
		storeError(w, err, "failed to create list")
		return
	}
	jsonResponse(w, http.StatusCreated, list)
}

// History handles GET /api/lists/history.
func (h *ListsHandler) History(w http.ResponseWriter, r *http.Request) {
	lists, err := store.ListCompletedLists(r.Context(), h.DB, GetClaims(r.Context()).UserID)
	if err != nil {
		storeError(w, err, "failed to list history")
		return
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	jsonResponse(w, http.StatusOK, historyResponse{Lists: lists, Summary: model.Summarize(lists)})
}

// Get handles GET /api/lists/{id}.
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	jsonResponse(w, http.StatusOK, map[string]any{
		"list":  list,
		"items": items,
	})
}

// Update handles PUT /api/lists/{id}.
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}

	var req updateListRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := store.ListUpdate{Name: req.Name}
	if upd.Empty() {
		jsonError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if _, err := store.UpdateList(r.Context(), h.DB, list.ID, upd); err != nil {
		storeError(w, err, "failed to update list")
		return
	}
	h.respondList(w, r, list.ID, http.StatusOK)
}

// Delete handles DELETE /api/lists/{id}.
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}
	if err := store.DeleteList(r.Context(), h.DB, list.ID); err != nil {
		storeError(w, err, "failed to delete list")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "list deleted"})
}

// Complete handles POST /api/lists/{id}/complete.
func (h *ListsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}

	var req completeListRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := store.CompleteList(r.Context(), h.DB, list.ID, req.FinalAmount); err != nil {
		storeError(w, err, "failed to complete list")
		return
	}
	h.respondList(w, r, list.ID, http.StatusOK)
}

// Reactivate handles POST /api/lists/{id}/reactivate.
func (h *ListsHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}
	if _, err := store.ReactivateList(r.Context(), h.DB, list.ID); err != nil {
		storeError(w, err, "failed to reactivate list")
		return
	}
	h.respondList(w, r, list.ID, http.StatusOK)
}

// Copy handles POST /api/lists/{id}/copy.
func (h *ListsHandler) Copy(w http.ResponseWriter, r *http.Request) {
	list, ok := ownedList(w, r, h.DB)
	if !ok {
		return
	}
	cp, err := store.CopyList(r.Context(), h.DB, list.ID)
	if err != nil {
		storeError(w, err, "failed to copy list")
		return
	}
	jsonResponse(w, http.StatusCreated, cp)
}

func (h *ListsHandler) respondList(w http.ResponseWriter, r *http.Request, id int64, status int) {
	list, err := store.GetList(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get list")
		return
	}
	if list == nil {
		jsonError(w, http.StatusNotFound, "list not found")
		return
	}
	jsonResponse(w, status, list)
}

// ownedList loads the list named by the {id} path value. Lists belonging to
// other users are reported as missing. On failure the response is written
// and ok is false.
func ownedList(w http.ResponseWriter, r *http.Request, db *sql.DB) (*model.ShoppingList, bool) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid list id")
		return nil, false
	}
	return loadOwnedList(w, r, db, id)
}

func loadOwnedList(w http.ResponseWriter, r *http.Request, db *sql.DB, id int64) (*model.ShoppingList, bool) {
	list, err := store.GetList(r.Context(), db, id)
	if err != nil {
		storeError(w, err, "failed to get list")
		return nil, false
	}
	if list == nil || list.UserID != GetClaims(r.Context()).UserID {
		jsonError(w, http.StatusNotFound, "list not found")
		return nil, false
	}
	return list, true
}
