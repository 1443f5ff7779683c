package handlers

import (
	"Fridgella/internal/forms"
	"Fridgella/internal/middleware"
	"Fridgella/internal/model"
	"Fridgella/internal/service"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler CRUD продуктов и импорт чека
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

// CreateManual добавление продукта вручную
func (h *ItemHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req forms.ItemInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "CreateManual", err)
		return
	}

	item, err := h.ItemService.CreateManual(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.Logger, "CreateManual", err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{"item": item})
}

// ImportBill принимает массив строк чека или {"items":[...]}.
// Нечитаемая строка отклоняет всю пачку
func (h *ItemHandler) ImportBill(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		badBody(w, h.Logger, "ImportBill", err)
		return
	}

	rows, err := splitBatch(raw)
	if err != nil {
		badBody(w, h.Logger, "ImportBill", err)
		return
	}

	entries := make([]forms.ItemInput, len(rows))
	var rowErrs []service.FieldError
	for i, row := range rows {
		if err := json.Unmarshal(row, &entries[i]); err != nil {
			idx := i
			rowErrs = append(rowErrs, service.FieldError{Index: &idx, Field: "item", Message: "malformed entry"})
		}
	}
	if len(rowErrs) > 0 {
		h.Logger.Warnw("ImportBill: malformed rows", "user_id", userID, "count", len(rowErrs))
		writeValidation(w, &service.ValidationError{Fields: rowErrs})
		return
	}

	items, err := h.ItemService.ImportBill(r.Context(), userID, entries)
	if err != nil {
		writeError(w, h.Logger, "ImportBill", err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{"items": items, "count": len(items)})
}

func splitBatch(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyBody
	}
	var rows []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
	case '{':
		var wrapped struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		rows = wrapped.Items
	default:
		return nil, errors.New("expected an array of items")
	}
	return rows, nil
}

// List продукты пользователя с фильтрами category/status/source
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	q := r.URL.Query()

	items, err := h.ItemService.List(r.Context(), userID, service.ItemFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Source:   q.Get("source"),
	})
	if err != nil {
		writeError(w, h.Logger, "ListItems", err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeOK(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	item, err := h.ItemService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetItem", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"item": item})
}

// Update частичное обновление продукта
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req forms.ItemUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "UpdateItem", err)
		return
	}

	item, err := h.ItemService.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.Logger, "UpdateItem", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"item": item})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.ItemService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteItem", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "item deleted"})
}
