package handlers

import (
	"Fridgella/internal/middleware"
	"Fridgella/internal/model"
	"Fridgella/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BillHandler struct {
	BillService *service.BillService
	Logger      *zap.SugaredLogger
}

func NewBillHandler(billService *service.BillService, logger *zap.SugaredLogger) *BillHandler {
	return &BillHandler{BillService: billService, Logger: logger}
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.BillInput
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, h.Logger, "CreateBill", err)
		return
	}

	bill, err := h.BillService.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.Logger, "CreateBill", err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{"bill": bill})
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	bills, err := h.BillService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "ListBills", err)
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	writeOK(w, http.StatusOK, map[string]any{"bills": bills, "count": len(bills)})
}

func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.BillService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteBill", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"message": "bill deleted"})
}
