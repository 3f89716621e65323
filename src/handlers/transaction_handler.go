package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/services"
	"github.com/username/galfin/src/utils"
)

type TransactionHandler struct {
	transactionService services.TransactionService
}

func NewTransactionHandler(service services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: service}
}

func filterFromQuery(r *http.Request) services.TransactionFilter {
	q := r.URL.Query()
	return services.TransactionFilter{
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		AccountID:   q.Get("account_id"),
		Institution: q.Get("institution"),
		Currency:    q.Get("currency"),
		Type:        q.Get("type"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Search:      q.Get("search"),
	}
}

func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.List(filterFromQuery(r))
	if err != nil {
		logger.L.Error("Failed to list transactions", "error", err)
		utils.SendJSONError(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, transactions, http.StatusOK)
}

func (h *TransactionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	transaction, err := h.transactionService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.SendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to get transaction", "transactionID", id, "error", err)
		utils.SendJSONError(w, "Failed to retrieve transaction", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, transaction, http.StatusOK)
}

// HandleUpdateOverrides applies a partial manual edit. Absent JSON fields
// leave the stored override untouched; empty strings clear it.
func (h *TransactionHandler) HandleUpdateOverrides(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var overrides services.Overrides
	if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.transactionService.UpdateOverrides(id, overrides); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.SendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to update transaction overrides", "transactionID", id, "error", err)
		utils.SendJSONError(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}

	updated, err := h.transactionService.Get(id)
	if err != nil {
		logger.L.Error("Failed to re-read transaction after update", "transactionID", id, "error", err)
		utils.SendJSONError(w, "Failed to retrieve updated transaction", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, updated, http.StatusOK)
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.transactionService.Delete(id); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.SendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete transaction", "transactionID", id, "error", err)
		utils.SendJSONError(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRecategorize reapplies the current rule file to stored transactions.
// With only_missing=true (the default) rows that already carry auto
// categories are left alone.
func (h *TransactionHandler) HandleRecategorize(w http.ResponseWriter, r *http.Request) {
	onlyMissing := r.URL.Query().Get("only_missing") != "false"
	updated, err := h.transactionService.Recategorize(onlyMissing)
	if err != nil {
		logger.L.Error("Failed to recategorize transactions", "error", err)
		utils.SendJSONError(w, "Failed to recategorize transactions", http.StatusInternalServerError)
		return
	}
	logger.L.Info("Recategorization pass finished", "updated", updated, "onlyMissing", onlyMissing)
	utils.SendJSON(w, map[string]int{"updated": updated}, http.StatusOK)
}

func (h *TransactionHandler) HandleReclean(w http.ResponseWriter, r *http.Request) {
	onlyMissing := r.URL.Query().Get("only_missing") != "false"
	updated, err := h.transactionService.RecleanDescriptions(onlyMissing)
	if err != nil {
		logger.L.Error("Failed to re-clean transaction descriptions", "error", err)
		utils.SendJSONError(w, "Failed to re-clean descriptions", http.StatusInternalServerError)
		return
	}
	logger.L.Info("Description re-clean pass finished", "updated", updated, "onlyMissing", onlyMissing)
	utils.SendJSON(w, map[string]int{"updated": updated}, http.StatusOK)
}
